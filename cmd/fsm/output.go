package main

import (
	"fmt"

	"github.com/mstonestreet/fsm/internal/store"
)

// timeFormat renders entry timestamps in local time for display.
const timeFormat = "2006-01-02 15:04:05 -07:00"

// logSkip reports a recoverable per-path failure. Batch commands call
// it and continue with the remaining paths.
func logSkip(err error) {
	fmt.Println(err)
}

// printMeta renders one metadata container. The key line is printed
// only when the caller expects more than one entry in the output.
func printMeta(key string, m *store.Meta, noTags, noComment, printTitle bool) {
	printedKey := false
	printStamp := false

	if !noTags {
		if printTitle {
			fmt.Println(key)
			printedKey = true
		}
		printTags(m.Tags)
		printStamp = true
	}

	if !noComment && m.Comment != "" {
		if printTitle && !printedKey {
			fmt.Println(key)
		}
		fmt.Printf("comment: %s\n", m.Comment)
		printStamp = true
	}

	if printStamp {
		fmt.Println(m.ModifiedAt().Local().Format(timeFormat))
	}
}

// printTags lists presence-only tags first, then valued tags with the
// names right-aligned to the widest one.
func printTags(tags store.TagMap) {
	maxLen := 0
	for _, name := range tags.Keys() {
		if tags[name] == nil {
			continue
		}
		if n := len([]rune(name)); n > maxLen {
			maxLen = n
		}
	}

	for _, name := range tags.Keys() {
		if tags[name] == nil {
			fmt.Println(name)
		}
	}
	for _, name := range tags.Keys() {
		if value := tags[name]; value != nil {
			fmt.Printf("%*s: %s\n", maxLen, name, value)
		}
	}
}
