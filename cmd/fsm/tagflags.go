package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mstonestreet/fsm/internal/store"
)

// tagFlags is the shared flag set describing a tag update. The --tag*
// family replaces all tags, the --add*/--drop family edits them, and
// --drop-all clears them; the families are mutually exclusive.
type tagFlags struct {
	tag     []string
	tagURL  []string
	tagNum  []string
	tagBool []string
	add     []string
	addURL  []string
	addNum  []string
	addBool []string
	drop    []string
	dropAll bool
}

func (f *tagFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringArrayVarP(&f.tag, "tag", "t", nil, "set a tag, replacing all previously set tags")
	fl.StringArrayVar(&f.tagURL, "tag-url", nil, "like --tag but the value must be a valid url")
	fl.StringArrayVar(&f.tagNum, "tag-num", nil, "like --tag but the value must be a valid integer")
	fl.StringArrayVar(&f.tagBool, "tag-bool", nil, "like --tag but the value must be true or false")
	fl.StringArrayVarP(&f.add, "add", "a", nil, "add a tag to the existing tags")
	fl.StringArrayVar(&f.addURL, "add-url", nil, "like --add but the value must be a valid url")
	fl.StringArrayVar(&f.addNum, "add-num", nil, "like --add but the value must be a valid integer")
	fl.StringArrayVar(&f.addBool, "add-bool", nil, "like --add but the value must be true or false")
	fl.StringArrayVarP(&f.drop, "drop", "d", nil, "remove a tag; missing tags are ignored")
	fl.BoolVar(&f.dropAll, "drop-all", false, "remove all tags")
}

// parse validates the flag combination and converts the raw arguments
// into a tag update. Typed values fail hard on a type mismatch instead
// of falling back to a plain string.
func (f *tagFlags) parse() (store.TagUpdate, error) {
	var update store.TagUpdate

	replacing := len(f.tag)+len(f.tagURL)+len(f.tagNum)+len(f.tagBool) > 0
	editing := len(f.add)+len(f.addURL)+len(f.addNum)+len(f.addBool)+len(f.drop) > 0

	if f.dropAll && (replacing || editing) {
		return update, fmt.Errorf("--drop-all cannot be combined with other tag flags")
	}
	if replacing && editing {
		return update, fmt.Errorf("--tag flags cannot be combined with --add or --drop flags")
	}

	update.DropAll = f.dropAll

	var err error
	if update.Set, err = parseTagArgs(update.Set, f.tag, store.ParseTag); err != nil {
		return update, err
	}
	if update.Set, err = parseTagArgs(update.Set, f.tagURL, store.ParseURLTag); err != nil {
		return update, err
	}
	if update.Set, err = parseTagArgs(update.Set, f.tagNum, store.ParseNumberTag); err != nil {
		return update, err
	}
	if update.Set, err = parseTagArgs(update.Set, f.tagBool, store.ParseBoolTag); err != nil {
		return update, err
	}

	if update.Add, err = parseTagArgs(update.Add, f.add, store.ParseTag); err != nil {
		return update, err
	}
	if update.Add, err = parseTagArgs(update.Add, f.addURL, store.ParseURLTag); err != nil {
		return update, err
	}
	if update.Add, err = parseTagArgs(update.Add, f.addNum, store.ParseNumberTag); err != nil {
		return update, err
	}
	if update.Add, err = parseTagArgs(update.Add, f.addBool, store.ParseBoolTag); err != nil {
		return update, err
	}

	for _, name := range f.drop {
		if !store.ValidKey(name) {
			return update, fmt.Errorf("tag name %q contains invalid characters", name)
		}
		update.Drop = append(update.Drop, name)
	}

	return update, nil
}

func parseTagArgs(dst []store.Tag, raw []string, parse func(string) (store.Tag, error)) ([]store.Tag, error) {
	for _, arg := range raw {
		tag, err := parse(arg)
		if err != nil {
			return dst, err
		}
		dst = append(dst, tag)
	}
	return dst, nil
}
