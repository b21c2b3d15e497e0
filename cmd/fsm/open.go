package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mstonestreet/fsm/internal/config"
	"github.com/mstonestreet/fsm/internal/opener"
	"github.com/mstonestreet/fsm/internal/paths"
	"github.com/mstonestreet/fsm/internal/store"
)

func init() {
	rootCmd.AddCommand(openCmd)
}

var openCmd = &cobra.Command{
	Use:   "open <tag> <files...>",
	Short: "Open a tag's URL value in the OS viewer",
	Long: `For each file, look up the named tag and hand its URL value to the
operating system's opener. Tags that are missing, have no value, or are
not URLs are reported and skipped.

Example:
  fsm open docs a.txt`,
	Args: cobra.MinimumNArgs(2),
	RunE: runOpen,
}

func runOpen(cmd *cobra.Command, args []string) error {
	tagName := args[0]
	if !store.ValidKey(tagName) {
		return fmt.Errorf("tag name %q contains invalid characters", tagName)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	open := opener.New(cfg.OpenCommand)

	db, cwd, err := loadDB()
	if err != nil {
		return err
	}
	resolver := paths.NewResolver(cwd, db.Root())

	for _, arg := range args[1:] {
		abs, key, err := resolver.Resolve(arg)
		if err != nil {
			logSkip(err)
			continue
		}

		entry, ok := db.Store.Entry(key)
		if !ok {
			fmt.Printf("%q not found\n", key)
			continue
		}

		value, ok := entry.Tags[tagName]
		if !ok {
			fmt.Printf("%s %s does not exist\n", abs, tagName)
			continue
		}
		if value == nil {
			fmt.Printf("%s %s has no value\n", abs, tagName)
			continue
		}

		u := value.AsURL()
		if u == nil {
			fmt.Printf("%s %s is not a valid url\n", abs, tagName)
			continue
		}

		if err := open.Open(u.String()); err != nil {
			fmt.Println(err)
		}
	}

	return nil
}
