package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mstonestreet/fsm/internal/paths"
)

func init() {
	collCmd.AddCommand(collUpdateCmd)
}

var collUpdateCmd = &cobra.Command{
	Use:   "update <name> <files...>",
	Short: "Merge files into a collection",
	Long: `Merge the given files into a collection. Unlike push, paths outside
the store root are skipped silently, which makes update safe to feed
from shell globs spanning other directories.

Example:
  fsm coll update favs *.txt`,
	Args: cobra.MinimumNArgs(2),
	RunE: runCollUpdate,
}

func runCollUpdate(cmd *cobra.Command, args []string) error {
	db, cwd, err := loadDB()
	if err != nil {
		return err
	}

	coll, ok := db.Store.Collection(args[0])
	if !ok {
		fmt.Println("collection not found")
		return nil
	}

	resolver := paths.NewResolver(cwd, db.Root())
	for _, arg := range args[1:] {
		key, err := resolver.Key(arg)
		if err != nil {
			continue
		}
		coll.Add(key)
	}

	return db.Save()
}
