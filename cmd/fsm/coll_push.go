package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mstonestreet/fsm/internal/paths"
)

func init() {
	collCmd.AddCommand(collPushCmd)
}

var collPushCmd = &cobra.Command{
	Use:   "push <name> <files...>",
	Short: "Add files to a collection",
	Long: `Add the given files to a collection. Duplicates are ignored; paths
that cannot be resolved are reported and skipped.

Example:
  fsm coll push favs a.txt b.txt`,
	Args: cobra.MinimumNArgs(2),
	RunE: runCollPush,
}

func runCollPush(cmd *cobra.Command, args []string) error {
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
			logSkip(err)
			continue
		}
		coll.Add(key)
	}

	return db.Save()
}
