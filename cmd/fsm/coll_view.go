package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mstonestreet/fsm/internal/store"
)

var collViewFiles bool

func init() {
	collCmd.AddCommand(collViewCmd)
	collViewCmd.Flags().BoolVarP(&collViewFiles, "files", "f", false, "list the keys in each collection")
}

var collViewCmd = &cobra.Command{
	Use:   "view [name]",
	Short: "View a collection or all collections",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCollView,
}

func runCollView(cmd *cobra.Command, args []string) error {
	db, _, err := loadDB()
	if err != nil {
		return err
	}

	if len(args) == 1 {
		coll, ok := db.Store.Collection(args[0])
		if !ok {
			fmt.Println("collection not found")
			return nil
		}
		printCollection(args[0], *coll)
		return nil
	}

	for _, name := range db.Store.CollectionNames() {
		printCollection(name, *db.Store.Collections[name])
	}
	return nil
}

func printCollection(name string, keys store.KeySet) {
	fmt.Printf("%s: %d files\n", name, len(keys))

	if collViewFiles {
		for _, key := range keys {
			fmt.Println(key)
		}
	}
}
