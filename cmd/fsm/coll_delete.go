package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var collDeleteFiles bool

func init() {
	collCmd.AddCommand(collDeleteCmd)
	collDeleteCmd.Flags().BoolVarP(&collDeleteFiles, "files", "f", false, "list the keys the collection contained")
}

var collDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a collection",
	Long: `Delete a collection. The file entries it referenced are untouched.

Example:
  fsm coll delete favs --files`,
	Args: cobra.ExactArgs(1),
	RunE: runCollDelete,
}

func runCollDelete(cmd *cobra.Command, args []string) error {
	db, _, err := loadDB()
	if err != nil {
		return err
	}

	keys, ok := db.Store.RemoveCollection(args[0])
	if !ok {
		fmt.Println("collection not found")
		return nil
	}

	if err := db.Save(); err != nil {
		return err
	}

	if collDeleteFiles {
		fmt.Printf("%d files\n", len(keys))
		for _, key := range keys {
			fmt.Println(key)
		}
	}

	return nil
}
