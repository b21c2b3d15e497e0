package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mstonestreet/fsm/internal/paths"
	"github.com/mstonestreet/fsm/internal/store"
)

var renameExists bool

func init() {
	rootCmd.AddCommand(renameCmd)
	renameCmd.Flags().BoolVar(&renameExists, "exists", false, "require the renamed path to exist on disk")
}

var renameCmd = &cobra.Command{
	Use:   "rename <current> <renamed>",
	Short: "Move an entry to a new key",
	Long: `Move a file entry to a new key without touching its metadata. When the
target key already has an entry, nothing changes and both entries stay
as they were.

Example:
  fsm rename old.txt new.txt`,
	Args: cobra.ExactArgs(2),
	RunE: runRename,
}

func runRename(cmd *cobra.Command, args []string) error {
	db, cwd, err := loadDB()
	if err != nil {
		return err
	}
	resolver := paths.NewResolver(cwd, db.Root())

	currAbs, currKey, err := resolver.Resolve(args[0])
	if err != nil {
		return err
	}
	renameAbs, renameKey, err := resolver.Resolve(args[1])
	if err != nil {
		return err
	}

	if renameExists {
		exists, err := store.PathExists(renameAbs)
		if err != nil {
			return err
		}
		if !exists {
			fmt.Printf("the renamed path does not exist: %s\n", renameAbs)
			return nil
		}
	}

	switch err := db.Store.Rename(currKey, renameKey); {
	case errors.Is(err, store.ErrEntryNotFound):
		fmt.Printf("current not found in db: %s\n", currAbs)
		return nil
	case errors.Is(err, store.ErrEntryExists):
		fmt.Printf("renamed already exists in db: %s\n", renameKey)
		return nil
	case err != nil:
		return err
	}

	return db.Save()
}
