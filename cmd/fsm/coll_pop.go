package main

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mstonestreet/fsm/internal/paths"
	"github.com/mstonestreet/fsm/internal/store"
)

var collPopNoExists bool

func init() {
	collCmd.AddCommand(collPopCmd)
	collPopCmd.Flags().BoolVar(&collPopNoExists, "no-exists", false, "drop members whose file is missing on disk")
}

var collPopCmd = &cobra.Command{
	Use:   "pop <name> [files...]",
	Short: "Remove files from a collection",
	Long: `Remove the given files from a collection. With --no-exists, members
whose file no longer exists on disk are dropped first.

Example:
  fsm coll pop favs a.txt`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCollPop,
}

func runCollPop(cmd *cobra.Command, args []string) error {
	if len(args) == 1 && !collPopNoExists {
		return fmt.Errorf("no files given (or use --no-exists to drop missing files)")
	}

	db, cwd, err := loadDB()
	if err != nil {
		return err
	}

	coll, ok := db.Store.Collection(args[0])
	if !ok {
		fmt.Println("collection not found")
		return nil
	}

	if collPopNoExists {
		kept := store.KeySet{}
		for _, key := range *coll {
			full := filepath.Join(db.Root(), filepath.FromSlash(key))

			exists, err := store.PathExists(full)
			if err != nil {
				return err
			}
			if exists {
				slog.Debug("file exists", "key", key)
				kept.Add(key)
			} else {
				slog.Info("dropping member", "key", key)
			}
		}
		*coll = kept
	}

	resolver := paths.NewResolver(cwd, db.Root())
	for _, arg := range args[1:] {
		key, err := resolver.Key(arg)
		if err != nil {
			logSkip(err)
			continue
		}
		coll.Remove(key)
	}

	return db.Save()
}
