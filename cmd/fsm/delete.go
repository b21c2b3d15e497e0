package main

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mstonestreet/fsm/internal/paths"
	"github.com/mstonestreet/fsm/internal/store"
)

var deleteNotExists bool

func init() {
	rootCmd.AddCommand(deleteCmd)
	deleteCmd.Flags().BoolVar(&deleteNotExists, "not-exists", false, "remove every entry whose file is missing on disk")
}

var deleteCmd = &cobra.Command{
	Use:   "delete [files...]",
	Short: "Remove entries from the store",
	Long: `Remove file entries from the store. The files themselves are not
touched. With --not-exists, entries whose file no longer exists on disk
are swept out first.

Example:
  fsm delete a.txt b.txt`,
	RunE: runDelete,
}

func runDelete(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && !deleteNotExists {
		return fmt.Errorf("no files given (or use --not-exists to sweep missing files)")
	}

	db, cwd, err := loadDB()
	if err != nil {
		return err
	}

	if deleteNotExists {
		for _, key := range db.Store.FileKeys() {
			full := filepath.Join(db.Root(), filepath.FromSlash(key))

			exists, err := store.PathExists(full)
			if err != nil {
				return err
			}
			if exists {
				slog.Debug("file exists", "key", key)
				continue
			}

			slog.Info("removing entry", "key", key)
			db.Store.RemoveEntry(key)
		}
	}

	resolver := paths.NewResolver(cwd, db.Root())
	for _, arg := range args {
		key, err := resolver.Key(arg)
		if err != nil {
			logSkip(err)
			continue
		}

		if _, ok := db.Store.RemoveEntry(key); ok {
			slog.Info("entry removed", "key", key)
		} else {
			fmt.Printf("%q not found\n", key)
		}
	}

	return db.Save()
}
