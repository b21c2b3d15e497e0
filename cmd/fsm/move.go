package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mstonestreet/fsm/internal/paths"
	"github.com/mstonestreet/fsm/internal/store"
)

var (
	moveTags     bool
	moveComment  bool
	moveFrom     string
	moveFromSelf bool
	moveTo       string
	moveToSelf   bool
	moveExists   bool
)

func init() {
	rootCmd.AddCommand(moveCmd)
	moveCmd.Flags().BoolVar(&moveTags, "tags", false, "move only tags")
	moveCmd.Flags().BoolVar(&moveComment, "comment", false, "move only the comment")
	moveCmd.Flags().StringVarP(&moveFrom, "from", "f", "", "the source file entry")
	moveCmd.Flags().BoolVar(&moveFromSelf, "from-self", false, "move data out of the store itself")
	moveCmd.Flags().StringVarP(&moveTo, "to", "t", "", "the destination file entry")
	moveCmd.Flags().BoolVar(&moveToSelf, "to-self", false, "move data onto the store itself")
	moveCmd.Flags().BoolVar(&moveExists, "exists", false, "require the destination path to exist on disk")
	moveCmd.MarkFlagsMutuallyExclusive("tags", "comment")
	moveCmd.MarkFlagsMutuallyExclusive("from", "from-self")
	moveCmd.MarkFlagsMutuallyExclusive("to", "to-self")
	moveCmd.MarkFlagsMutuallyExclusive("from-self", "to-self")
}

var moveCmd = &cobra.Command{
	Use:   "move",
	Short: "Move metadata between entries or the store",
	Long: `Move tags and/or the comment from one container to another. A file
source gives up its whole entry; the store keeps its entry and only
hands over the moved data. The destination entry is created on demand.

Examples:
  fsm move --from a.txt --to b.txt
  fsm move --tags --from-self --to a.txt`,
	Args: cobra.NoArgs,
	RunE: runMove,
}

func runMove(cmd *cobra.Command, args []string) error {
	if moveFrom == "" && !moveFromSelf {
		return fmt.Errorf("one of --from or --from-self is required")
	}
	if moveTo == "" && !moveToSelf {
		return fmt.Errorf("one of --to or --to-self is required")
	}

	db, cwd, err := loadDB()
	if err != nil {
		return err
	}
	resolver := paths.NewResolver(cwd, db.Root())

	src, err := moveSource(db, resolver)
	if err != nil {
		return err
	}

	dst, err := moveDestination(db, resolver)
	if err != nil {
		return err
	}

	switch {
	case moveTags:
		dst.Tags.Merge(src.TakeTags())
	case moveComment:
		if comment := src.TakeComment(); comment != "" {
			dst.Comment = comment
		} else {
			slog.Info("comment is empty")
		}
	default:
		dst.Tags.Merge(src.TakeTags())
		if comment := src.TakeComment(); comment != "" {
			dst.Comment = comment
		}
	}

	return db.Save()
}

// moveSource picks the container the data is moved out of. A file
// source is removed from the db entirely; the store source stays.
func moveSource(db *store.DB, resolver *paths.Resolver) (*store.Meta, error) {
	if moveFromSelf {
		slog.Info("moving data from the store")
		return &db.Store.Meta, nil
	}

	abs, key, err := resolver.Resolve(moveFrom)
	if err != nil {
		return nil, err
	}

	slog.Info("moving from entry", "key", key)
	src, ok := db.Store.RemoveEntry(key)
	if !ok {
		return nil, fmt.Errorf("source not found in db: %s", abs)
	}
	return src, nil
}

// moveDestination picks the container the data is merged into, creating
// a file entry on demand and stamping updated on an existing one.
func moveDestination(db *store.DB, resolver *paths.Resolver) (*store.Meta, error) {
	if moveToSelf {
		slog.Info("updating store metadata")
		db.Store.Meta.Touch()
		return &db.Store.Meta, nil
	}

	abs, key, err := resolver.Resolve(moveTo)
	if err != nil {
		return nil, err
	}

	if moveExists {
		exists, err := store.PathExists(abs)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, fmt.Errorf("the destination path does not exist: %s", abs)
		}
	}

	slog.Info("retrieving entry", "key", key)
	dst, created := db.Store.EntryOrCreate(key)
	if !created {
		dst.Touch()
	}
	return dst, nil
}
