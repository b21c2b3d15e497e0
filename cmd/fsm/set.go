package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mstonestreet/fsm/internal/paths"
)

var (
	setTags        tagFlags
	setComment     string
	setDropComment bool
	setSelf        bool
)

func init() {
	rootCmd.AddCommand(setCmd)
	setTags.register(setCmd)
	setCmd.Flags().StringVarP(&setComment, "comment", "c", "", "set a comment on the files")
	setCmd.Flags().BoolVar(&setDropComment, "drop-comment", false, "remove the comment from the files")
	setCmd.Flags().BoolVar(&setSelf, "self", false, "apply the update to the store itself")
	setCmd.MarkFlagsMutuallyExclusive("comment", "drop-comment")
}

var setCmd = &cobra.Command{
	Use:   "set [files...]",
	Short: "Update tags and comments for files",
	Long: `Update tags and comments for the given files, creating entries on
demand. Paths that cannot be resolved against the store root are
reported and skipped; the rest of the batch still applies.

Examples:
  fsm set --add color:red -c "test" a.txt
  fsm set --drop color a.txt b.txt
  fsm set --self --add-url docs:https://example.com`,
	RunE: runSet,
}

func runSet(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && !setSelf {
		return fmt.Errorf("no files given (or use --self to update the store)")
	}

	update, err := setTags.parse()
	if err != nil {
		return err
	}

	db, cwd, err := loadDB()
	if err != nil {
		return err
	}
	resolver := paths.NewResolver(cwd, db.Root())

	commentGiven := cmd.Flags().Changed("comment")
	mutating := !update.IsZero() || commentGiven || setDropComment

	for _, arg := range args {
		key, err := resolver.Key(arg)
		if err != nil {
			logSkip(err)
			continue
		}

		entry, created := db.Store.EntryOrCreate(key)
		if created {
			slog.Info("adding entry", "key", key)
		} else {
			slog.Info("updating entry", "key", key)
			if mutating {
				entry.Touch()
			}
		}

		entry.Tags = update.Apply(entry.Tags)
		if setDropComment {
			entry.Comment = ""
		} else if commentGiven {
			entry.Comment = setComment
		}
	}

	if setSelf {
		slog.Info("updating store metadata")
		meta := &db.Store.Meta
		if mutating {
			meta.Touch()
		}
		meta.Tags = update.Apply(meta.Tags)
		if setDropComment {
			meta.Comment = ""
		} else if commentGiven {
			meta.Comment = setComment
		}
	}

	return db.Save()
}
