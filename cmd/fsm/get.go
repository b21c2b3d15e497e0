package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mstonestreet/fsm/internal/paths"
	"github.com/mstonestreet/fsm/internal/query"
	"github.com/mstonestreet/fsm/internal/store"
)

var (
	getNoTags    bool
	getNoComment bool
	getAll       bool
	getSelf      bool
	getSortBy    []string
	getIncludes  []string
	getExcludes  []string
)

func init() {
	rootCmd.AddCommand(getCmd)
	getCmd.Flags().BoolVar(&getNoTags, "no-tags", false, "do not output tags")
	getCmd.Flags().BoolVar(&getNoComment, "no-comment", false, "do not output comments")
	getCmd.Flags().BoolVar(&getAll, "all", false, "retrieve every entry in the db")
	getCmd.Flags().BoolVar(&getSelf, "self", false, "retrieve the store's own metadata")
	getCmd.Flags().StringSliceVar(&getSortBy, "sort-by", []string{"name"}, "sort criteria: name, date, created, updated")
	getCmd.Flags().StringSliceVar(&getIncludes, "include-tags", nil, "only entries carrying every listed tag")
	getCmd.Flags().StringSliceVar(&getExcludes, "exclude-tags", nil, "only entries carrying none of the listed tags")
	getCmd.MarkFlagsMutuallyExclusive("no-tags", "no-comment")
}

var getCmd = &cobra.Command{
	Use:   "get [files...]",
	Short: "Retrieve metadata for files",
	Long: `Retrieve tags and comments for the given files (default: the working
directory). Include and exclude filters are conjunctive: an entry must
carry every included tag and none of the excluded ones.

Sorting is ascending and stable; later criteria only break exact ties
of earlier ones. Entries without an updated timestamp sort after the
ones that have one.

Examples:
  fsm get a.txt
  fsm get --all --include-tags color --sort-by name,created`,
	RunE: runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	filter, err := getFilter()
	if err != nil {
		return err
	}

	criteria, err := query.ParseSortList(getSortBy)
	if err != nil {
		return err
	}

	db, cwd, err := loadDB()
	if err != nil {
		return err
	}

	var items []query.Item

	if (getSelf || getAll) && filter.Match(&db.Store.Meta) {
		items = append(items, query.Item{Key: store.SelfKey, Meta: &db.Store.Meta})
	}

	result := query.NewResult(criteria)
	if getAll {
		for _, key := range db.Store.FileKeys() {
			if entry := db.Store.Files[key]; filter.Match(entry) {
				result.Insert(key, entry)
			}
		}
	} else if !getSelf {
		resolver := paths.NewResolver(cwd, db.Root())

		files := args
		if len(files) == 0 {
			files = []string{"./"}
		}

		for _, arg := range files {
			key, err := resolver.Key(arg)
			if err != nil {
				logSkip(err)
				continue
			}

			entry, ok := db.Store.Entry(key)
			if !ok {
				fmt.Printf("%q not found\n", key)
				continue
			}
			if filter.Match(entry) {
				result.Insert(key, entry)
			}
		}
	}

	items = append(items, result.Items()...)

	total := len(items)
	printTitle := total > 1

	for _, item := range items {
		printMeta(item.Key, item.Meta, getNoTags, getNoComment, printTitle)
	}
	fmt.Printf("Total: %d\n", total)

	return nil
}

// getFilter validates the include/exclude tag names and builds the
// filter.
func getFilter() (query.Filter, error) {
	for _, name := range append(append([]string{}, getIncludes...), getExcludes...) {
		if !store.ValidKey(name) {
			return query.Filter{}, fmt.Errorf("tag name %q contains invalid characters", name)
		}
	}
	return query.Filter{Include: getIncludes, Exclude: getExcludes}, nil
}
