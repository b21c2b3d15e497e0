package main

import (
	"github.com/spf13/cobra"
)

var collCmd = &cobra.Command{
	Use:   "coll",
	Short: "Manage collections",
	Long: `Manage named collections of store keys.

A collection is an ordered, deduplicated set of keys grouping unrelated
paths. Membership is independent of file entries: a collection may hold
keys that have no entry and keeps them when the entry is deleted.`,
}

func init() {
	rootCmd.AddCommand(collCmd)
}
