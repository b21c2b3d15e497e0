package main

import (
	"github.com/spf13/cobra"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Manage the store itself",
	Long: `Manage the store itself: create it, dump it, or remove it.

The store lives in a .fsm directory as a single body file in one of
three formats (pretty JSON, compact JSON, or binary), chosen at init
time and recognized by filename afterwards.`,
}

func init() {
	rootCmd.AddCommand(dbCmd)
}
