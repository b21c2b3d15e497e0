package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var dbDumpPretty bool

func init() {
	dbCmd.AddCommand(dbDumpCmd)
	dbDumpCmd.Flags().BoolVar(&dbDumpPretty, "pretty", false, "pretty print the output")
}

var dbDumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Dump the store to stdout as JSON",
	Long: `Dump the whole store to stdout as JSON, regardless of its on-disk
format.

Example:
  fsm db dump --pretty`,
	Args: cobra.NoArgs,
	RunE: runDBDump,
}

func runDBDump(cmd *cobra.Command, args []string) error {
	db, _, err := loadDB()
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	if dbDumpPretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(db.Store); err != nil {
		return fmt.Errorf("failed writing db to output: %w", err)
	}
	return nil
}
