package main

import (
	"github.com/spf13/cobra"
)

func init() {
	dbCmd.AddCommand(dbDropCmd)
}

var dbDropCmd = &cobra.Command{
	Use:   "drop",
	Short: "Remove the store and its marker directory",
	Long: `Remove the store body file and the .fsm directory that holds it.

The files the store described are not touched.`,
	Args: cobra.NoArgs,
	RunE: runDBDrop,
}

func runDBDrop(cmd *cobra.Command, args []string) error {
	db, _, err := loadDB()
	if err != nil {
		return err
	}
	return db.Drop()
}
