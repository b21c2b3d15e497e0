package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	collCmd.AddCommand(collCreateCmd)
}

var collCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new collection",
	Args:  cobra.ExactArgs(1),
	RunE:  runCollCreate,
}

func runCollCreate(cmd *cobra.Command, args []string) error {
	db, _, err := loadDB()
	if err != nil {
		return err
	}

	if !db.Store.CreateCollection(args[0]) {
		fmt.Println("the specified collection already exists")
		return nil
	}

	return db.Save()
}
