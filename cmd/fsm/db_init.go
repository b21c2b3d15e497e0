package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mstonestreet/fsm/internal/config"
	"github.com/mstonestreet/fsm/internal/store"
)

var dbInitFormat string

func init() {
	dbCmd.AddCommand(dbInitCmd)
	dbInitCmd.Flags().StringVar(&dbInitFormat, "format", "", "body format: json-pretty, json, or binary (default from global config, else json)")
}

var dbInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a store in the working directory",
	Long: `Initialize a store rooted at the working directory.

Creates a .fsm directory holding an empty body file. Fails when a body
file already exists in any supported format.

Example:
  fsm db init --format binary`,
	Args: cobra.NoArgs,
	RunE: runDBInit,
}

func runDBInit(cmd *cobra.Command, args []string) error {
	format, err := initFormat()
	if err != nil {
		return err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to retrieve current working directory: %w", err)
	}

	marker := filepath.Join(cwd, store.MarkerDir)

	info, err := os.Stat(marker)
	switch {
	case err == nil:
		if !info.IsDir() {
			return fmt.Errorf("%s exists but is not a directory", store.MarkerDir)
		}
		slog.Info("marker directory already exists", "path", marker)

		for _, f := range store.Formats {
			body := filepath.Join(marker, f.FileName())
			existing, err := os.Stat(body)
			if err != nil {
				if os.IsNotExist(err) {
					continue
				}
				return fmt.Errorf("checking for db file: %w", err)
			}
			if existing.Mode().IsRegular() {
				fmt.Println("a db file already exists")
				return nil
			}
			return fmt.Errorf("a filesystem item already uses the db file name %s", f.FileName())
		}
	case os.IsNotExist(err):
		slog.Info("creating marker directory", "path", marker)
		if err := os.Mkdir(marker, 0o755); err != nil {
			return fmt.Errorf("failed to create %s directory: %w", store.MarkerDir, err)
		}
	default:
		return fmt.Errorf("failed to retrieve metadata for %s directory: %w", store.MarkerDir, err)
	}

	if _, err := store.Create(filepath.Join(marker, format.FileName()), format); err != nil {
		return fmt.Errorf("failed to save new db: %w", err)
	}
	return nil
}

// initFormat picks the body format: the --format flag first, then the
// global config default, then compact JSON.
func initFormat() (store.Format, error) {
	if dbInitFormat != "" {
		return store.ParseFormat(dbInitFormat)
	}

	cfg, err := config.Load()
	if err != nil {
		return 0, err
	}
	if cfg.DefaultFormat != "" {
		format, err := store.ParseFormat(cfg.DefaultFormat)
		if err != nil {
			return 0, fmt.Errorf("global config default_format: %w", err)
		}
		return format, nil
	}
	return store.FormatJSON, nil
}
