// Package main provides the fsm CLI entry point.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/mstonestreet/fsm/internal/store"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	flagVerbose bool
	flagDebug   bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		if errors.Is(err, store.ErrNoStore) {
			os.Exit(ExitNoStore)
		}
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "fsm",
	Short: "Attach tags, comments, and collections to files",
	Long: `fsm keeps metadata about files next to them instead of inside them.

A store is rooted wherever a .fsm directory exists; commands find it by
walking up from the working directory, the way git finds its repository.
Entries are keyed by the path relative to the store root, so a file can
be tagged before it exists and keeps its metadata after it is deleted.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "V", false, "verbose logging for commands")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "debug logging for commands")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "debug")
	rootCmd.Version = Version
}

// setupLogging installs the slog handler. FSM_LOG wins over the
// --verbose/--debug flags when set.
func setupLogging() {
	level := slog.LevelWarn
	if flagVerbose {
		level = slog.LevelInfo
	}
	if flagDebug {
		level = slog.LevelDebug
	}

	switch os.Getenv("FSM_LOG") {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05.000",
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	})))
}

// loadDB captures the working directory once and loads the store that
// governs it.
func loadDB() (*store.DB, string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("failed to retrieve current working directory: %w", err)
	}

	db, err := store.Open(cwd)
	if err != nil {
		return nil, "", err
	}
	return db, cwd, nil
}
