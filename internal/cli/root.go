// Package cli implements the command-line interface for trichess.
package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/trichess/internal/config"
	"github.com/SeamusWaldron/trichess/internal/logging"
)

const version = "0.1.0"

var (
	// Global flags
	dbPath    string
	configDir string
	verbose   bool

	// Set up in PersistentPreRunE
	settings config.Settings
	logger   = zerolog.Nop()
	closeLog = func() error { return nil }
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "trichess",
	Short: "Three-player hexagonal chess",
	Long: `trichess - board geometry, movement directions and turn order for
three-player chess on a hexagonal board.

Inspect the generated board, query the movement directions of each piece
kind for each player, and play recorded games in an interactive terminal UI.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeLog()
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database file path (default: ~/.trichess/trichess.db)")
	rootCmd.PersistentFlags().StringVar(&configDir, "config", ".", "Directory containing "+config.FileName)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}

// setup loads configuration and builds the logger before any subcommand runs.
func setup(cmd *cobra.Command, args []string) error {
	config.Reset()
	if err := config.Load(configDir); err != nil {
		return err
	}
	if dbPath != "" {
		config.Set("db.path", dbPath)
	}
	if verbose {
		config.Set("logLevel", "debug")
	}

	s, err := config.Snapshot()
	if err != nil {
		return err
	}
	settings = s

	log, closeFn, err := logging.New(logging.Options{
		Level:   settings.LogLevel,
		Console: cmd.ErrOrStderr(),
		File:    settings.LogFile,
	})
	if err != nil {
		return err
	}
	logger = log
	closeLog = closeFn

	logger.Debug().
		Str("config", config.ConfigFileUsed()).
		Str("db", settings.DB.Path).
		Msg("Configuration loaded")
	return nil
}

// getDBPath returns the database path from flag, config or default.
func getDBPath() string {
	return settings.DB.Path
}
