// Package cli implements the command-line interface for heykube.
package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const version = "0.1.0"

var (
	// Global flags
	dbPath  string
	verbose bool
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "heykube",
	Short: "HEYKUBE smart cube toolkit",
	Long: `HEYKUBE smart cube toolkit - connect to a HEYKUBE over Bluetooth LE,
track moves and solving phases in real time, record solves to a local
database, and drive the cube's lights, sounds, patterns, and hints.`,
	Version: version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database file path (default: ~/.heykube/heykube.db)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}

// newLogger builds the logger used by BLE-facing commands. It stays
// silent unless --verbose is set.
func newLogger() zerolog.Logger {
	if !verbose {
		return zerolog.Nop()
	}
	out := zerolog.ConsoleWriter{Out: os.Stderr}
	return zerolog.New(out).Level(zerolog.DebugLevel).With().Timestamp().Logger()
}

// getDBPath returns the database path from flag or default.
func getDBPath() string {
	return dbPath
}
