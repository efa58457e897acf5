package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var (
	dbPath string

	// RootCmd is the root command for brewdoctor
	RootCmd = &cobra.Command{
		Use:   "brewdoctor",
		Short: "Diagnose Homebrew installation health",
		Long: `brewdoctor inspects your Homebrew installation — filesystem, environment,
and installed-formula metadata — and reports misconfigurations that would
break builds or installs. It only reports; it never changes anything.

Quick Start:
  1. brewdoctor check            # run all diagnostics
  2. brewdoctor history          # review past runs
  3. brewdoctor watch            # re-run automatically on Cellar changes

Checks cover:
  • PATH ordering between Homebrew and system directories
  • Stray dylibs, headers, static libraries and .pc files
  • Installed formulae with missing runtime dependencies
  • Cellar and TEMP directories split across volumes
  • External tooling (git) availability and version

Examples:
  # Run diagnostics and record the outcome
  brewdoctor check

  # List registered checks in run order
  brewdoctor list

  # Show the advisories of run 3
  brewdoctor history 3

  # Keep a watch daemon running
  brewdoctor watch --daemon`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("brewdoctor: Homebrew installation health checks")
			fmt.Println()
			fmt.Println("Run 'brewdoctor check' to diagnose your installation.")
			fmt.Println("Run 'brewdoctor --help' for the full reference.")
			return nil
		},
	}
)

func init() {
	// Global flags
	RootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "history database path (default: ~/.brewdoctor/brewdoctor.db)")

	// Enable cobra's built-in suggestion feature for unknown subcommands
	RootCmd.SuggestionsMinimumDistance = 2
}

// Execute runs the root command
func Execute() error {
	return RootCmd.Execute()
}

// getDBPath returns the database path, using the flag value or default
func getDBPath() (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}

	dir, err := stateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "brewdoctor.db"), nil
}

// getDefaultPIDFile returns the default watch-daemon PID file path
func getDefaultPIDFile() (string, error) {
	dir, err := stateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "watch.pid"), nil
}

// getDefaultLogFile returns the default watch-daemon log file path
func getDefaultLogFile() (string, error) {
	dir, err := stateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "watch.log"), nil
}

// stateDir returns ~/.brewdoctor, creating it if needed.
func stateDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	dir := filepath.Join(home, ".brewdoctor")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create brewdoctor directory: %w", err)
	}
	return dir, nil
}
