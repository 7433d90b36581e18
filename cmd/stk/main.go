// Package main provides the stk CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/stockpile/stockpile/internal/config"
	"github.com/stockpile/stockpile/internal/depot"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		// This ensures Cobra errors (like missing required flags) are visible
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "stk",
	Short: "Agent-first inventory tracking CLI",
	Long: `stk is an agent-first CLI for tracking item inventories.

Core features:
  - Item stock levels with per-unit prices
  - Append-only movement journal for history and reporting
  - Ephemeral SQLite index for fast history queries
  - CSV and JSON export for spreadsheets and other tools

Stock is stored in a plain JSON document with a JSONL journal alongside.
All commands output JSON by default for AI agent integration.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Load .env file if present (for STK_DEPOT)
	_ = godotenv.Load()

	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
}

// getStartingDirectory returns the directory to start searching for a depot.
// Checks the STK_DEPOT override and global config first, then the current
// working directory.
func getStartingDirectory() (string, int) {
	if root := config.GetDepotPath(); root != "" {
		return root, 0
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", outputError(ExitError, "getting current directory: %v", err)
	}
	return cwd, 0
}

// mustFindDepot finds and validates the depot, exits on error.
// Returns the depot root path.
func mustFindDepot() string {
	start, exitCode := getStartingDirectory()
	if exitCode != 0 {
		os.Exit(exitCode)
	}

	root, err := config.FindDepot(start)
	if err != nil {
		// Show helpful message if no global config exists
		fmt.Fprintln(os.Stderr, config.HelpfulConfigMessage())
		os.Exit(ExitConfigError)
	}
	return root
}

// mustOpenDepot finds the depot and loads its config and inventory, exits on error.
func mustOpenDepot() *depot.Depot {
	root := mustFindDepot()

	d, err := depot.Open(root)
	if err != nil {
		exitWithError(ExitDataError, "opening depot: %v", err)
	}
	return d
}
