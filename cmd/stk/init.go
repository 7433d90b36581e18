package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/stockpile/stockpile/internal/depot"
)

func init() {
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new stockpile depot",
	Long: `Initialize a new stockpile depot in the current directory.

Creates:
  .stockpile/
  ├── inventory.json  # Empty inventory document
  ├── journal.jsonl   # Empty movement journal
  ├── config.json     # Default config
  └── cache/          # Ephemeral SQLite index (not versioned)`,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	root, exitCode := getStartingDirectory()
	if exitCode != 0 {
		os.Exit(exitCode)
	}

	d, err := depot.Init(root)
	if err != nil {
		if humanOutput {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		} else {
			outputJSON(ErrorResponse{Error: err.Error()})
		}
		os.Exit(ExitError)
	}

	// Output success
	if humanOutput {
		fmt.Printf("Initialized stockpile depot in %s\n", d.Root())
	} else {
		outputJSON(StatusResponse{
			Status: "initialized",
			Path:   d.Root(),
		})
	}

	return nil
}
