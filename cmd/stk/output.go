package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/stockpile/stockpile/internal/inventory"
	"github.com/stockpile/stockpile/internal/item"
)

// Constants for output formatting.
const (
	NameColumnWidth = 24 // Item name column width in human-readable listings
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputHuman writes a human-readable string to stdout.
func outputHuman(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// outputError writes an error message to stderr and returns the exit code.
func outputError(code int, format string, args ...interface{}) int {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	return code
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// exitCodeForStoreError maps inventory operation errors to exit codes.
// Validation failures are general errors; unknown items and short stock
// have dedicated codes so agents can branch without parsing messages.
func exitCodeForStoreError(err error) int {
	switch {
	case errors.Is(err, inventory.ErrNotFound):
		return ExitNotFound
	case errors.Is(err, inventory.ErrInsufficientStock):
		return ExitInsufficient
	case errors.Is(err, item.ErrEmptyName),
		errors.Is(err, item.ErrInvalidQuantity),
		errors.Is(err, item.ErrNegativePrice):
		return ExitError
	default:
		return ExitDataError
	}
}

// StatusResponse is a generic response for commands that return status.
type StatusResponse struct {
	Status string `json:"status"`
	Path   string `json:"path,omitempty"`
}

// ConfigResponse is the response for config get commands.
type ConfigResponse struct {
	InventoryFile string `json:"inventory_file,omitempty"`
	Currency      string `json:"currency,omitempty"`
}

// UpdateResponse is the response for config set commands.
type UpdateResponse struct {
	Status string `json:"status"`
	Key    string `json:"key"`
	Value  string `json:"value"`
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// formatMoney renders an amount with the depot currency.
func formatMoney(amount float64, currency string) string {
	return fmt.Sprintf("%.2f %s", amount, currency)
}

// formatTimestamp renders an RFC3339 journal timestamp in local time.
func formatTimestamp(ts string) string {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return ts
	}
	return t.Local().Format("2006-01-02 15:04")
}

// formatBytes formats bytes in a human-readable way.
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
