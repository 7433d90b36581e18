package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/stockpile/stockpile/internal/item"
)

var (
	exportFormat string
	exportOutput string
)

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "Export format (json, csv)")
	exportCmd.Flags().StringVar(&exportOutput, "output", "", "Write to a file instead of stdout")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the inventory to JSON or CSV",
	Long: `Export the inventory to JSON or CSV.

JSON output is an array of items; CSV output carries a name,quantity,price
header row. Both are sorted by name.

Examples:
  stk export
  stk export --format csv
  stk export --format csv --output stock.csv
  stk export --output stock.json`,
	RunE: runExport,
}

// ExportResult is the response when exporting to a file.
type ExportResult struct {
	Status string `json:"status"`
	Items  int    `json:"items"`
	Path   string `json:"path"`
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportFormat != "json" && exportFormat != "csv" {
		exitWithError(ExitError, "unknown format: %s", exportFormat)
	}

	d := mustOpenDepot()
	items := d.List()

	out := io.Writer(os.Stdout)
	if exportOutput != "" {
		f, err := os.Create(exportOutput)
		if err != nil {
			exitWithError(ExitError, "creating %s: %v", exportOutput, err)
		}
		defer f.Close()
		out = f
	}

	// Note: exported data is always plain JSON or CSV, never the
	// wrapped response format
	var err error
	switch exportFormat {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		err = enc.Encode(items)
	case "csv":
		err = writeItemsCSV(out, items)
	}
	if err != nil {
		exitWithError(ExitError, "writing %s: %v", exportFormat, err)
	}

	// Data on stdout is the result; only file exports get a status
	if exportOutput == "" {
		return nil
	}

	if humanOutput {
		fmt.Printf("Exported %d items to %s\n", len(items), exportOutput)
	} else {
		outputJSON(ExportResult{
			Status: "exported",
			Items:  len(items),
			Path:   exportOutput,
		})
	}

	return nil
}

// writeItemsCSV writes items as CSV with a header row.
func writeItemsCSV(w io.Writer, items []item.Item) error {
	cw := csv.NewWriter(w)

	cw.Write([]string{"name", "quantity", "price"})
	for _, it := range items {
		cw.Write([]string{
			it.Name,
			strconv.Itoa(it.Quantity),
			strconv.FormatFloat(it.Price, 'f', -1, 64),
		})
	}

	cw.Flush()
	return cw.Error()
}
