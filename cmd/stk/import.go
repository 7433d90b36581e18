package main

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var (
	importFormat string
	importStdin  bool
	importDryRun bool
)

func init() {
	importCmd.Flags().StringVar(&importFormat, "format", "", "Import format (jsonl, csv)")
	importCmd.Flags().BoolVar(&importStdin, "stdin", false, "Read records from stdin instead of a file")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Show what would be imported without writing")
	importCmd.MarkFlagRequired("format")
	rootCmd.AddCommand(importCmd)
}

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import stock records from JSONL or CSV",
	Long: `Import stock records from JSONL or CSV.

Each record is applied as an add: quantities accumulate on top of existing
stock and the record's price becomes the item's current price. Records that
fail validation are reported and skipped; the rest still apply.

JSONL records look like {"name": "bolt", "quantity": 10, "price": 0.5},
one per line. CSV rows are name,quantity[,price] with an optional header.

Usage:
  stk import --format jsonl movements.jsonl
  stk import --format csv stock.csv --dry-run
  cat stock.csv | stk import --format csv --stdin`,
	Args: cobra.MaximumNArgs(1),
	RunE: runImport,
}

// ImportResult is the response for the import command.
type ImportResult struct {
	Imported int      `json:"imported"`
	Updated  int      `json:"updated"`
	Errors   []string `json:"errors"`
}

// DryRunResult is the response for a dry-run import.
type DryRunResult struct {
	WouldImport int            `json:"would_import"`
	WouldUpdate int            `json:"would_update"`
	Errors      []string       `json:"errors"`
	Details     []ImportDetail `json:"details,omitempty"`
}

// ImportDetail describes a single import action.
type ImportDetail struct {
	Name     string  `json:"name"`
	Action   string  `json:"action"` // import, update
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// importRecord is one parsed input line.
type importRecord struct {
	line     int
	name     string
	quantity int
	price    float64
}

func runImport(cmd *cobra.Command, args []string) error {
	if importFormat != "jsonl" && importFormat != "csv" {
		exitWithError(ExitError, "unknown format: %s", importFormat)
	}

	if importStdin == (len(args) == 1) {
		exitWithError(ExitError, "provide either a file argument or --stdin")
	}

	input := io.Reader(os.Stdin)
	if !importStdin {
		f, err := os.Open(args[0])
		if err != nil {
			exitWithError(ExitError, "reading file: %v", err)
		}
		defer f.Close()
		input = f
	}

	var records []importRecord
	var parseErrors []string
	switch importFormat {
	case "jsonl":
		records, parseErrors = parseJSONLItems(input)
	case "csv":
		records, parseErrors = parseCSVItems(input)
	}

	// Only fatal if nothing was parsed
	if len(records) == 0 && len(parseErrors) > 0 {
		if humanOutput {
			fmt.Fprintln(os.Stderr, "error: failed to parse any records")
			for _, e := range parseErrors {
				fmt.Fprintf(os.Stderr, "  - %s\n", e)
			}
		} else {
			outputJSON(ErrorResponse{Error: "failed to parse any records"})
		}
		os.Exit(ExitDataError)
	}

	d := mustOpenDepot()

	// Track which names exist so later records against the same name
	// classify as updates
	existing := make(map[string]bool)
	for _, it := range d.List() {
		existing[it.Name] = true
	}

	if importDryRun {
		result := DryRunResult{Errors: parseErrors}
		if result.Errors == nil {
			result.Errors = []string{}
		}
		for _, rec := range records {
			action := "import"
			if existing[rec.name] {
				action = "update"
				result.WouldUpdate++
			} else {
				result.WouldImport++
			}
			existing[rec.name] = true
			result.Details = append(result.Details, ImportDetail{
				Name:     rec.name,
				Action:   action,
				Quantity: rec.quantity,
				Price:    rec.price,
			})
		}

		if humanOutput {
			fmt.Printf("Would import %d new items, update %d (%d parse errors)\n",
				result.WouldImport, result.WouldUpdate, len(result.Errors))
			for _, detail := range result.Details {
				fmt.Printf("  %-7s %s (%d @ %.2f)\n", detail.Action, detail.Name, detail.Quantity, detail.Price)
			}
		} else {
			outputJSON(result)
		}
		return nil
	}

	result := ImportResult{Errors: parseErrors}
	if result.Errors == nil {
		result.Errors = []string{}
	}
	for _, rec := range records {
		wasExisting := existing[rec.name]

		_, err := d.Add(rec.name, rec.quantity, rec.price)
		if err != nil {
			code := exitCodeForStoreError(err)
			if code == ExitError {
				result.Errors = append(result.Errors, fmt.Sprintf("line %d: %v", rec.line, err))
				continue
			}
			// I/O and journal failures abort the import
			exitWithError(code, "%v", err)
		}

		if wasExisting {
			result.Updated++
		} else {
			result.Imported++
		}
		existing[rec.name] = true
	}

	if humanOutput {
		fmt.Printf("Imported %d new items, updated %d (%d errors)\n",
			result.Imported, result.Updated, len(result.Errors))
		for _, e := range result.Errors {
			fmt.Fprintf(os.Stderr, "  - %s\n", e)
		}
	} else {
		outputJSON(result)
	}

	return nil
}

// parseJSONLItems parses records from JSONL input, one JSON object per line.
// Blank lines are skipped. Malformed lines are reported, not fatal.
func parseJSONLItems(r io.Reader) ([]importRecord, []string) {
	var records []importRecord
	var errs []string

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var rec struct {
			Name     string  `json:"name"`
			Quantity int     `json:"quantity"`
			Price    float64 `json:"price"`
		}
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			errs = append(errs, fmt.Sprintf("line %d: %v", lineNum, err))
			continue
		}

		records = append(records, importRecord{
			line:     lineNum,
			name:     rec.Name,
			quantity: rec.Quantity,
			price:    rec.Price,
		})
	}
	if err := scanner.Err(); err != nil {
		errs = append(errs, fmt.Sprintf("reading input: %v", err))
	}

	return records, errs
}

// parseCSVItems parses records from CSV input with rows of
// name,quantity[,price]. A leading header row is skipped.
func parseCSVItems(r io.Reader) ([]importRecord, []string) {
	var records []importRecord
	var errs []string

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	lineNum := 0
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		lineNum++
		if err != nil {
			errs = append(errs, fmt.Sprintf("line %d: %v", lineNum, err))
			continue
		}

		// Skip a header row like name,quantity,price
		if lineNum == 1 && len(row) > 0 && strings.EqualFold(strings.TrimSpace(row[0]), "name") {
			continue
		}

		if len(row) < 2 {
			errs = append(errs, fmt.Sprintf("line %d: expected name,quantity[,price]", lineNum))
			continue
		}

		qty, err := strconv.Atoi(strings.TrimSpace(row[1]))
		if err != nil {
			errs = append(errs, fmt.Sprintf("line %d: invalid quantity %q", lineNum, row[1]))
			continue
		}

		price := 0.0
		if len(row) >= 3 && strings.TrimSpace(row[2]) != "" {
			price, err = strconv.ParseFloat(strings.TrimSpace(row[2]), 64)
			if err != nil {
				errs = append(errs, fmt.Sprintf("line %d: invalid price %q", lineNum, row[2]))
				continue
			}
		}

		records = append(records, importRecord{
			line:     lineNum,
			name:     row[0],
			quantity: qty,
			price:    price,
		})
	}

	return records, errs
}
