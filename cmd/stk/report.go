package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show a valuation report with movement totals",
	Long: `Show a per-item report combining current stock with journal totals.

Each line carries the quantity on hand, its value at the current price,
and the cumulative units added and removed. Items that were drained to
zero still appear while the journal remembers them.

Examples:
  stk report
  stk report --human`,
	RunE: runReport,
}

func runReport(cmd *cobra.Command, args []string) error {
	d := mustOpenDepot()

	report, err := d.BuildReport()
	if err != nil {
		exitWithError(ExitDataError, "building report: %v", err)
	}

	if humanOutput {
		if len(report.Items) == 0 {
			fmt.Println("Nothing to report")
			return nil
		}
		fmt.Printf("%-*s %8s %12s %8s %8s\n",
			NameColumnWidth, "ITEM", "QTY", "VALUE", "ADDED", "REMOVED")
		for _, line := range report.Items {
			fmt.Printf("%-*s %8d %12s %8d %8d\n",
				NameColumnWidth, line.Name, line.Quantity,
				formatMoney(line.Value, report.Currency), line.Added, line.Removed)
		}
		fmt.Printf("\nTotal: %d units, %s\n",
			report.TotalUnits, formatMoney(report.TotalValue, report.Currency))
	} else {
		outputJSON(report)
	}

	return nil
}
