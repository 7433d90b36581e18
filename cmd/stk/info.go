package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(infoCmd)
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show detailed information about the depot",
	Long: `Display detailed information about the depot including file sizes,
item and journal counts, total value, and index sync status.

Example:
  stk info`,
	RunE: runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	d := mustOpenDepot()

	info, err := d.Info()
	if err != nil {
		exitWithError(ExitDataError, "getting depot info: %v", err)
	}

	if humanOutput {
		fmt.Printf("Depot: %s\n\n", info.Root)

		fmt.Println("Files:")
		fmt.Printf("  Inventory: %s (%s)\n", info.InventoryPath, formatBytes(info.InventorySize))
		fmt.Printf("  Journal:   %s (%s)\n", info.JournalPath, formatBytes(info.JournalSize))
		fmt.Printf("  Index:     %s (%s)\n", info.IndexPath, formatBytes(info.IndexSize))

		fmt.Printf("\nItems: %d (%d units)\n", info.Items, info.TotalUnits)
		fmt.Printf("Value: %s\n", formatMoney(info.TotalValue, info.Currency))
		fmt.Printf("Journal Entries: %d\n", info.JournalEntries)

		if !info.LastSync.IsZero() {
			fmt.Printf("Last Sync: %s\n", info.LastSync.Format("2006-01-02T15:04:05Z"))
		}

		if info.InSync {
			fmt.Println("Sync Status: In sync")
		} else {
			fmt.Println("Sync Status: Out of sync (run 'stk rebuild')")
		}
	} else {
		outputJSON(info)
	}

	return nil
}
