package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listLimit int

func init() {
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "Maximum number of items to show (0 = all)")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all items in the inventory",
	Long: `List all items in the inventory, sorted by name.

Examples:
  stk list
  stk list --limit 10
  stk list --human`,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	d := mustOpenDepot()

	items := d.List()
	if listLimit > 0 && len(items) > listLimit {
		items = items[:listLimit]
	}

	if humanOutput {
		if len(items) == 0 {
			fmt.Println("No items in inventory")
			return nil
		}
		currency := d.Config().DisplayCurrency()
		for _, it := range items {
			fmt.Printf("%-*s %8d %12s\n",
				NameColumnWidth, it.Name, it.Quantity, formatMoney(it.Price, currency))
		}
	} else {
		outputJSON(items)
	}

	return nil
}
