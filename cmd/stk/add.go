package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(addCmd)
}

var addCmd = &cobra.Command{
	Use:   "add <name> <quantity> [price]",
	Short: "Add stock for an item",
	Long: `Add stock for an item.

The quantity is added to any existing stock and the price becomes the
item's current per-unit price. When the price is omitted the item keeps
its current price; new items start at 0.

Examples:
  stk add bolt 10 0.50
  stk add washer 200 0.05
  stk add "m3 hex nut" 500`,
	Args: cobra.RangeArgs(2, 3),
	RunE: runAdd,
}

func runAdd(cmd *cobra.Command, args []string) error {
	name := args[0]

	qty, err := strconv.Atoi(args[1])
	if err != nil {
		exitWithError(ExitError, "invalid quantity %q: must be an integer", args[1])
	}

	price := 0.0
	havePrice := len(args) == 3
	if havePrice {
		price, err = strconv.ParseFloat(args[2], 64)
		if err != nil {
			exitWithError(ExitError, "invalid price %q: must be a number", args[2])
		}
	}

	d := mustOpenDepot()

	// An omitted price keeps the item's current price
	if !havePrice {
		if cur, checkErr := d.Check(name); checkErr == nil {
			price = cur.Price
		}
	}

	it, err := d.Add(name, qty, price)
	if err != nil {
		exitWithError(exitCodeForStoreError(err), "%v", err)
	}

	if humanOutput {
		fmt.Printf("Added %d %s (now %d @ %s)\n",
			qty, it.Name, it.Quantity, formatMoney(it.Price, d.Config().DisplayCurrency()))
	} else {
		outputJSON(it)
	}

	return nil
}
