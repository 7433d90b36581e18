package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(removeCmd)
}

var removeCmd = &cobra.Command{
	Use:   "remove <name> <quantity>",
	Short: "Remove stock for an item",
	Long: `Remove stock for an item.

Removing more than the quantity on hand fails and leaves the inventory
unchanged. An item whose stock reaches zero is dropped from the inventory.

Examples:
  stk remove bolt 3
  stk remove washer 200`,
	Args: cobra.ExactArgs(2),
	RunE: runRemove,
}

// RemoveResult is the response for the remove command.
type RemoveResult struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Dropped  bool    `json:"dropped"`
}

func runRemove(cmd *cobra.Command, args []string) error {
	name := args[0]

	qty, err := strconv.Atoi(args[1])
	if err != nil {
		exitWithError(ExitError, "invalid quantity %q: must be an integer", args[1])
	}

	d := mustOpenDepot()

	it, dropped, err := d.Remove(name, qty)
	if err != nil {
		exitWithError(exitCodeForStoreError(err), "%v", err)
	}

	if humanOutput {
		if dropped {
			fmt.Printf("Removed %d %s (none left, entry dropped)\n", qty, name)
		} else {
			fmt.Printf("Removed %d %s (%d left @ %s)\n",
				qty, it.Name, it.Quantity, formatMoney(it.Price, d.Config().DisplayCurrency()))
		}
	} else {
		outputJSON(RemoveResult{
			Name:     it.Name,
			Quantity: it.Quantity,
			Price:    it.Price,
			Dropped:  dropped,
		})
	}

	return nil
}
