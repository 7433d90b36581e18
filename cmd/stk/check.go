package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check <name>",
	Short: "Check stock for an item",
	Long: `Check the quantity and price currently recorded for an item.

Example:
  stk check bolt`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	d := mustOpenDepot()

	it, err := d.Check(args[0])
	if err != nil {
		exitWithError(exitCodeForStoreError(err), "%v", err)
	}

	if humanOutput {
		currency := d.Config().DisplayCurrency()
		value := float64(it.Quantity) * it.Price
		fmt.Printf("%s: %d units @ %s (value %s)\n",
			it.Name, it.Quantity, formatMoney(it.Price, currency), formatMoney(value, currency))
	} else {
		outputJSON(it)
	}

	return nil
}
