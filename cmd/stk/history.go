package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/stockpile/stockpile/internal/storage"
)

var (
	historyItem  string
	historyOp    string
	historyLimit int
)

func init() {
	historyCmd.Flags().StringVar(&historyItem, "item", "", "Only show movements for this item")
	historyCmd.Flags().StringVar(&historyOp, "op", "", "Only show this operation (add, remove)")
	historyCmd.Flags().IntVar(&historyLimit, "limit", storage.DefaultTailLimit, "Maximum number of entries to show")
	rootCmd.AddCommand(historyCmd)
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent stock movements",
	Long: `Show recent stock movements from the journal, most recent first.

The journal index is rebuilt automatically when it is out of date.

Examples:
  stk history
  stk history --item bolt
  stk history --op remove --limit 5`,
	RunE: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	if historyOp != "" && historyOp != storage.OpAdd && historyOp != storage.OpRemove {
		exitWithError(ExitError, "invalid op %q: must be %q or %q", historyOp, storage.OpAdd, storage.OpRemove)
	}

	d := mustOpenDepot()

	entries, err := d.History(storage.TailFilter{
		Item:  historyItem,
		Op:    historyOp,
		Limit: historyLimit,
	})
	if err != nil {
		exitWithError(ExitDataError, "querying journal: %v", err)
	}

	// Ensure empty JSON array instead of null
	if entries == nil {
		entries = []storage.Entry{}
	}

	if humanOutput {
		if len(entries) == 0 {
			fmt.Println("No journal entries")
			return nil
		}
		for _, e := range entries {
			sign := "+"
			if e.Op == storage.OpRemove {
				sign = "-"
			}
			fmt.Printf("%s  %-7s %-*s %s%-6d (now %d)\n",
				formatTimestamp(e.At), e.Op, NameColumnWidth, e.Item, sign, e.Quantity, e.Remaining)
		}
	} else {
		outputJSON(entries)
	}

	return nil
}
