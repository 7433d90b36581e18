package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/stockpile/stockpile/internal/config"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Get or set configuration values",
	Long: `Get or set configuration values.

Usage:
  stk config                               # Show all config
  stk config currency                      # Get specific value
  stk config currency EUR                  # Set value
  stk config inventory-file stock.json     # Store inventory elsewhere

Keys:
  inventory-file  Path to the inventory document, absolute or relative
                  to the depot root (default: .stockpile/inventory.json).
                  The current document is not moved; copy it yourself
                  when switching paths.
  currency        Display currency code, three letters (default: USD)`,
	Args: cobra.MaximumNArgs(2),
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	root := mustFindDepot()

	cfg, err := config.Load(root)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}

	// No args: show all config
	if len(args) == 0 {
		if humanOutput {
			fmt.Printf("inventory-file: %s\n", cfg.InventoryFile)
			fmt.Printf("currency:       %s\n", cfg.DisplayCurrency())
		} else {
			outputJSON(ConfigResponse{
				InventoryFile: cfg.InventoryFile,
				Currency:      cfg.Currency,
			})
		}
		return nil
	}

	// Convert key format (inventory_file -> inventory-file)
	key := args[0]
	normalizedKey := normalizeKey(key)

	// One arg: get specific value
	if len(args) == 1 {
		switch normalizedKey {
		case "inventory-file":
			if humanOutput {
				fmt.Println(cfg.InventoryFile)
			} else {
				outputJSON(map[string]string{"inventory_file": cfg.InventoryFile})
			}
		case "currency":
			if humanOutput {
				fmt.Println(cfg.DisplayCurrency())
			} else {
				outputJSON(map[string]string{"currency": cfg.Currency})
			}
		default:
			exitWithError(ExitError, "unknown configuration key: %s", key)
		}
		return nil
	}

	// Two args: set value
	value := args[1]

	switch normalizedKey {
	case "inventory-file":
		cfg.InventoryFile = config.ExpandPath(value)

	case "currency":
		value = strings.ToUpper(value)
		if err := config.ValidateCurrency(value); err != nil {
			exitWithError(ExitError, "%v", err)
		}
		cfg.Currency = value

	default:
		exitWithError(ExitError, "unknown configuration key: %s", key)
	}

	if err := cfg.Save(root); err != nil {
		exitWithError(ExitError, "saving config: %v", err)
	}

	// Output success
	if humanOutput {
		fmt.Printf("Updated %s to %s\n", normalizedKey, value)
	} else {
		outputJSON(UpdateResponse{
			Status: "updated",
			Key:    normalizedKey,
			Value:  value,
		})
	}

	return nil
}

// normalizeKey converts key formats (inventory_file, inventory-file) to consistent format
func normalizeKey(key string) string {
	key = strings.ToLower(key)
	key = strings.ReplaceAll(key, "_", "-")
	return key
}
