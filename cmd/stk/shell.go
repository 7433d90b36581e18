package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/stockpile/stockpile/internal/depot"
)

func init() {
	rootCmd.AddCommand(shellCmd)
}

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Interactive inventory shell",
	Long: `Start an interactive shell for quick inventory edits.

Commands:
  add <qty> <name>     Add stock (alias: insert)
  remove <qty> <name>  Remove stock (alias: delete)
  check <name>         Show an item (alias: stock)
  list                 Show all items (alias: show)
  exit                 Leave the shell (alias: quit)

Item names may contain spaces; everything after the quantity is the name.`,
	RunE: runShell,
}

func runShell(cmd *cobra.Command, args []string) error {
	d := mustOpenDepot()

	fmt.Println("Inventory shell ready. Commands: add <qty> <name>, remove <qty> <name>, check <name>, list, exit")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			fmt.Println("\nExiting.")
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if lower := strings.ToLower(line); lower == "exit" || lower == "quit" {
			fmt.Println("Goodbye.")
			break
		}
		fmt.Println(handleShellCommand(d, line))
	}

	return scanner.Err()
}

// handleShellCommand applies one shell line to the depot and returns the
// text to print. Domain failures come back as messages, not errors, so
// the shell keeps running.
func handleShellCommand(d *depot.Depot, line string) string {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return ""
	}

	switch strings.ToLower(parts[0]) {
	case "add", "insert":
		if len(parts) < 3 {
			return "Can't parse quantity. Usage: add <qty> <item name>"
		}
		qty, err := strconv.Atoi(parts[1])
		if err != nil {
			return "Can't parse quantity. Usage: add <qty> <item name>"
		}
		name := strings.Join(parts[2:], " ")

		// Shell adds carry no price; an existing item keeps its price
		price := 0.0
		if cur, checkErr := d.Check(name); checkErr == nil {
			price = cur.Price
		}

		it, err := d.Add(name, qty, price)
		if err != nil {
			return err.Error()
		}
		return fmt.Sprintf("Added %d x %s. New qty: %d", qty, it.Name, it.Quantity)

	case "remove", "delete":
		if len(parts) < 3 {
			return "Can't parse quantity. Usage: remove <qty> <item name>"
		}
		qty, err := strconv.Atoi(parts[1])
		if err != nil {
			return "Can't parse quantity. Usage: remove <qty> <item name>"
		}
		name := strings.Join(parts[2:], " ")

		it, dropped, err := d.Remove(name, qty)
		if err != nil {
			return err.Error()
		}
		if dropped {
			return fmt.Sprintf("Removed item '%s' completely.", name)
		}
		return fmt.Sprintf("Removed %d x %s. Remaining qty: %d", qty, name, it.Quantity)

	case "check", "stock":
		if len(parts) < 2 {
			return "Usage: check <item name>"
		}
		name := strings.Join(parts[1:], " ")

		it, err := d.Check(name)
		if err != nil {
			return err.Error()
		}
		return fmt.Sprintf("%s: quantity=%d, price=%g", it.Name, it.Quantity, it.Price)

	case "list", "show":
		items := d.List()
		if len(items) == 0 {
			return "Inventory is empty."
		}
		lines := make([]string, len(items))
		for i, it := range items {
			lines[i] = fmt.Sprintf("%s: qty=%d, price=%g", it.Name, it.Quantity, it.Price)
		}
		return strings.Join(lines, "\n")

	default:
		return "I didn't understand. Try: add, remove, check, list"
	}
}
