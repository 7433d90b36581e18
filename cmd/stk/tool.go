package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/stockpile/stockpile/internal/agenttool"
)

var toolCallStdin bool

func init() {
	rootCmd.AddCommand(toolCmd)
	toolCmd.AddCommand(toolManifestCmd)
	toolCmd.AddCommand(toolCallCmd)
	toolCallCmd.Flags().BoolVar(&toolCallStdin, "stdin", false, "Read arguments JSON from stdin")
}

var toolCmd = &cobra.Command{
	Use:   "tool",
	Short: "Agent tool binding",
	Long: `Expose inventory operations as agent tools.

'tool manifest' prints the tool definitions for registering with an LLM
agent framework. 'tool call' dispatches one tool invocation and prints
the tool's JSON reply.`,
}

var toolManifestCmd = &cobra.Command{
	Use:   "manifest",
	Short: "Print the agent tool definitions",
	Long: `Print the tool definitions as a JSON array.

The definitions follow the OpenAI function-calling shape and cover
add_item, remove_item, check_stock, and list_items.`,
	RunE: runToolManifest,
}

func runToolManifest(cmd *cobra.Command, args []string) error {
	return outputJSON(agenttool.Definitions())
}

var toolCallCmd = &cobra.Command{
	Use:   "call <name> [args-json]",
	Short: "Invoke one agent tool",
	Long: `Invoke one agent tool by name with JSON arguments.

The reply is always JSON on stdout: either the tool result or an object
with a single "error" key. The exit code stays 0 for tool-level errors
so agent frameworks can relay them in band.

Examples:
  stk tool call add_item '{"name": "bolt", "quantity": 10, "price": 0.5}'
  stk tool call check_stock '{"name": "bolt"}'
  echo '{"name": "bolt", "quantity": 2}' | stk tool call remove_item --stdin
  stk tool call list_items '{}'`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runToolCall,
}

func runToolCall(cmd *cobra.Command, args []string) error {
	argsJSON := "{}"
	switch {
	case toolCallStdin:
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			exitWithError(ExitError, "reading stdin: %v", err)
		}
		argsJSON = string(data)
	case len(args) == 2:
		argsJSON = args[1]
	}
	if strings.TrimSpace(argsJSON) == "" {
		argsJSON = "{}"
	}

	d := mustOpenDepot()

	fmt.Println(agenttool.Call(d, args[0], argsJSON))
	return nil
}
