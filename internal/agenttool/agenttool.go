// Package agenttool exposes depot operations as agent-callable tools.
// Definitions follow the OpenAI function-calling shape. Call is a thin
// marshaling layer; validation and stock rules live in the inventory
// store, not here.
package agenttool

import (
	"encoding/json"

	"github.com/stockpile/stockpile/internal/depot"
)

// ToolDefinition describes a tool available to an agent.
type ToolDefinition struct {
	Type     string       `json:"type"`
	Function FunctionSpec `json:"function"`
}

// FunctionSpec describes the function signature.
type FunctionSpec struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Parameters  interface{} `json:"parameters,omitempty"` // JSON Schema
}

// Definitions returns the tool manifest for the inventory operations.
func Definitions() []ToolDefinition {
	return []ToolDefinition{
		{
			Type: "function",
			Function: FunctionSpec{
				Name:        "add_item",
				Description: "Add units of an item to the inventory. Quantities accumulate across calls; the given unit price becomes the item's current price.",
				Parameters: map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"name":     map[string]string{"type": "string", "description": "Item name (case sensitive)"},
						"quantity": map[string]string{"type": "integer", "description": "Units to add, must be positive"},
						"price":    map[string]string{"type": "number", "description": "Unit price, must not be negative (default 0)"},
					},
					"required": []string{"name", "quantity"},
				},
			},
		},
		{
			Type: "function",
			Function: FunctionSpec{
				Name:        "remove_item",
				Description: "Remove units of an item from the inventory. Fails if the item is unknown or holds fewer units than requested; an item drained to zero is dropped entirely.",
				Parameters: map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"name":     map[string]string{"type": "string", "description": "Item name (case sensitive)"},
						"quantity": map[string]string{"type": "integer", "description": "Units to remove, must be positive"},
					},
					"required": []string{"name", "quantity"},
				},
			},
		},
		{
			Type: "function",
			Function: FunctionSpec{
				Name:        "check_stock",
				Description: "Look up one item's current quantity and price.",
				Parameters: map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"name": map[string]string{"type": "string", "description": "Item name (case sensitive)"},
					},
					"required": []string{"name"},
				},
			},
		},
		{
			Type: "function",
			Function: FunctionSpec{
				Name:        "list_items",
				Description: "List every item currently in stock, sorted by name.",
				Parameters: map[string]interface{}{
					"type":       "object",
					"properties": map[string]interface{}{},
				},
			},
		},
	}
}

// Call dispatches a tool invocation against the depot. The reply is
// always a JSON document; failures come back in-band as {"error": ...}
// so agent callers have a single channel to parse.
func Call(d *depot.Depot, name, argsJSON string) string {
	switch name {
	case "add_item":
		var args struct {
			Name     string  `json:"name"`
			Quantity int     `json:"quantity"`
			Price    float64 `json:"price"`
		}
		if err := json.Unmarshal([]byte(argsJSON), &args); err != nil {
			return ErrJSON(err)
		}
		it, err := d.Add(args.Name, args.Quantity, args.Price)
		if err != nil {
			return ErrJSON(err)
		}
		out, _ := json.MarshalIndent(it, "", "  ")
		return string(out)

	case "remove_item":
		var args struct {
			Name     string `json:"name"`
			Quantity int    `json:"quantity"`
		}
		if err := json.Unmarshal([]byte(argsJSON), &args); err != nil {
			return ErrJSON(err)
		}
		it, dropped, err := d.Remove(args.Name, args.Quantity)
		if err != nil {
			return ErrJSON(err)
		}
		result := map[string]interface{}{
			"name":     it.Name,
			"quantity": it.Quantity,
			"price":    it.Price,
			"dropped":  dropped,
		}
		out, _ := json.MarshalIndent(result, "", "  ")
		return string(out)

	case "check_stock":
		var args struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal([]byte(argsJSON), &args); err != nil {
			return ErrJSON(err)
		}
		it, err := d.Check(args.Name)
		if err != nil {
			return ErrJSON(err)
		}
		out, _ := json.MarshalIndent(it, "", "  ")
		return string(out)

	case "list_items":
		items := d.List()
		out, _ := json.MarshalIndent(items, "", "  ")
		return string(out)

	default:
		out, _ := json.Marshal(map[string]string{"error": "unknown tool: " + name})
		return string(out)
	}
}

// ErrJSON renders an error as a JSON reply.
func ErrJSON(err error) string {
	b, _ := json.Marshal(map[string]string{"error": err.Error()})
	return string(b)
}
