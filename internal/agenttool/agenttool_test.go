package agenttool

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stockpile/stockpile/internal/depot"
)

func newTestDepot(t *testing.T) *depot.Depot {
	t.Helper()
	d, err := depot.Init(t.TempDir())
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	return d
}

func TestDefinitions(t *testing.T) {
	defs := Definitions()
	if len(defs) != 4 {
		t.Fatalf("expected 4 tool definitions, got %d", len(defs))
	}

	want := map[string]bool{
		"add_item":    false,
		"remove_item": false,
		"check_stock": false,
		"list_items":  false,
	}
	for _, def := range defs {
		if def.Type != "function" {
			t.Errorf("tool %s type = %q, want function", def.Function.Name, def.Type)
		}
		if def.Function.Description == "" {
			t.Errorf("tool %s has no description", def.Function.Name)
		}
		if _, ok := want[def.Function.Name]; !ok {
			t.Errorf("unexpected tool %q", def.Function.Name)
			continue
		}
		want[def.Function.Name] = true
	}
	for name, seen := range want {
		if !seen {
			t.Errorf("missing tool %q", name)
		}
	}
}

func TestDefinitions_Marshal(t *testing.T) {
	// The manifest must serialize cleanly for agent clients
	data, err := json.Marshal(Definitions())
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(data), `"add_item"`) {
		t.Errorf("manifest missing add_item: %s", data)
	}
	if !strings.Contains(string(data), `"parameters"`) {
		t.Errorf("manifest missing parameters: %s", data)
	}
}

func TestCall_AddItem(t *testing.T) {
	d := newTestDepot(t)

	out := Call(d, "add_item", `{"name":"bolt","quantity":10,"price":0.5}`)

	var result struct {
		Name     string  `json:"name"`
		Quantity int     `json:"quantity"`
		Price    float64 `json:"price"`
	}
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("reply is not JSON: %v\n%s", err, out)
	}
	if result.Name != "bolt" || result.Quantity != 10 || result.Price != 0.5 {
		t.Errorf("result = %+v, want bolt x10 at 0.5", result)
	}
}

func TestCall_AddItem_DefaultPrice(t *testing.T) {
	d := newTestDepot(t)

	out := Call(d, "add_item", `{"name":"bolt","quantity":3}`)

	var result struct {
		Price float64 `json:"price"`
	}
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("reply is not JSON: %v\n%s", err, out)
	}
	if result.Price != 0 {
		t.Errorf("Price = %v, want 0 when omitted", result.Price)
	}
}

func TestCall_AddItem_InvalidQuantity(t *testing.T) {
	d := newTestDepot(t)

	out := Call(d, "add_item", `{"name":"bolt","quantity":0}`)
	assertErrorReply(t, out, "quantity")
}

func TestCall_BadArgumentsJSON(t *testing.T) {
	d := newTestDepot(t)

	out := Call(d, "add_item", `{broken`)
	assertErrorReply(t, out, "")
}

func TestCall_RemoveItem(t *testing.T) {
	d := newTestDepot(t)
	Call(d, "add_item", `{"name":"bolt","quantity":10,"price":0.5}`)

	out := Call(d, "remove_item", `{"name":"bolt","quantity":10}`)

	var result struct {
		Quantity int  `json:"quantity"`
		Dropped  bool `json:"dropped"`
	}
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("reply is not JSON: %v\n%s", err, out)
	}
	if result.Quantity != 0 {
		t.Errorf("Quantity = %d, want 0", result.Quantity)
	}
	if !result.Dropped {
		t.Error("expected dropped = true when drained to zero")
	}
}

func TestCall_RemoveItem_Insufficient(t *testing.T) {
	d := newTestDepot(t)
	Call(d, "add_item", `{"name":"bolt","quantity":5,"price":0.5}`)

	out := Call(d, "remove_item", `{"name":"bolt","quantity":50}`)
	assertErrorReply(t, out, "insufficient")

	// The failed call must not touch stock
	check := Call(d, "check_stock", `{"name":"bolt"}`)
	var result struct {
		Quantity int `json:"quantity"`
	}
	if err := json.Unmarshal([]byte(check), &result); err != nil {
		t.Fatalf("reply is not JSON: %v\n%s", err, check)
	}
	if result.Quantity != 5 {
		t.Errorf("Quantity = %d, want 5", result.Quantity)
	}
}

func TestCall_CheckStock_NotFound(t *testing.T) {
	d := newTestDepot(t)

	out := Call(d, "check_stock", `{"name":"ghost"}`)
	assertErrorReply(t, out, "not found")
}

func TestCall_ListItems(t *testing.T) {
	d := newTestDepot(t)
	Call(d, "add_item", `{"name":"washer","quantity":2,"price":0.05}`)
	Call(d, "add_item", `{"name":"bolt","quantity":1,"price":0.5}`)

	out := Call(d, "list_items", "")

	var items []struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal([]byte(out), &items); err != nil {
		t.Fatalf("reply is not JSON: %v\n%s", err, out)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Name != "bolt" || items[1].Name != "washer" {
		t.Errorf("items out of order: %+v", items)
	}
}

func TestCall_ListItems_Empty(t *testing.T) {
	d := newTestDepot(t)

	out := Call(d, "list_items", "")
	if strings.TrimSpace(out) != "[]" {
		t.Errorf("empty inventory reply = %q, want []", out)
	}
}

func TestCall_UnknownTool(t *testing.T) {
	d := newTestDepot(t)

	out := Call(d, "explode_warehouse", "{}")
	assertErrorReply(t, out, "unknown tool")
}

// assertErrorReply checks that out is an {"error": ...} document whose
// message contains substr (when non-empty).
func assertErrorReply(t *testing.T, out, substr string) {
	t.Helper()
	var reply struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal([]byte(out), &reply); err != nil {
		t.Fatalf("reply is not JSON: %v\n%s", err, out)
	}
	if reply.Error == "" {
		t.Fatalf("expected error reply, got %s", out)
	}
	if substr != "" && !strings.Contains(reply.Error, substr) {
		t.Errorf("error %q should mention %q", reply.Error, substr)
	}
}
