package main

import (
	"strings"
	"testing"
)

func TestParseJSONLItems(t *testing.T) {
	input := `{"name": "bolt", "quantity": 10, "price": 0.5}

{"name": "washer", "quantity": 200}
not json
{"name": "nut", "quantity": 3, "price": 0.1}
`
	records, errs := parseJSONLItems(strings.NewReader(input))

	if len(records) != 3 {
		t.Fatalf("parsed %d records, want 3", len(records))
	}
	if len(errs) != 1 {
		t.Fatalf("got %d errors (%v), want 1", len(errs), errs)
	}
	if !strings.Contains(errs[0], "line 4") {
		t.Errorf("error = %q, want a line 4 reference", errs[0])
	}

	if records[0].name != "bolt" || records[0].quantity != 10 || records[0].price != 0.5 {
		t.Errorf("records[0] = %+v, want bolt 10 0.5", records[0])
	}
	if records[1].name != "washer" || records[1].price != 0 {
		t.Errorf("records[1] = %+v, want washer with price 0", records[1])
	}
	if records[2].line != 5 {
		t.Errorf("records[2].line = %d, want 5", records[2].line)
	}
}

func TestParseJSONLItems_Empty(t *testing.T) {
	records, errs := parseJSONLItems(strings.NewReader(""))
	if len(records) != 0 || len(errs) != 0 {
		t.Errorf("parseJSONLItems(empty) = %d records, %d errors, want 0, 0", len(records), len(errs))
	}
}

func TestParseCSVItems(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantRecords int
		wantErrs    int
	}{
		{
			name:        "with header",
			input:       "name,quantity,price\nbolt,10,0.5\nwasher,200,0.05\n",
			wantRecords: 2,
		},
		{
			name:        "without header",
			input:       "bolt,10,0.5\n",
			wantRecords: 1,
		},
		{
			name:        "price optional",
			input:       "bolt,10\n",
			wantRecords: 1,
		},
		{
			name:        "quoted name with comma",
			input:       "\"nut, hex m3\",500,0.01\n",
			wantRecords: 1,
		},
		{
			name:     "invalid quantity",
			input:    "bolt,ten,0.5\n",
			wantErrs: 1,
		},
		{
			name:     "too few fields",
			input:    "bolt\n",
			wantErrs: 1,
		},
		{
			name:        "mixed good and bad rows",
			input:       "bolt,10,0.5\nwasher,many\nnut,3\n",
			wantRecords: 2,
			wantErrs:    1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, errs := parseCSVItems(strings.NewReader(tt.input))
			if len(records) != tt.wantRecords {
				t.Errorf("parsed %d records, want %d", len(records), tt.wantRecords)
			}
			if len(errs) != tt.wantErrs {
				t.Errorf("got %d errors (%v), want %d", len(errs), errs, tt.wantErrs)
			}
		})
	}
}

func TestParseCSVItems_Fields(t *testing.T) {
	records, errs := parseCSVItems(strings.NewReader("name,quantity,price\nbolt,10,0.5\n"))
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(records) != 1 {
		t.Fatalf("parsed %d records, want 1", len(records))
	}

	rec := records[0]
	if rec.name != "bolt" || rec.quantity != 10 || rec.price != 0.5 {
		t.Errorf("record = %+v, want bolt 10 0.5", rec)
	}
	if rec.line != 2 {
		t.Errorf("line = %d, want 2", rec.line)
	}
}
