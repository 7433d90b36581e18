package storage

import (
	"os"
	"path/filepath"
	"testing"
)

// writeJournal writes journal lines with fixed IDs and timestamps so
// ordering assertions are stable.
func writeJournal(t *testing.T, path string) {
	t.Helper()
	content := `{"id":"e1","op":"add","item":"bolt","quantity":10,"price":0.5,"remaining":10,"at":"2025-01-01T10:00:00Z"}
{"id":"e2","op":"add","item":"washer","quantity":200,"price":0.05,"remaining":200,"at":"2025-01-02T10:00:00Z"}
{"id":"e3","op":"remove","item":"bolt","quantity":3,"remaining":7,"at":"2025-01-03T10:00:00Z"}
{"id":"e4","op":"add","item":"bolt","quantity":5,"price":0.6,"remaining":12,"at":"2025-01-04T10:00:00Z"}
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestIndex_RebuildFromJournal(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "journal.db")
	journalPath := filepath.Join(tmpDir, "journal.jsonl")
	writeJournal(t, journalPath)

	idx, err := OpenIndex(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer idx.Close()

	count, err := idx.RebuildFromJournal(journalPath)
	if err != nil {
		t.Fatalf("RebuildFromJournal failed: %v", err)
	}
	if count != 4 {
		t.Errorf("expected 4 entries, got %d", count)
	}

	total, err := idx.CountEntries()
	if err != nil {
		t.Fatalf("CountEntries failed: %v", err)
	}
	if total != 4 {
		t.Errorf("CountEntries = %d, want 4", total)
	}
}

func TestIndex_RebuildFromJournal_EmptyFile(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "journal.db")
	journalPath := filepath.Join(tmpDir, "journal.jsonl")

	if err := os.WriteFile(journalPath, []byte(""), 0644); err != nil {
		t.Fatal(err)
	}

	idx, err := OpenIndex(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer idx.Close()

	count, err := idx.RebuildFromJournal(journalPath)
	if err != nil {
		t.Fatalf("RebuildFromJournal failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 entries, got %d", count)
	}
}

func TestIndex_RebuildReplacesOldRows(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "journal.db")
	journalPath := filepath.Join(tmpDir, "journal.jsonl")
	writeJournal(t, journalPath)

	idx, err := OpenIndex(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer idx.Close()

	if _, err := idx.RebuildFromJournal(journalPath); err != nil {
		t.Fatalf("RebuildFromJournal failed: %v", err)
	}

	// Shrink the journal and rebuild; old rows must not survive
	content := `{"id":"e9","op":"add","item":"nut","quantity":1,"remaining":1,"at":"2025-02-01T00:00:00Z"}
`
	if err := os.WriteFile(journalPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	count, err := idx.RebuildFromJournal(journalPath)
	if err != nil {
		t.Fatalf("RebuildFromJournal failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 entry after rebuild, got %d", count)
	}

	total, err := idx.CountEntries()
	if err != nil {
		t.Fatalf("CountEntries failed: %v", err)
	}
	if total != 1 {
		t.Errorf("CountEntries = %d, want 1", total)
	}
}

func TestIndex_NeedsSync(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "journal.db")
	journalPath := filepath.Join(tmpDir, "journal.jsonl")
	writeJournal(t, journalPath)

	idx, err := OpenIndex(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer idx.Close()

	// Fresh index has no stored hash
	stale, err := idx.NeedsSync(journalPath)
	if err != nil {
		t.Fatalf("NeedsSync failed: %v", err)
	}
	if !stale {
		t.Error("fresh index should need sync")
	}

	if _, err := idx.RebuildFromJournal(journalPath); err != nil {
		t.Fatalf("RebuildFromJournal failed: %v", err)
	}

	stale, err = idx.NeedsSync(journalPath)
	if err != nil {
		t.Fatalf("NeedsSync failed: %v", err)
	}
	if stale {
		t.Error("index should be in sync after rebuild")
	}

	// Appending makes the index stale again
	if err := AppendEntry(journalPath, NewEntry(OpAdd, "nut", 1, 0.1, 1)); err != nil {
		t.Fatalf("AppendEntry: %v", err)
	}
	stale, err = idx.NeedsSync(journalPath)
	if err != nil {
		t.Fatalf("NeedsSync failed: %v", err)
	}
	if !stale {
		t.Error("index should need sync after journal append")
	}
}

func TestIndex_LastSyncTime(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "journal.db")
	journalPath := filepath.Join(tmpDir, "journal.jsonl")
	writeJournal(t, journalPath)

	idx, err := OpenIndex(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer idx.Close()

	ts, err := idx.LastSyncTime()
	if err != nil {
		t.Fatalf("LastSyncTime failed: %v", err)
	}
	if !ts.IsZero() {
		t.Errorf("expected zero time before rebuild, got %v", ts)
	}

	if _, err := idx.RebuildFromJournal(journalPath); err != nil {
		t.Fatalf("RebuildFromJournal failed: %v", err)
	}

	ts, err = idx.LastSyncTime()
	if err != nil {
		t.Fatalf("LastSyncTime failed: %v", err)
	}
	if ts.IsZero() {
		t.Error("expected non-zero time after rebuild")
	}
}

func TestIndex_Tail(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "journal.db")
	journalPath := filepath.Join(tmpDir, "journal.jsonl")
	writeJournal(t, journalPath)

	idx, err := OpenIndex(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer idx.Close()

	if _, err := idx.RebuildFromJournal(journalPath); err != nil {
		t.Fatalf("RebuildFromJournal failed: %v", err)
	}

	// Newest first
	entries, err := idx.Tail(TailFilter{})
	if err != nil {
		t.Fatalf("Tail failed: %v", err)
	}
	if len(entries) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(entries))
	}
	if entries[0].ID != "e4" {
		t.Errorf("entries[0].ID = %q, want %q", entries[0].ID, "e4")
	}
	if entries[3].ID != "e1" {
		t.Errorf("entries[3].ID = %q, want %q", entries[3].ID, "e1")
	}

	// Item filter
	entries, err = idx.Tail(TailFilter{Item: "bolt"})
	if err != nil {
		t.Fatalf("Tail failed: %v", err)
	}
	if len(entries) != 3 {
		t.Errorf("expected 3 bolt entries, got %d", len(entries))
	}
	for _, e := range entries {
		if e.Item != "bolt" {
			t.Errorf("entry %s has item %q, want %q", e.ID, e.Item, "bolt")
		}
	}

	// Op filter
	entries, err = idx.Tail(TailFilter{Op: OpRemove})
	if err != nil {
		t.Fatalf("Tail failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 remove entry, got %d", len(entries))
	}
	if entries[0].ID != "e3" {
		t.Errorf("entries[0].ID = %q, want %q", entries[0].ID, "e3")
	}

	// Limit
	entries, err = idx.Tail(TailFilter{Limit: 2})
	if err != nil {
		t.Fatalf("Tail failed: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("expected 2 entries with limit, got %d", len(entries))
	}
}

func TestIndex_ItemTotals(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "journal.db")
	journalPath := filepath.Join(tmpDir, "journal.jsonl")
	writeJournal(t, journalPath)

	idx, err := OpenIndex(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer idx.Close()

	if _, err := idx.RebuildFromJournal(journalPath); err != nil {
		t.Fatalf("RebuildFromJournal failed: %v", err)
	}

	totals, err := idx.ItemTotals()
	if err != nil {
		t.Fatalf("ItemTotals failed: %v", err)
	}
	if len(totals) != 2 {
		t.Fatalf("expected 2 items, got %d", len(totals))
	}

	// Sorted by item name
	bolt := totals[0]
	if bolt.Item != "bolt" {
		t.Fatalf("totals[0].Item = %q, want %q", bolt.Item, "bolt")
	}
	if bolt.Added != 15 {
		t.Errorf("bolt.Added = %d, want 15", bolt.Added)
	}
	if bolt.Removed != 3 {
		t.Errorf("bolt.Removed = %d, want 3", bolt.Removed)
	}
	if bolt.Net != 12 {
		t.Errorf("bolt.Net = %d, want 12", bolt.Net)
	}

	washer := totals[1]
	if washer.Item != "washer" {
		t.Fatalf("totals[1].Item = %q, want %q", washer.Item, "washer")
	}
	if washer.Added != 200 || washer.Removed != 0 || washer.Net != 200 {
		t.Errorf("washer totals = %+v, want added 200, removed 0, net 200", washer)
	}
}
