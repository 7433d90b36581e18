// Package storage handles inventory persistence in JSON, JSONL, and SQLite formats.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/stockpile/stockpile/internal/item"
)

// docEntry is the on-disk value for one item. The enclosing document is a
// JSON object keyed by item name.
type docEntry struct {
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// ReadDocument reads the inventory document at the given path.
// A missing file returns an empty map; a malformed or invalid document
// is an error, so a later write cannot silently clobber unreadable data.
func ReadDocument(path string) (map[string]item.Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]item.Item{}, nil
		}
		return nil, fmt.Errorf("reading inventory file: %w", err)
	}

	var doc map[string]docEntry
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing inventory file %s: %w", path, err)
	}

	items := make(map[string]item.Item, len(doc))
	for name, entry := range doc {
		if name == "" {
			return nil, fmt.Errorf("inventory file %s: entry with empty item name", path)
		}
		if entry.Quantity < 0 {
			return nil, fmt.Errorf("inventory file %s: item %q has negative quantity %d", path, name, entry.Quantity)
		}
		if entry.Price < 0 {
			return nil, fmt.Errorf("inventory file %s: item %q has negative price", path, name)
		}
		items[name] = item.Item{Name: name, Quantity: entry.Quantity, Price: entry.Price}
	}

	return items, nil
}

// WriteDocument writes the inventory document atomically.
// Uses temp file + rename so a crash never leaves a partial document.
func WriteDocument(path string, items map[string]item.Item) error {
	doc := make(map[string]docEntry, len(items))
	for name, it := range items {
		doc[name] = docEntry{Quantity: it.Quantity, Price: it.Price}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding inventory: %w", err)
	}
	data = append(data, '\n')

	// Create temp file in same directory for atomic rename
	dir := filepath.Dir(path)
	tmpFile, err := os.CreateTemp(dir, ".tmp-*.json")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	// Clean up temp file on error
	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("writing inventory: %w", err)
	}

	// Close and sync
	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	// Atomic rename
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("renaming temp file: %w", err)
	}

	success = true
	return nil
}
