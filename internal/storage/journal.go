package storage

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
)

// Journal operation names.
const (
	OpAdd    = "add"
	OpRemove = "remove"
)

// MaxJournalLineCapacity is the maximum buffer size for reading journal lines (1MB per line).
const MaxJournalLineCapacity = 1024 * 1024

// Entry is one stock movement, appended to the journal after every
// successful mutation. The journal is append-only; the inventory
// document stays the source of truth for current levels.
type Entry struct {
	ID        string  `json:"id"`
	Op        string  `json:"op"`
	Item      string  `json:"item"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price,omitempty"`
	Remaining int     `json:"remaining"`
	At        string  `json:"at"`
}

// NewEntry builds a journal entry with a fresh ID and a UTC timestamp.
func NewEntry(op, itemName string, quantity int, price float64, remaining int) Entry {
	return Entry{
		ID:        uuid.NewString(),
		Op:        op,
		Item:      itemName,
		Quantity:  quantity,
		Price:     price,
		Remaining: remaining,
		At:        time.Now().UTC().Format(time.RFC3339),
	}
}

// ReadAllEntries reads all entries from a journal file.
func ReadAllEntries(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // Empty journal returns empty slice
		}
		return nil, fmt.Errorf("opening journal file: %w", err)
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)

	// Increase buffer size for long lines
	buf := make([]byte, MaxJournalLineCapacity)
	scanner.Buffer(buf, MaxJournalLineCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue // Skip empty lines
		}

		var e Entry
		if err := json.Unmarshal(line, &e); err != nil {
			return nil, fmt.Errorf("parsing line %d: %w", lineNum, err)
		}
		entries = append(entries, e)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading journal file: %w", err)
	}

	return entries, nil
}

// AppendEntry adds an entry to the end of a journal file.
func AppendEntry(path string, e Entry) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening journal file for append: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encoding entry: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("writing entry: %w", err)
	}
	if _, err := f.WriteString("\n"); err != nil {
		return fmt.Errorf("writing newline: %w", err)
	}

	return nil
}

// ComputeJournalHash computes a SHA256 hash of a journal file's contents.
func ComputeJournalHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Empty file hash
			h := sha256.Sum256([]byte{})
			return hex.EncodeToString(h[:]), nil
		}
		return "", fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("reading file: %w", err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
