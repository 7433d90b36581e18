// Package inventory implements the stock ledger backed by the inventory document.
package inventory

import (
	"errors"
	"fmt"
	"sort"

	"github.com/stockpile/stockpile/internal/item"
	"github.com/stockpile/stockpile/internal/storage"
)

// Sentinel errors for stock operations.
var (
	// ErrNotFound is returned when an operation names an item the inventory doesn't hold.
	ErrNotFound = errors.New("item not found in inventory")
	// ErrInsufficientStock is returned when a removal asks for more than is on hand.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Store holds the inventory for one depot. Item names are case
// sensitive, so "Bolt" and "bolt" are distinct entries.
type Store struct {
	path  string
	items map[string]item.Item
}

// Load reads the inventory document at the given path into a new store.
// A missing document yields an empty store; an unreadable one is an error.
func Load(path string) (*Store, error) {
	items, err := storage.ReadDocument(path)
	if err != nil {
		return nil, err
	}
	return &Store{path: path, items: items}, nil
}

// Add records a delivery of qty units at the given unit price.
// Quantities accumulate across deliveries; the price always reflects
// the latest one. Returns the item's state after the update.
func (s *Store) Add(name string, qty int, price float64) (item.Item, error) {
	if err := item.ValidateForAdd(name, qty, price); err != nil {
		return item.Item{}, err
	}

	it := s.items[name]
	it.Name = name
	it.Quantity += qty
	it.Price = price
	s.items[name] = it

	// In-memory state stays authoritative even if the write fails
	if err := s.Save(); err != nil {
		return it, err
	}
	return it, nil
}

// Remove issues qty units of the named item. An item whose quantity
// reaches zero is dropped from the inventory entirely. Returns the
// item's state after the update and whether it was dropped.
func (s *Store) Remove(name string, qty int) (item.Item, bool, error) {
	if err := item.ValidateForRemove(name, qty); err != nil {
		return item.Item{}, false, err
	}

	it, ok := s.items[name]
	if !ok {
		return item.Item{}, false, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if qty > it.Quantity {
		return item.Item{}, false, fmt.Errorf("%w: %s has %d, requested %d",
			ErrInsufficientStock, name, it.Quantity, qty)
	}

	it.Quantity -= qty
	dropped := it.Quantity == 0
	if dropped {
		delete(s.items, name)
	} else {
		s.items[name] = it
	}

	if err := s.Save(); err != nil {
		return it, dropped, err
	}
	return it, dropped, nil
}

// Check returns the current state of the named item.
func (s *Store) Check(name string) (item.Item, error) {
	if err := item.ValidateName(name); err != nil {
		return item.Item{}, err
	}

	it, ok := s.items[name]
	if !ok {
		return item.Item{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return it, nil
}

// List returns a snapshot of all items sorted by name. Each call
// builds a fresh slice, so a held snapshot never mutates under the
// caller and repeated calls observe current state.
func (s *Store) List() []item.Item {
	items := make([]item.Item, 0, len(s.items))
	for _, it := range s.items {
		items = append(items, it)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].Name < items[j].Name
	})
	return items
}

// Len returns the number of distinct items held.
func (s *Store) Len() int {
	return len(s.items)
}

// Save writes the inventory document to disk.
func (s *Store) Save() error {
	return storage.WriteDocument(s.path, s.items)
}

// Path returns the location of the backing document.
func (s *Store) Path() string {
	return s.path
}
