// Package item defines the core domain type for inventory entries.
package item

import (
	"errors"
	"fmt"
)

// Item represents a named inventory entry with its current stock level
// and unit price. Names are case-sensitive and unique within a depot.
type Item struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// Validation errors.
var (
	ErrEmptyName       = errors.New("item name is required")
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
	ErrNegativePrice   = errors.New("price must not be negative")
)

// ValidateName checks that a name is usable as an inventory key.
func ValidateName(name string) error {
	if name == "" {
		return ErrEmptyName
	}
	return nil
}

// ValidateQuantity checks a requested add/remove amount. Zero is rejected:
// a movement of nothing is always a caller mistake.
func ValidateQuantity(qty int) error {
	if qty <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidQuantity, qty)
	}
	return nil
}

// ValidatePrice checks a unit price. Zero is allowed (untracked or free items).
func ValidatePrice(price float64) error {
	if price < 0 {
		return fmt.Errorf("%w: got %g", ErrNegativePrice, price)
	}
	return nil
}

// ValidateForAdd validates the full argument set of an add operation.
func ValidateForAdd(name string, qty int, price float64) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if err := ValidateQuantity(qty); err != nil {
		return err
	}
	return ValidatePrice(price)
}

// ValidateForRemove validates the argument set of a remove operation.
func ValidateForRemove(name string, qty int) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	return ValidateQuantity(qty)
}
