// Package config handles depot and global configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents depot configuration stored in .stockpile/config.json.
type Config struct {
	InventoryFile string `json:"inventory_file,omitempty"` // Override path for the inventory document
	Currency      string `json:"currency,omitempty"`       // ISO 4217 code shown in human output
}

const (
	StockpileDir         = ".stockpile"
	ConfigFile           = "config.json"
	DefaultInventoryFile = "inventory.json"
	JournalFile          = "journal.jsonl"
	CacheDir             = "cache"
	JournalDBFile        = "journal.db"
)

// DefaultCurrency is used when no currency is configured.
const DefaultCurrency = "USD"

// StockpilePath returns the path to the .stockpile directory from a root path.
func StockpilePath(root string) string {
	return filepath.Join(root, StockpileDir)
}

// ConfigPath returns the path to config.json from a root path.
func ConfigPath(root string) string {
	return filepath.Join(root, StockpileDir, ConfigFile)
}

// JournalPath returns the path to journal.jsonl from a root path.
func JournalPath(root string) string {
	return filepath.Join(root, StockpileDir, JournalFile)
}

// CachePath returns the path to the cache directory from a root path.
func CachePath(root string) string {
	return filepath.Join(root, StockpileDir, CacheDir)
}

// JournalDBPath returns the path to journal.db from a root path.
func JournalDBPath(root string) string {
	return filepath.Join(root, StockpileDir, CacheDir, JournalDBFile)
}

// InventoryPath returns the path to the inventory document for a depot,
// honoring the inventory_file override. A relative override resolves
// against the depot root.
func InventoryPath(root string, cfg *Config) string {
	override := ""
	if cfg != nil {
		override = cfg.InventoryFile
	}
	if override == "" {
		return filepath.Join(root, StockpileDir, DefaultInventoryFile)
	}

	override = ExpandPath(override)
	if filepath.IsAbs(override) {
		return override
	}
	return filepath.Join(root, override)
}

// IsDepot checks if the given path contains a stockpile depot.
func IsDepot(root string) bool {
	info, err := os.Stat(StockpilePath(root))
	return err == nil && info.IsDir()
}

// FindDepot walks up from the given path to find a stockpile depot.
// Returns the depot root path or an error if not found.
func FindDepot(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	for {
		if IsDepot(abs) {
			return abs, nil
		}

		parent := filepath.Dir(abs)
		if parent == abs {
			return "", fmt.Errorf("not in a stockpile depot (no .stockpile directory found)")
		}
		abs = parent
	}
}

// Load reads configuration from the depot at the given root.
func Load(root string) (*Config, error) {
	data, err := os.ReadFile(ConfigPath(root))
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}

// Save writes configuration to the depot at the given root.
func (c *Config) Save(root string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(ConfigPath(root), data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// DisplayCurrency returns the configured currency, defaulting to USD.
func (c *Config) DisplayCurrency() string {
	if c.Currency == "" {
		return DefaultCurrency
	}
	return c.Currency
}

// ValidateCurrency checks that the currency value looks like an ISO 4217 code.
func ValidateCurrency(code string) error {
	if code == "" {
		return nil // Empty defaults to USD
	}

	if len(code) != 3 {
		return fmt.Errorf("invalid currency: %s (want a 3-letter code like USD)", code)
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return fmt.Errorf("invalid currency: %s (want a 3-letter code like USD)", code)
		}
	}

	return nil
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path // Return original if we can't get home directory
	}

	return filepath.Join(home, path[1:])
}
