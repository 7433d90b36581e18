// Package depot ties the inventory document, movement journal, and
// journal index together for one depot on disk.
package depot

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/stockpile/stockpile/internal/config"
	"github.com/stockpile/stockpile/internal/inventory"
	"github.com/stockpile/stockpile/internal/item"
	"github.com/stockpile/stockpile/internal/storage"
)

// Depot is an opened stockpile depot: a root directory containing a
// .stockpile layout with config, inventory document, and journal.
type Depot struct {
	root  string
	cfg   *config.Config
	store *inventory.Store
}

// Init creates a new depot at root. Fails if one already exists there.
func Init(root string) (*Depot, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	if config.IsDepot(abs) {
		return nil, fmt.Errorf("depot already exists at %s", abs)
	}

	// CachePath is the deepest directory in the layout
	if err := os.MkdirAll(config.CachePath(abs), 0755); err != nil {
		return nil, fmt.Errorf("creating depot directories: %w", err)
	}

	cfg := &config.Config{}
	if err := cfg.Save(abs); err != nil {
		return nil, err
	}

	if err := storage.WriteDocument(config.InventoryPath(abs, cfg), map[string]item.Item{}); err != nil {
		return nil, fmt.Errorf("creating inventory document: %w", err)
	}

	f, err := os.Create(config.JournalPath(abs))
	if err != nil {
		return nil, fmt.Errorf("creating journal file: %w", err)
	}
	f.Close()

	return Open(abs)
}

// Open opens the depot rooted at the given path.
func Open(root string) (*Depot, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	if !config.IsDepot(abs) {
		return nil, fmt.Errorf("not a stockpile depot: %s", abs)
	}

	cfg, err := config.Load(abs)
	if err != nil {
		return nil, err
	}

	store, err := inventory.Load(config.InventoryPath(abs, cfg))
	if err != nil {
		return nil, err
	}

	return &Depot{root: abs, cfg: cfg, store: store}, nil
}

// Root returns the depot root directory.
func (d *Depot) Root() string {
	return d.root
}

// Config returns the depot configuration.
func (d *Depot) Config() *config.Config {
	return d.cfg
}

// InventoryPath returns the path to the inventory document.
func (d *Depot) InventoryPath() string {
	return config.InventoryPath(d.root, d.cfg)
}

// JournalPath returns the path to the movement journal.
func (d *Depot) JournalPath() string {
	return config.JournalPath(d.root)
}

// Add records a delivery and appends a journal entry. The inventory
// document is the source of truth; the journal entry carries the
// remaining quantity for auditing.
func (d *Depot) Add(name string, qty int, price float64) (item.Item, error) {
	it, err := d.store.Add(name, qty, price)
	if err != nil {
		return it, err
	}

	entry := storage.NewEntry(storage.OpAdd, it.Name, qty, price, it.Quantity)
	if err := storage.AppendEntry(d.JournalPath(), entry); err != nil {
		return it, fmt.Errorf("recording journal entry: %w", err)
	}
	return it, nil
}

// Remove issues stock and appends a journal entry. Returns the item's
// state after the removal and whether it was dropped at zero.
func (d *Depot) Remove(name string, qty int) (item.Item, bool, error) {
	it, dropped, err := d.store.Remove(name, qty)
	if err != nil {
		return it, dropped, err
	}

	entry := storage.NewEntry(storage.OpRemove, it.Name, qty, 0, it.Quantity)
	if err := storage.AppendEntry(d.JournalPath(), entry); err != nil {
		return it, dropped, fmt.Errorf("recording journal entry: %w", err)
	}
	return it, dropped, nil
}

// Check returns the current state of the named item.
func (d *Depot) Check(name string) (item.Item, error) {
	return d.store.Check(name)
}

// List returns all items sorted by name.
func (d *Depot) List() []item.Item {
	return d.store.List()
}

// Len returns the number of distinct items held.
func (d *Depot) Len() int {
	return d.store.Len()
}

// History returns recent journal entries through the index, newest first.
func (d *Depot) History(f storage.TailFilter) ([]storage.Entry, error) {
	idx, err := d.openSyncedIndex()
	if err != nil {
		return nil, err
	}
	defer idx.Close()

	return idx.Tail(f)
}

// Totals aggregates journal movements per item through the index.
func (d *Depot) Totals() ([]storage.ItemTotal, error) {
	idx, err := d.openSyncedIndex()
	if err != nil {
		return nil, err
	}
	defer idx.Close()

	return idx.ItemTotals()
}

// RebuildIndex forces a rebuild of the journal index and returns the
// number of entries indexed.
func (d *Depot) RebuildIndex() (int, error) {
	if err := os.MkdirAll(config.CachePath(d.root), 0755); err != nil {
		return 0, fmt.Errorf("creating cache directory: %w", err)
	}

	idx, err := storage.OpenIndex(config.JournalDBPath(d.root))
	if err != nil {
		return 0, err
	}
	defer idx.Close()

	return idx.RebuildFromJournal(d.JournalPath())
}

// openSyncedIndex opens the journal index, rebuilding it when the
// journal changed since the last sync. The index is disposable; only
// the journal file is authoritative.
func (d *Depot) openSyncedIndex() (*storage.Index, error) {
	if err := os.MkdirAll(config.CachePath(d.root), 0755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	idx, err := storage.OpenIndex(config.JournalDBPath(d.root))
	if err != nil {
		return nil, err
	}

	stale, err := idx.NeedsSync(d.JournalPath())
	if err != nil {
		idx.Close()
		return nil, err
	}
	if stale {
		if _, err := idx.RebuildFromJournal(d.JournalPath()); err != nil {
			idx.Close()
			return nil, err
		}
	}

	return idx, nil
}

// Info summarizes a depot's on-disk state.
type Info struct {
	Root           string    `json:"root"`
	InventoryPath  string    `json:"inventory_path"`
	JournalPath    string    `json:"journal_path"`
	IndexPath      string    `json:"index_path"`
	Items          int       `json:"items"`
	TotalUnits     int       `json:"total_units"`
	TotalValue     float64   `json:"total_value"`
	JournalEntries int       `json:"journal_entries"`
	InventorySize  int64     `json:"inventory_size"`
	JournalSize    int64     `json:"journal_size"`
	IndexSize      int64     `json:"index_size"`
	LastSync       time.Time `json:"last_sync,omitempty"`
	InSync         bool      `json:"in_sync"`
	Currency       string    `json:"currency"`
}

// Info returns detailed information about the depot.
func (d *Depot) Info() (*Info, error) {
	info := &Info{
		Root:          d.root,
		InventoryPath: d.InventoryPath(),
		JournalPath:   d.JournalPath(),
		IndexPath:     config.JournalDBPath(d.root),
		Items:         d.store.Len(),
		Currency:      d.cfg.DisplayCurrency(),
	}

	for _, it := range d.store.List() {
		info.TotalUnits += it.Quantity
		info.TotalValue += float64(it.Quantity) * it.Price
	}

	entries, err := storage.ReadAllEntries(d.JournalPath())
	if err != nil {
		return nil, fmt.Errorf("counting journal entries: %w", err)
	}
	info.JournalEntries = len(entries)

	// File sizes
	if stat, err := os.Stat(info.InventoryPath); err == nil {
		info.InventorySize = stat.Size()
	}
	if stat, err := os.Stat(info.JournalPath); err == nil {
		info.JournalSize = stat.Size()
	}

	// Sync state, without creating the index file as a side effect
	if stat, err := os.Stat(info.IndexPath); err == nil {
		info.IndexSize = stat.Size()

		idx, err := storage.OpenIndex(info.IndexPath)
		if err == nil {
			if stale, err := idx.NeedsSync(info.JournalPath); err == nil {
				info.InSync = !stale
			}
			if last, err := idx.LastSyncTime(); err == nil && !last.IsZero() {
				info.LastSync = last
			}
			idx.Close()
		}
	}

	return info, nil
}

// ReportLine is one item's row in a valuation report.
type ReportLine struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Value    float64 `json:"value"`
	Added    int     `json:"added"`
	Removed  int     `json:"removed"`
}

// Report values the current inventory and folds in journal totals.
// Items no longer held appear with zero quantity when the journal
// still knows about them.
type Report struct {
	Items      []ReportLine `json:"items"`
	TotalUnits int          `json:"total_units"`
	TotalValue float64      `json:"total_value"`
	Currency   string       `json:"currency"`
}

// BuildReport assembles a valuation report for the depot.
func (d *Depot) BuildReport() (*Report, error) {
	totals, err := d.Totals()
	if err != nil {
		return nil, err
	}

	lines := make(map[string]*ReportLine)
	for _, it := range d.store.List() {
		lines[it.Name] = &ReportLine{
			Name:     it.Name,
			Quantity: it.Quantity,
			Price:    it.Price,
			Value:    float64(it.Quantity) * it.Price,
		}
	}
	for _, tot := range totals {
		line, ok := lines[tot.Item]
		if !ok {
			line = &ReportLine{Name: tot.Item}
			lines[tot.Item] = line
		}
		line.Added = tot.Added
		line.Removed = tot.Removed
	}

	names := make([]string, 0, len(lines))
	for name := range lines {
		names = append(names, name)
	}
	sort.Strings(names)

	report := &Report{Currency: d.cfg.DisplayCurrency()}
	for _, name := range names {
		line := lines[name]
		report.Items = append(report.Items, *line)
		report.TotalUnits += line.Quantity
		report.TotalValue += line.Value
	}

	return report, nil
}
