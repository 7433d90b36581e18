package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// DefaultTailLimit caps Tail output when no limit is given.
const DefaultTailLimit = 20

// Index wraps the SQLite journal index kept under the cache directory.
// It is a disposable acceleration structure; the journal file stays
// authoritative and the index can always be rebuilt from it.
type Index struct {
	db *sql.DB
}

// OpenIndex opens or creates the journal index at the given path.
func OpenIndex(path string) (*Index, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Index{db: db}, nil
}

// Close closes the database connection.
func (i *Index) Close() error {
	return i.db.Close()
}

// createSchema creates the database schema if it doesn't exist.
func createSchema(db *sql.DB) error {
	schema := `
		-- Movement journal, one row per entry
		CREATE TABLE IF NOT EXISTS journal (
			id TEXT PRIMARY KEY,
			op TEXT NOT NULL,
			item TEXT NOT NULL,
			quantity INTEGER NOT NULL,
			price REAL,
			remaining INTEGER NOT NULL,
			at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_journal_item ON journal(item);
		CREATE INDEX IF NOT EXISTS idx_journal_op ON journal(op);

		-- Staleness metadata for the index
		CREATE TABLE IF NOT EXISTS _meta (
			key TEXT PRIMARY KEY,
			value TEXT
		);
	`

	_, err := db.Exec(schema)
	return err
}

// RebuildFromJournal clears the index and rebuilds it from a journal file.
// Returns the number of entries indexed.
func (i *Index) RebuildFromJournal(journalPath string) (int, error) {
	entries, err := ReadAllEntries(journalPath)
	if err != nil {
		return 0, fmt.Errorf("reading journal: %w", err)
	}

	// Clear existing data
	if _, err := i.db.Exec("DELETE FROM journal"); err != nil {
		return 0, fmt.Errorf("clearing journal table: %w", err)
	}

	// Prepare insert statement
	stmt, err := i.db.Prepare(`
		INSERT INTO journal (id, op, item, quantity, price, remaining, at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing journal insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.Exec(e.ID, e.Op, e.Item, e.Quantity, e.Price, e.Remaining, e.At); err != nil {
			return 0, fmt.Errorf("inserting entry %s: %w", e.ID, err)
		}
	}

	hash, err := ComputeJournalHash(journalPath)
	if err != nil {
		return 0, fmt.Errorf("hashing journal: %w", err)
	}
	if err := i.setMeta("journal_hash", hash); err != nil {
		return 0, fmt.Errorf("storing journal hash: %w", err)
	}
	if err := i.setMeta("last_sync", time.Now().UTC().Format(time.RFC3339)); err != nil {
		return 0, fmt.Errorf("storing sync time: %w", err)
	}

	return len(entries), nil
}

// NeedsSync reports whether the journal file changed since the last rebuild.
func (i *Index) NeedsSync(journalPath string) (bool, error) {
	current, err := ComputeJournalHash(journalPath)
	if err != nil {
		return false, err
	}

	stored, err := i.StoredHash()
	if err != nil {
		return false, err
	}

	return current != stored, nil
}

// StoredHash returns the journal hash recorded at the last rebuild.
func (i *Index) StoredHash() (string, error) {
	return i.getMeta("journal_hash")
}

// LastSyncTime returns the time of the last rebuild, or the zero time if never built.
func (i *Index) LastSyncTime() (time.Time, error) {
	value, err := i.getMeta("last_sync")
	if err != nil || value == "" {
		return time.Time{}, err
	}
	return time.Parse(time.RFC3339, value)
}

// setMeta stores a key/value pair in the _meta table.
func (i *Index) setMeta(key, value string) error {
	_, err := i.db.Exec(`INSERT OR REPLACE INTO _meta (key, value) VALUES (?, ?)`, key, value)
	return err
}

// getMeta retrieves a value from the _meta table, or "" if absent.
func (i *Index) getMeta(key string) (string, error) {
	var value sql.NullString
	err := i.db.QueryRow("SELECT value FROM _meta WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value.String, nil
}

// CountEntries returns the total number of indexed entries.
func (i *Index) CountEntries() (int, error) {
	var count int
	err := i.db.QueryRow("SELECT COUNT(*) FROM journal").Scan(&count)
	return count, err
}

// TailFilter narrows Tail output. Zero values leave a dimension unfiltered.
type TailFilter struct {
	Item  string // Exact item name
	Op    string // add or remove
	Limit int    // Maximum entries returned (0 = DefaultTailLimit)
}

// Tail returns the most recent journal entries, newest first.
func (i *Index) Tail(f TailFilter) ([]Entry, error) {
	query := `SELECT id, op, item, quantity, price, remaining, at FROM journal WHERE 1=1`
	var args []interface{}

	if f.Item != "" {
		query += " AND item = ?"
		args = append(args, f.Item)
	}
	if f.Op != "" {
		query += " AND op = ?"
		args = append(args, f.Op)
	}

	limit := f.Limit
	if limit <= 0 {
		limit = DefaultTailLimit
	}
	// rowid breaks ties between entries in the same second
	query += " ORDER BY at DESC, rowid DESC LIMIT ?"
	args = append(args, limit)

	rows, err := i.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying journal: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// ItemTotal aggregates journal movements for one item.
type ItemTotal struct {
	Item    string `json:"item"`
	Added   int    `json:"added"`
	Removed int    `json:"removed"`
	Net     int    `json:"net"`
}

// ItemTotals aggregates add and remove quantities per item across the whole journal.
func (i *Index) ItemTotals() ([]ItemTotal, error) {
	rows, err := i.db.Query(`
		SELECT item,
			COALESCE(SUM(CASE WHEN op = 'add' THEN quantity ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN op = 'remove' THEN quantity ELSE 0 END), 0)
		FROM journal
		GROUP BY item
		ORDER BY item
	`)
	if err != nil {
		return nil, fmt.Errorf("aggregating journal: %w", err)
	}
	defer rows.Close()

	var totals []ItemTotal
	for rows.Next() {
		var t ItemTotal
		if err := rows.Scan(&t.Item, &t.Added, &t.Removed); err != nil {
			return nil, err
		}
		t.Net = t.Added - t.Removed
		totals = append(totals, t)
	}
	return totals, rows.Err()
}

// scanEntries scans rows into a slice of entries.
func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		var e Entry
		var price sql.NullFloat64
		if err := rows.Scan(&e.ID, &e.Op, &e.Item, &e.Quantity, &price, &e.Remaining, &e.At); err != nil {
			return nil, err
		}
		if price.Valid {
			e.Price = price.Float64
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
