package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"grocer/internal/grocery"
)

// SQLiteStore keeps all three collections in one SQLite database. It offers
// the same contract as the JSON store; the list keeps insertion order via
// the rowid, and history names are unique by primary key.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
	log    *zap.Logger
}

// NewSQLiteStore opens (or creates) the database at path and initializes the
// schema.
func NewSQLiteStore(path string, log *zap.Logger) (*SQLiteStore, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &SQLiteStore{db: db, dbPath: path, log: log}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return s, nil
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string { return s.dbPath }

// Close closes the database connection.
func (s *SQLiteStore) Close() error { return s.db.Close() }

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS list_items (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		quantity TEXT,
		unit TEXT,
		category TEXT,
		purchase_date TEXT,
		expiry_date TEXT
	);

	CREATE TABLE IF NOT EXISTS purchase_history (
		name TEXT PRIMARY KEY,
		last_purchase_date TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS catalog (
		category TEXT NOT NULL,
		position INTEGER NOT NULL,
		item TEXT NOT NULL,
		PRIMARY KEY (category, position)
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// LoadList reads the grocery list in insertion order.
func (s *SQLiteStore) LoadList() ([]grocery.Item, error) {
	rows, err := s.db.Query(`SELECT name, quantity, unit, category, purchase_date, expiry_date
		FROM list_items ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query list: %w", err)
	}
	defer rows.Close()

	items := []grocery.Item{}
	for rows.Next() {
		var item grocery.Item
		var quantity, unit, category, purchase, expiry sql.NullString
		if err := rows.Scan(&item.Name, &quantity, &unit, &category, &purchase, &expiry); err != nil {
			return nil, fmt.Errorf("scan list row: %w", err)
		}
		item.Quantity = quantity.String
		item.Unit = unit.String
		item.Category = category.String
		if d, ok := parseDateColumn(purchase, s.log); ok {
			item.PurchaseDate = &d
		}
		if d, ok := parseDateColumn(expiry, s.log); ok {
			item.ExpiryDate = &d
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// SaveList rewrites the list table in one transaction.
func (s *SQLiteStore) SaveList(items []grocery.Item) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin save list: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM list_items`); err != nil {
		return fmt.Errorf("clear list: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT INTO list_items (name, quantity, unit, category, purchase_date, expiry_date)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, item := range items {
		if _, err := stmt.Exec(item.Name,
			nullString(item.Quantity), nullString(item.Unit), nullString(item.Category),
			dateColumn(item.PurchaseDate), dateColumn(item.ExpiryDate)); err != nil {
			return fmt.Errorf("insert %q: %w", item.Name, err)
		}
	}
	return tx.Commit()
}

// LoadHistory reads the purchase history. The primary key prevents duplicate
// raw names, but keys are still normalized defensively (a hand-edited
// database can hold mixed-case names) and a healed result is written back.
func (s *SQLiteStore) LoadHistory() (map[string]grocery.Date, error) {
	rows, err := s.db.Query(`SELECT name, last_purchase_date FROM purchase_history`)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	raw := make(map[string]grocery.Date)
	for rows.Next() {
		var name, dateStr string
		if err := rows.Scan(&name, &dateStr); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		date, err := grocery.ParseDate(dateStr)
		if err != nil {
			s.log.Warn("skipping history row with bad date",
				zap.String("name", name), zap.String("date", dateStr))
			continue
		}
		raw[name] = date
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	normalized, healed := normalizeHistory(raw)
	if healed {
		s.log.Info("purchase history healed", zap.Int("entries", len(normalized)))
		if err := s.SaveHistory(normalized); err != nil {
			return nil, err
		}
	}
	return normalized, nil
}

// SaveHistory rewrites the history table in one transaction.
func (s *SQLiteStore) SaveHistory(history map[string]grocery.Date) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin save history: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM purchase_history`); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT INTO purchase_history (name, last_purchase_date) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for name, date := range history {
		if _, err := stmt.Exec(grocery.NormalizeName(name), date.String()); err != nil {
			return fmt.Errorf("insert %q: %w", name, err)
		}
	}
	return tx.Commit()
}

// LoadCatalog reads the category catalog, items ordered by position.
func (s *SQLiteStore) LoadCatalog() (map[string][]string, error) {
	rows, err := s.db.Query(`SELECT category, item FROM catalog ORDER BY category, position`)
	if err != nil {
		return nil, fmt.Errorf("query catalog: %w", err)
	}
	defer rows.Close()

	catalog := make(map[string][]string)
	for rows.Next() {
		var category, item string
		if err := rows.Scan(&category, &item); err != nil {
			return nil, fmt.Errorf("scan catalog row: %w", err)
		}
		catalog[category] = append(catalog[category], item)
	}
	return catalog, rows.Err()
}

// SeedCatalog replaces the catalog table. The catalog is read-only at
// runtime; this exists for provisioning a fresh database.
func (s *SQLiteStore) SeedCatalog(catalog map[string][]string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin seed catalog: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM catalog`); err != nil {
		return fmt.Errorf("clear catalog: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT INTO catalog (category, position, item) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for category, items := range catalog {
		for i, item := range items {
			if _, err := stmt.Exec(category, i, item); err != nil {
				return fmt.Errorf("insert %q: %w", item, err)
			}
		}
	}
	return tx.Commit()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func dateColumn(d *grocery.Date) sql.NullString {
	if d == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: d.String(), Valid: true}
}

func parseDateColumn(col sql.NullString, log *zap.Logger) (grocery.Date, bool) {
	if !col.Valid || col.String == "" {
		return grocery.Date{}, false
	}
	d, err := grocery.ParseDate(col.String)
	if err != nil {
		log.Warn("bad date column, ignoring", zap.String("value", col.String))
		return grocery.Date{}, false
	}
	return d, true
}
