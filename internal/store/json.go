package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"grocer/internal/grocery"
)

// Data file names inside the data directory.
const (
	ListFile    = "grocery_list.json"
	HistoryFile = "purchase_history.json"
	CatalogFile = "categories.json"
)

// JSONStore keeps each collection in its own flat JSON file under a data
// directory. Every save is a full rewrite: no partial updates, and the only
// durability guarantee is the atomic temp-file-and-rename replace.
type JSONStore struct {
	dir string
	log *zap.Logger
}

// NewJSONStore builds a store rooted at dir, creating the directory if
// needed.
func NewJSONStore(dir string, log *zap.Logger) (*JSONStore, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &JSONStore{dir: dir, log: log}, nil
}

// ListPath returns the grocery list file path.
func (s *JSONStore) ListPath() string { return filepath.Join(s.dir, ListFile) }

// HistoryPath returns the purchase history file path.
func (s *JSONStore) HistoryPath() string { return filepath.Join(s.dir, HistoryFile) }

// CatalogPath returns the category catalog file path.
func (s *JSONStore) CatalogPath() string { return filepath.Join(s.dir, CatalogFile) }

// LoadList reads the grocery list. Missing or malformed files load as an
// empty list.
func (s *JSONStore) LoadList() ([]grocery.Item, error) {
	var items []grocery.Item
	if !s.readJSON(s.ListPath(), &items) {
		return []grocery.Item{}, nil
	}
	return items, nil
}

// SaveList rewrites the grocery list file.
func (s *JSONStore) SaveList(items []grocery.Item) error {
	return s.writeJSON(s.ListPath(), items)
}

// LoadHistory reads the purchase history, lower-casing keys and keeping the
// later date when two raw keys collide. A healed result is persisted back
// immediately so the file converges on read.
func (s *JSONStore) LoadHistory() (map[string]grocery.Date, error) {
	raw := make(map[string]grocery.Date)
	if !s.readJSON(s.HistoryPath(), &raw) {
		return map[string]grocery.Date{}, nil
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

// SaveHistory rewrites the purchase history file.
func (s *JSONStore) SaveHistory(history map[string]grocery.Date) error {
	return s.writeJSON(s.HistoryPath(), history)
}

// LoadCatalog reads the category catalog. The catalog is authored by hand
// and read-only at runtime; missing or malformed files load as empty.
func (s *JSONStore) LoadCatalog() (map[string][]string, error) {
	catalog := make(map[string][]string)
	if !s.readJSON(s.CatalogPath(), &catalog) {
		return map[string][]string{}, nil
	}
	return catalog, nil
}

// Close is a no-op; the store holds no open handles between calls.
func (s *JSONStore) Close() error { return nil }

// readJSON reports whether the file existed and decoded cleanly. Corrupt
// content is treated the same as a missing file.
func (s *JSONStore) readJSON(path string, v interface{}) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn("data file unreadable", zap.String("path", path), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		s.log.Warn("data file corrupt, treating as empty", zap.String("path", path), zap.Error(err))
		return false
	}
	return true
}

// writeJSON replaces path atomically via a temp file in the same directory.
func (s *JSONStore) writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}

	tmp, err := os.CreateTemp(s.dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", filepath.Base(path), err)
	}
	return nil
}
