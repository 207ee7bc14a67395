package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grocer/internal/grocery"
)

func TestJSONStore_MissingFilesLoadEmpty(t *testing.T) {
	s, err := NewJSONStore(t.TempDir(), nil)
	require.NoError(t, err)

	items, err := s.LoadList()
	require.NoError(t, err)
	assert.Empty(t, items)

	history, err := s.LoadHistory()
	require.NoError(t, err)
	assert.Empty(t, history)

	catalog, err := s.LoadCatalog()
	require.NoError(t, err)
	assert.Empty(t, catalog)
}

func TestJSONStore_CorruptFilesLoadEmpty(t *testing.T) {
	dir := t.TempDir()
	s, err := NewJSONStore(dir, nil)
	require.NoError(t, err)

	for _, name := range []string{ListFile, HistoryFile, CatalogFile} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("{not json"), 0o644))
	}

	items, err := s.LoadList()
	require.NoError(t, err)
	assert.Empty(t, items)

	history, err := s.LoadHistory()
	require.NoError(t, err)
	assert.Empty(t, history)

	catalog, err := s.LoadCatalog()
	require.NoError(t, err)
	assert.Empty(t, catalog)
}

func TestJSONStore_ListRoundTrip(t *testing.T) {
	s, err := NewJSONStore(t.TempDir(), nil)
	require.NoError(t, err)

	expiry := grocery.NewDate(2025, 12, 31)
	want := []grocery.Item{
		{Name: "Milk", Quantity: "2", Unit: "liters", Category: "Dairy & Eggs", ExpiryDate: &expiry},
		{Name: "bread", Unit: "loaf"},
		{Name: "bread", Unit: "loaf"}, // duplicates survive
	}
	require.NoError(t, s.SaveList(want))

	got, err := s.LoadList()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestJSONStore_HistoryDeduplicatesOnLoad(t *testing.T) {
	dir := t.TempDir()
	s, err := NewJSONStore(dir, nil)
	require.NoError(t, err)

	raw := `{
		"Milk": "2025-08-01",
		"milk": "2025-08-10",
		"MILK": "2025-07-15"
	}`
	require.NoError(t, os.WriteFile(s.HistoryPath(), []byte(raw), 0o644))

	history, err := s.LoadHistory()
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "2025-08-10", history["milk"].String(), "later date must win")

	// Self-healing: the cleaned map is persisted back immediately.
	data, err := os.ReadFile(s.HistoryPath())
	require.NoError(t, err)
	var onDisk map[string]string
	require.NoError(t, json.Unmarshal(data, &onDisk))
	assert.Equal(t, map[string]string{"milk": "2025-08-10"}, onDisk)
}

func TestJSONStore_HistoryRoundTrip(t *testing.T) {
	s, err := NewJSONStore(t.TempDir(), nil)
	require.NoError(t, err)

	want := map[string]grocery.Date{
		"milk": grocery.NewDate(2025, 8, 20),
		"eggs": grocery.NewDate(2025, 8, 25),
	}
	require.NoError(t, s.SaveHistory(want))

	got, err := s.LoadHistory()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestJSONStore_CatalogLoad(t *testing.T) {
	dir := t.TempDir()
	s, err := NewJSONStore(dir, nil)
	require.NoError(t, err)

	raw := `{"Dairy & Eggs": ["Milk", "Eggs", "Cheese"], "Bakery": ["Bread"]}`
	require.NoError(t, os.WriteFile(s.CatalogPath(), []byte(raw), 0o644))

	catalog, err := s.LoadCatalog()
	require.NoError(t, err)
	assert.Equal(t, []string{"Milk", "Eggs", "Cheese"}, catalog["Dairy & Eggs"])
	assert.Equal(t, []string{"Bread"}, catalog["Bakery"])
}

func TestNormalizeHistory(t *testing.T) {
	earlier := grocery.NewDate(2025, 8, 1)
	later := grocery.NewDate(2025, 8, 10)

	normalized, healed := normalizeHistory(map[string]grocery.Date{
		"Milk": earlier,
		"milk": later,
		"eggs": earlier,
	})
	assert.True(t, healed)
	assert.Equal(t, map[string]grocery.Date{"milk": later, "eggs": earlier}, normalized)

	normalized, healed = normalizeHistory(map[string]grocery.Date{"milk": later})
	assert.False(t, healed)
	assert.Equal(t, map[string]grocery.Date{"milk": later}, normalized)
}
