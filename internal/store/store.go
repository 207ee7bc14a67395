// Package store provides the persistence drivers behind the grocery
// assistant: a flat-file JSON store (the default) and a SQLite store.
// Both satisfy grocery.Store and share the same defensive contract:
// missing or corrupt data loads as an empty collection, and purchase
// history is lower-cased and de-duplicated on the way in.
package store

import "grocer/internal/grocery"

// normalizeHistory lower-cases history keys and resolves collisions by
// keeping the later purchase date. It reports whether the input needed
// healing, so drivers know to persist the cleaned result back.
func normalizeHistory(raw map[string]grocery.Date) (map[string]grocery.Date, bool) {
	normalized := make(map[string]grocery.Date, len(raw))
	healed := false
	for name, date := range raw {
		key := grocery.NormalizeName(name)
		if key != name {
			healed = true
		}
		if existing, ok := normalized[key]; ok {
			healed = true
			if date.After(existing.Time) {
				normalized[key] = date
			}
			continue
		}
		normalized[key] = date
	}
	return normalized, healed
}
