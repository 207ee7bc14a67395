// Package grocery implements the grocery assistant core: the shopping list,
// the category catalog, the purchase history and the suggestion engine.
package grocery

import (
	"fmt"
	"strings"
	"time"
)

// DateFormat is the wire format for civil dates.
const DateFormat = "2006-01-02"

// Date is a civil date (no time-of-day, no zone) serialized as YYYY-MM-DD.
type Date struct {
	time.Time
}

// NewDate builds a Date from calendar components.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current civil date.
func Today() Date {
	now := time.Now()
	return NewDate(now.Year(), now.Month(), now.Day())
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{t}, nil
}

// String renders the date in wire format.
func (d Date) String() string {
	return d.Format(DateFormat)
}

// Equal reports whether two dates name the same day.
func (d Date) Equal(other Date) bool {
	return d.Time.Equal(other.Time)
}

// AddDays returns the date shifted by n calendar days.
func (d Date) AddDays(n int) Date {
	return Date{d.Time.AddDate(0, 0, n)}
}

// DaysUntil returns the number of whole days from d to other.
// Negative when other is in the past relative to d.
func (d Date) DaysUntil(other Date) int {
	return int(other.Sub(d.Time).Hours() / 24)
}

// MarshalJSON encodes the date as a YYYY-MM-DD string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(DateFormat) + `"`), nil
}

// UnmarshalJSON decodes a YYYY-MM-DD string. null leaves the date zero.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Item is a single grocery entry. Name is required and its lower-cased form
// is the identity key for removal and history lookups. Everything else is
// optional metadata.
type Item struct {
	Name         string `json:"name"`
	Quantity     string `json:"quantity,omitempty"`
	Unit         string `json:"unit,omitempty"`
	Category     string `json:"category,omitempty"`
	PurchaseDate *Date  `json:"purchase_date,omitempty"`
	ExpiryDate   *Date  `json:"expiry_date,omitempty"`
}

// Key returns the item's identity key (lower-cased name).
func (i Item) Key() string {
	return NormalizeName(i.Name)
}

// NormalizeName lower-cases an item name for identity comparison.
func NormalizeName(name string) string {
	return strings.ToLower(name)
}
