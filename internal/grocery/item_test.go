package grocery

import (
	"encoding/json"
	"testing"
)

func TestDateArithmetic(t *testing.T) {
	today := NewDate(2025, 8, 31)
	if d := today.DaysUntil(NewDate(2025, 9, 5)); d != 5 {
		t.Errorf("DaysUntil = %d, want 5", d)
	}
	if d := today.DaysUntil(NewDate(2025, 8, 24)); d != -7 {
		t.Errorf("DaysUntil = %d, want -7", d)
	}
}

func TestParseDateRejectsGarbage(t *testing.T) {
	if _, err := ParseDate("31-08-2025"); err == nil {
		t.Error("expected error for wrong format")
	}
	if _, err := ParseDate(""); err == nil {
		t.Error("expected error for empty string")
	}
}

// Files written by earlier versions of the assistant carry explicit nulls
// for unset optional fields; they must still load.
func TestItemDecodesLegacyNulls(t *testing.T) {
	raw := `{"name": "Milk", "quantity": null, "unit": "liters", "category": null,
		"purchase_date": null, "expiry_date": "2025-12-31"}`

	var item Item
	if err := json.Unmarshal([]byte(raw), &item); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if item.Name != "Milk" || item.Unit != "liters" {
		t.Errorf("unexpected item %+v", item)
	}
	if item.PurchaseDate != nil {
		t.Error("null purchase_date must stay nil")
	}
	if item.ExpiryDate == nil || item.ExpiryDate.String() != "2025-12-31" {
		t.Errorf("expiry date not decoded: %+v", item.ExpiryDate)
	}
	if item.Key() != "milk" {
		t.Errorf("Key() = %q, want milk", item.Key())
	}
}
