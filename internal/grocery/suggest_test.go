package grocery

import (
	"strings"
	"testing"
)

func TestMissingItems_Threshold(t *testing.T) {
	today := NewDate(2025, 8, 31)

	tests := []struct {
		name     string
		ageDays  int
		onList   bool
		expected int
	}{
		{"exactly 7 days ago is silent", 7, false, 0},
		{"8 days ago suggests", 8, false, 1},
		{"30 days ago suggests", 30, false, 1},
		{"yesterday is silent", 1, false, 0},
		{"8 days ago but on list is silent", 8, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			history := map[string]Date{"milk": today.AddDays(-tt.ageDays)}
			var items []Item
			if tt.onList {
				items = []Item{{Name: "Milk"}}
			}
			got := MissingItems(items, history, today, DefaultRepurchaseAfterDays)
			if len(got) != tt.expected {
				t.Fatalf("expected %d suggestions, got %v", tt.expected, got)
			}
			if tt.expected == 1 && !strings.Contains(got[0], "milk") {
				t.Errorf("suggestion should mention the item: %q", got[0])
			}
		})
	}
}

func TestMissingItems_CaseInsensitiveListMatch(t *testing.T) {
	today := NewDate(2025, 8, 31)
	history := map[string]Date{"milk": today.AddDays(-10)}
	items := []Item{{Name: "MILK"}}

	if got := MissingItems(items, history, today, DefaultRepurchaseAfterDays); len(got) != 0 {
		t.Fatalf("listed item (any case) must not be suggested, got %v", got)
	}
}

func TestMissingItems_SortedOutput(t *testing.T) {
	today := NewDate(2025, 8, 31)
	history := map[string]Date{
		"zucchini": today.AddDays(-20),
		"apples":   today.AddDays(-20),
		"milk":     today.AddDays(-20),
	}

	got := MissingItems(nil, history, today, DefaultRepurchaseAfterDays)
	if len(got) != 3 {
		t.Fatalf("expected 3 suggestions, got %v", got)
	}
	if !strings.Contains(got[0], "apples") || !strings.Contains(got[2], "zucchini") {
		t.Errorf("suggestions should be sorted by name: %v", got)
	}
}

func TestHealthierAlternatives(t *testing.T) {
	items := []Item{
		{Name: "White Bread"}, // matches case-insensitively
		{Name: "soda"},
		{Name: "carrots"}, // no alternative
	}

	got := HealthierAlternatives(items)
	if len(got) != 2 {
		t.Fatalf("expected 2 suggestions, got %v", got)
	}
	if !strings.Contains(got[0], "brown bread") {
		t.Errorf("expected brown bread suggestion, got %q", got[0])
	}
	if !strings.Contains(got[1], "water") {
		t.Errorf("expected water suggestion, got %q", got[1])
	}
}

func TestExpiryReminders_Boundaries(t *testing.T) {
	today := NewDate(2025, 8, 31)

	tests := []struct {
		name     string
		daysOut  int
		expected int
	}{
		{"tomorrow reminds", 1, 1},
		{"five days out reminds", 5, 1},
		{"six days out is silent", 6, 0},
		{"today is silent", 0, 0},
		{"already expired is silent", -1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expiry := today.AddDays(tt.daysOut)
			items := []Item{{Name: "yogurt", ExpiryDate: &expiry}}
			got := ExpiryReminders(items, today, DefaultExpiryWindowDays)
			if len(got) != tt.expected {
				t.Fatalf("expected %d reminders, got %v", tt.expected, got)
			}
		})
	}
}

func TestExpiryReminders_NoDate(t *testing.T) {
	today := NewDate(2025, 8, 31)
	items := []Item{{Name: "salt"}}
	if got := ExpiryReminders(items, today, DefaultExpiryWindowDays); len(got) != 0 {
		t.Fatalf("items without expiry dates must be silent, got %v", got)
	}
}
