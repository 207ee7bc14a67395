package chat

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseAdd(t *testing.T) {
	tests := []struct {
		message string
		want    AddRequest
		ok      bool
	}{
		{
			message: "add 2 liters of milk to dairy",
			want:    AddRequest{Quantity: "2", Unit: "liters", Name: "milk", Category: "dairy"},
			ok:      true,
		},
		{
			message: "add milk",
			want:    AddRequest{Unit: "pcs", Name: "milk"},
			ok:      true,
		},
		{
			message: "add milk to dairy",
			want:    AddRequest{Unit: "pcs", Name: "milk", Category: "dairy"},
			ok:      true,
		},
		{
			message: "add 2 apples",
			want:    AddRequest{Quantity: "2", Unit: "pcs", Name: "apples"},
			ok:      true,
		},
		{
			message: "add 1.5 kg brown rice",
			want:    AddRequest{Quantity: "1.5", Unit: "kg", Name: "brown rice"},
			ok:      true,
		},
		{
			message: "please add a bottle of olive oil to pantry staples",
			want:    AddRequest{Unit: "bottle", Name: "olive oil", Category: "pantry staples"},
			ok:      true,
		},
		{
			message: "add 3 cans of soda",
			want:    AddRequest{Quantity: "3", Unit: "cans", Name: "soda"},
			ok:      true,
		},
		{message: "add", ok: false},
		{message: "can you add", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			got, ok := ParseAdd(tt.message)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v (got %+v)", ok, tt.ok, got)
			}
			if !ok {
				return
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseAdd(%q) mismatch (-want +got):\n%s", tt.message, diff)
			}
		})
	}
}

func TestParseRemove(t *testing.T) {
	tests := []struct {
		message string
		want    string
		ok      bool
	}{
		{"remove milk", "milk", true},
		{"please remove brown rice", "brown rice", true},
		{"remove", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			got, ok := ParseRemove(tt.message)
			if ok != tt.ok || got != tt.want {
				t.Errorf("ParseRemove(%q) = (%q, %v), want (%q, %v)", tt.message, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestIsQuantity(t *testing.T) {
	for _, good := range []string{"1", "42", "2.5", "0.25"} {
		if !isQuantity(good) {
			t.Errorf("isQuantity(%q) = false, want true", good)
		}
	}
	for _, bad := range []string{"", ".", "1.2.3", "two", "2kg"} {
		if isQuantity(bad) {
			t.Errorf("isQuantity(%q) = true, want false", bad)
		}
	}
}
