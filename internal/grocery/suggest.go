package grocery

import (
	"fmt"
	"sort"
)

// DefaultRepurchaseAfterDays is the age beyond which a previously purchased
// item that fell off the list becomes a repurchase suggestion.
const DefaultRepurchaseAfterDays = 7

// DefaultExpiryWindowDays is the upper bound of the expiry reminder window.
// The window is [1, N] days out: items expiring today or already expired
// are silent.
const DefaultExpiryWindowDays = 5

// healthierAlternatives maps common items to a healthier substitute.
// Fixed table, not user-editable.
var healthierAlternatives = map[string]string{
	"white bread":  "brown bread",
	"soda":         "water",
	"chips":        "nuts",
	"white rice":   "brown rice",
	"regular milk": "almond milk",
	"butter":       "olive oil",
	"ice cream":    "greek yogurt",
	"cookies":      "whole grain oats",
	"candy":        "fresh fruit",
}

// MissingItems suggests history entries that are absent from the current list
// and were last purchased more than repurchaseAfterDays days before today.
// History keys are assumed lower-cased (the store normalizes on load); output
// is sorted by name for stable rendering.
func MissingItems(items []Item, history map[string]Date, today Date, repurchaseAfterDays int) []string {
	onList := make(map[string]bool, len(items))
	for _, item := range items {
		onList[item.Key()] = true
	}

	names := make([]string, 0, len(history))
	for name := range history {
		names = append(names, name)
	}
	sort.Strings(names)

	var suggestions []string
	for _, name := range names {
		if onList[name] {
			continue
		}
		if today.DaysUntil(history[name]) < -repurchaseAfterDays {
			suggestions = append(suggestions, fmt.Sprintf("You bought %s a last week, consider adding it.", name))
		}
	}
	return suggestions
}

// HealthierAlternatives suggests substitutes for listed items that appear in
// the fixed alternatives table.
func HealthierAlternatives(items []Item) []string {
	var suggestions []string
	for _, item := range items {
		if alt, ok := healthierAlternatives[item.Key()]; ok {
			suggestions = append(suggestions, fmt.Sprintf("Instead of %s, consider %s as a healthier alternative.", item.Name, alt))
		}
	}
	return suggestions
}

// ExpiryReminders emits a reminder for every listed item whose expiry date
// falls within [1, windowDays] days of today.
func ExpiryReminders(items []Item, today Date, windowDays int) []string {
	var reminders []string
	for _, item := range items {
		if item.ExpiryDate == nil {
			continue
		}
		days := today.DaysUntil(*item.ExpiryDate)
		if days >= 1 && days <= windowDays {
			reminders = append(reminders, fmt.Sprintf("Reminder: %s is expiring in %d days.", item.Name, days))
		}
	}
	return reminders
}
