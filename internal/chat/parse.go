// Package chat maps free-text messages to grocery assistant operations.
// Dispatch is keyword-based and state-free; the phrase parsers are a small
// tokenizer kept isolated so a real NLU front-end could replace them without
// touching the dispatcher.
package chat

import (
	"strings"
)

// AddRequest is the structured result of parsing an add phrase:
// "add [quantity] [unit] [of] <name> [to <category>]".
type AddRequest struct {
	Quantity string
	Unit     string
	Name     string
	Category string
}

// DefaultUnit is applied when an add phrase names no unit.
const DefaultUnit = "pcs"

// knownUnits lets the parser tell "add 2 kg rice" (unit) apart from
// "add 2 apples" (no unit, name only).
var knownUnits = map[string]bool{
	"kg": true, "g": true, "gram": true, "grams": true,
	"l": true, "liter": true, "liters": true, "litre": true, "litres": true,
	"ml": true, "pcs": true, "piece": true, "pieces": true,
	"pack": true, "packs": true, "packet": true, "packets": true,
	"bottle": true, "bottles": true, "can": true, "cans": true,
	"box": true, "boxes": true, "bag": true, "bags": true,
	"dozen": true, "loaf": true, "loaves": true, "bunch": true, "bunches": true,
}

// ParseAdd extracts an AddRequest from a lower-cased message containing
// "add". It reports false when no item name can be recovered.
func ParseAdd(message string) (AddRequest, bool) {
	tokens := strings.Fields(message)
	start := indexOf(tokens, "add")
	if start < 0 || start == len(tokens)-1 {
		return AddRequest{}, false
	}
	tokens = tokens[start+1:]

	req := AddRequest{Unit: DefaultUnit}

	// Optional leading article or quantity.
	if len(tokens) > 1 && (tokens[0] == "a" || tokens[0] == "an" || tokens[0] == "some") {
		tokens = tokens[1:]
	} else if len(tokens) > 1 && isQuantity(tokens[0]) {
		req.Quantity = tokens[0]
		tokens = tokens[1:]
	}

	// Optional unit: a known unit word, or any word directly before "of".
	if len(tokens) > 1 {
		if knownUnits[tokens[0]] || tokens[1] == "of" {
			req.Unit = tokens[0]
			tokens = tokens[1:]
		}
	}
	if len(tokens) > 1 && tokens[0] == "of" {
		tokens = tokens[1:]
	}

	// Optional trailing "to <category>".
	if i := lastIndexOf(tokens, "to"); i > 0 && i < len(tokens)-1 {
		req.Category = strings.Join(tokens[i+1:], " ")
		tokens = tokens[:i]
	}

	req.Name = strings.Join(tokens, " ")
	if req.Name == "" {
		return AddRequest{}, false
	}
	return req, true
}

// ParseRemove extracts the item name following "remove". It reports false
// when the phrase carries no name.
func ParseRemove(message string) (string, bool) {
	tokens := strings.Fields(message)
	start := indexOf(tokens, "remove")
	if start < 0 || start == len(tokens)-1 {
		return "", false
	}
	return strings.Join(tokens[start+1:], " "), true
}

func isQuantity(token string) bool {
	dot := false
	for _, r := range token {
		if r == '.' {
			if dot {
				return false
			}
			dot = true
			continue
		}
		if r < '0' || r > '9' {
			return false
		}
	}
	return token != "" && token != "."
}

func indexOf(tokens []string, word string) int {
	for i, t := range tokens {
		if t == word {
			return i
		}
	}
	return -1
}

func lastIndexOf(tokens []string, word string) int {
	for i := len(tokens) - 1; i >= 0; i-- {
		if tokens[i] == word {
			return i
		}
	}
	return -1
}
