// Package textfold normalizes names for case-insensitive matching. Stores
// and query parsing share it so a search term and a stored name fold the
// same way on every backend.
package textfold

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// dotted and dotless i fold together; otherwise "ISTANBUL" never matches
// "ıstanbul" or "İstanbul".
var turkishI = strings.NewReplacer("\u0131", "i", "i\u0307", "i")

// Lower returns s lowercased with full Unicode rules and NFC composed.
// Casers keep state, so each call builds its own.
func Lower(s string) string {
	lowered := cases.Lower(language.Und).String(s)
	return turkishI.Replace(norm.NFC.String(lowered))
}
