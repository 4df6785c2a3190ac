// Package slug builds URL-safe identifiers from display names.
package slug

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	whitespace      = regexp.MustCompile(`\s+`)
	invalidChars    = regexp.MustCompile(`[^a-z0-9-]+`)
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// Make converts name to a slug: accents are folded, other scripts are
// transliterated to ASCII, the result is lowercased, whitespace becomes a
// hyphen and everything outside [a-z0-9-] is dropped.
// When nothing survives, fallback is slugified and returned instead.
func Make(name, fallback string) string {
	if s := normalize(name); s != "" {
		return s
	}
	return normalize(fallback)
}

// WithSuffix returns base for n <= 0 and "base-n" otherwise.
func WithSuffix(base string, n int) string {
	if n <= 0 {
		return base
	}
	return base + "-" + strconv.Itoa(n)
}

// IsValid reports whether s is already in canonical slug form.
func IsValid(s string) bool {
	if s == "" || s[0] == '-' || s[len(s)-1] == '-' {
		return false
	}
	if strings.Contains(s, "--") {
		return false
	}
	return !invalidChars.MatchString(s)
}

func normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}

	// Scripts without a decomposed Latin form (Cyrillic, Greek, CJK) still
	// contain non-ASCII runes at this point.
	folded = unidecode.Unidecode(folded)

	out := strings.ToLower(strings.TrimSpace(folded))
	out = whitespace.ReplaceAllString(out, "-")
	out = invalidChars.ReplaceAllString(out, "")
	out = multipleHyphens.ReplaceAllString(out, "-")
	return strings.Trim(out, "-")
}
