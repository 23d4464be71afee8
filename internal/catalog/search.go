package catalog

import (
	"strings"
	"unicode"

	"github.com/hbollon/go-edlib"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// fuzzyThreshold is the Jaro-Winkler similarity above which a query that is
// not a substring still counts as a match ("amelie" vs "Amélie", typos).
const fuzzyThreshold = 0.85

// NormalizeTitle lowercases, strips accents and collapses punctuation and
// whitespace, so "¡Átame!" and "atame" compare equal.
func NormalizeTitle(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	s, _, _ = transform.String(t, strings.ToLower(s))

	var b strings.Builder
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// MatchTitle reports whether query matches any of titles.
func MatchTitle(query string, titles ...string) bool {
	q := NormalizeTitle(query)
	if q == "" {
		return true
	}
	for _, title := range titles {
		t := NormalizeTitle(title)
		if t == "" {
			continue
		}
		if strings.Contains(t, q) {
			return true
		}
		if edlib.JaroWinklerSimilarity(q, t) >= fuzzyThreshold {
			return true
		}
	}
	return false
}
