package text

import (
	"strings"
	"unicode"
)

// StripPunctuation removes punctuation from the ends of s and trims
// surrounding whitespace, leaving interior punctuation (hyphens, commas)
// intact so generated descriptions keep their phrasing.
func StripPunctuation(s string) string {
	return strings.TrimSpace(strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsPunct(r) || unicode.IsSpace(r)
	}))
}
