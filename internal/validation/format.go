// Package validation normalizes and validates patient demographic fields:
// names, Canadian postal codes and US ZIP codes, OHIP numbers and phone
// numbers. Every function here is pure and safe for concurrent use.
package validation

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Capitalize lower-cases s, trims it, and upper-cases the first letter of
// every whitespace-delimited word. Runs of inner whitespace collapse to a
// single space. Only ASCII casing is guaranteed; other letters go through
// the unicode tables.
func Capitalize(s string) string {
	words := strings.Fields(strings.ToLower(s))
	if len(words) == 0 {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))
	for i, w := range words {
		if i > 0 {
			b.WriteByte(' ')
		}
		r, size := utf8.DecodeRuneInString(w)
		b.WriteRune(unicode.ToUpper(r))
		b.WriteString(w[size:])
	}
	return b.String()
}

// ExtractDigits returns the decimal digits of s in their original order.
func ExtractDigits(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

func isBlank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}
