// Package strcase converts Go identifiers to the casing used on the wire.
package strcase

import (
	"strings"
	"unicode"
)

// ToLowerSnake converts an identifier to snake_case while keeping
// initialisms together ("MessageID" becomes "message_id").
func ToLowerSnake(s string) string {
	runes := []rune(s)

	var b strings.Builder
	b.Grow(len(s) + 4)

	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) && wordBoundary(runes, i) {
			b.WriteRune('_')
		}
		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}

func wordBoundary(runes []rune, i int) bool {
	prev := runes[i-1]
	if unicode.IsLower(prev) || unicode.IsDigit(prev) {
		return true
	}

	// acronym followed by a word: HTTPServer -> http_server
	return unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1])
}
