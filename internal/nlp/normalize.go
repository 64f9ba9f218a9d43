package nlp

import (
	"strings"
	"unicode"
)

// Normalize lowercases text and strips punctuation to whitespace while
// keeping letters (diacritics included), digits, underscores and hyphens.
// Runs of whitespace collapse to a single space.
func Normalize(text string) string {
	lowered := strings.ToLower(text)

	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// Tokenize normalizes text and splits it into tokens.
func Tokenize(text string) []string {
	return strings.Fields(Normalize(text))
}
