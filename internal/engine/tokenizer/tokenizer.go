// Package tokenizer splits log messages into lowercase word tokens.
package tokenizer

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Tokenize applies compatibility normalization, lowercases, drops control
// characters and splits on every rune that is not a letter, digit or
// underscore. Punctuation never appears in the output; text without word
// characters yields an empty slice.
func Tokenize(text string) []string {
	text = strings.ToLower(norm.NFKC.String(cleanText(text)))

	return strings.FieldsFunc(text, func(r rune) bool {
		return !isWordRune(r)
	})
}

// cleanText removes control characters and invalid runes.
func cleanText(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r == 0 || r == unicode.ReplacementChar || isControl(r) {
			b.WriteRune(' ')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isControl(r rune) bool {
	if r == '\t' || r == '\n' || r == '\r' {
		return false
	}
	return unicode.IsControl(r)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
