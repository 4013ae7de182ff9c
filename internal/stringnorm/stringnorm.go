// Package stringnorm provides Unicode-aware string normalization for author
// display names: accent stripping, canonical lowercase/ASCII folding, and
// token and bigram decomposition used throughout matching and scoring.
package stringnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// StripAccents decomposes s to NFKD and drops combining marks, preserving case.
func StripAccents(s string) string {
	decomposed := norm.NFKD.String(s)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Normalize decomposes s to compatibility form, drops combining marks,
// lowercases, replaces every character outside [a-z0-9\s-] with a space,
// collapses whitespace runs, and trims. It is idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	stripped := StripAccents(s)
	lowered := strings.ToLower(stripped)

	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		default:
			b.WriteRune(' ')
		}
	}
	return collapseSpaces(b.String())
}

// Tokens splits a normalized string on whitespace, preserving order.
func Tokens(s string) []string {
	return strings.Fields(s)
}

// Bigrams returns the adjacent 2-character windows over the normalized form
// of s, with spaces removed before windowing.
func Bigrams(s string) []string {
	compact := strings.ReplaceAll(Normalize(s), " ", "")
	runes := []rune(compact)
	if len(runes) < 2 {
		return nil
	}
	grams := make([]string, 0, len(runes)-1)
	for i := 0; i < len(runes)-1; i++ {
		grams = append(grams, string(runes[i:i+2]))
	}
	return grams
}

func collapseSpaces(s string) string {
	fields := strings.Fields(s)
	return strings.Join(fields, " ")
}
