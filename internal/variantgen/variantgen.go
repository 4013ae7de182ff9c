// Package variantgen produces the ordered, de-duplicated set of name
// variants Matcher tries against the authority store's exact lookup before
// falling back to fuzzy neighbor scoring.
package variantgen

import (
	"regexp"
	"strings"

	"libcleanup/internal/stringnorm"
)

var (
	bracketRe = regexp.MustCompile(`\[[^\]]+\]`)
	parenRe   = regexp.MustCompile(`\([^)]+\)`)
)

// Variants returns the ordered, de-duplicated, normalized variants of name:
// the name itself, its enclosure-stripped form, its numeric-token-stripped
// form, its initials-reordered form, and — for every one of those containing
// a comma — the comma-swapped "<tail> <head>" form. Each is passed through
// stringnorm.Normalize and empty or duplicate results are dropped.
func Variants(name string) []string {
	seen := make(map[string]bool)
	variants := make([]string, 0, 8)
	for _, candidate := range generateCandidates(name) {
		normalized := stringnorm.Normalize(candidate)
		if normalized == "" || seen[normalized] {
			continue
		}
		seen[normalized] = true
		variants = append(variants, normalized)
	}
	return variants
}

func generateCandidates(name string) []string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil
	}

	base := []string{trimmed}
	stripped := stripEnclosures(trimmed)
	if stripped != trimmed {
		base = appendUnique(base, stripped)
	}

	digitsRemoved := removeNumericTokens(stripped)
	if digitsRemoved != "" {
		base = appendUnique(base, digitsRemoved)
	}

	reordered, ok := reorderInitials(digitsRemoved)
	if !ok {
		reordered, ok = reorderInitials(stripped)
	}
	if ok && reordered != "" {
		base = appendUnique(base, reordered)
	}

	seen := make(map[string]bool)
	results := make([]string, 0, len(base)*2)
	for _, candidate := range base {
		if !seen[candidate] {
			seen[candidate] = true
			results = append(results, candidate)
		}
		if left, right, ok := strings.Cut(candidate, ","); ok {
			swapped := strings.TrimSpace(strings.TrimSpace(right) + " " + strings.TrimSpace(left))
			if swapped != "" && !seen[swapped] {
				seen[swapped] = true
				results = append(results, swapped)
			}
		}
	}
	return results
}

func appendUnique(base []string, candidate string) []string {
	for _, b := range base {
		if b == candidate {
			return base
		}
	}
	return append(base, candidate)
}

// stripEnclosures removes bracketed and parenthesized substrings, replacing
// each with a single space.
func stripEnclosures(value string) string {
	step := bracketRe.ReplaceAllString(value, " ")
	return parenRe.ReplaceAllString(step, " ")
}

// removeNumericTokens drops whitespace-delimited tokens made entirely of ASCII digits.
func removeNumericTokens(value string) string {
	fields := strings.Fields(value)
	kept := make([]string, 0, len(fields))
	for _, f := range fields {
		if isAllDigits(f) {
			continue
		}
		kept = append(kept, f)
	}
	return strings.Join(kept, " ")
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// reorderInitials moves every single-character token to the end, preserving
// relative order, when value has a mix of single-character and
// multi-character tokens. It reports false when there is nothing to reorder.
func reorderInitials(value string) (string, bool) {
	tokens := strings.Fields(value)
	if len(tokens) == 0 {
		return "", false
	}

	var initials, others []string
	for _, t := range tokens {
		if len([]rune(t)) == 1 {
			initials = append(initials, t)
		} else {
			others = append(others, t)
		}
	}
	if len(initials) == 0 || len(others) == 0 {
		return "", false
	}

	combined := append(append([]string{}, others...), initials...)
	return strings.Join(combined, " "), true
}
