// Package displaynorm renames and merges the immediate children of the
// consolidation root into their canonical "Last, First" display form,
// folding any resulting name collision through DirMerger before the tree is
// scanned into AuthorEntry records.
package displaynorm

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"libcleanup/internal/dirmerger"
	"libcleanup/internal/pathsafety"
	"libcleanup/internal/stringnorm"
)

// Logger receives an event for every planned or applied rename, in addition
// to the dirmerger.Logger events Normalize forwards into DirMerger.
type Logger interface {
	dirmerger.Logger
	Rename(src, dst string) error
}

// Normalize walks the immediate children of root in lexicographic order,
// renaming each to its canonical display form. A rename that would collide
// with an existing folder instead triggers a DirMerger merge, after which
// the survivor is whichever of the two held more files (ties broken
// lexicographically by name). It returns the final lexicographically sorted
// list of surviving top-level folder names.
func Normalize(root string, dryRun bool, logger Logger) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("displaynorm: read %s: %w", root, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		original := filepath.Join(root, name)
		if _, err := os.Stat(original); err != nil {
			continue
		}

		target, err := canonicalPath(root, name)
		if err != nil {
			return nil, err
		}
		if target == original {
			continue
		}

		if info, err := os.Stat(target); err == nil {
			if !info.IsDir() {
				// RenameConflict: the rename target exists and is not a
				// directory, so there is nothing to merge into. Skip this
				// entry and leave it under its original name.
				if err := logger.Skip(target, "rename target exists and is not a directory"); err != nil {
					return nil, err
				}
				continue
			}
			if err := resolveCollision(original, target, dryRun, logger); err != nil {
				return nil, err
			}
			continue
		}

		if err := logger.Rename(original, target); err != nil {
			return nil, err
		}
		if dryRun {
			continue
		}
		if err := pathsafety.RenameWithCaseHandling(original, target); err != nil {
			return nil, fmt.Errorf("displaynorm: rename %s -> %s: %w", original, target, err)
		}
	}

	return survivingNames(root)
}

func canonicalPath(root, name string) (string, error) {
	display := NormalizeAuthorDisplay(name)
	sanitized := pathsafety.SanitizeComponent(display)
	if sanitized == "" {
		sanitized = "_"
	}
	return filepath.Join(root, sanitized), nil
}

// resolveCollision merges original into target, then renames the survivor
// (whichever held more files) to target's name if the loser's name was
// target's, leaving the winner under the canonical target name either way.
func resolveCollision(original, target string, dryRun bool, logger Logger) error {
	originalCount := countFiles(original)
	targetCount := countFiles(target)

	survivorIsOriginal := originalCount > targetCount ||
		(originalCount == targetCount && filepath.Base(original) < filepath.Base(target))

	if !survivorIsOriginal {
		if err := dirmerger.Merge(original, target, dryRun, logger); err != nil && !dirmerger.IsNonEmptyResidue(err) {
			return err
		}
		return nil
	}

	// original survives: merge target's contents into original (which
	// removes target from disk), then move original into target's canonical
	// path, now vacated.
	if err := dirmerger.Merge(target, original, dryRun, logger); err != nil && !dirmerger.IsNonEmptyResidue(err) {
		return err
	}
	if dryRun {
		return nil
	}
	return pathsafety.RenameWithCaseHandling(original, target)
}

func countFiles(root string) int {
	count := 0
	filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			count++
		}
		return nil
	})
	return count
}

func survivingNames(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("displaynorm: read %s: %w", root, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// NormalizeAuthorDisplay reshapes name into canonical "Last, First Middle…"
// title-case form: accents are stripped, curly/backtick/acute apostrophe
// variants are folded to a plain apostrophe, hyphens and underscores become
// spaces, and whitespace collapses. A name already containing a comma is
// treated as already "Last, First" and kept in that order. Otherwise, two or
// more tokens are reshaped with the final token as the surname. An
// all-uppercase input (ignoring separators) is lowercased before title-casing
// so it isn't mistaken for an acronym.
func NormalizeAuthorDisplay(name string) string {
	if strings.TrimSpace(name) == "" {
		return "_"
	}

	// Apostrophe variants are folded before accent stripping: NFKD would
	// otherwise decompose the acute accent into a space.
	stripped := strings.NewReplacer(
		"’", "'",
		"`", "'",
		"´", "'",
	).Replace(name)
	stripped = stringnorm.StripAccents(stripped)
	stripped = strings.NewReplacer(
		"_", " ",
		"-", " ",
	).Replace(stripped)
	stripped = strings.Join(strings.Fields(stripped), " ")

	if isAllLettersUpper(stripped) {
		stripped = strings.ToLower(stripped)
	}

	var first, last string
	if idx := strings.Index(stripped, ","); idx >= 0 {
		last = strings.TrimSpace(stripped[:idx])
		first = strings.TrimSpace(stripped[idx+1:])
	} else {
		tokens := strings.Fields(stripped)
		if len(tokens) >= 2 {
			last = tokens[len(tokens)-1]
			first = strings.Join(tokens[:len(tokens)-1], " ")
		} else if len(tokens) == 1 {
			first = tokens[0]
		}
	}

	firstCap := capitalizeWords(first)
	lastCap := capitalizeWords(last)
	if lastCap == "" {
		return firstCap
	}

	value := strings.TrimSpace(fmt.Sprintf("%s, %s", lastCap, firstCap))
	value = strings.Trim(value, ",")
	if value == "" {
		return lastCap
	}
	return value
}

// isAllLettersUpper reports whether every ASCII letter in s is uppercase,
// and s contains at least one letter. Non-letter runes are ignored.
func isAllLettersUpper(s string) bool {
	hasLetter := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
			return false
		case r >= 'A' && r <= 'Z':
			hasLetter = true
		}
	}
	return hasLetter
}

// capitalizeWords title-cases each whitespace-delimited token of value.
func capitalizeWords(value string) string {
	tokens := strings.Fields(value)
	for i, t := range tokens {
		r := []rune(strings.ToLower(t))
		if len(r) > 0 {
			r[0] = toUpperRune(r[0])
		}
		tokens[i] = string(r)
	}
	return strings.Join(tokens, " ")
}

func toUpperRune(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}
