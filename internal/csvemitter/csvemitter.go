// Package csvemitter writes the deterministic per-run CSV of AuthorEntry
// match results, including the legacy pipe-delimited multi-metric field.
package csvemitter

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"libcleanup/internal/model"
)

var header = []string{"author", "author_id", "author_name_db", "probable_author_multi"}

// Write emits one row per entry, in the order given (callers pass entries in
// scan order, i.e. lexicographic by folder_name), to path. It ensures path's
// parent directory exists first.
func Write(path string, entries []model.AuthorEntry) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("csvemitter: create parent of %s: %w", path, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("csvemitter: create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("csvemitter: write header: %w", err)
	}

	for _, e := range entries {
		row := []string{e.FolderName, e.AuthorID, e.AuthorNameDB, formatProbable(e.Probable)}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("csvemitter: write row for %s: %w", e.FolderName, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("csvemitter: flush %s: %w", path, err)
	}
	return nil
}

// formatProbable renders the legacy pipe-delimited form, empty if there is
// no suggestion: "<id>|<name>|avg:<A>|seq:<S>|token:<T>|prefix:<P>|suffix:<Sf>|ngram:<N>|lenratio:<L>".
func formatProbable(p *model.Probable) string {
	if p == nil {
		return ""
	}
	s := p.Score
	return fmt.Sprintf("%s|%s|avg:%.2f|seq:%.2f|token:%.2f|prefix:%.2f|suffix:%.2f|ngram:%.2f|lenratio:%.2f",
		p.AuthorID, p.Name, s.Avg, s.Seq, s.Token, s.Prefix, s.Suffix, s.Ngram, s.LenRatio)
}
