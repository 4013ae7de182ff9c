// Package model holds the in-memory domain types shared across the
// consolidation pipeline: the per-folder AuthorEntry, its optional
// confirmed/probable identifiers, and the ordered similarity metric keys.
package model

// MetricKeys is the fixed order of Scorer metrics used for SuggestionScore,
// CSV output, and per-metric display throughout the pipeline.
var MetricKeys = [6]string{"seq", "token", "prefix", "suffix", "ngram", "lenratio"}

// SuggestionScore is the fixed-arity per-metric score vector plus its average.
type SuggestionScore struct {
	Seq      float64
	Token    float64
	Prefix   float64
	Suffix   float64
	Ngram    float64
	LenRatio float64
	Avg      float64
}

// Probable is the best-guess suggestion produced when no exact authority
// match was found but the best scored neighbor met the acceptance floor.
type Probable struct {
	AuthorID string
	Name     string
	Score    SuggestionScore
}

// AuthorEntry is one surviving top-level folder after display normalization.
type AuthorEntry struct {
	FolderName string
	Display    string
	FileCount  int

	AuthorID     string
	AuthorNameDB string

	Probable *Probable
}

// HasConfirmed reports whether e was resolved by an exact authority match.
func (e *AuthorEntry) HasConfirmed() bool {
	return e.AuthorID != ""
}

// EffectiveIdentifier returns the confirmed author_id if present, else the
// probable identifier iff its average score meets probableThreshold, else
// the empty string.
func (e *AuthorEntry) EffectiveIdentifier(probableThreshold float64) string {
	if e.HasConfirmed() {
		return e.AuthorID
	}
	if e.Probable != nil && e.Probable.Score.Avg >= probableThreshold {
		return e.Probable.AuthorID
	}
	return ""
}
