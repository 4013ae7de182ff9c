// Package scorer computes fused fuzzy-similarity scores between normalized
// author name strings, combining sequence, token, affix, bigram, and length
// signals into a single score suitable for ranking authority candidates.
// The sequence and bigram metrics delegate to go-edlib; the rest have no
// edlib equivalent and are computed directly.
package scorer

import (
	"github.com/hbollon/go-edlib"

	"libcleanup/internal/stringnorm"
)

// Breakdown holds the individual metrics behind a fused Score, useful for
// diagnostics and for tie-breaking on the sequence metric alone.
type Breakdown struct {
	Seq      float64
	Token    float64
	Prefix   float64
	Suffix   float64
	Ngram    float64
	LenRatio float64
	Fused    float64
}

// Score computes the fused similarity of two already-normalized strings.
// Inputs are expected to already be in stringnorm.Normalize form; Score does
// not normalize them itself so callers can reuse precomputed tokens/bigrams.
func Score(a, b string) Breakdown {
	bd := Breakdown{
		Seq:      clamp(sequenceRatio(a, b)),
		Token:    clamp(tokenOverlapScore(a, b)),
		Prefix:   clamp(prefixScore(a, b)),
		Suffix:   clamp(suffixScore(a, b)),
		Ngram:    clamp(bigramDiceScore(a, b)),
		LenRatio: clamp(lengthRatioScore(a, b)),
	}
	bd.Fused = clamp((bd.Seq + bd.Token + bd.Prefix + bd.Suffix + bd.Ngram + bd.LenRatio) / 6)
	return bd
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// sequenceRatio is a Ratcliff-Obershelp-style ratio 2·M / (|a|+|b|), where M
// is the longest common subsequence length, computed by go-edlib's LCS rather
// than a hand-rolled DP table.
func sequenceRatio(a, b string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1
	}
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	m := edlib.LCS(a, b)
	return 2 * float64(m) / float64(len([]rune(a))+len([]rune(b)))
}

// tokenOverlapScore is the Jaccard index of the two strings' whitespace token sets.
func tokenOverlapScore(a, b string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	intersection := 0
	for t := range setA {
		if setB[t] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, t := range stringnorm.Tokens(s) {
		set[t] = true
	}
	return set
}

// prefixScore is the length of the common leading run over the longer string's length.
func prefixScore(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	maxLen := len(ra)
	if len(rb) > maxLen {
		maxLen = len(rb)
	}
	if maxLen == 0 {
		return 0
	}
	n := 0
	for n < len(ra) && n < len(rb) && ra[n] == rb[n] {
		n++
	}
	return float64(n) / float64(maxLen)
}

// suffixScore is prefixScore computed over the reversed strings.
func suffixScore(a, b string) float64 {
	return prefixScore(reverseString(a), reverseString(b))
}

func reverseString(s string) string {
	r := []rune(s)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r)
}

// bigramDiceScore is the Dice coefficient over the two strings' distinct
// bigram sets, delegated to go-edlib's SorensenDice algorithm — the same
// formula, 2·|A∩B| / (|A|+|B|), over character bigrams. Strings shorter than
// two runes fall back to the hand-rolled singleton-gram set below, since
// go-edlib's bigram windowing yields no grams at all for them and two
// single-character strings should still be able to match each other.
func bigramDiceScore(a, b string) float64 {
	if len([]rune(a)) < 2 || len([]rune(b)) < 2 {
		return bigramDiceScoreShort(a, b)
	}
	score, err := edlib.StringsSimilarity(a, b, edlib.SorensenDice)
	if err != nil {
		return 0
	}
	return float64(score)
}

func bigramDiceScoreShort(a, b string) float64 {
	setA := shortGramSet(a)
	setB := shortGramSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	intersection := 0
	for g := range setA {
		if setB[g] {
			intersection++
		}
	}
	return 2 * float64(intersection) / float64(len(setA)+len(setB))
}

func shortGramSet(s string) map[string]bool {
	runes := []rune(s)
	set := make(map[string]bool)
	if len(runes) < 2 {
		for _, r := range runes {
			set[string(r)] = true
		}
		return set
	}
	for i := 0; i < len(runes)-1; i++ {
		set[string(runes[i:i+2])] = true
	}
	return set
}

// lengthRatioScore is 1 minus the absolute length difference over the longer
// length, equivalent to the shorter length over the longer length.
func lengthRatioScore(a, b string) float64 {
	la, lb := len([]rune(a)), len([]rune(b))
	maxLen := la
	if lb > maxLen {
		maxLen = lb
	}
	if maxLen == 0 {
		return 0
	}
	diff := la - lb
	if diff < 0 {
		diff = -diff
	}
	return 1 - float64(diff)/float64(maxLen)
}
