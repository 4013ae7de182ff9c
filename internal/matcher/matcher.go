// Package matcher resolves each AuthorEntry against the authority store:
// first by exact lookup over generated name variants, then by fuzzy scoring
// over a bounded neighbor window, with LRU-backed caches over both paths.
package matcher

import (
	"sort"

	lru "github.com/hashicorp/golang-lru/v2"

	"libcleanup/internal/authority"
	"libcleanup/internal/model"
	"libcleanup/internal/scorer"
	"libcleanup/internal/stringnorm"
	"libcleanup/internal/variantgen"
)

// AcceptanceFloor is the minimum fused score for a neighbor candidate to be
// considered a probable suggestion at all.
const AcceptanceFloor = 0.65

// ShortCircuit is the fused score at or above which suggest stops
// scanning further neighbor candidates.
const ShortCircuit = 0.85

// cacheSize bounds the exact-lookup and neighbor-window caches. A single run
// can generate many distinct variant strings against a process-exclusive
// store handle, so both caches are bounded rather than unbounded maps.
const cacheSize = 4096

// Matcher resolves AuthorEntry records against an authority.Store.
type Matcher struct {
	store authority.Store

	exactCache    *lru.Cache[string, exactHit]
	neighborCache *lru.Cache[string, []authority.Record]
}

type exactHit struct {
	found  bool
	record authority.Record
}

// New builds a Matcher backed by store.
func New(store authority.Store) *Matcher {
	exactCache, _ := lru.New[string, exactHit](cacheSize)
	neighborCache, _ := lru.New[string, []authority.Record](cacheSize)
	return &Matcher{
		store:         store,
		exactCache:    exactCache,
		neighborCache: neighborCache,
	}
}

// Match fills entry's AuthorID/AuthorNameDB or Probable fields in place.
func (m *Matcher) Match(entry *model.AuthorEntry) {
	for _, variant := range variantgen.Variants(entry.Display) {
		if rec, ok := m.lookupExact(variant); ok {
			entry.AuthorID = rec.AuthorID
			entry.AuthorNameDB = rec.Name
			return
		}
	}

	entry.Probable = m.suggest(entry.Display)
}

func (m *Matcher) lookupExact(normalized string) (authority.Record, bool) {
	if hit, ok := m.exactCache.Get(normalized); ok {
		return hit.record, hit.found
	}
	rec, found := m.store.LookupExact(normalized)
	m.exactCache.Add(normalized, exactHit{found: found, record: rec})
	return rec, found
}

func (m *Matcher) neighbors(normalized string) []authority.Record {
	if hit, ok := m.neighborCache.Get(normalized); ok {
		return hit
	}
	neighbors := m.store.Neighbors(normalized, authority.NeighborLimit)
	m.neighborCache.Add(normalized, neighbors)
	return neighbors
}

type candidate struct {
	record authority.Record
	score  model.SuggestionScore
}

// suggest runs the neighbor-window fuzzy scoring pass and returns the best
// candidate meeting AcceptanceFloor, or nil.
func (m *Matcher) suggest(display string) *model.Probable {
	normalized := stringnorm.Normalize(display)
	neighbors := m.neighbors(normalized)

	candidates := make([]candidate, 0, len(neighbors))
	for _, rec := range neighbors {
		bd := scorer.Score(normalized, rec.NameNormalized)
		if bd.Fused < AcceptanceFloor {
			continue
		}
		candidates = append(candidates, candidate{
			record: rec,
			score:  toSuggestionScore(bd),
		})
		if bd.Fused >= ShortCircuit {
			break
		}
	}

	if len(candidates) == 0 {
		return nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.score.Avg != b.score.Avg {
			return a.score.Avg > b.score.Avg
		}
		if a.score.Seq != b.score.Seq {
			return a.score.Seq > b.score.Seq
		}
		return a.record.NameNormalized < b.record.NameNormalized
	})

	best := candidates[0]
	return &model.Probable{
		AuthorID: best.record.AuthorID,
		Name:     best.record.Name,
		Score:    best.score,
	}
}

func toSuggestionScore(bd scorer.Breakdown) model.SuggestionScore {
	return model.SuggestionScore{
		Seq:      bd.Seq,
		Token:    bd.Token,
		Prefix:   bd.Prefix,
		Suffix:   bd.Suffix,
		Ngram:    bd.Ngram,
		LenRatio: bd.LenRatio,
		Avg:      bd.Fused,
	}
}
