package matcher

import (
	"testing"

	"libcleanup/internal/authority"
	"libcleanup/internal/model"
)

func newTestStore() authority.Store {
	return authority.NewMemoryStore([]authority.Record{
		{AuthorID: "OL1A", Name: "Jean Dupont", NameNormalized: "jean dupont"},
		{AuthorID: "OL2A", Name: "Emile Zola", NameNormalized: "emile zola"},
		{AuthorID: "OL3A", Name: "Victor Hugo", NameNormalized: "victor hugo"},
	})
}

func TestMatchExact(t *testing.T) {
	m := New(newTestStore())
	entry := &model.AuthorEntry{FolderName: "Zola, Emile", Display: "Emile Zola"}

	m.Match(entry)

	if entry.AuthorID != "OL2A" {
		t.Errorf("AuthorID = %q, want %q", entry.AuthorID, "OL2A")
	}
	if entry.AuthorNameDB != "Emile Zola" {
		t.Errorf("AuthorNameDB = %q, want %q", entry.AuthorNameDB, "Emile Zola")
	}
	if entry.Probable != nil {
		t.Errorf("Probable = %+v, want nil on exact match", entry.Probable)
	}
}

func TestMatchExactViaCommaSwapVariant(t *testing.T) {
	m := New(newTestStore())
	entry := &model.AuthorEntry{FolderName: "Hugo, Victor", Display: "Hugo, Victor"}

	m.Match(entry)

	if entry.AuthorID != "OL3A" {
		t.Errorf("AuthorID = %q, want %q", entry.AuthorID, "OL3A")
	}
}

func TestMatchProbableSuggestion(t *testing.T) {
	m := New(newTestStore())
	entry := &model.AuthorEntry{FolderName: "Dupond, Jean", Display: "Jean Dupond"}

	m.Match(entry)

	if entry.AuthorID != "" {
		t.Fatalf("AuthorID = %q, want empty (no exact match expected)", entry.AuthorID)
	}
	if entry.Probable == nil {
		t.Fatal("Probable = nil, want a suggestion for a near-miss name")
	}
	if entry.Probable.AuthorID != "OL1A" {
		t.Errorf("Probable.AuthorID = %q, want %q", entry.Probable.AuthorID, "OL1A")
	}
	if entry.Probable.Score.Avg < AcceptanceFloor {
		t.Errorf("Probable.Score.Avg = %v, want >= %v", entry.Probable.Score.Avg, AcceptanceFloor)
	}
}

func TestMatchNoSuggestionBelowFloor(t *testing.T) {
	m := New(newTestStore())
	entry := &model.AuthorEntry{FolderName: "Xu Wei Chen", Display: "Xu Wei Chen"}

	m.Match(entry)

	if entry.AuthorID != "" {
		t.Fatalf("AuthorID = %q, want empty", entry.AuthorID)
	}
	if entry.Probable != nil {
		t.Errorf("Probable = %+v, want nil for an unrelated name", entry.Probable)
	}
}

func TestMatchCachesExactLookups(t *testing.T) {
	store := newTestStore()
	m := New(store)

	first := &model.AuthorEntry{FolderName: "Zola, Emile", Display: "Emile Zola"}
	m.Match(first)

	hit, ok := m.exactCache.Get("emile zola")
	if !ok || !hit.found {
		t.Error("exact lookup was not cached after Match")
	}
}
