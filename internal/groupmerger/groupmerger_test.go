package groupmerger

import (
	"os"
	"path/filepath"
	"testing"

	"libcleanup/internal/model"
)

type recordingLogger struct {
	merges [][2]string
	skips  []string
}

func (r *recordingLogger) DirMerge(src, dst string) error {
	r.merges = append(r.merges, [2]string{src, dst})
	return nil
}

func (r *recordingLogger) FileKeepLarger(src, dst string, srcSize, dstSize int64) error {
	return nil
}

func (r *recordingLogger) Skip(path, message string) error {
	r.skips = append(r.skips, path)
	return nil
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestMergeConfirmedGroup(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Dupont, Jean", "a.epub"), "aaa")
	writeFile(t, filepath.Join(root, "J. Dupont", "b.epub"), "bbb")

	entries := []model.AuthorEntry{
		{FolderName: "Dupont, Jean", FileCount: 1, AuthorID: "OL1A", AuthorNameDB: "Jean Dupont"},
		{FolderName: "J. Dupont", FileCount: 1, AuthorID: "OL1A", AuthorNameDB: "Jean Dupont"},
	}

	logger := &recordingLogger{}
	plans, err := Merge(root, entries, 0, 0.90, false, logger)
	if err != nil {
		t.Fatalf("Merge() = %v", err)
	}

	if len(plans) != 1 {
		t.Fatalf("got %d plans, want 1", len(plans))
	}
	if plans[0].AuthorID != "OL1A" {
		t.Errorf("AuthorID = %q, want %q", plans[0].AuthorID, "OL1A")
	}
	if filepath.Base(plans[0].Destination) != "Dupont, Jean" {
		t.Errorf("Destination = %q, want the member with a higher alignment score elected", plans[0].Destination)
	}

	for _, f := range []string{"a.epub", "b.epub"} {
		if _, err := os.Stat(filepath.Join(root, "Dupont, Jean", f)); err != nil {
			t.Errorf("expected %s preserved at destination: %v", f, err)
		}
	}
}

func TestMergeSkipsSingletonGroups(t *testing.T) {
	root := t.TempDir()
	entries := []model.AuthorEntry{
		{FolderName: "Zola, Emile", FileCount: 3, AuthorID: "OL2A", AuthorNameDB: "Emile Zola"},
	}

	plans, err := Merge(root, entries, 0, 0.90, true, &recordingLogger{})
	if err != nil {
		t.Fatalf("Merge() = %v", err)
	}
	if len(plans) != 0 {
		t.Errorf("got %d plans for a singleton group, want 0", len(plans))
	}
}

func TestMergeFiltersByMinFiles(t *testing.T) {
	root := t.TempDir()
	entries := []model.AuthorEntry{
		{FolderName: "Dupont, Jean", FileCount: 0, AuthorID: "OL1A"},
		{FolderName: "J. Dupont", FileCount: 5, AuthorID: "OL1A"},
	}

	plans, err := Merge(root, entries, 1, 0.90, true, &recordingLogger{})
	if err != nil {
		t.Fatalf("Merge() = %v", err)
	}
	if len(plans) != 0 {
		t.Errorf("got %d plans, want 0 because only one member survives the min-files filter", len(plans))
	}
}

func TestMergeGatesProbableByThreshold(t *testing.T) {
	root := t.TempDir()
	entries := []model.AuthorEntry{
		{
			FolderName: "Dupont, Jean",
			FileCount:  2,
			Probable: &model.Probable{
				AuthorID: "OL1A", Name: "Jean Dupont",
				Score: model.SuggestionScore{Avg: 0.80},
			},
		},
		{
			FolderName: "J. Dupont",
			FileCount:  2,
			Probable: &model.Probable{
				AuthorID: "OL1A", Name: "Jean Dupont",
				Score: model.SuggestionScore{Avg: 0.80},
			},
		},
	}

	plans, err := Merge(root, entries, 0, 0.90, true, &recordingLogger{})
	if err != nil {
		t.Fatalf("Merge() = %v", err)
	}
	if len(plans) != 0 {
		t.Errorf("got %d plans, want 0 because probable average is below the 0.90 merge threshold", len(plans))
	}
}

func TestAlignmentScorePrefersLastFirstPermutation(t *testing.T) {
	score := alignmentScore("Dupont, Jean", "Jean Dupont")
	if score < 0.9 {
		t.Errorf("alignmentScore(%q, %q) = %v, want >= 0.9", "Dupont, Jean", "Jean Dupont", score)
	}
}

func TestAlignmentScoreEmptyReference(t *testing.T) {
	if score := alignmentScore("Dupont, Jean", ""); score != 0 {
		t.Errorf("alignmentScore with empty reference = %v, want 0", score)
	}
}
