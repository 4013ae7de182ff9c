package csvemitter

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"libcleanup/internal/model"
)

func TestWriteHeaderAndRows(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "authors.csv")

	entries := []model.AuthorEntry{
		{FolderName: "Dupont, Jean", AuthorID: "OL1A", AuthorNameDB: "Jean Dupont"},
		{
			FolderName: "Dupond, Jean",
			Probable: &model.Probable{
				AuthorID: "OL1A",
				Name:     "Jean Dupont",
				Score: model.SuggestionScore{
					Seq: 0.9, Token: 0.33, Prefix: 0.91, Suffix: 0, Ngram: 0.8, LenRatio: 1, Avg: 0.66,
				},
			},
		},
		{FolderName: "Unmatched, Someone"},
	}

	if err := Write(path, entries); err != nil {
		t.Fatalf("Write() = %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 4 {
		t.Fatalf("got %d records, want 4 (header + 3 rows)", len(records))
	}
	if records[0][0] != "author" || records[0][3] != "probable_author_multi" {
		t.Errorf("header = %v, want the fixed column order", records[0])
	}

	if records[1][1] != "OL1A" || records[1][3] != "" {
		t.Errorf("confirmed-match row = %v, want empty probable_author_multi", records[1])
	}

	want := "OL1A|Jean Dupont|avg:0.66|seq:0.90|token:0.33|prefix:0.91|suffix:0.00|ngram:0.80|lenratio:1.00"
	if records[2][3] != want {
		t.Errorf("probable_author_multi = %q, want %q", records[2][3], want)
	}

	if records[3][1] != "" || records[3][3] != "" {
		t.Errorf("unmatched row = %v, want empty id and probable field", records[3])
	}
}

func TestWriteEmptyEntries(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "authors.csv")

	if err := Write(path, nil); err != nil {
		t.Fatalf("Write() = %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1 (header only)", len(records))
	}
}
