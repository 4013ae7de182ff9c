package scanner

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestScanOrdersLexicographically(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Zola, Emile", "a.epub"), "a")
	writeFile(t, filepath.Join(root, "Camus, Albert", "b.epub"), "b")

	entries, err := Scan(root)
	if err != nil {
		t.Fatalf("Scan() = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].FolderName != "Camus, Albert" || entries[1].FolderName != "Zola, Emile" {
		t.Errorf("order = [%s, %s], want lexicographic", entries[0].FolderName, entries[1].FolderName)
	}
}

func TestScanCountsFilesRecursively(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Hugo, Victor", "a.epub"), "a")
	writeFile(t, filepath.Join(root, "Hugo, Victor", "subset", "b.epub"), "b")

	entries, err := Scan(root)
	if err != nil {
		t.Fatalf("Scan() = %v", err)
	}
	if len(entries) != 1 || entries[0].FileCount != 2 {
		t.Fatalf("entries = %+v, want one entry with FileCount 2", entries)
	}
}

func TestScanIgnoresFilesAtRoot(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "stray.txt"), "x")
	writeFile(t, filepath.Join(root, "Zola, Emile", "a.epub"), "a")

	entries, err := Scan(root)
	if err != nil {
		t.Fatalf("Scan() = %v", err)
	}
	if len(entries) != 1 || entries[0].FolderName != "Zola, Emile" {
		t.Fatalf("entries = %+v, want only the directory entry", entries)
	}
}

func TestScanRootNotFound(t *testing.T) {
	_, err := Scan(filepath.Join(t.TempDir(), "missing"))
	if err == nil {
		t.Fatal("expected an error for a missing root")
	}
	var scanErr *ScanError
	if se, ok := err.(*ScanError); !ok || se.Type != RootNotFound {
		t.Errorf("err = %v (%T), want *ScanError{Type: RootNotFound}", err, scanErr)
	}
}

func TestScanEmptyRoot(t *testing.T) {
	entries, err := Scan(t.TempDir())
	if err != nil {
		t.Fatalf("Scan() = %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("got %d entries for an empty root, want 0", len(entries))
	}
}
