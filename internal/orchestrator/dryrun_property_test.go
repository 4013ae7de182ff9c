package orchestrator

import (
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"libcleanup/internal/config"
)

// Dry-run filesystem immutability: for any set of author folders under
// root, running the pipeline with DryRun set must not change anything on
// disk — every planned rename and directory merge is logged as a preview
// but never applied.

type fileSnapshot struct {
	Path    string
	Size    int64
	Content []byte
}

type dirSnapshot struct {
	Files       []fileSnapshot
	Directories []string
}

func captureSnapshot(t *testing.T, root string) dirSnapshot {
	t.Helper()
	var snap dirSnapshot
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		if d.IsDir() {
			snap.Directories = append(snap.Directories, rel)
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		snap.Files = append(snap.Files, fileSnapshot{Path: rel, Size: info.Size(), Content: content})
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	sort.Strings(snap.Directories)
	sort.Slice(snap.Files, func(i, j int) bool { return snap.Files[i].Path < snap.Files[j].Path })
	return snap
}

func genFolderName() gopter.Gen {
	return gen.OneConstOf("Emile Zola", "zola, emile", "EMILE ZOLA", "Jean Dupont", "J. Dupont", "Victor Hugo", "hugo, victor")
}

func TestDryRunPreservesFilesystemState(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("dry run never mutates the filesystem", prop.ForAll(
		func(names []string) bool {
			root := t.TempDir()
			for i, name := range names {
				writeFile(t, filepath.Join(root, name, "book.epub"), string(rune('a'+i%26)))
			}

			before := captureSnapshot(t, root)

			cfg := config.Default()
			cfg.Root = root
			cfg.CSVPath = filepath.Join(t.TempDir(), "authors.csv")
			cfg.DryRun = true

			if _, err := Run(cfg, newTestStore(), newTestWriter(t), nil); err != nil {
				t.Fatalf("Run() = %v", err)
			}

			after := captureSnapshot(t, root)
			return reflect.DeepEqual(before, after)
		},
		gen.SliceOfN(3, genFolderName()),
	))

	properties.TestingRun(t)
}
