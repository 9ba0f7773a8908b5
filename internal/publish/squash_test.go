package publish

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSquash(t *testing.T) {
	distDir := t.TempDir()
	files := map[string]string{
		"paper.tex":         "intro % draft note\n",
		"sections/eval.tex": "results \\% kept % removed\n",
		"figures/plot.pdf":  "% not a tex file, leave alone\n",
	}
	for rel, content := range files {
		path := filepath.Join(distDir, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", rel, err)
		}
	}

	stats, err := Squash(distDir)
	if err != nil {
		t.Fatalf("Squash: %v", err)
	}
	if stats.Files != 2 {
		t.Fatalf("Files = %d, want 2", stats.Files)
	}
	if stats.Removed != 2 {
		t.Fatalf("Removed = %d, want 2", stats.Removed)
	}

	checks := map[string]string{
		"paper.tex":         "intro %\n",
		"sections/eval.tex": "results \\% kept %\n",
		"figures/plot.pdf":  "% not a tex file, leave alone\n",
	}
	for rel, want := range checks {
		data, err := os.ReadFile(filepath.Join(distDir, rel))
		if err != nil {
			t.Fatalf("read %s: %v", rel, err)
		}
		if string(data) != want {
			t.Fatalf("%s = %q, want %q", rel, data, want)
		}
	}
}
