package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadPublishConfig(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, manifestName)
	data := `# test manifest
[paper]
main = "paper.tex"

[latex]
command = "latexmk"
args = ["-shell-escape"]
aux_dir = "aux"

[compare]
rasterizer = "pdftoppm"
dpi = 150
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write %s: %v", manifestName, err)
	}
	cfg, err := loadPublishConfig(path)
	if err != nil {
		t.Fatalf("loadPublishConfig: %v", err)
	}
	if cfg.Paper.Main != "paper.tex" {
		t.Fatalf("Paper.Main = %q, want paper.tex", cfg.Paper.Main)
	}
	if cfg.LaTeX.AuxDir != "aux" {
		t.Fatalf("LaTeX.AuxDir = %q, want aux", cfg.LaTeX.AuxDir)
	}
	if cfg.Compare.DPI != 150 {
		t.Fatalf("Compare.DPI = %d, want 150", cfg.Compare.DPI)
	}
}

func TestLoadPublishConfigRejectsUnknownKeys(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, manifestName)
	data := `[paper]
main = "paper.tex"
typo_key = true
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write %s: %v", manifestName, err)
	}
	if _, err := loadPublishConfig(path); err == nil {
		t.Fatal("expected error for unknown manifest key")
	}
}

func TestFindPublishTomlWalksUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "sections", "appendix")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	manifest := filepath.Join(root, manifestName)
	if err := os.WriteFile(manifest, []byte("[paper]\nmain = \"paper.tex\"\n"), 0o600); err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	found, ok, err := findPublishToml(nested)
	if err != nil {
		t.Fatalf("findPublishToml: %v", err)
	}
	if !ok {
		t.Fatal("manifest not found from nested directory")
	}
	if found != manifest {
		t.Fatalf("found %q, want %q", found, manifest)
	}
}

func TestFindPublishTomlMissing(t *testing.T) {
	_, ok, err := findPublishToml(t.TempDir())
	if err != nil {
		t.Fatalf("findPublishToml: %v", err)
	}
	if ok {
		t.Fatal("unexpected manifest hit in empty tree")
	}
}
