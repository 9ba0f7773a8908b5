package publish

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"texdist/internal/latex"
)

func TestResolveIncludeExact(t *testing.T) {
	srcDir := t.TempDir()
	distDir := t.TempDir()
	want := filepath.Join(srcDir, "figures", "plot.pdf")
	if err := os.MkdirAll(filepath.Dir(want), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(want, []byte("pdf"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	src, dst, err := resolveInclude(srcDir, distDir, filepath.Join("figures", "plot.pdf"))
	if err != nil {
		t.Fatalf("resolveInclude: %v", err)
	}
	if src != want {
		t.Fatalf("src = %q, want %q", src, want)
	}
	if dst != filepath.Join(distDir, "figures", "plot.pdf") {
		t.Fatalf("dst = %q", dst)
	}
}

func TestResolveIncludeExtensionGlob(t *testing.T) {
	srcDir := t.TempDir()
	distDir := t.TempDir()
	// the compiler asked for "references", the file on disk is
	// references.bib
	if err := os.WriteFile(filepath.Join(srcDir, "references.bib"), []byte("@misc{}"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	src, dst, err := resolveInclude(srcDir, distDir, "references")
	if err != nil {
		t.Fatalf("resolveInclude: %v", err)
	}
	if filepath.Base(src) != "references.bib" {
		t.Fatalf("src = %q, want references.bib", src)
	}
	if filepath.Base(dst) != "references.bib" {
		t.Fatalf("dst = %q, want references.bib", dst)
	}
}

func TestResolveIncludeGlobSkipsAlreadyCopied(t *testing.T) {
	srcDir := t.TempDir()
	distDir := t.TempDir()
	for _, name := range []string{"plot.pdf", "plot.png"} {
		if err := os.WriteFile(filepath.Join(srcDir, name), []byte(name), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	// plot.pdf already collected; the next round should pick plot.png
	if err := os.WriteFile(filepath.Join(distDir, "plot.pdf"), []byte("plot.pdf"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	src, _, err := resolveInclude(srcDir, distDir, "plot")
	if err != nil {
		t.Fatalf("resolveInclude: %v", err)
	}
	if filepath.Base(src) != "plot.png" {
		t.Fatalf("src = %q, want plot.png", src)
	}
}

func TestResolveIncludeMissing(t *testing.T) {
	_, _, err := resolveInclude(t.TempDir(), t.TempDir(), "ghost.tex")
	var ioErr *IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("err = %v, want *IOError", err)
	}
}

func TestCollectFailureStatesIncompleteDist(t *testing.T) {
	srcDir := t.TempDir()
	paper := filepath.Join(srcDir, "paper.tex")
	for _, name := range []string{"paper.tex", "real.tex"} {
		if err := os.WriteFile(filepath.Join(srcDir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	if err := Init(paper); err != nil {
		t.Fatalf("Init: %v", err)
	}

	// round 1 copies real.tex, round 2 asks for a file that does not exist
	comp := newFakeCompiler(t)
	comp.missingRounds[DistDir(paper)] = [][]string{
		{"real.tex"},
		{"ghost.tex"},
	}

	_, err := Collect(context.Background(), paper, comp)
	var ioErr *IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("err = %v, want *IOError", err)
	}
	if !strings.Contains(err.Error(), "dist tree is incomplete") {
		t.Fatalf("err = %q, want it to state the dist tree is incomplete", err)
	}
	// the files copied before the failure stay in place
	if _, statErr := os.Stat(filepath.Join(DistDir(paper), "real.tex")); statErr != nil {
		t.Fatalf("earlier copy removed: %v", statErr)
	}
}

// stuckCompiler always reports the same missing file even after it has been
// copied, like a broken wrapper would.
type stuckCompiler struct{}

func (stuckCompiler) Compile(context.Context, string, string) (latex.Result, error) {
	return latex.Result{ExitCode: 1, Missing: []string{"loop.tex"}}, nil
}

func TestCollectDetectsStuckCompiler(t *testing.T) {
	srcDir := t.TempDir()
	paper := filepath.Join(srcDir, "paper.tex")
	for _, name := range []string{"paper.tex", "loop.tex"} {
		if err := os.WriteFile(filepath.Join(srcDir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	if err := Init(paper); err != nil {
		t.Fatalf("Init: %v", err)
	}

	_, err := Collect(context.Background(), paper, stuckCompiler{})
	var compileErr *CompileError
	if !errors.As(err, &compileErr) {
		t.Fatalf("err = %v, want *CompileError", err)
	}
}
