package raster

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writePage(t *testing.T, path string, w, h int, mark color.Color) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.White)
		}
	}
	if mark != nil {
		img.Set(w/2, h/2, mark)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
}

func TestComparePagesIdentical(t *testing.T) {
	dir := t.TempDir()
	var a, b []string
	for i := 0; i < 3; i++ {
		pa := filepath.Join(dir, "a"+string(rune('0'+i))+".png")
		pb := filepath.Join(dir, "b"+string(rune('0'+i))+".png")
		writePage(t, pa, 40, 60, color.Black)
		writePage(t, pb, 40, 60, color.Black)
		a = append(a, pa)
		b = append(b, pb)
	}

	page, err := ComparePages(context.Background(), a, b, 2)
	if err != nil {
		t.Fatalf("ComparePages: %v", err)
	}
	if page != 0 {
		t.Fatalf("page = %d, want 0", page)
	}
}

func TestComparePagesFirstDifference(t *testing.T) {
	dir := t.TempDir()
	var a, b []string
	for i := 0; i < 4; i++ {
		pa := filepath.Join(dir, "a"+string(rune('0'+i))+".png")
		pb := filepath.Join(dir, "b"+string(rune('0'+i))+".png")
		writePage(t, pa, 40, 60, color.Black)
		// pages 2 and 4 (1-based) differ; page 2 must be reported
		if i == 1 || i == 3 {
			writePage(t, pb, 40, 60, color.RGBA{R: 255, A: 255})
		} else {
			writePage(t, pb, 40, 60, color.Black)
		}
		a = append(a, pa)
		b = append(b, pb)
	}

	page, err := ComparePages(context.Background(), a, b, 4)
	if err != nil {
		t.Fatalf("ComparePages: %v", err)
	}
	if page != 2 {
		t.Fatalf("page = %d, want 2", page)
	}
}

func TestComparePagesSizeMismatch(t *testing.T) {
	dir := t.TempDir()
	pa := filepath.Join(dir, "a.png")
	pb := filepath.Join(dir, "b.png")
	writePage(t, pa, 40, 60, nil)
	writePage(t, pb, 41, 60, nil)

	page, err := ComparePages(context.Background(), []string{pa}, []string{pb}, 1)
	if err != nil {
		t.Fatalf("ComparePages: %v", err)
	}
	if page != 1 {
		t.Fatalf("page = %d, want 1", page)
	}
}

func TestComparePagesLengthMismatch(t *testing.T) {
	if _, err := ComparePages(context.Background(), []string{"a"}, nil, 1); err == nil {
		t.Fatal("expected error for mismatched page lists")
	}
}

func TestListPagesNaturalOrder(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"page-10.png", "page-2.png", "page-1.png", "page-9.png", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	pages, err := ListPages(dir)
	if err != nil {
		t.Fatalf("ListPages: %v", err)
	}
	want := []string{"page-1.png", "page-2.png", "page-9.png", "page-10.png"}
	if len(pages) != len(want) {
		t.Fatalf("got %d pages, want %d (%v)", len(pages), len(want), pages)
	}
	for i, w := range want {
		if filepath.Base(pages[i]) != w {
			t.Fatalf("pages[%d] = %s, want %s", i, filepath.Base(pages[i]), w)
		}
	}
}
