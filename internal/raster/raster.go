// Package raster renders PDF pages to images and compares them pixel for
// pixel.
package raster

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DefaultCommand is the rasterizer invoked when the manifest does not name
// one.
const DefaultCommand = "pdftoppm"

// Converter renders a paginated artifact into one PNG per page.
type Converter struct {
	// Command is the rasterizer executable. Empty means DefaultCommand.
	Command string
	// DPI is the render resolution. Zero keeps the rasterizer's default.
	DPI int
}

func (c *Converter) command() string {
	if c.Command == "" {
		return DefaultCommand
	}
	return c.Command
}

// Render converts pdf into per-page PNGs under dir and returns the page
// image paths in page order.
func (c *Converter) Render(ctx context.Context, pdf, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create %q: %w", dir, err)
	}

	args := []string{"-png"}
	if c.DPI > 0 {
		args = append(args, "-r", strconv.Itoa(c.DPI))
	}
	args = append(args, pdf, filepath.Join(dir, "page"))

	cmd := exec.CommandContext(ctx, c.command(), args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s failed on %q: %w\n%s", c.command(), pdf, err, stderr.String())
	}

	return ListPages(dir)
}

// ListPages returns the page images in dir sorted in page order. The
// rasterizer does not zero-pad page numbers, so page-9 must sort before
// page-10; a numeric collation handles that.
func ListPages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %q: %w", dir, err)
	}
	pages := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".png" {
			continue
		}
		pages = append(pages, filepath.Join(dir, entry.Name()))
	}
	collate.New(language.Und, collate.Numeric).SortStrings(pages)
	return pages, nil
}
