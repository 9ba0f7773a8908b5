package publish

import (
	"context"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"texdist/internal/raster"
)

// Comparison reports a successful pixel verification.
type Comparison struct {
	Pages int
}

// Compare rasterizes both artifacts into diffDir and requires every page
// pair to be pixel-identical. The two renders are independent and run
// concurrently; the page-by-page comparison waits for both.
func Compare(ctx context.Context, originalPDF, distPDF, diffDir string, renderer PageRenderer, jobs int) (Comparison, error) {
	if err := os.RemoveAll(diffDir); err != nil {
		return Comparison{}, &IOError{Op: "failed to clear", Path: diffDir, Err: err}
	}

	var pagesA, pagesB []string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		pagesA, err = renderer.Render(gctx, originalPDF, filepath.Join(diffDir, "a"))
		return err
	})
	g.Go(func() error {
		var err error
		pagesB, err = renderer.Render(gctx, distPDF, filepath.Join(diffDir, "b"))
		return err
	})
	if err := g.Wait(); err != nil {
		return Comparison{}, err
	}

	if len(pagesA) != len(pagesB) {
		return Comparison{}, &VerifyError{PagesA: len(pagesA), PagesB: len(pagesB)}
	}
	page, err := raster.ComparePages(ctx, pagesA, pagesB, jobs)
	if err != nil {
		return Comparison{}, err
	}
	if page != 0 {
		return Comparison{}, &VerifyError{Page: page, PagesA: len(pagesA), PagesB: len(pagesB)}
	}
	return Comparison{Pages: len(pagesA)}, nil
}
