package publish

import (
	"context"

	"texdist/internal/latex"
)

// DocCompiler produces a paginated artifact from a main document. Satisfied
// by latex.Compiler; tests substitute scripted fakes.
type DocCompiler interface {
	Compile(ctx context.Context, dir, main string) (latex.Result, error)
}

// PageRenderer rasterizes a paginated artifact into per-page images.
// Satisfied by raster.Converter.
type PageRenderer interface {
	Render(ctx context.Context, pdf, dir string) ([]string, error)
}
