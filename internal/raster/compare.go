package raster

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ComparePages compares two equally long lists of page images and returns
// the 1-based number of the first differing page, or 0 when every page is
// identical. Pages are compared concurrently; the reported page is still the
// lowest differing one.
func ComparePages(ctx context.Context, a, b []string, jobs int) (int, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("page lists differ in length: %d vs %d", len(a), len(b))
	}
	if len(a) == 0 {
		return 0, nil
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	differing := make([]bool, len(a))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(a)))
	for i := range a {
		i := i
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			equal, err := equalImages(a[i], b[i])
			if err != nil {
				return err
			}
			differing[i] = !equal
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	for i, diff := range differing {
		if diff {
			return i + 1, nil
		}
	}
	return 0, nil
}

func equalImages(pathA, pathB string) (bool, error) {
	imgA, err := loadImage(pathA)
	if err != nil {
		return false, err
	}
	imgB, err := loadImage(pathB)
	if err != nil {
		return false, err
	}
	if imgA.Bounds() != imgB.Bounds() {
		return false, nil
	}
	return bytes.Equal(rgbaPixels(imgA), rgbaPixels(imgB)), nil
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open page image %q: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %q: %w", path, err)
	}
	return img, nil
}

// rgbaPixels normalizes to RGBA so two encodings of the same pixels compare
// equal regardless of the PNG color model.
func rgbaPixels(img image.Image) []byte {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Stride == rgba.Rect.Dx()*4 {
		return rgba.Pix
	}
	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	return rgba.Pix
}
