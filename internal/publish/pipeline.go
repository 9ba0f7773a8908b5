package publish

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"fortio.org/safecast"
	"golang.org/x/sync/errgroup"

	"texdist/internal/latex"
	"texdist/internal/pubcache"
)

// Request configures a full publish-and-verify run.
type Request struct {
	// Paper is the absolute path of the main document.
	Paper string
	// Clean removes a previously existing dist tree first.
	Clean bool
	// Jobs bounds page-comparison concurrency. Zero means GOMAXPROCS.
	Jobs int
	// AuxDir is the compiler's aux-directory name. Empty means the
	// compiler default.
	AuxDir string
	// Compiler builds PDFs; Renderer rasterizes them.
	Compiler DocCompiler
	Renderer PageRenderer
	// Cache may be nil; then the original is always recompiled.
	Cache *pubcache.Cache
	// Progress may be nil.
	Progress ProgressSink
}

// Result captures what a run produced.
type Result struct {
	DistDir       string
	Collect       CollectStats
	Squash        SquashStats
	Pages         int
	OriginalFresh bool
	DistCompile   latex.Result
	Timings       Timings
}

// Run executes the whole pipeline: init, collect, squash, compile the dist
// copy, compile (or revalidate) the original concurrently, then compare.
func Run(ctx context.Context, req *Request) (Result, error) {
	var result Result
	if req == nil {
		return result, fmt.Errorf("missing publish request")
	}
	if req.Paper == "" {
		return result, fmt.Errorf("missing paper path")
	}
	if req.Compiler == nil || req.Renderer == nil {
		return result, fmt.Errorf("missing compiler or renderer")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	paper, err := filepath.Abs(req.Paper)
	if err != nil {
		return result, fmt.Errorf("failed to resolve %q: %w", req.Paper, err)
	}
	if _, err := os.Stat(paper); err != nil {
		return result, &IOError{Op: "failed to read paper", Path: paper, Err: err}
	}
	result.DistDir = DistDir(paper)

	if req.Clean {
		if err := os.RemoveAll(result.DistDir); err != nil {
			return result, &IOError{Op: "failed to remove", Path: result.DistDir, Err: err}
		}
	}

	emitQueued(req.Progress, Stages())

	auxDir := req.AuxDir
	if auxDir == "" {
		auxDir = latex.DefaultAuxDir
	}

	var digest pubcache.Digest
	var originalTimings Timings
	g, gctx := errgroup.WithContext(ctx)

	// The original compile only reads the source tree; the dist stages only
	// write under dist/. Independent, so they overlap. Each goroutine keeps
	// its own timings; they merge after Wait.
	g.Go(func() error {
		_, err := runStage(req.Progress, StageOriginal, &originalTimings, func() (string, error) {
			fresh, d, err := ensureOriginalPDF(gctx, paper, auxDir, req)
			digest = d
			result.OriginalFresh = fresh
			if fresh {
				return "pdf up to date", err
			}
			return "", err
		})
		return err
	})

	g.Go(func() error {
		if _, err := runStage(req.Progress, StageInit, &result.Timings, func() (string, error) {
			return "", Init(paper)
		}); err != nil {
			return err
		}

		if _, err := runStage(req.Progress, StageCollect, &result.Timings, func() (string, error) {
			stats, err := Collect(gctx, paper, req.Compiler)
			result.Collect = stats
			return fmt.Sprintf("%d files in %d rounds", len(stats.Copied), stats.Rounds), err
		}); err != nil {
			return err
		}

		if _, err := runStage(req.Progress, StageSquash, &result.Timings, func() (string, error) {
			stats, err := Squash(result.DistDir)
			result.Squash = stats
			return fmt.Sprintf("%d comments in %d files", stats.Removed, stats.Files), err
		}); err != nil {
			return err
		}

		_, err := runStage(req.Progress, StageCompile, &result.Timings, func() (string, error) {
			res, err := req.Compiler.Compile(gctx, result.DistDir, filepath.Base(paper))
			result.DistCompile = res
			if err != nil {
				return "", err
			}
			distPDF := PDFPath(DistMain(paper))
			if _, statErr := os.Stat(distPDF); statErr != nil {
				return "", &CompileError{Result: res, Reason: "no PDF produced"}
			}
			return "", nil
		})
		return err
	})

	waitErr := g.Wait()
	result.Timings.Merge(originalTimings)
	if waitErr != nil {
		return result, waitErr
	}

	_, err = runStage(req.Progress, StageCompare, &result.Timings, func() (string, error) {
		cmp, err := Compare(ctx,
			PDFPath(paper),
			PDFPath(DistMain(paper)),
			DiffDir(paper, auxDir),
			req.Renderer,
			req.Jobs,
		)
		result.Pages = cmp.Pages
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%d pages identical", cmp.Pages), nil
	})
	if err != nil {
		return result, err
	}

	recordFingerprint(req.Cache, paper, digest, result.Pages)
	return result, nil
}

// runStage wraps one stage with progress events and timing.
func runStage(sink ProgressSink, stage Stage, timings *Timings, fn func() (string, error)) (string, error) {
	emit(sink, stage, StatusWorking, "", nil, 0)
	start := time.Now()
	detail, err := fn()
	elapsed := time.Since(start)
	timings.Set(stage, elapsed)
	if err != nil {
		emit(sink, stage, StatusError, detail, err, elapsed)
		return detail, err
	}
	status := StatusDone
	if stage == StageOriginal && detail == "pdf up to date" {
		status = StatusSkipped
	}
	emit(sink, stage, status, detail, nil, elapsed)
	return detail, nil
}

// ensureOriginalPDF recompiles the original document unless the fingerprint
// cache proves the existing PDF matches the current source tree.
func ensureOriginalPDF(ctx context.Context, paper, auxDir string, req *Request) (bool, pubcache.Digest, error) {
	srcDir := SourceDir(paper)
	digest, err := pubcache.TreeDigest(srcDir, pubcache.DigestOptions{
		SkipDirs:  []string{DistDirName, auxDir},
		SkipFiles: []string{PDFPath(paper)},
	})
	if err != nil {
		return false, pubcache.Digest{}, err
	}

	pdf := PDFPath(paper)
	if info, statErr := os.Stat(pdf); statErr == nil && req.Cache != nil {
		var payload pubcache.Payload
		hit, getErr := req.Cache.Get(pubcache.KeyFor(paper), &payload)
		if getErr == nil && hit &&
			payload.SourceDigest == digest &&
			payload.PDFModTime == info.ModTime().UnixNano() {
			return true, digest, nil
		}
	}

	res, err := req.Compiler.Compile(ctx, srcDir, filepath.Base(paper))
	if err != nil {
		return false, digest, err
	}
	if _, statErr := os.Stat(pdf); statErr != nil {
		return false, digest, &CompileError{Result: res, Reason: "no PDF produced for the original"}
	}
	return false, digest, nil
}

// recordFingerprint remembers the verified state so the next run can skip
// recompiling an unchanged original. Failures here are not fatal.
func recordFingerprint(cache *pubcache.Cache, paper string, digest pubcache.Digest, pages int) {
	if cache == nil {
		return
	}
	info, err := os.Stat(PDFPath(paper))
	if err != nil {
		return
	}
	pageCount, err := safecast.Conv[uint16](pages)
	if err != nil {
		pageCount = 0
	}
	_ = cache.Put(pubcache.KeyFor(paper), &pubcache.Payload{
		Paper:        paper,
		SourceDigest: digest,
		PDFModTime:   info.ModTime().UnixNano(),
		PageCount:    pageCount,
	})
}
