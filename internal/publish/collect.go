package publish

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// maxCollectRounds caps the compile-and-copy loop against a compiler that
// keeps asking for files we cannot satisfy.
const maxCollectRounds = 32

// CollectStats summarizes a collect run.
type CollectStats struct {
	Rounds int
	Copied []string
	Last   CompileOutcome
}

// CompileOutcome is re-exported compile state the caller may want to dump.
type CompileOutcome struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Collect repeatedly compiles the dist copy and copies over every file the
// compiler reports missing, until a compile run reports none. Extension-less
// references (\includegraphics without a suffix, bibliography stems) are
// resolved by globbing `name.*` in the source directory.
func Collect(ctx context.Context, paper string, comp DocCompiler) (CollectStats, error) {
	var stats CollectStats
	srcDir := SourceDir(paper)
	distDir := DistDir(paper)
	main := filepath.Base(paper)

	var previous []string
	for stats.Rounds < maxCollectRounds {
		stats.Rounds++

		res, err := comp.Compile(ctx, distDir, main)
		stats.Last = CompileOutcome{ExitCode: res.ExitCode, Stdout: res.Stdout, Stderr: res.Stderr}
		if err != nil {
			return stats, err
		}
		if len(res.Missing) == 0 {
			return stats, nil
		}
		if slices.Equal(res.Missing, previous) {
			return stats, &CompileError{
				Result: res,
				Reason: "compiler keeps reporting the same missing files: " + strings.Join(res.Missing, ", "),
			}
		}
		previous = res.Missing

		// A failure below leaves everything copied so far in dist; the error
		// says so instead of pretending the tree is untouched.
		for _, name := range res.Missing {
			src, dst, err := resolveInclude(srcDir, distDir, name)
			if err != nil {
				return stats, fmt.Errorf("dist tree is incomplete: %w", err)
			}
			if err := copyFile(src, dst); err != nil {
				return stats, fmt.Errorf("dist tree is incomplete: %w", err)
			}
			rel, relErr := filepath.Rel(srcDir, src)
			if relErr != nil {
				rel = src
			}
			stats.Copied = append(stats.Copied, filepath.ToSlash(rel))
		}
	}
	return stats, &CompileError{Reason: "collect did not converge"}
}

// resolveInclude maps a compiler-reported missing file to a source file and
// its dist destination. When the reported name has no matching file, the
// name is treated as an extension-less stem and `name.*` is globbed.
func resolveInclude(srcDir, distDir, name string) (string, string, error) {
	src := filepath.Join(srcDir, name)
	dst := filepath.Join(distDir, name)
	if info, err := os.Stat(src); err == nil && info.Mode().IsRegular() {
		return src, dst, nil
	}

	matches, _ := filepath.Glob(src + ".*")
	for _, candidate := range matches {
		info, err := os.Stat(candidate)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		candidateDst := filepath.Join(filepath.Dir(dst), filepath.Base(candidate))
		if _, err := os.Stat(candidateDst); err == nil {
			continue
		}
		return candidate, candidateDst, nil
	}
	return "", "", &IOError{Op: "missing include", Path: src, Err: os.ErrNotExist}
}
