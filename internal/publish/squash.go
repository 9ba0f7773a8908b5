package publish

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"texdist/internal/strip"
)

// SquashStats summarizes a comment-stripping pass.
type SquashStats struct {
	Files   int
	Removed int
}

// Squash strips comments from every .tex file under the dist tree. Only the
// dist copies are touched; source files are never rewritten.
func Squash(distDir string) (SquashStats, error) {
	var stats SquashStats
	err := filepath.WalkDir(distDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return &IOError{Op: "failed to walk", Path: path, Err: err}
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".tex") {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return &IOError{Op: "failed to read", Path: path, Err: err}
		}
		res := strip.Comments(string(data))
		stats.Files++
		stats.Removed += res.Removed
		if res.Removed == 0 {
			return nil
		}
		info, err := d.Info()
		mode := fs.FileMode(0o644)
		if err == nil {
			mode = info.Mode().Perm()
		}
		if err := os.WriteFile(path, []byte(res.Text), mode); err != nil {
			return &IOError{Op: "failed to write", Path: path, Err: err}
		}
		return nil
	})
	return stats, err
}
