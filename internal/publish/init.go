package publish

import (
	"io"
	"os"
	"path/filepath"
)

// Init creates the dist tree and seeds it with the main document. An
// existing dist copy of the document is left alone so a re-run does not
// clobber collected state.
func Init(paper string) error {
	if _, err := os.Stat(paper); err != nil {
		return &IOError{Op: "failed to read paper", Path: paper, Err: err}
	}
	dir := DistDir(paper)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &IOError{Op: "failed to create", Path: dir, Err: err}
	}
	target := DistMain(paper)
	if _, err := os.Stat(target); err == nil {
		return nil
	}
	if err := copyFile(paper, target); err != nil {
		return err
	}
	return nil
}

// copyFile copies a regular file, creating parent directories on the
// destination side.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return &IOError{Op: "failed to open", Path: src, Err: err}
	}
	defer func() {
		if closeErr := in.Close(); closeErr != nil {
			panic(closeErr)
		}
	}()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return &IOError{Op: "failed to create", Path: filepath.Dir(dst), Err: err}
	}
	out, err := os.Create(dst)
	if err != nil {
		return &IOError{Op: "failed to create", Path: dst, Err: err}
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return &IOError{Op: "failed to copy to", Path: dst, Err: err}
	}
	if err := out.Close(); err != nil {
		return &IOError{Op: "failed to write", Path: dst, Err: err}
	}
	return nil
}
