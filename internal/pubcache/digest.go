package pubcache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// Digest is a sha256 content fingerprint.
type Digest [sha256.Size]byte

// String returns the digest as lowercase hex.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// KeyFor derives a cache key from the absolute paper path, so each paper
// keeps its own record.
func KeyFor(paperPath string) Digest {
	return sha256.Sum256([]byte(paperPath))
}

// DigestOptions excludes generated artifacts from a tree fingerprint: the
// dist tree, aux output, and the compiled PDF must not feed back into it.
type DigestOptions struct {
	// SkipDirs are directory names pruned wherever they appear.
	SkipDirs []string
	// SkipFiles are absolute paths of individual files to ignore.
	SkipFiles []string
}

// TreeDigest fingerprints every regular file under root except the excluded
// ones. Paths and contents both contribute, in sorted path order, so renames
// invalidate just like edits.
func TreeDigest(root string, opts DigestOptions) (Digest, error) {
	skipDir := make(map[string]struct{}, len(opts.SkipDirs))
	for _, name := range opts.SkipDirs {
		skipDir[name] = struct{}{}
	}
	skipFile := make(map[string]struct{}, len(opts.SkipFiles))
	for _, path := range opts.SkipFiles {
		skipFile[filepath.Clean(path)] = struct{}{}
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if _, ok := skipDir[d.Name()]; ok && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if _, ok := skipFile[filepath.Clean(path)]; ok {
			return nil
		}
		if d.Type().IsRegular() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return Digest{}, fmt.Errorf("failed to walk %q: %w", root, err)
	}
	sort.Strings(files)

	h := sha256.New()
	for _, path := range files {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}
		fmt.Fprintf(h, "%s\x00", filepath.ToSlash(rel))
		f, err := os.Open(path)
		if err != nil {
			return Digest{}, fmt.Errorf("failed to open %q: %w", path, err)
		}
		_, copyErr := io.Copy(h, f)
		closeErr := f.Close()
		if copyErr != nil {
			return Digest{}, fmt.Errorf("failed to read %q: %w", path, copyErr)
		}
		if closeErr != nil {
			return Digest{}, closeErr
		}
		h.Write([]byte{0})
	}

	var d Digest
	copy(d[:], h.Sum(nil))
	return d, nil
}
