package publish

import (
	"path/filepath"
	"strings"
)

// DistDirName is the distribution directory created next to the paper.
const DistDirName = "dist"

// SourceDir returns the directory holding the paper and its includes.
func SourceDir(paper string) string {
	return filepath.Dir(paper)
}

// DistDir returns the distribution directory for a paper.
func DistDir(paper string) string {
	return filepath.Join(filepath.Dir(paper), DistDirName)
}

// DistMain returns the path of the main document inside the dist tree.
func DistMain(paper string) string {
	return filepath.Join(DistDir(paper), filepath.Base(paper))
}

// PDFPath returns the compiled artifact path for a document.
func PDFPath(doc string) string {
	return strings.TrimSuffix(doc, filepath.Ext(doc)) + ".pdf"
}

// DiffDir returns where page images for comparison are kept.
func DiffDir(paper, auxDir string) string {
	return filepath.Join(DistDir(paper), auxDir, "diff")
}
