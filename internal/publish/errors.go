package publish

import (
	"fmt"
	"strings"

	"texdist/internal/latex"
)

// IOError reports a filesystem problem: a missing include, an unreadable
// source, an unwritable dist tree.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s %s", e.Op, e.Path)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// CompileError reports a compiler invocation that failed for real, carrying
// the compiler's own diagnostics verbatim.
type CompileError struct {
	Result latex.Result
	Reason string
}

func (e *CompileError) Error() string {
	msg := fmt.Sprintf("compilation failed (%s)", e.Result.CommandLine())
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

// Diagnostics returns the compiler's captured output for display.
func (e *CompileError) Diagnostics() string {
	var b strings.Builder
	if out := strings.TrimSpace(e.Result.Stdout); out != "" {
		b.WriteString(out)
		b.WriteString("\n")
	}
	if errOut := strings.TrimSpace(e.Result.Stderr); errOut != "" {
		b.WriteString(errOut)
		b.WriteString("\n")
	}
	return b.String()
}

// VerifyError reports a pixel mismatch between the original and the dist
// renderings. Page is 1-based; zero means the page counts differ.
type VerifyError struct {
	Page   int
	PagesA int
	PagesB int
}

func (e *VerifyError) Error() string {
	if e.Page == 0 {
		return fmt.Sprintf("page count mismatch: original has %d pages, dist has %d", e.PagesA, e.PagesB)
	}
	return fmt.Sprintf("visual difference on page %d", e.Page)
}
