// Package latex drives the external TeX compiler and reads its output.
package latex

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// DefaultCommand is the compiler invoked when the manifest does not name one.
const DefaultCommand = "latexmk"

// DefaultAuxDir is where the compiler keeps aux files and where we keep logs.
const DefaultAuxDir = "tmp"

// Compiler invokes the external document compiler on a main document.
type Compiler struct {
	// Command is the compiler executable. Empty means DefaultCommand.
	Command string
	// ExtraArgs are appended after the fixed argument set.
	ExtraArgs []string
	// AuxDir is the aux-directory name inside the document's directory.
	// Empty means DefaultAuxDir.
	AuxDir string
}

// Result captures one compiler invocation. A nonzero ExitCode is not by
// itself an error: nonstopmode exits nonzero whenever any input is missing,
// and the collect loop feeds on exactly those runs.
type Result struct {
	Args     []string
	ExitCode int
	Stdout   string
	Stderr   string
	Missing  []string
}

func (c *Compiler) command() string {
	if c.Command == "" {
		return DefaultCommand
	}
	return c.Command
}

func (c *Compiler) auxDir() string {
	if c.AuxDir == "" {
		return DefaultAuxDir
	}
	return c.AuxDir
}

// Compile runs the compiler on main inside dir and persists the captured
// stdout/stderr under the aux directory. The returned error covers only
// failures to run the process or to write the logs, never TeX errors.
func (c *Compiler) Compile(ctx context.Context, dir, main string) (Result, error) {
	args := []string{
		"-pdf",
		"-recorder-",
		"-shell-escape",
		"-interaction=nonstopmode",
		"-aux-directory=" + c.auxDir(),
	}
	args = append(args, c.ExtraArgs...)
	args = append(args, main)

	cmd := exec.CommandContext(ctx, c.command(), args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	res := Result{Args: append([]string{c.command()}, args...)}
	runErr := cmd.Run()
	res.Stdout = stdout.String()
	res.Stderr = stderr.String()

	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
		} else {
			return res, fmt.Errorf("failed to run %s: %w", c.command(), runErr)
		}
	}

	if err := c.saveLogs(dir, &res); err != nil {
		return res, err
	}
	res.Missing = ScanMissing(res.Stdout, res.Stderr)
	return res, nil
}

// saveLogs writes the captured compiler output next to the aux files so a
// failed run can be inspected after the process is gone.
func (c *Compiler) saveLogs(dir string, res *Result) error {
	logDir := filepath.Join(dir, c.auxDir())
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return fmt.Errorf("failed to create %q: %w", logDir, err)
	}
	name := c.command()
	if base := filepath.Base(name); base != "" {
		name = base
	}
	outPath := filepath.Join(logDir, name+"-stdout.txt")
	errPath := filepath.Join(logDir, name+"-stderr.txt")
	if err := os.WriteFile(outPath, []byte(res.Stdout), 0o644); err != nil {
		return fmt.Errorf("failed to write %q: %w", outPath, err)
	}
	if err := os.WriteFile(errPath, []byte(res.Stderr), 0o644); err != nil {
		return fmt.Errorf("failed to write %q: %w", errPath, err)
	}
	return nil
}

// CommandLine renders the invocation for diagnostics.
func (r Result) CommandLine() string {
	return strings.Join(r.Args, " ")
}
