package ui

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"

	"texdist/internal/publish"
)

var (
	doneColor    = color.New(color.FgGreen)
	skippedColor = color.New(color.FgBlue)
	errorColor   = color.New(color.FgRed, color.Bold)
)

// PlainReporter prints one line per stage transition, for non-terminal
// output and --ui=off.
type PlainReporter struct {
	mu    sync.Mutex
	out   io.Writer
	quiet bool
}

// NewPlainReporter writes stage progress to out. When quiet is set only
// errors are printed.
func NewPlainReporter(out io.Writer, quiet bool) *PlainReporter {
	return &PlainReporter{out: out, quiet: quiet}
}

// OnEvent implements publish.ProgressSink. Events arrive from two pipeline
// goroutines, hence the lock.
func (r *PlainReporter) OnEvent(evt publish.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch evt.Status {
	case publish.StatusDone:
		if r.quiet {
			return
		}
		line := doneColor.Sprintf("✓ %s", evt.Stage)
		if evt.Detail != "" {
			line += ": " + evt.Detail
		}
		fmt.Fprintln(r.out, line)
	case publish.StatusSkipped:
		if r.quiet {
			return
		}
		line := skippedColor.Sprintf("- %s", evt.Stage)
		if evt.Detail != "" {
			line += ": " + evt.Detail
		}
		fmt.Fprintln(r.out, line)
	case publish.StatusError:
		fmt.Fprintln(r.out, errorColor.Sprintf("✗ %s: %v", evt.Stage, evt.Err))
	}
}
