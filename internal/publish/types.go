// Package publish orchestrates the paper distribution pipeline.
package publish

import "time"

// Stage describes a high-level pipeline phase.
type Stage string

const (
	// StageInit creates the dist tree and seeds the main document.
	StageInit Stage = "init"
	// StageCollect copies every file the compiler asks for.
	StageCollect Stage = "collect"
	// StageSquash strips comments from the collected TeX sources.
	StageSquash Stage = "squash"
	// StageCompile is the final compile of the dist copy.
	StageCompile Stage = "compile"
	// StageOriginal compiles (or revalidates) the original document.
	StageOriginal Stage = "original"
	// StageCompare rasterizes both artifacts and compares pixels.
	StageCompare Stage = "compare"
)

// Stages lists the pipeline stages in display order.
func Stages() []Stage {
	return []Stage{StageInit, StageCollect, StageSquash, StageCompile, StageOriginal, StageCompare}
}

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the stage is waiting to start.
	StatusQueued Status = "queued"
	// StatusWorking indicates the stage is currently working.
	StatusWorking Status = "working"
	// StatusDone indicates the stage is done.
	StatusDone Status = "done"
	// StatusSkipped indicates the stage was not needed this run.
	StatusSkipped Status = "skipped"
	// StatusError indicates the stage encountered an error.
	StatusError Status = "error"
)

// Event reports progress for one pipeline stage.
type Event struct {
	Stage   Stage
	Status  Status
	Detail  string
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

// Timings holds stage durations.
type Timings struct {
	stages map[Stage]time.Duration
}

func (t *Timings) ensure() {
	if t.stages == nil {
		t.stages = make(map[Stage]time.Duration)
	}
}

// Set stores a duration for the given stage.
func (t *Timings) Set(stage Stage, dur time.Duration) {
	if t == nil {
		return
	}
	t.ensure()
	t.stages[stage] = dur
}

// Has reports whether a duration for stage is recorded.
func (t Timings) Has(stage Stage) bool {
	if t.stages == nil {
		return false
	}
	_, ok := t.stages[stage]
	return ok
}

// Duration returns the recorded duration for stage.
func (t Timings) Duration(stage Stage) time.Duration {
	if t.stages == nil {
		return 0
	}
	return t.stages[stage]
}

// Merge copies the other side's recorded durations into t.
func (t *Timings) Merge(other Timings) {
	if t == nil || other.stages == nil {
		return
	}
	t.ensure()
	for stage, dur := range other.stages {
		t.stages[stage] = dur
	}
}

// Total returns the sum of all recorded durations.
func (t Timings) Total() time.Duration {
	var total time.Duration
	for _, dur := range t.stages {
		total += dur
	}
	return total
}

func emit(sink ProgressSink, stage Stage, status Status, detail string, err error, elapsed time.Duration) {
	if sink == nil {
		return
	}
	sink.OnEvent(Event{Stage: stage, Status: status, Detail: detail, Err: err, Elapsed: elapsed})
}

func emitQueued(sink ProgressSink, stages []Stage) {
	for _, stage := range stages {
		emit(sink, stage, StatusQueued, "", nil, 0)
	}
}
