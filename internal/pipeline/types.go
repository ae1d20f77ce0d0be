// Package pipeline describes the stages of a bulk scan and the progress
// events it reports.
package pipeline

import "time"

// Stage describes a high-level scan phase.
type Stage string

const (
	// StageLoad reads and normalizes a word list.
	StageLoad Stage = "load"
	// StageFilter drops words that can never render.
	StageFilter Stage = "filter"
	// StageCache looks up earlier results.
	StageCache Stage = "cache"
	// StageAnalyze renders the words.
	StageAnalyze Stage = "analyze"
	// StageWrite hands results to the sink.
	StageWrite Stage = "write"
)

// Stages lists every stage in execution order.
var Stages = []Stage{StageLoad, StageFilter, StageCache, StageAnalyze, StageWrite}

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the task is waiting to start.
	StatusQueued Status = "queued"
	// StatusWorking indicates the task is currently working.
	StatusWorking Status = "working"
	// StatusDone indicates the task is done.
	StatusDone Status = "done"
	// StatusCached indicates the task was answered from the cache.
	StatusCached Status = "cached"
	// StatusError indicates the task encountered an error.
	StatusError Status = "error"
)

// Event reports progress for a word list (or for the whole scan when File is empty).
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Words   int
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events.
type ProgressSink interface {
	OnEvent(Event)
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

// Add accumulates a duration for the given stage.
func (t *Timings) Add(stage Stage, dur time.Duration) {
	if t == nil {
		return
	}
	t.ensure()
	t.stages[stage] += dur
}

// Has reports whether a duration for stage is recorded.
func (t Timings) Has(stage Stage) bool {
	_, ok := t.stages[stage]
	return ok
}

// Duration returns the recorded duration for stage.
func (t Timings) Duration(stage Stage) time.Duration {
	return t.stages[stage]
}

// Sum returns the sum of durations across the provided stages.
func (t Timings) Sum(stages ...Stage) time.Duration {
	var total time.Duration
	for _, stage := range stages {
		total += t.stages[stage]
	}
	return total
}
