package runner

import (
	"errors"
	"fmt"

	"github.com/yaklabco/codesurface/pkg/codeline"
	"github.com/yaklabco/codesurface/pkg/linediff"
	"github.com/yaklabco/codesurface/pkg/treediff"
)

// Mode selects what a job produces.
type Mode int

// Job modes.
const (
	ModeRender Mode = iota
	ModeDiff
)

// String returns the lowercase mode name.
func (m Mode) String() string {
	if m == ModeDiff {
		return "diff"
	}
	return "render"
}

// Job is one unit of batch work.
type Job struct {
	// Name labels the job in reports. Defaults to After, then Before.
	Name string

	Mode Mode

	// Before is the old surface of a diff. Empty means an empty surface,
	// so every line of After is reported as added.
	Before string

	// After is the surface to render, or the new side of a diff. Empty in
	// a diff means every line of Before is reported as removed.
	After string
}

// Label returns the job's display name.
func (j Job) Label() string {
	switch {
	case j.Name != "":
		return j.Name
	case j.After != "":
		return j.After
	default:
		return j.Before
	}
}

// Outcome is the result of one job.
type Outcome struct {
	Job Job

	// Lines is set for render jobs.
	Lines []codeline.Line

	// Diff is set for diff jobs.
	Diff []treediff.Line

	// Sections holds the heading line numbers of changed sections.
	Sections []int

	Stats linediff.Stats

	Err error
}

// Stats aggregates a run.
type Stats struct {
	Jobs     int
	Rendered int
	Diffed   int
	Changed  int
	Failed   int

	// Lines sums the line statistics of every successful job.
	Lines linediff.Stats
}

// Result holds every outcome in job order.
type Result struct {
	Outcomes []Outcome
	Stats    Stats
}

// HasChanges reports whether any diff job found a difference.
func (r *Result) HasChanges() bool {
	return r != nil && r.Stats.Changed > 0
}

// HasFailures reports whether any job failed.
func (r *Result) HasFailures() bool {
	return r != nil && r.Stats.Failed > 0
}

// Err joins the errors of failed jobs, or returns nil.
func (r *Result) Err() error {
	if r == nil {
		return nil
	}
	var errs []error
	for _, o := range r.Outcomes {
		if o.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", o.Job.Label(), o.Err))
		}
	}
	return errors.Join(errs...)
}

func (r *Result) accumulate(o Outcome) {
	r.Outcomes = append(r.Outcomes, o)
	r.Stats.Jobs++

	if o.Err != nil {
		r.Stats.Failed++
		return
	}

	switch o.Job.Mode {
	case ModeDiff:
		r.Stats.Diffed++
		if o.Stats.HasChanges() {
			r.Stats.Changed++
		}
	default:
		r.Stats.Rendered++
	}

	r.Stats.Lines.Unchanged += o.Stats.Unchanged
	r.Stats.Lines.Added += o.Stats.Added
	r.Stats.Lines.Removed += o.Stats.Removed
}
