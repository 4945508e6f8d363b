package runner

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/codesurface/pkg/linediff"
	"github.com/yaklabco/codesurface/pkg/surface"
)

// Runner executes batches of render and diff jobs.
type Runner struct {
	opts Options
}

// New creates a Runner.
func New(opts Options) *Runner {
	return &Runner{opts: opts}
}

// Run executes jobs on a bounded worker pool. Outcomes are returned in job
// order whatever order workers finish in. A failing job does not stop the
// others; its error is recorded in its Outcome. Run returns an error only
// when ctx is cancelled, together with the outcomes finished so far.
func (r *Runner) Run(ctx context.Context, jobs []Job) (*Result, error) {
	result := &Result{Outcomes: make([]Outcome, 0, len(jobs))}
	if len(jobs) == 0 {
		return result, nil
	}

	workers := r.opts.Jobs
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	workers = min(workers, len(jobs))

	outcomes := make([]Outcome, len(jobs))
	done := make([]bool, len(jobs))
	load := r.opts.loader()

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workers)

	for i, job := range jobs {
		if groupCtx.Err() != nil {
			break
		}
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			outcomes[i] = process(groupCtx, load, job)
			done[i] = true
			return nil
		})
	}

	waitErr := group.Wait()

	for i := range jobs {
		if done[i] {
			result.accumulate(outcomes[i])
		}
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}
	if waitErr != nil {
		return result, fmt.Errorf("run: %w", waitErr)
	}
	return result, nil
}

func process(ctx context.Context, load Loader, job Job) Outcome {
	out := Outcome{Job: job}

	switch job.Mode {
	case ModeDiff:
		before, err := open(ctx, load, job.Before)
		if err != nil {
			out.Err = err
			return out
		}
		after, err := open(ctx, load, job.After)
		if err != nil {
			out.Err = err
			return out
		}
		out.Diff = after.RenderDiff(before)
		out.Sections = after.SectionsWithDiff(before)
		out.Stats = linediff.Count(out.Diff)

	default:
		s, err := open(ctx, load, job.After)
		if err != nil {
			out.Err = err
			return out
		}
		out.Lines = s.Render()
		out.Stats.Unchanged = len(out.Lines)
	}
	return out
}

// open loads path, treating an empty path as an empty surface.
func open(ctx context.Context, load Loader, path string) (*surface.Surface, error) {
	if path == "" {
		return surface.New(&surface.Document{}), nil
	}
	s, err := load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return s, nil
}
