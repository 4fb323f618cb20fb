package pipeline

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/backmassage/h264ify/internal/job"
)

// Converter runs one job to completion.
type Converter interface {
	Convert(ctx context.Context, j job.Job) job.Outcome
}

// Reporter receives results as they arrive, then the final total.
type Reporter interface {
	Outcome(o job.Outcome, elapsed time.Duration)
	Total(elapsed time.Duration)
}

// Dispatcher runs jobs on a worker pool of fixed size and reports every
// outcome from a single consumer loop.
//
// With one worker (the default) jobs run strictly one after another and
// outcomes are reported in submission order. With more workers outcomes are
// reported in completion order.
type Dispatcher struct {
	conv    Converter
	rep     Reporter
	clock   *Clock
	workers int
}

// NewDispatcher returns a Dispatcher. workers below 1 is treated as 1.
func NewDispatcher(conv Converter, rep Reporter, clock *Clock, workers int) *Dispatcher {
	if workers < 1 {
		workers = 1
	}
	return &Dispatcher{conv: conv, rep: rep, clock: clock, workers: workers}
}

// Run executes every job exactly once and blocks until all have been
// reported, then emits the total line. A failed job never prevents later
// jobs from running.
func (d *Dispatcher) Run(ctx context.Context, jobs []job.Job) RunStats {
	results := make(chan job.Outcome)

	// Submission runs on its own goroutine: errgroup.Go blocks while the
	// pool is full, and the caller must stay free to drain results.
	go func() {
		var g errgroup.Group
		g.SetLimit(d.workers)
		for _, j := range jobs {
			g.Go(func() error {
				results <- d.conv.Convert(ctx, j)
				return nil
			})
		}
		_ = g.Wait()
		close(results)
	}()

	stats := RunStats{Total: len(jobs)}
	for o := range results {
		stats.add(o)
		d.rep.Outcome(o, d.clock.Elapsed())
	}

	stats.Elapsed = d.clock.Elapsed()
	d.rep.Total(stats.Elapsed)
	return stats
}
