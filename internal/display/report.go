package display

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/backmassage/h264ify/internal/job"
	"github.com/backmassage/h264ify/internal/term"
)

// Recorder receives a structured copy of every reported result.
type Recorder interface {
	Record(msg string, keyvals ...interface{})
}

// Reporter writes per-job result lines and the final total. Each call
// writes its lines under one lock, so output stays line-atomic when jobs
// finish concurrently.
type Reporter struct {
	mu  sync.Mutex
	w   io.Writer
	rec Recorder
}

// NewReporter returns a Reporter writing to w. rec may be nil.
func NewReporter(w io.Writer, rec Recorder) *Reporter {
	return &Reporter{w: w, rec: rec}
}

// Outcome prints the colored result for o followed by the time elapsed
// since the run started.
func (r *Reporter) Outcome(o job.Outcome, elapsed time.Duration) {
	var line string
	if o.OK() {
		line = term.Green.Sprintf("%s converted", o.Job.Name)
	} else {
		line = term.Red.Sprintf("Failed to convert %s", o.Job.Name)
	}

	r.mu.Lock()
	fmt.Fprintf(r.w, "%s\nElapsed time: %s\n", line, FormatElapsed(elapsed))
	r.mu.Unlock()

	if r.rec != nil {
		kv := []interface{}{
			"index", o.Job.Index,
			"file", o.Job.Name,
			"status", o.Status.String(),
			"duration", o.Duration.String(),
		}
		if o.Err != nil {
			kv = append(kv, "error", o.Err.Error())
		}
		r.rec.Record("job finished", kv...)
	}
}

// Total prints the final summary line.
func (r *Reporter) Total(elapsed time.Duration) {
	r.mu.Lock()
	fmt.Fprintln(r.w, term.Blue.Sprintf("TOTAL Elapsed time: %s", FormatElapsed(elapsed)))
	r.mu.Unlock()

	if r.rec != nil {
		r.rec.Record("run finished", "elapsed", elapsed.String())
	}
}
