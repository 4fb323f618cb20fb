package pipeline

import (
	"time"

	"github.com/backmassage/h264ify/internal/job"
)

// RunStats tracks aggregate counters across a batch run.
type RunStats struct {
	Total       int
	Converted   int
	Failed      int
	OutputBytes int64
	FailedFiles []string
	Elapsed     time.Duration
}

func (s *RunStats) add(o job.Outcome) {
	if o.OK() {
		s.Converted++
		s.OutputBytes += o.Bytes
		return
	}
	s.Failed++
	s.FailedFiles = append(s.FailedFiles, o.Job.Name)
}
