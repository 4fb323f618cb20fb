// Package job defines the unit of work passed between the resolver, the
// dispatcher and the encoder: one Job per source file and one Outcome per
// finished Job.
package job

import (
	"path/filepath"
	"time"
)

// OutputPrefix marks converted files. The output lives next to its source.
const OutputPrefix = "h264_"

// Job is one source file to convert. It is created by the resolver and is
// never modified afterwards.
type Job struct {
	Index int    // Submission position, 0-based.
	Name  string // Base name of the source file.
	Dir   string // Absolute directory containing the source file.
}

// New returns the Job for name inside dir.
func New(index int, dir, name string) Job {
	return Job{Index: index, Name: name, Dir: dir}
}

// InputPath is the absolute source path.
func (j Job) InputPath() string { return filepath.Join(j.Dir, j.Name) }

// OutputName is the source name with [OutputPrefix] prepended.
func (j Job) OutputName() string { return OutputPrefix + j.Name }

// OutputPath is the absolute destination path, in the source directory.
func (j Job) OutputPath() string { return filepath.Join(j.Dir, j.OutputName()) }

// Status classifies a finished job.
type Status int

const (
	StatusConverted Status = iota
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusConverted:
		return "converted"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome is the result of running one Job.
type Outcome struct {
	Job      Job
	Status   Status
	Err      error         // Non-nil when Status is StatusFailed.
	Duration time.Duration // Wall time of this job alone.
	Bytes    int64         // Size of the output file after a successful run.
}

// OK reports whether the job converted successfully.
func (o Outcome) OK() bool { return o.Status == StatusConverted }
