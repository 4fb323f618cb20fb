package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/backmassage/h264ify/internal/config"
	"github.com/backmassage/h264ify/internal/job"
)

// ErrConversionFailed wraps every per-job failure: a nonzero exit status or
// an encoder that could not be started.
var ErrConversionFailed = errors.New("conversion failed")

// stderrTailSize bounds how much ffmpeg stderr is kept for verbose logging.
const stderrTailSize = 4096

// Logger is the logging the executor needs. Defined here so tests can pass
// a recorder instead of a console logger.
type Logger interface {
	Debug(string, ...interface{})
}

// Executor runs real ffmpeg conversions.
type Executor struct {
	cfg *config.Config
	log Logger
}

// NewExecutor returns an Executor for cfg. log may be nil.
func NewExecutor(cfg *config.Config, log Logger) *Executor {
	return &Executor{cfg: cfg, log: log}
}

// Convert runs ffmpeg for j and blocks until it exits. ffmpeg's stdout and
// stderr are discarded (stderr is kept in a small tail buffer in verbose
// mode for the debug log); the outcome depends only on the exit status.
func (e *Executor) Convert(ctx context.Context, j job.Job) job.Outcome {
	args := Build(e.cfg, j)
	e.debug("Running: %s", CommandLine(args))

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	var tail *tailBuffer
	if e.cfg.Verbose {
		tail = newTailBuffer(stderrTailSize)
		cmd.Stderr = tail
	}

	start := time.Now()
	err := cmd.Run()
	out := job.Outcome{Job: j, Duration: time.Since(start)}

	if err != nil {
		out.Status = job.StatusFailed
		out.Err = fmt.Errorf("%w: %s: %s", ErrConversionFailed, j.Name, describeExit(err))
		if tail != nil {
			for _, l := range tail.Lines() {
				e.debug("  %s", l)
			}
		}
		return out
	}

	out.Status = job.StatusConverted
	if fi, err := os.Stat(j.OutputPath()); err == nil {
		out.Bytes = fi.Size()
	}
	return out
}

func (e *Executor) debug(format string, args ...interface{}) {
	if e.log != nil {
		e.log.Debug(format, args...)
	}
}

// describeExit turns a Run error into a short reason: the exit code when
// ffmpeg ran, otherwise the start error (e.g. executable not found).
func describeExit(err error) string {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return fmt.Sprintf("exit status %d", exitErr.ExitCode())
	}
	return err.Error()
}

// DryRunner prints the command each job would run and reports it as
// converted without starting ffmpeg.
type DryRunner struct {
	cfg   *config.Config
	print func(string, ...interface{})
}

// NewDryRunner returns a DryRunner that writes commands through print.
func NewDryRunner(cfg *config.Config, print func(string, ...interface{})) *DryRunner {
	return &DryRunner{cfg: cfg, print: print}
}

// Convert implements the same contract as [Executor.Convert].
func (d *DryRunner) Convert(_ context.Context, j job.Job) job.Outcome {
	d.print("[DRY] %s", CommandLine(Build(d.cfg, j)))
	return job.Outcome{Job: j, Status: job.StatusConverted}
}

// tailBuffer is an io.Writer that keeps only the last max bytes written.
type tailBuffer struct {
	max int
	buf []byte
}

func newTailBuffer(max int) *tailBuffer {
	return &tailBuffer{max: max}
}

func (t *tailBuffer) Write(p []byte) (int, error) {
	t.buf = append(t.buf, p...)
	if over := len(t.buf) - t.max; over > 0 {
		t.buf = t.buf[over:]
	}
	return len(p), nil
}

// Lines returns the retained output split into non-empty lines.
func (t *tailBuffer) Lines() []string {
	var lines []string
	for _, l := range strings.Split(string(t.buf), "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}
