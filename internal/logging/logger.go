// Package logging provides the leveled console logger. Console lines are
// timestamped and colored by level; when a log file is configured every
// line is also appended to it as a JSON record through hclog.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/backmassage/h264ify/internal/config"
	"github.com/backmassage/h264ify/internal/term"
)

// Logger provides leveled, optionally colored logging with optional file sink.
type Logger struct {
	mu      sync.Mutex
	verbose bool
	out     io.Writer
	errOut  io.Writer
	file    *os.File
	sink    hclog.Logger
	runID   string
}

// NewLogger configures terminal colors from cfg and optionally opens
// cfg.LogFile. Call Close() when done.
func NewLogger(cfg *config.Config) (*Logger, error) {
	return NewLoggerTo(cfg, os.Stdout, os.Stderr)
}

// NewLoggerTo is NewLogger with explicit console writers; errors go to
// errOut, everything else to out.
func NewLoggerTo(cfg *config.Config, out, errOut io.Writer) (*Logger, error) {
	term.Configure(cfg.ColorMode)
	return newLogger(cfg, out, errOut)
}

func newLogger(cfg *config.Config, out, errOut io.Writer) (*Logger, error) {
	l := &Logger{
		verbose: cfg.Verbose,
		out:     out,
		errOut:  errOut,
		runID:   uuid.NewString(),
	}

	if cfg.LogFile != "" {
		dir := filepath.Dir(cfg.LogFile)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		level := hclog.Info
		if cfg.Verbose {
			level = hclog.Debug
		}
		l.file = f
		l.sink = hclog.New(&hclog.LoggerOptions{
			Name:       "h264ify",
			Level:      level,
			Output:     f,
			JSONFormat: true,
		}).With("run", l.runID)
	}
	return l, nil
}

// RunID identifies this process in the log file.
func (l *Logger) RunID() string { return l.runID }

// Close closes the log file if one was opened.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		l.sink = nil
		return err
	}
	return nil
}

func (l *Logger) line(level string, c *color.Color, sinkLevel hclog.Level, text string) {
	ts := time.Now().Format("2006-01-02 15:04:05")
	l.mu.Lock()
	defer l.mu.Unlock()
	out := l.out
	if level == "ERROR" {
		out = l.errOut
	}
	_, _ = io.WriteString(out, ts+" "+c.Sprint("["+level+"]")+" "+text+"\n")
	if l.sink != nil {
		l.sink.Log(sinkLevel, text, "tag", level)
	}
}

// Info logs at INFO level (blue).
func (l *Logger) Info(format string, args ...interface{}) {
	l.line("INFO", term.Blue, hclog.Info, fmt.Sprintf(format, args...))
}

// Success logs at SUCCESS level (green).
func (l *Logger) Success(format string, args ...interface{}) {
	l.line("SUCCESS", term.Green, hclog.Info, fmt.Sprintf(format, args...))
}

// Warn logs at WARN level (yellow).
func (l *Logger) Warn(format string, args ...interface{}) {
	l.line("WARN", term.Yellow, hclog.Warn, fmt.Sprintf(format, args...))
}

// Error logs at ERROR level (red), to stderr.
func (l *Logger) Error(format string, args ...interface{}) {
	l.line("ERROR", term.Red, hclog.Error, fmt.Sprintf(format, args...))
}

// Debug logs at DEBUG level (cyan) only when verbose.
func (l *Logger) Debug(format string, args ...interface{}) {
	if !l.verbose {
		return
	}
	l.line("DEBUG", term.Cyan, hclog.Debug, fmt.Sprintf(format, args...))
}

// Record writes a message to the log file only. Used for per-job results,
// which the console shows in their own format.
func (l *Logger) Record(msg string, keyvals ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.sink != nil {
		l.sink.Info(msg, keyvals...)
	}
}
