package check

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/h264ify/internal/config"
)

// recLogger captures log calls by level.
type recLogger struct {
	mu    sync.Mutex
	lines []string
}

func (r *recLogger) add(level, format string, args ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, level+" "+fmt.Sprintf(format, args...))
}

func (r *recLogger) Info(f string, a ...interface{})    { r.add("INFO", f, a...) }
func (r *recLogger) Success(f string, a ...interface{}) { r.add("SUCCESS", f, a...) }
func (r *recLogger) Warn(f string, a ...interface{})    { r.add("WARN", f, a...) }
func (r *recLogger) Error(f string, a ...interface{})   { r.add("ERROR", f, a...) }
func (r *recLogger) Debug(f string, a ...interface{})   { r.add("DEBUG", f, a...) }

func (r *recLogger) has(prefix string) bool {
	for _, l := range r.lines {
		if strings.HasPrefix(l, prefix) {
			return true
		}
	}
	return false
}

// fakeFFmpeg writes a script that answers -version and -encoders, and
// fails a libx264 encode unless withX264 is set.
func fakeFFmpeg(t *testing.T, withX264 bool) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake ffmpeg needs /bin/sh")
	}
	encoders := " V....D libx265              libx265 H.265 / HEVC"
	encodeExit := "1"
	if withX264 {
		encoders = " V....D libx264              libx264 H.264 / AVC / MPEG-4 AVC"
		encodeExit = "0"
	}
	script := `#!/bin/sh
case "$*" in
  *-version*) echo "ffmpeg version 7.1-test Copyright (c) the FFmpeg developers"; exit 0 ;;
  *-encoders*) echo "Encoders:"; echo "` + encoders + `"; exit 0 ;;
esac
exit ` + encodeExit + `
`
	path := filepath.Join(t.TempDir(), "ffmpeg")
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

func TestCheckDeps(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.FFmpegPath = fakeFFmpeg(t, true)
	assert.NoError(t, CheckDeps(&cfg))

	cfg.FFmpegPath = filepath.Join(t.TempDir(), "no-such-ffmpeg")
	err := CheckDeps(&cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFFmpegNotFound))
	assert.Contains(t, err.Error(), "no-such-ffmpeg")
}

func TestRunCheck(t *testing.T) {
	tests := []struct {
		name     string
		ffmpeg   func(t *testing.T) string
		wantOK   bool
		wantLogs []string
	}{
		{
			name:     "working encoder",
			ffmpeg:   func(t *testing.T) string { return fakeFFmpeg(t, true) },
			wantOK:   true,
			wantLogs: []string{"SUCCESS ffmpeg: ffmpeg version 7.1-test", "INFO   V....D libx264", "SUCCESS libx264 works"},
		},
		{
			name:     "libx264 missing",
			ffmpeg:   func(t *testing.T) string { return fakeFFmpeg(t, false) },
			wantOK:   false,
			wantLogs: []string{"SUCCESS ffmpeg:", "ERROR libx264 is not among"},
		},
		{
			name:     "ffmpeg missing",
			ffmpeg:   func(t *testing.T) string { return filepath.Join(t.TempDir(), "absent") },
			wantOK:   false,
			wantLogs: []string{"ERROR ffmpeg not found"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			cfg.FFmpegPath = tt.ffmpeg(t)
			log := &recLogger{}

			assert.Equal(t, tt.wantOK, RunCheck(&cfg, log))
			for _, want := range tt.wantLogs {
				assert.True(t, log.has(want), "missing log line %q in %v", want, log.lines)
			}
			// Host info is reported regardless of the encoder result.
			assert.True(t, log.has("INFO CPU:") || log.has("WARN Could not read CPU"), log.lines)
		})
	}
}

func TestRunCheck_WarnsOnOversubscribedWorkers(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.FFmpegPath = fakeFFmpeg(t, true)
	cfg.Workers = 1 << 16
	log := &recLogger{}

	RunCheck(&cfg, log)
	if log.has("WARN Could not read CPU") {
		t.Skip("CPU count unavailable on this host")
	}
	assert.True(t, log.has("WARN Workers (65536) exceed logical cores"), log.lines)
}
