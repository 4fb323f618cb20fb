// Package check provides system diagnostics (--check mode) and pre-run
// dependency validation (CheckDeps) for ffmpeg and libx264.
package check

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"

	"github.com/backmassage/h264ify/internal/config"
	"github.com/backmassage/h264ify/internal/display"
)

// ErrFFmpegNotFound is returned by CheckDeps when the configured encoder
// binary cannot be resolved.
var ErrFFmpegNotFound = errors.New("ffmpeg not found")

// probeTimeout bounds every ffmpeg invocation made by the diagnostics.
const probeTimeout = 30 * time.Second

// Logger is the minimal logging interface needed by RunCheck.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(string, ...interface{})
}

// CheckDeps verifies that cfg.FFmpegPath resolves to an executable.
func CheckDeps(cfg *config.Config) error {
	if _, err := exec.LookPath(cfg.FFmpegPath); err != nil {
		return fmt.Errorf("%w (--ffmpeg %s)", ErrFFmpegNotFound, cfg.FFmpegPath)
	}
	return nil
}

// RunCheck runs the --check flow: ffmpeg version, libx264 availability, a
// short libx264 test encode and the host resources. It returns false when
// ffmpeg or libx264 is unusable; host information is informational only.
func RunCheck(cfg *config.Config, log Logger) bool {
	log.Info("=== System Check ===")

	ok := checkFFmpeg(cfg.FFmpegPath, log) &&
		checkEncoderListed(cfg.FFmpegPath, log) &&
		checkTestEncode(cfg.FFmpegPath, log)

	checkHost(cfg.Workers, log)
	return ok
}

func checkFFmpeg(ffmpeg string, log Logger) bool {
	path, err := exec.LookPath(ffmpeg)
	if err != nil {
		log.Error("ffmpeg not found: %s", ffmpeg)
		return false
	}
	log.Debug("ffmpeg resolved to %s", path)

	out, err := output(ffmpeg, "-version")
	if err != nil {
		log.Warn("ffmpeg found but -version failed: %v", err)
		return false
	}
	firstLine := strings.TrimSpace(out)
	if idx := strings.Index(firstLine, "\n"); idx > 0 {
		firstLine = firstLine[:idx]
	}
	log.Success("ffmpeg: %s", firstLine)
	return true
}

func checkEncoderListed(ffmpeg string, log Logger) bool {
	out, err := output(ffmpeg, "-hide_banner", "-encoders")
	if err != nil {
		log.Warn("Could not list encoders: %v", err)
		return false
	}
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) >= 2 && fields[1] == "libx264" {
			log.Info("  %s", strings.TrimSpace(line))
			return true
		}
	}
	log.Error("libx264 is not among ffmpeg's encoders")
	return false
}

func checkTestEncode(ffmpeg string, log Logger) bool {
	log.Info("Testing libx264...")
	if runSilent(ffmpeg, testEncodeArgs()...) {
		log.Success("libx264 works")
		return true
	}
	log.Error("libx264 test encode failed")
	return false
}

// checkHost logs core count and memory, and warns when more workers are
// configured than there are logical cores.
func checkHost(workers int, log Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	logical, err := cpu.CountsWithContext(ctx, true)
	if err != nil {
		log.Warn("Could not read CPU count: %v", err)
	} else {
		physical, _ := cpu.CountsWithContext(ctx, false)
		log.Info("CPU: %d logical / %d physical cores", logical, physical)
		if workers > logical {
			log.Warn("Workers (%d) exceed logical cores (%d)", workers, logical)
		}
	}

	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		log.Warn("Could not read memory: %v", err)
		return
	}
	log.Info("Memory: %s available of %s",
		display.FormatBytes(int64(vm.Available)), display.FormatBytes(int64(vm.Total)))
}

// --- internal helpers ---

func testEncodeArgs() []string {
	return []string{
		"-hide_banner", "-nostdin", "-loglevel", "error",
		"-f", "lavfi", "-i", "color=black:s=256x256:d=0.1",
		"-c:v", "libx264", "-vf", "format=yuv420p",
		"-f", "null", "-",
	}
}

func output(name string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()
	out, err := exec.CommandContext(ctx, name, args...).Output()
	return string(out), err
}

// runSilent runs a command and returns true if it exits with status 0.
// Both stdout and stderr are discarded.
func runSilent(name string, args ...string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()
	return exec.CommandContext(ctx, name, args...).Run() == nil
}
