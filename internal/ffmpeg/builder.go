package ffmpeg

import (
	"strconv"
	"strings"

	"github.com/backmassage/h264ify/internal/config"
	"github.com/backmassage/h264ify/internal/job"
)

// Fixed encoder settings. Only the tune preset is user-selectable.
const (
	VideoEncoder = "libx264"
	CRF          = 18
	BaseTune     = config.TuneAnimation
	PixelFilter  = "format=yuv420p"
)

// Build constructs the complete ffmpeg argument slice for j, program name
// first.
//
// The fixed "-tune animation" is always emitted. An explicit tune from cfg
// is appended after the stream options, so ffmpeg receives two -tune flags
// and the later one takes effect.
func Build(cfg *config.Config, j job.Job) []string {
	args := make([]string, 0, 24)

	args = append(args, cfg.FFmpegPath)
	if cfg.Overwrite {
		args = append(args, "-y")
	}

	// --- Input and maps ---
	args = append(args, "-i", j.InputPath(), "-map", "0")

	// --- Video ---
	args = append(args,
		"-c:v", VideoEncoder,
		"-crf", strconv.Itoa(CRF),
		"-tune", string(BaseTune),
		"-vf", PixelFilter,
	)

	// --- Audio and subtitles pass through ---
	args = append(args, "-c:a", "copy", "-c:s", "copy")

	if cfg.Tune != config.TuneNone {
		args = append(args, "-tune", string(cfg.Tune))
	}

	// --- Output ---
	args = append(args, j.OutputPath())
	return args
}

// CommandLine renders args for display, quoting any argument that would
// not survive a copy-paste into a POSIX shell.
func CommandLine(args []string) string {
	parts := make([]string, len(args))
	for i, a := range args {
		if a == "" || strings.ContainsAny(a, " \t\n'\"\\$`!*?[](){};&|<>#~") {
			parts[i] = strconv.Quote(a)
		} else {
			parts[i] = a
		}
	}
	return strings.Join(parts, " ")
}
