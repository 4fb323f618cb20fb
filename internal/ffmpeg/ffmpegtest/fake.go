// Package ffmpegtest provides a stand-in ffmpeg executable for tests.
package ffmpegtest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// FailMarker in a source file name makes the fake encoder exit with status 1.
const FailMarker = "BROKEN"

// script writes its argument vector, one per line, to the last argument
// (the output path) and exits 0, unless any argument contains FailMarker.
// SLEEP_<d> (one digit) in an argument delays the exit by d tenths of a second.
const script = `#!/bin/sh
for last; do :; done
case "$*" in
  *` + FailMarker + `*) echo "Conversion failed!" >&2; exit 1 ;;
esac
case "$*" in
  *SLEEP_*) n=$(echo "$*" | sed -n 's/.*SLEEP_\([0-9]*\).*/\1/p'); sleep "0.$n" ;;
esac
printf '%s\n' "$@" > "$last"
exit 0
`

// Install writes the fake encoder into a temp dir and returns its path.
// Tests are skipped where /bin/sh is unavailable.
func Install(tb testing.TB) string {
	tb.Helper()
	if runtime.GOOS == "windows" {
		tb.Skip("fake ffmpeg needs /bin/sh")
	}
	path := filepath.Join(tb.TempDir(), "ffmpeg")
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		tb.Fatalf("write fake ffmpeg: %v", err)
	}
	return path
}
