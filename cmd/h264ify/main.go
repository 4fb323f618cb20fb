// Command h264ify converts every video of one container format in a
// directory (or a single file) to H.264 with ffmpeg, reporting per-file and
// total elapsed time.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/backmassage/h264ify/internal/check"
	"github.com/backmassage/h264ify/internal/config"
	"github.com/backmassage/h264ify/internal/display"
	"github.com/backmassage/h264ify/internal/logging"
	"github.com/backmassage/h264ify/internal/pipeline"
	"github.com/backmassage/h264ify/internal/term"
)

// version and commit are injected at build time via -ldflags.
var (
	version = "1.0.0"
	commit  = "unknown"
)

const (
	exitOK    = 0
	exitFatal = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	// The run clock starts before anything else so TOTAL covers discovery.
	clock := pipeline.NewClock()

	// Bootstrap: no logger yet, errors go straight to stderr.
	cfg := config.DefaultConfig()
	if err := config.ParseFlags(&cfg, args); err != nil {
		return usageExit(err, stdout, stderr)
	}
	if cfg.ShowVersion {
		fmt.Fprintf(stdout, "h264ify %s (%s)\n", version, commit)
		return exitOK
	}
	if err := cfg.Validate(); err != nil {
		return usageExit(err, stdout, stderr)
	}

	log, err := logging.NewLoggerTo(&cfg, stdout, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "h264ify: %v\n", err)
		return exitFatal
	}
	defer log.Close()
	log.Debug("h264ify v%s (%s), run %s", version, commit, log.RunID())

	if cfg.CheckOnly {
		printBanner(stdout)
		if !check.RunCheck(&cfg, log) {
			return exitFatal
		}
		return exitOK
	}

	// Input errors are reported before a missing encoder, and both before
	// anything else is printed.
	jobs, err := pipeline.Prepare(&cfg)
	if err != nil {
		log.Error("%v", err)
		return exitFatal
	}

	printBanner(stdout)
	stats := pipeline.Run(context.Background(), &cfg, jobs, log, stdout, clock)
	if stats.Failed > 0 {
		return exitFatal
	}
	return exitOK
}

// printBanner shows the banner on an interactive, colored stdout only.
func printBanner(w io.Writer) {
	f, ok := w.(*os.File)
	if ok && term.Enabled() && term.IsTerminal(f) {
		display.PrintBanner(w)
	}
}

// usageExit reports a command-line error and returns the exit code: 0 for
// help, 2 for everything else.
func usageExit(err error, stdout, stderr io.Writer) int {
	switch {
	case errors.Is(err, flag.ErrHelp):
		config.PrintUsage(stdout, version)
		return exitOK
	case errors.Is(err, config.ErrUsage), errors.Is(err, config.ErrMissingTarget):
		if err != config.ErrUsage {
			fmt.Fprintf(stderr, "h264ify: %v\n", err)
		}
		config.PrintUsage(stderr, version)
	default:
		fmt.Fprintf(stderr, "h264ify: %v\n", err)
	}
	return exitUsage
}
