package pipeline

import (
	"context"
	"io"
	"strings"

	"github.com/backmassage/h264ify/internal/check"
	"github.com/backmassage/h264ify/internal/config"
	"github.com/backmassage/h264ify/internal/display"
	"github.com/backmassage/h264ify/internal/ffmpeg"
	"github.com/backmassage/h264ify/internal/job"
	"github.com/backmassage/h264ify/internal/logging"
)

// Prepare resolves cfg.Target into jobs and, unless this is a dry run,
// verifies the encoder can be found. Input errors take precedence over a
// missing encoder. A non-nil error means nothing may be dispatched.
func Prepare(cfg *config.Config) ([]job.Job, error) {
	jobs, err := Resolve(cfg.Target, cfg.Format)
	if err != nil {
		return nil, err
	}
	if !cfg.DryRun {
		if err := check.CheckDeps(cfg); err != nil {
			return nil, err
		}
	}
	return jobs, nil
}

// Run dispatches jobs and writes result lines to out. Every job is run and
// reported; failures are counted in the returned stats.
func Run(ctx context.Context, cfg *config.Config, jobs []job.Job, log *logging.Logger, out io.Writer, clock *Clock) RunStats {
	if len(jobs) > 0 {
		logBatchHeader(cfg, log, clock, len(jobs), jobs[0].Dir)
	}

	var conv Converter
	if cfg.DryRun {
		conv = ffmpeg.NewDryRunner(cfg, log.Info)
	} else {
		conv = ffmpeg.NewExecutor(cfg, log)
	}

	rep := display.NewReporter(out, log)
	stats := NewDispatcher(conv, rep, clock, cfg.Workers).Run(ctx, jobs)

	logSummary(log, &stats)
	return stats
}

// --- Logging helpers ---

// logBatchHeader describes the run in the log file and, in verbose mode, on
// the console. Only the dry-run warning is always shown.
func logBatchHeader(cfg *config.Config, log *logging.Logger, clock *Clock, n int, dir string) {
	tune := string(ffmpeg.BaseTune)
	if cfg.Tune != config.TuneNone {
		tune += " then " + string(cfg.Tune)
	}

	log.Debug("Found %d %s file(s) in %s", n, cfg.Format, dir)
	log.Debug("Video: %s CRF %d, tune %s, %s", ffmpeg.VideoEncoder, ffmpeg.CRF, tune, ffmpeg.PixelFilter)
	log.Debug("Audio/subtitles: copy")
	log.Debug("Workers: %d", cfg.Workers)

	log.Record("run started",
		"started", clock.Start().Format("2006-01-02T15:04:05.000Z07:00"),
		"dir", dir,
		"files", n,
		"format", string(cfg.Format),
		"tune", tune,
		"workers", cfg.Workers,
	)

	if cfg.DryRun {
		log.Warn("DRY RUN: no files will be written")
	}
}

// logSummary writes the aggregate counts to the log file only; the console
// ends with the total elapsed line.
func logSummary(log *logging.Logger, stats *RunStats) {
	kv := []interface{}{
		"total", stats.Total,
		"converted", stats.Converted,
		"failed", stats.Failed,
		"output", display.FormatBytes(stats.OutputBytes),
	}
	if len(stats.FailedFiles) > 0 {
		kv = append(kv, "failed_files", strings.Join(stats.FailedFiles, ", "))
	}
	log.Record("summary", kv...)
}
