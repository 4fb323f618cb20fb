package config

// This file implements CLI flag parsing and help text.
// Flags are grouped into input, execution, display, and utility.
// Negated flags (e.g. --no-color) are applied after Parse so Config defaults hold unless set.

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrUsage is returned when the command line cannot be interpreted at all:
// no arguments, an unknown flag, a missing flag value, or stray positional
// arguments. Callers print the usage text.
var ErrUsage = errors.New("usage")

// ParseFlags parses args (without the program name) into cfg. When
// --config is given, the YAML file fills every setting that was not passed
// explicitly on the command line.
//
// It returns flag.ErrHelp for -h/--help, ErrUsage for malformed command
// lines, and the value error (format, tune, workers) when an option value is
// rejected.
func ParseFlags(cfg *Config, args []string) error {
	if len(args) == 0 {
		return ErrUsage
	}

	fs := flag.NewFlagSet("h264ify", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	// Set errors are reported by flag with %v, which drops the error chain;
	// the adapters stash the original error here instead.
	var valueErr error
	var negated negatedFlags

	defineInputFlags(fs, cfg, &valueErr)
	defineExecutionFlags(fs, cfg, &valueErr)
	defineDisplayFlags(fs, cfg, &negated)
	defineUtilityFlags(fs, cfg, &negated)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return flag.ErrHelp
		}
		if valueErr != nil {
			return valueErr
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if negated.showHelp {
		return flag.ErrHelp
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("%w: unexpected argument %q", ErrUsage, fs.Arg(0))
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if cfg.ConfigFile != "" {
		fc, err := LoadFile(cfg.ConfigFile)
		if err != nil {
			return err
		}
		if err := fc.apply(cfg, set); err != nil {
			return err
		}
	}

	applyNegatedFlags(cfg, &negated)
	return nil
}

// negatedFlags holds boolean flags that are applied after Parse.
type negatedFlags struct {
	forceColor bool
	noColor    bool
	showHelp   bool
}

// defineInputFlags registers -i, -f and -t.
func defineInputFlags(fs *flag.FlagSet, cfg *Config, valueErr *error) {
	fs.StringVar(&cfg.Target, "i", "", "Directory or file to convert")
	fs.Var(&formatValue{p: &cfg.Format, err: valueErr}, "f", "Video file format: mp4 | mkv")
	fs.Var(&tuneValue{p: &cfg.Tune, err: valueErr}, "t", "x264 tune preset")
}

// defineExecutionFlags registers -w/--workers, --ffmpeg, --overwrite, -n/--dry-run, --config.
func defineExecutionFlags(fs *flag.FlagSet, cfg *Config, valueErr *error) {
	fs.Var(&workersValue{p: &cfg.Workers, err: valueErr}, "workers", "Concurrent conversions")
	fs.Var(&workersValue{p: &cfg.Workers, err: valueErr}, "w", "Same as --workers")
	fs.StringVar(&cfg.FFmpegPath, "ffmpeg", cfg.FFmpegPath, "ffmpeg executable")
	fs.BoolVar(&cfg.Overwrite, "overwrite", false, "Replace existing h264_ outputs")
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "Print commands; do not convert")
	fs.BoolVar(&cfg.DryRun, "n", false, "Same as --dry-run")
	fs.StringVar(&cfg.ConfigFile, "config", "", "YAML defaults file")
}

// defineDisplayFlags registers --color, --no-color, verbose, --log.
func defineDisplayFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.BoolVar(&n.forceColor, "color", false, "Force colored output")
	fs.BoolVar(&n.noColor, "no-color", false, "Disable colored output")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Verbose output")
	fs.BoolVar(&cfg.Verbose, "v", false, "Same as --verbose")
	fs.StringVar(&cfg.LogFile, "log", "", "Append logs to file")
	fs.StringVar(&cfg.LogFile, "l", "", "Same as --log")
}

// defineUtilityFlags registers --check, --version and --help.
func defineUtilityFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.BoolVar(&cfg.CheckOnly, "check", false, "Run system diagnostics and exit")
	fs.BoolVar(&cfg.CheckOnly, "c", false, "Same as --check")
	fs.BoolVar(&cfg.ShowVersion, "version", false, "Print version and exit")
	fs.BoolVar(&cfg.ShowVersion, "V", false, "Same as --version")
	fs.BoolVar(&n.showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&n.showHelp, "h", false, "Same as --help")
}

// applyNegatedFlags copies negated flag values into cfg. Command-line color
// flags win over the defaults file.
func applyNegatedFlags(cfg *Config, n *negatedFlags) {
	if n.noColor {
		cfg.ColorMode = ColorNever
	} else if n.forceColor {
		cfg.ColorMode = ColorAlways
	}
}

// PrintUsage writes the help text to w. Column-aligned for readability.
func PrintUsage(w io.Writer, version string) {
	const col1 = 26 // width of "  -x, --long-name <arg>  "
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "h264ify v" + version + " - batch H.264 converter"},
		{"", ""},
		{"  h264ify -i <dir_path|file_path> [-f format] [-t tune] [OPTIONS]", ""},
		{"", ""},
		{"Input", ""},
		{"  -i <path>", "Directory (direct children only) or single file"},
		{"  -f <mp4|mkv>", "Video file format (default: mp4)"},
		{"  -t <tune>", "x264 tune preset (default: none):"},
		{"", TuneGlossary("      ")},
		{"", ""},
		{"Execution", ""},
		{"  -w, --workers <n>", "Concurrent conversions (default: 1). With n > 1,"},
		{"", "                          results are reported in completion order"},
		{"  --ffmpeg <path>", "ffmpeg executable (default: ffmpeg on PATH)"},
		{"  --overwrite", "Replace existing h264_ output files"},
		{"  -n, --dry-run", "Print each ffmpeg command; do not convert"},
		{"  --config <file>", "YAML defaults (flags take precedence)"},
		{"", ""},
		{"Display", ""},
		{"  --color", "Force colored output"},
		{"  --no-color", "Disable colored output"},
		{"  -v, --verbose", "Verbose output"},
		{"  -l, --log <path>", "Append logs to file"},
		{"", ""},
		{"Utility", ""},
		{"  -c, --check", "System diagnostics (ffmpeg, libx264, host)"},
		{"  -V, --version", "Print version and exit"},
		{"  -h, --help", "Show this help and exit"},
	}

	for _, l := range lines {
		if l.flags == "" && l.desc == "" {
			fmt.Fprintln(w)
			continue
		}
		if l.desc == "" {
			fmt.Fprintln(w, l.flags)
			continue
		}
		if l.flags == "" {
			fmt.Fprintln(w, l.desc)
			continue
		}
		padding := col1 - len(l.flags)
		if padding < 1 {
			padding = 1
		}
		fmt.Fprintf(w, "%s%*s%s\n", l.flags, padding, "", l.desc)
	}
}

// flag.Value adapters so we can use enum types (Format, Tune) with flag.Var.

type formatValue struct {
	p   *Format
	err *error
}

func (f *formatValue) String() string {
	if f.p == nil {
		return ""
	}
	return string(*f.p)
}

func (f *formatValue) Set(s string) error {
	v, err := ParseFormat(s)
	if err != nil {
		*f.err = err
		return err
	}
	*f.p = v
	return nil
}

type tuneValue struct {
	p   *Tune
	err *error
}

func (t *tuneValue) String() string {
	if t.p == nil {
		return ""
	}
	return string(*t.p)
}

func (t *tuneValue) Set(s string) error {
	v, err := ParseTune(s)
	if err != nil {
		*t.err = err
		return err
	}
	*t.p = v
	return nil
}

type workersValue struct {
	p   *int
	err *error
}

func (w *workersValue) String() string {
	if w.p == nil {
		return ""
	}
	return strconv.Itoa(*w.p)
}

func (w *workersValue) Set(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		*w.err = fmt.Errorf("workers must be a whole number >= 1 (got %q)", s)
		return *w.err
	}
	*w.p = n
	return nil
}
