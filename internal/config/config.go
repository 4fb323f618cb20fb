// Package config holds runtime configuration: defaults, CLI flag parsing, the
// optional YAML defaults file, and validation. A Config is built once at
// startup and treated as read-only by every other package.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for invalid option values. All are usage errors and are
// detected before any file is touched.
var (
	ErrInvalidFormat = errors.New("invalid format")
	ErrInvalidTune   = errors.New("invalid tune")
	ErrMissingTarget = errors.New("missing input path (-i)")
)

// --- Enum types for validated string fields ---

// Format is the container extension of the files to convert.
type Format string

const (
	FormatMP4 Format = "mp4" // Default.
	FormatMKV Format = "mkv"
)

// Formats lists the accepted formats in help-text order.
var Formats = []Format{FormatMP4, FormatMKV}

// Tune is an x264 tune preset.
type Tune string

const (
	TuneNone        Tune = ""
	TuneFilm        Tune = "film"
	TuneAnimation   Tune = "animation"
	TuneGrain       Tune = "grain"
	TuneStillImage  Tune = "stillimage"
	TuneFastDecode  Tune = "fastdecode"
	TuneZeroLatency Tune = "zerolatency"
)

// tuneDescriptions is the tune glossary, in the order it is printed.
var tuneDescriptions = []struct {
	tune Tune
	desc string
}{
	{TuneFilm, "use for high quality movie content; lowers deblocking"},
	{TuneAnimation, "good for cartoons; uses higher deblocking and more reference frames"},
	{TuneGrain, "preserves the grain structure in old, grainy film material"},
	{TuneStillImage, "good for slideshow-like content"},
	{TuneFastDecode, "allows faster decoding by disabling certain filters"},
	{TuneZeroLatency, "good for fast encoding and low-latency streaming"},
}

// TuneGlossary returns one "<tune> – <description>" line per preset, each
// prefixed with indent.
func TuneGlossary(indent string) string {
	var b strings.Builder
	for i, d := range tuneDescriptions {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s%s – %s", indent, d.tune, d.desc)
	}
	return b.String()
}

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Config holds all runtime settings. It is populated by [DefaultConfig],
// then by [ParseFlags] (which also merges an optional YAML file), and is
// passed by pointer but never mutated after [Config.Validate].
type Config struct {
	// Input.
	Target string // -i: file or directory.
	Format Format // -f: default "mp4".
	Tune   Tune   // -t: optional; appended after the fixed animation tune.

	// Execution.
	Workers    int    // -w: concurrency limit; default 1 (strictly sequential).
	FFmpegPath string // Default: "ffmpeg", resolved on PATH.
	Overwrite  bool   // Pass -y so existing outputs are replaced.
	DryRun     bool   // Print commands instead of running them.

	// Display and logging.
	Verbose   bool
	ColorMode ColorMode // Default: "auto".
	LogFile   string    // Optional log file path.
	CheckOnly bool      // Run --check diagnostics and exit.

	ConfigFile  string // Optional YAML defaults file.
	ShowVersion bool
}

// DefaultConfig returns a Config with all defaults applied. Used as the base
// before [ParseFlags] applies the defaults file and CLI overrides.
func DefaultConfig() Config {
	return Config{
		Format:     FormatMP4,
		Tune:       TuneNone,
		Workers:    1,
		FFmpegPath: "ffmpeg",
		ColorMode:  ColorAuto,
	}
}

// ParseFormat validates s as a container format. Matching is exact: "mkv" is
// accepted, "MKV" is not. Only file-name extensions are compared
// case-insensitively.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w (-f %s)", ErrInvalidFormat, s)
}

// ParseTune validates s as a tune preset. The returned error carries the
// full glossary so it can be printed as-is.
func ParseTune(s string) (Tune, error) {
	for _, d := range tuneDescriptions {
		if string(d.tune) == s {
			return d.tune, nil
		}
	}
	return "", &TuneError{Value: s}
}

// TuneError reports an unknown tune value. Its message includes every
// accepted preset with its description.
type TuneError struct {
	Value string
}

func (e *TuneError) Error() string {
	return fmt.Sprintf("%v (-t %s)\nAvailable values are:\n%s", ErrInvalidTune, e.Value, TuneGlossary(""))
}

// Unwrap lets errors.Is match ErrInvalidTune.
func (e *TuneError) Unwrap() error { return ErrInvalidTune }

// Validate checks that enum fields hold valid values and that a target was
// given. In CheckOnly mode the target is not required.
func (c *Config) Validate() error {
	if _, err := ParseFormat(string(c.Format)); err != nil {
		return err
	}
	if c.Tune != TuneNone {
		if _, err := ParseTune(string(c.Tune)); err != nil {
			return err
		}
	}

	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return fmt.Errorf("invalid color mode %q (use 'auto', 'always' or 'never')", c.ColorMode)
	}

	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1 (got %d)", c.Workers)
	}
	if strings.TrimSpace(c.FFmpegPath) == "" {
		return errors.New("ffmpeg path must not be empty")
	}

	if c.CheckOnly {
		return nil
	}
	if c.Target == "" {
		return ErrMissingTarget
	}
	return nil
}

// Extension returns the format as a lowercase file extension with leading dot.
func (f Format) Extension() string {
	return "." + strings.ToLower(string(f))
}
