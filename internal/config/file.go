package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// FileConfig is the optional YAML defaults file. Pointer fields distinguish
// "absent" from a zero value; absent keys leave the built-in default alone.
//
//	format: mkv
//	tune: film
//	workers: 1
//	ffmpeg: /usr/local/bin/ffmpeg
//	overwrite: false
//	color: auto
//	log: /var/log/h264ify.log
type FileConfig struct {
	Format    *string `yaml:"format"`
	Tune      *string `yaml:"tune"`
	Workers   *int    `yaml:"workers"`
	FFmpeg    *string `yaml:"ffmpeg"`
	Overwrite *bool   `yaml:"overwrite"`
	Color     *string `yaml:"color"`
	Log       *string `yaml:"log"`
}

// LoadFile reads a defaults file. Unknown keys are rejected so typos do not
// silently fall back to defaults. An empty file is valid.
func LoadFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var fc FileConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}
	return &fc, nil
}

// apply copies every present key into cfg unless one of the flags that
// controls the same setting was passed explicitly (set holds flag names).
func (fc *FileConfig) apply(cfg *Config, set map[string]bool) error {
	explicit := func(names ...string) bool {
		for _, n := range names {
			if set[n] {
				return true
			}
		}
		return false
	}

	if fc.Format != nil && !explicit("f") {
		f, err := ParseFormat(*fc.Format)
		if err != nil {
			return fmt.Errorf("config file: %w", err)
		}
		cfg.Format = f
	}
	if fc.Tune != nil && !explicit("t") {
		if *fc.Tune == "" {
			cfg.Tune = TuneNone
		} else {
			t, err := ParseTune(*fc.Tune)
			if err != nil {
				return fmt.Errorf("config file: %w", err)
			}
			cfg.Tune = t
		}
	}
	if fc.Workers != nil && !explicit("w", "workers") {
		cfg.Workers = *fc.Workers
	}
	if fc.FFmpeg != nil && !explicit("ffmpeg") {
		cfg.FFmpegPath = *fc.FFmpeg
	}
	if fc.Overwrite != nil && !explicit("overwrite") {
		cfg.Overwrite = *fc.Overwrite
	}
	if fc.Color != nil && !explicit("color", "no-color") {
		cfg.ColorMode = ColorMode(*fc.Color)
	}
	if fc.Log != nil && !explicit("l", "log") {
		cfg.LogFile = *fc.Log
	}
	return nil
}
