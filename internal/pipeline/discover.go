package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/backmassage/h264ify/internal/config"
	"github.com/backmassage/h264ify/internal/job"
)

// Fatal input errors. All are detected before any job is dispatched.
var (
	ErrInvalidPath     = errors.New("invalid directory/file path")
	ErrNoMatchingFiles = errors.New("no matching files")
	ErrWrongFormat     = errors.New("wrong file format")
)

// Resolve interprets target as a directory or a single file and returns the
// jobs to run, in submission order.
//
// For a directory only direct children are considered; regular files
// (symlinks followed) whose name ends in ".<format>", compared
// case-insensitively, become jobs in name order. For a file, its own name
// must carry the extension.
func Resolve(target string, format config.Format) ([]job.Job, error) {
	abs, err := filepath.Abs(target)
	if err != nil {
		return nil, fmt.Errorf("%w (-i %s)", ErrInvalidPath, target)
	}
	fi, err := os.Stat(abs)
	if err != nil || !(fi.IsDir() || fi.Mode().IsRegular()) {
		return nil, fmt.Errorf("%w (-i %s)", ErrInvalidPath, target)
	}

	ext := format.Extension()

	if fi.IsDir() {
		names, err := matchingFiles(abs, ext)
		if err != nil {
			return nil, err
		}
		if len(names) == 0 {
			return nil, fmt.Errorf("couldn't find a %s file in %s: %w", format, abs, ErrNoMatchingFiles)
		}
		jobs := make([]job.Job, len(names))
		for i, name := range names {
			jobs[i] = job.New(i, abs, name)
		}
		return jobs, nil
	}

	name := filepath.Base(abs)
	if !hasExt(name, ext) {
		return nil, fmt.Errorf("%s is not of type %s: %w", name, format, ErrWrongFormat)
	}
	return []job.Job{job.New(0, filepath.Dir(abs), name)}, nil
}

// matchingFiles lists the direct children of dir that are regular files
// with extension ext. os.ReadDir sorts by name, which keeps the order
// stable between runs.
func matchingFiles(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if !hasExt(e.Name(), ext) {
			continue
		}
		if !e.Type().IsRegular() {
			fi, err := os.Stat(filepath.Join(dir, e.Name()))
			if err != nil || !fi.Mode().IsRegular() {
				continue
			}
		}
		names = append(names, e.Name())
	}
	return names, nil
}

func hasExt(name, ext string) bool {
	return strings.HasSuffix(strings.ToLower(name), ext)
}
