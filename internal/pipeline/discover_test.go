package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/h264ify/internal/config"
	"github.com/backmassage/h264ify/internal/job"
)

func TestResolve_DirectoryFiltersExtension(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "b.mp4")
	touch(t, dir, "a.mp4")
	touch(t, dir, "c.mkv")
	touch(t, dir, "notes.txt")
	touch(t, dir, "D.MP4")

	jobs, err := Resolve(dir, config.FormatMP4)
	require.NoError(t, err)

	assert.Equal(t, []string{"D.MP4", "a.mp4", "b.mp4"}, names(jobs))
	for i, j := range jobs {
		assert.Equal(t, i, j.Index)
		assert.Equal(t, dir, j.Dir)
	}
}

func TestResolve_DirectoryCounts(t *testing.T) {
	tests := []struct {
		name      string
		matching  int
		other     int
		wantError error
	}{
		{"only matching", 3, 0, nil},
		{"mixed", 2, 4, nil},
		{"none matching", 0, 3, ErrNoMatchingFiles},
		{"empty", 0, 0, ErrNoMatchingFiles},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for i := 0; i < tt.matching; i++ {
				touch(t, dir, "m"+string(rune('a'+i))+".mkv")
			}
			for i := 0; i < tt.other; i++ {
				touch(t, dir, string(rune('a'+i))+".mp4")
			}

			jobs, err := Resolve(dir, config.FormatMKV)
			if tt.wantError != nil {
				assert.ErrorIs(t, err, tt.wantError)
				assert.Empty(t, jobs)
				return
			}
			require.NoError(t, err)
			assert.Len(t, jobs, tt.matching)
		})
	}
}

func TestResolve_DirectoryIsNotRecursive(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "top.mp4")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "Season 01"), 0o755))
	touch(t, filepath.Join(dir, "Season 01"), "nested.mp4")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "folder.mp4"), 0o755))

	jobs, err := Resolve(dir, config.FormatMP4)
	require.NoError(t, err)
	assert.Equal(t, []string{"top.mp4"}, names(jobs))
}

func TestResolve_FollowsSymlinks(t *testing.T) {
	dir := t.TempDir()
	other := t.TempDir()
	touch(t, other, "real.mp4")
	if err := os.Symlink(filepath.Join(other, "real.mp4"), filepath.Join(dir, "link.mp4")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
	require.NoError(t, os.Symlink(filepath.Join(other, "missing.mp4"), filepath.Join(dir, "dangling.mp4")))

	jobs, err := Resolve(dir, config.FormatMP4)
	require.NoError(t, err)
	assert.Equal(t, []string{"link.mp4"}, names(jobs))
}

func TestResolve_File(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "clip.mp4")
	touch(t, dir, "Movie.MKV")

	t.Run("matching extension", func(t *testing.T) {
		jobs, err := Resolve(filepath.Join(dir, "clip.mp4"), config.FormatMP4)
		require.NoError(t, err)
		assert.Equal(t, []job.Job{job.New(0, dir, "clip.mp4")}, jobs)
	})

	t.Run("case-insensitive extension", func(t *testing.T) {
		jobs, err := Resolve(filepath.Join(dir, "Movie.MKV"), config.FormatMKV)
		require.NoError(t, err)
		assert.Len(t, jobs, 1)
	})

	t.Run("wrong extension", func(t *testing.T) {
		jobs, err := Resolve(filepath.Join(dir, "clip.mp4"), config.FormatMKV)
		assert.ErrorIs(t, err, ErrWrongFormat)
		assert.Empty(t, jobs)
		assert.Contains(t, err.Error(), "clip.mp4 is not of type mkv")
	})
}

func TestResolve_RelativeFile(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "clip.mp4")
	t.Chdir(dir)

	jobs, err := Resolve("clip.mp4", config.FormatMP4)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.True(t, filepath.IsAbs(jobs[0].Dir))
	assert.Equal(t, "clip.mp4", jobs[0].Name)
}

func TestResolve_InvalidPath(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")
	_, err := Resolve(missing, config.FormatMP4)
	assert.ErrorIs(t, err, ErrInvalidPath)
	assert.Contains(t, err.Error(), "(-i "+missing+")")
}

func TestResolve_Idempotent(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"x.mp4", "y.mp4", "z.mkv"} {
		touch(t, dir, n)
	}
	first, err := Resolve(dir, config.FormatMP4)
	require.NoError(t, err)
	second, err := Resolve(dir, config.FormatMP4)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

// --- Helpers ---

func touch(t *testing.T, dir, name string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte{}, 0o644); err != nil {
		t.Fatalf("touch %s: %v", path, err)
	}
}

func names(jobs []job.Job) []string {
	out := make([]string, len(jobs))
	for i, j := range jobs {
		out[i] = j.Name
	}
	return out
}
