package term

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/h264ify/internal/config"
)

func TestConfigure(t *testing.T) {
	saved := color.NoColor
	t.Cleanup(func() { color.NoColor = saved })

	Configure(config.ColorAlways)
	assert.True(t, Enabled())
	assert.Equal(t, "\x1b[92;1mok\x1b[0m", Green.Sprint("ok"))

	Configure(config.ColorNever)
	assert.False(t, Enabled())
	assert.Equal(t, "ok", Green.Sprint("ok"))
}

func TestConfigure_AutoRespectsNoColor(t *testing.T) {
	saved := color.NoColor
	t.Cleanup(func() { color.NoColor = saved })

	t.Setenv("NO_COLOR", "1")
	Configure(config.ColorAuto)
	assert.False(t, Enabled())
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, IsTerminal(nil))

	f, err := os.Create(filepath.Join(t.TempDir(), "plain"))
	require.NoError(t, err)
	defer f.Close()
	assert.False(t, IsTerminal(f), "regular file is not a TTY")
}
