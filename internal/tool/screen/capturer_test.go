package screen

import (
	"context"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cyclone1070/devgate/internal/config"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires POSIX utilities")
	}
}

func writePNG(t *testing.T, w, h int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "source.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, solid(w, h)))
	return path
}

func TestCommandCapturerUnavailable(t *testing.T) {
	c := NewCommandCapturer(config.DefaultConfig())

	_, err := c.ListWindows(context.Background())
	assert.True(t, errors.Is(err, ErrUnavailable))
	_, err = c.CaptureDisplay(context.Background(), 0)
	assert.True(t, errors.Is(err, ErrUnavailable))
	_, err = c.CaptureWindow(context.Background(), "x")
	assert.True(t, errors.Is(err, ErrUnavailable))
}

func TestCommandCapturerListWindows(t *testing.T) {
	skipOnWindows(t)
	cfg := config.DefaultConfig()
	cfg.Tools.ListWindowsCommand = []string{"printf", `Editor\n\nTerminal\r\n`}
	c := NewCommandCapturer(cfg)

	titles, err := c.ListWindows(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Editor", "Terminal"}, titles)
}

func TestCommandCapturerCaptureDisplay(t *testing.T) {
	skipOnWindows(t)
	src := writePNG(t, 12, 8)
	cfg := config.DefaultConfig()
	cfg.Tools.ScreenCaptureCommand = []string{"cp", src, "{file}"}
	c := NewCommandCapturer(cfg)
	c.tempDir = t.TempDir()

	img, err := c.CaptureDisplay(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 12, 8), img.Bounds())

	entries, err := os.ReadDir(c.tempDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "capture directory must be cleaned up")
}

func TestCommandCapturerSubstitutesWindow(t *testing.T) {
	skipOnWindows(t)
	dir := t.TempDir()
	src := writePNG(t, 3, 3)
	require.NoError(t, os.Rename(src, filepath.Join(dir, "My App.png")))

	cfg := config.DefaultConfig()
	cfg.Tools.WindowCaptureCommand = []string{"cp", filepath.Join(dir, "{window}.png"), "{file}"}
	c := NewCommandCapturer(cfg)

	img, err := c.CaptureWindow(context.Background(), "My App")
	require.NoError(t, err)
	assert.Equal(t, 3, img.Bounds().Dx())
}

func TestCommandCapturerFailures(t *testing.T) {
	skipOnWindows(t)

	t.Run("command fails", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Tools.ScreenCaptureCommand = []string{"sh", "-c", "echo no display >&2; exit 1", "{file}"}
		c := NewCommandCapturer(cfg)

		_, err := c.CaptureDisplay(context.Background(), 0)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no display")
	})

	t.Run("no image written", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Tools.ScreenCaptureCommand = []string{"true", "{file}"}
		c := NewCommandCapturer(cfg)

		_, err := c.CaptureDisplay(context.Background(), 0)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "produced no image")
	})
}

func TestExpand(t *testing.T) {
	got := expand(
		[]string{"shot", "--display={display}", "-o", "{file}"},
		map[string]string{"{display}": "2", "{file}": "/tmp/x.png"},
	)
	assert.Equal(t, []string{"shot", "--display=2", "-o", "/tmp/x.png"}, got)
}
