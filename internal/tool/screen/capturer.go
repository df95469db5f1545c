package screen

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Cyclone1070/devgate/internal/config"
)

// ErrUnavailable is returned when no capture back-end is configured.
var ErrUnavailable = errors.New("screen capture is not configured on this machine")

// DisplayNotFoundError reports a display index outside the available range.
type DisplayNotFoundError struct {
	Display int
	Found   int
}

func (e *DisplayNotFoundError) Error() string {
	return fmt.Sprintf("%d was not an available monitor, %d found.", e.Display, e.Found)
}

// Capturer is the platform back-end behind the screen tools.
type Capturer interface {
	ListWindows(ctx context.Context) ([]string, error)
	CaptureDisplay(ctx context.Context, display int) (image.Image, error)
	CaptureWindow(ctx context.Context, title string) (image.Image, error)
}

// CommandCapturer drives external programs configured by the user. Each
// capture command writes an image file to the {file} placeholder; the list
// command prints one window title per line.
type CommandCapturer struct {
	displayCmd []string
	windowCmd  []string
	listCmd    []string
	tempDir    string
}

// NewCommandCapturer builds a capturer from the configured commands.
// Missing commands make the matching operation return ErrUnavailable.
func NewCommandCapturer(cfg *config.Config) *CommandCapturer {
	if cfg == nil {
		panic("cfg is required")
	}
	return &CommandCapturer{
		displayCmd: cfg.Tools.ScreenCaptureCommand,
		windowCmd:  cfg.Tools.WindowCaptureCommand,
		listCmd:    cfg.Tools.ListWindowsCommand,
	}
}

// ListWindows runs the list command and returns its non-empty lines.
func (c *CommandCapturer) ListWindows(ctx context.Context) ([]string, error) {
	if len(c.listCmd) == 0 {
		return nil, ErrUnavailable
	}
	out, err := run(ctx, c.listCmd)
	if err != nil {
		return nil, err
	}

	var titles []string
	for _, line := range strings.Split(string(out), "\n") {
		if line = strings.TrimRight(line, "\r"); strings.TrimSpace(line) != "" {
			titles = append(titles, line)
		}
	}
	return titles, nil
}

// CaptureDisplay captures the display with the given index.
func (c *CommandCapturer) CaptureDisplay(ctx context.Context, display int) (image.Image, error) {
	if len(c.displayCmd) == 0 {
		return nil, ErrUnavailable
	}
	return c.capture(ctx, c.displayCmd, map[string]string{"{display}": strconv.Itoa(display)})
}

// CaptureWindow captures the window with the given exact title.
func (c *CommandCapturer) CaptureWindow(ctx context.Context, title string) (image.Image, error) {
	if len(c.windowCmd) == 0 {
		return nil, ErrUnavailable
	}
	return c.capture(ctx, c.windowCmd, map[string]string{"{window}": title})
}

func (c *CommandCapturer) capture(ctx context.Context, argv []string, vars map[string]string) (image.Image, error) {
	dir, err := os.MkdirTemp(c.tempDir, "devgate-capture-*")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	vars["{file}"] = filepath.Join(dir, "capture.png")
	if _, err := run(ctx, expand(argv, vars)); err != nil {
		return nil, err
	}

	f, err := os.Open(vars["{file}"])
	if err != nil {
		return nil, fmt.Errorf("capture command produced no image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode captured image: %w", err)
	}
	return img, nil
}

// expand substitutes placeholders inside each argument.
func expand(argv []string, vars map[string]string) []string {
	out := make([]string, len(argv))
	for i, arg := range argv {
		for k, v := range vars {
			arg = strings.ReplaceAll(arg, k, v)
		}
		out[i] = arg
	}
	return out
}

func run(ctx context.Context, argv []string) ([]byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		logrus.WithFields(logrus.Fields{
			"command": argv[0],
			"stderr":  strings.TrimSpace(stderr.String()),
		}).Debug("capture command failed")
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%s: %w", msg, err)
		}
		return nil, err
	}
	return stdout.Bytes(), nil
}
