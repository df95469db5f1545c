// Package screen implements the list_windows and screen_capture tools on top
// of a pluggable Capturer.
package screen

import (
	"context"
	"errors"
	"image"
	"slices"
	"strconv"
	"strings"

	"github.com/Cyclone1070/devgate/internal/config"
	"github.com/Cyclone1070/devgate/internal/tool"
	"github.com/Cyclone1070/devgate/internal/tool/errutil"
)

// ScreenTool serves both screen tools.
type ScreenTool struct {
	capturer Capturer
	maxWidth int
}

// NewScreenTool creates a new ScreenTool with injected dependencies.
func NewScreenTool(capturer Capturer, cfg *config.Config) *ScreenTool {
	if capturer == nil {
		panic("capturer is required")
	}
	if cfg == nil {
		panic("cfg is required")
	}
	return &ScreenTool{capturer: capturer, maxWidth: cfg.Tools.MaxScreenshotWidth}
}

// ListWindows returns the titles usable as window_title in screen_capture.
func (t *ScreenTool) ListWindows(ctx context.Context, _ *ListWindowsRequest) ([]tool.Content, error) {
	titles, err := t.capturer.ListWindows(ctx)
	if err != nil {
		return nil, &errutil.ExecutionError{Message: "Failed to list windows", Cause: err}
	}

	text := "Available windows:\n" + strings.Join(titles, "\n")
	return []tool.Content{
		tool.Text(text).WithAudience(tool.RoleAssistant),
		tool.Text(text).WithAudience(tool.RoleUser).WithPriority(0.0),
	}, nil
}

// Capture takes a screenshot, scales it down and returns it as PNG.
func (t *ScreenTool) Capture(ctx context.Context, req *ScreenCaptureRequest) ([]tool.Content, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var (
		img image.Image
		err error
	)
	if req.WindowTitle != nil {
		img, err = t.captureWindow(ctx, *req.WindowTitle)
	} else {
		display := 0
		if req.Display != nil {
			display = *req.Display
		}
		img, err = t.captureDisplay(ctx, display)
	}
	if err != nil {
		return nil, err
	}

	data, err := encodePNG(downscale(img, t.maxWidth))
	if err != nil {
		return nil, errutil.Execution("Failed to write image buffer %v", err)
	}

	return []tool.Content{
		tool.Text("Screenshot captured").WithAudience(tool.RoleAssistant),
		tool.Image(data, "image/png").WithPriority(0.0),
	}, nil
}

func (t *ScreenTool) captureWindow(ctx context.Context, title string) (image.Image, error) {
	titles, err := t.capturer.ListWindows(ctx)
	if err != nil {
		return nil, &errutil.ExecutionError{Message: "Failed to list windows", Cause: err}
	}
	if !slices.Contains(titles, title) {
		return nil, errutil.Execution("No window found with title '%s'", title)
	}

	img, err := t.capturer.CaptureWindow(ctx, title)
	if err != nil {
		return nil, errutil.Wrap(err, "Failed to capture window '"+title+"'")
	}
	return img, nil
}

func (t *ScreenTool) captureDisplay(ctx context.Context, display int) (image.Image, error) {
	img, err := t.capturer.CaptureDisplay(ctx, display)
	if err != nil {
		var notFound *DisplayNotFoundError
		if errors.As(err, &notFound) {
			return nil, &errutil.ExecutionError{Message: notFound.Error(), Cause: err}
		}
		return nil, errutil.Wrap(err, "Failed to capture display "+strconv.Itoa(display))
	}
	return img, nil
}
