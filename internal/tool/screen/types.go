package screen

import "github.com/Cyclone1070/devgate/internal/tool/errutil"

// ListWindowsRequest takes no parameters.
type ListWindowsRequest struct{}

// ScreenCaptureRequest selects a display or a window. When both are given
// the window wins.
type ScreenCaptureRequest struct {
	Display     *int    `mapstructure:"display" json:"display,omitempty"`
	WindowTitle *string `mapstructure:"window_title" json:"window_title,omitempty"`
}

// Validate rejects negative display indices.
func (r *ScreenCaptureRequest) Validate() error {
	if r.Display != nil && *r.Display < 0 {
		return errutil.InvalidParameters("'display' must not be negative")
	}
	return nil
}
