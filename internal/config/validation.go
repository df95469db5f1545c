package config

import (
	"fmt"
	"strings"
)

// Validate checks config values for correctness.
// Returns an error listing every invalid value.
func (c *Config) Validate() error {
	var errs []string

	// Shell
	if strings.TrimSpace(c.Tools.Shell) == "" {
		errs = append(errs, "tools.shell must not be empty")
	}
	if c.Tools.MaxOutputChars < 1 {
		errs = append(errs, "tools.max_output_chars must be >= 1")
	}
	if c.Tools.KillGraceMs < 1 {
		errs = append(errs, "tools.kill_grace_ms must be >= 1")
	}

	// Text editor
	if c.Tools.MaxViewBytes < 1 {
		errs = append(errs, "tools.max_view_bytes must be >= 1")
	}
	if c.Tools.MaxViewChars < 1 {
		errs = append(errs, "tools.max_view_chars must be >= 1")
	}
	if c.Tools.SnippetContextLines < 0 {
		errs = append(errs, "tools.snippet_context_lines must be >= 0")
	}

	// Access policy
	if strings.TrimSpace(c.Tools.IgnoreFileName) == "" {
		errs = append(errs, "tools.ignore_file_name must not be empty")
	}
	if strings.ContainsAny(c.Tools.IgnoreFileName, `/\`) {
		errs = append(errs, "tools.ignore_file_name must be a bare file name")
	}

	// Screen
	if c.Tools.MaxScreenshotWidth < 1 {
		errs = append(errs, "tools.max_screenshot_width must be >= 1")
	}
	if len(c.Tools.ScreenCaptureCommand) > 0 && !containsPlaceholder(c.Tools.ScreenCaptureCommand, "{file}") {
		errs = append(errs, "tools.screen_capture_command must contain a {file} argument")
	}
	if len(c.Tools.WindowCaptureCommand) > 0 {
		if !containsPlaceholder(c.Tools.WindowCaptureCommand, "{file}") {
			errs = append(errs, "tools.window_capture_command must contain a {file} argument")
		}
		if !containsPlaceholder(c.Tools.WindowCaptureCommand, "{window}") {
			errs = append(errs, "tools.window_capture_command must contain a {window} argument")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %v", errs)
	}

	return nil
}

func containsPlaceholder(argv []string, placeholder string) bool {
	for _, arg := range argv {
		if strings.Contains(arg, placeholder) {
			return true
		}
	}
	return false
}
