package config

// Config holds all application configuration values.
// Defaults are set in DefaultConfig() and can be overridden via dotfile.
// NOTE: Values in config files override defaults, including explicit zero values.
// Missing keys are left at their default values.
type Config struct {
	Tools ToolsConfig `json:"tools"`
}

type ToolsConfig struct {
	// Shell
	Shell          string `json:"shell"`            // Default: "bash"
	ShellFallback  string `json:"shell_fallback"`   // Default: "sh", used when Shell is not on PATH
	MaxOutputChars int    `json:"max_output_chars"` // Default: 400000
	KillGraceMs    int    `json:"kill_grace_ms"`    // Default: 2000, wait for inherited pipes after kill

	// Text editor
	MaxViewBytes        int64 `json:"max_view_bytes"`        // Default: 400 * 1024
	MaxViewChars        int   `json:"max_view_chars"`        // Default: 400000
	SnippetContextLines int   `json:"snippet_context_lines"` // Default: 4

	// Access policy
	IgnoreFileName        string   `json:"ignore_file_name"`        // Default: ".devgateignore"
	DefaultIgnorePatterns []string `json:"default_ignore_patterns"` // Applied only when no ignore file exists
	HintsFileName         string   `json:"hints_file_name"`         // Default: ".devgatehints"

	// Screen
	MaxScreenshotWidth   int      `json:"max_screenshot_width"`   // Default: 768
	ScreenCaptureCommand []string `json:"screen_capture_command"` // argv with {file} and {display} placeholders
	WindowCaptureCommand []string `json:"window_capture_command"` // argv with {file} and {window} placeholders
	ListWindowsCommand   []string `json:"list_windows_command"`   // argv printing one title per line
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Tools: ToolsConfig{
			Shell:               "bash",
			ShellFallback:       "sh",
			MaxOutputChars:      400_000,
			KillGraceMs:         2000,
			MaxViewBytes:        400 * 1024,
			MaxViewChars:        400_000,
			SnippetContextLines: 4,
			IgnoreFileName:      ".devgateignore",
			DefaultIgnorePatterns: []string{
				"**/.env",
				"**/.env.*",
				"**/secrets.*",
			},
			HintsFileName:      ".devgatehints",
			MaxScreenshotWidth: 768,
		},
	}
}
