package config

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockFileSystem implements FileSystem for testing.
type MockFileSystem struct {
	HomeDir     string
	HomeDirErr  error
	Files       map[string][]byte
	ReadFileErr error
}

func (m *MockFileSystem) UserHomeDir() (string, error) {
	return m.HomeDir, m.HomeDirErr
}

func (m *MockFileSystem) ReadFile(path string) ([]byte, error) {
	if m.ReadFileErr != nil {
		return nil, m.ReadFileErr
	}
	data, ok := m.Files[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	return data, nil
}

// --- HAPPY PATH TESTS ---

func TestLoad_NoConfigFile_ReturnsDefaults(t *testing.T) {
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files:   map[string][]byte{},
	}
	loader := NewLoaderWithFS(fs)

	cfg, err := loader.Load()

	require.NoError(t, err)
	assert.Equal(t, 400_000, cfg.Tools.MaxOutputChars)
	assert.Equal(t, int64(400*1024), cfg.Tools.MaxViewBytes)
	assert.Equal(t, ".devgateignore", cfg.Tools.IgnoreFileName)
	assert.Equal(t, []string{"**/.env", "**/.env.*", "**/secrets.*"}, cfg.Tools.DefaultIgnorePatterns)
}

func TestLoad_PartialOverride_MergesWithDefaults(t *testing.T) {
	configJSON := `{"tools": {"shell": "zsh", "max_output_chars": 1000}}`
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files: map[string][]byte{
			"/home/user/.config/devgate/config.json": []byte(configJSON),
		},
	}
	loader := NewLoaderWithFS(fs)

	cfg, err := loader.Load()

	require.NoError(t, err)
	assert.Equal(t, "zsh", cfg.Tools.Shell)
	assert.Equal(t, 1000, cfg.Tools.MaxOutputChars)
	// Untouched keys keep their defaults
	assert.Equal(t, 400_000, cfg.Tools.MaxViewChars)
	assert.Equal(t, 4, cfg.Tools.SnippetContextLines)
}

func TestLoad_EmptyDefaultPatterns_Override(t *testing.T) {
	configJSON := `{"tools": {"default_ignore_patterns": []}}`
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files: map[string][]byte{
			"/home/user/.config/devgate/config.json": []byte(configJSON),
		},
	}

	cfg, err := NewLoaderWithFS(fs).Load()

	require.NoError(t, err)
	assert.Empty(t, cfg.Tools.DefaultIgnorePatterns)
}

// --- ERROR PATH TESTS ---

func TestLoad_HomeDirError_ReturnsDefaults(t *testing.T) {
	fs := &MockFileSystem{HomeDirErr: errors.New("no home")}

	cfg, err := NewLoaderWithFS(fs).Load()

	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_ReadError_ReturnsError(t *testing.T) {
	fs := &MockFileSystem{
		HomeDir:     "/home/user",
		ReadFileErr: os.ErrPermission,
	}

	cfg, err := NewLoaderWithFS(fs).Load()

	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, os.ErrPermission)
}

func TestLoad_MalformedJSON_ReturnsError(t *testing.T) {
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files: map[string][]byte{
			"/home/user/.config/devgate/config.json": []byte(`{"tools": `),
		},
	}

	_, err := NewLoaderWithFS(fs).Load()

	assert.Error(t, err)
}

func TestLoad_InvalidValue_FailsValidation(t *testing.T) {
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files: map[string][]byte{
			"/home/user/.config/devgate/config.json": []byte(`{"tools": {"max_output_chars": 0}}`),
		},
	}

	_, err := NewLoaderWithFS(fs).Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_output_chars")
}

// --- REPORT TESTS ---

func TestLoadReport_ListsOverriddenKeys(t *testing.T) {
	configJSON := `{"tools": {"shell": "zsh", "max_output_chars": 1000, "default_ignore_patterns": []}}`
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files: map[string][]byte{
			"/home/user/.config/devgate/config.json": []byte(configJSON),
		},
	}

	cfg, report, err := NewLoaderWithFS(fs).LoadReport()

	require.NoError(t, err)
	assert.Equal(t, "zsh", cfg.Tools.Shell)
	assert.Equal(t, "/home/user/.config/devgate/config.json", report.Path)
	assert.True(t, report.Found)
	assert.Equal(t, []string{"tools.default_ignore_patterns", "tools.max_output_chars", "tools.shell"}, report.Overridden)
	assert.Empty(t, report.Unknown)
}

func TestLoadReport_UnknownKeysAreReportedNotRejected(t *testing.T) {
	configJSON := `{"tool": {}, "tools": {"shel": "zsh", "kill_grace_ms": 10}}`
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files: map[string][]byte{
			"/home/user/.config/devgate/config.json": []byte(configJSON),
		},
	}

	cfg, report, err := NewLoaderWithFS(fs).LoadReport()

	require.NoError(t, err)
	assert.Equal(t, "bash", cfg.Tools.Shell, "misspelled key must not change the shell")
	assert.Equal(t, 10, cfg.Tools.KillGraceMs)
	assert.Equal(t, []string{"tools.kill_grace_ms"}, report.Overridden)
	assert.Equal(t, []string{"tool", "tools.shel"}, report.Unknown)
}

func TestLoadReport_NoFile(t *testing.T) {
	fs := &MockFileSystem{HomeDir: "/home/user", Files: map[string][]byte{}}

	cfg, report, err := NewLoaderWithFS(fs).LoadReport()

	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, "/home/user/.config/devgate/config.json", report.Path)
	assert.False(t, report.Found)
	assert.Empty(t, report.Overridden)
}

func TestLoadReport_NoHomeDir(t *testing.T) {
	fs := &MockFileSystem{HomeDirErr: errors.New("no home")}

	_, report, err := NewLoaderWithFS(fs).LoadReport()

	require.NoError(t, err)
	assert.Empty(t, report.Path)
	assert.False(t, report.Found)
}

func TestLoadReport_InvalidValueKeepsReport(t *testing.T) {
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files: map[string][]byte{
			"/home/user/.config/devgate/config.json": []byte(`{"tools": {"max_output_chars": 0}}`),
		},
	}

	cfg, report, err := NewLoaderWithFS(fs).LoadReport()

	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Equal(t, []string{"tools.max_output_chars"}, report.Overridden)
}
