package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"
)

const (
	// ConfigDir is the directory name under ~/.config
	ConfigDir = "devgate"
	// ConfigFile is the config file name
	ConfigFile = "config.json"
)

// FileSystem abstracts file operations for testability
type FileSystem interface {
	UserHomeDir() (string, error)
	ReadFile(path string) ([]byte, error)
}

// ConfigFileReader implements FileSystem using the real OS for config loading
type ConfigFileReader struct{}

func (ConfigFileReader) UserHomeDir() (string, error) {
	return os.UserHomeDir()
}

func (ConfigFileReader) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Report describes where a configuration came from.
type Report struct {
	// Path is the config file consulted, empty when the home directory is unknown.
	Path string `json:"path"`
	// Found is set when the file existed.
	Found bool `json:"found"`
	// Overridden lists the dotted keys the file set, e.g. "tools.shell".
	Overridden []string `json:"overridden"`
	// Unknown lists dotted keys in the file that no setting uses.
	Unknown []string `json:"unknown"`
}

// Loader handles configuration loading with injected dependencies
type Loader struct {
	fs FileSystem
}

// NewLoader creates a production Loader using the real filesystem
func NewLoader() *Loader {
	return &Loader{fs: ConfigFileReader{}}
}

// NewLoaderWithFS creates a Loader with a custom filesystem (for testing)
func NewLoaderWithFS(fs FileSystem) *Loader {
	return &Loader{fs: fs}
}

// Load reads ~/.config/devgate/config.json over the defaults.
// See LoadReport.
func (l *Loader) Load() (*Config, error) {
	cfg, _, err := l.LoadReport()
	return cfg, err
}

// LoadReport reads ~/.config/devgate/config.json over the defaults and
// reports which keys the file set. A missing file or unknown home directory
// yields the defaults. Parse errors, read errors other than a missing file
// and validation failures are returned.
//
// NOTE: explicit zero values in the file override defaults. Unknown keys
// are not an error, only logged, so older binaries accept newer files.
func (l *Loader) LoadReport() (*Config, Report, error) {
	cfg := DefaultConfig()
	var report Report

	homeDir, err := l.fs.UserHomeDir()
	if err != nil {
		logrus.WithError(err).Debug("no home directory, using default configuration")
		return cfg, report, nil
	}
	report.Path = Path(homeDir)

	data, err := l.fs.ReadFile(report.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, report, nil
		}
		return nil, report, err
	}
	report.Found = true

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, report, fmt.Errorf("parse %s: %w", report.Path, err)
	}
	report.Overridden, report.Unknown, err = fileKeys(data)
	if err != nil {
		return nil, report, fmt.Errorf("parse %s: %w", report.Path, err)
	}

	log := logrus.WithField("path", report.Path)
	if len(report.Unknown) > 0 {
		log.WithField("keys", report.Unknown).Warn("config file has unknown keys")
	}
	log.WithField("overridden", report.Overridden).Debug("config file loaded")

	if err := cfg.Validate(); err != nil {
		return nil, report, err
	}

	return cfg, report, nil
}

// fileKeys splits the keys present in a config file into known and
// unknown dotted names, both sorted.
func fileKeys(data []byte) (known, unknown []string, err error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, nil, err
	}

	for key, raw := range top {
		if key != "tools" {
			unknown = append(unknown, key)
			continue
		}
		var tools map[string]json.RawMessage
		if err := json.Unmarshal(raw, &tools); err != nil {
			return nil, nil, err
		}
		fields := jsonFields(reflect.TypeOf(ToolsConfig{}))
		for name := range tools {
			if slices.Contains(fields, name) {
				known = append(known, "tools."+name)
			} else {
				unknown = append(unknown, "tools."+name)
			}
		}
	}

	slices.Sort(known)
	slices.Sort(unknown)
	return known, unknown, nil
}

// jsonFields lists the JSON names of a struct's fields.
func jsonFields(t reflect.Type) []string {
	names := make([]string, 0, t.NumField())
	for i := range t.NumField() {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		if name != "" && name != "-" {
			names = append(names, name)
		}
	}
	return names
}

// Path returns the config file location under homeDir.
func Path(homeDir string) string {
	return filepath.Join(homeDir, ".config", ConfigDir, ConfigFile)
}

// Load is a convenience function using the default loader
func Load() (*Config, error) {
	return NewLoader().Load()
}
