// Package pathutil turns caller-supplied paths into the absolute paths the
// tools operate on.
package pathutil

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/Cyclone1070/devgate/internal/tool/errutil"
)

// homeDirProvider is the only filesystem capability resolution needs.
type homeDirProvider interface {
	UserHomeDir() (string, error)
}

// CanonicaliseRoot makes root absolute and resolves symlinks.
// Returns an error if the path doesn't exist or isn't a directory.
func CanonicaliseRoot(root string) (string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", &WorkspaceRootError{Root: root, Cause: err}
	}

	resolved, err := filepath.EvalSymlinks(absRoot)
	if err != nil {
		return "", &WorkspaceRootError{Root: absRoot, Cause: err}
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return "", &WorkspaceRootError{Root: resolved, Cause: err}
	}
	if !info.IsDir() {
		return "", &NotADirectoryError{Path: resolved}
	}
	return resolved, nil
}

// Resolver validates tool path parameters.
type Resolver struct {
	cwd string
	fs  homeDirProvider
}

// NewResolver creates a resolver that suggests paths relative to cwd.
func NewResolver(cwd string, fs homeDirProvider) *Resolver {
	if cwd == "" {
		panic("cwd is required")
	}
	if fs == nil {
		panic("fs is required")
	}
	return &Resolver{cwd: cwd, fs: fs}
}

// Abs expands a leading tilde and requires the result to be absolute.
// Relative paths are rejected with a suggested absolute resolution so the
// caller can retry.
func (r *Resolver) Abs(path string) (string, error) {
	expanded, err := r.expandTilde(path)
	if err != nil {
		return "", err
	}

	if !filepath.IsAbs(expanded) {
		return "", errutil.InvalidParameters(
			"The path %s is not an absolute path, did you possibly mean %s?",
			path, filepath.Join(r.cwd, expanded),
		)
	}
	return filepath.Clean(expanded), nil
}

func (r *Resolver) expandTilde(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := r.fs.UserHomeDir()
	if err != nil {
		return "", errutil.Wrap(err, "Failed to expand ~")
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// Aliases returns abs plus, when abs exists and is reached through a
// symlink, the fully resolved target. Policy checks run against both.
func Aliases(abs string) []string {
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil || resolved == abs {
		return []string{abs}
	}
	return []string{abs, resolved}
}
