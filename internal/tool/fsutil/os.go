// Package fsutil implements the filesystem operations the tools need on top
// of the local OS.
package fsutil

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// defaultPerm is used when creating a file that did not exist.
const defaultPerm os.FileMode = 0o644

// writeSyncCloser defines the minimal interface for a writable file handle.
// This abstraction allows testing without depending on concrete *os.File.
type writeSyncCloser interface {
	io.Writer
	Sync() error
	Close() error
	Name() string
}

// OSFileSystem implements filesystem operations using the local OS filesystem primitives.
// It uses internal function fields to enable testability via functional injection.
type OSFileSystem struct {
	createTemp func(dir, pattern string) (writeSyncCloser, error)
	rename     func(oldpath, newpath string) error
	chmod      func(name string, mode os.FileMode) error
	remove     func(name string) error
}

// NewOSFileSystem creates a new OSFileSystem with real OS syscalls.
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{
		createTemp: func(dir, pattern string) (writeSyncCloser, error) {
			return os.CreateTemp(dir, pattern)
		},
		rename: os.Rename,
		chmod:  os.Chmod,
		remove: os.Remove,
	}
}

// Stat returns file info for a path (follows symlinks).
func (r *OSFileSystem) Stat(path string) (os.FileInfo, error) {
	return os.Stat(path)
}

// ReadFile reads the whole file.
func (r *OSFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// UserHomeDir returns the current user's home directory.
func (r *OSFileSystem) UserHomeDir() (string, error) {
	return os.UserHomeDir()
}

// WriteFile replaces the content of path, creating it if needed. Existing
// permissions are kept. When path is a symlink the link target is written,
// so the link itself survives the rename.
func (r *OSFileSystem) WriteFile(path string, content []byte) error {
	target := path
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		target = resolved
	}

	perm := defaultPerm
	info, err := os.Stat(target)
	switch {
	case err == nil:
		perm = info.Mode().Perm()
	case !errors.Is(err, fs.ErrNotExist):
		return &StatError{Path: target, Cause: err}
	}

	return r.WriteFileAtomic(target, content, perm)
}

// WriteFileAtomic writes content to a file atomically using temp file + rename pattern.
// If the process dies mid-write the original file remains intact.
// The temp file is created in the same directory as the target to ensure atomic rename.
func (r *OSFileSystem) WriteFileAtomic(path string, content []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)

	tmpFile, err := r.createTemp(dir, ".tmp-*")
	if err != nil {
		return &TempFileError{Dir: dir, Cause: err}
	}

	tmpPath := tmpFile.Name()
	needsCleanup := true

	defer func() {
		if tmpFile != nil {
			_ = tmpFile.Close()
		}
		if needsCleanup {
			_ = r.remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(content); err != nil {
		return &TempWriteError{Path: tmpPath, Cause: err}
	}

	if err := tmpFile.Sync(); err != nil {
		return &TempWriteError{Path: tmpPath, Cause: err}
	}

	// Close before rename, required on some systems
	if err := tmpFile.Close(); err != nil {
		tmpFile = nil
		return &TempWriteError{Path: tmpPath, Cause: err}
	}
	tmpFile = nil

	if err := r.rename(tmpPath, path); err != nil {
		return &RenameError{From: tmpPath, To: path, Cause: err}
	}
	needsCleanup = false

	if err := r.chmod(path, perm); err != nil {
		return &ChmodError{Path: path, Cause: err}
	}

	return nil
}
