package fsutil

import "fmt"

// StatError is returned when the target of a write cannot be inspected.
type StatError struct {
	Path  string
	Cause error
}

func (e *StatError) Error() string {
	return fmt.Sprintf("failed to stat %s: %v", e.Path, e.Cause)
}

func (e *StatError) Unwrap() error { return e.Cause }

func (e *StatError) IOError() bool { return true }

// TempFileError is returned when creating a temp file fails.
type TempFileError struct {
	Dir   string
	Cause error
}

func (e *TempFileError) Error() string {
	return fmt.Sprintf("failed to create temp file in %s: %v", e.Dir, e.Cause)
}

func (e *TempFileError) Unwrap() error { return e.Cause }

func (e *TempFileError) IOError() bool { return true }

// TempWriteError is returned when writing, syncing or closing a temp file fails.
type TempWriteError struct {
	Path  string
	Cause error
}

func (e *TempWriteError) Error() string {
	return fmt.Sprintf("failed to write temp file %s: %v", e.Path, e.Cause)
}

func (e *TempWriteError) Unwrap() error { return e.Cause }

func (e *TempWriteError) IOError() bool { return true }

// RenameError is returned when moving the temp file into place fails.
type RenameError struct {
	From  string
	To    string
	Cause error
}

func (e *RenameError) Error() string {
	return fmt.Sprintf("failed to rename %s to %s: %v", e.From, e.To, e.Cause)
}

func (e *RenameError) Unwrap() error { return e.Cause }

func (e *RenameError) IOError() bool { return true }

// ChmodError is returned when restoring permissions fails.
type ChmodError struct {
	Path  string
	Cause error
}

func (e *ChmodError) Error() string {
	return fmt.Sprintf("failed to set permissions on %s: %v", e.Path, e.Cause)
}

func (e *ChmodError) Unwrap() error { return e.Cause }

func (e *ChmodError) IOError() bool { return true }
