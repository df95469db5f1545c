// Package errutil defines the error taxonomy shared by every tool.
//
// Handlers return one of three kinds: invalid parameters (the caller can
// retry with corrected input), execution errors (policy violations, size
// ceilings, I/O or process failures) and not-found (unknown tool name).
// The dispatcher passes these values through unchanged.
package errutil

import (
	"errors"
	"fmt"
)

// Kind classifies a tool error.
type Kind string

const (
	KindInvalidParameters Kind = "invalid_parameters"
	KindExecution         Kind = "execution_error"
	KindNotFound          Kind = "not_found"
)

// kinded is implemented by every error type in this package.
type kinded interface {
	Kind() Kind
}

// InvalidParametersError reports malformed, missing or relative-path input.
type InvalidParametersError struct {
	Message string
}

func (e *InvalidParametersError) Error() string { return e.Message }

func (e *InvalidParametersError) Kind() Kind { return KindInvalidParameters }

// InvalidInput implements the behavioral interface for cross-package error checking.
func (e *InvalidParametersError) InvalidInput() bool { return true }

// ExecutionError reports a failure while performing the operation.
type ExecutionError struct {
	Message string
	Cause   error
}

func (e *ExecutionError) Error() string { return e.Message }

func (e *ExecutionError) Unwrap() error { return e.Cause }

func (e *ExecutionError) Kind() Kind { return KindExecution }

// NotFoundError is returned for an unknown tool name.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Tool %s not found", e.Name)
}

func (e *NotFoundError) Kind() Kind { return KindNotFound }

// InvalidParameters builds an InvalidParametersError from a format string.
func InvalidParameters(format string, args ...any) error {
	return &InvalidParametersError{Message: fmt.Sprintf(format, args...)}
}

// Execution builds an ExecutionError from a format string.
func Execution(format string, args ...any) error {
	return &ExecutionError{Message: fmt.Sprintf(format, args...)}
}

// Wrap builds an ExecutionError whose message is "<msg>: <cause>".
func Wrap(cause error, msg string) error {
	return &ExecutionError{Message: fmt.Sprintf("%s: %v", msg, cause), Cause: cause}
}

// NotFound builds a NotFoundError for the named tool.
func NotFound(name string) error {
	return &NotFoundError{Name: name}
}

// KindOf classifies err. Errors from outside this package count as
// execution errors; nil has no kind.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var k kinded
	if errors.As(err, &k) {
		return k.Kind()
	}
	return KindExecution
}

// Is reports whether err is of the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
