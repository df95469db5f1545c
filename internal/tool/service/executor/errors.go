package executor

import (
	"errors"
	"fmt"
)

// ErrNoShell is returned when neither the configured shell nor its fallback is on PATH.
var ErrNoShell = errors.New("no usable shell found")

// CommandError represents generic command execution failures (lookup, start, wait).
type CommandError struct {
	Cmd   string
	Cause error
	Stage string // "lookup", "start", "wait"
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %s failed at %s: %v", e.Cmd, e.Stage, e.Cause)
}

func (e *CommandError) Unwrap() error { return e.Cause }
