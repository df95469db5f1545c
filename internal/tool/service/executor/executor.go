// Package executor runs shell command strings as child processes.
package executor

import (
	"context"
	"errors"
	"os/exec"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Cyclone1070/devgate/internal/config"
)

// Result represents the outcome of a command execution.
// Output holds stdout and stderr interleaved in arrival order.
type Result struct {
	Output    string
	Chars     int
	ExitCode  int
	Truncated bool
}

// OSCommandExecutor runs commands through the user's shell using os/exec.
type OSCommandExecutor struct {
	shell     string
	fallback  string
	maxChars  int
	killGrace time.Duration
	lookPath  func(file string) (string, error)
}

// NewOSCommandExecutor creates a new OSCommandExecutor with injected config.
func NewOSCommandExecutor(cfg *config.Config) *OSCommandExecutor {
	if cfg == nil {
		panic("cfg is required")
	}
	return &OSCommandExecutor{
		shell:     cfg.Tools.Shell,
		fallback:  cfg.Tools.ShellFallback,
		maxChars:  cfg.Tools.MaxOutputChars,
		killGrace: time.Duration(cfg.Tools.KillGraceMs) * time.Millisecond,
		lookPath:  exec.LookPath,
	}
}

// RunShell executes command with "<shell> -c" in dir. Stdin is the null
// device and both output streams feed one collector.
//
// A non-zero exit status is reported in Result.ExitCode, not as an error.
// When ctx is done the whole process group is killed and ctx.Err() is
// returned together with whatever output was collected. A command that
// exits cleanly is a success even if ctx expires right after.
func (e *OSCommandExecutor) RunShell(ctx context.Context, command string, dir string) (*Result, error) {
	shellPath, err := e.resolveShell()
	if err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, shellPath, "-c", command)
	cmd.Dir = dir
	cmd.Stdin = nil

	out := newCollector(e.maxChars)
	cmd.Stdout = out
	cmd.Stderr = out

	setProcessGroup(cmd)
	// Background children can keep the pipe open after the shell exits.
	cmd.WaitDelay = e.killGrace

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return nil, &CommandError{Cmd: shellPath, Cause: err, Stage: "start"}
	}
	waitErr := cmd.Wait()
	out.Flush()

	result := &Result{
		Output:    out.String(),
		Chars:     out.Chars(),
		Truncated: out.Truncated(),
	}
	if cmd.ProcessState != nil {
		result.ExitCode = cmd.ProcessState.ExitCode()
	}

	logrus.WithFields(logrus.Fields{
		"shell":     shellPath,
		"exit_code": result.ExitCode,
		"chars":     result.Chars,
		"duration":  time.Since(start),
	}).Debug("shell command finished")

	if waitErr != nil {
		// Only a failed wait can be the result of the kill.
		if ctxErr := ctx.Err(); ctxErr != nil {
			result.ExitCode = -1
			return result, ctxErr
		}

		var exitErr *exec.ExitError
		switch {
		case errors.As(waitErr, &exitErr):
			return result, nil
		case errors.Is(waitErr, exec.ErrWaitDelay):
			logrus.Debug("command exited with output pipes still held open")
			return result, nil
		default:
			return result, &CommandError{Cmd: shellPath, Cause: waitErr, Stage: "wait"}
		}
	}

	return result, nil
}

func (e *OSCommandExecutor) resolveShell() (string, error) {
	var lastErr error
	for _, candidate := range []string{e.shell, e.fallback} {
		if candidate == "" {
			continue
		}
		path, err := e.lookPath(candidate)
		if err == nil {
			return path, nil
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = ErrNoShell
	}
	return "", &CommandError{Cmd: e.shell, Cause: errors.Join(ErrNoShell, lastErr), Stage: "lookup"}
}
