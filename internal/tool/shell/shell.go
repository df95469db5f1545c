// Package shell implements the shell tool: one command line, run through
// the user's shell in the working directory, output returned as text.
package shell

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/Cyclone1070/devgate/internal/config"
	"github.com/Cyclone1070/devgate/internal/tool"
	"github.com/Cyclone1070/devgate/internal/tool/errutil"
)

// ShellTool executes commands on the local machine.
type ShellTool struct {
	commandExecutor commandExecutor
	guard           commandScanner
	workingDir      string
	maxChars        int
}

// NewShellTool creates a new ShellTool with injected dependencies.
func NewShellTool(
	commandExecutor commandExecutor,
	guard commandScanner,
	cfg *config.Config,
	workingDir string,
) *ShellTool {
	if commandExecutor == nil {
		panic("commandExecutor is required")
	}
	if guard == nil {
		panic("guard is required")
	}
	if cfg == nil {
		panic("cfg is required")
	}
	if workingDir == "" {
		panic("workingDir is required")
	}
	return &ShellTool{
		commandExecutor: commandExecutor,
		guard:           guard,
		workingDir:      workingDir,
		maxChars:        cfg.Tools.MaxOutputChars,
	}
}

// Run executes req.Command and returns its merged output twice: once for
// the assistant and once, marked ephemeral, for the user.
//
// A non-zero exit status is not an error. Output past the character
// ceiling is rejected outright rather than truncated.
func (t *ShellTool) Run(ctx context.Context, req *ShellRequest) ([]tool.Content, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if warning, found := t.guard.Scan(req.Command); found {
		return nil, errutil.Execution("%s", warning)
	}

	result, err := t.commandExecutor.RunShell(ctx, req.Command, t.workingDir)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, errutil.Wrap(err, "Command was cancelled")
		}
		return nil, errutil.Wrap(err, "Failed to run command")
	}

	if result.Chars > t.maxChars {
		return nil, errutil.Execution(
			"Shell output from command '%s' has too many characters (%d). Maximum character count is %d.",
			req.Command, result.Chars, t.maxChars,
		)
	}

	if result.ExitCode != 0 {
		logrus.WithFields(logrus.Fields{
			"command":   req.Command,
			"exit_code": result.ExitCode,
		}).Debug("shell command exited with non-zero status")
	}

	return []tool.Content{
		tool.Text(result.Output).WithAudience(tool.RoleAssistant),
		tool.Text(result.Output).WithAudience(tool.RoleUser).WithPriority(0.0),
	}, nil
}
