package shell

import (
	"context"

	"github.com/Cyclone1070/devgate/internal/tool/service/executor"
)

// commandExecutor defines the interface for executing shell commands.
type commandExecutor interface {
	RunShell(ctx context.Context, command string, dir string) (*executor.Result, error)
}

// commandScanner flags commands that touch restricted paths.
type commandScanner interface {
	Scan(commandLine string) (string, bool)
}
