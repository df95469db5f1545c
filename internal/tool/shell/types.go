package shell

import (
	"strings"

	"github.com/Cyclone1070/devgate/internal/tool/errutil"
)

// ShellRequest is the parameter set of the shell tool.
type ShellRequest struct {
	Command string `mapstructure:"command" json:"command"`
}

// Validate rejects a missing or blank command.
func (r *ShellRequest) Validate() error {
	if strings.TrimSpace(r.Command) == "" {
		return errutil.InvalidParameters("The command string is required")
	}
	return nil
}
