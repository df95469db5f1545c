//go:build !unix

package executor

import "os/exec"

// setProcessGroup is a no-op where process groups are unavailable; the
// default cancellation kills only the shell.
func setProcessGroup(cmd *exec.Cmd) {}
