package shell

import (
	"fmt"
	"path/filepath"
	"strings"
)

// accessPolicy answers whether an absolute path is hidden from the agent.
type accessPolicy interface {
	IsRestricted(path string) bool
	FileName() string
}

var (
	safeCommands = map[string]bool{
		"ls": true, "pwd": true, "echo": true, "which": true,
		"whoami": true, "date": true, "ps": true,
	}
	fileReadCommands = map[string]bool{
		"cat": true, "less": true, "more": true, "head": true,
		"tail": true, "grep": true, "awk": true, "sed": true,
	}
)

// CommandGuard flags shell commands that obviously read restricted files.
//
// It is a best-effort deterrent only. Tokens are split on whitespace with
// no quoting awareness, and only the first word is inspected, so pipes,
// redirections, subshells, quoting and any reader outside the list all get
// through.
type CommandGuard struct {
	policy accessPolicy
	cwd    string
}

// NewCommandGuard creates a guard that resolves relative arguments against cwd.
func NewCommandGuard(policy accessPolicy, cwd string) *CommandGuard {
	if policy == nil {
		panic("policy is required")
	}
	if cwd == "" {
		panic("cwd is required")
	}
	return &CommandGuard{policy: policy, cwd: cwd}
}

// Scan returns a warning for the first restricted argument of a known
// file-reading command.
func (g *CommandGuard) Scan(commandLine string) (string, bool) {
	tokens := strings.Fields(commandLine)
	if len(tokens) == 0 || safeCommands[tokens[0]] || !fileReadCommands[tokens[0]] {
		return "", false
	}

	for _, arg := range tokens[1:] {
		if strings.HasPrefix(arg, "-") {
			continue
		}
		path := arg
		if !filepath.IsAbs(path) {
			path = filepath.Join(g.cwd, path)
		}
		if g.policy.IsRestricted(path) {
			return fmt.Sprintf(
				"Warning: The command attempts to access '%s' which is restricted by %s",
				arg, g.policy.FileName(),
			), true
		}
	}
	return "", false
}
