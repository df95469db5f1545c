// Package ignore compiles ignore-rule files into the access policy that hides
// sensitive paths from the agent.
//
// Rules use gitignore syntax. Two files are consulted: a global one in the
// user's home directory and a project one in the workspace root. When
// either exists, the built-in defaults are not used at all, so an empty rule
// file means "ignore nothing".
//
// The policy is advisory pattern matching, not an isolation boundary.
package ignore

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"github.com/sirupsen/logrus"

	"github.com/Cyclone1070/devgate/internal/tool/pathutil"
)

// Source names a tier of rules that contributed to a policy.
type Source string

const (
	SourceGlobal   Source = "global"
	SourceProject  Source = "project"
	SourceDefaults Source = "defaults"
)

// fileSystem defines the minimal filesystem interface needed to load rule files.
type fileSystem interface {
	Stat(path string) (os.FileInfo, error)
	ReadFile(path string) ([]byte, error)
}

// Options configures rule loading.
type Options struct {
	FileName string   // rule file name looked up in home and root
	Defaults []string // patterns used when no rule file exists
}

// Policy classifies absolute paths as allowed or restricted.
// It is immutable after construction and safe for concurrent use.
type Policy struct {
	root     string
	fileName string
	matcher  gitignore.Matcher
	sources  []Source
}

// NewPolicy builds the policy for root. homeDir may be empty, in which case
// no global file is consulted. Construction does not fail: unreadable rule
// files are logged and count as present but empty.
func NewPolicy(root, homeDir string, fs fileSystem, opts Options) *Policy {
	if root == "" {
		panic("root is required")
	}
	if fs == nil {
		panic("fs is required")
	}
	if opts.FileName == "" {
		panic("opts.FileName is required")
	}

	p := &Policy{root: filepath.Clean(root), fileName: opts.FileName}

	var patterns []gitignore.Pattern
	found := false

	// Global rules go first so project rules, including negations, win.
	globalPath := ""
	if homeDir != "" {
		globalPath = filepath.Join(homeDir, opts.FileName)
		if ok, ps := loadRuleFile(fs, globalPath); ok {
			found = true
			patterns = append(patterns, ps...)
			p.sources = append(p.sources, SourceGlobal)
		}
	}

	projectPath := filepath.Join(p.root, opts.FileName)
	if projectPath != globalPath {
		if ok, ps := loadRuleFile(fs, projectPath); ok {
			found = true
			patterns = append(patterns, ps...)
			p.sources = append(p.sources, SourceProject)
		}
	}

	if !found {
		patterns = append(patterns, parseLines(opts.Defaults)...)
		p.sources = append(p.sources, SourceDefaults)
	}

	if len(patterns) > 0 {
		p.matcher = gitignore.NewMatcher(patterns)
	}

	logrus.WithFields(logrus.Fields{
		"root":     p.root,
		"sources":  p.sources,
		"patterns": len(patterns),
	}).Debug("access policy loaded")

	return p
}

// loadRuleFile reports whether the file exists and returns its patterns.
func loadRuleFile(fs fileSystem, path string) (bool, []gitignore.Pattern) {
	if _, err := fs.Stat(path); err != nil {
		return false, nil
	}
	data, err := fs.ReadFile(path)
	if err != nil {
		logrus.WithError(err).WithField("path", path).Warn("cannot read ignore file, treating it as empty")
		return true, nil
	}
	return true, parseLines(strings.Split(string(data), "\n"))
}

// parseLines skips blank and comment lines and compiles the rest.
func parseLines(lines []string) []gitignore.Pattern {
	var patterns []gitignore.Pattern
	for _, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if pattern := gitignore.ParsePattern(line, nil); pattern != nil {
			patterns = append(patterns, pattern)
		}
	}
	return patterns
}

// IsRestricted reports whether the absolute path is hidden from the agent.
// The path and, if it is a symlink, its resolved target are both checked.
// Matching never treats the path as a directory.
func (p *Policy) IsRestricted(path string) bool {
	if p.matcher == nil {
		return false
	}
	for _, candidate := range pathutil.Aliases(filepath.Clean(path)) {
		if segments := p.segments(candidate); len(segments) > 0 && p.matcher.Match(segments, false) {
			return true
		}
	}
	return false
}

// segments expresses path relative to the root when it lies under it, and
// as its absolute components otherwise.
func (p *Policy) segments(path string) []string {
	rel, err := filepath.Rel(p.root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		rel = path
	}
	return splitPath(rel)
}

// Sources lists the rule tiers that were loaded, in precedence order.
func (p *Policy) Sources() []Source {
	return append([]Source(nil), p.sources...)
}

// FileName is the rule file name, used in user-facing messages.
func (p *Policy) FileName() string {
	return p.fileName
}

// splitPath splits a path into segments for gitignore matching.
// It normalizes path separators and filters out empty and "." segments.
func splitPath(path string) []string {
	normalized := filepath.ToSlash(path)
	var segments []string
	for _, part := range strings.Split(normalized, "/") {
		if part != "" && part != "." {
			segments = append(segments, part)
		}
	}
	return segments
}
