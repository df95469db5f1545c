// Package gateway receives named tool calls, routes them to the tool that
// implements them and returns audience-tagged results.
package gateway

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Cyclone1070/devgate/internal/config"
	"github.com/Cyclone1070/devgate/internal/tool"
	"github.com/Cyclone1070/devgate/internal/tool/errutil"
	"github.com/Cyclone1070/devgate/internal/tool/file"
	"github.com/Cyclone1070/devgate/internal/tool/fsutil"
	"github.com/Cyclone1070/devgate/internal/tool/pathutil"
	"github.com/Cyclone1070/devgate/internal/tool/screen"
	"github.com/Cyclone1070/devgate/internal/tool/service/executor"
	"github.com/Cyclone1070/devgate/internal/tool/service/ignore"
	"github.com/Cyclone1070/devgate/internal/tool/shell"
)

// Outcome is the single result delivered by DispatchAsync.
type Outcome struct {
	Content []tool.Content
	Err     error
}

// Option customises gateway construction.
type Option func(*options)

type options struct {
	homeDir    string
	homeDirSet bool
	capturer   screen.Capturer
	fileSystem *fsutil.OSFileSystem
}

// WithHomeDir overrides the directory searched for the global ignore file.
// An empty dir disables the global tier.
func WithHomeDir(dir string) Option {
	return func(o *options) {
		o.homeDir = dir
		o.homeDirSet = true
	}
}

// WithCapturer replaces the screen capture back-end.
func WithCapturer(c screen.Capturer) Option {
	return func(o *options) { o.capturer = c }
}

// Gateway owns the tools and the state they share. It is safe for
// concurrent use; the edit history is the only mutable shared state.
type Gateway struct {
	root         string
	declarations []tool.Declaration
	instructions string
	policy       *ignore.Policy

	shell  *shell.ShellTool
	editor *file.TextEditorTool
	screen *screen.ScreenTool
}

// New builds a gateway rooted at root. The root must be an existing
// directory; it is canonicalised before use.
func New(cfg *config.Config, root string, opts ...Option) (*Gateway, error) {
	if cfg == nil {
		panic("cfg is required")
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.fileSystem == nil {
		o.fileSystem = fsutil.NewOSFileSystem()
	}
	if !o.homeDirSet {
		if home, err := o.fileSystem.UserHomeDir(); err == nil {
			o.homeDir = home
		} else {
			logrus.WithError(err).Warn("cannot determine home directory, global ignore file disabled")
		}
	}
	if o.capturer == nil {
		o.capturer = screen.NewCommandCapturer(cfg)
	}

	canonical, err := pathutil.CanonicaliseRoot(root)
	if err != nil {
		return nil, err
	}

	policy := ignore.NewPolicy(canonical, o.homeDir, o.fileSystem, ignore.Options{
		FileName: cfg.Tools.IgnoreFileName,
		Defaults: cfg.Tools.DefaultIgnorePatterns,
	})

	g := &Gateway{
		root:   canonical,
		policy: policy,
		shell: shell.NewShellTool(
			executor.NewOSCommandExecutor(cfg),
			shell.NewCommandGuard(policy, canonical),
			cfg,
			canonical,
		),
		editor: file.NewTextEditorTool(
			o.fileSystem,
			file.NewHistory(),
			policy,
			pathutil.NewResolver(canonical, o.fileSystem),
			cfg,
		),
		screen: screen.NewScreenTool(o.capturer, cfg),
	}

	decls := declarations()
	for _, n := range Names {
		g.declarations = append(g.declarations, decls[n])
	}
	g.instructions = buildInstructions(canonical, cfg.Tools.HintsFileName, o.fileSystem)

	logrus.WithFields(logrus.Fields{
		"root":    canonical,
		"sources": policy.Sources(),
	}).Info("gateway ready")

	return g, nil
}

// Root is the canonical working directory of the gateway.
func (g *Gateway) Root() string {
	return g.root
}

// Declarations returns the tool descriptors in registry order.
func (g *Gateway) Declarations() []tool.Declaration {
	return append([]tool.Declaration(nil), g.declarations...)
}

// PolicySources reports which ignore-rule tiers are in force.
func (g *Gateway) PolicySources() []ignore.Source {
	return g.policy.Sources()
}

// Instructions describes the environment to the agent.
func (g *Gateway) Instructions() string {
	return g.instructions
}

// Dispatch runs the named tool with params. Tool errors are returned as is:
// callers classify them with errutil.KindOf.
func (g *Gateway) Dispatch(ctx context.Context, name string, params map[string]any) ([]tool.Content, error) {
	log := logrus.WithFields(logrus.Fields{
		"tool":    name,
		"call_id": uuid.NewString(),
	})
	log.Debug("tool call started")

	start := time.Now()
	content, err := g.dispatch(ctx, name, params)
	log = log.WithField("duration", time.Since(start))

	if err != nil {
		log.WithField("error_kind", errutil.KindOf(err)).WithError(err).Info("tool call failed")
		return nil, err
	}
	log.Debug("tool call finished")
	return content, nil
}

func (g *Gateway) dispatch(ctx context.Context, name string, params map[string]any) ([]tool.Content, error) {
	n, err := ParseName(name)
	if err != nil {
		return nil, err
	}

	switch n {
	case NameShell:
		return call(ctx, params, g.shell.Run)
	case NameTextEditor:
		return call(ctx, params, g.editor.Run)
	case NameListWindows:
		return call(ctx, params, g.screen.ListWindows)
	case NameScreenCapture:
		return call(ctx, params, g.screen.Capture)
	default:
		panic(fmt.Sprintf("unhandled tool name %q", n))
	}
}

// DispatchAsync runs Dispatch on its own goroutine. The returned channel
// delivers exactly one Outcome and is then closed.
func (g *Gateway) DispatchAsync(ctx context.Context, name string, params map[string]any) <-chan Outcome {
	out := make(chan Outcome, 1)
	go func() {
		defer close(out)
		content, err := g.Dispatch(ctx, name, params)
		out <- Outcome{Content: content, Err: err}
	}()
	return out
}

type hintsReader interface {
	Stat(path string) (os.FileInfo, error)
	ReadFile(path string) ([]byte, error)
}

func buildInstructions(root, hintsFile string, fs hintsReader) string {
	var b strings.Builder
	fmt.Fprintf(&b, `The developer tools give you the capabilities to edit code files and run shell commands,
and can be used to solve a wide range of problems.

You can use the shell tool to run any command that would work on the relevant operating system.
Use the shell tool as needed to locate files or interact with the project.

Your windows/screen tools can be used for visual debugging. You should not use these tools unless
prompted to, but you can mention they are available if they are relevant.

operating system: %s
current directory: %s

`, runtime.GOOS, root)

	if hintsFile == "" {
		return b.String()
	}
	hintsPath := filepath.Join(root, hintsFile)
	info, err := fs.Stat(hintsPath)
	if err != nil || !info.Mode().IsRegular() {
		return b.String()
	}
	hints, err := fs.ReadFile(hintsPath)
	if err != nil {
		logrus.WithError(err).WithField("path", hintsPath).Warn("cannot read hints file")
		return b.String()
	}

	fmt.Fprintf(&b, "\n### Project Hints\nThe developer tools include some hints for working on the project in this directory.\n%s", hints)
	return b.String()
}
