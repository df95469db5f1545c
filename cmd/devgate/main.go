// Package main provides the devgate command-line interface: it lists the
// gateway's tools, calls them directly and lets a Gemini model drive them.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Cyclone1070/devgate/internal/config"
	"github.com/Cyclone1070/devgate/internal/gateway"
)

// exitError ends the process with code after the command has already
// reported the failure itself.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newApp().ExecuteContext(ctx)
	stop()

	var ee *exitError
	if errors.As(err, &ee) {
		os.Exit(ee.code)
	}
	if err != nil {
		logrus.Fatal(err)
	}
}

func newApp() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "devgate",
		Short: "Developer tool gateway: shell and file editing tools for agents",
		Example: `  List the tools and their parameter schemas:
  $ devgate tools

  Show the effective configuration:
  $ devgate config

  View a file:
  $ devgate call text_editor '{"command":"view","path":"/abs/path/main.go"}'

  Run a command with a key=value parameter:
  $ devgate call shell -p command='go test ./...'

  Let Gemini use the tools (needs GEMINI_API_KEY):
  $ devgate ask "why does the build fail?"`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().String("log-level", "warn", "Set the logging level [trace, debug, info, warn, error]")
	rootCmd.PersistentFlags().String("log-format", "text", "Set the logging format [text, json]")
	rootCmd.PersistentFlags().String("root", "", "Working directory of the tools (default: current directory)")
	rootCmd.PersistentFlags().Bool("tty", isatty.IsTerminal(os.Stderr.Fd()), "Show progress and render markdown. Defaults to true when stderr is a terminal.")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		logrus.SetOutput(cmd.ErrOrStderr())
		return processGlobalFlags(rootCmd)
	}

	rootCmd.AddCommand(
		newToolsCommand(),
		newInstructionsCommand(),
		newConfigCommand(),
		newCallCommand(),
		newAskCommand(),
	)
	return rootCmd
}

func processGlobalFlags(rootCmd *cobra.Command) error {
	l, _ := rootCmd.Flags().GetString("log-level")
	lvl, err := logrus.ParseLevel(l)
	if err != nil {
		return err
	}
	logrus.SetLevel(lvl)

	logFormat, _ := rootCmd.Flags().GetString("log-format")
	switch logFormat {
	case "json":
		logrus.SetFormatter(new(logrus.JSONFormatter))
	case "text":
		logrus.SetFormatter(new(logrus.TextFormatter))
	default:
		return fmt.Errorf("unsupported log-format: %q", logFormat)
	}
	return nil
}

// newGateway loads the configuration and builds a gateway rooted at --root.
func newGateway(cmd *cobra.Command) (*gateway.Gateway, error) {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Warn("failed to load config, using default configuration")
		cfg = config.DefaultConfig()
	}

	root, _ := cmd.Flags().GetString("root")
	if root == "" {
		root, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
	}

	return gateway.New(cfg, root)
}

func ttyEnabled(cmd *cobra.Command) bool {
	tty, _ := cmd.Flags().GetBool("tty")
	return tty
}
