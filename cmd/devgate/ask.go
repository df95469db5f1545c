package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Cyclone1070/devgate/internal/provider/gemini"
)

const defaultModel = "gemini-2.5-flash"

func newAskCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask PROMPT...",
		Short: "Ask a Gemini model to work on the project with the tools",
		Long: `Ask a Gemini model to work on the project with the tools.

The model may call every tool any number of times, up to --max-steps
round trips. The API key is read from GEMINI_API_KEY.`,
		Args: cobra.MinimumNArgs(1),
		RunE: askAction,
	}
	cmd.Flags().String("model", defaultModel, "Gemini model name")
	cmd.Flags().Int("max-steps", 20, "Maximum model round trips per prompt")
	return cmd
}

func askAction(cmd *cobra.Command, args []string) error {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return errors.New("GEMINI_API_KEY environment variable is required")
	}
	model, _ := cmd.Flags().GetString("model")
	maxSteps, _ := cmd.Flags().GetInt("max-steps")
	if maxSteps < 1 {
		return fmt.Errorf("--max-steps must be at least 1, got %d", maxSteps)
	}

	gw, err := newGateway(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	client, err := gemini.NewClientFromAPIKey(ctx, apiKey)
	if err != nil {
		return fmt.Errorf("failed to create Gemini client: %w", err)
	}
	session := gemini.NewSession(client, model, gw, maxSteps)

	var answer string
	var askErr error
	err = withProgress(ttyEnabled(cmd), cmd.ErrOrStderr(), "Generating", cancel, func() {
		answer, askErr = session.Ask(ctx, strings.Join(args, " "))
	})
	if err != nil {
		return err
	}
	if askErr != nil {
		return askErr
	}

	if ttyEnabled(cmd) {
		if md, mdErr := newMarkdownFunc(); mdErr == nil {
			if rendered, renderErr := md(answer); renderErr == nil {
				_, err = fmt.Fprint(cmd.OutOrStdout(), rendered)
				return err
			}
		}
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), answer)
	return err
}
