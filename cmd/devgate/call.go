package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Cyclone1070/devgate/internal/gateway"
	"github.com/Cyclone1070/devgate/internal/tool"
	"github.com/Cyclone1070/devgate/internal/tool/errutil"
)

func newCallCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "call TOOL [PARAMS_JSON|-]",
		Short: "Call a tool and print its result",
		Long: `Call a tool and print its result.

Parameters are a JSON object given as the second argument, or read from
stdin when it is "-". Individual parameters can be set with -p key=value;
a value that parses as JSON is used as such, anything else is a string.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: callAction,
	}
	cmd.Flags().StringArrayP("param", "p", nil, "Set a parameter as key=value (repeatable)")
	cmd.Flags().String("audience", string(tool.RoleUser), "Show the result as seen by [user, assistant]")
	cmd.Flags().Bool("json", false, "Print the raw result items as JSON")
	return cmd
}

func callAction(cmd *cobra.Command, args []string) error {
	audience, _ := cmd.Flags().GetString("audience")
	if audience != string(tool.RoleUser) && audience != string(tool.RoleAssistant) {
		return fmt.Errorf("unsupported audience: %q", audience)
	}

	var raw string
	if len(args) > 1 {
		raw = args[1]
	}
	pairs, _ := cmd.Flags().GetStringArray("param")
	params, err := parseParams(raw, cmd.InOrStdin(), pairs)
	if err != nil {
		return err
	}

	gw, err := newGateway(cmd)
	if err != nil {
		return err
	}

	name := args[0]
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	var outcome gateway.Outcome
	results := gw.DispatchAsync(ctx, name, params)
	err = withProgress(ttyEnabled(cmd), cmd.ErrOrStderr(), describeCall(name, params), cancel, func() {
		outcome = <-results
	})
	if err != nil {
		return err
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return printJSON(cmd.OutOrStdout(), outcome)
	}

	if outcome.Err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), errorBanner(outcome.Err))
		return &exitError{code: 1}
	}

	r := &contentRenderer{out: cmd.OutOrStdout(), audience: tool.Role(audience)}
	if ttyEnabled(cmd) {
		if md, mdErr := newMarkdownFunc(); mdErr == nil {
			r.markdown = md
		}
	}
	return r.render(name, outcome.Content)
}

// parseParams merges the JSON object in raw (or stdin when raw is "-")
// with key=value pairs. Pairs win over the JSON object.
func parseParams(raw string, stdin io.Reader, pairs []string) (map[string]any, error) {
	params := map[string]any{}

	if raw == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read parameters from stdin: %w", err)
		}
		raw = string(data)
	}
	if strings.TrimSpace(raw) != "" {
		if err := json.Unmarshal([]byte(raw), &params); err != nil {
			return nil, fmt.Errorf("parameters must be a JSON object: %w", err)
		}
		if params == nil {
			params = map[string]any{}
		}
	}

	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid parameter %q, expected key=value", pair)
		}
		var v any
		if err := json.Unmarshal([]byte(value), &v); err != nil {
			v = value
		}
		params[key] = v
	}
	return params, nil
}

// describeCall is the progress label for a call.
func describeCall(name string, params map[string]any) string {
	switch gateway.Name(name) {
	case gateway.NameShell:
		if c, ok := params["command"].(string); ok {
			return fmt.Sprintf("shell '%s'", c)
		}
	case gateway.NameTextEditor:
		c, _ := params["command"].(string)
		p, _ := params["path"].(string)
		if c != "" && p != "" {
			return fmt.Sprintf("text_editor %s %s", c, p)
		}
	}
	return name
}

type jsonOutcome struct {
	Content   []tool.Content `json:"content"`
	Error     string         `json:"error,omitempty"`
	ErrorKind string         `json:"error_kind,omitempty"`
}

func printJSON(w io.Writer, outcome gateway.Outcome) error {
	out := jsonOutcome{Content: outcome.Content}
	if out.Content == nil {
		out.Content = []tool.Content{}
	}
	if outcome.Err != nil {
		out.Error = outcome.Err.Error()
		out.ErrorKind = string(errutil.KindOf(outcome.Err))
	}
	j, err := json.MarshalIndent(out, "", "    ")
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, string(j)); err != nil {
		return err
	}
	if outcome.Err != nil {
		return &exitError{code: 1}
	}
	return nil
}
