package main

import (
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/Cyclone1070/devgate/internal/gateway"
	"github.com/Cyclone1070/devgate/internal/tool"
	"github.com/Cyclone1070/devgate/internal/tool/errutil"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
)

// markdownFunc renders markdown for the terminal.
type markdownFunc func(string) (string, error)

func newMarkdownFunc() (markdownFunc, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return nil, err
	}
	return r.Render, nil
}

// contentRenderer prints tool results for a human reader.
type contentRenderer struct {
	out      io.Writer
	audience tool.Role
	// markdown is nil when output is not a terminal.
	markdown markdownFunc
}

// render prints the items visible to the renderer's audience in order.
// Text from tools whose output is markdown goes through the markdown
// renderer; everything else is printed verbatim.
func (r *contentRenderer) render(toolName string, items []tool.Content) error {
	for _, item := range tool.ForAudience(items, r.audience) {
		var err error
		switch item.Type {
		case tool.ContentText:
			err = r.text(toolName, item.Text)
		case tool.ContentResource:
			err = r.resource(item.Resource)
		case tool.ContentImage:
			err = r.image(item)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *contentRenderer) text(toolName, text string) error {
	if r.markdown != nil && toolName == string(gateway.NameTextEditor) {
		rendered, err := r.markdown(text)
		if err == nil {
			_, err = fmt.Fprint(r.out, rendered)
			return err
		}
	}
	return r.verbatim(text)
}

func (r *contentRenderer) resource(res *tool.Resource) error {
	if res == nil {
		return nil
	}
	if _, err := fmt.Fprintln(r.out, headerStyle.Render(res.URI)); err != nil {
		return err
	}
	return r.verbatim(res.Text)
}

func (r *contentRenderer) image(item tool.Content) error {
	size := base64.StdEncoding.DecodedLen(len(item.Data))
	if data, err := base64.StdEncoding.DecodeString(item.Data); err == nil {
		size = len(data)
	}
	_, err := fmt.Fprintln(r.out, dimStyle.Render(fmt.Sprintf("[%s image, %d bytes]", item.MimeType, size)))
	return err
}

func (r *contentRenderer) verbatim(text string) error {
	if _, err := io.WriteString(r.out, text); err != nil {
		return err
	}
	if !strings.HasSuffix(text, "\n") {
		_, err := io.WriteString(r.out, "\n")
		return err
	}
	return nil
}

// errorBanner formats a tool error with its kind.
func errorBanner(err error) string {
	return errorStyle.Render(fmt.Sprintf("%s:", errutil.KindOf(err))) + " " + err.Error()
}
