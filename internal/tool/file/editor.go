// Package file implements the text_editor tool: viewing, writing and
// single-occurrence replacement of files, with per-path undo.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/Cyclone1070/devgate/internal/config"
	"github.com/Cyclone1070/devgate/internal/tool"
	"github.com/Cyclone1070/devgate/internal/tool/errutil"
	"github.com/Cyclone1070/devgate/internal/tool/textutil"
)

// TextEditorTool handles the text_editor sub-commands.
type TextEditorTool struct {
	fileOps      fileSystem
	history      editHistory
	policy       accessPolicy
	pathResolver pathResolver

	maxViewBytes int64
	maxViewChars int
	snippetLines int
}

// NewTextEditorTool creates a new TextEditorTool with injected dependencies.
func NewTextEditorTool(
	fileOps fileSystem,
	history editHistory,
	policy accessPolicy,
	pathResolver pathResolver,
	cfg *config.Config,
) *TextEditorTool {
	if fileOps == nil {
		panic("fileOps is required")
	}
	if history == nil {
		panic("history is required")
	}
	if policy == nil {
		panic("policy is required")
	}
	if pathResolver == nil {
		panic("pathResolver is required")
	}
	if cfg == nil {
		panic("config is required")
	}
	return &TextEditorTool{
		fileOps:      fileOps,
		history:      history,
		policy:       policy,
		pathResolver: pathResolver,
		maxViewBytes: cfg.Tools.MaxViewBytes,
		maxViewChars: cfg.Tools.MaxViewChars,
		snippetLines: cfg.Tools.SnippetContextLines,
	}
}

// Run resolves the path, applies the access policy and dispatches on the
// sub-command.
//
// Note: ctx is accepted for API consistency but not used - file I/O is synchronous.
func (t *TextEditorTool) Run(ctx context.Context, req *TextEditorRequest) ([]tool.Content, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	abs, err := t.pathResolver.Abs(req.Path)
	if err != nil {
		return nil, err
	}

	if t.policy.IsRestricted(abs) {
		return nil, errutil.Execution("Access to '%s' is restricted by %s", abs, t.policy.FileName())
	}

	switch Command(req.Command) {
	case CommandView:
		return t.view(abs)
	case CommandWrite:
		text, err := req.fileText()
		if err != nil {
			return nil, err
		}
		return t.write(abs, text)
	case CommandStrReplace:
		oldStr, newStr, err := req.replacement()
		if err != nil {
			return nil, err
		}
		return t.strReplace(abs, oldStr, newStr)
	case CommandUndoEdit:
		return t.undo(abs)
	default:
		return nil, errutil.InvalidParameters("Unknown command '%s'", req.Command)
	}
}

func (t *TextEditorTool) view(path string) ([]tool.Content, error) {
	info, err := t.fileOps.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return nil, errutil.Execution("The path '%s' does not exist or is not a file.", path)
	}

	if info.Size() > t.maxViewBytes {
		return nil, errutil.Execution(
			"File '%s' is too large (%.2fKB). Maximum size is %dKB to prevent memory issues.",
			path, float64(info.Size())/1024.0, t.maxViewBytes/1024,
		)
	}

	content, err := t.readText(path)
	if err != nil {
		return nil, err
	}

	if chars := utf8.RuneCountInString(content); chars > t.maxViewChars {
		return nil, errutil.Execution(
			"File '%s' has too many characters (%d). Maximum character count is %d.",
			path, chars, t.maxViewChars,
		)
	}

	uri := (&url.URL{Scheme: "file", Path: path}).String()

	// The assistant gets the raw resource; the user gets a rendered copy
	// that can be dropped from context early.
	return []tool.Content{
		tool.EmbeddedText(uri, content).WithAudience(tool.RoleAssistant),
		tool.Text(fenced(path, languageFor(path), content)).
			WithAudience(tool.RoleUser).
			WithPriority(0.0),
	}, nil
}

// write replaces the file wholesale. It records no undo point, so undo_edit
// after a write restores the state before the last str_replace, if any.
func (t *TextEditorTool) write(path, text string) ([]tool.Content, error) {
	if err := t.fileOps.WriteFile(path, []byte(text)); err != nil {
		return nil, errutil.Wrap(err, "Failed to write file")
	}

	logrus.WithField("path", path).Debug("file written")

	return []tool.Content{
		tool.Text(fmt.Sprintf("Successfully wrote to %s", path)).WithAudience(tool.RoleAssistant),
		tool.Text(fenced(path, extension(path), text)).
			WithAudience(tool.RoleUser).
			WithPriority(0.2),
	}, nil
}

// strReplace swaps the single occurrence of oldStr for newStr and saves the
// previous content for undo. The read, push and write are separate steps;
// see History for the consequence under concurrent edits of one path.
func (t *TextEditorTool) strReplace(path, oldStr, newStr string) ([]tool.Content, error) {
	if _, err := t.fileOps.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errutil.InvalidParameters(
				"File '%s' does not exist, you can write a new file with the `write` command", path)
		}
		return nil, errutil.Wrap(err, "Failed to get file metadata")
	}

	content, err := t.readText(path)
	if err != nil {
		return nil, err
	}

	switch strings.Count(content, oldStr) {
	case 0:
		return nil, errutil.InvalidParameters(
			"'old_str' must appear exactly once in the file, but it does not appear in the file. " +
				"Make sure the string exactly matches existing file content, including whitespace!")
	case 1:
	default:
		return nil, errutil.InvalidParameters(
			"'old_str' must appear exactly once in the file, but it appears multiple times")
	}

	t.history.Push(path, content)

	newContent := strings.Replace(content, oldStr, newStr, 1)
	if err := t.fileOps.WriteFile(path, []byte(newContent)); err != nil {
		return nil, errutil.Wrap(err, "Failed to write file")
	}

	line := textutil.LineOf(content, strings.Index(content, oldStr))
	snippet := snippetAround(newContent, line, t.snippetLines, strings.Count(newStr, "\n"))
	output := fmt.Sprintf("```%s\n%s\n```\n", extension(path), snippet)

	message := fmt.Sprintf(
		"The file %s has been edited, and the section now reads:\n%s\n"+
			"Review the changes above for errors. Undo and edit the file again if necessary!\n",
		path, output,
	)

	return []tool.Content{
		tool.Text(message).WithAudience(tool.RoleAssistant),
		tool.Text(output).WithAudience(tool.RoleUser).WithPriority(0.2),
	}, nil
}

// undo restores the newest undo point. The restored state is not itself
// pushed, so there is no redo.
func (t *TextEditorTool) undo(path string) ([]tool.Content, error) {
	previous, ok := t.history.Pop(path)
	if !ok {
		return nil, errutil.InvalidParameters("No edit history available to undo")
	}

	if err := t.fileOps.WriteFile(path, []byte(previous)); err != nil {
		return nil, errutil.Wrap(err, "Failed to write file")
	}

	return []tool.Content{tool.Text("Undid the last edit")}, nil
}

func (t *TextEditorTool) readText(path string) (string, error) {
	data, err := t.fileOps.ReadFile(path)
	if err != nil {
		return "", errutil.Wrap(err, "Failed to read file")
	}
	if !utf8.Valid(data) {
		return "", errutil.Execution("Failed to read file: stream did not contain valid UTF-8")
	}
	return string(data), nil
}

// fenced renders content as a markdown section headed by path.
func fenced(path, language, content string) string {
	return fmt.Sprintf("### %s\n```%s\n%s\n```\n", path, language, content)
}

// snippetAround returns the lines of content from line-around through
// line+around+extra, clamped to the file.
func snippetAround(content string, line, around, extra int) string {
	lines := textutil.SplitLines(content)
	start := max(line-around, 0)
	end := min(line+around+extra+1, len(lines))
	if start >= end {
		return ""
	}
	return strings.Join(lines[start:end], "\n")
}
