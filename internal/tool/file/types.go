package file

import (
	"github.com/Cyclone1070/devgate/internal/tool/errutil"
)

// Command is a text_editor sub-command.
type Command string

const (
	CommandView       Command = "view"
	CommandWrite      Command = "write"
	CommandStrReplace Command = "str_replace"
	CommandUndoEdit   Command = "undo_edit"
)

// Commands lists the sub-commands in the order they are advertised.
var Commands = []Command{CommandView, CommandWrite, CommandStrReplace, CommandUndoEdit}

// TextEditorRequest is the parameter set of the text_editor tool.
// Optional fields are pointers so a missing value differs from an empty one.
type TextEditorRequest struct {
	Command  string  `mapstructure:"command" json:"command"`
	Path     string  `mapstructure:"path" json:"path"`
	FileText *string `mapstructure:"file_text" json:"file_text,omitempty"`
	OldStr   *string `mapstructure:"old_str" json:"old_str,omitempty"`
	NewStr   *string `mapstructure:"new_str" json:"new_str,omitempty"`
}

// Validate checks the parameters every command needs.
func (r *TextEditorRequest) Validate() error {
	if r.Command == "" {
		return errutil.InvalidParameters("Missing 'command' parameter")
	}
	if r.Path == "" {
		return errutil.InvalidParameters("Missing 'path' parameter")
	}
	return nil
}

func (r *TextEditorRequest) fileText() (string, error) {
	if r.FileText == nil {
		return "", errutil.InvalidParameters("Missing 'file_text' parameter")
	}
	return *r.FileText, nil
}

func (r *TextEditorRequest) replacement() (oldStr, newStr string, err error) {
	if r.OldStr == nil {
		return "", "", errutil.InvalidParameters("Missing 'old_str' parameter")
	}
	if r.NewStr == nil {
		return "", "", errutil.InvalidParameters("Missing 'new_str' parameter")
	}
	if *r.OldStr == "" {
		return "", "", errutil.InvalidParameters("'old_str' must not be empty")
	}
	return *r.OldStr, *r.NewStr, nil
}
