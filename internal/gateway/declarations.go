package gateway

import (
	"github.com/Cyclone1070/devgate/internal/tool"
	"github.com/Cyclone1070/devgate/internal/tool/file"
)

const shellDescription = `Execute a command in the shell.

This will return the output and error concatenated into a single string, as
you would see from running on the command line. There will also be an indication
of if the command succeeded or failed.

Avoid commands that produce a large amount of output, and consider piping those outputs to files.
If you need to run a long lived command, background it - e.g. ` + "`uvicorn main:app &`" + ` so that
this tool does not run indefinitely.

**Important**: Use ripgrep - ` + "`rg`" + ` - when you need to locate a file or a code reference, other solutions
may show ignored or hidden files. For example *do not* use ` + "`find` or `ls -r`" + `
  - To locate a file by name: ` + "`rg --files | rg example.py`" + `
  - To locate content inside files: ` + "`rg 'class Example'`" + `
`

const textEditorDescription = "Perform text editing operations on files.\n\n" +
	"The `command` parameter specifies the operation to perform. Allowed options are:\n" +
	"- `view`: View the content of a file.\n" +
	"- `write`: Create or overwrite a file with the given content\n" +
	"- `str_replace`: Replace a string in a file with a new string.\n" +
	"- `undo_edit`: Undo the last edit made to a file.\n\n" +
	"To use the write command, you must specify `file_text` which will become the new content of the file. Be careful with\n" +
	"existing files! This is a full overwrite, so you must include everything - not just sections you are modifying.\n\n" +
	"To use the str_replace command, you must specify both `old_str` and `new_str` - the `old_str` needs to exactly match one\n" +
	"unique section of the original file, including any whitespace. Make sure to include enough context that the match is not\n" +
	"ambiguous. The entire original string will be replaced with `new_str`.\n"

const listWindowsDescription = `List all available window titles that can be used with screen_capture.
Returns a list of window titles that can be used with the window_title parameter
of the screen_capture tool.
`

const screenCaptureDescription = `Capture a screenshot of a specified display or window.
You can capture either:
1. A full display (monitor) using the display parameter
2. A specific window by its title using the window_title parameter

Only one of display or window_title should be specified.
`

func commandNames() []string {
	names := make([]string, len(file.Commands))
	for i, c := range file.Commands {
		names[i] = string(c)
	}
	return names
}

// declarations builds the tool descriptors. They are kept apart from the
// handlers so callers can list tools without touching any state.
func declarations() map[Name]tool.Declaration {
	return map[Name]tool.Declaration{
		NameShell: {
			Name:        string(NameShell),
			Description: shellDescription,
			Parameters: &tool.Schema{
				Type: tool.TypeObject,
				Properties: map[string]*tool.Schema{
					"command": {Type: tool.TypeString},
				},
				Required: []string{"command"},
			},
		},
		NameTextEditor: {
			Name:        string(NameTextEditor),
			Description: textEditorDescription,
			Parameters: &tool.Schema{
				Type: tool.TypeObject,
				Properties: map[string]*tool.Schema{
					"path": {
						Type:        tool.TypeString,
						Description: "Absolute path to file or directory, e.g. `/repo/file.py` or `/repo`.",
					},
					"command": {
						Type:        tool.TypeString,
						Enum:        commandNames(),
						Description: "Allowed options are: `view`, `write`, `str_replace`, `undo_edit`.",
					},
					"old_str":   {Type: tool.TypeString},
					"new_str":   {Type: tool.TypeString},
					"file_text": {Type: tool.TypeString},
				},
				Required: []string{"command", "path"},
			},
		},
		NameListWindows: {
			Name:        string(NameListWindows),
			Description: listWindowsDescription,
			Parameters: &tool.Schema{
				Type:       tool.TypeObject,
				Properties: map[string]*tool.Schema{},
			},
		},
		NameScreenCapture: {
			Name:        string(NameScreenCapture),
			Description: screenCaptureDescription,
			Parameters: &tool.Schema{
				Type: tool.TypeObject,
				Properties: map[string]*tool.Schema{
					"display": {
						Type:        tool.TypeInteger,
						Default:     0,
						Description: "The display number to capture (0 is main display)",
					},
					"window_title": {
						Type:        tool.TypeString,
						Description: "Optional: the exact title of the window to capture. use the list_windows tool to find the available windows.",
					},
				},
			},
		},
	}
}
