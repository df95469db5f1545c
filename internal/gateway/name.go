package gateway

import "github.com/Cyclone1070/devgate/internal/tool/errutil"

// Name identifies one of the gateway's tools.
type Name string

const (
	NameShell         Name = "shell"
	NameTextEditor    Name = "text_editor"
	NameListWindows   Name = "list_windows"
	NameScreenCapture Name = "screen_capture"
)

// Names lists every tool in registry order.
var Names = []Name{NameShell, NameTextEditor, NameListWindows, NameScreenCapture}

// ParseName maps a caller-supplied tool name onto the closed set.
func ParseName(s string) (Name, error) {
	switch n := Name(s); n {
	case NameShell, NameTextEditor, NameListWindows, NameScreenCapture:
		return n, nil
	default:
		return "", errutil.NotFound(s)
	}
}
