package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseParams(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		stdin   string
		pairs   []string
		want    map[string]any
		wantErr bool
	}{
		{name: "empty", want: map[string]any{}},
		{name: "json object", raw: `{"command":"ls"}`, want: map[string]any{"command": "ls"}},
		{name: "json null", raw: `null`, want: map[string]any{}},
		{name: "stdin", raw: "-", stdin: `{"command":"pwd"}`, want: map[string]any{"command": "pwd"}},
		{name: "string pair", pairs: []string{"command=echo hi"}, want: map[string]any{"command": "echo hi"}},
		{name: "json pair", pairs: []string{"display=1"}, want: map[string]any{"display": float64(1)}},
		{name: "empty value", pairs: []string{"new_str="}, want: map[string]any{"new_str": ""}},
		{
			name:  "pair overrides object",
			raw:   `{"command":"view","path":"/a"}`,
			pairs: []string{"path=/b"},
			want:  map[string]any{"command": "view", "path": "/b"},
		},
		{name: "not an object", raw: `[1,2]`, wantErr: true},
		{name: "bad json", raw: `{`, wantErr: true},
		{name: "pair without equals", pairs: []string{"command"}, wantErr: true},
		{name: "pair without key", pairs: []string{"=x"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseParams(tt.raw, strings.NewReader(tt.stdin), tt.pairs)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDescribeCall(t *testing.T) {
	assert.Equal(t, "shell 'ls -la'", describeCall("shell", map[string]any{"command": "ls -la"}))
	assert.Equal(t, "text_editor view /tmp/a.go", describeCall("text_editor", map[string]any{"command": "view", "path": "/tmp/a.go"}))
	assert.Equal(t, "text_editor", describeCall("text_editor", map[string]any{}))
	assert.Equal(t, "list_windows", describeCall("list_windows", nil))
}

func TestCallCommand_Shell(t *testing.T) {
	root := t.TempDir()

	stdout, _, err := runApp(t, "call", "shell", "-p", "command=echo hello", "--root", root, "--tty=false")

	require.NoError(t, err)
	assert.Equal(t, "hello\n", stdout)
}

func TestCallCommand_WriteThenView(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "notes.txt")

	_, _, err := runApp(t, "call", "text_editor",
		"-p", "command=write", "-p", "path="+path, "-p", "file_text=first line",
		"--root", root, "--tty=false")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "first line", string(data))

	stdout, _, err := runApp(t, "call", "text_editor", `{"command":"view","path":"`+path+`"}`,
		"--root", root, "--tty=false", "--audience", "assistant")
	require.NoError(t, err)
	assert.Contains(t, stdout, "file://"+path)
	assert.Contains(t, stdout, "first line")
}

func TestCallCommand_ToolError(t *testing.T) {
	_, stderr, err := runApp(t, "call", "browse", "--root", t.TempDir(), "--tty=false")

	var ee *exitError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, 1, ee.code)
	assert.Contains(t, stderr, "not_found")
	assert.Contains(t, stderr, "Tool browse not found")
}

func TestCallCommand_JSON(t *testing.T) {
	stdout, _, err := runApp(t, "call", "shell", `{"command":"printf ok"}`, "--json", "--root", t.TempDir(), "--tty=false")
	require.NoError(t, err)

	var out jsonOutcome
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	require.Len(t, out.Content, 2)
	assert.Equal(t, "ok", out.Content[0].Text)
	assert.Empty(t, out.Error)
}

func TestCallCommand_JSONError(t *testing.T) {
	stdout, _, err := runApp(t, "call", "shell", `{}`, "--json", "--root", t.TempDir(), "--tty=false")

	var ee *exitError
	require.ErrorAs(t, err, &ee)

	var out jsonOutcome
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.Empty(t, out.Content)
	assert.Equal(t, "invalid_parameters", out.ErrorKind)
	assert.Equal(t, "The command string is required", out.Error)
}

func TestCallCommand_BadAudience(t *testing.T) {
	_, _, err := runApp(t, "call", "shell", "--audience", "robot", "--root", t.TempDir(), "--tty=false")
	assert.Error(t, err)
}
