package textutil

import (
	"reflect"
	"testing"
)

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"single line LF", "line1", []string{"line1"}},
		{"multiple lines LF", "line1\nline2\nline3", []string{"line1", "line2", "line3"}},
		{"trailing newline LF", "line1\n", []string{"line1"}},
		{"empty string", "", nil},
		{"only newline LF", "\n", []string{""}},
		{"blank line kept", "a\n\nb\n", []string{"a", "", "b"}},
		{"multiple lines CRLF", "line1\r\nline2\r\nline3", []string{"line1", "line2", "line3"}},
		{"trailing newline CRLF", "line1\r\n", []string{"line1"}},
		{"mixed endings", "line1\nline2\r\nline3", []string{"line1", "line2", "line3"}},
		// treat \r as content if not followed by \n
		{"dangling CR", "line1\rline2", []string{"line1\rline2"}},
		{"final CR", "line1\r", []string{"line1\r"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SplitLines(tt.input); !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("SplitLines(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLineOf(t *testing.T) {
	content := "a\nbb\nccc"
	tests := []struct {
		off  int
		want int
	}{
		{0, 0},
		{1, 0},
		{2, 1},
		{5, 2},
		{len(content), 2},
	}
	for _, tt := range tests {
		if got := LineOf(content, tt.off); got != tt.want {
			t.Errorf("LineOf(%d) = %d, want %d", tt.off, got, tt.want)
		}
	}
}
