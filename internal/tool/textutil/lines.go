// Package textutil holds small helpers for working with file text.
package textutil

import "strings"

// SplitLines splits content at "\n" and "\r\n". A final line ending is
// optional and yields no trailing empty line. A lone "\r" is content.
func SplitLines(content string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(content); i++ {
		if content[i] != '\n' {
			continue
		}
		end := i
		if end > start && content[end-1] == '\r' {
			end--
		}
		lines = append(lines, content[start:end])
		start = i + 1
	}
	if start < len(content) {
		lines = append(lines, content[start:])
	}
	return lines
}

// LineOf returns the zero-based line on which byte offset off falls.
func LineOf(content string, off int) int {
	return strings.Count(content[:off], "\n")
}
