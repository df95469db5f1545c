package file

import (
	"path/filepath"
	"strings"
)

// languages maps file extensions to markdown fence identifiers.
var languages = map[string]string{
	"go":    "go",
	"rs":    "rust",
	"py":    "python",
	"js":    "javascript",
	"mjs":   "javascript",
	"jsx":   "jsx",
	"ts":    "typescript",
	"tsx":   "tsx",
	"java":  "java",
	"kt":    "kotlin",
	"swift": "swift",
	"c":     "c",
	"h":     "c",
	"cpp":   "cpp",
	"cc":    "cpp",
	"hpp":   "cpp",
	"cs":    "csharp",
	"rb":    "ruby",
	"php":   "php",
	"sh":    "bash",
	"bash":  "bash",
	"zsh":   "zsh",
	"ps1":   "powershell",
	"sql":   "sql",
	"html":  "html",
	"css":   "css",
	"scss":  "scss",
	"json":  "json",
	"yaml":  "yaml",
	"yml":   "yaml",
	"toml":  "toml",
	"xml":   "xml",
	"md":    "markdown",
	"lua":   "lua",
	"r":     "r",
	"scala": "scala",
	"dart":  "dart",
	"ex":    "elixir",
	"exs":   "elixir",
	"hs":    "haskell",
	"proto": "protobuf",
	"tf":    "hcl",
}

// languageFor returns the fence identifier for path, or "" when unknown.
func languageFor(path string) string {
	base := filepath.Base(path)
	switch base {
	case "Dockerfile":
		return "dockerfile"
	case "Makefile":
		return "makefile"
	}
	return languages[strings.ToLower(extension(path))]
}

// extension returns the extension of path without the leading dot.
func extension(path string) string {
	return strings.TrimPrefix(filepath.Ext(path), ".")
}
