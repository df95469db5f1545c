package file

import "os"

// pathResolver turns a caller-supplied path into an absolute one.
type pathResolver interface {
	Abs(path string) (string, error)
}

// accessPolicy answers whether an absolute path is hidden from the agent.
type accessPolicy interface {
	IsRestricted(path string) bool
	FileName() string
}

// fileSystem defines the filesystem operations the editor needs.
type fileSystem interface {
	Stat(path string) (os.FileInfo, error)
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, content []byte) error
}

// editHistory stores undo points.
type editHistory interface {
	Push(path, content string)
	Pop(path string) (string, bool)
}
