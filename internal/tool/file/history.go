package file

import "sync"

// History keeps, per absolute path, the file contents saved before each
// str_replace, most recent last.
//
// One mutex guards the whole map and is held only for a single push or pop.
// Callers that read a file, push, then write are not atomic as a whole: two
// concurrent edits of the same path can interleave and leave history out of
// step with the file.
type History struct {
	mu     sync.Mutex
	stacks map[string][]string
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{stacks: make(map[string][]string)}
}

// Push records content as the newest undo point for path.
func (h *History) Push(path, content string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stacks[path] = append(h.stacks[path], content)
}

// Pop removes and returns the newest undo point for path.
func (h *History) Pop(path string) (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	stack := h.stacks[path]
	if len(stack) == 0 {
		return "", false
	}
	top := stack[len(stack)-1]
	if len(stack) == 1 {
		delete(h.stacks, path)
	} else {
		h.stacks[path] = stack[:len(stack)-1]
	}
	return top, true
}

// Len reports how many undo points path has.
func (h *History) Len(path string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.stacks[path])
}
