package executor

import (
	"bytes"
	"unicode/utf8"
)

// replacement stands in for every byte that is not part of valid UTF-8.
var replacement = []byte(string(utf8.RuneError))

// collector captures merged command output as valid UTF-8. It counts every
// character it sees but stops retaining bytes once maxChars is exceeded, so
// a runaway command cannot grow the buffer without bound.
//
// Each invalid byte counts as one character and is stored as U+FFFD. A
// sequence cut off at the end of a write is held back until the next write
// completes it, or until Flush.
type collector struct {
	buffer    bytes.Buffer
	pending   []byte
	maxChars  int
	chars     int
	truncated bool
}

func newCollector(maxChars int) *collector {
	return &collector{maxChars: maxChars}
}

func (c *collector) Write(p []byte) (n int, err error) {
	data := p
	if len(c.pending) > 0 {
		data = append(c.pending, p...)
		c.pending = nil
	}

	for len(data) > 0 {
		if !utf8.FullRune(data) {
			// At most utf8.UTFMax-1 bytes of a valid prefix.
			c.pending = append([]byte(nil), data...)
			break
		}
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size == 1 {
			c.emit(replacement)
		} else {
			c.emit(data[:size])
		}
		data = data[size:]
	}
	return len(p), nil
}

// Flush ends the stream: an incomplete trailing sequence becomes one
// replacement character.
func (c *collector) Flush() {
	if len(c.pending) > 0 {
		c.pending = nil
		c.emit(replacement)
	}
}

func (c *collector) emit(char []byte) {
	c.chars++
	if c.truncated {
		return
	}
	if c.chars > c.maxChars {
		c.truncated = true
		return
	}
	c.buffer.Write(char)
}

func (c *collector) String() string {
	return c.buffer.String()
}

// Chars is the number of characters written, including discarded ones.
func (c *collector) Chars() int {
	return c.chars
}

func (c *collector) Truncated() bool {
	return c.truncated
}
