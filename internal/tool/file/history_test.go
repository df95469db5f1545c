package file

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHistoryPushPop(t *testing.T) {
	h := NewHistory()

	_, ok := h.Pop("/a")
	assert.False(t, ok, "empty history must report nothing to pop")

	h.Push("/a", "one")
	h.Push("/a", "two")
	h.Push("/b", "other")
	assert.Equal(t, 2, h.Len("/a"))

	got, ok := h.Pop("/a")
	assert.True(t, ok)
	assert.Equal(t, "two", got)

	got, ok = h.Pop("/a")
	assert.True(t, ok)
	assert.Equal(t, "one", got)

	_, ok = h.Pop("/a")
	assert.False(t, ok)
	assert.Equal(t, 1, h.Len("/b"))
}

func TestHistoryConcurrentPaths(t *testing.T) {
	h := NewHistory()
	var wg sync.WaitGroup

	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			path := fmt.Sprintf("/file-%d", i)
			for j := 0; j < 50; j++ {
				h.Push(path, fmt.Sprintf("%d", j))
			}
			for j := 49; j >= 0; j-- {
				got, ok := h.Pop(path)
				assert.True(t, ok)
				assert.Equal(t, fmt.Sprintf("%d", j), got)
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < 16; i++ {
		assert.Zero(t, h.Len(fmt.Sprintf("/file-%d", i)))
	}
}
