package main

import (
	"bytes"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressModel_CtrlCCancelsOnce(t *testing.T) {
	cancels := 0
	m := newProgressModel("shell 'sleep 10'", func() { cancels++ }, make(chan struct{}))
	assert.Contains(t, m.View(), "shell 'sleep 10'")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.Nil(t, cmd)
	m = next.(progressModel)
	assert.True(t, m.cancelling)
	assert.Contains(t, m.View(), "cancelling")

	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.Equal(t, 1, cancels)
}

func TestProgressModel_DoneQuits(t *testing.T) {
	m := newProgressModel("x", func() {}, make(chan struct{}))

	next, cmd := m.Update(doneMsg{})

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, next.View())
}

func TestProgressModel_WaitReturnsWhenFinished(t *testing.T) {
	finished := make(chan struct{})
	m := newProgressModel("x", func() {}, finished)

	close(finished)

	assert.Equal(t, doneMsg{}, m.wait())
}

func TestProgressModel_SpinnerTick(t *testing.T) {
	m := newProgressModel("x", func() {}, make(chan struct{}))

	_, cmd := m.Update(m.spinner.Tick())

	assert.NotNil(t, cmd)
}

func TestWithProgress_NoTTY(t *testing.T) {
	var out bytes.Buffer
	ran := false

	err := withProgress(false, &out, "x", func() {}, func() { ran = true })

	require.NoError(t, err)
	assert.True(t, ran)
	assert.Empty(t, out.String())
}
