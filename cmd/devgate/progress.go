package main

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
)

// doneMsg tells the progress model that the work has finished.
type doneMsg struct{}

// progressModel shows a spinner while a tool call or model turn runs.
// ctrl+c cancels the work and the model keeps spinning until it returns.
type progressModel struct {
	spinner    spinner.Model
	label      string
	wait       tea.Cmd
	cancel     context.CancelFunc
	cancelling bool
	done       bool
}

func newProgressModel(label string, cancel context.CancelFunc, finished <-chan struct{}) progressModel {
	return progressModel{
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(spinnerStyle)),
		label:   label,
		cancel:  cancel,
		wait: func() tea.Msg {
			<-finished
			return doneMsg{}
		},
	}
}

func (m progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.wait)
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			if !m.cancelling {
				m.cancelling = true
				m.cancel()
			}
		}
		return m, nil

	case doneMsg:
		m.done = true
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m progressModel) View() string {
	if m.done {
		return ""
	}
	if m.cancelling {
		return m.spinner.View() + " " + dimStyle.Render(m.label+" (cancelling)")
	}
	return m.spinner.View() + " " + statusStyle.Render(m.label) + dimStyle.Render("  ctrl+c to cancel")
}

// withProgress runs wait and, when tty is set, shows a spinner on out until
// it returns. cancel is called if the user interrupts. It always returns
// after wait has returned.
func withProgress(tty bool, out io.Writer, label string, cancel context.CancelFunc, wait func()) error {
	if !tty {
		wait()
		return nil
	}

	finished := make(chan struct{})
	go func() {
		defer close(finished)
		wait()
	}()

	opts := []tea.ProgramOption{tea.WithOutput(out)}
	if !isatty.IsTerminal(os.Stdin.Fd()) {
		opts = append(opts, tea.WithInput(nil))
	}
	_, err := tea.NewProgram(newProgressModel(label, cancel, finished), opts...).Run()
	if err != nil {
		cancel()
	}
	<-finished
	return err
}
