// Package tui shows a spinner while long-running work, such as loading a
// large graph, completes.
package tui

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// doneMsg carries the outcome of the wrapped work.
type doneMsg struct{ err error }

// Model is the spinner model.
type Model struct {
	spinner   spinner.Model
	label     string
	startTime time.Time
	done      bool
	cancelled bool
	err       error
	cancel    context.CancelFunc
}

// NewModel returns a spinner labelled with label. cancel is called if the
// user interrupts.
func NewModel(label string, cancel context.CancelFunc) Model {
	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = special

	return Model{
		spinner:   s,
		label:     label,
		startTime: time.Now(),
		cancel:    cancel,
	}
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case doneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.cancelled = true
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) View() string {
	elapsed := time.Since(m.startTime).Round(100 * time.Millisecond)
	switch {
	case m.cancelled:
		return danger.Render("✗ "+m.label+" cancelled") + "\n"
	case m.done && m.err != nil:
		return danger.Render("✗ "+m.label) + " " + subtle.Render(m.err.Error()) + "\n"
	case m.done:
		return special.Render("✓ "+m.label) + " " + subtle.Render(elapsed.String()) + "\n"
	}
	return fmt.Sprintf("%s %s %s\n", m.spinner.View(), m.label, subtle.Render(elapsed.String()))
}

// RunWithSpinner runs fn while drawing a spinner on out. The spinner stops
// when fn returns; the user can cancel fn with ctrl+c.
func RunWithSpinner(ctx context.Context, out io.Writer, label string, fn func(context.Context) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(NewModel(label, cancel),
		tea.WithContext(ctx),
		tea.WithOutput(out),
	)

	result := make(chan error, 1)
	go func() {
		err := fn(ctx)
		result <- err
		p.Send(doneMsg{err: err})
	}()

	// A broken terminal only loses the spinner, not the work.
	_, _ = p.Run()
	return <-result
}
