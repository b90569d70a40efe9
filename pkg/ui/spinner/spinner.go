// Package spinner shows a one-line progress indicator on a terminal while a
// long-running request is in flight, using the Charm bubbletea framework.
package spinner

import (
	"context"
	"io"
	"sync"

	// Packages
	spinner "github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	lipgloss "github.com/charmbracelet/lipgloss"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Spinner runs a bubbletea program which animates until Stop is called
type Spinner struct {
	program *tea.Program
	done    chan struct{}
	once    sync.Once
}

// model is the bubbletea model for the indicator line
type model struct {
	spinner spinner.Model
	message string
	stopped bool
}

// stopMsg ends the program and clears the line
type stopMsg struct{}

// printMsg is a line printed above the spinner
type printMsg string

///////////////////////////////////////////////////////////////////////////////
// STYLES

var (
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// Start shows the message with an animated spinner on w. Input and signal
// handling are left to the caller; cancelling ctx also ends the program.
func Start(ctx context.Context, w io.Writer, message string) *Spinner {
	s := &Spinner{
		done: make(chan struct{}),
	}
	s.program = tea.NewProgram(newModel(message),
		tea.WithContext(ctx),
		tea.WithOutput(w),
		tea.WithInput(nil),
		tea.WithoutSignalHandler(),
	)

	// Run the program in a background goroutine
	go func() {
		defer close(s.done)
		_, _ = s.program.Run()
	}()

	return s
}

func newModel(message string) model {
	return model{
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(spinnerStyle)),
		message: message,
	}
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Println prints a line above the spinner
func (s *Spinner) Println(text string) {
	s.program.Send(printMsg(text))
}

// Stop clears the spinner line and waits for the program to exit. It is
// safe to call more than once.
func (s *Spinner) Stop() {
	s.once.Do(func() {
		s.program.Send(stopMsg{})
	})
	<-s.done
}

///////////////////////////////////////////////////////////////////////////////
// tea.Model IMPLEMENTATION

func (m model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stopMsg:
		m.stopped = true
		return m, tea.Quit
	case printMsg:
		return m, tea.Println(string(msg))
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) View() string {
	if m.stopped {
		return ""
	}
	return m.spinner.View() + " " + dimStyle.Render(m.message)
}
