// ABOUTME: TUI initialization and control
// ABOUTME: Wraps the bubbletea program and the channels back to the supervisor
package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// AmplitudeChangeMsg asks the supervisor to adjust the amplitude.
type AmplitudeChangeMsg struct {
	Delta      float64
	ToggleMute bool
}

// QuitMsg asks the supervisor to shut down.
type QuitMsg struct{}

// Controls carries requests from the TUI back to the supervisor.
type Controls struct {
	Changes chan AmplitudeChangeMsg
	Quit    chan QuitMsg
}

// NewControls creates the control channel pair.
func NewControls() *Controls {
	return &Controls{
		Changes: make(chan AmplitudeChangeMsg, 10),
		Quit:    make(chan QuitMsg, 1),
	}
}

func (c *Controls) requestChange(msg AmplitudeChangeMsg) {
	if c == nil {
		return
	}
	select {
	case c.Changes <- msg:
	default:
	}
}

func (c *Controls) requestQuit() {
	if c == nil {
		return
	}
	select {
	case c.Quit <- QuitMsg{}:
	default:
	}
}

// NewModel creates a new TUI model.
func NewModel(controls *Controls) Model {
	return Model{
		state:    "starting",
		controls: controls,
	}
}

// Run starts the TUI.
func Run(controls *Controls) (*tea.Program, error) {
	p := tea.NewProgram(NewModel(controls), tea.WithAltScreen())
	return p, nil
}
