// ABOUTME: Bubbletea model for the noise player TUI
// ABOUTME: Renders playback status and turns keys into amplitude changes
package ui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
)

// ampStep is the amplitude change per keypress.
const ampStep = 0.01

// innerWidth is the content width inside the box borders. Wide enough for
// the amplitude row with both the mute marker and the hearing warning.
const innerWidth = 70

// Model represents the TUI state.
type Model struct {
	// Stream
	preset     string
	sampleRate int
	blockSize  int

	// Playback
	state     string
	amplitude float64
	muted     bool

	// Stats
	underruns int64
	faults    int64

	controls *Controls

	// Dimensions
	width  int
	height int
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case StatusMsg:
		m.applyStatus(msg)
	}

	return m, nil
}

// View renders the TUI.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	s := ""
	s += m.renderHeader()
	s += m.renderControls()
	s += m.renderStats()
	s += m.renderHelp()

	return s
}

// boxRow pads content to the box interior so the right border stays
// aligned whatever the content width is.
func boxRow(content string) string {
	pad := innerWidth - utf8.RuneCountInString(content)
	if pad < 0 {
		pad = 0
	}
	return "│ " + content + strings.Repeat(" ", pad) + " │\n"
}

func boxDivider() string {
	return "├" + strings.Repeat("─", innerWidth+2) + "┤\n"
}

// renderHeader renders the stream configuration.
func (m Model) renderHeader() string {
	title := "┌─ Hushwave "
	s := title + strings.Repeat("─", innerWidth+4-utf8.RuneCountInString(title)-1) + "┐\n"
	s += boxRow(fmt.Sprintf("Preset: %s", m.preset))
	s += boxRow(fmt.Sprintf("Stream: %d Hz, %d frames/block, stereo", m.sampleRate, m.blockSize))
	s += boxDivider()
	return s
}

// renderControls renders the amplitude bar and playback state.
func (m Model) renderControls() string {
	muteIcon := ""
	if m.muted {
		muteIcon = " (muted)"
	}

	warn := ""
	if m.amplitude > 0.5 {
		warn = " ⚠ protect your hearing"
	}

	bar := renderBar(int(m.amplitude*100), 100, 20)

	s := boxRow(fmt.Sprintf("State: %s", m.state))
	s += boxRow(fmt.Sprintf("Amplitude: [%s] %.2f%s%s", bar, m.amplitude, muteIcon, warn))
	return s
}

// renderStats renders playback diagnostics.
func (m Model) renderStats() string {
	return boxDivider() +
		boxRow(fmt.Sprintf("Glitches: %d underruns, %d generator faults", m.underruns, m.faults))
}

// renderHelp renders keyboard shortcuts.
func (m Model) renderHelp() string {
	return boxRow("↑/+:Louder  ↓/-:Softer  m:Mute  q:Quit") +
		"└" + strings.Repeat("─", innerWidth+2) + "┘\n"
}

// handleKey handles keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.controls.requestQuit()
		return m, tea.Quit
	case "up", "+", "=":
		m.controls.requestChange(AmplitudeChangeMsg{Delta: ampStep})
	case "down", "-":
		m.controls.requestChange(AmplitudeChangeMsg{Delta: -ampStep})
	case "m":
		m.controls.requestChange(AmplitudeChangeMsg{ToggleMute: true})
	}

	return m, nil
}

// applyStatus updates the model from a status message.
func (m *Model) applyStatus(msg StatusMsg) {
	if msg.Preset != "" {
		m.preset = msg.Preset
	}
	if msg.SampleRate != 0 {
		m.sampleRate = msg.SampleRate
		m.blockSize = msg.BlockSize
	}
	if msg.State != "" {
		m.state = msg.State
	}
	if msg.Amplitude != nil {
		m.amplitude = *msg.Amplitude
	}
	if msg.Muted != nil {
		m.muted = *msg.Muted
	}
	if msg.Underruns != 0 {
		m.underruns = msg.Underruns
	}
	if msg.Faults != 0 {
		m.faults = msg.Faults
	}
}

// StatusMsg updates TUI state.
type StatusMsg struct {
	Preset     string
	SampleRate int
	BlockSize  int
	State      string
	Amplitude  *float64
	Muted      *bool
	Underruns  int64
	Faults     int64
}

func renderBar(value, max, width int) string {
	filled := (value * width) / max
	bar := ""
	for i := 0; i < width; i++ {
		if i < filled {
			bar += "█"
		} else {
			bar += "░"
		}
	}
	return bar
}
