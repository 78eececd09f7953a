// Package atoms provides low-level TUI building blocks.
package atoms

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Spinner wraps bubbles/spinner with a label shown next to it.
type Spinner struct {
	Model spinner.Model
	Label string
}

// NewSpinner creates a spinner with the points pattern.
func NewSpinner(color lipgloss.AdaptiveColor, label string) Spinner {
	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = lipgloss.NewStyle().Foreground(color)
	return Spinner{Model: s, Label: label}
}

// Tick returns the spinner tick command.
func (s Spinner) Tick() tea.Msg {
	return s.Model.Tick()
}

// Update handles spinner messages.
func (s Spinner) Update(msg tea.Msg) (Spinner, tea.Cmd) {
	var cmd tea.Cmd
	s.Model, cmd = s.Model.Update(msg)
	return s, cmd
}

// View renders the spinner frame and its label.
func (s Spinner) View() string {
	if s.Label == "" {
		return s.Model.View()
	}
	return s.Model.View() + " " + s.Label
}
