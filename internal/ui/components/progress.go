package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var spinnerFrames = []rune("⠋⠙⠹⠸⠼⠴⠦⠧⠇⠏")

// Spinner is an indeterminate progress indicator
type Spinner struct {
	Frame int
	Label string
}

// NewSpinner creates a new spinner
func NewSpinner(label string) *Spinner {
	return &Spinner{Label: label}
}

// Tick advances the spinner animation
func (s *Spinner) Tick() {
	s.Frame = (s.Frame + 1) % len(spinnerFrames)
}

// Render renders the spinner
func (s *Spinner) Render() string {
	spinner := lipgloss.NewStyle().Foreground(successColor).Bold(true).Render(string(spinnerFrames[s.Frame]))
	if s.Label != "" {
		return fmt.Sprintf("%s %s", spinner, s.Label)
	}
	return spinner
}
