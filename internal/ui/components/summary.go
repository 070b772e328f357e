package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// SummaryBox renders a titled block of key-value lines
type SummaryBox struct {
	Title   string
	Content []string
	Width   int
}

// NewSummaryBox creates a new summary box
func NewSummaryBox(title string, width int) *SummaryBox {
	return &SummaryBox{Title: title, Width: width}
}

// AddLine adds a line to the summary
func (s *SummaryBox) AddLine(line string) {
	s.Content = append(s.Content, line)
}

// AddKeyValue adds a key-value pair to the summary
func (s *SummaryBox) AddKeyValue(key, value string) {
	s.Content = append(s.Content, fmt.Sprintf("%-16s %s", key+":", value))
}

// Render renders the summary box
func (s *SummaryBox) Render() string {
	headerStyle := lipgloss.NewStyle().Foreground(primaryColor).Bold(true)
	bodyStyle := lipgloss.NewStyle().Foreground(secondaryColor)

	content := make([]string, 0, len(s.Content)+2)
	content = append(content, headerStyle.Render(s.Title), "")
	for _, line := range s.Content {
		content = append(content, bodyStyle.Render(line))
	}

	box := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(secondaryColor).Padding(0, 1)
	return box.Width(s.Width).Render(lipgloss.JoinVertical(lipgloss.Left, content...))
}
