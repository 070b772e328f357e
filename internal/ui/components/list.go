package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ListItem represents an item in a list
type ListItem struct {
	ID          string
	Title       string
	Description string
	Status      string // success|warning|error|info
	Icon        string
	Index       int // position in the caller's data
}

// List represents a navigable, searchable list component
type List struct {
	Title         string
	Items         []ListItem
	Selected      int
	Width         int
	Height        int
	ShowNumbers   bool
	searchQuery   string
	filteredItems []int
}

// NewList creates a new list component
func NewList(title string, width, height int) *List {
	return &List{
		Title:       title,
		Width:       width,
		Height:      height,
		ShowNumbers: true,
	}
}

// SetItems replaces all items and resets the selection
func (l *List) SetItems(items []ListItem) {
	l.Items = items
	l.Selected = 0
	l.updateFilter()
}

// SelectedItem returns the currently selected item
func (l *List) SelectedItem() (ListItem, bool) {
	if l.Selected < 0 || l.Selected >= len(l.filteredItems) {
		return ListItem{}, false
	}
	return l.Items[l.filteredItems[l.Selected]], true
}

// Visible returns the number of items passing the search filter
func (l *List) Visible() int {
	return len(l.filteredItems)
}

func (l *List) MoveUp() {
	if l.Selected > 0 {
		l.Selected--
	}
}

func (l *List) MoveDown() {
	if l.Selected < len(l.filteredItems)-1 {
		l.Selected++
	}
}

// SetSearch filters items on ID, title and description
func (l *List) SetSearch(query string) {
	l.searchQuery = query
	l.Selected = 0
	l.updateFilter()
}

// Search returns the active search query
func (l *List) Search() string {
	return l.searchQuery
}

func (l *List) updateFilter() {
	l.filteredItems = l.filteredItems[:0]
	query := strings.ToLower(l.searchQuery)
	for i := range l.Items {
		if query == "" || matchesSearch(&l.Items[i], query) {
			l.filteredItems = append(l.filteredItems, i)
		}
	}
}

func matchesSearch(item *ListItem, query string) bool {
	return strings.Contains(strings.ToLower(item.Title), query) ||
		strings.Contains(strings.ToLower(item.Description), query) ||
		strings.Contains(strings.ToLower(item.ID), query)
}

// Render renders the visible window of the list
func (l *List) Render() string {
	headerStyle := lipgloss.NewStyle().Foreground(primaryColor).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(secondaryColor)

	content := []string{headerStyle.Render(l.Title)}
	if l.searchQuery != "" {
		content = append(content, mutedStyle.Render(fmt.Sprintf("Search: %s (%d results)", l.searchQuery, len(l.filteredItems))))
	}
	content = append(content, "")

	maxVisible := l.Height - 4
	if maxVisible < 1 {
		maxVisible = 1
	}
	start := 0
	if l.Selected >= maxVisible {
		start = l.Selected - maxVisible + 1
	}
	end := min(start+maxVisible, len(l.filteredItems))

	for i := start; i < end; i++ {
		content = append(content, l.renderItem(&l.Items[l.filteredItems[i]], i+1, i == l.Selected))
	}

	if len(l.filteredItems) > maxVisible {
		content = append(content, "", mutedStyle.Render(fmt.Sprintf("(%d-%d of %d)", start+1, end, len(l.filteredItems))))
	}

	panel := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(secondaryColor)
	return panel.Width(l.Width).Render(lipgloss.JoinVertical(lipgloss.Left, content...))
}

func (l *List) renderItem(item *ListItem, number int, selected bool) string {
	var parts []string
	if l.ShowNumbers {
		parts = append(parts, fmt.Sprintf("%2d.", number))
	}
	if item.Icon != "" {
		parts = append(parts, item.Icon)
	}
	title := item.Title
	if item.Description != "" {
		title += " - " + item.Description
	}
	parts = append(parts, title)

	style := lipgloss.NewStyle().Foreground(secondaryColor)
	switch {
	case selected:
		style = lipgloss.NewStyle().Background(selectedColor).Foreground(primaryColor)
	case item.Status == "success":
		style = style.Foreground(successColor)
	case item.Status == "warning":
		style = style.Foreground(warningColor)
	case item.Status == "error":
		style = style.Foreground(errorColor)
	case item.Status == "info":
		style = style.Foreground(primaryColor)
	}

	return style.Width(max(l.Width-4, 1)).Render(strings.Join(parts, " "))
}
