package components

import "github.com/charmbracelet/lipgloss"

// Shared colours; components cannot import the ui theme without a cycle
var (
	primaryColor   = lipgloss.AdaptiveColor{Light: "#3B82F6", Dark: "#60A5FA"}
	secondaryColor = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	selectedColor  = lipgloss.AdaptiveColor{Light: "#DBEAFE", Dark: "#1E3A8A"}
	successColor   = lipgloss.AdaptiveColor{Light: "#10B981", Dark: "#34D399"}
	warningColor   = lipgloss.AdaptiveColor{Light: "#F59E0B", Dark: "#FBBF24"}
	errorColor     = lipgloss.AdaptiveColor{Light: "#EF4444", Dark: "#F87171"}
	qcColor        = lipgloss.AdaptiveColor{Light: "#111827", Dark: "#F9FAFB"}
	rfColor        = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#10B981"}
)
