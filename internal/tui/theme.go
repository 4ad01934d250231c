package tui

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual style of the menu.
type Theme struct {
	Title    lipgloss.Style
	Normal   lipgloss.Style
	Selected lipgloss.Style
	Number   lipgloss.Style
	Help     lipgloss.Style
	Box      lipgloss.Style
}

// DefaultTheme is the default theme.
var DefaultTheme = Theme{
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#2EC4B6")).
		MarginBottom(1),
	Normal: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#fafafa")),
	Selected: lipgloss.NewStyle().
		Background(lipgloss.Color("#2EC4B6")).
		Foreground(lipgloss.Color("#1a1a1a")).
		Bold(true),
	Number: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#737373")),
	Help: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#737373")).
		MarginTop(1),
	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#404040")).
		Padding(1, 2),
}
