// Package cli provides styled terminal output and interactive prompts.
package cli

import (
	"github.com/charmbracelet/lipgloss"
)

// Ledger palette.
var (
	colorAccent  = lipgloss.Color("#2EC4B6")
	colorGood    = lipgloss.Color("#4ECDC4")
	colorCaution = lipgloss.Color("#FFE66D")
	colorBad     = lipgloss.Color("#FF6B6B")
	colorNote    = lipgloss.Color("#95E1D3")
	colorMuted   = lipgloss.Color("#666666")
	colorIncome  = lipgloss.Color("#6BCB77")
	colorExpense = lipgloss.Color("#FF8C42")
)

var (
	// TitleStyle renders screen and chart titles.
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent).MarginBottom(1)
	// SuccessStyle, WarningStyle and ErrorStyle color status text and budget states.
	SuccessStyle = lipgloss.NewStyle().Foreground(colorGood)
	WarningStyle = lipgloss.NewStyle().Foreground(colorCaution)
	ErrorStyle   = lipgloss.NewStyle().Foreground(colorBad)
	// SubtleStyle renders placeholders such as the uncategorized label.
	SubtleStyle = lipgloss.NewStyle().Foreground(colorMuted)
	BoldStyle   = lipgloss.NewStyle().Bold(true)
	// IncomeStyle and ExpenseStyle color amounts and chart bars by record type.
	IncomeStyle  = lipgloss.NewStyle().Foreground(colorIncome)
	ExpenseStyle = lipgloss.NewStyle().Foreground(colorExpense)
	// TableHeaderStyle renders the header row of record and budget tables.
	TableHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))

	infoStyle   = lipgloss.NewStyle().Foreground(colorNote)
	promptStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	boxStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#333")).
			Padding(1, 2)
)

// Section icons.
const (
	LedgerIcon = "📒"
	ChartIcon  = "📊"
	BudgetIcon = "💰"
)

// withIcon renders text behind a status icon.
func withIcon(style lipgloss.Style, icon, text string) string {
	return style.Render(icon + " " + text)
}

// FormatSuccess reports a saved record, budget or import.
func FormatSuccess(message string) string { return withIcon(SuccessStyle, "✓", message) }

// FormatError reports a rejected input or failed action.
func FormatError(message string) string { return withIcon(ErrorStyle, "✗", message) }

// FormatWarning reports a budget nearing its limit.
func FormatWarning(message string) string { return withIcon(WarningStyle, "⚠️", message) }

// FormatInfo reports empty results and other notes.
func FormatInfo(message string) string { return withIcon(infoStyle, "ℹ️", message) }

// FormatTitle renders a menu or screen title.
func FormatTitle(title string) string {
	return TitleStyle.Render(LedgerIcon + " " + title)
}

// FormatPrompt renders a question waiting for input.
func FormatPrompt(prompt string) string {
	return promptStyle.Render(prompt + " → ")
}

// RenderBox renders content under a title inside a rounded border.
func RenderBox(title, content string) string {
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		TitleStyle.UnsetMargins().Render(title),
		content,
	))
}
