// Package tui provides the bubbletea menu picker of the interactive console.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// NoSelection is the choice of a menu that was quit.
const NoSelection = -1

// Menu is a single-choice list. Options can be picked with the arrow keys and
// enter, or directly by their 1-based number.
type Menu struct {
	keys     KeyMap
	help     help.Model
	theme    Theme
	title    string
	options  []string
	cursor   int
	choice   int
	quitting bool
}

// NewMenu creates a menu over options.
func NewMenu(title string, options []string) Menu {
	return Menu{
		keys:    DefaultKeyMap(),
		help:    help.New(),
		theme:   DefaultTheme,
		title:   title,
		options: options,
		choice:  NoSelection,
	}
}

// Init implements tea.Model.
func (m Menu) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.options) == 0 {
		if ok && key.Matches(keyMsg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Up):
		m.cursor = (m.cursor + len(m.options) - 1) % len(m.options)
	case key.Matches(keyMsg, m.keys.Down):
		m.cursor = (m.cursor + 1) % len(m.options)
	case key.Matches(keyMsg, m.keys.Home):
		m.cursor = 0
	case key.Matches(keyMsg, m.keys.End):
		m.cursor = len(m.options) - 1
	case key.Matches(keyMsg, m.keys.Select):
		m.choice = m.cursor
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	default:
		if n, ok := quickSelect(keyMsg, len(m.options)); ok {
			m.cursor = n
			m.choice = n
			return m, tea.Quit
		}
	}
	return m, nil
}

// quickSelect maps the digit keys 1-9 to option indexes.
func quickSelect(msg tea.KeyMsg, count int) (int, bool) {
	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
		return 0, false
	}
	r := msg.Runes[0]
	if r < '1' || r > '9' {
		return 0, false
	}
	n := int(r - '1')
	return n, n < count
}

// View implements tea.Model.
func (m Menu) View() string {
	if m.Done() {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.theme.Title.Render(m.title))
	b.WriteString("\n")
	for i, opt := range m.options {
		if i == m.cursor {
			b.WriteString(m.theme.Selected.Render(fmt.Sprintf("› %d. %s", i+1, opt)))
		} else {
			fmt.Fprintf(&b, "  %s %s", m.theme.Number.Render(fmt.Sprintf("%d.", i+1)), opt)
		}
		b.WriteString("\n")
	}
	b.WriteString(m.theme.Help.Render(m.help.ShortHelpView(m.keys.ShortHelp())))

	return m.theme.Box.Render(b.String())
}

// Done reports whether the menu has a choice or was quit.
func (m Menu) Done() bool {
	return m.quitting || m.choice != NoSelection
}

// Choice returns the selected index or NoSelection.
func (m Menu) Choice() int {
	return m.choice
}

// Cursor returns the highlighted index.
func (m Menu) Cursor() int {
	return m.cursor
}
