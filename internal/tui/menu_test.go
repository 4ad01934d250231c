package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

func press(t *testing.T, m Menu, keys ...string) (Menu, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var updated tea.Model
		updated, cmd = m.Update(keyMsg(k))
		var ok bool
		m, ok = updated.(Menu)
		require.True(t, ok)
	}
	return m, cmd
}

var options = []string{"Add record", "View records", "Statistics", "Exit"}

func TestMenu_Navigation(t *testing.T) {
	tests := []struct {
		name       string
		keys       []string
		wantCursor int
	}{
		{name: "down", keys: []string{"down"}, wantCursor: 1},
		{name: "j twice", keys: []string{"j", "j"}, wantCursor: 2},
		{name: "up wraps to last", keys: []string{"k"}, wantCursor: 3},
		{name: "down wraps to first", keys: []string{"G", "down"}, wantCursor: 0},
		{name: "home", keys: []string{"down", "down", "g"}, wantCursor: 0},
		{name: "unhandled key", keys: []string{"x"}, wantCursor: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, cmd := press(t, NewMenu("Menu", options), tt.keys...)
			assert.Equal(t, tt.wantCursor, m.Cursor())
			assert.False(t, m.Done())
			assert.Nil(t, cmd)
		})
	}
}

func TestMenu_Select(t *testing.T) {
	m, cmd := press(t, NewMenu("Menu", options), "down", "down", "enter")

	assert.True(t, m.Done())
	assert.Equal(t, 2, m.Choice())
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Empty(t, m.View())
}

func TestMenu_QuickSelect(t *testing.T) {
	m, cmd := press(t, NewMenu("Menu", options), "4")
	assert.Equal(t, 3, m.Choice())
	assert.NotNil(t, cmd)

	m, cmd = press(t, NewMenu("Menu", options), "9")
	assert.Equal(t, NoSelection, m.Choice())
	assert.Nil(t, cmd)
}

func TestMenu_Quit(t *testing.T) {
	for _, k := range []string{"q", "esc"} {
		t.Run(k, func(t *testing.T) {
			m, cmd := press(t, NewMenu("Menu", options), k)
			assert.True(t, m.Done())
			assert.Equal(t, NoSelection, m.Choice())
			assert.NotNil(t, cmd)
		})
	}
}

func TestMenu_Empty(t *testing.T) {
	m, cmd := press(t, NewMenu("Menu", nil), "enter", "down")
	assert.False(t, m.Done())
	assert.Nil(t, cmd)

	m, _ = press(t, m, "q")
	assert.True(t, m.Done())
}

func TestMenu_View(t *testing.T) {
	m, _ := press(t, NewMenu("Main menu", options), "down")

	view := m.View()
	assert.Contains(t, view, "Main menu")
	assert.Contains(t, view, "› 2. View records")
	assert.Contains(t, view, "1. Add record")
	assert.Contains(t, view, "quit")
}
