package tui

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
)

// ErrQuit is returned by Select when the menu is closed without a choice.
var ErrQuit = errors.New("menu closed")

// Select runs a menu on the given terminal streams and returns the chosen
// option index.
func Select(ctx context.Context, in io.Reader, out io.Writer, title string, options []string) (int, error) {
	program := tea.NewProgram(NewMenu(title, options),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)

	final, err := program.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return NoSelection, ctxErr
	}
	if err != nil {
		return NoSelection, fmt.Errorf("menu failed: %w", err)
	}

	menu, ok := final.(Menu)
	if !ok || menu.Choice() == NoSelection {
		return NoSelection, ErrQuit
	}
	return menu.Choice(), nil
}
