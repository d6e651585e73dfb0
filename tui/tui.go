// Package tui provides the primary terminal user interface implementation.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/vidload/vidload/player"
)

// Options encapsulates the runtime configuration for the terminal user interface.
type Options struct {
	// Player is the started surface videos are loaded into.
	Player player.Player
}

// Run initializes and executes the primary Bubble Tea application loop.
func Run(options *Options) error {
	bubble := newBubble(options)
	defer bubble.close()

	_, err := tea.NewProgram(bubble, tea.WithAltScreen()).Run()
	return err
}
