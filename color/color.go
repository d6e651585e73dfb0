// Package color names the terminal colors used across the CLI output.
package color

import "github.com/charmbracelet/lipgloss"

// New wraps a color value (ANSI index or hex) as a lipgloss.Color.
func New(value string) lipgloss.Color {
	return lipgloss.Color(value)
}

// ANSI colors, so output follows the user's terminal theme.
var (
	Red    = New("1")
	Green  = New("2")
	Yellow = New("3")
	Blue   = New("4")
	Purple = New("5")
	Cyan   = New("6")

	HiRed    = New("9")
	HiPurple = New("13")
)

// Orange highlights the primary key binding.
var Orange = New("#ffb703")
