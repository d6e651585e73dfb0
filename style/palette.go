package style

import "github.com/charmbracelet/lipgloss"

var (
	Text    = lipgloss.Color("#cdd6f4")
	Overlay = lipgloss.Color("#6c7086")
	Surface = lipgloss.Color("#313244")

	Mauve = lipgloss.Color("#cba6f7")
	Red   = lipgloss.Color("#f38ba8")
	Green = lipgloss.Color("#a6e3a1")
	Blue  = lipgloss.Color("#89b4fa")

	AccentColor  = Mauve
	SuccessColor = Green
	ErrorColor   = Red
	HiRed        = Red
	FaintColor   = Overlay
	BorderColor  = Surface
	ProgressFill = Blue
)
