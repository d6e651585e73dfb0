// Package style provides a functional API for composing and applying lipgloss-based TUI styles.
package style

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/vidload/vidload/color"
	"github.com/vidload/vidload/icon"
	"github.com/vidload/vidload/status"
)

// New returns an empty lipgloss.Style used as a foundation for visual composition.
func New() lipgloss.Style {
	return lipgloss.NewStyle()
}

// Colored initializes a new style with the specified foreground and background colors.
func Colored(fg, bg lipgloss.Color) lipgloss.Style {
	return New().Foreground(fg).Background(bg)
}

// Fg returns a rendering function that applies the specified foreground color to a string.
func Fg(c lipgloss.Color) func(string) string {
	return func(s string) string { return Colored(c, "").Render(s) }
}

var (
	Faint  = func(s string) string { return New().Faint(true).Render(s) }
	Bold   = func(s string) string { return New().Bold(true).Render(s) }
	Italic = func(s string) string { return New().Italic(true).Render(s) }
)

// Title renders a padded banner.
var Title = func(s string) string {
	return Colored(color.New("230"), color.New("62")).Padding(0, 1).Render(s)
}

// ErrorTitle renders a banner using error colors.
var ErrorTitle = func(s string) string {
	return Colored(color.New("230"), color.Red).Padding(0, 1).Render(s)
}

// Notice label styles, mirroring the success, error and fade-out classes of the label.
var (
	noticeSuccess = New().Foreground(SuccessColor).Bold(true)
	noticeError   = New().Foreground(ErrorColor).Bold(true)
	noticeFaded   = New().Foreground(FaintColor).Faint(true)
)

// Notice renders a notice according to its kind and lifecycle stage.
// Hidden notices render as an empty string.
func Notice(n status.Notice) string {
	if n.Stage == status.Hidden || n.Text == "" {
		return ""
	}

	s := noticeSuccess
	if n.IsError() {
		s = noticeError
	}
	if n.Stage == status.Fading {
		s = noticeFaded
	}
	return s.Render(n.Text)
}

// NoticeLine prefixes a rendered notice with the icon of its kind, for line-oriented output.
func NoticeLine(n status.Notice) string {
	i := icon.Success
	if n.IsError() {
		i = icon.Fail
	}
	return icon.Get(i) + " " + Notice(n)
}
