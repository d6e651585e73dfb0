package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wrap"
	"github.com/vidload/vidload/color"
	"github.com/vidload/vidload/icon"
	"github.com/vidload/vidload/style"
)

var paddingStyle = lipgloss.NewStyle().Padding(1, 2)

func (b *statefulBubble) View() string {
	switch b.state {
	case errorState:
		return b.viewError()
	default:
		return b.viewInput()
	}
}

func (b *statefulBubble) viewInput() string {
	lines := []string{
		style.Title("Load Video"),
		"",
		b.inputC.View(),
		"",
		b.viewNotice(),
	}

	if b.showProgress {
		lines = append(lines, "", b.viewProgress())
	}

	if b.lastURL != "" {
		playing := fmt.Sprintf("%s %s", icon.Get(icon.Video), style.Fg(color.Purple)(b.lastURL))
		if b.paused {
			playing += style.Faint(" (paused)")
		}
		if b.width > 0 {
			playing = truncate.StringWithTail(playing, uint(b.width), "…")
		}
		lines = append(lines, "", playing)
	}

	return b.renderLines(true, lines)
}

// viewNotice renders the status label. Hidden notices leave an empty line.
func (b *statefulBubble) viewNotice() string {
	text := style.Notice(b.notice)
	if text == "" {
		return ""
	}

	if b.loading() {
		text = b.spinnerC.View() + " " + text
	}

	if b.width > 0 {
		text = wrap.String(text, b.width)
	}
	return text
}

func (b *statefulBubble) viewProgress() string {
	return fmt.Sprintf(
		"%s %s",
		b.progressC.View(),
		style.Faint(clock(b.playback.position)+" / "+clock(b.playback.duration)),
	)
}

func (b *statefulBubble) viewError() string {
	errorBody := lipgloss.NewStyle().Foreground(style.ErrorColor).Bold(true).Render(b.lastError.Error())
	if b.width > 0 {
		errorBody = wrap.String(errorBody, b.width)
	}
	return b.renderLines(
		true,
		[]string{
			style.ErrorTitle("Error"),
			"",
			icon.Get(icon.Fail) + " The player stopped:",
			"",
			errorBody,
		},
	)
}

func (b *statefulBubble) renderLines(addHelp bool, lines []string) string {
	h := strings.Count(strings.Join(lines, "\n"), "\n") + 1
	l := strings.Join(lines, "\n")
	if addHelp {
		if b.height > h {
			l += strings.Repeat("\n", b.height-h)
		}
		l += b.helpC.View(b.keymap)
	}

	return paddingStyle.Render(l)
}

// clock formats seconds as m:ss.
func clock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
