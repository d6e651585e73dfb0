package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/vidload/vidload/log"
	"github.com/vidload/vidload/status"
	"github.com/vidload/vidload/util"
)

func (b *statefulBubble) Init() tea.Cmd {
	b.startTicker()
	return tea.Batch(textinput.Blink, b.waitForNotice(), b.waitForPlayback(), b.waitForPlayerExit())
}

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
		return b, nil
	case tea.KeyMsg:
		return b.updateKey(msg)
	case submittedMsg:
		if msg.err != nil {
			log.WithFields(log.Fields{"request": msg.id}).Debugf("rejected: %v", msg.err)
			return b, nil
		}
		b.lastURL = msg.url
		b.paused = false
		return b, nil
	case noticeMsg:
		wasLoading := b.loading()
		b.notice = status.Notice(msg)
		if b.loading() && !wasLoading {
			return b, tea.Batch(b.waitForNotice(), b.spinnerC.Tick)
		}
		return b, b.waitForNotice()
	case playbackMsg:
		b.playback = playback(msg)
		var percent float64
		if b.playback.duration > 0 {
			percent = util.Clamp(float64(b.playback.position)/float64(b.playback.duration), 0, 1)
		}
		return b, tea.Batch(b.progressC.SetPercent(percent), b.waitForPlayback())
	case progress.FrameMsg:
		model, cmd := b.progressC.Update(msg)
		b.progressC = model.(progress.Model)
		return b, cmd
	case spinner.TickMsg:
		if !b.loading() {
			return b, nil
		}
		var cmd tea.Cmd
		b.spinnerC, cmd = b.spinnerC.Update(msg)
		return b, cmd
	case controlMsg:
		if msg.err != nil {
			log.Warnf("player control: %v", msg.err)
			return b, nil
		}
		b.paused = msg.paused
		return b, nil
	case playerExitedMsg:
		b.raiseError(errPlayerExited)
		return b, nil
	}

	var cmd tea.Cmd
	b.inputC, cmd = b.inputC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, b.keymap.forceQuit), key.Matches(msg, b.keymap.quit):
		return b, tea.Quit
	}

	if b.state == errorState {
		return b, nil
	}

	switch {
	case key.Matches(msg, b.keymap.confirm):
		return b, b.submit(b.inputC.Value())
	case key.Matches(msg, b.keymap.playPause):
		return b, b.togglePause()
	case key.Matches(msg, b.keymap.replay):
		return b, b.replay()
	case key.Matches(msg, b.keymap.openURL):
		return b, b.openURL()
	case key.Matches(msg, b.keymap.showHelp):
		b.helpC.ShowAll = !b.helpC.ShowAll
		return b, nil
	}

	var cmd tea.Cmd
	b.inputC, cmd = b.inputC.Update(msg)
	return b, cmd
}
