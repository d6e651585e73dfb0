package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/vidload/vidload/log"
	"github.com/vidload/vidload/open"
	"github.com/vidload/vidload/status"
)

var errPlayerExited = errors.New("player window was closed")

type (
	noticeMsg   status.Notice
	playbackMsg playback

	submittedMsg struct {
		id  string
		url string
		err error
	}

	playerExitedMsg struct{}

	// controlMsg carries the result of a pause, resume or replay command.
	controlMsg struct {
		paused bool
		err    error
	}
)

// submit hands the URL to the handler off the update loop. The board renders
// through the notice channel while the handler holds its lock, so the call
// must not run on the goroutine that drains that channel.
func (b *statefulBubble) submit(url string) tea.Cmd {
	return func() tea.Msg {
		id, err := b.handler.Submit(url)
		return submittedMsg{id: id, url: url, err: err}
	}
}

func (b *statefulBubble) waitForNotice() tea.Cmd {
	return func() tea.Msg {
		select {
		case n := <-b.noticeChannel:
			return noticeMsg(n)
		case <-b.done:
			return nil
		}
	}
}

func (b *statefulBubble) waitForPlayback() tea.Cmd {
	return func() tea.Msg {
		select {
		case pb := <-b.progressChannel:
			return playbackMsg(pb)
		case <-b.done:
			return nil
		}
	}
}

func (b *statefulBubble) waitForPlayerExit() tea.Cmd {
	if b.player == nil {
		return nil
	}

	exited := b.player.Wait()
	return func() tea.Msg {
		select {
		case <-exited:
			return playerExitedMsg{}
		case <-b.done:
			return nil
		}
	}
}

// startTicker polls the surface for its playback position.
func (b *statefulBubble) startTicker() {
	if b.player == nil || !b.showProgress {
		return
	}

	reporter := progressReporter{updates: b.progressChannel, done: b.done}
	b.player.StartIPCTicker(func(pos, dur int) {
		reporter.send(playback{position: pos, duration: dur})
	})
}

func (b *statefulBubble) togglePause() tea.Cmd {
	if b.player == nil {
		return nil
	}

	paused := !b.paused
	return func() tea.Msg {
		var err error
		if paused {
			err = b.player.Pause()
		} else {
			err = b.player.Play()
		}
		return controlMsg{paused: paused, err: err}
	}
}

func (b *statefulBubble) replay() tea.Cmd {
	if b.player == nil || b.lastURL == "" {
		return nil
	}

	return func() tea.Msg {
		if err := b.player.Seek(0); err != nil {
			return controlMsg{err: err}
		}
		return controlMsg{err: b.player.Play()}
	}
}

func (b *statefulBubble) openURL() tea.Cmd {
	if b.lastURL == "" {
		return nil
	}

	url := b.lastURL
	return func() tea.Msg {
		if err := open.Start(url); err != nil {
			log.Warnf("open %s: %v", url, err)
		}
		return nil
	}
}
