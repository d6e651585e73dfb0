package tui

import "github.com/vidload/vidload/status"

// playback is a position report from the surface, in whole seconds.
type playback struct {
	position, duration int
}

// channelDisplay forwards notices to the bubble. Sends are abandoned once the
// program has exited so the board never blocks on a dead UI.
type channelDisplay struct {
	notices chan<- status.Notice
	done    <-chan struct{}
}

func (d channelDisplay) Show(n status.Notice) {
	select {
	case d.notices <- n:
	case <-d.done:
	}
}

// progressReporter feeds playback positions to the progress bar.
type progressReporter struct {
	updates chan<- playback
	done    <-chan struct{}
}

// Reset rewinds the progress bar to zero.
func (p progressReporter) Reset() {
	p.send(playback{})
}

func (p progressReporter) send(pb playback) {
	select {
	case p.updates <- pb:
	case <-p.done:
	}
}
