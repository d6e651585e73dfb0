package status

import (
	"sync"
	"time"
)

// Timer is a pending scheduled callback.
type Timer interface {
	Stop() bool
}

// Scheduler runs callbacks after a delay.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// Clock schedules with the runtime timer.
type Clock struct{}

func (Clock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Board owns the single notice label. Posting a notice cancels every timer
// scheduled for the previous one, and timer callbacks re-check that the
// notice they were scheduled for is still current before touching the label.
type Board struct {
	display   Display
	scheduler Scheduler

	mu      sync.Mutex
	current Notice
	seq     uint64
	timers  []Timer
}

// NewBoard returns a board rendering on display. A nil scheduler uses Clock.
func NewBoard(display Display, scheduler Scheduler) *Board {
	if scheduler == nil {
		scheduler = Clock{}
	}
	return &Board{display: display, scheduler: scheduler}
}

// Post replaces the current notice with a visible one.
func (b *Board) Post(requestID string, kind Kind, text string) Notice {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.stopTimers()
	b.seq++
	b.current = Notice{RequestID: requestID, Kind: kind, Text: text, Stage: Visible}
	b.display.Show(b.current)
	return b.current
}

// FadeOut schedules the current notice to start fading after delay and to be
// hidden once the fade has lasted for duration. It does nothing when the
// current notice does not belong to requestID.
func (b *Board) FadeOut(requestID string, delay, duration time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.current.RequestID != requestID {
		return
	}

	seq := b.seq
	b.timers = append(b.timers, b.scheduler.AfterFunc(delay, func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		if !b.advance(seq, Fading) {
			return
		}
		b.timers = append(b.timers, b.scheduler.AfterFunc(duration, func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			b.advance(seq, Hidden)
		}))
	}))
}

// Current returns the notice on the label.
func (b *Board) Current() Notice {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current
}

// advance moves the notice posted as seq to stage. Callers hold mu.
func (b *Board) advance(seq uint64, stage Stage) bool {
	if b.seq != seq {
		return false
	}
	b.current.Stage = stage
	b.display.Show(b.current)
	return true
}

func (b *Board) stopTimers() {
	for _, t := range b.timers {
		t.Stop()
	}
	b.timers = nil
}
