// Package loader implements the playback request handler: it validates a URL,
// swaps the source of a media surface and reports the outcome as a status notice.
package loader

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vidload/vidload/log"
	"github.com/vidload/vidload/media"
	"github.com/vidload/vidload/metrics"
	"github.com/vidload/vidload/status"
)

// Notice texts.
const (
	MsgEmptyInput           = "Please enter a valid video URL."
	MsgLoading              = "Video is loading..."
	MsgLoaded               = "Video loaded successfully!"
	MsgUnsupportedContainer = "Loading video failed! Unsupported MKV format."
	MsgLoadFailed           = "Error loading video. Please check the URL."
)

// MsgUnsupportedFormat lists every accepted extension.
var MsgUnsupportedFormat = fmt.Sprintf("Invalid URL or unsupported video format. Supported formats: %s.", media.SupportedList())

// Observers are notified once about the outcome of the next load.
type Observers struct {
	OnLoadedData func()
	OnError      func(error)
}

// Surface is the playback element a handler drives.
type Surface interface {
	// CanPlayType reports whether the surface can decode the given content type.
	CanPlayType(mime string) (bool, error)
	Pause() error
	// Seek moves the playback position to an absolute offset in seconds.
	Seek(seconds float64) error
	// Attach replaces any previously attached source with src.
	Attach(src media.Source) error
	// Observe registers observers for the next Load, replacing earlier ones.
	Observe(Observers)
	Load() error
	Play() error
}

// Progress is the playback position indicator shown next to the surface.
type Progress interface {
	Reset()
}

type noProgress struct{}

func (noProgress) Reset() {}

// Options tune a Handler.
type Options struct {
	FadeDelay    time.Duration
	FadeDuration time.Duration
	// StrictMIME labels sources with the MIME type of their extension
	// instead of the generic video type.
	StrictMIME bool
	Progress   Progress
	// NewID generates request identifiers.
	NewID func() string
}

// Handler serves playback requests against a single surface and notice board.
type Handler struct {
	surface Surface
	board   *status.Board
	opts    Options

	mu      sync.Mutex
	current string
}

// New returns a handler driving surface and reporting on board.
func New(surface Surface, board *status.Board, opts Options) *Handler {
	if opts.Progress == nil {
		opts.Progress = noProgress{}
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	return &Handler{surface: surface, board: board, opts: opts}
}

// Submit handles one playback request. It returns the request identifier and,
// when the request is rejected before dispatch, an error wrapping one of the
// media sentinels. The load outcome is reported asynchronously on the board.
func (h *Handler) Submit(raw string) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.opts.NewID()
	h.current = id
	logger := log.WithFields(log.Fields{"request": id})

	req, err := media.Parse(raw)
	if err != nil {
		h.reject(id, err)
		return id, err
	}

	if req.NeedsCapabilityCheck() {
		ok, err := h.surface.CanPlayType(media.MatroskaMIME)
		if err != nil {
			logger.Warnf("capability query failed: %v", err)
		}
		if !ok {
			err = fmt.Errorf("%w: %s", media.ErrUnsupportedContainer, media.MatroskaMIME)
			h.reject(id, err)
			return id, err
		}
	}

	h.board.Post(id, status.Success, MsgLoading)

	src := req.Source(h.opts.StrictMIME)
	logger.WithFields(log.Fields{"src": src.URL, "type": src.Type}).Info("dispatching source")

	if err := h.dispatch(id, src); err != nil {
		logger.Errorf("dispatch: %v", err)
		err = fmt.Errorf("%w: %w", media.ErrMediaLoad, err)
		h.reject(id, err)
		return id, err
	}

	metrics.RecordDispatch(req.Format)
	return id, nil
}

// dispatch resets the surface and starts loading src. Observers are
// registered before Load so an immediate outcome is not lost.
func (h *Handler) dispatch(id string, src media.Source) error {
	if err := h.surface.Pause(); err != nil {
		return fmt.Errorf("pause: %w", err)
	}
	if err := h.surface.Seek(0); err != nil {
		return fmt.Errorf("seek: %w", err)
	}
	h.opts.Progress.Reset()

	if err := h.surface.Attach(src); err != nil {
		return fmt.Errorf("attach: %w", err)
	}

	var once sync.Once
	h.surface.Observe(Observers{
		OnLoadedData: func() { once.Do(func() { h.loaded(id) }) },
		OnError:      func(err error) { once.Do(func() { h.failed(id, err) }) },
	})

	if err := h.surface.Load(); err != nil {
		return fmt.Errorf("load: %w", err)
	}
	return nil
}

func (h *Handler) loaded(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.current != id {
		return
	}

	h.board.Post(id, status.Success, MsgLoaded)
	h.board.FadeOut(id, h.opts.FadeDelay, h.opts.FadeDuration)
	metrics.RecordOutcome(metrics.OutcomeLoaded)

	if err := h.surface.Play(); err != nil {
		log.WithFields(log.Fields{"request": id}).Warnf("play: %v", err)
	}
}

func (h *Handler) failed(id string, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.current != id {
		return
	}

	log.WithFields(log.Fields{"request": id}).Warnf("load failed: %v", err)
	h.board.Post(id, status.Error, MsgLoadFailed)
	metrics.RecordOutcome(metrics.OutcomeFailed)
}

func (h *Handler) reject(id string, err error) {
	h.board.Post(id, status.Error, Message(err))
	metrics.RecordOutcome(Outcome(err))
}

// Current returns the identifier of the most recent request.
func (h *Handler) Current() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}

// Message returns the notice text for a load error.
func Message(err error) string {
	switch {
	case errors.Is(err, media.ErrEmptyInput):
		return MsgEmptyInput
	case errors.Is(err, media.ErrUnsupportedFormat):
		return MsgUnsupportedFormat
	case errors.Is(err, media.ErrUnsupportedContainer):
		return MsgUnsupportedContainer
	default:
		return MsgLoadFailed
	}
}

// Outcome classifies a load error for metrics.
func Outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeLoaded
	case errors.Is(err, media.ErrEmptyInput):
		return metrics.OutcomeEmptyInput
	case errors.Is(err, media.ErrUnsupportedFormat):
		return metrics.OutcomeUnsupportedFormat
	case errors.Is(err, media.ErrUnsupportedContainer):
		return metrics.OutcomeUnsupportedContainer
	default:
		return metrics.OutcomeFailed
	}
}
