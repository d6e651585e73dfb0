package tui

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/viper"
	"github.com/vidload/vidload/constant"
	"github.com/vidload/vidload/key"
	"github.com/vidload/vidload/loader"
	"github.com/vidload/vidload/player"
	"github.com/vidload/vidload/status"
	"github.com/vidload/vidload/style"
	"github.com/vidload/vidload/util"
)

// statefulBubble holds the loader screen: the URL field, the status label and the playback progress.
type statefulBubble struct {
	state  state
	keymap *statefulKeymap

	// components
	inputC    textinput.Model
	spinnerC  spinner.Model
	progressC progress.Model
	helpC     help.Model

	player  player.Player
	handler *loader.Handler

	notice   status.Notice
	playback playback
	paused   bool
	lastURL  string

	noticeChannel   chan status.Notice
	progressChannel chan playback
	done            chan struct{}
	closeOnce       sync.Once

	showProgress bool
	lastError    error

	width, height int
}

func (b *statefulBubble) raiseError(err error) {
	b.lastError = err
	b.setState(errorState)
}

func (b *statefulBubble) setState(s state) {
	b.state = s
	b.keymap.setState(s)
}

// loading reports whether the current request is still waiting for the surface.
func (b *statefulBubble) loading() bool {
	return b.notice.Text == loader.MsgLoading && b.notice.Stage == status.Visible
}

func (b *statefulBubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()

	b.width = width - x
	b.height = height - y

	b.inputC.Width = util.Clamp(b.width-len(b.inputC.Prompt)-1, 10, b.width)
	b.progressC.Width = util.Clamp(b.width-16, 10, 80)
	b.helpC.Width = b.width
}

// close releases goroutines blocked on the bubble's channels.
func (b *statefulBubble) close() {
	b.closeOnce.Do(func() {
		close(b.done)
		if b.player != nil {
			b.player.StopIPCTicker()
		}
	})
}

func newBubble(options *Options) *statefulBubble {
	bubble := statefulBubble{
		keymap:          newStatefulKeymap(),
		player:          options.Player,
		noticeChannel:   make(chan status.Notice, 16),
		progressChannel: make(chan playback, 16),
		done:            make(chan struct{}),
		showProgress:    viper.GetBool(key.TUIShowProgress),
	}

	board := status.NewBoard(channelDisplay{notices: bubble.noticeChannel, done: bubble.done}, status.Clock{})
	bubble.handler = loader.New(
		options.Player,
		board,
		loader.Configured(progressReporter{updates: bubble.progressChannel, done: bubble.done}),
	)

	bubble.helpC = help.New()

	bubble.spinnerC = spinner.New()
	bubble.spinnerC.Spinner = spinner.Dot
	bubble.spinnerC.Style = lipgloss.NewStyle().Foreground(style.AccentColor)

	bubble.inputC = textinput.New()
	bubble.inputC.Placeholder = fmt.Sprintf("https://example.com/video.mp4 (v%s)", constant.Version)
	bubble.inputC.Prompt = "URL: "
	bubble.inputC.PromptStyle = lipgloss.NewStyle().Foreground(style.AccentColor)

	bubble.progressC = progress.New(progress.WithSolidFill(string(style.ProgressFill)))

	if w, h, err := util.TerminalSize(); err == nil {
		bubble.resize(w, h)
	}

	bubble.inputC.Focus()

	return &bubble
}
