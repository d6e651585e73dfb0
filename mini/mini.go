// Package mini implements a lightweight line-prompt interface for loading videos.
package mini

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/AlecAivazis/survey/v2"
	"github.com/vidload/vidload/loader"
	"github.com/vidload/vidload/player"
	"github.com/vidload/vidload/status"
	"github.com/vidload/vidload/style"
)

// Options encapsulates the runtime configuration for the mini interface.
type Options struct {
	Player player.Player
}

type mini struct {
	state state

	player  player.Player
	handler *loader.Handler

	out   io.Writer
	outMu sync.Mutex
	ask   func(p survey.Prompt, response interface{}) error

	// outcomes receives terminal notices: anything other than the loading notice.
	outcomes  chan status.Notice
	requestID string
}

func newMini(options *Options, out io.Writer) *mini {
	m := &mini{
		state:    inputState,
		player:   options.Player,
		out:      out,
		outcomes: make(chan status.Notice, 1),
		ask: func(p survey.Prompt, response interface{}) error {
			return survey.AskOne(p, response)
		},
	}

	board := status.NewBoard(status.DisplayFunc(m.show), status.Clock{})
	m.handler = loader.New(options.Player, board, loader.Configured(nil))
	return m
}

// Run prompts for URLs until the user quits or the player exits.
func Run(options *Options) error {
	m := newMini(options, os.Stdout)

	for m.state != quitState {
		if err := m.handleState(); err != nil {
			return err
		}
	}

	return nil
}

// show prints visible notices. Fade and hide stages have no line-mode equivalent.
func (m *mini) show(n status.Notice) {
	if n.Stage != status.Visible {
		return
	}

	m.outMu.Lock()
	fmt.Fprintln(m.out, style.NoticeLine(n))
	m.outMu.Unlock()

	if n.Text == loader.MsgLoading {
		return
	}

	// keep only the newest outcome
	select {
	case <-m.outcomes:
	default:
	}
	m.outcomes <- n
}
