package mini

import (
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/vidload/vidload/log"
	"github.com/vidload/vidload/media"
	"github.com/vidload/vidload/style"
)

type state int

const (
	inputState state = iota + 1
	waitState
	againState
	quitState
)

var errPlayerExited = errors.New("player exited")

func (m *mini) handleState() error {
	switch m.state {
	case inputState:
		return m.handleInputState()
	case waitState:
		return m.handleWaitState()
	case againState:
		return m.handleAgainState()
	}

	return nil
}

func (m *mini) handleInputState() error {
	m.title("Load Video")

	var url string
	err := m.ask(&survey.Input{
		Message: "Video URL:",
		Help:    "Supported formats: " + media.SupportedList(),
	}, &url)
	if err != nil {
		return err
	}

	id, err := m.handler.Submit(url)
	if err != nil {
		log.WithFields(log.Fields{"request": id}).Debugf("rejected: %v", err)
		return nil
	}

	m.requestID = id
	m.state = waitState
	return nil
}

// handleWaitState blocks until the current request has a terminal notice.
func (m *mini) handleWaitState() error {
	var exited <-chan struct{}
	if m.player != nil {
		exited = m.player.Wait()
	}

	for {
		select {
		case n := <-m.outcomes:
			if n.RequestID != m.requestID {
				continue
			}
			if n.IsError() {
				m.state = inputState
			} else {
				m.state = againState
			}
			return nil
		case <-exited:
			return errPlayerExited
		}
	}
}

func (m *mini) handleAgainState() error {
	again := true
	err := m.ask(&survey.Confirm{
		Message: "Load another video?",
		Default: true,
	}, &again)
	if err != nil {
		return err
	}

	if again {
		m.state = inputState
	} else {
		m.state = quitState
	}
	return nil
}

func (m *mini) title(text string) {
	m.outMu.Lock()
	defer m.outMu.Unlock()
	fmt.Fprintln(m.out, style.Title(text))
}
