package mini

import (
	"bytes"
	"sync"
	"testing"

	"github.com/AlecAivazis/survey/v2"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/vidload/vidload/key"
	"github.com/vidload/vidload/loader"
	"github.com/vidload/vidload/media"
)

// autoPlayer reports every load as successful as soon as it is issued.
type autoPlayer struct {
	mu        sync.Mutex
	loads     int
	observers loader.Observers
	exited    chan struct{}
}

func (p *autoPlayer) CanPlayType(string) (bool, error) { return false, nil }
func (p *autoPlayer) Pause() error                      { return nil }
func (p *autoPlayer) Seek(float64) error                { return nil }
func (p *autoPlayer) Attach(media.Source) error         { return nil }
func (p *autoPlayer) Play() error                       { return nil }
func (p *autoPlayer) Start() error                      { return nil }
func (p *autoPlayer) Close() error                      { return nil }
func (p *autoPlayer) Wait() <-chan struct{}             { return p.exited }
func (p *autoPlayer) StartIPCTicker(func(int, int))     {}
func (p *autoPlayer) StopIPCTicker()                    {}

func (p *autoPlayer) Observe(o loader.Observers) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.observers = o
}

func (p *autoPlayer) Load() error {
	p.mu.Lock()
	p.loads++
	o := p.observers
	p.mu.Unlock()
	go o.OnLoadedData()
	return nil
}

// scripted answers prompts in order.
func scripted(answers ...interface{}) func(survey.Prompt, interface{}) error {
	return func(_ survey.Prompt, response interface{}) error {
		answer := answers[0]
		answers = answers[1:]
		switch r := response.(type) {
		case *string:
			*r = answer.(string)
		case *bool:
			*r = answer.(bool)
		}
		return nil
	}
}

func TestMini(t *testing.T) {
	Convey("Given the mini prompt", t, func() {
		viper.Set(key.PlayerFadeDelay, 60_000)

		var out bytes.Buffer
		p := &autoPlayer{exited: make(chan struct{})}
		m := newMini(&Options{Player: p}, &out)

		Convey("A rejected URL prints the error and prompts again", func() {
			m.ask = scripted("ftp://example.com/clip.mp4")
			So(m.handleState(), ShouldBeNil)
			So(m.state, ShouldEqual, inputState)
			So(out.String(), ShouldContainSubstring, loader.MsgUnsupportedFormat)
		})

		Convey("An MKV the player cannot decode is rejected", func() {
			m.ask = scripted("https://example.com/clip.mkv")
			So(m.handleState(), ShouldBeNil)
			So(out.String(), ShouldContainSubstring, loader.MsgUnsupportedContainer)
			So(p.loads, ShouldEqual, 0)
		})

		Convey("A loaded video offers another round", func() {
			m.ask = scripted("https://example.com/clip.mp4", false)
			So(m.handleState(), ShouldBeNil)
			So(m.state, ShouldEqual, waitState)

			So(m.handleState(), ShouldBeNil)
			So(m.state, ShouldEqual, againState)

			So(m.handleState(), ShouldBeNil)
			So(m.state, ShouldEqual, quitState)

			m.outMu.Lock()
			printed := out.String()
			m.outMu.Unlock()
			So(printed, ShouldContainSubstring, loader.MsgLoading)
			So(printed, ShouldContainSubstring, loader.MsgLoaded)
		})

		Convey("A player exit ends the wait", func() {
			m.state = waitState
			m.requestID = "gone"
			close(p.exited)
			So(m.handleState(), ShouldEqual, errPlayerExited)
		})
	})
}
