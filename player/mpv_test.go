package player

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/vidload/vidload/loader"
	"github.com/vidload/vidload/media"
)

// fakeMPV speaks enough of mpv's JSON-IPC protocol for the surface tests.
type fakeMPV struct {
	listener net.Listener
	path     string

	mu       sync.Mutex
	commands [][]interface{}
	props    map[string]interface{}
	// preamble is written before every reply, mimicking interleaved events.
	preamble string
	entries  int
}

func newFakeMPV(t *testing.T) *fakeMPV {
	dir, err := os.MkdirTemp("", "vl")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.RemoveAll(dir) })

	path := filepath.Join(dir, "mpv.sock")
	l, err := net.Listen("unix", path)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = l.Close() })

	f := &fakeMPV{
		listener: l,
		path:     path,
		props: map[string]interface{}{
			"demuxer-lavf-list": []interface{}{"aac", "matroska,webm", "mov,mp4,m4a,3gp,3g2,mj2", "ogg"},
			"pid":               float64(42),
		},
	}
	go f.serve()
	return f
}

func (f *fakeMPV) serve() {
	for {
		conn, err := f.listener.Accept()
		if err != nil {
			return
		}
		go f.handle(conn)
	}
}

func (f *fakeMPV) handle(conn net.Conn) {
	defer conn.Close()
	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		var cmd ipcCommand
		if err := json.Unmarshal(scanner.Bytes(), &cmd); err != nil {
			return
		}

		f.mu.Lock()
		f.commands = append(f.commands, cmd.Command)
		reply := map[string]interface{}{"error": "success"}
		switch cmd.Command[0] {
		case "get_property":
			if v, ok := f.props[cmd.Command[1].(string)]; ok {
				reply["data"] = v
			} else {
				reply["error"] = errPropertyUnavailable
			}
		case "set_property":
			f.props[cmd.Command[1].(string)] = cmd.Command[2]
		case "loadfile":
			// playlist entries count up from 7 like a player that already played a few files
			f.entries++
			reply["data"] = map[string]interface{}{"playlist_entry_id": float64(6 + f.entries)}
		}
		preamble := f.preamble
		f.mu.Unlock()

		b, _ := json.Marshal(reply)
		_, _ = conn.Write([]byte(preamble + string(b) + "\n"))
	}
}

func (f *fakeMPV) names() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, c := range f.commands {
		out = append(out, strings.TrimSpace(fmt.Sprintln(c...)))
	}
	return out
}

func TestIPC(t *testing.T) {
	Convey("Given an mpv IPC socket", t, func() {
		fake := newFakeMPV(t)
		m := NewMPV("")
		m.socketPath = fake.path

		Convey("Commands round trip", func() {
			So(m.IsRunning(), ShouldBeFalse) // exited channel starts closed
			data, err := m.sendCommand("get_property", "pid")
			So(err, ShouldBeNil)
			So(data, ShouldEqual, float64(42))
		})

		Convey("Events interleaved with a reply are skipped", func() {
			fake.preamble = `{"event":"playback-restart"}` + "\n"
			data, err := m.sendCommand("get_property", "pid")
			So(err, ShouldBeNil)
			So(data, ShouldEqual, float64(42))
		})

		Convey("mpv errors are returned without retrying", func() {
			_, err := m.sendCommand("get_property", "time-pos")
			var reply *ReplyError
			So(errors.As(err, &reply), ShouldBeTrue)
			So(reply.Reason, ShouldEqual, errPropertyUnavailable)
			So(fake.names(), ShouldHaveLength, 1)
		})

		Convey("CanPlayType consults the lavf demuxer list", func() {
			ok, err := m.CanPlayType(media.MatroskaMIME)
			So(err, ShouldBeNil)
			So(ok, ShouldBeTrue)

			fake.mu.Lock()
			fake.props["demuxer-lavf-list"] = []interface{}{"mov,mp4,m4a,3gp,3g2,mj2"}
			fake.mu.Unlock()

			ok, err = m.CanPlayType(media.MatroskaMIME)
			So(err, ShouldBeNil)
			So(ok, ShouldBeFalse)

			ok, _ = m.CanPlayType("video/quicktime-unknown")
			So(ok, ShouldBeFalse)
		})

		Convey("Seek is skipped while nothing is loaded", func() {
			So(m.Seek(0), ShouldBeNil)
			So(fake.names(), ShouldResemble, []string{"get_property time-pos"})

			fake.mu.Lock()
			fake.props["time-pos"] = float64(12)
			fake.mu.Unlock()

			So(m.Seek(0), ShouldBeNil)
			So(fake.names()[2], ShouldEqual, "seek 0 absolute")
		})

		Convey("Attach then Load issues loadfile replace", func() {
			So(m.Load(), ShouldNotBeNil)

			src := media.Source{URL: "https://example.com/clip.mp4", Type: media.GenericMIME}
			So(m.Attach(src), ShouldBeNil)
			So(m.Load(), ShouldBeNil)

			got, ok := m.Source()
			So(ok, ShouldBeTrue)
			So(got, ShouldResemble, src)
			So(fake.names(), ShouldResemble, []string{
				"playlist-clear",
				"loadfile https://example.com/clip.mp4 replace",
			})
			So(m.entryID, ShouldEqual, 7)
		})

		Convey("Pause and Play toggle the pause property", func() {
			prop := func() interface{} {
				fake.mu.Lock()
				defer fake.mu.Unlock()
				return fake.props["pause"]
			}
			So(m.Pause(), ShouldBeNil)
			So(prop(), ShouldEqual, true)
			So(m.Play(), ShouldBeNil)
			So(prop(), ShouldEqual, false)
		})
	})
}

func TestEvents(t *testing.T) {
	Convey("Given a surface with pending observers", t, func() {
		m := NewMPV("")
		var loaded int
		var failures []error
		m.Observe(loader.Observers{
			OnLoadedData: func() { loaded++ },
			OnError:      func(err error) { failures = append(failures, err) },
		})

		Convey("file-loaded fires the data observer once", func() {
			m.handleEvent(Event{Name: eventStartFile, PlaylistEntryID: 1})
			m.handleEvent(Event{Name: eventFileLoaded})
			m.handleEvent(Event{Name: eventFileLoaded})
			So(loaded, ShouldEqual, 1)
			So(failures, ShouldBeEmpty)
		})

		Convey("file-loaded before any start-file is ignored", func() {
			m.handleEvent(Event{Name: eventFileLoaded})
			So(loaded, ShouldEqual, 0)
		})

		Convey("end-file with an error reason fires the error observer", func() {
			m.handleEvent(Event{Name: eventEndFile, Reason: reasonError, FileError: "loading failed", PlaylistEntryID: 1})
			So(failures, ShouldHaveLength, 1)
			So(errors.Is(failures[0], media.ErrMediaLoad), ShouldBeTrue)
			So(failures[0].Error(), ShouldContainSubstring, "loading failed")
			So(loaded, ShouldEqual, 0)
		})

		Convey("end-file for a stopped file is ignored", func() {
			m.handleEvent(Event{Name: eventEndFile, Reason: "stop", PlaylistEntryID: 1})
			So(failures, ShouldBeEmpty)
		})

		Convey("end-file for an older playlist entry is ignored", func() {
			m.entryID = 3
			m.handleEvent(Event{Name: eventEndFile, Reason: reasonError, PlaylistEntryID: 2})
			So(failures, ShouldBeEmpty)
			m.handleEvent(Event{Name: eventEndFile, Reason: reasonError, PlaylistEntryID: 3})
			So(failures, ShouldHaveLength, 1)
		})

		Convey("A player exit fails the pending load", func() {
			m.abandon()
			So(failures, ShouldHaveLength, 1)
			So(failures[0].Error(), ShouldContainSubstring, "player exited")
		})
	})
}

func TestSupersededLoad(t *testing.T) {
	Convey("Given a surface that loaded a first video", t, func() {
		fake := newFakeMPV(t)
		m := NewMPV("")
		m.socketPath = fake.path

		first := media.Source{URL: "https://example.com/a.mp4", Type: media.GenericMIME}
		So(m.Attach(first), ShouldBeNil)
		m.Observe(loader.Observers{})
		So(m.Load(), ShouldBeNil)
		So(m.entryID, ShouldEqual, 7)
		m.handleEvent(Event{Name: eventStartFile, PlaylistEntryID: 7})

		var loaded int
		var failures []error
		second := loader.Observers{
			OnLoadedData: func() { loaded++ },
			OnError:      func(err error) { failures = append(failures, err) },
		}
		So(m.Attach(media.Source{URL: "https://example.com/b.webm", Type: media.GenericMIME}), ShouldBeNil)
		m.Observe(second)

		Convey("A late failure of the first video does not reach the second", func() {
			m.handleEvent(Event{Name: eventEndFile, Reason: reasonError, FileError: "a failed", PlaylistEntryID: 7})
			So(failures, ShouldBeEmpty)

			So(m.Load(), ShouldBeNil)
			So(m.entryID, ShouldEqual, 8)
			m.handleEvent(Event{Name: eventEndFile, Reason: reasonError, PlaylistEntryID: 7})
			So(failures, ShouldBeEmpty)

			m.handleEvent(Event{Name: eventStartFile, PlaylistEntryID: 8})
			m.handleEvent(Event{Name: eventEndFile, Reason: reasonError, FileError: "b failed", PlaylistEntryID: 8})
			So(failures, ShouldHaveLength, 1)
			So(failures[0].Error(), ShouldContainSubstring, "b failed")
			So(loaded, ShouldEqual, 0)
		})

		Convey("A late file-loaded of the first video does not reach the second", func() {
			m.handleEvent(Event{Name: eventFileLoaded})
			So(loaded, ShouldEqual, 0)

			So(m.Load(), ShouldBeNil)
			m.handleEvent(Event{Name: eventFileLoaded})
			So(loaded, ShouldEqual, 0)

			m.handleEvent(Event{Name: eventStartFile, PlaylistEntryID: 8})
			m.handleEvent(Event{Name: eventFileLoaded})
			So(loaded, ShouldEqual, 1)

			m.handleEvent(Event{Name: eventEndFile, Reason: reasonError, PlaylistEntryID: 8})
			So(failures, ShouldBeEmpty)
		})

		Convey("Events of the second video before the loadfile reply are delivered", func() {
			m.handleEvent(Event{Name: eventStartFile, PlaylistEntryID: 8})
			m.handleEvent(Event{Name: eventFileLoaded})
			So(loaded, ShouldEqual, 1)
		})
	})
}

func TestEventListener(t *testing.T) {
	Convey("Given an event listener on a socket", t, func() {
		dir, err := os.MkdirTemp("", "vl")
		So(err, ShouldBeNil)
		defer os.RemoveAll(dir)

		path := filepath.Join(dir, "events.sock")
		l, err := net.Listen("unix", path)
		So(err, ShouldBeNil)
		defer l.Close()

		accepted := make(chan net.Conn, 1)
		go func() {
			conn, err := l.Accept()
			if err == nil {
				accepted <- conn
			}
		}()

		events := make(chan Event, 4)
		el := NewEventListener(path, func(ev Event) { events <- ev })
		So(el.Start(), ShouldBeNil)

		server := <-accepted
		defer server.Close()

		Convey("Events are forwarded and replies skipped", func() {
			_, _ = server.Write([]byte(`{"data":null,"error":"success"}` + "\n"))
			_, _ = server.Write([]byte(`{"event":"end-file","reason":"error","file_error":"unrecognized file format","playlist_entry_id":1}` + "\n"))
			_, _ = server.Write([]byte(`not json` + "\n" + `{"event":"file-loaded"}` + "\n"))

			var got []Event
			for len(got) < 2 {
				select {
				case ev := <-events:
					got = append(got, ev)
				case <-time.After(2 * time.Second):
					t.Fatal("timed out waiting for events")
				}
			}

			So(got[0], ShouldResemble, Event{Name: "end-file", Reason: "error", FileError: "unrecognized file format", PlaylistEntryID: 1})
			So(got[1].Name, ShouldEqual, "file-loaded")
			el.Stop()
		})

		Convey("Stop is idempotent", func() {
			el.Stop()
			So(func() { el.Stop() }, ShouldNotPanic)
		})
	})
}
