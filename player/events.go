package player

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync"

	"github.com/vidload/vidload/log"
)

// mpv event names the surface reacts to.
const (
	eventStartFile  = "start-file"
	eventFileLoaded = "file-loaded"
	eventEndFile    = "end-file"
)

// end-file reasons.
const (
	reasonError = "error"
)

// Event is an asynchronous notification broadcast by mpv.
type Event struct {
	Name            string `json:"event"`
	Reason          string `json:"reason,omitempty"`
	FileError       string `json:"file_error,omitempty"`
	PlaylistEntryID int    `json:"playlist_entry_id,omitempty"`
}

// EventCallback receives every event read from the socket.
type EventCallback func(Event)

// EventListener keeps a dedicated connection to mpv and forwards its events.
type EventListener struct {
	socketPath string
	callback   EventCallback

	mu        sync.Mutex
	conn      net.Conn
	listening bool
	done      chan struct{}
}

// NewEventListener creates a new event listener for the given socket.
func NewEventListener(socketPath string, callback EventCallback) *EventListener {
	return &EventListener{
		socketPath: socketPath,
		callback:   callback,
	}
}

// Start opens the event connection and begins the read loop.
func (el *EventListener) Start() error {
	el.mu.Lock()
	defer el.mu.Unlock()

	if el.listening {
		return nil
	}

	conn, err := net.Dial("unix", el.socketPath)
	if err != nil {
		return fmt.Errorf("event listener connect: %w", err)
	}
	el.conn = conn
	el.listening = true
	el.done = make(chan struct{})

	go el.readLoop(conn, el.done)

	log.Infof("mpv event listener started on %s", el.socketPath)
	return nil
}

// Stop closes the event connection and waits for the read loop to return.
func (el *EventListener) Stop() {
	el.mu.Lock()
	if !el.listening {
		el.mu.Unlock()
		return
	}
	_ = el.conn.Close()
	done := el.done
	el.mu.Unlock()

	<-done
}

func (el *EventListener) readLoop(conn net.Conn, done chan struct{}) {
	defer func() {
		el.mu.Lock()
		el.listening = false
		el.mu.Unlock()
		close(done)
	}()

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		el.processEvent(scanner.Bytes())
	}

	if err := scanner.Err(); err != nil && !errors.Is(err, net.ErrClosed) {
		log.Warnf("event listener read error: %v", err)
	}
}

// processEvent parses one newline-delimited message. Command replies share
// the socket with events and are skipped.
func (el *EventListener) processEvent(line []byte) {
	var ev Event
	if err := json.Unmarshal(line, &ev); err != nil || ev.Name == "" {
		return
	}

	if el.callback != nil {
		el.callback(ev)
	}
}
