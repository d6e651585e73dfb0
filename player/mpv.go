package player

import (
	"crypto/rand"
	"fmt"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"
	"github.com/vidload/vidload/loader"
	"github.com/vidload/vidload/log"
	"github.com/vidload/vidload/media"
	"github.com/vidload/vidload/where"
)

const (
	socketWaitRetries = 10
	socketWaitDelay   = 300 * time.Millisecond
)

// demuxersByMIME maps content types to the lavf demuxer names that handle them.
var demuxersByMIME = map[string][]string{
	"video/mp4":        {"mov", "mp4"},
	"video/webm":       {"matroska", "webm"},
	"video/ogg":        {"ogg"},
	media.MatroskaMIME: {"matroska"},
}

// MPV implements Player on top of mpv's JSON-IPC protocol.
type MPV struct {
	binary     string
	socketPath string
	cmd        *exec.Cmd
	exited     chan struct{}
	tickerStop chan struct{}
	listener   *EventListener
	mu         sync.Mutex // serializes socket round trips

	stateMu   sync.Mutex
	source    *media.Source
	entryID   int // created by the last loadfile, 0 until its reply arrives
	floor     int // highest entry that belongs to a superseded load
	startedID int // entry of the last start-file event
	observers *loader.Observers
}

// NewMPV creates a new MPV surface that launches binary (usually "mpv").
func NewMPV(binary string) *MPV {
	if binary == "" {
		binary = "mpv"
	}
	exited := make(chan struct{})
	close(exited)
	return &MPV{
		binary: binary,
		exited: exited,
	}
}

// Start launches an idle, paused mpv window and attaches the event listener.
func (m *MPV) Start() error {
	if m.socketPath == "" {
		randomBytes := make([]byte, 4)
		if _, err := rand.Read(randomBytes); err != nil {
			return fmt.Errorf("generate socket name: %w", err)
		}
		m.socketPath = filepath.Join(where.Temp(), fmt.Sprintf("mpv-%x.sock", randomBytes))
	}

	// Respect the user's mpv.conf: no --vo, --profile or --hwdec here.
	args := []string{
		"--no-terminal",
		"--really-quiet",
		fmt.Sprintf("--input-ipc-server=%s", m.socketPath),
		"--force-window=yes",
		"--idle=yes",
		"--keep-open=yes",
		"--pause=yes",
	}

	m.cmd = exec.Command(m.binary, args...)
	m.cmd.SysProcAttr = sysProcAttr()
	m.cmd.Stdout = nil
	m.cmd.Stderr = nil
	m.cmd.Stdin = nil

	if err := m.cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", m.binary, err)
	}

	exited := make(chan struct{})
	m.exited = exited
	go func() {
		_ = m.cmd.Wait()
		close(exited)
		m.abandon()
	}()

	if err := m.waitForSocket(); err != nil {
		select {
		case <-m.exited:
		default:
			log.Warnf("killing %s: socket never became ready", m.binary)
			_ = killProcess(m.cmd)
		}
		return fmt.Errorf("mpv socket not ready: %w", err)
	}

	m.listener = NewEventListener(m.socketPath, m.handleEvent)
	return m.listener.Start()
}

// Wait returns a channel that is closed when the mpv process exits.
func (m *MPV) Wait() <-chan struct{} {
	return m.exited
}

func (m *MPV) waitForSocket() error {
	for i := 0; i < socketWaitRetries; i++ {
		time.Sleep(socketWaitDelay)

		select {
		case <-m.exited:
			return fmt.Errorf("mpv exited before socket was ready")
		default:
		}

		conn, err := net.Dial("unix", m.socketPath)
		if err == nil {
			conn.Close()
			return nil
		}
	}
	return fmt.Errorf("socket %s not ready after %d attempts", m.socketPath, socketWaitRetries)
}

// CanPlayType reports whether one of mpv's demuxers handles mime.
func (m *MPV) CanPlayType(mime string) (bool, error) {
	wanted, ok := demuxersByMIME[mime]
	if !ok {
		return false, nil
	}

	data, err := m.sendCommand("get_property", "demuxer-lavf-list")
	if err != nil {
		return false, fmt.Errorf("query demuxers: %w", err)
	}

	list, ok := data.([]interface{})
	if !ok {
		return false, fmt.Errorf("demuxer-lavf-list: expected list, got %T", data)
	}

	for _, entry := range list {
		name, _ := entry.(string)
		// lavf names alias groups, e.g. "matroska,webm" or "mov,mp4,m4a,3gp,3g2,mj2"
		if lo.Some(strings.Split(name, ","), wanted) {
			return true, nil
		}
	}
	return false, nil
}

// Pause suspends playback.
func (m *MPV) Pause() error {
	return m.Set("pause", true)
}

// Play resumes playback.
func (m *MPV) Play() error {
	return m.Set("pause", false)
}

// Seek moves playback to an absolute position in seconds. It is a no-op while nothing is loaded.
func (m *MPV) Seek(seconds float64) error {
	active, err := m.HasActivePlayback()
	if err != nil || !active {
		return err
	}
	_, err = m.sendCommand("seek", seconds, "absolute")
	return err
}

// HasActivePlayback reports whether a file is currently loaded.
func (m *MPV) HasActivePlayback() (bool, error) {
	data, err := m.sendCommand("get_property", "time-pos")
	if err != nil {
		if isReply(err, errPropertyUnavailable) {
			return false, nil
		}
		return false, err
	}
	return data != nil, nil
}

// Attach discards queued playlist entries and makes src the next source to load.
func (m *MPV) Attach(src media.Source) error {
	if _, err := m.sendCommand("playlist-clear"); err != nil {
		return err
	}

	m.stateMu.Lock()
	defer m.stateMu.Unlock()
	m.source = &src
	// entry IDs only grow, so anything up to here is an older file
	m.floor = lo.Max([]int{m.floor, m.entryID, m.startedID})
	m.entryID = 0
	return nil
}

// Source returns the attached source, if any.
func (m *MPV) Source() (media.Source, bool) {
	m.stateMu.Lock()
	defer m.stateMu.Unlock()
	if m.source == nil {
		return media.Source{}, false
	}
	return *m.source, true
}

// Observe registers one-shot observers for the next load.
func (m *MPV) Observe(o loader.Observers) {
	m.stateMu.Lock()
	defer m.stateMu.Unlock()
	m.observers = &o
}

// Load replaces the current file with the attached source.
func (m *MPV) Load() error {
	src, ok := m.Source()
	if !ok {
		return fmt.Errorf("no source attached")
	}

	data, err := m.sendCommand("loadfile", src.URL, "replace")
	if err != nil {
		return err
	}

	if reply, ok := data.(map[string]interface{}); ok {
		if id, ok := reply["playlist_entry_id"].(float64); ok {
			m.stateMu.Lock()
			m.entryID = int(id)
			m.stateMu.Unlock()
		}
	}

	log.Debugf("loadfile %s (%s)", src.URL, src.Type)
	return nil
}

// handleEvent maps mpv events onto the registered observers.
func (m *MPV) handleEvent(ev Event) {
	switch ev.Name {
	case eventStartFile:
		m.stateMu.Lock()
		m.startedID = ev.PlaylistEntryID
		m.stateMu.Unlock()
	case eventFileLoaded:
		// file-loaded carries no entry ID; it belongs to the last started file
		m.stateMu.Lock()
		started := m.startedID
		m.stateMu.Unlock()
		if o := m.takeObservers(started); o != nil && o.OnLoadedData != nil {
			o.OnLoadedData()
		}
	case eventEndFile:
		if ev.Reason != reasonError {
			return
		}
		if o := m.takeObservers(ev.PlaylistEntryID); o != nil && o.OnError != nil {
			detail := ev.FileError
			if detail == "" {
				detail = "unknown error"
			}
			o.OnError(fmt.Errorf("%w: %s", media.ErrMediaLoad, detail))
		}
	}
}

// takeObservers hands out the pending observers once, and only for an event
// of the current load. Before the loadfile reply any entry newer than the
// superseded ones is the current load.
func (m *MPV) takeObservers(entryID int) *loader.Observers {
	m.stateMu.Lock()
	defer m.stateMu.Unlock()

	if entryID <= m.floor || (m.entryID != 0 && entryID != m.entryID) {
		return nil
	}
	return m.takePending()
}

// takePending must be called with stateMu held.
func (m *MPV) takePending() *loader.Observers {
	o := m.observers
	m.observers = nil
	return o
}

// abandon fails a pending load when the player goes away.
func (m *MPV) abandon() {
	m.stateMu.Lock()
	o := m.takePending()
	m.stateMu.Unlock()

	if o != nil && o.OnError != nil {
		o.OnError(fmt.Errorf("%w: player exited", media.ErrMediaLoad))
	}
}

// GetTimePos returns the current playback position in seconds.
func (m *MPV) GetTimePos() (float64, error) {
	return m.getFloatProperty("time-pos")
}

// GetDuration returns the total duration of the current media in seconds.
func (m *MPV) GetDuration() (float64, error) {
	return m.getFloatProperty("duration")
}

// IsRunning reports whether mpv is responding to IPC commands.
func (m *MPV) IsRunning() bool {
	if m.socketPath == "" {
		return false
	}

	select {
	case <-m.exited:
		return false
	default:
	}

	_, err := m.sendCommand("get_property", "pid")
	return err == nil
}

// StartIPCTicker starts a background ticker that polls the player for time-pos
// and calls the given callback every second.
func (m *MPV) StartIPCTicker(callback func(timePos int, duration int)) {
	if m.tickerStop != nil {
		return
	}

	stop := make(chan struct{})
	m.tickerStop = stop
	exited := m.exited
	go func() {
		ticker := time.NewTicker(1 * time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-stop:
				return
			case <-exited:
				return
			case <-ticker.C:
				pos, err := m.GetTimePos()
				if err != nil {
					continue
				}

				dur, err := m.GetDuration()
				if err != nil {
					// unknown for live streams
					dur = 0
				}

				callback(int(pos), int(dur))
			}
		}
	}()
}

// StopIPCTicker stops the background ticker if it's running.
func (m *MPV) StopIPCTicker() {
	if m.tickerStop != nil {
		close(m.tickerStop)
		m.tickerStop = nil
	}
}

// Close shuts down the mpv process and cleans up resources.
func (m *MPV) Close() error {
	m.StopIPCTicker()

	if m.socketPath == "" {
		return nil
	}

	if m.listener != nil {
		m.listener.Stop()
	}

	_, _ = m.sendCommand("quit")

	select {
	case <-m.exited:
	case <-time.After(3 * time.Second):
		_ = killProcess(m.cmd)
	}

	_ = os.Remove(m.socketPath)
	return nil
}

// Socket returns the IPC socket path.
func (m *MPV) Socket() string {
	return m.socketPath
}

// Set assigns an mpv property.
func (m *MPV) Set(property string, value interface{}) error {
	_, err := m.sendCommand("set_property", property, value)
	return err
}

func (m *MPV) getFloatProperty(name string) (float64, error) {
	data, err := m.sendCommand("get_property", name)
	if err != nil {
		return 0, err
	}

	if data == nil {
		return 0, fmt.Errorf("property %s: nil response", name)
	}

	val, ok := data.(float64)
	if !ok {
		return 0, fmt.Errorf("property %s: expected float64, got %T", name, data)
	}

	return val, nil
}
