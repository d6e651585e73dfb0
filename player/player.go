// Package player drives an external media player as the playback surface.
// The implementation targets mpv via its JSON-IPC interface.
package player

import "github.com/vidload/vidload/loader"

// Player is a media surface backed by a long-running player process.
type Player interface {
	loader.Surface

	// Start launches the player process and connects to its IPC channel.
	Start() error

	// Close terminates the player and releases all associated system resources.
	Close() error

	// Wait returns a channel that is closed when the player process exits.
	Wait() <-chan struct{}

	// StartIPCTicker polls the playback position once per second and reports it to callback.
	StartIPCTicker(callback func(timePos int, duration int))

	// StopIPCTicker terminates the polling task.
	StopIPCTicker()
}
