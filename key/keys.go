// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Media Playback - these keys configure the external media surface and the status notice lifecycle.
const (
	PlayerBinary       = "player.binary"
	PlayerFadeDelay    = "player.fade_delay"
	PlayerFadeDuration = "player.fade_duration"
	PlayerStrictMIME   = "player.strict_mime"
)

// Remote Control Server - these keys configure the HTTP remote exposed by "vidload serve".
const (
	ServerAddr    = "server.addr"
	ServerOrigins = "server.origins"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Terminal User Interface (TUI) - these keys define the interactive loader's presentation.
const (
	TUIShowProgress = "tui.show_progress"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the non-TUI application behavior.
const (
	CliColored = "cli.colored"
)
