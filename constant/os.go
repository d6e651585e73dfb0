package constant

// runtime.GOOS values the player and browser launchers branch on.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
	Android = "android"
)
