package tui

type state int

const (
	inputState state = iota
	errorState
)
