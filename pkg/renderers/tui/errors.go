package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrNoArray is returned when a session is opened on a path whose schema
	// is not an array.
	ErrNoArray = errors.New("tui: schema at path is not an array")
)
