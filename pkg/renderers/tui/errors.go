package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrUnsupportedKind is returned for widget kinds the terminal cannot draw.
	ErrUnsupportedKind = errors.New("tui: unsupported widget kind")
)
