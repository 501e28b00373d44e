package tui

import (
	"io"
	"log/slog"

	"github.com/goliatone/go-survey/pkg/session"
)

// Theme captures optional message prefixes the host applies when printing.
// Keep minimal to avoid coupling host logic to ANSI specifics.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
	// ProgressWidth is the number of cells in the progress bar.
	ProgressWidth int
}

// Option configures the terminal host.
type Option func(*Host)

// WithPrompter replaces the terminal prompts, e.g. with a scripted one.
func WithPrompter(p Prompter) Option {
	return func(h *Host) {
		if p != nil {
			h.prompt = p
		}
	}
}

// WithOutput sends the messages of the default prompter to out.
func WithOutput(out io.Writer) Option {
	return func(h *Host) {
		h.out = out
	}
}

// WithSession replaces the in-memory session store.
func WithSession(store session.Store) Option {
	return func(h *Host) {
		if store != nil {
			h.session = store
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(h *Host) {
		h.theme = theme
	}
}

// WithLogger attaches a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Host) {
		if logger != nil {
			h.logger = logger
		}
	}
}
