package pages

import (
	"context"
	"log/slog"
	"strings"
)

// ButtonFunc draws one navigation button and reports whether it was
// activated during the current pass.
type ButtonFunc func(ctx context.Context, p *Pages) (bool, error)

// Option configures Pages.
type Option func(*Pages)

// WithKey sets the session key holding the current index.
func WithKey(key string) Option {
	return func(p *Pages) {
		if trimmed := strings.TrimSpace(key); trimmed != "" {
			p.key = trimmed
		}
	}
}

// WithLabels names the pages. Missing labels fall back to the page index.
func WithLabels(labels ...string) Option {
	return func(p *Pages) {
		p.labels = append([]string(nil), labels...)
	}
}

// WithOnSubmit sets the completion callback. Without one the last page shows
// a disabled next button instead of submit.
func WithOnSubmit(fn func()) Option {
	return func(p *Pages) {
		p.onSubmit = fn
	}
}

// WithProgressBar shows a progress indicator below the navigation.
func WithProgressBar(enabled bool) Option {
	return func(p *Pages) {
		p.progress = enabled
	}
}

// WithButtonLabels overrides the default button captions. Empty values keep
// the default.
func WithButtonLabels(previous, next, submit string) Option {
	return func(p *Pages) {
		if previous != "" {
			p.previousLabel = previous
		}
		if next != "" {
			p.nextLabel = next
		}
		if submit != "" {
			p.submitLabel = submit
		}
	}
}

// WithPreviousButton replaces the previous button. Use PreviousKey for the
// widget key.
func WithPreviousButton(fn ButtonFunc) Option {
	return func(p *Pages) {
		p.previousButton = fn
	}
}

// WithNextButton replaces the next button. Use NextKey for the widget key.
func WithNextButton(fn ButtonFunc) Option {
	return func(p *Pages) {
		p.nextButton = fn
	}
}

// WithSubmitButton replaces the submit button. Use SubmitKey for the widget
// key.
func WithSubmitButton(fn ButtonFunc) Option {
	return func(p *Pages) {
		p.submitButton = fn
	}
}

// WithLogger attaches a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pages) {
		if logger != nil {
			p.logger = logger
		}
	}
}
