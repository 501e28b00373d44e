// Package pages splits a survey into pages and draws the navigation between
// them. The current page index lives in the host session so it survives
// render passes.
//
//	p, err := pages.New(host, 3, pages.WithOnSubmit(save))
//	if err != nil {
//		return err
//	}
//	return p.Run(ctx, func(p *pages.Pages) error {
//		switch p.Current() {
//		case 0:
//			// first page questions
//		}
//		return nil
//	})
package pages

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/goliatone/go-survey/pkg/render"
)

// DefaultKey is the session key used when WithKey is not supplied.
const DefaultKey = "__survey-pages_current"

// Pages is the page flow controller. Build it at the start of each render
// pass; the index is read from and written to the host session.
type Pages struct {
	host   render.Host
	n      int
	labels []string
	key    string

	onSubmit func()
	progress bool

	previousLabel string
	nextLabel     string
	submitLabel   string

	previousButton ButtonFunc
	nextButton     ButtonFunc
	submitButton   ButtonFunc

	logger *slog.Logger
}

// New returns a controller for n pages.
func New(host render.Host, n int, options ...Option) (*Pages, error) {
	if host == nil {
		return nil, fmt.Errorf("pages: host is required")
	}
	if n < 1 {
		return nil, fmt.Errorf("pages: at least one page is required, got %d", n)
	}
	p := &Pages{
		host:          host,
		n:             n,
		key:           DefaultKey,
		previousLabel: "Previous",
		nextLabel:     "Next",
		submitLabel:   "Submit",
		logger:        slog.New(slog.DiscardHandler),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(p)
	}
	return p, nil
}

// Len returns the number of pages.
func (p *Pages) Len() int { return p.n }

// Key returns the session key holding the current index.
func (p *Pages) Key() string { return p.key }

// PreviousKey is the widget key of the previous button.
func (p *Pages) PreviousKey() string { return p.key + "_btn_prev" }

// NextKey is the widget key of the next button.
func (p *Pages) NextKey() string { return p.key + "_btn_next" }

// SubmitKey is the widget key of the submit button.
func (p *Pages) SubmitKey() string { return p.key + "_btn_submit" }

// Current returns the current page index, initialising it to 0. A stored
// index that no longer fits (the page count shrank) is clamped.
func (p *Pages) Current() int {
	store := p.host.Session()
	raw, ok := store.Get(p.key)
	current, isInt := raw.(int)
	if !ok || !isInt {
		store.Set(p.key, 0)
		return 0
	}
	if current < 0 || current >= p.n {
		clamped := min(max(current, 0), p.n-1)
		store.Set(p.key, clamped)
		return clamped
	}
	return current
}

// Update sets the current page index.
func (p *Pages) Update(index int) error {
	if index < 0 || index >= p.n {
		return &RangeError{Index: index, Pages: p.n}
	}
	p.host.Session().Set(p.key, index)
	return nil
}

// Label returns the label of the current page.
func (p *Pages) Label() string {
	current := p.Current()
	if current < len(p.labels) {
		return p.labels[current]
	}
	return strconv.Itoa(current)
}

// Labels returns the configured page labels.
func (p *Pages) Labels() []string {
	return append([]string(nil), p.labels...)
}

// IsFirst reports whether the first page is shown.
func (p *Pages) IsFirst() bool { return p.Current() == 0 }

// IsLast reports whether the last page is shown.
func (p *Pages) IsLast() bool { return p.Current() == p.n-1 }

// Next moves forward one page; it does nothing on the last page.
func (p *Pages) Next() {
	if current := p.Current(); current < p.n-1 {
		p.host.Session().Set(p.key, current+1)
		p.logger.Debug("page advanced", "key", p.key, "page", current+1)
	}
}

// Previous moves back one page; it does nothing on the first page.
func (p *Pages) Previous() {
	if current := p.Current(); current > 0 {
		p.host.Session().Set(p.key, current-1)
		p.logger.Debug("page went back", "key", p.key, "page", current-1)
	}
}

// Progress returns current/(n-1), or 0 for a single page.
func (p *Pages) Progress() float64 {
	if p.n < 2 {
		return 0
	}
	return float64(p.Current()) / float64(p.n-1)
}

// Begin opens the page block and returns the current index.
func (p *Pages) Begin() int {
	return p.Current()
}

// End closes the page block: it draws previous and next (or submit) controls,
// the optional progress indicator, and calls the completion callback when
// submit was activated in this pass.
func (p *Pages) End(ctx context.Context) error {
	action, err := p.navigate(ctx)
	if err != nil {
		return err
	}

	submitted := false
	switch action {
	case render.ActionPrevious:
		p.Previous()
	case render.ActionNext:
		p.Next()
	case render.ActionSubmit:
		submitted = p.IsLast() && p.onSubmit != nil
	}

	if err := p.drawProgress(ctx); err != nil {
		return err
	}

	if submitted {
		p.logger.Info("survey submitted", "key", p.key)
		p.onSubmit()
	}
	return nil
}

// Run calls body between Begin and End. End is skipped when body fails.
func (p *Pages) Run(ctx context.Context, body func(p *Pages) error) error {
	p.Begin()
	if body != nil {
		if err := body(p); err != nil {
			return err
		}
	}
	return p.End(ctx)
}

func (p *Pages) showSubmit() bool {
	return p.IsLast() && p.onSubmit != nil
}

func (p *Pages) customButtons() bool {
	return p.previousButton != nil || p.nextButton != nil || p.submitButton != nil
}

func (p *Pages) navigate(ctx context.Context) (render.Action, error) {
	if nav, ok := p.host.(render.Navigator); ok && !p.customButtons() {
		action, err := nav.Navigate(ctx, p.navigation())
		if err != nil {
			return render.ActionNone, fmt.Errorf("pages: navigate: %w", err)
		}
		return action, nil
	}

	prev := p.previousButton
	if prev == nil {
		prev = defaultPreviousButton
	}
	clicked, err := prev(ctx, p)
	if err != nil {
		return render.ActionNone, fmt.Errorf("pages: previous button: %w", err)
	}
	action := render.ActionNone
	if clicked {
		action = render.ActionPrevious
	}

	if p.showSubmit() {
		submit := p.submitButton
		if submit == nil {
			submit = defaultSubmitButton
		}
		clicked, err = submit(ctx, p)
		if err != nil {
			return render.ActionNone, fmt.Errorf("pages: submit button: %w", err)
		}
		if clicked && action == render.ActionNone {
			action = render.ActionSubmit
		}
		return action, nil
	}

	next := p.nextButton
	if next == nil {
		next = defaultNextButton
	}
	clicked, err = next(ctx, p)
	if err != nil {
		return render.ActionNone, fmt.Errorf("pages: next button: %w", err)
	}
	if clicked && action == render.ActionNone {
		action = render.ActionNext
	}
	return action, nil
}

func (p *Pages) navigation() render.Navigation {
	current := p.Current()
	return render.Navigation{
		Key:           p.key,
		Page:          current,
		Pages:         p.n,
		Label:         p.Label(),
		CanPrevious:   current > 0,
		CanNext:       current < p.n-1,
		CanSubmit:     p.showSubmit(),
		PreviousLabel: p.previousLabel,
		NextLabel:     p.nextLabel,
		SubmitLabel:   p.submitLabel,
		ShowProgress:  p.progress && p.n > 1,
		Progress:      p.Progress(),
	}
}

func (p *Pages) drawProgress(ctx context.Context) error {
	if !p.progress || p.n < 2 {
		return nil
	}
	if _, ok := p.host.(render.Navigator); ok && !p.customButtons() {
		return nil
	}
	_, err := p.host.Render(ctx, render.Widget{
		Kind:  render.KindProgress,
		Key:   p.key + "_progress",
		Value: p.Progress(),
	})
	if err != nil {
		return fmt.Errorf("pages: progress: %w", err)
	}
	return nil
}

func defaultPreviousButton(ctx context.Context, p *Pages) (bool, error) {
	return button(ctx, p.host, p.previousLabel, p.PreviousKey(), p.IsFirst())
}

func defaultNextButton(ctx context.Context, p *Pages) (bool, error) {
	return button(ctx, p.host, p.nextLabel, p.NextKey(), p.IsLast())
}

func defaultSubmitButton(ctx context.Context, p *Pages) (bool, error) {
	return button(ctx, p.host, p.submitLabel, p.SubmitKey(), false)
}

func button(ctx context.Context, host render.Host, label, key string, disabled bool) (bool, error) {
	raw, err := host.Render(ctx, render.Widget{
		Kind:    render.KindButton,
		Label:   label,
		Key:     key,
		Options: render.Options{Disabled: disabled},
	})
	if err != nil {
		return false, err
	}
	clicked, _ := raw.(bool)
	return clicked && !disabled, nil
}
