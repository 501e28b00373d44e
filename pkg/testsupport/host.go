package testsupport

import (
	"context"
	"sync"

	"github.com/goliatone/go-survey/pkg/render"
	"github.com/goliatone/go-survey/pkg/session"
)

// Host is a scripted render.Host. Widgets show their live state (or the
// default), queued answers and clicks replace it for one render, and every
// pass forgets the widgets it did not draw, like a reactive UI framework.
type Host struct {
	mu      sync.Mutex
	session *session.Memory
	widgets *session.WidgetState
	answers map[string]any
	clicks  map[string]bool
	drawn   []render.Widget
	// Err, when set, is returned by the next Render call.
	Err error
}

// NewHost returns an empty host.
func NewHost() *Host {
	return &Host{
		session: session.NewMemory(),
		widgets: session.NewWidgetState(),
		answers: map[string]any{},
		clicks:  map[string]bool{},
	}
}

// Session implements render.Host.
func (h *Host) Session() session.Store { return h.session }

// Widgets implements render.Host.
func (h *Host) Widgets() session.Store { return h.widgets }

// Render implements render.Host.
func (h *Host) Render(_ context.Context, w render.Widget) (any, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.Err; err != nil {
		h.Err = nil
		return nil, err
	}
	h.drawn = append(h.drawn, w)

	switch w.Kind {
	case render.KindButton:
		clicked := h.clicks[w.Key]
		delete(h.clicks, w.Key)
		return clicked, nil
	case render.KindProgress:
		return w.Value, nil
	}

	value := w.Value
	if value == nil {
		value = w.Options.Default
	}
	if typed, ok := h.answers[w.Key]; ok {
		value = typed
		delete(h.answers, w.Key)
	}
	h.widgets.Set(w.Key, value)
	return value, nil
}

// Answer queues value as the user input of the widget keyed key.
func (h *Host) Answer(key string, value any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.answers[key] = value
}

// Click queues a button activation.
func (h *Host) Click(key string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clicks[key] = true
}

// Pass runs fn as one render pass and returns the widgets drawn.
func (h *Host) Pass(fn func()) []render.Widget {
	h.mu.Lock()
	h.drawn = nil
	h.widgets.BeginPass()
	h.mu.Unlock()

	fn()

	h.mu.Lock()
	defer h.mu.Unlock()
	h.widgets.EndPass()
	return append([]render.Widget(nil), h.drawn...)
}

// Live reports the widget state held for key.
func (h *Host) Live(key string) (any, bool) {
	return h.widgets.Get(key)
}
