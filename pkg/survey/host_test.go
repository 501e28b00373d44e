package survey

import (
	"context"

	"github.com/goliatone/go-survey/pkg/render"
	"github.com/goliatone/go-survey/pkg/session"
)

// fakeHost mimics a reactive host: widgets show their current state (or the
// default), scripted input replaces it, and EndPass forgets undrawn widgets.
type fakeHost struct {
	session *session.Memory
	widgets *session.WidgetState
	input   map[string]any
	drawn   []render.Widget
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		session: session.NewMemory(),
		widgets: session.NewWidgetState(),
		input:   map[string]any{},
	}
}

func (h *fakeHost) Session() session.Store { return h.session }
func (h *fakeHost) Widgets() session.Store { return h.widgets }

func (h *fakeHost) Render(_ context.Context, w render.Widget) (any, error) {
	h.drawn = append(h.drawn, w)
	value := w.Value
	if value == nil {
		value = w.Options.Default
	}
	if typed, ok := h.input[w.Key]; ok {
		value = typed
		delete(h.input, w.Key)
	}
	h.widgets.Set(w.Key, value)
	return value, nil
}

// pass runs fn as one render pass.
func (h *fakeHost) pass(fn func()) {
	h.drawn = nil
	h.widgets.BeginPass()
	fn()
	h.widgets.EndPass()
}

func (h *fakeHost) answer(key string, value any) {
	h.input[key] = value
}
