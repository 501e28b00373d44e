package web

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/goliatone/go-survey/pkg/render"
	"github.com/goliatone/go-survey/pkg/session"
	"github.com/goliatone/go-survey/pkg/survey"
)

const (
	// widgetMarker lists the widget keys present in a posted form, so an
	// unchecked checkbox or empty multiselect still counts as answered.
	widgetMarker = "__survey_widget"
	// actionField carries the pressed navigation button.
	actionField = "__survey_action"
)

// passHost is the render.Host for a single request. With a nil form it only
// collects what to draw; with a posted form it first applies the values the
// browser sent for widgets that were on the submitted page.
type passHost struct {
	state  *state
	form   url.Values
	posted map[string]struct{}
	action string

	views   []widgetView
	nav     *render.Navigation
	invalid []string
}

var (
	_ render.Host      = (*passHost)(nil)
	_ render.Navigator = (*passHost)(nil)
)

func newPassHost(st *state, form url.Values) *passHost {
	h := &passHost{state: st, form: form, posted: map[string]struct{}{}}
	if form != nil {
		for _, key := range form[widgetMarker] {
			h.posted[key] = struct{}{}
		}
		h.action = strings.TrimSpace(form.Get(actionField))
	}
	return h
}

func (h *passHost) Session() session.Store { return h.state.store }

func (h *passHost) Widgets() session.Store { return h.state.widgets }

func (h *passHost) Render(ctx context.Context, w render.Widget) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch w.Kind {
	case render.KindButton:
		clicked := !w.Options.Disabled && h.action == w.Key
		h.views = append(h.views, newWidgetView(w, nil))
		return clicked, nil
	case render.KindProgress:
		h.views = append(h.views, newWidgetView(w, w.Value))
		return w.Value, nil
	}

	value := current(w)
	if _, ok := h.posted[w.Key]; ok {
		parsed, err := parsePosted(w, h.form)
		if err != nil {
			h.invalid = append(h.invalid, fmt.Sprintf("%s: %v", w.Label, err))
		} else {
			value = parsed
		}
	}
	if value == nil {
		value = fallback(w)
	}
	h.state.widgets.Set(w.Key, value)
	h.views = append(h.views, newWidgetView(w, value))
	return value, nil
}

// Navigate implements render.Navigator from the posted action field.
// Invalid input keeps the user on the page.
func (h *passHost) Navigate(_ context.Context, nav render.Navigation) (render.Action, error) {
	h.nav = &nav
	if len(h.invalid) > 0 {
		return render.ActionNone, nil
	}
	switch h.action {
	case render.ActionPrevious.String():
		return render.ActionPrevious, nil
	case render.ActionNext.String():
		return render.ActionNext, nil
	case render.ActionSubmit.String():
		return render.ActionSubmit, nil
	default:
		return render.ActionNone, nil
	}
}

func current(w render.Widget) any {
	if w.Value != nil {
		return w.Value
	}
	return w.Options.Default
}

// fallback is what a never answered widget shows: the first choice for
// single choice kinds, the lower bound for numbers.
func fallback(w render.Widget) any {
	switch w.Kind {
	case render.KindSelectBox, render.KindRadio, render.KindSelectSlider:
		if len(w.Options.Choices) > 0 {
			return w.Options.Choices[0]
		}
		return ""
	case render.KindNumberInput, render.KindSlider:
		if w.Options.Min != nil {
			return *w.Options.Min
		}
		return 0.0
	case render.KindCheckbox:
		return false
	case render.KindMultiSelect:
		return []string{}
	case render.KindTextInput, render.KindTextArea:
		return ""
	default:
		return nil
	}
}

func parsePosted(w render.Widget, form url.Values) (any, error) {
	raw := strings.TrimSpace(form.Get(w.Key))
	switch w.Kind {
	case render.KindCheckbox:
		return raw != "", nil
	case render.KindMultiSelect:
		var picked []string
		for _, v := range form[w.Key] {
			if containsChoice(w.Options.Choices, v) {
				picked = append(picked, v)
			}
		}
		if picked == nil {
			picked = []string{}
		}
		return picked, nil
	case render.KindSelectBox, render.KindRadio, render.KindSelectSlider:
		if !containsChoice(w.Options.Choices, raw) {
			return nil, fmt.Errorf("%q is not one of the choices", raw)
		}
		return raw, nil
	case render.KindNumberInput, render.KindSlider:
		if raw == "" {
			return nil, nil
		}
		v, err := survey.ParseNumber(raw)
		if err != nil {
			return nil, fmt.Errorf("%q is not a finite number", raw)
		}
		if !w.Options.InRange(v) {
			return nil, fmt.Errorf("%g is out of range", v)
		}
		return v, nil
	case render.KindDateInput:
		return parseClock(raw, survey.DateCodec)
	case render.KindTimeInput:
		return parseClock(raw, survey.TimeCodec)
	default:
		return form.Get(w.Key), nil
	}
}

func parseClock(raw string, codec survey.Codec[time.Time]) (any, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	return codec.Decode(raw)
}

func containsChoice(choices []string, v string) bool {
	for _, c := range choices {
		if c == v {
			return true
		}
	}
	return false
}
