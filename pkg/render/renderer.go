package render

import (
	"context"

	"github.com/goliatone/go-survey/pkg/session"
)

// Widget is one request to draw an input. Value carries the widget's current
// ephemeral value (restored or live) and is nil when the host should fall back
// to Options.Default.
type Widget struct {
	Kind    Kind
	Label   string
	Key     string
	Value   any
	Options Options
}

// Host is the rendering collaborator a survey runs against. Render is called
// exactly once per widget per render pass and returns the value the user
// entered, using the native types listed on Kind.
type Host interface {
	// Session returns the bag that survives every render pass.
	Session() session.Store
	// Widgets returns the ephemeral per-widget bag keyed by widget key.
	Widgets() session.Store
	Render(ctx context.Context, widget Widget) (any, error)
}

// RenderFunc adapts a function into the widget invocation used by components.
type RenderFunc func(ctx context.Context, widget Widget) (any, error)

// Action is the navigation affordance activated during a pass.
type Action int

const (
	ActionNone Action = iota
	ActionPrevious
	ActionNext
	ActionSubmit
)

func (a Action) String() string {
	switch a {
	case ActionPrevious:
		return "previous"
	case ActionNext:
		return "next"
	case ActionSubmit:
		return "submit"
	default:
		return "none"
	}
}

// Navigation describes the page controls a host should offer.
type Navigation struct {
	Key           string
	Page          int
	Pages         int
	Label         string
	CanPrevious   bool
	CanNext       bool
	CanSubmit     bool
	PreviousLabel string
	NextLabel     string
	SubmitLabel   string
	ShowProgress  bool
	Progress      float64
}

// Navigator is an optional Host upgrade. Hosts that implement it draw page
// navigation as a single control instead of individual buttons.
type Navigator interface {
	Navigate(ctx context.Context, nav Navigation) (Action, error)
}
