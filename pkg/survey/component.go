package survey

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-survey/pkg/render"
)

// Component is one question bound to a widget kind. It resolves its id and
// widget key when declared and, on every Display, restores the last answer
// into the host widget state, renders the widget and captures the result.
type Component[T any] struct {
	survey  *Survey
	id      string
	label   string
	key     string
	kind    render.Kind
	codec   Codec[T]
	invoke  render.RenderFunc
	options render.Options
}

// Factory declares a question of a fixed widget kind on a survey.
type Factory[T any] func(s *Survey, label string, options ...QuestionOption) (*Component[T], error)

// Define returns a factory for questions of kind drawn by the survey host.
func Define[T any](kind render.Kind, codec Codec[T]) Factory[T] {
	return FromWidget(kind, nil, codec)
}

// FromWidget returns a factory for questions drawn by invoke instead of the
// survey host, which lets callers add widget kinds without touching the
// restore logic. Missing codec functions default to Identity.
func FromWidget[T any](kind render.Kind, invoke render.RenderFunc, codec Codec[T]) Factory[T] {
	codec = codec.withDefaults()
	return func(s *Survey, label string, options ...QuestionOption) (*Component[T], error) {
		return declare(s, kind, invoke, codec, label, options...)
	}
}

func declare[T any](s *Survey, kind render.Kind, invoke render.RenderFunc, codec Codec[T], label string, options ...QuestionOption) (*Component[T], error) {
	if s == nil {
		return nil, fmt.Errorf("survey: survey is required")
	}
	cfg := questionConfig{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	id := strings.TrimSpace(cfg.id)
	auto := id == ""
	if auto {
		var err error
		if id, err = s.CreateID(label); err != nil {
			return nil, err
		}
	}

	key := strings.TrimSpace(cfg.key)
	if key == "" {
		key = s.widgetKey(id)
	}
	if cfg.invoke != nil {
		invoke = cfg.invoke
	}

	c := &Component[T]{
		survey:  s,
		id:      id,
		label:   label,
		key:     key,
		kind:    kind,
		codec:   codec,
		invoke:  invoke,
		options: cfg.options,
	}
	s.declare(id, label, key, auto)
	return c, nil
}

// ID returns the question id.
func (c *Component[T]) ID() string { return c.id }

// Label returns the label this component was declared with.
func (c *Component[T]) Label() string { return c.label }

// Key returns the widget key.
func (c *Component[T]) Key() string { return c.key }

// Kind returns the widget kind.
func (c *Component[T]) Kind() render.Kind { return c.kind }

// Value returns the stored (encoded) answer, nil before the first render.
func (c *Component[T]) Value() any {
	return c.survey.Get(c.id, FieldValue)
}

// Display renders the question once and returns the native answer.
func (c *Component[T]) Display(ctx context.Context) (T, error) {
	var zero T

	invoke := c.invoke
	if invoke == nil {
		if c.survey.host == nil {
			return zero, fmt.Errorf("survey: question %q: host is required", c.id)
		}
		invoke = c.survey.host.Render
	}

	c.restore()

	var current any
	if widgets := c.survey.widgets(); widgets != nil {
		current, _ = widgets.Get(c.key)
	}

	raw, err := invoke(ctx, render.Widget{
		Kind:    c.kind,
		Label:   c.label,
		Key:     c.key,
		Value:   current,
		Options: c.options.Clone(),
	})
	if err != nil {
		return zero, fmt.Errorf("survey: render %q: %w", c.id, err)
	}

	value, err := c.accept(raw)
	if err != nil {
		return zero, err
	}
	c.survey.capture(c.id, c.label, c.key, c.codec.Encode(value))
	return value, nil
}

// restore seeds the widget state with the stored answer when the host has
// no live value for the widget key. It runs before every render because the
// host drops the state of widgets it did not draw in the previous pass.
// A stored value the codec cannot decode (an import written for another
// question type) is treated as absent; the render then overwrites it.
func (c *Component[T]) restore() {
	widgets := c.survey.widgets()
	if widgets == nil {
		return
	}
	if _, live := widgets.Get(c.key); live {
		return
	}
	stored := c.survey.Get(c.id, FieldValue)
	if stored == nil {
		return
	}
	decoded, err := c.codec.Decode(stored)
	if err != nil {
		c.survey.logger.Warn("stored answer ignored", "survey", c.survey.label, "id", c.id, "widget_key", c.key, "error", err)
		return
	}
	widgets.Set(c.key, decoded)
	c.survey.logger.Debug("widget state restored", "survey", c.survey.label, "id", c.id, "widget_key", c.key)
}

func (c *Component[T]) accept(raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	if value, ok := raw.(T); ok {
		return value, nil
	}
	value, err := c.codec.Decode(raw)
	if err != nil {
		return zero, fmt.Errorf("survey: question %q: widget returned %T: %w", c.id, raw, err)
	}
	return value, nil
}

// QuestionOption configures a question at declaration time.
type QuestionOption func(*questionConfig)

type questionConfig struct {
	id      string
	key     string
	options render.Options
	invoke  render.RenderFunc
}

// WithID sets an explicit question id.
func WithID(id string) QuestionOption {
	return func(cfg *questionConfig) {
		cfg.id = id
	}
}

// WithKey overrides the generated widget key.
func WithKey(key string) QuestionOption {
	return func(cfg *questionConfig) {
		cfg.key = key
	}
}

// WithChoices sets the options of choice widgets.
func WithChoices(choices ...string) QuestionOption {
	return func(cfg *questionConfig) {
		cfg.options.Choices = append([]string(nil), choices...)
	}
}

// WithDefault sets the value shown before the user answers.
func WithDefault(value any) QuestionOption {
	return func(cfg *questionConfig) {
		cfg.options.Default = value
	}
}

// WithRange bounds numeric widgets.
func WithRange(min, max float64) QuestionOption {
	return func(cfg *questionConfig) {
		cfg.options.Min = render.Float(min)
		cfg.options.Max = render.Float(max)
	}
}

// WithStep sets the increment of numeric widgets.
func WithStep(step float64) QuestionOption {
	return func(cfg *questionConfig) {
		cfg.options.Step = render.Float(step)
	}
}

// WithHelp attaches help text.
func WithHelp(help string) QuestionOption {
	return func(cfg *questionConfig) {
		cfg.options.Help = help
	}
}

// WithPlaceholder sets the placeholder of text widgets.
func WithPlaceholder(placeholder string) QuestionOption {
	return func(cfg *questionConfig) {
		cfg.options.Placeholder = placeholder
	}
}

// WithHorizontal lays choice widgets out in a row.
func WithHorizontal() QuestionOption {
	return func(cfg *questionConfig) {
		cfg.options.Horizontal = true
	}
}

// WithDisabled renders the widget read-only.
func WithDisabled() QuestionOption {
	return func(cfg *questionConfig) {
		cfg.options.Disabled = true
	}
}

// WithExtra passes a host specific setting through untouched.
func WithExtra(name string, value any) QuestionOption {
	return func(cfg *questionConfig) {
		if cfg.options.Extra == nil {
			cfg.options.Extra = map[string]any{}
		}
		cfg.options.Extra[name] = value
	}
}

// WithOptions replaces every widget option at once.
func WithOptions(options render.Options) QuestionOption {
	return func(cfg *questionConfig) {
		cfg.options = options.Clone()
	}
}

// WithRender draws this question with invoke instead of the survey host.
func WithRender(invoke render.RenderFunc) QuestionOption {
	return func(cfg *questionConfig) {
		cfg.invoke = invoke
	}
}
