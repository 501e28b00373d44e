package model

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-survey/pkg/render"
)

// PagePlaceholder is replaced by the page index in question ids and labels.
const PagePlaceholder = "{page}"

// Definition describes a whole survey.
type Definition struct {
	Label       string  `json:"label" yaml:"label" validate:"required"`
	AutoID      *bool   `json:"auto_id,omitempty" yaml:"auto_id,omitempty"`
	ProgressBar bool    `json:"progress_bar,omitempty" yaml:"progress_bar,omitempty"`
	Buttons     Buttons `json:"buttons,omitempty" yaml:"buttons,omitempty"`
	Pages       []Page  `json:"pages" yaml:"pages" validate:"required,min=1,dive"`
	// Source records where the definition was loaded from.
	Source string `json:"-" yaml:"-"`
}

// Buttons overrides the navigation captions.
type Buttons struct {
	Previous string `json:"previous,omitempty" yaml:"previous,omitempty"`
	Next     string `json:"next,omitempty" yaml:"next,omitempty"`
	Submit   string `json:"submit,omitempty" yaml:"submit,omitempty"`
}

// Page groups the questions drawn together.
type Page struct {
	Label     string     `json:"label,omitempty" yaml:"label,omitempty"`
	Questions []Question `json:"questions" yaml:"questions" validate:"dive"`
}

// Question is one declared question. Kind may be left empty and resolved by
// a widgets.Registry from the other settings.
type Question struct {
	ID          string   `json:"id,omitempty" yaml:"id,omitempty"`
	Kind        string   `json:"kind,omitempty" yaml:"kind,omitempty" validate:"omitempty,widget_kind"`
	Label       string   `json:"label" yaml:"label" validate:"required"`
	Choices     []string `json:"choices,omitempty" yaml:"choices,omitempty"`
	Multiple    bool     `json:"multiple,omitempty" yaml:"multiple,omitempty"`
	Default     any      `json:"default,omitempty" yaml:"default,omitempty"`
	Min         *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max         *float64 `json:"max,omitempty" yaml:"max,omitempty"`
	Step        *float64 `json:"step,omitempty" yaml:"step,omitempty" validate:"omitempty,gt=0"`
	Help        string   `json:"help,omitempty" yaml:"help,omitempty"`
	Placeholder string   `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Horizontal  bool     `json:"horizontal,omitempty" yaml:"horizontal,omitempty"`
	VisibleIf   string   `json:"visible_if,omitempty" yaml:"visible_if,omitempty"`
}

// AutoIDEnabled reports whether positional ids are used; it defaults to true.
func (d Definition) AutoIDEnabled() bool {
	return d.AutoID == nil || *d.AutoID
}

// PageLabels returns the page labels, falling back to "Page N".
func (d Definition) PageLabels() []string {
	labels := make([]string, len(d.Pages))
	for i, page := range d.Pages {
		labels[i] = page.Label
		if strings.TrimSpace(labels[i]) == "" {
			labels[i] = "Page " + strconv.Itoa(i+1)
		}
	}
	return labels
}

// QuestionIDs resolves the id of every question, indexed by page and then
// question. Without an explicit id a question gets Q<n> from its position in
// the whole definition, or "" when auto ids are off.
func (d Definition) QuestionIDs() [][]string {
	autoID := d.AutoIDEnabled()
	ids := make([][]string, len(d.Pages))
	n := 0
	for p, page := range d.Pages {
		ids[p] = make([]string, len(page.Questions))
		for q, question := range page.Questions {
			n++
			switch id := question.ExpandID(p); {
			case id != "":
				ids[p][q] = id
			case autoID:
				ids[p][q] = "Q" + strconv.Itoa(n)
			}
		}
	}
	return ids
}

// RenderKind parses Kind. An empty or unknown kind yields "".
func (q Question) RenderKind() render.Kind {
	kind, err := render.ParseKind(q.Kind)
	if err != nil {
		return ""
	}
	return kind
}

// ExpandID returns the id with the page placeholder expanded.
func (q Question) ExpandID(page int) string {
	return expand(q.ID, page)
}

// ExpandLabel returns the label with the page placeholder expanded.
func (q Question) ExpandLabel(page int) string {
	return expand(q.Label, page)
}

// Options converts the question settings into widget options.
func (q Question) Options() render.Options {
	opts := render.Options{
		Choices:     append([]string(nil), q.Choices...),
		Default:     q.Default,
		Help:        q.Help,
		Placeholder: q.Placeholder,
		Horizontal:  q.Horizontal,
	}
	if q.Min != nil {
		opts.Min = render.Float(*q.Min)
	}
	if q.Max != nil {
		opts.Max = render.Float(*q.Max)
	}
	if q.Step != nil {
		opts.Step = render.Float(*q.Step)
	}
	return opts
}

func expand(value string, page int) string {
	if !strings.Contains(value, PagePlaceholder) {
		return value
	}
	return strings.ReplaceAll(value, PagePlaceholder, strconv.Itoa(page))
}
