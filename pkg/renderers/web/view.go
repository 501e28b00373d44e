package web

import (
	"fmt"
	"strconv"
	"time"

	"github.com/goliatone/go-survey/pkg/render"
	"github.com/goliatone/go-survey/pkg/survey"
)

// widgetView is the template facing form of a widget.
type widgetView struct {
	ID          string
	Key         string
	Kind        string
	Label       string
	Help        string
	Placeholder string
	Value       string
	Checked     bool
	Choices     []choiceView
	Min         string
	Max         string
	Step        string
	Horizontal  bool
	Disabled    bool
}

type choiceView struct {
	Value    string
	Selected bool
}

func newWidgetView(w render.Widget, value any) widgetView {
	view := widgetView{
		ID:          w.Key,
		Key:         w.Key,
		Kind:        string(w.Kind),
		Label:       sanitizeText(w.Label),
		Help:        sanitizeText(w.Options.Help),
		Placeholder: w.Options.Placeholder,
		Min:         formatBound(w.Options.Min),
		Max:         formatBound(w.Options.Max),
		Step:        formatBound(w.Options.Step),
		Horizontal:  w.Options.Horizontal,
		Disabled:    w.Options.Disabled,
	}

	selected := map[string]bool{}
	switch typed := value.(type) {
	case bool:
		view.Checked = typed
	case []string:
		for _, v := range typed {
			selected[v] = true
		}
	case string:
		view.Value = typed
		selected[typed] = true
	case float64:
		view.Value = strconv.FormatFloat(typed, 'f', -1, 64)
	case time.Time:
		view.Value = formatClock(w.Kind, typed)
	case nil:
	default:
		view.Value = fmt.Sprint(typed)
	}
	for _, c := range w.Options.Choices {
		view.Choices = append(view.Choices, choiceView{Value: c, Selected: selected[c]})
	}
	return view
}

func formatBound(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func formatClock(kind render.Kind, t time.Time) string {
	if t.IsZero() {
		return ""
	}
	if kind == render.KindTimeInput {
		return t.Format(survey.TimeLayout)
	}
	return t.Format(survey.DateLayout)
}

func percent(progress float64) string {
	return strconv.FormatFloat(min(max(progress, 0), 1)*100, 'f', 0, 64)
}
