// Package widgets picks a widget kind for questions whose definition leaves
// the kind out.
package widgets

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-survey/pkg/model"
	"github.com/goliatone/go-survey/pkg/render"
)

// Matcher decides whether a widget kind should handle the supplied question.
type Matcher func(question model.Question) bool

type rule struct {
	kind     render.Kind
	priority int
	match    Matcher
	order    int
}

// Registry selects widget kinds for questions based on an explicit kind or
// registered matchers. Higher priority wins; ties fall back to registration
// order. An empty registry only honours explicit kinds.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRegistry constructs a registry with the built-in matchers registered.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// Register adds a matcher for kind. Callers should avoid registering the
// same kind twice; every registration is evaluated.
func (r *Registry) Register(kind render.Kind, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	if strings.TrimSpace(string(kind)) == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		kind:     kind,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the widget kind for a question. A valid explicit kind is
// honoured before matcher evaluation.
func (r *Registry) Resolve(question model.Question) (render.Kind, bool) {
	if explicit := question.RenderKind(); explicit != "" {
		return explicit, true
	}
	if r == nil {
		return "", false
	}
	r.mu.RLock()
	if len(r.rules) == 0 {
		r.mu.RUnlock()
		return "", false
	}
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(question) {
			return entry.kind, true
		}
	}
	return "", false
}

// Decorate implements model.Decorator, filling in the kind of every question
// that has none. Questions with a kind are left untouched, valid or not, so
// validation can report the bad value.
func (r *Registry) Decorate(def *model.Definition) error {
	if r == nil || def == nil {
		return nil
	}
	for p := range def.Pages {
		questions := def.Pages[p].Questions
		for q := range questions {
			if strings.TrimSpace(questions[q].Kind) != "" {
				continue
			}
			if kind, ok := r.Resolve(questions[q]); ok {
				questions[q].Kind = string(kind)
			}
		}
	}
	return nil
}

func (r *Registry) registerBuiltins() {
	r.Register(render.KindCheckbox, 90, func(q model.Question) bool {
		_, ok := q.Default.(bool)
		return ok && len(q.Choices) == 0
	})

	r.Register(render.KindMultiSelect, 80, func(q model.Question) bool {
		return q.Multiple && len(q.Choices) > 0
	})

	r.Register(render.KindSelectSlider, 75, func(q model.Question) bool {
		return len(q.Choices) > 0 && q.Step != nil
	})

	r.Register(render.KindRadio, 70, func(q model.Question) bool {
		return len(q.Choices) > 0 && (q.Horizontal || len(q.Choices) <= 5)
	})

	r.Register(render.KindSelectBox, 60, func(q model.Question) bool {
		return len(q.Choices) > 0
	})

	r.Register(render.KindSlider, 50, func(q model.Question) bool {
		return q.Min != nil && q.Max != nil && q.Step != nil
	})

	r.Register(render.KindNumberInput, 40, func(q model.Question) bool {
		if q.Min != nil || q.Max != nil || q.Step != nil {
			return true
		}
		switch q.Default.(type) {
		case int, int64, float64:
			return true
		}
		return false
	})

	r.Register(render.KindTextArea, 30, func(q model.Question) bool {
		return len(q.Placeholder) > 80 || strings.Contains(q.Placeholder, "\n")
	})

	r.Register(render.KindTextInput, 0, func(model.Question) bool {
		return true
	})
}
