package render

import "math"

// Options are the pass-through configuration values of a widget. Hosts
// ignore fields that do not apply to the widget kind.
type Options struct {
	Choices     []string
	Default     any
	Min         *float64
	Max         *float64
	Step        *float64
	Help        string
	Placeholder string
	Horizontal  bool
	Disabled    bool
	// Extra carries host specific settings untouched.
	Extra map[string]any
}

// Float returns a pointer to v, handy when filling Min/Max/Step.
func Float(v float64) *float64 {
	return &v
}

// Clone returns a deep copy of the options.
func (o Options) Clone() Options {
	out := o
	if o.Choices != nil {
		out.Choices = append([]string(nil), o.Choices...)
	}
	if o.Extra != nil {
		out.Extra = make(map[string]any, len(o.Extra))
		for k, v := range o.Extra {
			out.Extra[k] = v
		}
	}
	return out
}

// InRange reports whether v satisfies Min and Max when they are set.
func (o Options) InRange(v float64) bool {
	if math.IsNaN(v) {
		return false
	}
	if o.Min != nil && v < *o.Min {
		return false
	}
	if o.Max != nil && v > *o.Max {
		return false
	}
	return true
}
