package render

import (
	"fmt"
	"strings"
)

// Kind tags the supported widget variants. The comment next to each kind
// names the native value type hosts exchange for it.
type Kind string

const (
	KindTextInput    Kind = "text_input"    // string
	KindTextArea     Kind = "text_area"     // string
	KindNumberInput  Kind = "number_input"  // float64
	KindMultiSelect  Kind = "multiselect"   // []string
	KindSelectBox    Kind = "selectbox"     // string
	KindRadio        Kind = "radio"         // string
	KindSlider       Kind = "slider"        // float64
	KindSelectSlider Kind = "select_slider" // string
	KindCheckbox     Kind = "checkbox"      // bool
	KindDateInput    Kind = "date_input"    // time.Time, midnight UTC
	KindTimeInput    Kind = "time_input"    // time.Time, clock only
	KindButton       Kind = "button"        // bool, true when activated
	KindProgress     Kind = "progress"      // Value is a float64 in [0, 1]
)

var kindAliases = map[string]Kind{
	"text":         KindTextInput,
	"textarea":     KindTextArea,
	"number":       KindNumberInput,
	"multichoice":  KindMultiSelect,
	"multi_select": KindMultiSelect,
	"select":       KindSelectBox,
	"date":         KindDateInput,
	"dateinput":    KindDateInput,
	"time":         KindTimeInput,
	"timeinput":    KindTimeInput,
}

var knownKinds = map[Kind]struct{}{
	KindTextInput: {}, KindTextArea: {}, KindNumberInput: {}, KindMultiSelect: {},
	KindSelectBox: {}, KindRadio: {}, KindSlider: {}, KindSelectSlider: {},
	KindCheckbox: {}, KindDateInput: {}, KindTimeInput: {}, KindButton: {},
	KindProgress: {},
}

// ParseKind resolves a kind name or alias, case and dash insensitive.
func ParseKind(raw string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(raw))
	name = strings.ReplaceAll(name, "-", "_")
	if name == "" {
		return "", fmt.Errorf("render: widget kind is required")
	}
	if _, ok := knownKinds[Kind(name)]; ok {
		return Kind(name), nil
	}
	if kind, ok := kindAliases[name]; ok {
		return kind, nil
	}
	return "", fmt.Errorf("render: unknown widget kind %q", raw)
}

// Input reports whether the kind collects an answer (buttons and progress
// indicators do not).
func (k Kind) Input() bool {
	switch k {
	case KindButton, KindProgress, "":
		return false
	default:
		return true
	}
}

// HasChoices reports whether the kind picks from Options.Choices.
func (k Kind) HasChoices() bool {
	switch k {
	case KindMultiSelect, KindSelectBox, KindRadio, KindSelectSlider:
		return true
	default:
		return false
	}
}
