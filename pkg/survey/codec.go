package survey

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	// DateLayout is the stored form of date answers.
	DateLayout = "2006-01-02"
	// TimeLayout is the stored form of time answers.
	TimeLayout = "15:04:05"
)

// Codec converts between the native value a widget works with and the JSON
// friendly form kept in Answers. Encode runs after every render; Decode runs
// when a stored answer is restored into the widget state.
type Codec[T any] struct {
	Encode func(T) any
	Decode func(any) (T, error)
}

// Identity stores native values as they are and restores them with a type
// assertion.
func Identity[T any]() Codec[T] {
	return Codec[T]{
		Encode: func(v T) any { return v },
		Decode: assertDecode[T],
	}
}

func (c Codec[T]) withDefaults() Codec[T] {
	if c.Encode == nil {
		c.Encode = func(v T) any { return v }
	}
	if c.Decode == nil {
		c.Decode = assertDecode[T]
	}
	return c
}

func assertDecode[T any](v any) (T, error) {
	if typed, ok := v.(T); ok {
		return typed, nil
	}
	var zero T
	return zero, fmt.Errorf("survey: cannot decode %T as %T", v, zero)
}

var (
	// StringCodec backs text and single choice widgets.
	StringCodec = Codec[string]{
		Encode: func(v string) any { return v },
		Decode: decodeString,
	}
	// NumberCodec backs number inputs and numeric sliders.
	NumberCodec = Codec[float64]{
		Encode: func(v float64) any { return v },
		Decode: decodeNumber,
	}
	// BoolCodec backs checkboxes.
	BoolCodec = Codec[bool]{
		Encode: func(v bool) any { return v },
		Decode: assertDecode[bool],
	}
	// StringsCodec backs multiselects. Imported JSON arrays arrive as []any.
	StringsCodec = Codec[[]string]{
		Encode: func(v []string) any { return append([]string{}, v...) },
		Decode: decodeStrings,
	}
	// DateCodec stores dates as YYYY-MM-DD.
	DateCodec = Codec[time.Time]{
		Encode: encodeDate,
		Decode: decodeDate,
	}
	// TimeCodec stores times of day as HH:MM:SS.
	TimeCodec = Codec[time.Time]{
		Encode: encodeTime,
		Decode: decodeTime,
	}
)

func decodeString(v any) (string, error) {
	switch typed := v.(type) {
	case string:
		return typed, nil
	case fmt.Stringer:
		return typed.String(), nil
	default:
		return "", fmt.Errorf("survey: cannot decode %T as string", v)
	}
}

func decodeNumber(v any) (float64, error) {
	var (
		f   float64
		err error
	)
	switch typed := v.(type) {
	case float64:
		f = typed
	case float32:
		f = float64(typed)
	case int:
		f = float64(typed)
	case int64:
		f = float64(typed)
	case json.Number:
		f, err = typed.Float64()
	default:
		return 0, fmt.Errorf("survey: cannot decode %T as number", v)
	}
	if err != nil {
		return 0, err
	}
	return finite(f)
}

// ParseNumber parses user input for number widgets. NaN and infinities are
// rejected: answers must stay JSON encodable.
func ParseNumber(raw string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("survey: %q is not a number", raw)
	}
	return finite(f)
}

func finite(f float64) (float64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("survey: %v is not a finite number", f)
	}
	return f, nil
}

func decodeStrings(v any) ([]string, error) {
	switch typed := v.(type) {
	case []string:
		return append([]string{}, typed...), nil
	case []any:
		out := make([]string, 0, len(typed))
		for _, item := range typed {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("survey: cannot decode list item %T as string", item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("survey: cannot decode %T as string list", v)
	}
}

func encodeDate(v time.Time) any {
	if v.IsZero() {
		return nil
	}
	return v.Format(DateLayout)
}

func decodeDate(v any) (time.Time, error) {
	switch typed := v.(type) {
	case time.Time:
		return dateOnly(typed), nil
	case string:
		raw := strings.TrimSpace(typed)
		for _, layout := range []string{DateLayout, time.RFC3339, "2006-01-02T15:04:05"} {
			if t, err := time.Parse(layout, raw); err == nil {
				return dateOnly(t), nil
			}
		}
		return time.Time{}, fmt.Errorf("survey: invalid date %q", typed)
	default:
		return time.Time{}, fmt.Errorf("survey: cannot decode %T as date", v)
	}
}

func encodeTime(v time.Time) any {
	if v.IsZero() {
		return nil
	}
	return v.Format(TimeLayout)
}

func decodeTime(v any) (time.Time, error) {
	switch typed := v.(type) {
	case time.Time:
		return clockOnly(typed), nil
	case string:
		raw := strings.TrimSpace(typed)
		for _, layout := range []string{TimeLayout, "15:04", "15:04:05.999999"} {
			if t, err := time.Parse(layout, raw); err == nil {
				return clockOnly(t), nil
			}
		}
		return time.Time{}, fmt.Errorf("survey: invalid time %q", typed)
	default:
		return time.Time{}, fmt.Errorf("survey: cannot decode %T as time", v)
	}
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func clockOnly(t time.Time) time.Time {
	return time.Date(0, time.January, 1, t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}
