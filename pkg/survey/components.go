package survey

import (
	"context"
	"time"

	"github.com/goliatone/go-survey/pkg/render"
)

// Built-in question factories.
var (
	TextInput    = Define(render.KindTextInput, StringCodec)
	TextArea     = Define(render.KindTextArea, StringCodec)
	NumberInput  = Define(render.KindNumberInput, NumberCodec)
	MultiSelect  = Define(render.KindMultiSelect, StringsCodec)
	SelectBox    = Define(render.KindSelectBox, StringCodec)
	Radio        = Define(render.KindRadio, StringCodec)
	Slider       = Define(render.KindSlider, NumberCodec)
	SelectSlider = Define(render.KindSelectSlider, StringCodec)
	CheckBox     = Define(render.KindCheckbox, BoolCodec)
	DateInput    = Define(render.KindDateInput, DateCodec)
	TimeInput    = Define(render.KindTimeInput, TimeCodec)
)

var (
	// ThumbsChoices are the options of Thumbs questions.
	ThumbsChoices = []string{"👍", "👎"}
	// FacesChoices are the options of Faces questions, worst to best.
	FacesChoices = []string{"😞", "🙁", "😐", "🙂", "😀"}
)

// Thumbs declares a horizontal thumbs up/down radio.
func Thumbs(s *Survey, label string, options ...QuestionOption) (*Component[string], error) {
	preset := []QuestionOption{WithChoices(ThumbsChoices...), WithHorizontal()}
	return Radio(s, label, append(preset, options...)...)
}

// Faces declares a horizontal five point faces radio.
func Faces(s *Survey, label string, options ...QuestionOption) (*Component[string], error) {
	preset := []QuestionOption{WithChoices(FacesChoices...), WithHorizontal()}
	return Radio(s, label, append(preset, options...)...)
}

// Display declares a question with factory and renders it immediately.
func Display[T any](ctx context.Context, s *Survey, factory Factory[T], label string, options ...QuestionOption) (T, error) {
	c, err := factory(s, label, options...)
	if err != nil {
		var zero T
		return zero, err
	}
	return c.Display(ctx)
}

func (s *Survey) TextInput(ctx context.Context, label string, options ...QuestionOption) (string, error) {
	return Display(ctx, s, TextInput, label, options...)
}

func (s *Survey) TextArea(ctx context.Context, label string, options ...QuestionOption) (string, error) {
	return Display(ctx, s, TextArea, label, options...)
}

func (s *Survey) NumberInput(ctx context.Context, label string, options ...QuestionOption) (float64, error) {
	return Display(ctx, s, NumberInput, label, options...)
}

func (s *Survey) MultiSelect(ctx context.Context, label string, options ...QuestionOption) ([]string, error) {
	return Display(ctx, s, MultiSelect, label, options...)
}

func (s *Survey) SelectBox(ctx context.Context, label string, options ...QuestionOption) (string, error) {
	return Display(ctx, s, SelectBox, label, options...)
}

func (s *Survey) Radio(ctx context.Context, label string, options ...QuestionOption) (string, error) {
	return Display(ctx, s, Radio, label, options...)
}

func (s *Survey) Slider(ctx context.Context, label string, options ...QuestionOption) (float64, error) {
	return Display(ctx, s, Slider, label, options...)
}

func (s *Survey) SelectSlider(ctx context.Context, label string, options ...QuestionOption) (string, error) {
	return Display(ctx, s, SelectSlider, label, options...)
}

func (s *Survey) CheckBox(ctx context.Context, label string, options ...QuestionOption) (bool, error) {
	return Display(ctx, s, CheckBox, label, options...)
}

func (s *Survey) DateInput(ctx context.Context, label string, options ...QuestionOption) (time.Time, error) {
	return Display(ctx, s, DateInput, label, options...)
}

func (s *Survey) TimeInput(ctx context.Context, label string, options ...QuestionOption) (time.Time, error) {
	return Display(ctx, s, TimeInput, label, options...)
}

func (s *Survey) Thumbs(ctx context.Context, label string, options ...QuestionOption) (string, error) {
	return Display[string](ctx, s, Thumbs, label, options...)
}

func (s *Survey) Faces(ctx context.Context, label string, options ...QuestionOption) (string, error) {
	return Display[string](ctx, s, Faces, label, options...)
}
