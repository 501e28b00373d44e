package orchestrator

import (
	"context"
	"fmt"

	"github.com/goliatone/go-survey/pkg/model"
	"github.com/goliatone/go-survey/pkg/render"
	"github.com/goliatone/go-survey/pkg/survey"
)

func display(ctx context.Context, s *survey.Survey, question model.Question, id string, page int) error {
	kind := question.RenderKind()
	options := question.Options()
	if err := nativeDefault(kind, &options); err != nil {
		return fmt.Errorf("orchestrator: question %q: %w", id, err)
	}
	label := question.ExpandLabel(page)
	opts := []survey.QuestionOption{survey.WithID(id), survey.WithOptions(options)}

	var err error
	switch kind {
	case render.KindTextInput:
		_, err = survey.Display(ctx, s, survey.TextInput, label, opts...)
	case render.KindTextArea:
		_, err = survey.Display(ctx, s, survey.TextArea, label, opts...)
	case render.KindNumberInput:
		_, err = survey.Display(ctx, s, survey.NumberInput, label, opts...)
	case render.KindMultiSelect:
		_, err = survey.Display(ctx, s, survey.MultiSelect, label, opts...)
	case render.KindSelectBox:
		_, err = survey.Display(ctx, s, survey.SelectBox, label, opts...)
	case render.KindRadio:
		_, err = survey.Display(ctx, s, survey.Radio, label, opts...)
	case render.KindSlider:
		_, err = survey.Display(ctx, s, survey.Slider, label, opts...)
	case render.KindSelectSlider:
		_, err = survey.Display(ctx, s, survey.SelectSlider, label, opts...)
	case render.KindCheckbox:
		_, err = survey.Display(ctx, s, survey.CheckBox, label, opts...)
	case render.KindDateInput:
		_, err = survey.Display(ctx, s, survey.DateInput, label, opts...)
	case render.KindTimeInput:
		_, err = survey.Display(ctx, s, survey.TimeInput, label, opts...)
	default:
		return fmt.Errorf("orchestrator: question %q: unsupported widget kind %q", id, question.Kind)
	}
	return err
}

// nativeDefault converts definition defaults (strings and plain numbers from
// JSON or YAML) into the native value the widget kind works with.
func nativeDefault(kind render.Kind, options *render.Options) error {
	if options.Default == nil {
		return nil
	}
	var err error
	switch kind {
	case render.KindDateInput:
		options.Default, err = survey.DateCodec.Decode(options.Default)
	case render.KindTimeInput:
		options.Default, err = survey.TimeCodec.Decode(options.Default)
	case render.KindNumberInput, render.KindSlider:
		options.Default, err = survey.NumberCodec.Decode(options.Default)
	case render.KindMultiSelect:
		options.Default, err = survey.StringsCodec.Decode(options.Default)
	}
	if err != nil {
		return fmt.Errorf("invalid default: %w", err)
	}
	return nil
}
