// Package tui is a terminal host for surveys. Every render pass prompts the
// questions of the current page in order and ends with a navigation prompt.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-survey/pkg/render"
	"github.com/goliatone/go-survey/pkg/session"
	"github.com/goliatone/go-survey/pkg/survey"
)

// Host implements render.Host and render.Navigator on top of a Prompter.
type Host struct {
	prompt  Prompter
	out     io.Writer
	session session.Store
	widgets *session.WidgetState
	theme   Theme
	logger  *slog.Logger
}

var (
	_ render.Host      = (*Host)(nil)
	_ render.Navigator = (*Host)(nil)
)

// New constructs a terminal host. Without WithPrompter it asks on the
// process terminal and keeps answers in memory.
func New(options ...Option) (*Host, error) {
	h := &Host{
		session: session.NewMemory(),
		widgets: session.NewWidgetState(),
		theme:   Theme{ErrorPrefix: "! ", ProgressWidth: 20},
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(h)
	}
	if h.prompt == nil {
		h.prompt = newSurveyPrompter(h.out)
	}
	if h.theme.ProgressWidth <= 0 {
		h.theme.ProgressWidth = 20
	}
	return h, nil
}

// Session implements render.Host.
func (h *Host) Session() session.Store { return h.session }

// Widgets implements render.Host.
func (h *Host) Widgets() session.Store { return h.widgets }

// Pass runs fn as one render pass. Widgets fn does not draw lose their
// terminal state when it returns.
func (h *Host) Pass(ctx context.Context, fn func(context.Context) error) error {
	if ctx == nil {
		return errors.New("tui: context is required")
	}
	h.widgets.BeginPass()
	err := fn(ctx)
	if dropped := h.widgets.EndPass(); len(dropped) > 0 {
		h.logger.Debug("widget state dropped", "keys", dropped)
	}
	return err
}

// Render implements render.Host by prompting for one widget.
func (h *Host) Render(ctx context.Context, w render.Widget) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if h.prompt == nil {
		return nil, errors.New("tui: prompter is nil")
	}

	var (
		value any
		err   error
	)
	switch w.Kind {
	case render.KindTextInput:
		value, err = h.prompt.Text(ctx, TextPrompt{Message: w.Label, Default: h.text(w), Help: w.Options.Help})
	case render.KindTextArea:
		value, err = h.prompt.Text(ctx, TextPrompt{Message: w.Label, Default: h.text(w), Help: w.Options.Help, Multiline: true})
	case render.KindNumberInput, render.KindSlider:
		value, err = h.promptNumber(ctx, w)
	case render.KindSelectBox, render.KindRadio, render.KindSelectSlider:
		value, err = h.promptChoice(ctx, w)
	case render.KindMultiSelect:
		value, err = h.promptMulti(ctx, w)
	case render.KindCheckbox:
		value, err = h.promptConfirm(ctx, w)
	case render.KindDateInput:
		value, err = h.promptClock(ctx, w, survey.DateCodec, survey.DateLayout)
	case render.KindTimeInput:
		value, err = h.promptClock(ctx, w, survey.TimeCodec, survey.TimeLayout)
	case render.KindButton:
		if w.Options.Disabled {
			return false, nil
		}
		return h.prompt.Confirm(ctx, ConfirmPrompt{Message: w.Label})
	case render.KindProgress:
		progress, _ := w.Value.(float64)
		return progress, h.info(ctx, h.progressBar(progress))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedKind, w.Kind)
	}
	if err != nil {
		return nil, err
	}
	h.widgets.Set(w.Key, value)
	return value, nil
}

// Navigate implements render.Navigator with a single select prompt.
func (h *Host) Navigate(ctx context.Context, nav render.Navigation) (render.Action, error) {
	if nav.ShowProgress {
		if err := h.info(ctx, h.progressBar(nav.Progress)); err != nil {
			return render.ActionNone, err
		}
	}

	var (
		options []string
		actions []render.Action
	)
	if nav.CanPrevious {
		options = append(options, nav.PreviousLabel)
		actions = append(actions, render.ActionPrevious)
	}
	switch {
	case nav.CanSubmit:
		options = append(options, nav.SubmitLabel)
		actions = append(actions, render.ActionSubmit)
	case nav.CanNext:
		options = append(options, nav.NextLabel)
		actions = append(actions, render.ActionNext)
	}
	options = append(options, "Stay on this page")
	actions = append(actions, render.ActionNone)

	idx, err := h.prompt.Choose(ctx, ChoicePrompt{
		Message: fmt.Sprintf("Page %d of %d: %s", nav.Page+1, nav.Pages, nav.Label),
		Choices: options,
		Default: len(options) - 2,
	})
	if err != nil {
		return render.ActionNone, err
	}
	if idx < 0 || idx >= len(actions) {
		return render.ActionNone, nil
	}
	return actions[idx], nil
}

func (h *Host) text(w render.Widget) string {
	switch typed := current(w).(type) {
	case string:
		return typed
	case nil:
		return ""
	default:
		return fmt.Sprint(typed)
	}
}

func (h *Host) promptNumber(ctx context.Context, w render.Widget) (float64, error) {
	defaultStr := ""
	if v, err := survey.NumberCodec.Decode(current(w)); err == nil {
		defaultStr = strconv.FormatFloat(v, 'f', -1, 64)
	}
	help := w.Options.Help
	if bounds := describeRange(w.Options); bounds != "" {
		help = strings.TrimSpace(help + " " + bounds)
	}

	for {
		input, err := h.prompt.Text(ctx, TextPrompt{Message: w.Label, Default: defaultStr, Help: help})
		if err != nil {
			return 0, err
		}
		trimmed := strings.TrimSpace(input)
		if trimmed == "" {
			trimmed = defaultStr
		}
		if trimmed == "" {
			if w.Options.Min != nil {
				return *w.Options.Min, nil
			}
			return 0, nil
		}
		parsed, err := survey.ParseNumber(trimmed)
		if err != nil {
			_ = h.invalid(ctx, w.Label, err)
			continue
		}
		if !w.Options.InRange(parsed) {
			_ = h.invalid(ctx, w.Label, fmt.Errorf("out of range %s", describeRange(w.Options)))
			continue
		}
		return parsed, nil
	}
}

func (h *Host) promptChoice(ctx context.Context, w render.Widget) (string, error) {
	if len(w.Options.Choices) == 0 {
		return "", fmt.Errorf("tui: %q has no choices", w.Label)
	}
	defaultIdx := 0
	if v, ok := current(w).(string); ok {
		if idx := indexOf(w.Options.Choices, v); idx >= 0 {
			defaultIdx = idx
		}
	}
	idx, err := h.prompt.Choose(ctx, ChoicePrompt{
		Message: w.Label,
		Choices: w.Options.Choices,
		Default: defaultIdx,
		Help:    w.Options.Help,
	})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(w.Options.Choices) {
		return w.Options.Choices[defaultIdx], nil
	}
	return w.Options.Choices[idx], nil
}

func (h *Host) promptMulti(ctx context.Context, w render.Widget) ([]string, error) {
	var defaults []int
	if v, err := survey.StringsCodec.Decode(current(w)); err == nil {
		defaults = indicesOf(w.Options.Choices, v)
	}
	indices, err := h.prompt.ChooseMany(ctx, ChoicePrompt{
		Message:  w.Label,
		Choices:  w.Options.Choices,
		Selected: defaults,
		Help:     w.Options.Help,
	})
	if err != nil {
		return nil, err
	}
	return choicesAt(w.Options.Choices, indices), nil
}

func (h *Host) promptConfirm(ctx context.Context, w render.Widget) (bool, error) {
	def, _ := current(w).(bool)
	return h.prompt.Confirm(ctx, ConfirmPrompt{Message: w.Label, Default: def, Help: w.Options.Help})
}

func (h *Host) promptClock(ctx context.Context, w render.Widget, codec survey.Codec[time.Time], layout string) (time.Time, error) {
	defaultStr := ""
	if v, err := codec.Decode(current(w)); err == nil && !v.IsZero() {
		defaultStr = v.Format(layout)
	}
	help := strings.TrimSpace(w.Options.Help + " (" + layoutHint(layout) + ")")

	for {
		input, err := h.prompt.Text(ctx, TextPrompt{Message: w.Label, Default: defaultStr, Help: help})
		if err != nil {
			return time.Time{}, err
		}
		trimmed := strings.TrimSpace(input)
		if trimmed == "" {
			trimmed = defaultStr
		}
		if trimmed == "" {
			return time.Time{}, nil
		}
		parsed, err := codec.Decode(trimmed)
		if err != nil {
			_ = h.invalid(ctx, w.Label, err)
			continue
		}
		return parsed, nil
	}
}

func (h *Host) invalid(ctx context.Context, label string, err error) error {
	return h.prompt.Print(ctx, fmt.Sprintf("%sInvalid %s: %v", h.theme.ErrorPrefix, label, err))
}

func (h *Host) info(ctx context.Context, msg string) error {
	return h.prompt.Print(ctx, h.theme.InfoPrefix+msg)
}

func (h *Host) progressBar(progress float64) string {
	progress = min(max(progress, 0), 1)
	width := h.theme.ProgressWidth
	filled := int(progress*float64(width) + 0.5)
	return fmt.Sprintf("[%s%s] %3.0f%%", strings.Repeat("#", filled), strings.Repeat("-", width-filled), progress*100)
}

// current is the live widget value, or the default before the first answer.
func current(w render.Widget) any {
	if w.Value != nil {
		return w.Value
	}
	return w.Options.Default
}

func describeRange(opts render.Options) string {
	switch {
	case opts.Min != nil && opts.Max != nil:
		return fmt.Sprintf("[%g, %g]", *opts.Min, *opts.Max)
	case opts.Min != nil:
		return fmt.Sprintf(">= %g", *opts.Min)
	case opts.Max != nil:
		return fmt.Sprintf("<= %g", *opts.Max)
	default:
		return ""
	}
}

func layoutHint(layout string) string {
	switch layout {
	case survey.DateLayout:
		return "YYYY-MM-DD"
	case survey.TimeLayout:
		return "HH:MM or HH:MM:SS"
	default:
		return layout
	}
}
