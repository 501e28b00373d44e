package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// TextPrompt asks for free text. Multiline selects an editor style prompt
// for text areas.
type TextPrompt struct {
	Message   string
	Default   string
	Help      string
	Multiline bool
}

// ChoicePrompt asks for one or more of Choices. Default is the preselected
// index of a single choice; Selected preselects several.
type ChoicePrompt struct {
	Message  string
	Choices  []string
	Default  int
	Selected []int
	Help     string
}

// ConfirmPrompt asks a yes or no question.
type ConfirmPrompt struct {
	Message string
	Default bool
	Help    string
}

// Prompter is what the host needs from a terminal: one call per widget kind
// and a plain line of output. Choice answers are indices into Choices.
type Prompter interface {
	Text(ctx context.Context, p TextPrompt) (string, error)
	Confirm(ctx context.Context, p ConfirmPrompt) (bool, error)
	Choose(ctx context.Context, p ChoicePrompt) (int, error)
	ChooseMany(ctx context.Context, p ChoicePrompt) ([]int, error)
	Print(ctx context.Context, msg string) error
}

// surveyPrompter asks through AlecAivazis/survey on the process terminal.
type surveyPrompter struct {
	out io.Writer
}

func newSurveyPrompter(out io.Writer) Prompter {
	if out == nil {
		out = os.Stdout
	}
	return &surveyPrompter{out: out}
}

// ask runs one prompt, mapping Ctrl-C to ErrAborted.
func ask[T any](ctx context.Context, prompt survey.Prompt) (T, error) {
	var out T
	if err := ctx.Err(); err != nil {
		return out, err
	}
	if err := survey.AskOne(prompt, &out); err != nil {
		return out, abortOnInterrupt(err)
	}
	return out, nil
}

func abortOnInterrupt(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}

func (p *surveyPrompter) Text(ctx context.Context, t TextPrompt) (string, error) {
	if t.Multiline {
		return ask[string](ctx, &survey.Multiline{Message: t.Message, Default: t.Default, Help: t.Help})
	}
	return ask[string](ctx, &survey.Input{Message: t.Message, Default: t.Default, Help: t.Help})
}

func (p *surveyPrompter) Confirm(ctx context.Context, c ConfirmPrompt) (bool, error) {
	return ask[bool](ctx, &survey.Confirm{Message: c.Message, Default: c.Default, Help: c.Help})
}

func (p *surveyPrompter) Choose(ctx context.Context, c ChoicePrompt) (int, error) {
	prompt := &survey.Select{Message: c.Message, Options: c.Choices, Help: c.Help}
	if c.Default >= 0 && c.Default < len(c.Choices) {
		prompt.Default = c.Choices[c.Default]
	}
	picked, err := ask[string](ctx, prompt)
	if err != nil {
		return 0, err
	}
	return indexOf(c.Choices, picked), nil
}

func (p *surveyPrompter) ChooseMany(ctx context.Context, c ChoicePrompt) ([]int, error) {
	prompt := &survey.MultiSelect{Message: c.Message, Options: c.Choices, Help: c.Help}
	if len(c.Selected) > 0 {
		prompt.Default = choicesAt(c.Choices, c.Selected)
	}
	picked, err := ask[[]string](ctx, prompt)
	if err != nil {
		return nil, err
	}
	return indicesOf(c.Choices, picked), nil
}

func (p *surveyPrompter) Print(ctx context.Context, msg string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(p.out, msg)
	return err
}

func indexOf(choices []string, value string) int {
	for i, choice := range choices {
		if choice == value {
			return i
		}
	}
	return -1
}

// indicesOf keeps the order of choices, not of values.
func indicesOf(choices, values []string) []int {
	picked := make(map[string]bool, len(values))
	for _, v := range values {
		picked[v] = true
	}
	var out []int
	for i, choice := range choices {
		if picked[choice] {
			out = append(out, i)
		}
	}
	return out
}

func choicesAt(choices []string, indices []int) []string {
	var out []string
	for _, idx := range indices {
		if idx >= 0 && idx < len(choices) {
			out = append(out, choices[idx])
		}
	}
	return out
}
