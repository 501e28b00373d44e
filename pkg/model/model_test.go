package model

import (
	"errors"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-survey/pkg/render"
)

func TestLoad_YAMLDefinition(t *testing.T) {
	def, err := Load("testdata/feedback.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if def.AutoIDEnabled() {
		t.Fatalf("expected auto ids disabled")
	}
	if !def.ProgressBar || def.Buttons.Submit != "Send" {
		t.Fatalf("unexpected settings %#v", def)
	}
	if diff := cmp.Diff([]string{"Rating", "Details"}, def.PageLabels()); diff != "" {
		t.Fatalf("page labels mismatch (-want +got):\n%s", diff)
	}

	q := def.Pages[0].Questions[1]
	if q.Kind != string(render.KindTextInput) {
		t.Fatalf("expected alias normalised to text_input, got %q", q.Kind)
	}
	if q.VisibleIf != `Q1 == "👍"` {
		t.Fatalf("unexpected rule %q", q.VisibleIf)
	}

	audit := def.Pages[1].Questions[0]
	if got := audit.ExpandID(1); got != "error_1" {
		t.Fatalf("expected expanded id, got %q", got)
	}
	if got := audit.ExpandLabel(1); got != "Errors found on page 1" {
		t.Fatalf("expected expanded label, got %q", got)
	}
	opts := audit.Options()
	if opts.Min == nil || *opts.Min != 0 || opts.Max == nil || *opts.Max != 10 {
		t.Fatalf("unexpected range %#v", opts)
	}
}

func TestLoad_JSONDefinition(t *testing.T) {
	data, err := os.ReadFile("testdata/positional.json")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	def, err := Parse(data, "positional.json")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !def.AutoIDEnabled() {
		t.Fatalf("auto ids should default to true")
	}
	if def.Source != "positional.json" {
		t.Fatalf("unexpected source %q", def.Source)
	}
	if diff := cmp.Diff([]string{"Page 1"}, def.PageLabels()); diff != "" {
		t.Fatalf("page labels mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFS(t *testing.T) {
	def, err := LoadFS(os.DirFS("testdata"), "feedback.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if def.Label != "feedback" {
		t.Fatalf("unexpected label %q", def.Label)
	}
}

func TestParse_Errors(t *testing.T) {
	cases := []struct {
		name  string
		input string
		field string
	}{
		{name: "no pages", input: `{"label": "x", "pages": []}`, field: "pages"},
		{name: "missing label", input: `{"pages": [{"questions": [{"label": "a"}]}]}`, field: "label"},
		{name: "unknown kind", input: `{"label": "x", "pages": [{"questions": [{"label": "a", "kind": "hologram"}]}]}`, field: "pages[0].questions[0].kind"},
		{name: "button kind", input: `{"label": "x", "pages": [{"questions": [{"label": "a", "kind": "button"}]}]}`, field: "pages[0].questions[0].kind"},
		{name: "explicit ids", input: `{"label": "x", "auto_id": false, "pages": [{"questions": [{"label": "a"}]}]}`, field: "pages[0].questions[0].id"},
		{name: "duplicate ids", input: `{"label": "x", "pages": [{"questions": [{"id": "a", "label": "a"}, {"id": "a", "label": "b"}]}]}`, field: "pages[0].questions[1].id"},
		{name: "duplicate ids across pages", input: `{"label": "x", "pages": [{"questions": [{"id": "a", "label": "a"}]}, {"questions": [{"id": "a", "label": "b"}]}]}`, field: "pages[1].questions[0].id"},
		{name: "explicit id matching an auto id", input: `{"label": "x", "pages": [{"questions": [{"id": "Q2", "label": "a"}, {"label": "b"}]}]}`, field: "pages[0].questions[1].id"},
		{name: "reserved id", input: `{"label": "x", "pages": [{"questions": [{"id": "page", "label": "a"}]}]}`, field: "pages[0].questions[0].id"},
		{name: "reserved extras id", input: `{"label": "x", "pages": [{"questions": [{"id": "extras", "label": "a"}]}]}`, field: "pages[0].questions[0].id"},
		{name: "choices", input: `{"label": "x", "pages": [{"questions": [{"label": "a", "kind": "radio"}]}]}`, field: "pages[0].questions[0].choices"},
		{name: "range", input: `{"label": "x", "pages": [{"questions": [{"label": "a", "min": 5, "max": 1}]}]}`, field: "pages[0].questions[0].max"},
		{name: "step", input: `{"label": "x", "pages": [{"questions": [{"label": "a", "step": 0}]}]}`, field: "pages[0].questions[0].step"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.input), tc.name)
			var problems ValidationErrors
			if !errors.As(err, &problems) {
				t.Fatalf("expected validation errors, got %v", err)
			}
			if problems[0].Field != tc.field {
				t.Fatalf("expected problem on %q, got %#v", tc.field, problems)
			}
		})
	}
}

func TestQuestionIDs(t *testing.T) {
	def, err := Parse([]byte(`{"label": "x", "pages": [
		{"questions": [{"label": "a"}, {"id": "rating_{page}", "label": "b"}]},
		{"questions": [{"label": "c"}]}
	]}`), "ids")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := [][]string{{"Q1", "rating_0"}, {"Q3"}}
	if diff := cmp.Diff(want, def.QuestionIDs()); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}

	off := false
	def.AutoID = &off
	if got := def.QuestionIDs()[0][0]; got != "" {
		t.Fatalf("expected no id with auto ids off, got %q", got)
	}
}

func TestParse_InvalidDocument(t *testing.T) {
	if _, err := Parse([]byte("  "), "empty"); err == nil {
		t.Fatalf("expected error for empty file")
	}
	if _, err := Parse([]byte("label: [unterminated"), "broken"); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestParse_RunsDecorators(t *testing.T) {
	input := `{"label": "x", "pages": [{"questions": [{"label": "a"}]}]}`
	def, err := Parse([]byte(input), "x", WithDecorators(DecoratorFunc(func(def *Definition) error {
		def.Pages[0].Questions[0].Kind = string(render.KindCheckbox)
		return nil
	})))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if def.Pages[0].Questions[0].Kind != "checkbox" {
		t.Fatalf("decorator not applied")
	}

	boom := errors.New("boom")
	_, err = Parse([]byte(input), "x", WithDecorators(DecoratorFunc(func(*Definition) error { return boom })))
	if !errors.Is(err, boom) {
		t.Fatalf("expected decorator error, got %v", err)
	}
}
