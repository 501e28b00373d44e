package orchestrator

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-survey/pkg/model"
	"github.com/goliatone/go-survey/pkg/pages"
	"github.com/goliatone/go-survey/pkg/render"
	"github.com/goliatone/go-survey/pkg/survey"
	"github.com/goliatone/go-survey/pkg/testsupport"
	"github.com/goliatone/go-survey/pkg/visibility"
	"github.com/goliatone/go-survey/pkg/widgets"
)

const widgetPrefix = "__survey-component_feedback_"

func TestPass_ConditionalFlowAndSubmit(t *testing.T) {
	ctx := testsupport.Context()
	orch, err := Load("testdata/feedback.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	host := testsupport.NewHost()
	pagesKey := survey.PagesKeyPrefix + "_feedback"

	var result Result
	pass := func(onSubmit func(*survey.Survey)) {
		host.Pass(func() {
			result, err = orch.Pass(ctx, host, onSubmit)
		})
		if err != nil {
			t.Fatalf("pass: %v", err)
		}
	}

	pass(nil)
	if diff := cmp.Diff([]string{"Q1"}, result.Shown); diff != "" {
		t.Fatalf("shown mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Q1_1"}, result.Hidden); diff != "" {
		t.Fatalf("hidden mismatch (-want +got):\n%s", diff)
	}

	host.Answer(widgetPrefix+"Q1", "👍")
	pass(nil)
	host.Answer(widgetPrefix+"Q1_1", "clear docs")
	pass(nil)
	if diff := cmp.Diff([]string{"Q1", "Q1_1"}, result.Shown); diff != "" {
		t.Fatalf("shown mismatch (-want +got):\n%s", diff)
	}

	host.Click(pagesKey + "_btn_next")
	pass(nil)
	if result.Page != 0 {
		t.Fatalf("navigation applies after the page is drawn, got page %d", result.Page)
	}

	var exported []byte
	submit := func(s *survey.Survey) {
		exported, _ = s.Export()
	}
	pass(submit)
	if result.Page != 1 {
		t.Fatalf("expected page 1, got %d", result.Page)
	}
	if diff := cmp.Diff([]string{"error_1"}, result.Shown); diff != "" {
		t.Fatalf("shown mismatch (-want +got):\n%s", diff)
	}

	host.Answer(widgetPrefix+"error_1", 2.0)
	host.Click(pagesKey + "_btn_submit")
	pass(submit)
	if !result.Submitted {
		t.Fatalf("expected submit on the last page")
	}

	s := orch.Survey(host)
	if got := s.Get("Q1_1", survey.FieldValue); got != "clear docs" {
		t.Fatalf("expected page 0 answer retained, got %v", got)
	}
	if got := s.Get("error_1", survey.FieldLabel); got != "Errors found on page 1" {
		t.Fatalf("expected expanded label, got %v", got)
	}
	if len(exported) == 0 {
		t.Fatalf("expected callback to receive the survey")
	}
}

func TestPass_AutoIDsIgnoreVisibility(t *testing.T) {
	def := testsupport.MustParseDefinition(t, `
label: auto
pages:
  - questions:
      - label: Name
      - label: Nickname
        visible_if: "false"
      - label: Age
        default: 30
  - questions:
      - label: Email
`)
	orch, err := New(def)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	host := testsupport.NewHost()

	var result Result
	drawn := host.Pass(func() {
		result, err = orch.Pass(testsupport.Context(), host, nil)
	})
	if err != nil {
		t.Fatalf("pass: %v", err)
	}
	if diff := cmp.Diff([]string{"Q1", "Q3"}, result.Shown); diff != "" {
		t.Fatalf("shown mismatch (-want +got):\n%s", diff)
	}
	if drawn[1].Kind != render.KindNumberInput || drawn[1].Options.Default != 30.0 {
		t.Fatalf("expected number input with native default, got %#v", drawn[1])
	}

	p, _ := orch.Survey(host).Pages(2)
	if err := p.Update(1); err != nil {
		t.Fatalf("update: %v", err)
	}
	host.Pass(func() {
		result, err = orch.Pass(testsupport.Context(), host, nil)
	})
	if err != nil {
		t.Fatalf("pass: %v", err)
	}
	if diff := cmp.Diff([]string{"Q4"}, result.Shown); diff != "" {
		t.Fatalf("shown mismatch (-want +got):\n%s", diff)
	}
}

func TestPass_Errors(t *testing.T) {
	def := testsupport.MustParseDefinition(t, `{"label": "e", "pages": [{"questions": [{"label": "a", "visible_if": "Q9 =="}]}]}`)
	orch, err := New(def)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	host := testsupport.NewHost()
	if _, err := orch.Pass(testsupport.Context(), host, nil); err == nil {
		t.Fatalf("expected visibility error")
	}
	if _, err := orch.Pass(testsupport.Context(), nil, nil); err == nil {
		t.Fatalf("expected error for nil host")
	}

	boom := errors.New("boom")
	custom, _ := New(testsupport.MustParseDefinition(t, `{"label": "c", "pages": [{"questions": [{"label": "a"}]}]}`))
	host.Err = boom
	if _, err := custom.Pass(testsupport.Context(), host, nil); !errors.Is(err, boom) {
		t.Fatalf("expected render error, got %v", err)
	}
}

func TestNew_ValidatesAfterDecorating(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Fatalf("expected error for nil definition")
	}

	def := &model.Definition{
		Label: "d",
		Pages: []model.Page{{Questions: []model.Question{{Label: "Stars"}}}},
	}
	reg := &widgets.Registry{}
	reg.Register(render.Kind("stars"), 10, func(model.Question) bool { return true })
	_, err := New(def, WithWidgetRegistry(reg))
	var problems model.ValidationErrors
	if !errors.As(err, &problems) {
		t.Fatalf("expected custom kinds to be rejected by validation, got %v", err)
	}
}

func TestPass_CustomEvaluatorAndExtras(t *testing.T) {
	def := testsupport.MustParseDefinition(t, `{"label": "x", "pages": [{"questions": [{"id": "beta", "label": "Beta only", "visible_if": "beta"}]}]}`)
	var seen visibility.Context
	orch, err := New(def,
		WithExtras(map[string]any{"flag": true}),
		WithEvaluator(visibility.EvaluatorFunc(func(id, rule string, ctx visibility.Context) (bool, error) {
			seen = ctx
			return false, nil
		})),
	)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	host := testsupport.NewHost()
	result, err := orch.Pass(testsupport.Context(), host, nil)
	if err != nil {
		t.Fatalf("pass: %v", err)
	}
	if diff := cmp.Diff([]string{"beta"}, result.Hidden); diff != "" {
		t.Fatalf("hidden mismatch (-want +got):\n%s", diff)
	}
	if seen.Extras["flag"] != true {
		t.Fatalf("extras not forwarded: %#v", seen)
	}
	if _, ok := host.Session().Get(pages.DefaultKey); ok {
		t.Fatalf("orchestrator pages must use the survey scoped key")
	}
}
