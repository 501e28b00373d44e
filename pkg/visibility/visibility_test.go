package visibility

import (
	"errors"
	"testing"
)

func TestVisible_EmptyRuleShortCircuits(t *testing.T) {
	called := false
	eval := EvaluatorFunc(func(string, string, Context) (bool, error) {
		called = true
		return false, nil
	})

	ok, err := Visible(eval, "Q1", "   ", Context{})
	if err != nil || !ok {
		t.Fatalf("expected visible, got %v (err=%v)", ok, err)
	}
	if called {
		t.Fatalf("evaluator should not run for empty rules")
	}

	ok, err = Visible(nil, "Q1", "Q2 == 1", Context{})
	if err != nil || !ok {
		t.Fatalf("nil evaluator should show the question")
	}
}

func TestVisible_DelegatesToEvaluator(t *testing.T) {
	boom := errors.New("boom")
	eval := EvaluatorFunc(func(id, rule string, ctx Context) (bool, error) {
		if rule == "fail" {
			return false, boom
		}
		return ctx.Values[id] == rule, nil
	})

	ok, err := Visible(eval, "Q1", "yes", Context{Values: map[string]any{"Q1": "yes"}})
	if err != nil || !ok {
		t.Fatalf("expected visible, got %v (err=%v)", ok, err)
	}
	if _, err := Visible(eval, "Q1", "fail", Context{}); !errors.Is(err, boom) {
		t.Fatalf("expected evaluator error, got %v", err)
	}
	if ok, _ := Always.Eval("Q1", "anything", Context{}); !ok {
		t.Fatalf("Always should show the question")
	}
}
