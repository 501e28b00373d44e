// Package visibility decides whether a question is drawn in the current pass.
// Hidden questions keep their stored answers; they are only skipped.
package visibility

import "strings"

// Evaluator determines whether a question should be visible based on a rule
// string and the answers collected so far.
type Evaluator interface {
	Eval(questionID, rule string, ctx Context) (bool, error)
}

// Context provides inputs to an Evaluator. Values holds the stored answers
// keyed by question id, Page is the zero based page being drawn and Extras
// lets callers inject arbitrary context such as feature flags.
type Context struct {
	Values map[string]any
	Page   int
	Extras map[string]any
}

// EvaluatorFunc adapts a function into an Evaluator.
type EvaluatorFunc func(questionID, rule string, ctx Context) (bool, error)

// Eval delegates to the underlying function.
func (fn EvaluatorFunc) Eval(questionID, rule string, ctx Context) (bool, error) {
	return fn(questionID, rule, ctx)
}

// Always shows every question.
var Always Evaluator = EvaluatorFunc(func(string, string, Context) (bool, error) {
	return true, nil
})

// Visible evaluates rule with eval, treating an empty rule or a nil
// evaluator as visible.
func Visible(eval Evaluator, questionID, rule string, ctx Context) (bool, error) {
	if strings.TrimSpace(rule) == "" || eval == nil {
		return true, nil
	}
	return eval.Eval(questionID, rule, ctx)
}
