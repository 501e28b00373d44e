// Package expr evaluates visibility rules with github.com/expr-lang/expr.
//
// Rules see every stored answer by question id, the current page as `page`,
// the answers map as `answers` (for ids that are not valid identifiers) and
// caller supplied values under `extras`:
//
//	Q1 == "👍"
//	page > 0 && answers["Q-2"] != nil
//	extras.beta && len(Q3) > 1
package expr

import (
	"fmt"
	"strings"
	"sync"

	exprlang "github.com/expr-lang/expr"
	exprvm "github.com/expr-lang/expr/vm"

	"github.com/goliatone/go-survey/pkg/visibility"
)

// Evaluator compiles rules once and caches the programs.
type Evaluator struct {
	mu       sync.RWMutex
	programs map[string]*exprvm.Program
}

// New returns an Evaluator with an empty program cache.
func New() *Evaluator {
	return &Evaluator{programs: map[string]*exprvm.Program{}}
}

// Eval implements visibility.Evaluator. Undefined identifiers evaluate to
// nil, and a nil result hides the question.
func (e *Evaluator) Eval(questionID, rule string, ctx visibility.Context) (bool, error) {
	trimmed := strings.TrimSpace(rule)
	if trimmed == "" {
		return true, nil
	}
	program, err := e.compile(trimmed)
	if err != nil {
		return false, fmt.Errorf("visibility/expr: compile rule for %q: %w", questionID, err)
	}
	result, err := exprlang.Run(program, environment(ctx))
	if err != nil {
		return false, fmt.Errorf("visibility/expr: evaluate rule for %q: %w", questionID, err)
	}
	switch typed := result.(type) {
	case bool:
		return typed, nil
	case nil:
		return false, nil
	default:
		return false, fmt.Errorf("visibility/expr: rule for %q returned %T, want bool", questionID, result)
	}
}

func (e *Evaluator) compile(rule string) (*exprvm.Program, error) {
	e.mu.RLock()
	program, ok := e.programs[rule]
	e.mu.RUnlock()
	if ok {
		return program, nil
	}

	program, err := exprlang.Compile(rule,
		exprlang.Env(map[string]any{}),
		exprlang.AllowUndefinedVariables(),
	)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	if e.programs == nil {
		e.programs = map[string]*exprvm.Program{}
	}
	e.programs[rule] = program
	e.mu.Unlock()
	return program, nil
}

func environment(ctx visibility.Context) map[string]any {
	values := ctx.Values
	if values == nil {
		values = map[string]any{}
	}
	extras := ctx.Extras
	if extras == nil {
		extras = map[string]any{}
	}
	env := make(map[string]any, len(values)+3)
	for id, value := range values {
		env[id] = value
	}
	env["page"] = ctx.Page
	env["answers"] = values
	env["extras"] = extras
	return env
}
