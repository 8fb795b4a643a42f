// Package expr evaluates visibility rules written in the expr language
// (github.com/expr-lang/expr). Rules see the context Values as top-level
// variables and Extras under `extras`.
package expr

import (
	"fmt"
	"strings"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/goliatone/go-formarray/pkg/visibility"
)

// Evaluator compiles rules once and caches the programs.
type Evaluator struct {
	mu       sync.RWMutex
	programs map[string]*vm.Program
	options  []expr.Option
}

var _ visibility.Evaluator = (*Evaluator)(nil)

// New constructs an Evaluator. Extra expr options (functions, operators)
// apply to every compiled rule.
func New(options ...expr.Option) *Evaluator {
	return &Evaluator{
		programs: make(map[string]*vm.Program),
		options:  options,
	}
}

// Eval runs rule against ctx. Empty rules are true; non-boolean results are
// an error.
func (e *Evaluator) Eval(path, rule string, ctx visibility.Context) (bool, error) {
	trimmed := strings.TrimSpace(rule)
	if trimmed == "" {
		return true, nil
	}
	program, err := e.compile(trimmed)
	if err != nil {
		return false, fmt.Errorf("visibility: compile rule for %s: %w", path, err)
	}
	out, err := vm.Run(program, env(ctx))
	if err != nil {
		return false, fmt.Errorf("visibility: eval rule for %s: %w", path, err)
	}
	result, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("visibility: rule for %s returned %T, want bool", path, out)
	}
	return result, nil
}

func (e *Evaluator) compile(rule string) (*vm.Program, error) {
	e.mu.RLock()
	program, ok := e.programs[rule]
	e.mu.RUnlock()
	if ok {
		return program, nil
	}

	opts := append([]expr.Option{expr.AsBool(), expr.AllowUndefinedVariables()}, e.options...)
	program, err := expr.Compile(rule, opts...)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	e.programs[rule] = program
	e.mu.Unlock()
	return program, nil
}

func env(ctx visibility.Context) map[string]any {
	out := make(map[string]any, len(ctx.Values)+1)
	for key, value := range ctx.Values {
		out[key] = value
	}
	extras := ctx.Extras
	if extras == nil {
		extras = map[string]any{}
	}
	out["extras"] = extras
	return out
}
