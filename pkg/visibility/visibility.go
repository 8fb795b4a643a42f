// Package visibility decides whether form elements are shown and editable
// based on rule expressions.
package visibility

// Evaluator determines whether a rule holds for the element at path.
type Evaluator interface {
	Eval(path, rule string, ctx Context) (bool, error)
}

// Context provides inputs to an Evaluator. Values holds the element-level
// bindings (for array items: item, index, length) while Extras carries
// caller-supplied data such as the whole form value or feature flags.
type Context struct {
	Values map[string]any
	Extras map[string]any
}

// EvaluatorFunc adapts a function into an Evaluator.
type EvaluatorFunc func(path, rule string, ctx Context) (bool, error)

// Eval delegates to the underlying function.
func (fn EvaluatorFunc) Eval(path, rule string, ctx Context) (bool, error) {
	return fn(path, rule, ctx)
}

// Always is an Evaluator that accepts every rule.
var Always Evaluator = EvaluatorFunc(func(string, string, Context) (bool, error) {
	return true, nil
})
