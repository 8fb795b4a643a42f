package expr

import (
	"testing"

	"github.com/goliatone/go-formarray/pkg/visibility"
)

func TestEvaluatorItemBindings(t *testing.T) {
	t.Parallel()

	eval := New()
	ctx := visibility.Context{
		Values: map[string]any{
			"item":   map[string]any{"_type": "hero", "hidden": false},
			"index":  1,
			"length": 3,
		},
		Extras: map[string]any{"role": "editor"},
	}

	cases := []struct {
		rule string
		want bool
	}{
		{"", true},
		{`item._type == "hero"`, true},
		{`item._type == "text"`, false},
		{"index < length - 1", true},
		{"!item.hidden && index > 0", true},
		{`extras.role == "admin"`, false},
	}
	for _, tc := range cases {
		got, err := eval.Eval("blocks.1", tc.rule, ctx)
		if err != nil {
			t.Fatalf("Eval(%q) returned error: %v", tc.rule, err)
		}
		if got != tc.want {
			t.Fatalf("Eval(%q) = %v, want %v", tc.rule, got, tc.want)
		}
	}
}

func TestEvaluatorErrors(t *testing.T) {
	t.Parallel()

	eval := New()
	if _, err := eval.Eval("blocks.0", "index +", visibility.Context{}); err == nil {
		t.Fatalf("expected compile error")
	}
	if _, err := eval.Eval("blocks.0", "index + 1", visibility.Context{Values: map[string]any{"index": 0}}); err == nil {
		t.Fatalf("expected non-boolean rule to fail")
	}
}

func TestEvaluatorCachesPrograms(t *testing.T) {
	t.Parallel()

	eval := New()
	for i := 0; i < 3; i++ {
		if _, err := eval.Eval("p", "index == 0", visibility.Context{Values: map[string]any{"index": i}}); err != nil {
			t.Fatalf("Eval returned error: %v", err)
		}
	}
	if len(eval.programs) != 1 {
		t.Fatalf("expected one cached program, got %d", len(eval.programs))
	}
}
