// Package defaults builds schema-conformant default values.
package defaults

import (
	"github.com/goliatone/go-formarray/pkg/jsonschema"
	"github.com/goliatone/go-formarray/pkg/schema"
)

const maxDepth = 32

// Dereferencer resolves $ref nodes. *jsonschema.Root implements it.
type Dereferencer interface {
	Deref(s schema.Schema) (schema.Schema, error)
}

// Factory creates default values. A nil Dereferencer leaves references
// unresolved, which yields nil for them.
type Factory struct {
	deref Dereferencer
}

// New constructs a Factory.
func New(deref Dereferencer) *Factory {
	return &Factory{deref: deref}
}

// Create returns a fresh default for s:
//   - an explicit `default` (deep-copied), else `const`, else
//   - the first union branch, merged allOf object defaults, or
//   - the zero value of the type. Objects include properties that declare a
//     default or const, required properties, and nested objects that yield
//     a non-empty default.
func (f *Factory) Create(s schema.Schema) any {
	return f.create(s, 0)
}

func (f *Factory) create(s schema.Schema, depth int) any {
	if depth > maxDepth {
		return nil
	}
	if s.IsRef() {
		if f == nil || f.deref == nil {
			return nil
		}
		resolved, err := f.deref.Deref(s)
		if err != nil {
			return nil
		}
		s = resolved
	}
	if s.Default != nil {
		return jsonschema.CloneValue(s.Default)
	}
	if value, ok := s.ConstValue(); ok {
		return jsonschema.CloneValue(value)
	}
	if branches := s.Union(); len(branches) > 0 {
		return f.create(branches[0], depth+1)
	}
	if len(s.AllOf) > 0 {
		merged := f.object(s, depth)
		for _, branch := range s.AllOf {
			obj, ok := f.create(branch, depth+1).(map[string]any)
			if !ok {
				continue
			}
			for key, value := range obj {
				if _, exists := merged[key]; !exists {
					merged[key] = value
				}
			}
		}
		return merged
	}

	switch s.Type {
	case "string":
		return ""
	case "integer", "number":
		return float64(0)
	case "boolean":
		return false
	case "array":
		return []any{}
	case "null":
		return nil
	case "object":
		return f.object(s, depth)
	}
	if len(s.Properties) > 0 {
		return f.object(s, depth)
	}
	return nil
}

func (f *Factory) object(s schema.Schema, depth int) map[string]any {
	out := make(map[string]any)
	for _, name := range s.PropertyNames() {
		prop := s.Properties[name]
		if prop.IsRef() && f != nil && f.deref != nil {
			if resolved, err := f.deref.Deref(prop); err == nil {
				prop = resolved
			}
		}
		_, hasConst := prop.ConstValue()
		switch {
		case prop.Default != nil || hasConst || s.IsRequired(name):
			out[name] = f.create(prop, depth+1)
		case prop.Type == "object" || len(prop.Properties) > 0:
			if nested, ok := f.create(prop, depth+1).(map[string]any); ok && len(nested) > 0 {
				out[name] = nested
			}
		}
	}
	return out
}
