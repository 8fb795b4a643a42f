package schema

import (
	"sort"
	"strings"
)

// ExtensionNamespace is the vendor extension key that carries editor hints.
const ExtensionNamespace = "x-formgen"

// Schema is the canonical schema node consumed by the array editor. Refs are
// kept as-is; dereferencing is the job of a resolver that knows the root.
type Schema struct {
	Ref         string
	Type        string
	Format      string
	Title       string
	Description string
	Default     any
	Enum        []any
	Const       any
	Required    []string
	Properties  map[string]Schema
	Items       *Schema
	OneOf       []Schema
	AnyOf       []Schema
	AllOf       []Schema
	MinItems    *int
	MaxItems    *int
	Extensions  map[string]any `json:"Extensions,omitempty"`
	// Raw holds the payload the node was parsed from, used for validation.
	Raw map[string]any `json:"-"`
}

// IsRef reports whether the node is an unresolved reference.
func (s Schema) IsRef() bool {
	return strings.TrimSpace(s.Ref) != ""
}

// Union returns the union branches of the node. anyOf takes priority over
// oneOf when both are declared.
func (s Schema) Union() []Schema {
	if len(s.AnyOf) > 0 {
		return s.AnyOf
	}
	if len(s.OneOf) > 0 {
		return s.OneOf
	}
	return nil
}

// IsUnion reports whether the node declares anyOf or oneOf branches.
func (s Schema) IsUnion() bool {
	return len(s.Union()) > 0
}

// IsRequired reports whether name is listed in the required set.
func (s Schema) IsRequired(name string) bool {
	for _, item := range s.Required {
		if item == name {
			return true
		}
	}
	return false
}

// PropertyNames returns the declared property names in lexical order.
func (s Schema) PropertyNames() []string {
	if len(s.Properties) == 0 {
		return nil
	}
	names := make([]string, 0, len(s.Properties))
	for name := range s.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ConstValue returns the constant a node pins its value to, accepting either
// `const` or a single-entry `enum`.
func (s Schema) ConstValue() (any, bool) {
	if s.Const != nil {
		return s.Const, true
	}
	if len(s.Enum) == 1 && s.Enum[0] != nil {
		return s.Enum[0], true
	}
	return nil, false
}

// Hint reads a key from the x-formgen extension object.
func (s Schema) Hint(key string) (any, bool) {
	if len(s.Extensions) == 0 {
		return nil, false
	}
	nested, ok := s.Extensions[ExtensionNamespace].(map[string]any)
	if !ok {
		return nil, false
	}
	value, ok := nested[key]
	return value, ok
}

// HintString reads a trimmed string hint, returning "" when absent.
func (s Schema) HintString(key string) string {
	value, ok := s.Hint(key)
	if !ok {
		return ""
	}
	str, _ := value.(string)
	return strings.TrimSpace(str)
}
