// Package validation checks candidate values against JSON Schema fragments
// before they are committed, e.g. text submitted through the raw editor.
package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const resourceURL = "file:///formarray/fragment.json"

// Issue represents a validation error with location metadata.
type Issue struct {
	Path    string `json:"path,omitempty"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// Error aggregates the issues of a failed validation.
type Error struct {
	Issues []Issue
}

func (e *Error) Error() string {
	if e == nil || len(e.Issues) == 0 {
		return "validation: invalid value"
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		if issue.Path == "" {
			parts = append(parts, issue.Message)
			continue
		}
		parts = append(parts, issue.Path+": "+issue.Message)
	}
	return "validation: " + strings.Join(parts, "; ")
}

// Validator checks a decoded JSON value.
type Validator interface {
	Validate(value any) error
}

// ValidatorFunc adapts a function into a Validator.
type ValidatorFunc func(value any) error

// Validate implements Validator.
func (fn ValidatorFunc) Validate(value any) error {
	return fn(value)
}

// SchemaValidator validates values against a compiled schema fragment.
type SchemaValidator struct {
	schema  *jsonschema.Schema
	printer *message.Printer
}

// Compile builds a validator from a standalone schema document. Fragments
// cut from a larger document should carry the root's $defs, definitions or
// components sections so their local refs resolve.
func Compile(doc map[string]any) (*SchemaValidator, error) {
	if doc == nil {
		return nil, errors.New("validation: schema document is nil")
	}
	compiler := jsonschema.NewCompiler()
	compiler.DefaultDraft(jsonschema.Draft2020)
	if err := compiler.AddResource(resourceURL, doc); err != nil {
		return nil, fmt.Errorf("validation: add schema: %w", err)
	}
	compiled, err := compiler.Compile(resourceURL)
	if err != nil {
		return nil, fmt.Errorf("validation: compile schema: %w", err)
	}
	return &SchemaValidator{schema: compiled, printer: message.NewPrinter(language.English)}, nil
}

// Fragment assembles a standalone document from a schema node and the
// reusable sections of its root.
func Fragment(node map[string]any, definitions map[string]any) map[string]any {
	out := make(map[string]any, len(node)+len(definitions))
	for key, value := range definitions {
		out[key] = value
	}
	for key, value := range node {
		out[key] = value
	}
	return out
}

// Validate returns nil or an *Error listing the leaf failures.
func (v *SchemaValidator) Validate(value any) error {
	if v == nil || v.schema == nil {
		return nil
	}
	err := v.schema.Validate(value)
	if err == nil {
		return nil
	}
	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return &Error{Issues: []Issue{{Message: err.Error()}}}
	}
	issues := v.collect(verr, nil)
	sort.SliceStable(issues, func(i, j int) bool { return issues[i].Path < issues[j].Path })
	return &Error{Issues: issues}
}

func (v *SchemaValidator) collect(verr *jsonschema.ValidationError, out []Issue) []Issue {
	if len(verr.Causes) == 0 {
		pointer := pointerFromLocation(verr.InstanceLocation)
		return append(out, Issue{
			Path:    pointer,
			Field:   FieldPath(pointer),
			Message: verr.ErrorKind.LocalizedString(v.printer),
		})
	}
	for _, cause := range verr.Causes {
		out = v.collect(cause, out)
	}
	return out
}

func pointerFromLocation(location []string) string {
	if len(location) == 0 {
		return ""
	}
	escaped := make([]string, len(location))
	replacer := strings.NewReplacer("~", "~0", "/", "~1")
	for i, segment := range location {
		escaped[i] = replacer.Replace(segment)
	}
	return "/" + strings.Join(escaped, "/")
}

// FieldPath converts an instance pointer ("/0/title") into a dotted path
// ("0.title").
func FieldPath(pointer string) string {
	trimmed := strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(pointer), "#"), "/")
	if trimmed == "" {
		return ""
	}
	parts := strings.Split(trimmed, "/")
	for i, part := range parts {
		part = strings.ReplaceAll(part, "~1", "/")
		parts[i] = strings.ReplaceAll(part, "~0", "~")
	}
	return strings.Join(parts, ".")
}
