package jsonschema

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/goliatone/go-formarray/pkg/schema"
)

const defaultMaxRefDepth = 64

// ErrExternalRef is returned when a $ref points outside the root document.
var ErrExternalRef = errors.New("jsonschema: external refs are not supported")

// Root is a parsed schema document that dereferences local $ref pointers and
// $anchor names on demand. It is safe for concurrent reads.
type Root struct {
	payload  map[string]any
	anchors  map[string]string
	maxDepth int
	schema   schema.Schema
}

// RootOption customises a Root.
type RootOption func(*Root)

// WithMaxRefDepth caps how many chained references Deref follows.
func WithMaxRefDepth(depth int) RootOption {
	return func(r *Root) {
		if depth > 0 {
			r.maxDepth = depth
		}
	}
}

// NewRoot indexes the payload and converts it into the canonical tree.
func NewRoot(payload map[string]any, options ...RootOption) (*Root, error) {
	if payload == nil {
		return nil, errors.New("jsonschema: payload is nil")
	}
	root := &Root{
		payload:  payload,
		anchors:  make(map[string]string),
		maxDepth: defaultMaxRefDepth,
	}
	for _, opt := range options {
		if opt != nil {
			opt(root)
		}
	}
	if err := indexAnchors(payload, "", root.anchors); err != nil {
		return nil, err
	}
	converted, err := FromMap(payload, "#")
	if err != nil {
		return nil, err
	}
	root.schema = converted
	return root, nil
}

// LoadRoot parses a document and wraps it in a Root.
func LoadRoot(doc schema.Document, options ...RootOption) (*Root, error) {
	payload, err := Parse(doc)
	if err != nil {
		return nil, err
	}
	return NewRoot(payload, options...)
}

// Schema returns the converted root node.
func (r *Root) Schema() schema.Schema {
	if r == nil {
		return schema.Schema{}
	}
	return r.schema
}

// Definitions returns the reusable sections of the root ($defs, definitions
// and OpenAPI components) so fragments can be validated standalone.
func (r *Root) Definitions() map[string]any {
	if r == nil {
		return nil
	}
	var out map[string]any
	for _, key := range []string{"$defs", "definitions", "components"} {
		value, ok := r.payload[key]
		if !ok {
			continue
		}
		if out == nil {
			out = make(map[string]any)
		}
		out[key] = cloneAny(value)
	}
	return out
}

// Lookup converts the node at a JSON pointer ("#/a/b" or "/a/b").
func (r *Root) Lookup(pointer string) (schema.Schema, error) {
	if r == nil {
		return schema.Schema{}, errors.New("jsonschema: root is nil")
	}
	pointer = strings.TrimPrefix(strings.TrimSpace(pointer), "#")
	node, err := resolveJSONPointer(r.payload, pointer)
	if err != nil {
		return schema.Schema{}, err
	}
	return FromMap(node, "#"+pointer)
}

// Deref follows the $ref chain of a node until it reaches a concrete schema.
// Sibling title, description, default and vendor extensions on a reference
// override the target's values.
func (r *Root) Deref(s schema.Schema) (schema.Schema, error) {
	if r == nil {
		return schema.Schema{}, errors.New("jsonschema: root is nil")
	}
	state := &resolveState{}
	current := s
	for current.IsRef() {
		ref := strings.TrimSpace(current.Ref)
		if len(state.stack) >= r.maxDepth {
			return schema.Schema{}, fmt.Errorf("jsonschema: ref depth exceeds %d", r.maxDepth)
		}
		if state.contains(ref) {
			return schema.Schema{}, fmt.Errorf("jsonschema: ref cycle detected at %s", ref)
		}
		target, pointer, err := r.target(ref)
		if err != nil {
			return schema.Schema{}, err
		}
		refObj := current.Raw
		if refObj == nil {
			refObj = map[string]any{"$ref": ref}
		}
		merged, err := mergeRefTarget(target, refObj)
		if err != nil {
			return schema.Schema{}, err
		}
		state.push(ref)
		next, err := FromMap(merged, pointer)
		if err != nil {
			return schema.Schema{}, err
		}
		current = next
	}
	return current, nil
}

// Resolve dereferences s and then its child: "items" selects the element
// schema, any other name a declared property. An empty property returns the
// dereferenced node itself.
func (r *Root) Resolve(s schema.Schema, property string) (schema.Schema, error) {
	base, err := r.Deref(s)
	if err != nil {
		return schema.Schema{}, err
	}
	switch property {
	case "", "#":
		return base, nil
	case "items":
		if base.Items == nil {
			return schema.Schema{}, errors.New("jsonschema: schema declares no items")
		}
		return r.Deref(*base.Items)
	default:
		child, ok := base.Properties[property]
		if !ok {
			return schema.Schema{}, fmt.Errorf("jsonschema: property %q not found", property)
		}
		return r.Deref(child)
	}
}

func (r *Root) target(ref string) (any, string, error) {
	refPath, fragment := splitRef(ref)
	if refPath != "" {
		return nil, "", fmt.Errorf("%w (%s)", ErrExternalRef, ref)
	}
	if fragment == "" {
		return cloneAny(r.payload), "#", nil
	}
	if strings.HasPrefix(fragment, "/") {
		node, err := resolveJSONPointer(r.payload, fragment)
		return node, "#" + fragment, err
	}
	pointer, ok := r.anchors[fragment]
	if !ok {
		return nil, "", fmt.Errorf("jsonschema: anchor %q not found", fragment)
	}
	node, err := resolveJSONPointer(r.payload, pointer)
	return node, "#" + pointer, err
}

func splitRef(ref string) (string, string) {
	parts := strings.SplitN(ref, "#", 2)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}

func resolveJSONPointer(root any, pointer string) (any, error) {
	if pointer == "" {
		return cloneAny(root), nil
	}
	if !strings.HasPrefix(pointer, "/") {
		return nil, fmt.Errorf("jsonschema: invalid json pointer %q", pointer)
	}

	current := root
	for _, part := range strings.Split(pointer, "/")[1:] {
		decoded, err := url.PathUnescape(part)
		if err != nil {
			return nil, err
		}
		decoded = strings.ReplaceAll(decoded, "~1", "/")
		decoded = strings.ReplaceAll(decoded, "~0", "~")

		switch typed := current.(type) {
		case map[string]any:
			value, ok := typed[decoded]
			if !ok {
				return nil, fmt.Errorf("jsonschema: pointer %q not found", pointer)
			}
			current = value
		case []any:
			idx, err := strconv.Atoi(decoded)
			if err != nil || idx < 0 || idx >= len(typed) {
				return nil, fmt.Errorf("jsonschema: pointer %q out of range", pointer)
			}
			current = typed[idx]
		default:
			return nil, fmt.Errorf("jsonschema: pointer %q invalid", pointer)
		}
	}
	return cloneAny(current), nil
}

func indexAnchors(node any, pointer string, anchors map[string]string) error {
	switch typed := node.(type) {
	case map[string]any:
		if name, ok := typed["$anchor"].(string); ok {
			name = strings.TrimSpace(name)
			if name != "" {
				if _, exists := anchors[name]; exists {
					return fmt.Errorf("jsonschema: duplicate anchor %q", name)
				}
				anchors[name] = pointer
			}
		}
		for key, value := range typed {
			if isVendorExtension(key) || key == "const" || key == "default" || key == "enum" {
				continue
			}
			if err := indexAnchors(value, pointer+"/"+escapeJSONPointer(key), anchors); err != nil {
				return err
			}
		}
	case []any:
		for idx, value := range typed {
			if err := indexAnchors(value, pointer+"/"+strconv.Itoa(idx), anchors); err != nil {
				return err
			}
		}
	}
	return nil
}

// mergeRefTarget overlays the reference's annotation siblings on a copy of
// its target. Other siblings are dropped.
func mergeRefTarget(target any, refObj map[string]any) (any, error) {
	merged := cloneAny(target)
	mergedMap, ok := merged.(map[string]any)
	if !ok {
		if _, isBool := merged.(bool); isBool {
			return merged, nil
		}
		return nil, errors.New("jsonschema: $ref target is not an object")
	}
	for key, value := range refObj {
		if key == "$ref" || !isAllowedRefSibling(key) {
			continue
		}
		mergedMap[key] = value
	}
	return mergedMap, nil
}

func isAllowedRefSibling(key string) bool {
	if key == "title" || key == "description" || key == "default" {
		return true
	}
	return isVendorExtension(key)
}

func cloneAny(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, val := range typed {
			out[key] = cloneAny(val)
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for idx, val := range typed {
			out[idx] = cloneAny(val)
		}
		return out
	default:
		return typed
	}
}

// CloneValue deep-copies generic JSON values (maps, slices and scalars).
func CloneValue(value any) any {
	return cloneAny(value)
}

type resolveState struct {
	stack   []string
	inStack map[string]struct{}
}

func (s *resolveState) push(ref string) {
	s.stack = append(s.stack, ref)
	if s.inStack == nil {
		s.inStack = make(map[string]struct{})
	}
	s.inStack[ref] = struct{}{}
}

func (s *resolveState) contains(ref string) bool {
	_, ok := s.inStack[ref]
	return ok
}
