package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formarray/pkg/jsonschema"
	"github.com/goliatone/go-formarray/pkg/schema"
)

// Operation references the JSON request body schema of one API operation.
type Operation struct {
	ID     string
	Method string
	Path   string
	// Pointer addresses the request body schema inside the document.
	Pointer string
	Schema  schema.Schema
}

// Document is a validated OpenAPI document and its schema root.
type Document struct {
	spec *openapi3.T
	root *jsonschema.Root
}

type config struct {
	validate bool
}

// Option customises Load.
type Option func(*config)

// WithValidation toggles kin-openapi document validation (enabled by default).
func WithValidation(enabled bool) Option {
	return func(c *config) {
		c.validate = enabled
	}
}

// Load parses an OpenAPI document (JSON or YAML).
func Load(ctx context.Context, doc schema.Document, options ...Option) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg := config{validate: true}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	raw := doc.Raw()
	if len(raw) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if cfg.validate {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi: validate: %w", err)
		}
	}

	encoded, err := spec.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("openapi: encode document: %w", err)
	}
	decoded, err := jsonschema.DecodeJSON(encoded)
	if err != nil {
		return nil, fmt.Errorf("openapi: decode document: %w", err)
	}
	payload, ok := decoded.(map[string]any)
	if !ok {
		return nil, errors.New("openapi: document must be an object")
	}
	root, err := jsonschema.NewRoot(payload)
	if err != nil {
		return nil, err
	}
	return &Document{spec: spec, root: root}, nil
}

// Root exposes the document as a schema root.
func (d *Document) Root() *jsonschema.Root {
	if d == nil {
		return nil
	}
	return d.root
}

// ComponentSchema returns a reference node for #/components/schemas/<name>.
func (d *Document) ComponentSchema(name string) (schema.Schema, error) {
	if d == nil || d.spec == nil {
		return schema.Schema{}, errors.New("openapi: document is nil")
	}
	if _, ok := d.spec.Components.Schemas[name]; !ok {
		return schema.Schema{}, fmt.Errorf("openapi: component schema %q not found", name)
	}
	return d.root.Deref(schema.Schema{Ref: "#/components/schemas/" + escapePointer(name)})
}

// Operations lists operations with a JSON request body, sorted by ID.
// Operations without an operationId are keyed as "<method>:<path>".
func (d *Document) Operations() ([]Operation, error) {
	if d == nil || d.spec == nil {
		return nil, errors.New("openapi: document is nil")
	}
	var out []Operation
	if d.spec.Paths == nil {
		return out, nil
	}
	for path, item := range d.spec.Paths.Map() {
		if item == nil {
			continue
		}
		for method, op := range item.Operations() {
			if op == nil || op.RequestBody == nil {
				continue
			}
			pointer, ok := requestSchemaPointer(path, method, op.RequestBody)
			if !ok {
				continue
			}
			resolved, err := d.root.Lookup(pointer)
			if err != nil {
				return nil, err
			}
			id := op.OperationID
			if id == "" {
				id = strings.ToLower(method) + ":" + path
			}
			out = append(out, Operation{ID: id, Method: method, Path: path, Pointer: pointer, Schema: resolved})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Operation finds an operation by ID.
func (d *Document) Operation(id string) (Operation, error) {
	ops, err := d.Operations()
	if err != nil {
		return Operation{}, err
	}
	for _, op := range ops {
		if op.ID == id {
			return op, nil
		}
	}
	return Operation{}, fmt.Errorf("openapi: operation %q not found", id)
}

// SchemaPointer joins relative onto the request body schema of the operation
// id. Local $ref chains on the body schema are followed first so the result
// addresses the concrete schema, e.g. "#/components/schemas/Pet/properties/tags".
func (d *Document) SchemaPointer(id, relative string) (string, error) {
	op, err := d.Operation(id)
	if err != nil {
		return "", err
	}
	base := op.Pointer
	node := op.Schema
	for seen := 0; node.IsRef() && strings.HasPrefix(node.Ref, "#/"); seen++ {
		if seen >= maxPointerHops {
			return "", fmt.Errorf("openapi: operation %q: request body ref chain too deep", id)
		}
		base = node.Ref
		if node, err = d.root.Lookup(base); err != nil {
			return "", err
		}
	}
	relative = strings.TrimPrefix(strings.TrimSpace(relative), "#")
	relative = strings.TrimPrefix(relative, "/")
	if relative == "" {
		return base, nil
	}
	return strings.TrimSuffix(base, "/") + "/" + relative, nil
}

const maxPointerHops = 64

func requestSchemaPointer(path, method string, body *openapi3.RequestBodyRef) (string, bool) {
	base := "#/paths/" + escapePointer(path) + "/" + strings.ToLower(method) + "/requestBody"
	if body.Ref != "" {
		if !strings.HasPrefix(body.Ref, "#/") {
			return "", false
		}
		base = body.Ref
	}
	if body.Value == nil {
		return "", false
	}
	mediaType := ""
	for _, candidate := range []string{"application/json", "application/*+json", "*/*"} {
		if body.Value.Content[candidate] != nil {
			mediaType = candidate
			break
		}
	}
	if mediaType == "" {
		return "", false
	}
	media := body.Value.Content[mediaType]
	if media == nil || media.Schema == nil {
		return "", false
	}
	return base + "/content/" + escapePointer(mediaType) + "/schema", true
}

func escapePointer(value string) string {
	return strings.NewReplacer("~", "~0", "/", "~1").Replace(value)
}
