package jsonschema

import (
	"bytes"
	"errors"
	"fmt"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formarray/pkg/schema"
)

// Parse decodes a schema document into a generic payload, picking JSON or
// YAML based on the document format.
func Parse(doc schema.Document) (map[string]any, error) {
	raw := bytes.TrimSpace(doc.Raw())
	if len(raw) == 0 {
		return nil, errors.New("jsonschema: raw schema is empty")
	}
	var (
		payload any
		err     error
	)
	switch doc.Format() {
	case schema.FormatYAML:
		payload, err = decodeYAML(raw)
	default:
		payload, err = DecodeJSON(raw)
	}
	if err != nil {
		return nil, fmt.Errorf("jsonschema: parse %s: %w", doc.Location(), err)
	}
	out, ok := payload.(map[string]any)
	if !ok || out == nil {
		return nil, fmt.Errorf("jsonschema: %s must decode to an object", doc.Location())
	}
	return out, nil
}

// DecodeJSON decodes arbitrary JSON into generic values (maps, slices,
// float64, string, bool, nil).
func DecodeJSON(raw []byte) (any, error) {
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DecodeYAML decodes YAML into the same value shapes DecodeJSON produces so
// documents from either format compare equal.
func DecodeYAML(raw []byte) (any, error) {
	return decodeYAML(raw)
}

func decodeYAML(raw []byte) (any, error) {
	var out any
	if err := yaml.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return normalizeYAML(out), nil
}

func normalizeYAML(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, val := range typed {
			out[key] = normalizeYAML(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(typed))
		for key, val := range typed {
			out[fmt.Sprint(key)] = normalizeYAML(val)
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for idx, val := range typed {
			out[idx] = normalizeYAML(val)
		}
		return out
	case int:
		return float64(typed)
	case int64:
		return float64(typed)
	case uint64:
		return float64(typed)
	default:
		return typed
	}
}
