package jsonschema

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-formarray/pkg/schema"
)

// FromMap converts a JSON Schema payload into the canonical schema tree.
// References are preserved in Schema.Ref and left for a Root to resolve, and
// unknown keywords are ignored.
func FromMap(node any, path string) (schema.Schema, error) {
	if node == nil {
		return schema.Schema{}, fmt.Errorf("jsonschema: schema is nil at %s", path)
	}
	if flag, ok := node.(bool); ok {
		// boolean schemas accept (true) or reject (false) everything
		if flag {
			return schema.Schema{Raw: map[string]any{}}, nil
		}
		return schema.Schema{Raw: map[string]any{"not": map[string]any{}}}, nil
	}
	payload, ok := node.(map[string]any)
	if !ok {
		return schema.Schema{}, fmt.Errorf("jsonschema: schema must be an object at %s", path)
	}

	out := schema.Schema{
		Ref:         strings.TrimSpace(readString(payload, "$ref")),
		Type:        readType(payload),
		Title:       strings.TrimSpace(readString(payload, "title")),
		Description: strings.TrimSpace(readString(payload, "description")),
		Format:      strings.TrimSpace(readString(payload, "format")),
		Default:     payload["default"],
		Const:       payload["const"],
		Extensions:  extractExtensions(payload),
		Raw:         payload,
	}

	if enumRaw, ok := payload["enum"]; ok {
		list, ok := enumRaw.([]any)
		if !ok {
			return schema.Schema{}, fmt.Errorf("jsonschema: enum must be an array at %s", path)
		}
		out.Enum = append([]any(nil), list...)
	}

	if requiredRaw, ok := payload["required"]; ok {
		list, ok := requiredRaw.([]any)
		if !ok {
			return schema.Schema{}, fmt.Errorf("jsonschema: required must be an array at %s", path)
		}
		for idx, item := range list {
			str, ok := item.(string)
			if !ok || strings.TrimSpace(str) == "" {
				return schema.Schema{}, fmt.Errorf("jsonschema: required[%d] must be a string at %s", idx, path)
			}
			out.Required = append(out.Required, str)
		}
	}

	for _, bound := range []struct {
		key    string
		target **int
	}{
		{key: "minItems", target: &out.MinItems},
		{key: "maxItems", target: &out.MaxItems},
	} {
		raw, ok := payload[bound.key]
		if !ok {
			continue
		}
		value, ok := toInt(raw)
		if !ok || value < 0 {
			return schema.Schema{}, fmt.Errorf("jsonschema: %s must be a non-negative integer at %s", bound.key, path)
		}
		*bound.target = &value
	}

	if propertiesRaw, ok := payload["properties"]; ok {
		props, ok := propertiesRaw.(map[string]any)
		if !ok {
			return schema.Schema{}, fmt.Errorf("jsonschema: properties must be an object at %s", path)
		}
		out.Properties = make(map[string]schema.Schema, len(props))
		for _, key := range sortedKeys(props) {
			converted, err := FromMap(props[key], joinPath(path, "properties", key))
			if err != nil {
				return schema.Schema{}, err
			}
			out.Properties[key] = converted
		}
	}

	if itemsRaw, ok := payload["items"]; ok {
		switch typed := itemsRaw.(type) {
		case map[string]any, bool:
			converted, err := FromMap(typed, joinPath(path, "items"))
			if err != nil {
				return schema.Schema{}, err
			}
			out.Items = &converted
		case []any:
			return schema.Schema{}, fmt.Errorf("jsonschema: tuple items are not supported at %s", path)
		default:
			return schema.Schema{}, fmt.Errorf("jsonschema: items must be an object at %s", path)
		}
	}

	for _, union := range []struct {
		key    string
		target *[]schema.Schema
	}{
		{key: "anyOf", target: &out.AnyOf},
		{key: "oneOf", target: &out.OneOf},
		{key: "allOf", target: &out.AllOf},
	} {
		raw, ok := payload[union.key]
		if !ok {
			continue
		}
		list, ok := raw.([]any)
		if !ok {
			return schema.Schema{}, fmt.Errorf("jsonschema: %s must be an array at %s", union.key, path)
		}
		branches := make([]schema.Schema, 0, len(list))
		for idx, entry := range list {
			converted, err := FromMap(entry, joinPath(path, union.key, strconv.Itoa(idx)))
			if err != nil {
				return schema.Schema{}, err
			}
			branches = append(branches, converted)
		}
		*union.target = branches
	}

	return out, nil
}

func readString(payload map[string]any, key string) string {
	value, _ := payload[key].(string)
	return value
}

// readType accepts both "type": "x" and the nullable form "type": ["x", "null"].
func readType(payload map[string]any) string {
	switch typed := payload["type"].(type) {
	case string:
		return strings.TrimSpace(typed)
	case []any:
		for _, entry := range typed {
			if str, ok := entry.(string); ok && str != "null" {
				return strings.TrimSpace(str)
			}
		}
	}
	return ""
}

func isVendorExtension(key string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(key)), "x-")
}

func extractExtensions(payload map[string]any) map[string]any {
	var extensions map[string]any
	for _, key := range sortedKeys(payload) {
		if !isVendorExtension(key) {
			continue
		}
		if extensions == nil {
			extensions = make(map[string]any)
		}
		extensions[key] = payload[key]
	}
	return extensions
}

func toInt(value any) (int, bool) {
	switch v := value.(type) {
	case float64:
		if v == math.Trunc(v) {
			return int(v), true
		}
		return 0, false
	case int:
		return v, true
	case int64:
		return int(v), true
	default:
		return 0, false
	}
}

func joinPath(path string, segments ...string) string {
	if path == "" || path == "#" {
		path = "#"
	}
	for _, segment := range segments {
		if segment == "" {
			continue
		}
		path = path + "/" + escapeJSONPointer(segment)
	}
	return path
}

func escapeJSONPointer(value string) string {
	replacer := strings.NewReplacer("~", "~0", "/", "~1")
	return replacer.Replace(value)
}

func sortedKeys(payload map[string]any) []string {
	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
