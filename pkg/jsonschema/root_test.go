package jsonschema

import (
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-formarray/pkg/schema"
)

const blocksSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$defs": {
    "hero": {
      "$anchor": "hero",
      "type": "object",
      "title": "Hero",
      "properties": {
        "_type": {"const": "hero"},
        "headline": {"type": "string", "default": "Welcome"}
      }
    },
    "text": {
      "type": "object",
      "title": "Text",
      "properties": {
        "_type": {"enum": ["text"]},
        "body": {"type": "string"}
      }
    },
    "block": {"anyOf": [{"$ref": "#hero"}, {"$ref": "#/$defs/text"}]},
    "alias": {"$ref": "#/$defs/block", "title": "Alias"},
    "loopA": {"$ref": "#/$defs/loopB"},
    "loopB": {"$ref": "#/$defs/loopA"}
  },
  "type": "object",
  "properties": {
    "blocks": {"type": "array", "maxItems": 3, "items": {"$ref": "#/$defs/alias"}},
    "tags": {"type": "array", "items": {"type": "string"}},
    "broken": {"type": "array", "items": {"$ref": "#/$defs/missing"}},
    "cyclic": {"type": "array", "items": {"$ref": "#/$defs/loopA"}}
  }
}`

func mustRoot(t *testing.T, raw string) *Root {
	t.Helper()
	doc := schema.MustNewDocument(schema.SourceInline("root.json"), []byte(raw))
	root, err := LoadRoot(doc)
	if err != nil {
		t.Fatalf("load root: %v", err)
	}
	return root
}

func TestRoot_ResolveChainedRef(t *testing.T) {
	root := mustRoot(t, blocksSchema)
	blocks := root.Schema().Properties["blocks"]
	if blocks.MaxItems == nil || *blocks.MaxItems != 3 {
		t.Fatalf("expected maxItems 3, got %v", blocks.MaxItems)
	}

	item, err := root.Resolve(blocks, "items")
	if err != nil {
		t.Fatalf("resolve items: %v", err)
	}
	if item.Title != "Alias" {
		t.Fatalf("expected sibling title to override target, got %q", item.Title)
	}
	if len(item.AnyOf) != 2 {
		t.Fatalf("expected two anyOf branches, got %d", len(item.AnyOf))
	}
	if !item.AnyOf[0].IsRef() {
		t.Fatalf("expected branches to keep their refs until dereferenced")
	}
}

func TestRoot_DerefAnchor(t *testing.T) {
	root := mustRoot(t, blocksSchema)
	hero, err := root.Deref(schema.Schema{Ref: "#hero"})
	if err != nil {
		t.Fatalf("deref anchor: %v", err)
	}
	if hero.Title != "Hero" {
		t.Fatalf("expected Hero, got %q", hero.Title)
	}
	if hero.Properties["headline"].Default != "Welcome" {
		t.Fatalf("expected headline default, got %#v", hero.Properties["headline"].Default)
	}
}

func TestRoot_DerefErrors(t *testing.T) {
	root := mustRoot(t, blocksSchema)
	props := root.Schema().Properties

	if _, err := root.Resolve(props["broken"], "items"); err == nil {
		t.Fatalf("expected missing pointer error")
	}
	_, err := root.Resolve(props["cyclic"], "items")
	if err == nil || !strings.Contains(err.Error(), "cycle") {
		t.Fatalf("expected cycle error, got %v", err)
	}
	_, err = root.Deref(schema.Schema{Ref: "other.json#/x"})
	if !errors.Is(err, ErrExternalRef) {
		t.Fatalf("expected ErrExternalRef, got %v", err)
	}
	if _, err := root.Resolve(props["tags"], "missing"); err == nil {
		t.Fatalf("expected missing property error")
	}
}

func TestRoot_Lookup(t *testing.T) {
	root := mustRoot(t, blocksSchema)
	tags, err := root.Lookup("#/properties/tags")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if tags.Type != "array" || tags.Items == nil || tags.Items.Type != "string" {
		t.Fatalf("unexpected tags schema: %+v", tags)
	}
	defs := root.Definitions()
	if _, ok := defs["$defs"]; !ok {
		t.Fatalf("expected $defs in definitions, got %v", defs)
	}
}

func TestRoot_DuplicateAnchor(t *testing.T) {
	payload := map[string]any{
		"$defs": map[string]any{
			"a": map[string]any{"$anchor": "dup"},
			"b": map[string]any{"$anchor": "dup"},
		},
	}
	if _, err := NewRoot(payload); err == nil {
		t.Fatalf("expected duplicate anchor error")
	}
}

func TestParse_YAMLMatchesJSON(t *testing.T) {
	yamlDoc := schema.MustNewDocument(schema.SourceInline("schema.yaml"), []byte("type: array\nmaxItems: 2\nitems:\n  type: string\n"))
	payload, err := Parse(yamlDoc)
	if err != nil {
		t.Fatalf("parse yaml: %v", err)
	}
	if payload["maxItems"] != float64(2) {
		t.Fatalf("expected yaml integers to normalise to float64, got %#v", payload["maxItems"])
	}
	converted, err := FromMap(payload, "#")
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if converted.MaxItems == nil || *converted.MaxItems != 2 {
		t.Fatalf("expected maxItems 2, got %v", converted.MaxItems)
	}
}

func TestFromMap_RejectsInvalidBounds(t *testing.T) {
	_, err := FromMap(map[string]any{"type": "array", "maxItems": -1.0}, "#")
	if err == nil {
		t.Fatalf("expected negative maxItems to fail")
	}
	_, err = FromMap(map[string]any{"items": []any{}}, "#")
	if err == nil {
		t.Fatalf("expected tuple items to fail")
	}
}
