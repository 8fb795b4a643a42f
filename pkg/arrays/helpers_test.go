package arrays

import (
	"testing"

	"github.com/goliatone/go-formarray/pkg/dialog"
	"github.com/goliatone/go-formarray/pkg/jsonschema"
	"github.com/goliatone/go-formarray/pkg/schema"
	"github.com/goliatone/go-formarray/pkg/store"
)

type recordingDispatcher struct {
	actions []store.Action
}

func (r *recordingDispatcher) Dispatch(action store.Action) {
	r.actions = append(r.actions, action)
}

type capturePresenter struct {
	requests []*dialog.Request
}

func (p *capturePresenter) Present(req *dialog.Request) dialog.Handle {
	p.requests = append(p.requests, req)
	return dialog.NopHandle{}
}

func (p *capturePresenter) last(t *testing.T) *dialog.Request {
	t.Helper()
	if len(p.requests) == 0 {
		t.Fatalf("expected a dialog to be presented")
	}
	return p.requests[len(p.requests)-1]
}

const formSchema = `{
  "$defs": {
    "a": {
      "type": "object",
      "title": "Alpha",
      "description": "First <b>variant</b>",
      "properties": {
        "type": {"const": "a"},
        "text": {"type": "string", "default": "hello"}
      }
    },
    "b": {
      "type": "object",
      "title": "Beta",
      "properties": {
        "type": {"enum": ["b"]},
        "count": {"type": "integer"}
      },
      "required": ["count"]
    }
  },
  "type": "object",
  "properties": {
    "variants": {
      "type": "array",
      "title": "Blocks",
      "items": {"anyOf": [{"$ref": "#/$defs/b"}, {"$ref": "#/$defs/a"}]}
    },
    "plain": {
      "type": "array",
      "maxItems": 2,
      "items": {"type": "object", "properties": {"name": {"type": "string", "default": "x"}}, "required": ["name"]}
    },
    "broken": {"type": "array", "items": {"$ref": "#/$defs/nope"}},
    "ruled": {
      "type": "array",
      "items": {"type": "string"},
      "x-formgen": {"itemVisibleWhen": "item != \"hidden\"", "itemEnabledWhen": "index > 0"}
    }
  }
}`

func loadRoot(t *testing.T) *jsonschema.Root {
	t.Helper()
	doc := schema.MustNewDocument(schema.SourceInline("form.json"), []byte(formSchema))
	root, err := jsonschema.LoadRoot(doc)
	if err != nil {
		t.Fatalf("load root: %v", err)
	}
	return root
}

// arraySchema returns a stable pointer to the named array property.
func arraySchema(t *testing.T, root *jsonschema.Root, name string) *schema.Schema {
	t.Helper()
	prop, ok := root.Schema().Properties[name]
	if !ok {
		t.Fatalf("missing property %q", name)
	}
	return &prop
}
