package html

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-formarray/pkg/arrays"
	"github.com/goliatone/go-formarray/pkg/dialog"
	"github.com/goliatone/go-formarray/pkg/store"
	"github.com/goliatone/go-formarray/pkg/testsupport"
)

func blocksControl(t *testing.T, options ...arrays.Option) *arrays.Control {
	t.Helper()

	root := testsupport.LoadRoot(t, filepath.Join("testdata", "blocks.schema.json"))
	prop := root.Schema().Properties["blocks"]
	c := arrays.NewControl(store.DispatcherFunc(func(store.Action) {}), options...)
	c.Update(arrays.Props{
		Schema:   &prop,
		Root:     root,
		Path:     "blocks",
		Required: true,
		Data: []any{
			map[string]any{"_type": "heading", "text": "Hi"},
			map[string]any{"_type": "quote"},
		},
	})
	return c
}

func draggingView(t *testing.T) arrays.View {
	t.Helper()

	c := blocksControl(t)
	if err := c.Drag().Start(0); err != nil {
		t.Fatalf("start drag: %v", err)
	}
	c.Drag().Over(500, []arrays.Box{{Index: 0, Top: 0, Height: 40}, {Index: 1, Top: 40, Height: 40}})
	return c.View()
}

func newRenderer(t *testing.T, options ...Option) *Renderer {
	t.Helper()

	r, err := New(options...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return r
}

func assertContains(t *testing.T, html string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if !strings.Contains(html, fragment) {
			t.Fatalf("expected output to contain %q\n%s", fragment, html)
		}
	}
}

func TestViewContext_Golden(t *testing.T) {
	path := filepath.Join("testdata", "view_context.golden.json")
	got := testsupport.Normalize(t, viewContext(draggingView(t)))

	testsupport.WriteGolden(t, path, got)
	want := testsupport.MustLoadJSON(t, path)
	if diff := testsupport.CompareGolden(want, got); diff != "" {
		t.Fatalf("view context mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderView_ProjectsDragState(t *testing.T) {
	r := newRenderer(t)

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return r.RenderView(draggingView(t), w)
	})
	if result != written {
		t.Fatalf("expected writer to receive the rendered fragment")
	}
	assertContains(t, result,
		`data-path="blocks"`,
		`<span class="formarray__label">Blocks<span class="formarray__required"`,
		`data-index="0" data-path="blocks.0" data-dragging="true"`,
		`data-index="1" data-path="blocks.1" data-indicator="after"`,
		`<p class="formarray__description">Page <em>content</em></p>`,
		`data-action="edit-raw">JSON</button>`,
		`<button type="button" class="formarray__add" data-action="add">Add item</button>`,
	)
	if strings.Contains(result, "onerror") {
		t.Fatalf("expected description to be sanitized:\n%s", result)
	}
}

func TestRenderView_EmptyMinimalAndElements(t *testing.T) {
	r := newRenderer(t)

	c := blocksControl(t, arrays.WithMinimal(true), arrays.WithRenderer(arrays.ElementRendererFunc(func(props arrays.ElementProps) any {
		return "<input name=\"" + props.Path.String() + ".text\">"
	})))
	out, err := r.RenderView(c.View())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	assertContains(t, out, `formarray--minimal`, `<input name="blocks.0.text">`)
	if strings.Contains(out, "formarray__header") {
		t.Fatalf("expected minimal view to hide the header")
	}

	empty := c.View()
	empty.Items = nil
	out, err = r.RenderView(empty)
	if err != nil {
		t.Fatalf("render empty: %v", err)
	}
	assertContains(t, out, `<li class="formarray__empty">No items</li>`)
}

func TestRenderDialog_VariantSelection(t *testing.T) {
	r := newRenderer(t)
	var buf bytes.Buffer
	c := blocksControl(t, arrays.WithPresenter(NewPresenter(r, &buf)))

	req := c.RequestAdd()
	if req == nil {
		t.Fatalf("expected variant dialog")
	}
	assertContains(t, buf.String(),
		`<h2 class="formarray-dialog__title">Blocks - Add item</h2>`,
		`<li role="option" data-key="0" aria-selected="false">Heading</li>`,
		`<li role="option" data-key="1" aria-selected="false">Quote</li>`,
		`data-action="confirm" data-default="true" disabled>Add</button>`,
	)

	list := req.Content.(*dialog.SelectionList)
	if err := list.Select(0); err != nil {
		t.Fatalf("select: %v", err)
	}
	out, err := r.RenderDialog(req)
	if err != nil {
		t.Fatalf("render dialog: %v", err)
	}
	assertContains(t, out,
		`data-key="0" aria-selected="true"`,
		`<div class="formarray-dialog__description">Large <b>title</b> text</div>`,
		`data-action="confirm" data-default="true">Add</button>`,
	)
	if strings.Contains(out, "<script>") {
		t.Fatalf("expected variant description to be sanitized:\n%s", out)
	}
}

func TestRenderDialog_RawEditorEscapesText(t *testing.T) {
	r := newRenderer(t)
	req := &dialog.Request{
		Title:   "Blocks",
		Content: dialog.NewTextEditor("json", `["<b>"]`),
		Actions: []*dialog.Action{{Name: dialog.ActionConfirm, Label: "Update"}},
	}
	out, err := r.RenderDialog(req)
	if err != nil {
		t.Fatalf("render dialog: %v", err)
	}
	assertContains(t, out, `data-language="json"`, `&lt;b&gt;`)
	if strings.Contains(out, `<b>`) {
		t.Fatalf("expected editor text to be escaped:\n%s", out)
	}
	if out, _ := r.RenderDialog(nil); out != "" {
		t.Fatalf("expected nil request to render nothing")
	}
}

func TestElementMarkup_EscapesStructuredValues(t *testing.T) {
	if got := elementMarkup(`<em>trusted</em>`); got != `<em>trusted</em>` {
		t.Fatalf("expected string markup to pass through, got %q", got)
	}
	got := elementMarkup(map[string]any{"html": `<script>"x"</script>`})
	if strings.ContainsAny(got, `<>"`) || !strings.Contains(got, "&#34;html&#34;") {
		t.Fatalf("expected structured value to be escaped, got %q", got)
	}
	if got := elementMarkup(nil); got != "" {
		t.Fatalf("expected nil element to render empty, got %q", got)
	}
}
