package html

import (
	"fmt"
	stdhtml "html"
	"io"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/goliatone/go-formarray/pkg/arrays"
	"github.com/goliatone/go-formarray/pkg/dialog"
)

// Renderer turns views and dialog requests into HTML fragments.
type Renderer struct {
	cfg    config
	engine TemplateRenderer
	theme  themeContext
}

// New builds a renderer. A theme selector error fails construction.
func New(options ...Option) (*Renderer, error) {
	cfg := defaultConfig()
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	if cfg.theme == nil && cfg.selector != nil {
		selection, err := cfg.selector.Select(cfg.themeName, cfg.variant)
		if err != nil {
			return nil, fmt.Errorf("html: select theme: %w", err)
		}
		cfg.theme = RendererConfig(selection, cfg.fallbacks)
	}

	engine := cfg.engine
	if engine == nil {
		built, err := NewEngine(cfg.templates)
		if err != nil {
			return nil, err
		}
		engine = built
	}

	return &Renderer{cfg: cfg, engine: engine, theme: buildThemeContext(cfg.theme)}, nil
}

// RenderView renders the array editor. Extra writers receive the same
// output.
func (r *Renderer) RenderView(view arrays.View, out ...io.Writer) (string, error) {
	data := map[string]any{
		"view":  viewContext(view),
		"theme": r.theme.values(),
	}
	rendered, err := r.engine.RenderTemplate(r.partial(PartialArray), data, out...)
	if err != nil {
		return "", fmt.Errorf("html: render view %q: %w", view.Path.String(), err)
	}
	return rendered, nil
}

// RenderDialog renders a dialog request.
func (r *Renderer) RenderDialog(req *dialog.Request, out ...io.Writer) (string, error) {
	if req == nil {
		return "", nil
	}
	data := map[string]any{
		"dialog": dialogContext(req),
		"theme":  r.theme.values(),
	}
	rendered, err := r.engine.RenderTemplate(r.partial(PartialDialog), data, out...)
	if err != nil {
		return "", fmt.Errorf("html: render dialog %q: %w", req.Title, err)
	}
	return rendered, nil
}

func (r *Renderer) partial(key string) string {
	if r.cfg.theme != nil {
		if name := strings.TrimSpace(r.cfg.theme.Partials[key]); name != "" {
			return name
		}
	}
	if name := strings.TrimSpace(r.cfg.fallbacks[key]); name != "" {
		return name
	}
	return defaultPartials()[key]
}

func viewContext(view arrays.View) map[string]any {
	items := make([]any, 0, len(view.Items))
	for _, item := range view.Items {
		items = append(items, map[string]any{
			"index":     item.Index,
			"path":      item.Path.String(),
			"label":     item.Label,
			"element":   elementMarkup(item.Element),
			"enabled":   item.Enabled,
			"visible":   item.Visible,
			"dragging":  item.Dragging,
			"indicator": item.Indicator.String(),
			"removable": item.Removable,
		})
	}
	ctx := map[string]any{
		"path":        view.Path.String(),
		"label":       view.Label,
		"description": SanitizeDescription(view.Description),
		"required":    view.Required,
		"minimal":     view.Minimal,
		"editable":    view.Editable,
		"canAdd":      view.CanAdd,
		"items":       items,
		"strings": map[string]any{
			"addItem": view.Strings.AddItem,
			"json":    view.Strings.JSON,
			"remove":  view.Strings.Remove,
			"move":    view.Strings.Move,
			"noItems": view.Strings.NoItems,
			"limit":   view.Strings.Limit,
		},
	}
	if view.MaxItems != nil {
		ctx["maxItems"] = *view.MaxItems
	}
	return ctx
}

// elementMarkup treats string output of the element renderer as trusted
// markup and encodes anything else as JSON text.
func elementMarkup(element any) string {
	switch v := element.(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	}
	raw, err := json.Marshal(element)
	if err != nil {
		return ""
	}
	return stdhtml.EscapeString(string(raw))
}

func dialogContext(req *dialog.Request) map[string]any {
	actions := make([]any, 0, len(req.Actions))
	for _, action := range req.Actions {
		if action == nil {
			continue
		}
		actions = append(actions, map[string]any{
			"name":     action.Name,
			"label":    action.Label,
			"default":  action.Default,
			"disabled": action.Disabled,
		})
	}
	ctx := map[string]any{
		"title":   req.Title,
		"actions": actions,
		"kind":    "",
	}
	switch content := req.Content.(type) {
	case *dialog.SelectionList:
		ctx["kind"] = "selection"
		selected := content.SelectedIndex()
		items := make([]any, 0, len(content.Items))
		for idx, item := range content.Items {
			items = append(items, map[string]any{
				"key":         item.Key,
				"label":       item.Label,
				"description": SanitizeDescription(item.Description),
				"selected":    idx == selected,
			})
		}
		ctx["items"] = items
		if item, ok := content.Selected(); ok {
			ctx["description"] = SanitizeDescription(item.Description)
		}
	case *dialog.TextEditor:
		ctx["kind"] = "text"
		ctx["language"] = content.Language
		ctx["text"] = content.Text()
	}
	return ctx
}
