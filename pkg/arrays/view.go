package arrays

import (
	"github.com/goliatone/go-formarray/pkg/i18n"
	"github.com/goliatone/go-formarray/pkg/paths"
	"github.com/goliatone/go-formarray/pkg/schema"
	"github.com/goliatone/go-formarray/pkg/visibility"
)

// Hints read from the x-formgen extension of the array schema.
const (
	hintItemVisibleWhen = "itemVisibleWhen"
	hintItemEnabledWhen = "itemEnabledWhen"
)

// ElementProps is what the element renderer receives for one item.
type ElementProps struct {
	Index   int
	Path    paths.Path
	Schema  schema.Schema
	Variant *VariantDescriptor
	Value   any
	Label   string
	Enabled bool
	Visible bool
}

// ElementRenderer draws one element. The result is opaque to this package.
type ElementRenderer interface {
	RenderElement(props ElementProps) any
}

// ElementRendererFunc adapts a function into an ElementRenderer.
type ElementRendererFunc func(props ElementProps) any

// RenderElement implements ElementRenderer.
func (fn ElementRendererFunc) RenderElement(props ElementProps) any {
	return fn(props)
}

// ItemView is the projection of one element.
type ItemView struct {
	Index     int
	Path      paths.Path
	Label     string
	Element   any
	Enabled   bool
	Visible   bool
	Dragging  bool
	Indicator Indicator
	Removable bool
}

// View is everything a renderer needs to draw the array editor.
type View struct {
	Path        paths.Path
	Label       string
	Description string
	Required    bool
	Minimal     bool
	Editable    bool
	CanAdd      bool
	MaxItems    *int
	Items       []ItemView
	Strings     Strings
}

// Strings holds the localized affordance labels.
type Strings struct {
	AddItem string
	JSON    string
	Remove  string
	Move    string
	NoItems string
	Limit   string
}

// View builds the current projection.
func (c *Control) View() View {
	loc := c.cfg.localizer
	view := View{
		Path:     c.props.Path,
		Label:    c.Label(),
		Required: c.props.Required,
		Minimal:  c.cfg.minimal,
		Editable: c.Editable(),
		CanAdd:   c.CanAdd(),
		Strings: Strings{
			AddItem: loc.T(i18n.KeyAddItem),
			JSON:    loc.T(i18n.KeyJSON),
			Remove:  loc.T(i18n.KeyRemove),
			Move:    loc.T(i18n.KeyMove),
			NoItems: loc.T(i18n.KeyNoItems),
		},
	}
	var visibleRule, enabledRule string
	if c.props.Schema != nil {
		view.Description = c.props.Schema.Description
		view.MaxItems = c.props.Schema.MaxItems
		visibleRule = c.props.Schema.HintString(hintItemVisibleWhen)
		enabledRule = c.props.Schema.HintString(hintItemEnabledWhen)
		if view.MaxItems != nil && !view.CanAdd && view.Editable {
			view.Strings.Limit = loc.T(i18n.KeyMaxItemsReached, *view.MaxItems)
		}
	}

	session, dragging := c.drag.Session()
	length := len(c.props.Data)
	view.Items = make([]ItemView, 0, length)
	for idx, value := range c.props.Data {
		path := paths.Compose(c.props.Path, idx)
		ruleCtx := visibility.Context{
			Values: map[string]any{"item": value, "index": idx, "length": length},
			Extras: c.cfg.visibilityEnv,
		}
		item := ItemView{
			Index:     idx,
			Path:      path,
			Label:     ResolveLabel(value, c.variants),
			Visible:   c.evalRule(path, visibleRule, ruleCtx),
			Enabled:   c.Editable() && c.evalRule(path, enabledRule, ruleCtx),
			Dragging:  dragging && session.SourceIndex == idx,
			Indicator: c.drag.Indicator(idx),
			Removable: c.Editable(),
		}
		if c.cfg.renderer != nil && c.resolved {
			props := ElementProps{
				Index:   idx,
				Path:    path,
				Schema:  c.item,
				Value:   value,
				Label:   item.Label,
				Enabled: item.Enabled,
				Visible: item.Visible,
			}
			if variant, ok := MatchVariant(value, c.variants); ok {
				props.Variant = &variant
			}
			item.Element = c.cfg.renderer.RenderElement(props)
		}
		view.Items = append(view.Items, item)
	}
	return view
}

func (c *Control) evalRule(path paths.Path, rule string, ctx visibility.Context) bool {
	if rule == "" {
		return true
	}
	ok, err := c.cfg.evaluator.Eval(path.String(), rule, ctx)
	if err != nil {
		c.cfg.logger.Warn("item rule failed", "path", path.String(), "rule", rule, "error", err)
		return true
	}
	return ok
}
