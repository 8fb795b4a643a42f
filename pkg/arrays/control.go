package arrays

import (
	"github.com/goliatone/go-formarray/pkg/paths"
	"github.com/goliatone/go-formarray/pkg/schema"
	"github.com/goliatone/go-formarray/pkg/store"
	"github.com/goliatone/go-formarray/pkg/validation"
)

// Props is the render input of a Control.
type Props struct {
	Schema   *schema.Schema
	Root     SchemaDereferencer
	Path     paths.Path
	Data     []any
	Label    string
	Required bool
	Readonly bool
}

// Control hosts the array editor for one field. It is not safe for
// concurrent use.
type Control struct {
	cfg        config
	dispatcher store.Dispatcher
	props      Props
	cache      SchemaCache
	item       schema.Schema
	resolved   bool
	variants   []VariantDescriptor
	bridge     *Bridge
	drag       *DragController
	validator  validation.Validator
	validatorK *schema.Schema
}

// NewControl builds a control that dispatches to dispatcher.
func NewControl(dispatcher store.Dispatcher, options ...Option) *Control {
	cfg := defaultConfig()
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	c := &Control{cfg: cfg, dispatcher: dispatcher}
	c.bridge = NewBridge(dispatcher, paths.Root, cfg.logger)
	c.drag = NewDragController(MoverFunc(c.MoveItem), cfg.logger)
	return c
}

// Update feeds the latest schema and data. Schema-derived state is rebuilt
// only when props.Schema points to a different schema. A drag is cancelled
// when the data length changes underneath it.
func (c *Control) Update(props Props) {
	before := c.cache.Builds()
	c.props = props
	c.item, c.resolved, c.variants = c.cache.Resolve(props.Schema, props.Root)
	if c.cache.Builds() != before {
		c.validator, c.validatorK = nil, nil
		if !c.resolved {
			c.cfg.logger.Warn("array item schema unresolved; editing disabled", "path", props.Path.String())
		}
	}
	if c.bridge.Path() != props.Path {
		c.bridge = NewBridge(c.dispatcher, props.Path, c.cfg.logger)
	}
	c.drag.Prune(len(props.Data))
}

// Props returns the last props passed to Update.
func (c *Control) Props() Props {
	return c.props
}

// Item returns the resolved item schema.
func (c *Control) Item() (schema.Schema, bool) {
	return c.item, c.resolved
}

// Variants returns the union descriptors, nil for plain items.
func (c *Control) Variants() []VariantDescriptor {
	return c.variants
}

// Bridge exposes the mutation bridge for the current path.
func (c *Control) Bridge() *Bridge {
	return c.bridge
}

// Drag exposes the drag controller.
func (c *Control) Drag() *DragController {
	return c.drag
}

// Editable reports whether items can be added or changed.
func (c *Control) Editable() bool {
	return c.resolved && !c.props.Readonly
}

// RemoveItem removes the element at index. It is ignored while editing is
// disabled.
func (c *Control) RemoveItem(index int) {
	if !c.Editable() || index < 0 || index >= len(c.props.Data) {
		return
	}
	c.bridge.RemoveItem(index)
}

// MoveItem moves an element. It is ignored while editing is disabled.
func (c *Control) MoveItem(from, to int) {
	if !c.Editable() {
		return
	}
	c.bridge.MoveItem(from, to)
}

// Label is the header label: explicit props, else the schema title, else the
// last path segment.
func (c *Control) Label() string {
	if c.props.Label != "" {
		return c.props.Label
	}
	if c.props.Schema != nil && c.props.Schema.Title != "" {
		return c.props.Schema.Title
	}
	return c.props.Path.Last()
}
