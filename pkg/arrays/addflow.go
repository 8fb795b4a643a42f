package arrays

import (
	"strconv"

	"github.com/goliatone/go-formarray/pkg/defaults"
	"github.com/goliatone/go-formarray/pkg/dialog"
	"github.com/goliatone/go-formarray/pkg/i18n"
)

// CanAdd reports whether another element fits under maxItems.
func CanAdd(maxItems *int, length int) bool {
	return maxItems == nil || length < *maxItems
}

// CanAdd reports whether the add affordance is enabled.
func (c *Control) CanAdd() bool {
	if !c.Editable() {
		return false
	}
	var maxItems *int
	if c.props.Schema != nil {
		maxItems = c.props.Schema.MaxItems
	}
	return CanAdd(maxItems, len(c.props.Data))
}

// RequestAdd handles an "add" click. Plain items are appended right away
// with their schema default and nil is returned. Union items open a variant
// selection dialog whose confirm action stays disabled until a variant is
// picked; the presented request is returned.
func (c *Control) RequestAdd() *dialog.Request {
	if !c.resolved {
		c.cfg.logger.Debug("add ignored: item schema unresolved", "path", c.props.Path.String())
		return nil
	}
	if !c.CanAdd() {
		return nil
	}
	if len(c.variants) == 0 {
		c.bridge.AddItem(defaults.New(c.props.Root).Create(c.item))
		return nil
	}

	req := c.variantRequest()
	if c.cfg.presenter == nil {
		c.cfg.logger.Warn("no dialog presenter configured", "path", c.props.Path.String())
		return req
	}
	c.cfg.presenter.Present(req)
	return req
}

func (c *Control) variantRequest() *dialog.Request {
	loc := c.cfg.localizer
	sorted := SortVariants(c.variants, loc.Locale)
	items := make([]dialog.Item, 0, len(sorted))
	for idx, variant := range sorted {
		label := variant.DisplayLabel()
		if label == "" {
			label = strconv.Itoa(idx + 1)
		}
		items = append(items, dialog.Item{
			Key:         strconv.Itoa(idx),
			Label:       label,
			Description: variant.Description,
			Data:        variant,
		})
	}

	var selected *VariantDescriptor
	confirm := &dialog.Action{
		Name:     dialog.ActionConfirm,
		Label:    loc.T(i18n.KeyAdd),
		Default:  true,
		Disabled: true,
	}
	list := dialog.NewSelectionList(items)
	list.OnChange(func(item dialog.Item) {
		variant, ok := item.Data.(VariantDescriptor)
		if !ok {
			return
		}
		selected = &variant
		confirm.Disabled = false
	})
	bridge := c.bridge
	confirm.Callback = func() error {
		if selected == nil || selected.CreateDefault == nil {
			return nil
		}
		bridge.AddItem(selected.CreateDefault())
		return nil
	}

	return &dialog.Request{
		Title:   c.addDialogTitle(),
		Content: list,
		Actions: []*dialog.Action{
			{Name: dialog.ActionCancel, Label: loc.T(i18n.KeyCancel)},
			confirm,
		},
	}
}

func (c *Control) addDialogTitle() string {
	addItem := c.cfg.localizer.T(i18n.KeyAddItem)
	if label := c.Label(); label != "" {
		return label + " - " + addItem
	}
	return addItem
}
