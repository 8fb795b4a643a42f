package arrays

import (
	"fmt"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/goliatone/go-formarray/pkg/dialog"
	"github.com/goliatone/go-formarray/pkg/i18n"
	"github.com/goliatone/go-formarray/pkg/jsonschema"
	"github.com/goliatone/go-formarray/pkg/store"
	"github.com/goliatone/go-formarray/pkg/validation"
)

// definitionsSource is implemented by roots that can hand out their
// reusable sections for standalone validation.
type definitionsSource interface {
	Definitions() map[string]any
}

// EditRaw opens a JSON editor seeded with the current value. Confirm
// replaces the whole array; empty text clears it. Text that does not parse,
// is not an array, or fails schema validation rejects the confirm and
// nothing is dispatched. It returns nil while editing is disabled.
func (c *Control) EditRaw() *dialog.Request {
	if !c.Editable() {
		return nil
	}
	editor := dialog.NewTextEditor("json", c.rawText())
	loc := c.cfg.localizer
	path := c.props.Path

	confirm := &dialog.Action{
		Name:    dialog.ActionConfirm,
		Label:   loc.T(i18n.KeyUpdate),
		Default: true,
		Callback: func() error {
			value, err := c.parseRaw(strings.TrimSpace(editor.Text()))
			if err != nil {
				c.cfg.logger.Warn("raw edit rejected", "path", path.String(), "error", err)
				return dialog.Reject(err)
			}
			c.dispatch(store.Update(path, func(any) any { return value }))
			return nil
		},
	}

	req := &dialog.Request{
		Title:   c.rawDialogTitle(),
		Content: editor,
		Actions: []*dialog.Action{
			{Name: dialog.ActionCancel, Label: loc.T(i18n.KeyCancel)},
			confirm,
		},
	}
	if c.cfg.presenter == nil {
		c.cfg.logger.Warn("no dialog presenter configured", "path", path.String())
		return req
	}
	c.cfg.presenter.Present(req)
	return req
}

func (c *Control) dispatch(action store.Action) {
	if c.dispatcher != nil {
		c.dispatcher.Dispatch(action)
	}
}

func (c *Control) rawText() string {
	if c.props.Data == nil {
		return ""
	}
	raw, err := json.MarshalIndent(c.props.Data, "", "  ")
	if err != nil {
		c.cfg.logger.Warn("raw edit seed failed", "path", c.props.Path.String(), "error", err)
		return ""
	}
	return string(raw)
}

// parseRaw returns nil for empty text or a JSON null.
func (c *Control) parseRaw(text string) (any, error) {
	if text == "" {
		return nil, nil
	}
	decoded, err := jsonschema.DecodeJSON([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("arrays: parse raw value: %w", err)
	}
	if decoded == nil {
		return nil, nil
	}
	list, ok := decoded.([]any)
	if !ok {
		return nil, fmt.Errorf("%w (got %T)", ErrNotArray, decoded)
	}
	if c.props.Schema != nil && c.props.Schema.MaxItems != nil && len(list) > *c.props.Schema.MaxItems {
		return nil, fmt.Errorf("%w: %d items, maximum %d", ErrTooManyItems, len(list), *c.props.Schema.MaxItems)
	}
	if validator := c.rawValidator(); validator != nil {
		if err := validator.Validate(list); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (c *Control) rawValidator() validation.Validator {
	if !c.cfg.validateRaw || c.props.Schema == nil || c.props.Schema.Raw == nil {
		return nil
	}
	if c.validator != nil && c.validatorK == c.props.Schema {
		return c.validator
	}
	var defs map[string]any
	if source, ok := c.props.Root.(definitionsSource); ok {
		defs = source.Definitions()
	}
	compiled, err := validation.Compile(validation.Fragment(c.props.Schema.Raw, defs))
	if err != nil {
		c.cfg.logger.Warn("raw edit validation disabled", "path", c.props.Path.String(), "error", err)
		return nil
	}
	c.validator, c.validatorK = compiled, c.props.Schema
	return compiled
}

func (c *Control) rawDialogTitle() string {
	if label := c.Label(); label != "" {
		return label
	}
	return c.cfg.localizer.T(i18n.KeyJSON)
}
