package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/goliatone/go-formarray/pkg/dialog"
	"github.com/goliatone/go-formarray/pkg/i18n"
)

// Presenter shows dialog requests as terminal prompts. Present blocks
// until the dialog closes; a rejected confirm re-prompts with the rejected
// input.
type Presenter struct {
	ctx context.Context
	cfg config
	err error
}

var _ dialog.Presenter = (*Presenter)(nil)

// NewPresenter builds a presenter bound to ctx.
func NewPresenter(ctx context.Context, options ...Option) *Presenter {
	cfg := defaultConfig()
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.driver == nil {
		cfg.driver = NewSurveyDriver(nil)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return &Presenter{ctx: ctx, cfg: cfg}
}

// Err returns and clears the last driver error, ErrAborted included.
func (p *Presenter) Err() error {
	err := p.err
	p.err = nil
	return err
}

// Present implements dialog.Presenter.
func (p *Presenter) Present(req *dialog.Request) dialog.Handle {
	if req == nil {
		return dialog.NopHandle{}
	}
	switch content := req.Content.(type) {
	case *dialog.SelectionList:
		p.presentSelection(req, content)
	case *dialog.TextEditor:
		p.presentText(req, content)
	default:
		p.cancel(req)
	}
	return dialog.NopHandle{}
}

func (p *Presenter) presentSelection(req *dialog.Request, list *dialog.SelectionList) {
	options := make([]string, 0, len(list.Items)+1)
	for _, item := range list.Items {
		options = append(options, item.Label)
	}
	options = append(options, p.actionLabel(req, dialog.ActionCancel, i18n.KeyCancel))

	for {
		idx, err := p.cfg.driver.Select(p.ctx, SelectConfig{
			Message:      req.Title,
			Options:      options,
			DefaultIndex: list.SelectedIndex(),
			Help:         p.cfg.localizer.T(i18n.KeySelectVariant),
		})
		if err != nil {
			p.fail(req, err)
			return
		}
		if idx < 0 || idx >= len(list.Items) {
			p.cancel(req)
			return
		}
		if err := list.Select(idx); err != nil {
			p.fail(req, err)
			return
		}
		if item, ok := list.Selected(); ok && strings.TrimSpace(item.Description) != "" {
			_ = p.cfg.driver.Info(p.ctx, p.cfg.theme.InfoPrefix+item.Description)
		}
		if p.confirm(req) {
			return
		}
	}
}

func (p *Presenter) presentText(req *dialog.Request, editor *dialog.TextEditor) {
	original := editor.Text()
	text := original
	for {
		edited, err := p.cfg.driver.TextArea(p.ctx, TextAreaConfig{
			Message:  req.Title,
			Default:  text,
			Help:     p.cfg.localizer.T(i18n.KeyEditRaw),
			FileName: "*." + editor.Language,
		})
		if err != nil {
			p.fail(req, err)
			return
		}
		if p.cfg.diffPreview && strings.TrimSpace(edited) != strings.TrimSpace(original) {
			_ = p.cfg.driver.Info(p.ctx, renderDiff(original, edited, p.cfg.color))
		}
		apply, err := p.cfg.driver.Confirm(p.ctx, ConfirmConfig{
			Message: p.actionLabel(req, dialog.ActionConfirm, i18n.KeyUpdate) + "?",
			Default: true,
		})
		if err != nil {
			p.fail(req, err)
			return
		}
		if !apply {
			p.cancel(req)
			return
		}
		editor.SetText(edited)
		if p.confirm(req) {
			return
		}
		text = edited
	}
}

// confirm invokes the confirm action and reports whether the dialog closed.
func (p *Presenter) confirm(req *dialog.Request) bool {
	closed, err := req.Invoke(dialog.ActionConfirm)
	if err == nil {
		return closed
	}
	if errors.Is(err, dialog.ErrActionDisabled) || errors.Is(err, dialog.ErrUnknownAction) {
		p.cfg.logger.Debug("confirm unavailable", "title", req.Title, "error", err)
		return false
	}
	p.printError(err)
	return false
}

func (p *Presenter) cancel(req *dialog.Request) {
	if req.Action(dialog.ActionCancel) == nil {
		return
	}
	if _, err := req.Invoke(dialog.ActionCancel); err != nil {
		p.cfg.logger.Warn("cancel failed", "title", req.Title, "error", err)
	}
}

func (p *Presenter) fail(req *dialog.Request, err error) {
	p.err = err
	if !errors.Is(err, ErrAborted) {
		p.cfg.logger.Warn("prompt failed", "title", req.Title, "error", err)
	}
	p.cancel(req)
}

func (p *Presenter) printError(err error) {
	msg := newColor(p.cfg.color, colorError...).Sprint(p.cfg.theme.ErrorPrefix + err.Error())
	_ = p.cfg.driver.Info(p.ctx, msg)
}

func (p *Presenter) actionLabel(req *dialog.Request, name, fallbackKey string) string {
	if action := req.Action(name); action != nil && action.Label != "" {
		return action.Label
	}
	return p.cfg.localizer.T(fallbackKey)
}
