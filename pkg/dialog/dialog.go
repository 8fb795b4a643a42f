// Package dialog models modal surfaces as request/response values. The
// caller builds a Request with content and named actions; a Presenter shows
// it and invokes the chosen action's callback through Request.Invoke.
package dialog

import (
	"fmt"
)

// Well-known action names.
const (
	ActionConfirm = "confirm"
	ActionCancel  = "cancel"
)

// Action is a named button of a dialog. A callback error rejects the action
// and keeps the dialog open.
type Action struct {
	Name     string
	Label    string
	Default  bool
	Disabled bool
	Callback func() error
}

// Content is the body of a dialog: *SelectionList or *TextEditor.
type Content interface {
	contentKind() string
}

// Request describes one dialog.
type Request struct {
	Title   string
	Content Content
	Actions []*Action
}

// Handle lets the requester close a presented dialog.
type Handle interface {
	Close()
}

// Presenter shows dialogs.
type Presenter interface {
	Present(req *Request) Handle
}

// PresenterFunc adapts a function into a Presenter.
type PresenterFunc func(req *Request) Handle

// Present implements Presenter.
func (fn PresenterFunc) Present(req *Request) Handle {
	return fn(req)
}

// NopHandle is a Handle whose Close does nothing.
type NopHandle struct{}

// Close implements Handle.
func (NopHandle) Close() {}

// Action returns the named action or nil.
func (r *Request) Action(name string) *Action {
	if r == nil {
		return nil
	}
	for _, action := range r.Actions {
		if action != nil && action.Name == name {
			return action
		}
	}
	return nil
}

// DefaultAction returns the action flagged as default, if any.
func (r *Request) DefaultAction() *Action {
	if r == nil {
		return nil
	}
	for _, action := range r.Actions {
		if action != nil && action.Default {
			return action
		}
	}
	return nil
}

// Invoke runs the named action. It reports whether the dialog should close:
// disabled actions and rejected callbacks keep it open and return an error
// wrapping ErrActionDisabled or ErrRejected.
func (r *Request) Invoke(name string) (bool, error) {
	action := r.Action(name)
	if action == nil {
		return false, fmt.Errorf("dialog: %w: %q", ErrUnknownAction, name)
	}
	if action.Disabled {
		return false, fmt.Errorf("dialog: %q: %w", name, ErrActionDisabled)
	}
	if action.Callback == nil {
		return true, nil
	}
	if err := action.Callback(); err != nil {
		return false, Reject(err)
	}
	return true, nil
}
