package dialog

import (
	"errors"
	"testing"
)

func TestRequestInvoke(t *testing.T) {
	calls := 0
	req := &Request{
		Title: "Pick",
		Actions: []*Action{
			{Name: ActionCancel, Label: "Cancel"},
			{Name: ActionConfirm, Label: "Add", Default: true, Disabled: true, Callback: func() error {
				calls++
				if calls == 1 {
					return errors.New("bad input")
				}
				return nil
			}},
		},
	}

	if _, err := req.Invoke(ActionConfirm); !errors.Is(err, ErrActionDisabled) {
		t.Fatalf("expected ErrActionDisabled, got %v", err)
	}
	req.Action(ActionConfirm).Disabled = false

	closed, err := req.Invoke(ActionConfirm)
	if closed || !errors.Is(err, ErrRejected) {
		t.Fatalf("expected rejection that keeps the dialog open, got closed=%v err=%v", closed, err)
	}
	closed, err = req.Invoke(ActionConfirm)
	if !closed || err != nil {
		t.Fatalf("expected confirm to close, got closed=%v err=%v", closed, err)
	}
	if closed, err := req.Invoke(ActionCancel); !closed || err != nil {
		t.Fatalf("expected cancel without callback to close")
	}
	if _, err := req.Invoke("missing"); !errors.Is(err, ErrUnknownAction) {
		t.Fatalf("expected ErrUnknownAction, got %v", err)
	}
	if req.DefaultAction().Name != ActionConfirm {
		t.Fatalf("expected confirm to be the default action")
	}
}

func TestSelectionListEmitsChanges(t *testing.T) {
	list := NewSelectionList([]Item{{Key: "a", Data: 1}, {Key: "b", Data: 2}})
	if _, ok := list.Selected(); ok {
		t.Fatalf("expected no initial selection")
	}
	var seen []any
	list.OnChange(func(item Item) { seen = append(seen, item.Data) })
	if err := list.Select(1); err != nil {
		t.Fatalf("select: %v", err)
	}
	if err := list.Select(5); err == nil {
		t.Fatalf("expected out of range selection to fail")
	}
	item, ok := list.Selected()
	if !ok || item.Key != "b" || len(seen) != 1 || seen[0] != 2 {
		t.Fatalf("unexpected selection state: %+v %v", item, seen)
	}
}

func TestRejectIsIdempotent(t *testing.T) {
	base := errors.New("boom")
	once := Reject(base)
	twice := Reject(once)
	if once != twice || !errors.Is(twice, base) {
		t.Fatalf("expected Reject to wrap once and keep the cause")
	}
	if Reject(nil) != nil {
		t.Fatalf("expected nil passthrough")
	}
}
