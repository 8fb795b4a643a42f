package store

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formarray/pkg/paths"
)

func seed() map[string]any {
	return map[string]any{
		"blocks": []any{"a", "b", "c", "d"},
		"title":  "page",
	}
}

func TestStore_AddItemAppends(t *testing.T) {
	s := New(seed())
	if err := s.Apply(AddItem("blocks", map[string]any{"_type": "hero"})); err != nil {
		t.Fatalf("apply: %v", err)
	}
	got, _ := s.Get("blocks")
	want := []any{"a", "b", "c", "d", map[string]any{"_type": "hero"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("blocks mismatch (-want +got):\n%s", diff)
	}
}

func TestStore_AddItemCreatesMissingArray(t *testing.T) {
	s := New(map[string]any{})
	if err := s.Apply(AddItem("tags", "x")); err != nil {
		t.Fatalf("apply: %v", err)
	}
	got, _ := s.Get("tags")
	if diff := cmp.Diff([]any{"x"}, got); diff != "" {
		t.Fatalf("tags mismatch (-want +got):\n%s", diff)
	}
}

func TestStore_CreatesMissingParents(t *testing.T) {
	s := New(map[string]any{})
	if err := s.Apply(AddItem("page.blocks", map[string]any{"_type": "quote"})); err != nil {
		t.Fatalf("apply add: %v", err)
	}
	want := map[string]any{"page": map[string]any{"blocks": []any{map[string]any{"_type": "quote"}}}}
	if diff := cmp.Diff(want, s.Data()); diff != "" {
		t.Fatalf("add mismatch (-want +got):\n%s", diff)
	}

	s = New(map[string]any{"page": nil})
	if err := s.Apply(Update("page.section.blocks", func(any) any { return []any{"a"} })); err != nil {
		t.Fatalf("apply update: %v", err)
	}
	want = map[string]any{"page": map[string]any{"section": map[string]any{"blocks": []any{"a"}}}}
	if diff := cmp.Diff(want, s.Data()); diff != "" {
		t.Fatalf("update mismatch (-want +got):\n%s", diff)
	}

	s = New(nil)
	if err := s.Apply(AddItem("page.blocks", "x")); err != nil {
		t.Fatalf("apply add on nil: %v", err)
	}
	got, _ := s.Get("page.blocks")
	if diff := cmp.Diff([]any{"x"}, got); diff != "" {
		t.Fatalf("nil root mismatch (-want +got):\n%s", diff)
	}

	s = New(map[string]any{"page": "text"})
	if err := s.Apply(AddItem("page.blocks", "x")); err == nil {
		t.Fatalf("expected error when a parent is a scalar")
	}
}

func TestStore_RemoveItems(t *testing.T) {
	s := New(seed())
	if err := s.Apply(RemoveItems("blocks", []int{3, 1})); err != nil {
		t.Fatalf("apply: %v", err)
	}
	got, _ := s.Get("blocks")
	if diff := cmp.Diff([]any{"a", "c"}, got); diff != "" {
		t.Fatalf("blocks mismatch (-want +got):\n%s", diff)
	}
	if err := s.Apply(RemoveItems("blocks", []int{5})); err == nil {
		t.Fatalf("expected out of range error")
	}
	if err := s.Apply(RemoveItems("title", []int{0})); !errors.Is(err, ErrNotArray) {
		t.Fatalf("expected ErrNotArray, got %v", err)
	}
}

func TestStore_UpdateTransform(t *testing.T) {
	s := New(seed())
	reverse := func(current any) any {
		list := current.([]any)
		out := make([]any, len(list))
		for i, v := range list {
			out[len(list)-1-i] = v
		}
		return out
	}
	if err := s.Apply(Update("blocks", reverse)); err != nil {
		t.Fatalf("apply: %v", err)
	}
	got, _ := s.Get("blocks")
	if diff := cmp.Diff([]any{"d", "c", "b", "a"}, got); diff != "" {
		t.Fatalf("blocks mismatch (-want +got):\n%s", diff)
	}

	if err := s.Apply(Update("blocks", func(any) any { return nil })); err != nil {
		t.Fatalf("apply clear: %v", err)
	}
	if got, ok := s.Get("blocks"); ok {
		t.Fatalf("expected cleared value to be unset, got %v", got)
	}
	if err := s.Apply(Update("blocks", nil)); !errors.Is(err, ErrNoTransform) {
		t.Fatalf("expected ErrNoTransform, got %v", err)
	}
}

func TestStore_RootArray(t *testing.T) {
	s := New([]any{1.0, 2.0})
	s.Dispatch(AddItem(paths.Root, 3.0))
	s.Dispatch(RemoveItems(paths.Root, []int{0}))
	if diff := cmp.Diff([]any{2.0, 3.0}, s.Data()); diff != "" {
		t.Fatalf("root mismatch (-want +got):\n%s", diff)
	}
}

func TestStore_SubscribeNotifiesSnapshots(t *testing.T) {
	s := New(seed())
	var (
		mu    sync.Mutex
		calls []any
	)
	unsubscribe := s.Subscribe(func(data any) {
		mu.Lock()
		defer mu.Unlock()
		calls = append(calls, data)
	})
	s.Dispatch(AddItem("blocks", "e"))
	s.Dispatch(RemoveItems("missing", []int{0}))
	unsubscribe()
	s.Dispatch(AddItem("blocks", "f"))

	if len(calls) != 1 {
		t.Fatalf("expected exactly one notification, got %d", len(calls))
	}
	blocks, _ := paths.Get(calls[0], "blocks")
	if len(blocks.([]any)) != 5 {
		t.Fatalf("expected snapshot with five blocks, got %v", blocks)
	}
}

func TestStore_DataIsIsolated(t *testing.T) {
	data := seed()
	s := New(data)
	data["blocks"].([]any)[0] = "mutated"
	got, _ := s.Get("blocks.0")
	if got != "a" {
		t.Fatalf("expected store to copy its seed, got %v", got)
	}
}
