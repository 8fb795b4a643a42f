// Package store holds form data and applies mutation actions addressed by
// paths. Array actions compile to RFC 6902 JSON patches.
package store

import (
	"fmt"
	"sort"

	"github.com/goliatone/go-formarray/pkg/paths"
)

// ActionKind names a mutation.
type ActionKind string

const (
	ActionAddItem     ActionKind = "add-item"
	ActionRemoveItems ActionKind = "remove-items"
	ActionUpdate      ActionKind = "update"
)

// Transform maps the current value at a path to its replacement. It must
// not mutate its input.
type Transform func(current any) any

// Action is one mutation intent.
type Action struct {
	Kind      ActionKind
	Path      paths.Path
	Value     any
	Indices   []int
	Transform Transform
}

// AddItem appends value to the array at path.
func AddItem(path paths.Path, value any) Action {
	return Action{Kind: ActionAddItem, Path: path, Value: value}
}

// RemoveItems removes the elements at the given indices of the array at path.
func RemoveItems(path paths.Path, indices []int) Action {
	return Action{Kind: ActionRemoveItems, Path: path, Indices: append([]int(nil), indices...)}
}

// Update replaces the value at path with transform(current). A nil result
// unsets the value.
func Update(path paths.Path, transform Transform) Action {
	return Action{Kind: ActionUpdate, Path: path, Transform: transform}
}

// String renders a compact description used in logs.
func (a Action) String() string {
	switch a.Kind {
	case ActionRemoveItems:
		return fmt.Sprintf("%s %s %v", a.Kind, a.Path, a.Indices)
	default:
		return fmt.Sprintf("%s %s", a.Kind, a.Path)
	}
}

// Dispatcher accepts actions. Dispatch is fire-and-forget; the resulting
// state is observed through a separate channel such as Store.Subscribe.
type Dispatcher interface {
	Dispatch(action Action)
}

// DispatcherFunc adapts a function into a Dispatcher.
type DispatcherFunc func(action Action)

// Dispatch implements Dispatcher.
func (fn DispatcherFunc) Dispatch(action Action) {
	fn(action)
}

// patchOps compiles add and remove actions into JSON patch operations
// relative to prefix.
func (a Action) patchOps(prefix string) ([]map[string]any, error) {
	pointer := prefix + a.Path.Pointer()
	switch a.Kind {
	case ActionAddItem:
		return []map[string]any{{"op": "add", "path": pointer + "/-", "value": a.Value}}, nil
	case ActionRemoveItems:
		if len(a.Indices) == 0 {
			return nil, nil
		}
		indices := append([]int(nil), a.Indices...)
		sort.Sort(sort.Reverse(sort.IntSlice(indices)))
		ops := make([]map[string]any, 0, len(indices))
		last := -1
		for _, idx := range indices {
			if idx == last {
				continue
			}
			last = idx
			ops = append(ops, map[string]any{"op": "remove", "path": fmt.Sprintf("%s/%d", pointer, idx)})
		}
		return ops, nil
	default:
		return nil, fmt.Errorf("store: action %q does not compile to a patch", a.Kind)
	}
}
