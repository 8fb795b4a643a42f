package arrays

import (
	"github.com/goliatone/go-formarray/pkg/store"
)

// Move returns a new slice where the element at from has been removed and
// reinserted at position to of the shortened sequence. Out of range indices
// return an unmodified copy.
func Move(list []any, from, to int) []any {
	out := append([]any(nil), list...)
	if from < 0 || from >= len(list) || to < 0 || to >= len(list) || from == to {
		return out
	}
	moved := out[from]
	out = append(out[:from], out[from+1:]...)
	out = append(out[:to], append([]any{moved}, out[to:]...)...)
	return out
}

// MoveTransform wraps Move as a store transform. Non-array values pass
// through unchanged.
func MoveTransform(from, to int) store.Transform {
	return func(current any) any {
		list, ok := current.([]any)
		if !ok {
			return current
		}
		return Move(list, from, to)
	}
}
