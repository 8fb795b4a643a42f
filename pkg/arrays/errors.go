package arrays

import "errors"

var (
	// ErrDragInProgress is returned when Start is called while a drag is active.
	ErrDragInProgress = errors.New("arrays: drag already in progress")
	// ErrNoSchema reports that the item schema could not be resolved, which
	// disables editing.
	ErrNoSchema = errors.New("arrays: item schema unavailable")
	// ErrNotArray is returned when raw-edited text does not decode to an array.
	ErrNotArray = errors.New("arrays: value is not an array")
	// ErrTooManyItems is returned when raw-edited text exceeds maxItems.
	ErrTooManyItems = errors.New("arrays: too many items")
)
