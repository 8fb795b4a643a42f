package store

import "errors"

var (
	// ErrNotArray is returned when an array action targets a non-array value.
	ErrNotArray = errors.New("store: value at path is not an array")
	// ErrNoTransform is returned for Update actions without a transform.
	ErrNoTransform = errors.New("store: update action has no transform")
)
