package dialog

import (
	"errors"
	"fmt"
)

var (
	// ErrRejected marks an action whose callback refused to complete.
	ErrRejected = errors.New("dialog: action rejected")
	// ErrActionDisabled is returned when invoking a disabled action.
	ErrActionDisabled = errors.New("action disabled")
	// ErrUnknownAction is returned when the request has no such action.
	ErrUnknownAction = errors.New("unknown action")
)

// Reject wraps err so errors.Is(result, ErrRejected) holds. It is a no-op
// for errors that are already rejections.
func Reject(err error) error {
	if err == nil || errors.Is(err, ErrRejected) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrRejected, err)
}
