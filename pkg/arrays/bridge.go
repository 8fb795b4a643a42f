package arrays

import (
	"io"
	"log/slog"

	"github.com/goliatone/go-formarray/pkg/paths"
	"github.com/goliatone/go-formarray/pkg/store"
)

// Bridge turns add/remove/move intents into store actions for one array.
// Each intent dispatches at most one action.
type Bridge struct {
	dispatcher store.Dispatcher
	path       paths.Path
	logger     *slog.Logger
}

// NewBridge binds a dispatcher to the array at path.
func NewBridge(dispatcher store.Dispatcher, path paths.Path, logger *slog.Logger) *Bridge {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Bridge{dispatcher: dispatcher, path: path, logger: logger}
}

// Path returns the array path.
func (b *Bridge) Path() paths.Path {
	return b.path
}

// AddItem appends value.
func (b *Bridge) AddItem(value any) {
	if b.dispatcher == nil {
		return
	}
	b.logger.Debug("array add", "path", b.path.String())
	b.dispatcher.Dispatch(store.AddItem(b.path, value))
}

// RemoveItem removes the element at index.
func (b *Bridge) RemoveItem(index int) {
	if b.dispatcher == nil || index < 0 {
		return
	}
	b.logger.Debug("array remove", "path", b.path.String(), "index", index)
	b.dispatcher.Dispatch(store.RemoveItems(b.path, []int{index}))
}

// MoveItem relocates the element at from to position to of the shortened
// sequence. Equal or negative indices are ignored.
func (b *Bridge) MoveItem(from, to int) {
	if b.dispatcher == nil || from == to || from < 0 || to < 0 {
		return
	}
	b.logger.Debug("array move", "path", b.path.String(), "from", from, "to", to)
	b.dispatcher.Dispatch(store.Update(b.path, MoveTransform(from, to)))
}
