// Package arrays implements the editing core for array-valued form fields:
// item schema and variant resolution, the add/remove/move bridge into a
// store, item labels, pointer-driven drag reordering and the add-item and
// raw-edit flows.
//
// A Control is driven from a single goroutine: Update feeds it the latest
// schema and data, View projects what to draw, and user events call
// RequestAdd, EditRaw, RemoveItem or the DragController. Mutations are
// dispatched to a store.Dispatcher and observed again through the next
// Update.
package arrays
