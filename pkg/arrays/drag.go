package arrays

import (
	"io"
	"log/slog"
)

// Box is the rendered vertical extent of one list item.
type Box struct {
	Index  int
	Top    float64
	Height float64
}

// Midpoint returns the vertical centre of the box.
func (b Box) Midpoint() float64 {
	return b.Top + b.Height/2
}

// Indicator marks where a dragged item would land.
type Indicator int

const (
	IndicatorNone Indicator = iota
	IndicatorBefore
	IndicatorAfter
)

func (i Indicator) String() string {
	switch i {
	case IndicatorBefore:
		return "before"
	case IndicatorAfter:
		return "after"
	default:
		return ""
	}
}

// DragSession is the transient state of one drag. A nil Target means
// "end of list".
type DragSession struct {
	SourceIndex int
	Target      *int
}

// Mover receives committed moves.
type Mover interface {
	MoveItem(from, to int)
}

// MoverFunc adapts a function into a Mover.
type MoverFunc func(from, to int)

// MoveItem implements Mover.
func (fn MoverFunc) MoveItem(from, to int) {
	fn(from, to)
}

// DragController tracks at most one drag session and commits the resulting
// move on End.
type DragController struct {
	mover      Mover
	logger     *slog.Logger
	session    *DragSession
	indicators map[int]Indicator
	// length is the last list length seen by Prune, -1 until known.
	length int
}

// NewDragController builds an idle controller.
func NewDragController(mover Mover, logger *slog.Logger) *DragController {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &DragController{mover: mover, logger: logger, length: -1}
}

// Start begins dragging the item at index.
func (d *DragController) Start(index int) error {
	if d.session != nil {
		return ErrDragInProgress
	}
	d.session = &DragSession{SourceIndex: index}
	d.indicators = nil
	return nil
}

// Over recomputes the candidate target for a pointer at pointerY. The target
// is the nearest item whose midpoint lies below the pointer, marked
// IndicatorBefore; with none, the target is the end of the list and the last
// item is marked IndicatorAfter. Ties keep the first box encountered. Over
// is ignored while idle.
func (d *DragController) Over(pointerY float64, boxes []Box) {
	if d.session == nil {
		return
	}
	var (
		found   bool
		best    Box
		closest float64
		last    Box
		hasLast bool
	)
	for _, box := range boxes {
		if box.Index == d.session.SourceIndex {
			continue
		}
		last, hasLast = box, true
		offset := pointerY - box.Midpoint()
		if offset >= 0 {
			continue
		}
		if !found || offset > closest {
			found, best, closest = true, box, offset
		}
	}

	d.indicators = make(map[int]Indicator, 1)
	if found {
		target := best.Index
		d.session.Target = &target
		d.indicators[best.Index] = IndicatorBefore
		return
	}
	d.session.Target = nil
	if hasLast {
		d.indicators[last.Index] = IndicatorAfter
	}
}

// End finishes the drag. The end-of-list target resolves to length-1; when it
// equals the source nothing is dispatched. It reports whether a move was
// committed. Indicators are cleared either way.
func (d *DragController) End(length int) bool {
	session := d.session
	d.session = nil
	d.indicators = nil
	if session == nil || length <= 0 {
		return false
	}
	resolved := length - 1
	if session.Target != nil {
		resolved = *session.Target
	}
	if resolved == session.SourceIndex {
		d.logger.Debug("drag discarded", "index", session.SourceIndex)
		return false
	}
	if d.mover != nil {
		d.mover.MoveItem(session.SourceIndex, resolved)
	}
	return true
}

// Cancel drops the session without moving anything.
func (d *DragController) Cancel() {
	d.session = nil
	d.indicators = nil
}

// Prune records the current list length and cancels the session when the
// length changed since the last call or the source index no longer exists.
// Indices are positional, so any insertion or removal mid-drag may shift
// the source.
func (d *DragController) Prune(length int) {
	previous := d.length
	d.length = length
	if d.session == nil {
		return
	}
	if d.session.SourceIndex >= length || (previous >= 0 && previous != length) {
		d.logger.Debug("drag source shifted", "index", d.session.SourceIndex, "length", length)
		d.Cancel()
	}
}

// Dragging reports whether a session is active.
func (d *DragController) Dragging() bool {
	return d.session != nil
}

// Session returns a copy of the active session.
func (d *DragController) Session() (DragSession, bool) {
	if d.session == nil {
		return DragSession{}, false
	}
	out := DragSession{SourceIndex: d.session.SourceIndex}
	if d.session.Target != nil {
		target := *d.session.Target
		out.Target = &target
	}
	return out, true
}

// Indicator returns the indicator currently shown on the item at index.
func (d *DragController) Indicator(index int) Indicator {
	return d.indicators[index]
}
