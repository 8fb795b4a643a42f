package arrays

import (
	"errors"
	"testing"
)

type recordedMove struct{ from, to int }

type moveRecorder struct {
	moves []recordedMove
}

func (m *moveRecorder) MoveItem(from, to int) {
	m.moves = append(m.moves, recordedMove{from, to})
}

// three items stacked 40px apart with midpoints at 20, 60 and 100.
func threeBoxes() []Box {
	return []Box{
		{Index: 0, Top: 0, Height: 40},
		{Index: 1, Top: 40, Height: 40},
		{Index: 2, Top: 80, Height: 40},
	}
}

func TestDrag_InsertBeforeNearestBelow(t *testing.T) {
	rec := &moveRecorder{}
	d := NewDragController(rec, nil)
	if err := d.Start(0); err != nil {
		t.Fatalf("start: %v", err)
	}

	d.Over(80, threeBoxes())
	session, ok := d.Session()
	if !ok || session.Target == nil || *session.Target != 2 {
		t.Fatalf("expected target 2, got %+v", session)
	}
	if d.Indicator(2) != IndicatorBefore || d.Indicator(1) != IndicatorNone {
		t.Fatalf("expected insert-before indicator on item 2 only")
	}

	if !d.End(3) {
		t.Fatalf("expected a move to be committed")
	}
	if len(rec.moves) != 1 || rec.moves[0] != (recordedMove{0, 2}) {
		t.Fatalf("expected moveItem(0, 2), got %v", rec.moves)
	}
	if d.Dragging() || d.Indicator(2) != IndicatorNone {
		t.Fatalf("expected idle controller with cleared indicators")
	}
	if got := Move([]any{"o0", "o1", "o2"}, rec.moves[0].from, rec.moves[0].to); got[0] != "o1" || got[1] != "o2" || got[2] != "o0" {
		t.Fatalf("unexpected resulting order %v", got)
	}
}

func TestDrag_BelowAllItemsMovesToEnd(t *testing.T) {
	rec := &moveRecorder{}
	d := NewDragController(rec, nil)
	_ = d.Start(0)
	d.Over(500, threeBoxes())

	session, _ := d.Session()
	if session.Target != nil {
		t.Fatalf("expected end-of-list target, got %d", *session.Target)
	}
	if d.Indicator(2) != IndicatorAfter {
		t.Fatalf("expected insert-after indicator on the last item")
	}
	d.End(3)
	if len(rec.moves) != 1 || rec.moves[0] != (recordedMove{0, 2}) {
		t.Fatalf("expected moveItem(0, length-1), got %v", rec.moves)
	}
}

func TestDrag_DropOnOwnPositionDiscards(t *testing.T) {
	rec := &moveRecorder{}
	d := NewDragController(rec, nil)

	_ = d.Start(2)
	d.Over(500, threeBoxes())
	if d.Indicator(1) != IndicatorAfter {
		t.Fatalf("expected last non-source item to carry the after indicator")
	}
	if d.End(3) {
		t.Fatalf("expected no move when the end resolves to the source")
	}

	_ = d.Start(1)
	d.Over(110, threeBoxes())
	session, _ := d.Session()
	if session.Target != nil {
		t.Fatalf("expected end-of-list when pointer is below every other midpoint")
	}
	d.End(3)
	if len(rec.moves) != 1 || rec.moves[0] != (recordedMove{1, 2}) {
		t.Fatalf("expected moveItem(1, 2), got %v", rec.moves)
	}
}

func TestDrag_SkipsSourceAndBreaksTiesByOrder(t *testing.T) {
	d := NewDragController(nil, nil)
	_ = d.Start(1)
	boxes := []Box{
		{Index: 1, Top: 0, Height: 10},
		{Index: 3, Top: 40, Height: 20},
		{Index: 2, Top: 45, Height: 10},
		{Index: 0, Top: 100, Height: 10},
	}
	d.Over(30, boxes)
	session, _ := d.Session()
	if session.Target == nil || *session.Target != 3 {
		t.Fatalf("expected first of the tied boxes (3), got %+v", session.Target)
	}
}

func TestDrag_StateMachine(t *testing.T) {
	d := NewDragController(nil, nil)
	d.Over(10, threeBoxes())
	if d.Dragging() {
		t.Fatalf("expected Over to be ignored while idle")
	}
	if d.End(3) {
		t.Fatalf("expected End while idle to do nothing")
	}

	if err := d.Start(0); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := d.Start(1); !errors.Is(err, ErrDragInProgress) {
		t.Fatalf("expected ErrDragInProgress, got %v", err)
	}

	d.Prune(3)
	if !d.Dragging() {
		t.Fatalf("expected session to survive while its source exists")
	}
	d.Prune(0)
	if d.Dragging() {
		t.Fatalf("expected session to be destroyed when its source disappears")
	}

	d.Prune(4)
	_ = d.Start(2)
	d.Prune(4)
	if !d.Dragging() {
		t.Fatalf("expected session to survive an unchanged length")
	}
	d.Prune(3)
	if d.Dragging() {
		t.Fatalf("expected session to be cancelled when an earlier item is removed")
	}
	_ = d.Start(0)
	d.Prune(4)
	if d.Dragging() {
		t.Fatalf("expected session to be cancelled when an item is inserted")
	}

	_ = d.Start(0)
	d.Over(0, []Box{{Index: 0, Top: 0, Height: 10}})
	if session, _ := d.Session(); session.Target != nil {
		t.Fatalf("expected no target for a single item")
	}
	d.Cancel()
	if d.Dragging() {
		t.Fatalf("expected Cancel to end the session")
	}
}
