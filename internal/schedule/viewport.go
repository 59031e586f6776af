package schedule

import "time"

// Row heights of the schedule pane layout. Every event occupies
// EventHeight rows; the first event of each calendar day is preceded by a
// DateHeight header (rule line plus date line).
const (
	EventHeight = 2
	DateHeight  = 2
)

// NoSelection is the Selected value of a ViewportState with no pinned row.
const NoSelection = -1

// ViewportState is the scroll/selection state of the schedule pane.
// Offset is the index of the first rendered event and is rewritten by
// Window on every frame, so small selection moves keep the scroll
// position stable instead of jumping.
type ViewportState struct {
	Focused  bool
	Selected int
	Offset   int
}

// NewViewportState returns a state with nothing selected.
func NewViewportState() ViewportState {
	return ViewportState{Selected: NoSelection}
}

// Reconcile clamps the state against a visible sequence of length n.
// Must run after any mutation and before the next render: an
// out-of-range selection snaps to the last event, and an empty sequence
// clears the selection and resets the offset.
func (s *ViewportState) Reconcile(n int) {
	if n == 0 {
		s.Selected = NoSelection
		s.Offset = 0
		return
	}
	if s.Selected >= n {
		s.Selected = n - 1
	}
}

// ScrollUp moves the selection up by n, saturating at the first event.
// With no selection it selects the current offset row.
func (s *ViewportState) ScrollUp(n int) {
	if s.Selected == NoSelection {
		s.Selected = s.Offset
		return
	}
	s.Selected -= n
	if s.Selected < 0 {
		s.Selected = 0
	}
}

// ScrollDown moves the selection down by n. With no selection it selects
// the current offset row. The upper bound is applied by Reconcile, which
// callers run before the next render.
func (s *ViewportState) ScrollDown(n int) {
	if s.Selected == NoSelection {
		s.Selected = s.Offset
		return
	}
	s.Selected += n
}

// SelectToday selects the first event starting at or after now, or the
// first in-progress event, whichever comes first in the sorted sequence;
// with neither it selects the last event. The offset is re-anchored at
// the selection so the next Window call grows around it.
func (s *ViewportState) SelectToday(events []Event, now time.Time) {
	if len(events) == 0 {
		return
	}
	sel := len(events) - 1
	for i, e := range events {
		if !e.StartTime.Before(now) || e.State.Kind == MatchInProgress {
			sel = i
			break
		}
	}
	s.Selected = sel
	s.Offset = sel
}

// Window computes the [first, last) subrange of the sorted event sequence
// that fits in maxHeight rows while containing the selection. It is
// anchored at the previous offset rather than recomputed from index 0,
// bounding per-frame work to the window size. selected < 0 means no
// pinned row. Callers store first back as the next frame's offset.
func Window(events []Event, selected, offset, maxHeight int) (first, last int) {
	if len(events) == 0 {
		return 0, 0
	}
	// A budget below one event's worst-case cost (event plus header) would
	// admit nothing and let the shrink loops evict the selection. Clamp so
	// the window always holds at least one event; the renderer truncates
	// overflowing rows on its own.
	if maxHeight < EventHeight+DateHeight {
		maxHeight = EventHeight + DateHeight
	}
	if offset > len(events)-1 {
		offset = len(events) - 1
	}
	if offset < 0 {
		offset = 0
	}

	first, last = offset, offset
	height := 0

	// Forward-fill from the anchor until the next event no longer fits.
	// The anchor event always pays the date header, even mid-group: the
	// renderer draws a header for whatever group the window opens on.
	for last < len(events) {
		cost := extendForwardCost(events, first, last)
		if height+cost > maxHeight {
			break
		}
		height += cost
		last++
	}

	target := first
	if selected >= 0 {
		target = selected
	}

	// Selection at or past the window: grow forward row-by-row, shrinking
	// from the front whenever the budget overflows.
	for target >= last {
		height += extendForwardCost(events, first, last)
		last++
		for height > maxHeight {
			height -= retractFrontCost(events, first, last)
			first++
		}
	}

	// Selection before the window: the mirror image.
	for target < first {
		height += extendBackwardCost(events, first)
		first--
		for height > maxHeight {
			last--
			height -= retractBackCost(events, last)
		}
	}

	return first, last
}

// sameDay reports whether two events fall on the same calendar day in
// the event's own location.
func sameDay(a, b Event) bool {
	ay, am, ad := a.StartTime.Date()
	by, bm, bd := b.StartTime.Date()
	return ay == by && am == bm && ad == bd
}

// extendForwardCost is the row cost of including events[last] at the end
// of a window starting at first: EventHeight, plus DateHeight when the
// event opens a date group (or is the window anchor).
func extendForwardCost(events []Event, first, last int) int {
	if last == first || !sameDay(events[last-1], events[last]) {
		return EventHeight + DateHeight
	}
	return EventHeight
}

// extendBackwardCost is the row cost of including events[first-1] at the
// front of the window.
func extendBackwardCost(events []Event, first int) int {
	if !sameDay(events[first-1], events[first]) {
		return EventHeight + DateHeight
	}
	return EventHeight
}

// retractFrontCost is the row cost freed by dropping events[first]: its
// date header is freed only when no event of the same group remains in
// the window behind it.
func retractFrontCost(events []Event, first, last int) int {
	if first+1 > last || first+1 >= len(events) || !sameDay(events[first], events[first+1]) {
		return EventHeight + DateHeight
	}
	return EventHeight
}

// retractBackCost is the row cost freed by dropping events[last] from
// the end of the window.
func retractBackCost(events []Event, last int) int {
	if last == 0 || !sameDay(events[last-1], events[last]) {
		return EventHeight + DateHeight
	}
	return EventHeight
}
