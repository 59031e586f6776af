package schedule

import "sort"

// Index accumulates fetched schedules keyed by league ID and tracks
// which leagues are active (merged into the visible schedule).
// It is not safe for concurrent use; confine access to the Bubble Tea
// update loop.
type Index struct {
	active []string
	events map[string][]Event
}

// NewIndex creates an empty Index.
func NewIndex() *Index {
	return &Index{events: make(map[string][]Event)}
}

// AddEvents replaces the stored collection for leagueID wholesale.
// Events for inactive leagues are retained but excluded from Visible.
func (ix *Index) AddEvents(leagueID string, events []Event) {
	ix.events[leagueID] = append([]Event(nil), events...)
}

// SetActive adds leagueID to the active set. Already-active IDs are a no-op,
// so the active list stays duplicate-free in insertion order.
func (ix *Index) SetActive(leagueID string) {
	for _, id := range ix.active {
		if id == leagueID {
			return
		}
	}
	ix.active = append(ix.active, leagueID)
}

// UnsetActive removes leagueID from the active set if present.
func (ix *Index) UnsetActive(leagueID string) {
	for i, id := range ix.active {
		if id == leagueID {
			ix.active = append(ix.active[:i], ix.active[i+1:]...)
			return
		}
	}
}

// IsActive reports whether leagueID is in the active set.
func (ix *Index) IsActive(leagueID string) bool {
	for _, id := range ix.active {
		if id == leagueID {
			return true
		}
	}
	return false
}

// Visible returns the union of event collections for all active leagues,
// sorted ascending by start time. This is the only projection the
// viewport consumes.
func (ix *Index) Visible() []Event {
	var merged []Event
	for _, id := range ix.active {
		merged = append(merged, ix.events[id]...)
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].StartTime.Before(merged[j].StartTime)
	})
	return merged
}

// Counts returns the number of visible events and the total number of
// events stored across all leagues, for the "(n/m)" pane badge.
func (ix *Index) Counts() (visible, total int) {
	for id, evs := range ix.events {
		total += len(evs)
		if ix.IsActive(id) {
			visible += len(evs)
		}
	}
	return visible, total
}
