package dashboard

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/riftwatch/riftwatch/internal/schedule"
)

// CursorMarker is the prefix shown on the league row under the cursor.
const CursorMarker = "* "

// leaguesState manages the league list, cursor, and loading/error states
// for the left pane.
type leaguesState struct {
	leagues []schedule.League
	cursor  int
	top     int // first rendered row, follows the cursor
	loading bool
	failed  bool
}

// newLeaguesState returns a leaguesState in the loading state.
func newLeaguesState() leaguesState {
	return leaguesState{loading: true}
}

// applyLeagues applies a fetched league list (or a fetch failure),
// clearing the loading indicator and resetting the cursor.
func (ls leaguesState) applyLeagues(leagues []schedule.League, ok bool) leaguesState {
	ls.loading = false
	if !ok {
		ls.failed = true
		ls.leagues = nil
		return ls
	}
	ls.failed = false
	ls.leagues = append([]schedule.League(nil), leagues...)
	ls.cursor = 0
	ls.top = 0
	return ls
}

// CursorUp moves the cursor one row up, saturating at the top.
func (ls leaguesState) CursorUp() leaguesState {
	if ls.cursor > 0 {
		ls.cursor--
	}
	return ls
}

// CursorDown moves the cursor one row down, saturating at the bottom.
func (ls leaguesState) CursorDown() leaguesState {
	if ls.cursor < len(ls.leagues)-1 {
		ls.cursor++
	}
	return ls
}

// Toggle flips the selected flag of the league under the cursor and
// emits a ToggleLeagueMsg for the model to apply to the event index.
func (ls leaguesState) Toggle() (leaguesState, tea.Cmd) {
	if len(ls.leagues) == 0 || ls.cursor >= len(ls.leagues) {
		return ls, nil
	}
	ls.leagues[ls.cursor].Selected = !ls.leagues[ls.cursor].Selected
	l := ls.leagues[ls.cursor]
	return ls, func() tea.Msg {
		return ToggleLeagueMsg{ID: l.ID, Selected: l.Selected}
	}
}

// SelectByName marks the named league selected and returns its ID.
// Used to apply the configured default leagues after the list loads.
func (ls *leaguesState) SelectByName(name string) (string, bool) {
	for i := range ls.leagues {
		if ls.leagues[i].Name == name {
			ls.leagues[i].Selected = true
			return ls.leagues[i].ID, true
		}
	}
	return "", false
}

// SelectedIDs returns the IDs of all selected leagues in list order.
func (ls leaguesState) SelectedIDs() []string {
	var ids []string
	for _, l := range ls.leagues {
		if l.Selected {
			ids = append(ids, l.ID)
		}
	}
	return ids
}

// Longest returns the width of the longest league name, for pane sizing.
func (ls leaguesState) Longest() int {
	longest := 0
	for _, l := range ls.leagues {
		if n := len([]rune(l.Name)); n > longest {
			longest = n
		}
	}
	return longest
}

// View renders the league pane content for the given dimensions.
// spinnerView is the current spinner frame (empty when inactive).
func (ls leaguesState) View(width, height int, focused bool, spinnerView string) string {
	title := highlightText.Render(centerLine("Leagues", width))
	rule := mutedText.Render(ruleLine(width))

	if ls.loading {
		return title + "\n" + rule + "\n" + fmt.Sprintf("%s Loading...", spinnerView)
	}
	if ls.failed {
		return title + "\n" + rule + "\nNo leagues.\nPress r to retry"
	}

	rows := height - 2
	if rows < 1 {
		rows = 1
	}

	// Keep the cursor inside the rendered slice. The model persists this
	// via clampView after cursor moves; recomputing here keeps View safe
	// against stale scroll state on resize.
	top := ls.top
	if ls.cursor < top {
		top = ls.cursor
	}
	if ls.cursor >= top+rows {
		top = ls.cursor - rows + 1
	}

	out := title + "\n" + rule
	for i := top; i < len(ls.leagues) && i < top+rows; i++ {
		l := ls.leagues[i]
		marker := "  "
		if i == ls.cursor && focused {
			marker = CursorMarker
		}
		line := padRight(marker+l.Name, width)
		if l.Selected {
			line = highlightText.Render(line)
		}
		out += "\n" + line
	}
	return out
}

// clampView stores the scroll position implied by the last View call.
// Called by the model after cursor moves so View stays pure.
func (ls leaguesState) clampView(rows int) leaguesState {
	if rows < 1 {
		rows = 1
	}
	if ls.cursor < ls.top {
		ls.top = ls.cursor
	}
	if ls.cursor >= ls.top+rows {
		ls.top = ls.cursor - rows + 1
	}
	return ls
}
