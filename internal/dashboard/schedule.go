package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/riftwatch/riftwatch/internal/schedule"
)

// Column widths of an event's top row, after the original layout:
// marker, start time, team, " vs ", team, state.
const (
	markerWidth = 3
	timeWidth   = 5
	vsWidth     = 4
	stateWidth  = 11
)

// fullNameWidth is the team column width above which full team names are
// shown instead of short codes.
const fullNameWidth = 30

// scheduleState owns the schedule pane: the visible event snapshot, the
// computed window, the viewport state, and the spoiler toggles. The
// window is computed in Update (syncViewport) so that View stays pure.
type scheduleState struct {
	events       []schedule.Event
	first, last  int
	view         schedule.ViewportState
	spoilResults bool
	spoilMatches bool
}

// syncViewport recomputes the window against the current visible
// sequence, reconciling the selection and re-anchoring the offset at the
// window start. maxHeight is the pane's row budget for event content.
func (ss scheduleState) syncViewport(events []schedule.Event, maxHeight int) scheduleState {
	ss.events = events
	ss.view.Reconcile(len(events))
	ss.first, ss.last = schedule.Window(events, ss.view.Selected, ss.view.Offset, maxHeight)
	ss.view.Offset = ss.first
	return ss
}

// View renders the schedule pane: title, rule with the visible/total
// badge, then the windowed event rows grouped under date headers.
func (ss scheduleState) View(width, height int, focused bool, visible, total int) string {
	title := highlightText.Render(centerLine("Schedule", width))
	badge := fmt.Sprintf("(%d/%d)", visible, total)
	rule := mutedText.Render(ruleLine(width-len(badge))) + highlightText.Render(badge)

	if len(ss.events) == 0 {
		return title + "\n" + rule + "\nNo events. Select a league with space."
	}

	maxHeight := height - 2
	var lines []string
	lastDay := ""

	for i := ss.first; i < len(ss.events); i++ {
		e := ss.events[i]
		day := e.StartTime.Format("2006-01-02")

		if day != lastDay {
			// Later groups are separated by a rule line; the very first
			// rendered group gets only the date line.
			if lastDay != "" {
				if len(lines)+1 > maxHeight {
					break
				}
				lines = append(lines, mutedText.Render(ruleLine(width)))
			}
			if len(lines)+1 > maxHeight {
				break
			}
			lines = append(lines, ss.dateHeader(e, width))
			lastDay = day
		}

		if len(lines)+1 > maxHeight {
			break
		}
		lines = append(lines, ss.eventTopRow(e, i, width, focused))

		if len(lines)+1 > maxHeight {
			break
		}
		lines = append(lines, ss.eventBottomRow(e, i, width, focused))
	}

	return title + "\n" + rule + "\n" + strings.Join(lines, "\n")
}

// dateHeader renders the right-aligned date line for an event's group,
// highlighted when the selection sits inside the group.
func (ss scheduleState) dateHeader(e schedule.Event, width int) string {
	style := highlightText
	if sel := ss.view.Selected; sel >= 0 && sel < len(ss.events) {
		sy, sm, sd := ss.events[sel].StartTime.Date()
		ey, em, ed := e.StartTime.Date()
		if sy == ey && sm == em && sd == ed {
			style = selectedText
		}
	}
	return style.Render(padLeft(e.StartTime.Format("Monday - 02 January "), width))
}

// eventTopRow renders an event's first row: marker, time, teams, state.
func (ss scheduleState) eventTopRow(e schedule.Event, i, width int, focused bool) string {
	selected := ss.view.Selected == i

	marker := " - "
	if selected {
		marker = " * "
	}

	teamWidth := (width - markerWidth - timeWidth - vsWidth - stateWidth) / 2
	if teamWidth < 4 {
		teamWidth = 4
	}

	team0, team1 := e.Teams[0].Short, e.Teams[1].Short
	if teamWidth > fullNameWidth {
		team0, team1 = e.Teams[0].Name, e.Teams[1].Name
	}

	var style0, style1 lipgloss.Style
	if ss.spoilResults && e.State.Kind != schedule.MatchUnstarted && e.Result != nil {
		if e.State.Kind == schedule.MatchCompleted {
			if e.Result.GameWins[0] > e.Result.GameWins[1] {
				style0, style1 = winnerText, mutedText
			} else if e.Result.GameWins[1] > e.Result.GameWins[0] {
				style0, style1 = mutedText, winnerText
			}
		}
		team0 = fmt.Sprintf("%d - %s", e.Result.GameWins[0], team0)
		team1 = fmt.Sprintf("%s - %d", team1, e.Result.GameWins[1])
	}

	// Hide future matchups unless spoiling is on; TBD slots stay visible.
	if !ss.spoilMatches && e.State.Kind == schedule.MatchUnstarted {
		if e.Teams[0].Name != "TBD" {
			team0 = "???"
		}
		if e.Teams[1].Name != "TBD" {
			team1 = "???"
		}
	}

	if selected && focused {
		row := marker + padRight(e.StartTime.Format("15:04"), timeWidth) +
			padLeft(team0, teamWidth) + centerLine("vs", vsWidth) +
			padRight(team1, teamWidth) + padLeft(e.State.Label(), stateWidth)
		return selectedText.Render(padRight(row, width))
	}

	return marker +
		boldText.Render(padRight(e.StartTime.Format("15:04"), timeWidth)) +
		style0.Render(padLeft(team0, teamWidth)) +
		centerLine("vs", vsWidth) +
		style1.Render(padRight(team1, teamWidth)) +
		padLeft(e.State.Label(), stateWidth)
}

// eventBottomRow renders an event's second row: strategy on the left,
// block and league on the right.
func (ss scheduleState) eventBottomRow(e schedule.Event, i, width int, focused bool) string {
	left := fmt.Sprintf("   %s %d", e.Strategy.Label(), e.Strategy.Count)
	right := fmt.Sprintf("%s - %s", e.BlockName, e.LeagueName)
	row := left + padLeft(right, width-len([]rune(left)))

	if ss.view.Selected == i && focused {
		return selectedText.Render(row)
	}
	return mutedText.Render(row)
}
