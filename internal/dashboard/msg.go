// Package dashboard implements the two-pane schedule TUI: a league list
// on the left and the merged, date-grouped match schedule on the right.
package dashboard

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/riftwatch/riftwatch/internal/schedule"
)

// Focus represents which pane has keyboard focus.
type Focus int

const (
	PaneLeagues  Focus = iota // Left pane: league list.
	PaneSchedule              // Right pane: merged schedule.
)

// --- Consumer-side interfaces ---

// Provider supplies league and schedule data. Implemented by
// resources.Manager; ok=false means no data is available right now.
type Provider interface {
	Leagues(ctx context.Context) ([]schedule.League, bool)
	Schedule(ctx context.Context, leagueID string) ([]schedule.Event, bool)
}

// --- tea.Msg types ---

// LeaguesLoadedMsg carries the result of a Provider.Leagues call.
type LeaguesLoadedMsg struct {
	Leagues []schedule.League
	OK      bool
}

// ScheduleLoadedMsg carries the result of a Provider.Schedule call for
// one league. Results land here even when the league was deselected
// while the fetch was in flight; the index filters them out at view time.
type ScheduleLoadedMsg struct {
	LeagueID string
	Events   []schedule.Event
	OK       bool
}

// ToggleLeagueMsg signals that the user flipped a league's selection.
type ToggleLeagueMsg struct {
	ID       string
	Selected bool
}

// --- Commands ---

// loadLeagues fetches the league list in a background goroutine. One
// message per completed fetch; Bubble Tea applies them serially.
func loadLeagues(p Provider) tea.Cmd {
	return func() tea.Msg {
		leagues, ok := p.Leagues(context.Background())
		return LeaguesLoadedMsg{Leagues: leagues, OK: ok}
	}
}

// loadSchedule fetches one league's schedule in a background goroutine.
// There is no cancellation: once dispatched, the fetch runs to
// completion and its result is still cached and indexed.
func loadSchedule(p Provider, leagueID string) tea.Cmd {
	return func() tea.Msg {
		events, ok := p.Schedule(context.Background(), leagueID)
		return ScheduleLoadedMsg{LeagueID: leagueID, Events: events, OK: ok}
	}
}
