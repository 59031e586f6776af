// Package schedule holds the esports schedule domain model: leagues,
// match events, the per-league event index, and the windowed viewport
// logic used to render the merged schedule in a fixed terminal region.
package schedule

import "time"

// League is a competitive league as shown in the league pane.
// Selected marks leagues whose schedule is merged into the visible view.
type League struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Region   string `json:"region"`
	Selected bool   `json:"selected"`
}

// MatchKind is the closed set of match states reported by the API.
// Unknown raw values are preserved on the Event rather than collapsed.
type MatchKind string

const (
	MatchUnstarted  MatchKind = "unstarted"
	MatchInProgress MatchKind = "inProgress"
	MatchCompleted  MatchKind = "completed"
	MatchUnknown    MatchKind = "unknown"
)

// MatchState is a match state kind plus the raw API value, kept so that
// states the API grows later still display as something.
type MatchState struct {
	Kind MatchKind `json:"kind"`
	Raw  string    `json:"raw,omitempty"`
}

// MatchStateOf maps a raw API state string to a MatchState.
func MatchStateOf(raw string) MatchState {
	switch raw {
	case "unstarted":
		return MatchState{Kind: MatchUnstarted}
	case "inProgress":
		return MatchState{Kind: MatchInProgress}
	case "completed":
		return MatchState{Kind: MatchCompleted}
	default:
		return MatchState{Kind: MatchUnknown, Raw: raw}
	}
}

// Label returns the human-readable state shown in the schedule pane.
func (s MatchState) Label() string {
	switch s.Kind {
	case MatchUnstarted:
		return "Unstarted"
	case MatchInProgress:
		return "In progress"
	case MatchCompleted:
		return "Completed"
	default:
		return s.Raw
	}
}

// StratKind is the closed set of match strategies.
type StratKind string

const (
	StratBestOf  StratKind = "bestOf"
	StratPlayAll StratKind = "playAll"
	StratUnknown StratKind = "unknown"
)

// Strategy describes how a match is decided, e.g. best of 5.
type Strategy struct {
	Kind  StratKind `json:"kind"`
	Raw   string    `json:"raw,omitempty"`
	Count uint16    `json:"count"`
}

// StrategyOf maps a raw API strategy type and count to a Strategy.
func StrategyOf(raw string, count uint16) Strategy {
	switch raw {
	case "bestOf":
		return Strategy{Kind: StratBestOf, Count: count}
	case "playAll":
		return Strategy{Kind: StratPlayAll, Count: count}
	default:
		return Strategy{Kind: StratUnknown, Raw: raw, Count: count}
	}
}

// Label returns the strategy text shown under an event row.
func (s Strategy) Label() string {
	switch s.Kind {
	case StratBestOf:
		return "Best of"
	case StratPlayAll:
		return "Play all"
	default:
		return s.Raw
	}
}

// Team is one side of a match.
type Team struct {
	Name  string `json:"name"`
	Short string `json:"short"`
}

// MatchResult holds per-team game wins, present only once both teams
// report a result.
type MatchResult struct {
	GameWins [2]uint16 `json:"game_wins"`
}

// Event is a single scheduled match.
type Event struct {
	StartTime  time.Time    `json:"start_time"`
	LeagueName string       `json:"league_name"`
	BlockName  string       `json:"block_name"`
	Strategy   Strategy     `json:"strategy"`
	State      MatchState   `json:"state"`
	Result     *MatchResult `json:"result,omitempty"`
	Teams      [2]Team      `json:"teams"`
}
