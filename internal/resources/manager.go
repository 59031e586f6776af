// Package resources orchestrates cached versus remote schedule data:
// read the cache, judge freshness, fetch on a miss or stale verdict, and
// mirror successful fetches back to disk.
package resources

import (
	"context"
	"log/slog"
	"time"

	"github.com/riftwatch/riftwatch/internal/cache"
	"github.com/riftwatch/riftwatch/internal/lolesports"
	"github.com/riftwatch/riftwatch/internal/schedule"
)

const leaguesKey = "leagues"

// Fetcher is the remote side of the manager, implemented by
// lolesports.Client in production and by fakes in tests.
type Fetcher interface {
	FetchLeagues(ctx context.Context) ([]lolesports.League, error)
	FetchSchedule(ctx context.Context, leagueID, pageToken string) (*lolesports.Schedule, error)
}

// Manager decides, per request, whether cached data is served or the
// remote API is consulted. Every failure path degrades to ok=false;
// callers cannot distinguish "never cached" from "network down", which
// is deliberate — the underlying cause is logged here instead.
type Manager struct {
	store   *cache.Store
	fetcher Fetcher
	log     *slog.Logger
	now     func() time.Time
}

// NewManager creates a Manager over the given store and fetcher.
func NewManager(store *cache.Store, fetcher Fetcher, log *slog.Logger) *Manager {
	return &Manager{store: store, fetcher: fetcher, log: log, now: time.Now}
}

// Leagues returns the league list, from cache when fresh, otherwise from
// the remote API (persisting the result). ok is false when neither
// source can provide data; there is no fallback to a stale cache.
func (m *Manager) Leagues(ctx context.Context) (leagues []schedule.League, ok bool) {
	var cached []schedule.League
	mtime, err := m.store.Read(leaguesKey, &cached)
	if err == nil {
		age := m.now().Sub(mtime)
		if v := cache.LeaguesVerdict(age); !v.Stale() {
			m.log.Info("serving cached leagues", "count", len(cached), "age", age)
			return cached, true
		}
		m.log.Info("cached leagues stale, refetching", "age", age)
	} else {
		m.log.Info("no usable cached leagues", "error", err)
	}

	remote, err := m.fetcher.FetchLeagues(ctx)
	if err != nil {
		m.log.Error("fetching leagues failed", "error", err)
		return nil, false
	}

	leagues = make([]schedule.League, 0, len(remote))
	for _, rl := range remote {
		leagues = append(leagues, schedule.League{
			ID:     rl.ID,
			Name:   rl.Name,
			Region: rl.Region,
		})
	}

	if err := m.store.Write(leaguesKey, leagues); err != nil {
		m.log.Error("caching leagues failed", "error", err)
	} else {
		m.log.Info("fetched and cached leagues", "count", len(leagues))
	}
	return leagues, true
}

// Schedule returns a league's schedule under the schedule freshness
// policy. Only the first remote page is fetched; further pages reported
// by the API are ignored.
func (m *Manager) Schedule(ctx context.Context, leagueID string) (events []schedule.Event, ok bool) {
	now := m.now()

	var cached []schedule.Event
	mtime, err := m.store.Read(leagueID, &cached)
	if err == nil {
		age := now.Sub(mtime)
		v := cache.ScheduleVerdict(age, cached, now)
		if !v.Stale() {
			m.log.Info("serving cached schedule", "league", leagueID, "count", len(cached), "age", age)
			return cached, true
		}
		m.log.Info("cached schedule stale, refetching", "league", leagueID, "verdict", v.String())
	} else {
		m.log.Info("no usable cached schedule", "league", leagueID, "error", err)
	}

	remote, err := m.fetcher.FetchSchedule(ctx, leagueID, "")
	if err != nil {
		m.log.Error("fetching schedule failed", "league", leagueID, "error", err)
		return nil, false
	}
	m.log.Info("fetched schedule",
		"league", leagueID,
		"events", len(remote.Events),
		"older", remote.Pages.Older != nil,
		"newer", remote.Pages.Newer != nil)

	events = make([]schedule.Event, 0, len(remote.Events))
	for _, re := range remote.Events {
		events = append(events, mapEvent(re))
	}

	if err := m.store.Write(leagueID, events); err != nil {
		m.log.Error("caching schedule failed", "league", leagueID, "error", err)
	}
	return events, true
}

// mapEvent converts a wire event into the domain model.
func mapEvent(re lolesports.Event) schedule.Event {
	start, err := time.Parse(time.RFC3339, re.StartTime)
	if err != nil {
		// The API has always sent RFC3339; a malformed time degrades to
		// the zero time rather than dropping the event.
		start = time.Time{}
	}

	ev := schedule.Event{
		StartTime:  start.Local(),
		LeagueName: re.League.Name,
		BlockName:  re.BlockName,
		Strategy:   schedule.StrategyOf(re.Match.Strategy.Type, uint16(re.Match.Strategy.Count)),
		State:      schedule.MatchStateOf(re.State),
	}

	for i, t := range re.Match.Teams {
		if i >= 2 {
			break
		}
		ev.Teams[i] = schedule.Team{Name: t.Name, Short: t.Code}
	}

	if len(re.Match.Teams) >= 2 {
		r0, r1 := re.Match.Teams[0].Result, re.Match.Teams[1].Result
		if r0 != nil && r1 != nil {
			ev.Result = &schedule.MatchResult{
				GameWins: [2]uint16{uint16(r0.GameWins), uint16(r1.GameWins)},
			}
		}
	}
	return ev
}
