package resources

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/riftwatch/riftwatch/internal/cache"
	"github.com/riftwatch/riftwatch/internal/logging"
	"github.com/riftwatch/riftwatch/internal/lolesports"
	"github.com/riftwatch/riftwatch/internal/schedule"
)

// fakeFetcher counts calls and serves canned responses.
type fakeFetcher struct {
	leagues       []lolesports.League
	schedules     map[string]*lolesports.Schedule
	err           error
	leaguesCalls  int
	scheduleCalls int
}

func (f *fakeFetcher) FetchLeagues(ctx context.Context) ([]lolesports.League, error) {
	f.leaguesCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.leagues, nil
}

func (f *fakeFetcher) FetchSchedule(ctx context.Context, leagueID, pageToken string) (*lolesports.Schedule, error) {
	f.scheduleCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.schedules[leagueID], nil
}

func remoteEvent(start time.Time, state string) lolesports.Event {
	return lolesports.Event{
		StartTime: start.UTC().Format(time.RFC3339),
		BlockName: "Week 1",
		State:     state,
		Type:      "match",
		League:    lolesports.EventLeague{Name: "LCK", Slug: "lck"},
		Match: lolesports.Match{
			Strategy: lolesports.Strategy{Type: "bestOf", Count: 3},
			Teams: []lolesports.Team{
				{Name: "T1", Code: "T1"},
				{Name: "Gen.G", Code: "GEN"},
			},
		},
	}
}

func newTestManager(t *testing.T, f Fetcher) *Manager {
	t.Helper()
	store := cache.NewStore(filepath.Join(t.TempDir(), "cache"))
	return NewManager(store, f, logging.Discard())
}

func TestManager_LeaguesMissFetchesAndCaches(t *testing.T) {
	f := &fakeFetcher{leagues: []lolesports.League{
		{ID: "1", Name: "LCK", Region: "KOREA", Slug: "lck"},
	}}
	m := newTestManager(t, f)

	leagues, ok := m.Leagues(context.Background())
	if !ok {
		t.Fatal("Leagues() ok = false, want true")
	}
	if len(leagues) != 1 || leagues[0].Name != "LCK" || leagues[0].Selected {
		t.Errorf("Leagues() = %+v, want one unselected LCK", leagues)
	}
	if f.leaguesCalls != 1 {
		t.Errorf("leaguesCalls = %d, want 1", f.leaguesCalls)
	}

	// A second call is served from the fresh cache.
	if _, ok := m.Leagues(context.Background()); !ok {
		t.Fatal("second Leagues() ok = false, want true")
	}
	if f.leaguesCalls != 1 {
		t.Errorf("leaguesCalls after cached read = %d, want 1", f.leaguesCalls)
	}
}

func TestManager_LeaguesFetchFailureIsAbsence(t *testing.T) {
	f := &fakeFetcher{err: errors.New("network down")}
	m := newTestManager(t, f)

	if _, ok := m.Leagues(context.Background()); ok {
		t.Error("Leagues() ok = true with no cache and a failing fetch, want false")
	}
}

func TestManager_ScheduleEndToEnd(t *testing.T) {
	start := time.Now().Add(24 * time.Hour)
	f := &fakeFetcher{schedules: map[string]*lolesports.Schedule{
		"LCK": {Events: []lolesports.Event{remoteEvent(start, "unstarted")}},
	}}
	dir := filepath.Join(t.TempDir(), "cache")
	store := cache.NewStore(dir)
	m := NewManager(store, f, logging.Discard())

	// Cache miss: the manager fetches, persists, and returns events.
	events, ok := m.Schedule(context.Background(), "LCK")
	if !ok {
		t.Fatal("Schedule() ok = false, want true")
	}
	if len(events) != 1 {
		t.Fatalf("Schedule() len = %d, want 1", len(events))
	}
	if events[0].Teams[0].Short != "T1" || events[0].Teams[1].Short != "GEN" {
		t.Errorf("Schedule() teams = %+v, want T1/GEN", events[0].Teams)
	}
	if events[0].State.Kind != schedule.MatchUnstarted {
		t.Errorf("Schedule() state = %v, want unstarted", events[0].State.Kind)
	}
	if _, err := os.Stat(filepath.Join(dir, "LCK.json")); err != nil {
		t.Errorf("expected persisted cache record: %v", err)
	}
	if f.scheduleCalls != 1 {
		t.Fatalf("scheduleCalls = %d, want 1", f.scheduleCalls)
	}

	// A second call inside the debounce window does not hit the fetcher.
	again, ok := m.Schedule(context.Background(), "LCK")
	if !ok {
		t.Fatal("second Schedule() ok = false, want true")
	}
	if len(again) != 1 || !again[0].StartTime.Equal(events[0].StartTime) {
		t.Errorf("cached Schedule() = %+v, want same events", again)
	}
	if f.scheduleCalls != 1 {
		t.Errorf("scheduleCalls after debounced read = %d, want 1", f.scheduleCalls)
	}
}

func TestManager_ScheduleStaleContentRefetches(t *testing.T) {
	past := time.Now().Add(-2 * time.Hour)
	f := &fakeFetcher{schedules: map[string]*lolesports.Schedule{
		"LCK": {Events: []lolesports.Event{remoteEvent(past, "completed")}},
	}}
	m := newTestManager(t, f)

	// Seed the cache with an unstarted event whose start has passed,
	// then age the record out of the debounce window.
	stale := []schedule.Event{{
		StartTime: past,
		State:     schedule.MatchState{Kind: schedule.MatchUnstarted},
	}}
	if err := m.store.Write("LCK", stale); err != nil {
		t.Fatal(err)
	}
	m.now = func() time.Time { return time.Now().Add(time.Hour) }

	events, ok := m.Schedule(context.Background(), "LCK")
	if !ok {
		t.Fatal("Schedule() ok = false, want true")
	}
	if f.scheduleCalls != 1 {
		t.Errorf("scheduleCalls = %d, want 1 (content-invalid record refetched)", f.scheduleCalls)
	}
	if events[0].State.Kind != schedule.MatchCompleted {
		t.Errorf("Schedule() state = %v, want refetched completed event", events[0].State.Kind)
	}
}

func TestManager_ScheduleCorruptCacheRefetches(t *testing.T) {
	start := time.Now().Add(24 * time.Hour)
	f := &fakeFetcher{schedules: map[string]*lolesports.Schedule{
		"LCK": {Events: []lolesports.Event{remoteEvent(start, "unstarted")}},
	}}
	dir := filepath.Join(t.TempDir(), "cache")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "LCK.json"), []byte("{garbage"), 0o644); err != nil {
		t.Fatal(err)
	}
	m := NewManager(cache.NewStore(dir), f, logging.Discard())

	if _, ok := m.Schedule(context.Background(), "LCK"); !ok {
		t.Fatal("Schedule() ok = false, want refetch past corrupt record")
	}
	if f.scheduleCalls != 1 {
		t.Errorf("scheduleCalls = %d, want 1", f.scheduleCalls)
	}
}

func TestManager_ScheduleFetchFailureIsAbsence(t *testing.T) {
	f := &fakeFetcher{err: errors.New("boom")}
	m := newTestManager(t, f)

	if _, ok := m.Schedule(context.Background(), "LCK"); ok {
		t.Error("Schedule() ok = true with no cache and failing fetch, want false")
	}
}

func TestMapEvent_Result(t *testing.T) {
	re := remoteEvent(time.Now(), "completed")
	w0, w1 := int64(2), int64(1)
	re.Match.Teams[0].Result = &lolesports.Result{GameWins: w0}
	re.Match.Teams[1].Result = &lolesports.Result{GameWins: w1}

	ev := mapEvent(re)
	if ev.Result == nil {
		t.Fatal("mapEvent() Result = nil, want game wins")
	}
	if ev.Result.GameWins != [2]uint16{2, 1} {
		t.Errorf("GameWins = %v, want [2 1]", ev.Result.GameWins)
	}
}

func TestMapEvent_ResultAbsentWhenOneSideMissing(t *testing.T) {
	re := remoteEvent(time.Now(), "inProgress")
	re.Match.Teams[0].Result = &lolesports.Result{GameWins: 1}

	if ev := mapEvent(re); ev.Result != nil {
		t.Errorf("mapEvent() Result = %+v, want nil when only one team reports", ev.Result)
	}
}
