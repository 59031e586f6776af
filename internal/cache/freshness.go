package cache

import (
	"time"

	"github.com/riftwatch/riftwatch/internal/schedule"
)

// Freshness thresholds. Fixed by design, not configurable.
const (
	LeaguesMaxAge  = 7 * 24 * time.Hour
	ScheduleMaxAge = 3 * 24 * time.Hour
	ScheduleMinAge = 5 * time.Minute
)

// Verdict is the outcome of a freshness check.
type Verdict int

const (
	// Fresh means the cached record may be reused as-is.
	Fresh Verdict = iota
	// StaleTooOld means the record's age exceeds the kind's maximum.
	StaleTooOld
	// StaleContentInvalid means the record is within its age window but
	// its content contradicts the clock (an unstarted match in the past).
	StaleContentInvalid
)

// Stale reports whether the verdict requires a refetch.
func (v Verdict) Stale() bool {
	return v != Fresh
}

func (v Verdict) String() string {
	switch v {
	case Fresh:
		return "fresh"
	case StaleTooOld:
		return "stale: too old"
	case StaleContentInvalid:
		return "stale: content invalid"
	default:
		return "unknown"
	}
}

// LeaguesVerdict decides whether a cached league list of the given age
// may be reused. Pure function of age.
func LeaguesVerdict(age time.Duration) Verdict {
	if age >= LeaguesMaxAge {
		return StaleTooOld
	}
	return Fresh
}

// ScheduleVerdict decides whether a cached schedule may be reused.
// Three zones, in priority order:
//
//  1. older than 3 days: always refetch, content is irrelevant
//  2. younger than 5 minutes: always reuse, debouncing the remote API
//     even when the content looks outdated
//  3. otherwise: stale only when an event still marked unstarted has a
//     start time already in the past
//
// The ordering is load-bearing: zone 2 must short-circuit zone 3's
// content inspection, and zone 1 both.
func ScheduleVerdict(age time.Duration, events []schedule.Event, now time.Time) Verdict {
	if age > ScheduleMaxAge {
		return StaleTooOld
	}
	if age < ScheduleMinAge {
		return Fresh
	}
	for _, e := range events {
		if e.State.Kind == schedule.MatchUnstarted && e.StartTime.Before(now) {
			return StaleContentInvalid
		}
	}
	return Fresh
}
