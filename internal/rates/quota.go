package rates

import (
	"time"

	"fxconvert/internal/domain"
)

// Quota accounting is pure: the current date is always passed in, never
// read from the clock, so the policy is deterministic under test. A nil
// record and a record from a past day both mean a full quota.

// RemainingToday computes how many remote fetches are still allowed for
// the given date. The record's fetch count only applies when its day
// matches today; an older day means the counter has effectively reset.
func RemainingToday(rec *domain.CacheRecord, today string, maxPerDay int) int {
	if rec == nil || rec.Day != today {
		return maxPerDay
	}
	if rem := maxPerDay - rec.FetchCount; rem > 0 {
		return rem
	}
	return 0
}

// NextCount returns the fetch count to persist after a successful fetch
// on the given date: 1 on a new day, the incremented counter otherwise.
func NextCount(rec *domain.CacheRecord, today string) int {
	if rec == nil || rec.Day != today {
		return 1
	}
	return rec.FetchCount + 1
}

// Today returns the local calendar date in the form quota accounting
// uses.
func Today() string {
	return time.Now().Format("2006-01-02")
}
