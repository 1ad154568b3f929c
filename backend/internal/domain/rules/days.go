package rules

import "time"

const (
	TrailingDays    = 30
	RecentActionAge = 24 * time.Hour
)

func DayKey(now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return now.In(loc).Format("2006-01-02")
}

// TrailingWindow returns the last n elements of an ascending series, or all of
// them when there are fewer than n.
func TrailingWindow[T any](series []T, n int) []T {
	if n <= 0 {
		return series[:0]
	}
	if len(series) <= n {
		return series
	}
	return series[len(series)-n:]
}

func RecentActionsSince(now time.Time) time.Time {
	return now.UTC().Add(-RecentActionAge)
}
