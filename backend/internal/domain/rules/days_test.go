package rules

import (
	"testing"
	"time"
)

func TestDayKeyUsesTimezone(t *testing.T) {
	loc, err := time.LoadLocation("Australia/Melbourne")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	utc := time.Date(2026, 2, 8, 21, 30, 0, 0, time.UTC)
	got := DayKey(utc, loc)
	want := "2026-02-09"
	if got != want {
		t.Fatalf("unexpected day key: got %s want %s", got, want)
	}
}

func TestDayKeyDefaultsToUTC(t *testing.T) {
	utc := time.Date(2026, 2, 8, 23, 59, 59, 0, time.UTC)
	got := DayKey(utc, nil)
	want := "2026-02-08"
	if got != want {
		t.Fatalf("unexpected day key: got %s want %s", got, want)
	}
}

func TestTrailingWindow(t *testing.T) {
	series := make([]int, 45)
	for i := range series {
		series[i] = i
	}

	got := TrailingWindow(series, TrailingDays)
	if len(got) != 30 {
		t.Fatalf("unexpected window length: %d", len(got))
	}
	if got[0] != 15 || got[29] != 44 {
		t.Fatalf("unexpected window bounds: %d..%d", got[0], got[29])
	}

	short := TrailingWindow(series[:4], TrailingDays)
	if len(short) != 4 {
		t.Fatalf("short series must be returned whole, got %d", len(short))
	}
	if empty := TrailingWindow(series, 0); len(empty) != 0 {
		t.Fatalf("zero window must be empty, got %d", len(empty))
	}
}

func TestRecentActionsSince(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.FixedZone("AEDT", 11*3600))
	got := RecentActionsSince(now)
	want := time.Date(2026, 2, 28, 1, 0, 0, 0, time.UTC)
	if !got.Equal(want) || got.Location() != time.UTC {
		t.Fatalf("unexpected since: got %s want %s", got, want)
	}
}
