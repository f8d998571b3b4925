package domain_test

import (
	"testing"
	"time"

	"stillpoint/internal/modules/history/domain"
)

func day(y int, m time.Month, d, hour int) time.Time {
	return time.Date(y, m, d, hour, 0, 0, 0, time.Local)
}

func TestStreakCountsConsecutiveDaysEndingToday(t *testing.T) {
	t.Parallel()
	now := day(2026, 3, 10, 20)
	starts := []time.Time{
		day(2026, 3, 8, 7),
		day(2026, 3, 9, 12),
		day(2026, 3, 10, 6),
		day(2026, 3, 10, 18), // second session today does not double-count
	}
	if got := domain.Streak(starts, now); got != 3 {
		t.Fatalf("expected streak 3, got %d", got)
	}
}

func TestStreakSurvivesUntilEndOfToday(t *testing.T) {
	t.Parallel()
	// Yesterday and the day before have sessions, today has none yet. The
	// streak is alive but today contributes nothing.
	now := day(2026, 3, 10, 9)
	starts := []time.Time{
		day(2026, 3, 8, 7),
		day(2026, 3, 9, 22),
	}
	if got := domain.Streak(starts, now); got != 2 {
		t.Fatalf("expected streak 2, got %d", got)
	}
}

func TestStreakBreaksAfterAMissedDay(t *testing.T) {
	t.Parallel()
	now := day(2026, 3, 10, 9)
	starts := []time.Time{
		day(2026, 3, 5, 7),
		day(2026, 3, 6, 7),
		// March 7-9 missed.
	}
	if got := domain.Streak(starts, now); got != 0 {
		t.Fatalf("expected broken streak, got %d", got)
	}
}

func TestStreakGapInHistoryStopsTheWalk(t *testing.T) {
	t.Parallel()
	now := day(2026, 3, 10, 21)
	starts := []time.Time{
		day(2026, 3, 6, 7), // disconnected earlier run
		day(2026, 3, 9, 7),
		day(2026, 3, 10, 7),
	}
	if got := domain.Streak(starts, now); got != 2 {
		t.Fatalf("expected streak 2, got %d", got)
	}
}

func TestStreakEmptyHistory(t *testing.T) {
	t.Parallel()
	if got := domain.Streak(nil, day(2026, 3, 10, 9)); got != 0 {
		t.Fatalf("expected 0 for empty history, got %d", got)
	}
}

func TestStreakUsesLocalCalendarDays(t *testing.T) {
	t.Parallel()
	loc := time.FixedZone("UTC+13", 13*60*60)
	// 23:30 UTC on March 9 is already March 10 locally.
	starts := []time.Time{time.Date(2026, 3, 9, 23, 30, 0, 0, time.UTC)}
	now := time.Date(2026, 3, 10, 18, 0, 0, 0, loc)
	if got := domain.Streak(starts, now); got != 1 {
		t.Fatalf("expected the UTC evening session to count as today locally, got %d", got)
	}
}
