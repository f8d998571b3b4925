package domain

import "time"

// Reading is the session clock output for one moment in time.
type Reading struct {
	Elapsed   time.Duration
	Remaining time.Duration
	Progress  float64
}

// TickReading computes elapsed, remaining, and progress purely from
// absolute timestamps. It carries no tick count and accumulates no state,
// so a process suspended for seconds or hours resynchronizes exactly on
// the next call: identical inputs always produce identical readings.
func TickReading(now, startedAt time.Time, planned, totalPaused time.Duration) Reading {
	elapsed := now.Sub(startedAt) - totalPaused
	if elapsed < 0 {
		elapsed = 0
	}
	remaining := planned - elapsed
	if remaining < 0 {
		remaining = 0
	}
	progress := 1.0
	if planned > 0 {
		progress = float64(elapsed) / float64(planned)
		if progress > 1 {
			progress = 1
		}
	}
	return Reading{Elapsed: elapsed, Remaining: remaining, Progress: progress}
}
