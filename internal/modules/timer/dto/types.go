package dto

import "time"

type StartInput struct {
	Duration time.Duration
}

// Snapshot is the full UI-facing state after an operation. Applied is
// false when the requested transition was invalid for the current phase
// and was ignored.
type Snapshot struct {
	SessionID       string
	Phase           string
	StartedAt       time.Time
	PlannedDuration time.Duration
	Elapsed         time.Duration
	Remaining       time.Duration
	Progress        float64
	Applied         bool
	CompletedNow    bool
	SavedSessionID  string
	NotePath        string
	Streak          int
}

// Event is the change notification emitted to subscribers on every
// transition and tick.
type Event struct {
	Phase              string
	Elapsed            time.Duration
	Remaining          time.Duration
	Progress           float64
	LastSavedSessionID string
}
