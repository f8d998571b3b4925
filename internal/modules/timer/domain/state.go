package domain

import "time"

const SchemaVersion = 1

// MinPlannedDuration is the shortest session the timer will start.
const MinPlannedDuration = 60 * time.Second

type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseRunning Phase = "running"
	PhasePaused  Phase = "paused"
)

// ActiveSession is the in-flight session state. It is written to durable
// storage at start and on every pause/resume so a killed process can
// recover and finalize on relaunch. PausedAt is only meaningful while
// Phase is paused; the transition methods are the only way to move between
// phases, which keeps combinations like "paused without a pause timestamp"
// out of reach.
type ActiveSession struct {
	SchemaVersion   int           `json:"schema_version"`
	SessionID       string        `json:"session_id"`
	Phase           Phase         `json:"phase"`
	StartedAt       time.Time     `json:"started_at"`
	PlannedDuration time.Duration `json:"planned_duration_ns"`
	TotalPaused     time.Duration `json:"total_paused_ns"`
	PausedAt        time.Time     `json:"paused_at,omitzero"`
	AlertIDs        []string      `json:"alert_ids,omitempty"`
}

func NewRunning(sessionID string, startedAt time.Time, planned time.Duration) ActiveSession {
	return ActiveSession{
		SchemaVersion:   SchemaVersion,
		SessionID:       sessionID,
		Phase:           PhaseRunning,
		StartedAt:       startedAt,
		PlannedDuration: planned,
	}
}

// Pause freezes the clock. Reports false without state change unless the
// session is running.
func (a ActiveSession) Pause(now time.Time) (ActiveSession, bool) {
	if a.Phase != PhaseRunning {
		return a, false
	}
	a.Phase = PhasePaused
	a.PausedAt = now
	return a, true
}

// Resume folds the just-finished pause into TotalPaused and restarts the
// clock. Reports false without state change unless the session is paused.
func (a ActiveSession) Resume(now time.Time) (ActiveSession, bool) {
	if a.Phase != PhasePaused {
		return a, false
	}
	a.TotalPaused += now.Sub(a.PausedAt)
	a.PausedAt = time.Time{}
	a.Phase = PhaseRunning
	return a, true
}

// ReadingAt evaluates the session clock. While paused, the clock is frozen
// at the pause moment so elapsed time does not advance.
func (a ActiveSession) ReadingAt(now time.Time) Reading {
	at := now
	if a.Phase == PhasePaused {
		at = a.PausedAt
	}
	return TickReading(at, a.StartedAt, a.PlannedDuration, a.TotalPaused)
}

// End computes the finalization values: the wall-clock end moment and the
// actual mindful duration, which excludes all paused time.
func (a ActiveSession) End(now time.Time) (time.Time, time.Duration) {
	return now, a.ReadingAt(now).Elapsed
}
