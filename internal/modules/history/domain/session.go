package domain

import (
	"fmt"
	"strings"
	"time"
)

const SchemaVersion = 1

// MinPlannedDuration is the shortest session the app will time.
const MinPlannedDuration = 60 * time.Second

// completionEpsilon absorbs sub-second rounding when a session ends within
// a tick of its planned duration.
const completionEpsilon = 0.001

// Record is one finalized meditation session. Records are append-only:
// finalized exactly once and never mutated afterwards.
type Record struct {
	ID              string
	StartedAt       time.Time
	PlannedDuration time.Duration
	EndedAt         time.Time
	ActualDuration  time.Duration
}

// EffectiveDuration falls back to the planned duration for records that
// were never finalized (legacy rows imported without an end timestamp).
func (r Record) EffectiveDuration() time.Duration {
	if r.EndedAt.IsZero() {
		return r.PlannedDuration
	}
	return r.ActualDuration
}

func (r Record) CompletionPercent() float64 {
	if r.PlannedDuration <= 0 {
		return 0
	}
	pct := float64(r.EffectiveDuration()) / float64(r.PlannedDuration)
	if pct < 0 {
		return 0
	}
	if pct > 1 {
		return 1
	}
	return pct
}

// Completed reports whether the session reached its planned duration.
func (r Record) Completed() bool {
	return r.CompletionPercent() >= 1.0-completionEpsilon
}

func (r Record) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("record id is required")
	}
	if r.StartedAt.IsZero() {
		return fmt.Errorf("record start time is required")
	}
	if r.PlannedDuration < MinPlannedDuration {
		return fmt.Errorf("planned duration must be at least %s", MinPlannedDuration)
	}
	return nil
}
