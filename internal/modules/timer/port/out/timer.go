package out

import (
	"context"
	"time"

	"stillpoint/internal/modules/timer/domain"
	"stillpoint/internal/modules/timer/dto"
)

// ActiveStore persists the in-flight session state across process death.
// Load returns apperrors.ErrNoActiveSession when nothing is in flight.
type ActiveStore interface {
	Save(ctx context.Context, session domain.ActiveSession) error
	Load(ctx context.Context) (domain.ActiveSession, error)
	Clear(ctx context.Context) error
}

// AlertScheduler is the alert facade as the state machine sees it: every
// operation is best-effort and never fails a transition. PlanCompletion
// returns the IDs the completion plan would issue without scheduling
// anything, so they can be made durable first; CancelAll tolerates IDs
// that were planned but never scheduled.
type AlertScheduler interface {
	PlanCompletion(ctx context.Context, sessionID string, planned time.Duration) []string
	ScheduleCompletion(ctx context.Context, sessionID string, planned time.Duration)
	CancelAll(ctx context.Context, ids []string)
}

// StatusPublisher keeps the ambient countdown surface in sync with the
// session clock.
type StatusPublisher interface {
	Open(ctx context.Context, sessionID string, startedAt time.Time, planned time.Duration)
	Update(ctx context.Context, sessionID, phase string, startedAt time.Time, planned, elapsed, remaining time.Duration, progress float64)
	Close(ctx context.Context, sessionID string)
}

// Cue plays the local completion signal while the app is foregrounded.
// Independent of scheduled alerts, which cover the backgrounded case.
type Cue interface {
	Completion()
}

// EventSink receives state change notifications.
type EventSink interface {
	Publish(event dto.Event)
}
