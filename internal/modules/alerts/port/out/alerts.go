package out

import (
	"context"

	"stillpoint/internal/modules/alerts/domain"
)

// Service is the OS-level local notification boundary. Scheduling is
// best-effort and at-least-once; cancellation of unknown IDs is a no-op.
type Service interface {
	Authorization(ctx context.Context) (domain.AuthorizationStatus, error)
	Schedule(ctx context.Context, alert domain.Alert) error
	Cancel(ctx context.Context, ids []string) error
}

// PreferencesSource supplies the notification preferences current at
// session start.
type PreferencesSource interface {
	Load(ctx context.Context) (domain.Preferences, error)
}
