package out

import (
	"context"

	"stillpoint/internal/modules/health/dto"
)

// Sink is the write-only health data boundary. Writes are fire-and-forget;
// failures are logged by the caller and never surfaced to the session
// lifecycle. Deleting local session records never retracts health writes.
type Sink interface {
	WriteMindfulSession(ctx context.Context, session dto.MindfulSession) error
	WriteMoodEntry(ctx context.Context, entry dto.MoodEntry) error
}
