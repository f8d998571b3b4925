package out

import (
	"context"

	"stillpoint/internal/modules/companion/dto"
)

// Channel is the companion message-passing boundary. No acknowledgment is
// consumed; callers log and move on.
type Channel interface {
	Send(ctx context.Context, snapshot dto.Snapshot) error
}
