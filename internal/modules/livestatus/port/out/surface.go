package out

import (
	"context"

	"stillpoint/internal/modules/livestatus/domain"
)

// Surface is the OS-rendered ambient display boundary (the lock-screen
// countdown analog).
type Surface interface {
	Open(ctx context.Context, state domain.State) error
	Update(ctx context.Context, state domain.State) error
	// End pushes the terminal state and releases the surface.
	End(ctx context.Context, state domain.State) error
}
