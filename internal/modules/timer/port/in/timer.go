package in

import (
	"context"

	"stillpoint/internal/modules/timer/dto"
)

type Usecase interface {
	Start(ctx context.Context, input dto.StartInput) (dto.Snapshot, error)
	Pause(ctx context.Context) (dto.Snapshot, error)
	Resume(ctx context.Context) (dto.Snapshot, error)
	Stop(ctx context.Context) (dto.Snapshot, error)
	// Status resynchronizes against wall-clock time. It is both the 1 Hz
	// tick and the foreground-resume recovery checkpoint: when it finds a
	// running session past its planned duration it finalizes immediately.
	Status(ctx context.Context) (dto.Snapshot, error)
}
