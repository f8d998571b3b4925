package in

import (
	"context"
	"time"

	"stillpoint/internal/modules/timer/dto"
	timerin "stillpoint/internal/modules/timer/port/in"
)

type CLIHandler struct {
	usecase timerin.Usecase
}

func NewCLIHandler(usecase timerin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Start(ctx context.Context, duration time.Duration) (dto.Snapshot, error) {
	return h.usecase.Start(ctx, dto.StartInput{Duration: duration})
}

func (h CLIHandler) Pause(ctx context.Context) (dto.Snapshot, error) {
	return h.usecase.Pause(ctx)
}

func (h CLIHandler) Resume(ctx context.Context) (dto.Snapshot, error) {
	return h.usecase.Resume(ctx)
}

func (h CLIHandler) Stop(ctx context.Context) (dto.Snapshot, error) {
	return h.usecase.Stop(ctx)
}

func (h CLIHandler) Status(ctx context.Context) (dto.Snapshot, error) {
	return h.usecase.Status(ctx)
}
