package in

import (
	"context"

	"stillpoint/internal/modules/history/dto"
	historyin "stillpoint/internal/modules/history/port/in"
)

type CLIHandler struct {
	usecase historyin.Usecase
}

func NewCLIHandler(usecase historyin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]dto.RecordOutput, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Delete(ctx context.Context, id string) error {
	return h.usecase.Delete(ctx, id)
}

func (h CLIHandler) DeleteAll(ctx context.Context) (int, error) {
	return h.usecase.DeleteAll(ctx)
}

func (h CLIHandler) Streak(ctx context.Context) (int, error) {
	return h.usecase.Streak(ctx)
}
