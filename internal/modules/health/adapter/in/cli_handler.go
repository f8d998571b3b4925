package in

import (
	"context"

	healthin "stillpoint/internal/modules/health/port/in"
)

type CLIHandler struct {
	usecase healthin.Usecase
}

func NewCLIHandler(usecase healthin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) LogMood(ctx context.Context, rating int, note string) error {
	return h.usecase.LogMood(ctx, rating, note)
}
