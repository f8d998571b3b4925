package in

import (
	"context"

	"stillpoint/internal/modules/settings/dto"
	settingsin "stillpoint/internal/modules/settings/port/in"
)

type CLIHandler struct {
	usecase settingsin.Usecase
}

func NewCLIHandler(usecase settingsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Show(ctx context.Context) (dto.PreferencesOutput, error) {
	return h.usecase.Get(ctx)
}

func (h CLIHandler) Set(ctx context.Context, input dto.SetInput) (dto.PreferencesOutput, error) {
	return h.usecase.Set(ctx, input)
}
