package in

import (
	"context"

	"stillpoint/internal/modules/settings/dto"
)

type Usecase interface {
	Get(ctx context.Context) (dto.PreferencesOutput, error)
	Set(ctx context.Context, input dto.SetInput) (dto.PreferencesOutput, error)
}
