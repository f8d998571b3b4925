package in

import (
	"context"

	"stillpoint/internal/modules/history/dto"
)

type Usecase interface {
	Append(ctx context.Context, input dto.AppendInput) (dto.AppendOutput, error)
	List(ctx context.Context) ([]dto.RecordOutput, error)
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) (int, error)
	Streak(ctx context.Context) (int, error)
}
