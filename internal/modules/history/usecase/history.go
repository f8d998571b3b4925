package usecase

import (
	"context"

	"stillpoint/internal/modules/history/domain"
	"stillpoint/internal/modules/history/dto"
	historyin "stillpoint/internal/modules/history/port/in"
	"stillpoint/internal/modules/history/service"
)

type Interactor struct {
	svc *service.HistoryService
}

func NewInteractor(svc *service.HistoryService) historyin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Append(ctx context.Context, input dto.AppendInput) (dto.AppendOutput, error) {
	record := domain.Record{
		ID:              input.ID,
		StartedAt:       input.StartedAt,
		PlannedDuration: input.PlannedDuration,
		EndedAt:         input.EndedAt,
		ActualDuration:  input.ActualDuration,
	}
	path, err := i.svc.Append(ctx, record)
	if err != nil {
		return dto.AppendOutput{}, err
	}
	streak, err := i.svc.Streak(ctx)
	if err != nil {
		return dto.AppendOutput{}, err
	}
	return dto.AppendOutput{
		ID:                record.ID,
		NotePath:          path,
		Completed:         record.Completed(),
		CompletionPercent: record.CompletionPercent(),
		Streak:            streak,
	}, nil
}

func (i *Interactor) List(ctx context.Context) ([]dto.RecordOutput, error) {
	records, err := i.svc.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RecordOutput, 0, len(records))
	for _, r := range records {
		out = append(out, dto.RecordOutput{
			ID:                r.ID,
			StartedAt:         r.StartedAt,
			PlannedDuration:   r.PlannedDuration,
			EndedAt:           r.EndedAt,
			ActualDuration:    r.ActualDuration,
			Completed:         r.Completed(),
			CompletionPercent: r.CompletionPercent(),
		})
	}
	return out, nil
}

func (i *Interactor) Delete(ctx context.Context, id string) error {
	return i.svc.Delete(ctx, id)
}

func (i *Interactor) DeleteAll(ctx context.Context) (int, error) {
	return i.svc.DeleteAll(ctx)
}

func (i *Interactor) Streak(ctx context.Context) (int, error) {
	return i.svc.Streak(ctx)
}
