package usecase

import (
	"context"
	"fmt"

	"stillpoint/internal/modules/health/dto"
	healthin "stillpoint/internal/modules/health/port/in"
	healthout "stillpoint/internal/modules/health/port/out"
	"stillpoint/internal/platform/clock"
	apperrors "stillpoint/internal/platform/errors"
)

type Interactor struct {
	clock clock.Clock
	sink  healthout.Sink
}

func NewInteractor(clock clock.Clock, sink healthout.Sink) healthin.Usecase {
	return &Interactor{clock: clock, sink: sink}
}

func (i *Interactor) LogMood(ctx context.Context, rating int, note string) error {
	if rating < 1 || rating > 5 {
		return fmt.Errorf("%w: mood rating must be 1-5", apperrors.ErrInvalidInput)
	}
	return i.sink.WriteMoodEntry(ctx, dto.MoodEntry{
		Rating:   rating,
		Note:     note,
		LoggedAt: i.clock.Now(),
	})
}
