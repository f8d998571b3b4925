package service

import (
	"fmt"
	"time"

	"stillpoint/internal/modules/timer/domain"
	"stillpoint/internal/platform/clock"
	apperrors "stillpoint/internal/platform/errors"
	"stillpoint/internal/platform/id"
)

type TimerService struct {
	clock clock.Clock
	idGen id.Generator
}

func NewTimerService(clock clock.Clock, idGen id.Generator) *TimerService {
	return &TimerService{clock: clock, idGen: idGen}
}

func (s *TimerService) Now() time.Time {
	return s.clock.Now()
}

func (s *TimerService) Start(planned time.Duration) (domain.ActiveSession, error) {
	if planned < domain.MinPlannedDuration {
		return domain.ActiveSession{}, fmt.Errorf("%w: duration must be at least %s", apperrors.ErrInvalidInput, domain.MinPlannedDuration)
	}
	return domain.NewRunning(s.idGen.New(), s.clock.Now(), planned), nil
}
