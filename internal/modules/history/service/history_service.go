package service

import (
	"context"
	"fmt"

	hclog "github.com/hashicorp/go-hclog"

	"stillpoint/internal/modules/history/domain"
	historyout "stillpoint/internal/modules/history/port/out"
	"stillpoint/internal/platform/clock"
)

type HistoryService struct {
	clock     clock.Clock
	notes     historyout.NoteStore
	projector historyout.Projector
	logger    hclog.Logger
}

func NewHistoryService(clock clock.Clock, notes historyout.NoteStore, projector historyout.Projector, logger hclog.Logger) *HistoryService {
	return &HistoryService{clock: clock, notes: notes, projector: projector, logger: logger}
}

// Append records a finalized session. The projection upsert is the durable
// write; the markdown note is best-effort and retried once with a minimal
// representation before the note is given up on.
func (s *HistoryService) Append(ctx context.Context, record domain.Record) (string, error) {
	if err := record.Validate(); err != nil {
		return "", err
	}
	if err := s.projector.Upsert(ctx, record); err != nil {
		return "", fmt.Errorf("append session record: %w", err)
	}

	path, err := s.notes.Write(ctx, record)
	if err != nil {
		s.logger.Warn("session note write failed, retrying with minimal note", "id", record.ID, "error", err)
		path, err = s.notes.WriteMinimal(ctx, record)
		if err != nil {
			s.logger.Error("session note lost", "id", record.ID, "error", err)
			return "", nil
		}
	}
	return path, nil
}

func (s *HistoryService) Delete(ctx context.Context, id string) error {
	return s.projector.Delete(ctx, id)
}

func (s *HistoryService) DeleteAll(ctx context.Context) (int, error) {
	return s.projector.DeleteAll(ctx)
}

func (s *HistoryService) List(ctx context.Context) ([]domain.Record, error) {
	return s.projector.List(ctx)
}

// Streak recomputes the consecutive-practice-days count from stored start
// dates in the local timezone.
func (s *HistoryService) Streak(ctx context.Context) (int, error) {
	starts, err := s.projector.StartDates(ctx)
	if err != nil {
		return 0, fmt.Errorf("load session start dates: %w", err)
	}
	return domain.Streak(starts, s.clock.Now()), nil
}
