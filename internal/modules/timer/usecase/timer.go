package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	hclog "github.com/hashicorp/go-hclog"

	companiondto "stillpoint/internal/modules/companion/dto"
	companionout "stillpoint/internal/modules/companion/port/out"
	healthdto "stillpoint/internal/modules/health/dto"
	healthout "stillpoint/internal/modules/health/port/out"
	historydto "stillpoint/internal/modules/history/dto"
	historyin "stillpoint/internal/modules/history/port/in"
	"stillpoint/internal/modules/timer/domain"
	"stillpoint/internal/modules/timer/dto"
	timerin "stillpoint/internal/modules/timer/port/in"
	timerout "stillpoint/internal/modules/timer/port/out"
	"stillpoint/internal/modules/timer/service"
	apperrors "stillpoint/internal/platform/errors"
	"stillpoint/internal/platform/wakelock"
)

// Interactor owns the active-session lifecycle. All transitions serialize
// through one mutex: start, pause, resume, stop, and the tick-driven
// completion check read-modify-write the same state and must never
// interleave.
type Interactor struct {
	mu sync.Mutex

	svc       *service.TimerService
	active    timerout.ActiveStore
	history   historyin.Usecase
	alerts    timerout.AlertScheduler
	status    timerout.StatusPublisher
	cue       timerout.Cue
	health    healthout.Sink
	companion companionout.Channel
	wake      wakelock.Lock
	sinks     []timerout.EventSink
	logger    hclog.Logger
}

func NewInteractor(
	svc *service.TimerService,
	active timerout.ActiveStore,
	history historyin.Usecase,
	alerts timerout.AlertScheduler,
	status timerout.StatusPublisher,
	cue timerout.Cue,
	health healthout.Sink,
	companion companionout.Channel,
	wake wakelock.Lock,
	logger hclog.Logger,
	sinks ...timerout.EventSink,
) timerin.Usecase {
	return &Interactor{
		svc:       svc,
		active:    active,
		history:   history,
		alerts:    alerts,
		status:    status,
		cue:       cue,
		health:    health,
		companion: companion,
		wake:      wake,
		sinks:     sinks,
		logger:    logger,
	}
}

func (i *Interactor) Start(ctx context.Context, input dto.StartInput) (dto.Snapshot, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if existing, err := i.active.Load(ctx); err == nil {
		// A start while a session is in flight is ignored, not an error.
		return i.snapshot(existing, false), nil
	} else if !errors.Is(err, apperrors.ErrNoActiveSession) {
		return dto.Snapshot{}, err
	}

	session, err := i.svc.Start(input.Duration)
	if err != nil {
		return dto.Snapshot{}, err
	}
	session.AlertIDs = i.alerts.PlanCompletion(ctx, session.SessionID, session.PlannedDuration)

	// The durable write is the start commitment: it is what lets a
	// relaunched process recover and finalize this session. It happens
	// before any alert is scheduled, planned IDs included, so CancelAll
	// has the full set even if the process dies mid-schedule.
	if err := i.active.Save(ctx, session); err != nil {
		return dto.Snapshot{}, fmt.Errorf("persist active session: %w", err)
	}
	i.alerts.ScheduleCompletion(ctx, session.SessionID, session.PlannedDuration)

	if err := i.wake.Acquire(); err != nil {
		i.logger.Warn("wake lock unavailable", "error", err)
	}
	i.status.Open(ctx, session.SessionID, session.StartedAt, session.PlannedDuration)
	i.publish(session, "")
	return i.snapshot(session, true), nil
}

func (i *Interactor) Pause(ctx context.Context) (dto.Snapshot, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	session, err := i.active.Load(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNoActiveSession) {
			return idleSnapshot(), nil
		}
		return dto.Snapshot{}, err
	}
	now := i.svc.Now()
	if overdue(session, now) {
		return i.finalize(ctx, session, true)
	}
	paused, ok := session.Pause(now)
	if !ok {
		return i.snapshot(session, false), nil
	}
	if err := i.active.Save(ctx, paused); err != nil {
		return dto.Snapshot{}, fmt.Errorf("persist paused session: %w", err)
	}
	i.updateSurface(ctx, paused)
	i.publish(paused, "")
	return i.snapshot(paused, true), nil
}

func (i *Interactor) Resume(ctx context.Context) (dto.Snapshot, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	session, err := i.active.Load(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNoActiveSession) {
			return idleSnapshot(), nil
		}
		return dto.Snapshot{}, err
	}
	now := i.svc.Now()
	if overdue(session, now) {
		return i.finalize(ctx, session, true)
	}
	resumed, ok := session.Resume(now)
	if !ok {
		return i.snapshot(session, false), nil
	}
	if err := i.active.Save(ctx, resumed); err != nil {
		return dto.Snapshot{}, fmt.Errorf("persist resumed session: %w", err)
	}
	i.updateSurface(ctx, resumed)
	i.publish(resumed, "")
	return i.snapshot(resumed, true), nil
}

func (i *Interactor) Stop(ctx context.Context) (dto.Snapshot, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	session, err := i.active.Load(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNoActiveSession) {
			// Reentrant stop: the phase already flipped to idle.
			return idleSnapshot(), nil
		}
		return dto.Snapshot{}, err
	}
	// A stop that finds the timer already elapsed is a completion, not an
	// early abort.
	return i.finalize(ctx, session, overdue(session, i.svc.Now()))
}

func (i *Interactor) Status(ctx context.Context) (dto.Snapshot, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	session, err := i.active.Load(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNoActiveSession) {
			return idleSnapshot(), nil
		}
		return dto.Snapshot{}, err
	}

	now := i.svc.Now()
	if overdue(session, now) {
		return i.finalize(ctx, session, true)
	}

	i.updateSurface(ctx, session)
	if session.Phase == domain.PhaseRunning {
		i.sendTelemetry(ctx, session.ReadingAt(now), now)
	}
	i.publish(session, "")
	return i.snapshot(session, true), nil
}

// overdue reports whether a running session's timer fully elapsed while
// nobody was ticking (backgrounded, suspended, or killed). Every entry
// point checks it before applying its own transition, so whichever call
// a relaunched process makes first completes the session instead of
// carrying it forward.
func overdue(session domain.ActiveSession, now time.Time) bool {
	return session.Phase == domain.PhaseRunning && session.ReadingAt(now).Remaining <= 0
}

// finalize records the session exactly once and returns the machine to
// idle. The record append is idempotent by session ID, so a crash after
// the append but before the durable state clears cannot double-record:
// the rerun finalization overwrites the same row and note.
func (i *Interactor) finalize(ctx context.Context, session domain.ActiveSession, natural bool) (dto.Snapshot, error) {
	now := i.svc.Now()
	endedAt, actual := session.End(now)

	i.alerts.CancelAll(ctx, session.AlertIDs)

	saved, err := i.history.Append(ctx, historydto.AppendInput{
		ID:              session.SessionID,
		StartedAt:       session.StartedAt,
		PlannedDuration: session.PlannedDuration,
		EndedAt:         endedAt,
		ActualDuration:  actual,
	})
	if err != nil {
		// Degraded path: the session is lost from local history. The
		// saved confirmation is withheld because nothing was saved.
		i.logger.Error("session record write failed", "id", session.SessionID, "error", err)
	}

	if err := i.health.WriteMindfulSession(ctx, healthdto.MindfulSession{
		SessionID:       session.SessionID,
		StartedAt:       session.StartedAt,
		EndedAt:         endedAt,
		DurationSeconds: int(actual.Seconds()),
	}); err != nil {
		i.logger.Warn("health sink write failed", "error", err)
	}

	i.status.Close(ctx, session.SessionID)
	if err := i.wake.Release(); err != nil {
		i.logger.Warn("wake lock release failed", "error", err)
	}
	if err := i.active.Clear(ctx); err != nil {
		return dto.Snapshot{}, fmt.Errorf("clear active session: %w", err)
	}
	if natural {
		i.cue.Completion()
	}

	savedID := ""
	notePath := ""
	streak := 0
	if err == nil {
		savedID = saved.ID
		notePath = saved.NotePath
		streak = saved.Streak
	}
	for _, sink := range i.sinks {
		sink.Publish(dto.Event{Phase: string(domain.PhaseIdle), Progress: 0, LastSavedSessionID: savedID})
	}

	reading := domain.TickReading(endedAt, session.StartedAt, session.PlannedDuration, session.TotalPaused)
	return dto.Snapshot{
		SessionID:       session.SessionID,
		Phase:           string(domain.PhaseIdle),
		StartedAt:       session.StartedAt,
		PlannedDuration: session.PlannedDuration,
		Elapsed:         actual,
		Remaining:       reading.Remaining,
		Progress:        reading.Progress,
		Applied:         true,
		CompletedNow:    natural,
		SavedSessionID:  savedID,
		NotePath:        notePath,
		Streak:          streak,
	}, nil
}

func (i *Interactor) updateSurface(ctx context.Context, session domain.ActiveSession) {
	reading := session.ReadingAt(i.svc.Now())
	i.status.Update(ctx, session.SessionID, string(session.Phase), session.StartedAt,
		session.PlannedDuration, reading.Elapsed, reading.Remaining, reading.Progress)
}

func (i *Interactor) sendTelemetry(ctx context.Context, reading domain.Reading, now time.Time) {
	snapshot := companiondto.Snapshot{
		ElapsedSeconds: int(reading.Elapsed.Seconds()),
		Timestamp:      now,
	}
	if err := i.companion.Send(ctx, snapshot); err != nil {
		i.logger.Debug("companion snapshot dropped", "error", err)
	}
}

func (i *Interactor) publish(session domain.ActiveSession, savedID string) {
	reading := session.ReadingAt(i.svc.Now())
	event := dto.Event{
		Phase:              string(session.Phase),
		Elapsed:            reading.Elapsed,
		Remaining:          reading.Remaining,
		Progress:           reading.Progress,
		LastSavedSessionID: savedID,
	}
	for _, sink := range i.sinks {
		sink.Publish(event)
	}
}

func (i *Interactor) snapshot(session domain.ActiveSession, applied bool) dto.Snapshot {
	reading := session.ReadingAt(i.svc.Now())
	return dto.Snapshot{
		SessionID:       session.SessionID,
		Phase:           string(session.Phase),
		StartedAt:       session.StartedAt,
		PlannedDuration: session.PlannedDuration,
		Elapsed:         reading.Elapsed,
		Remaining:       reading.Remaining,
		Progress:        reading.Progress,
		Applied:         applied,
	}
}

func idleSnapshot() dto.Snapshot {
	return dto.Snapshot{Phase: string(domain.PhaseIdle), Applied: false}
}
