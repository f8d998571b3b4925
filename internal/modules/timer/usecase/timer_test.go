package usecase_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	hclog "github.com/hashicorp/go-hclog"

	companiondto "stillpoint/internal/modules/companion/dto"
	healthdto "stillpoint/internal/modules/health/dto"
	historydto "stillpoint/internal/modules/history/dto"
	adapterout "stillpoint/internal/modules/timer/adapter/out"
	"stillpoint/internal/modules/timer/dto"
	timerin "stillpoint/internal/modules/timer/port/in"
	timerout "stillpoint/internal/modules/timer/port/out"
	"stillpoint/internal/modules/timer/service"
	"stillpoint/internal/modules/timer/usecase"
	"stillpoint/internal/platform/wakelock"
)

type manualClock struct {
	now time.Time
}

func (m *manualClock) Now() time.Time { return m.now }

func (m *manualClock) Advance(d time.Duration) { m.now = m.now.Add(d) }

type seqID struct{ n int }

func (s *seqID) New() string {
	s.n++
	return fmt.Sprintf("sess-%d", s.n)
}

// fakeHistory records appends keyed by session ID the way the real store
// does, so re-finalizing the same session overwrites instead of duplicating.
type fakeHistory struct {
	appends int
	records map[string]historydto.AppendInput
	fail    bool
}

func newFakeHistory() *fakeHistory {
	return &fakeHistory{records: map[string]historydto.AppendInput{}}
}

func (f *fakeHistory) Append(_ context.Context, input historydto.AppendInput) (historydto.AppendOutput, error) {
	if f.fail {
		return historydto.AppendOutput{}, fmt.Errorf("disk full")
	}
	f.appends++
	f.records[input.ID] = input
	percent := float64(input.ActualDuration) / float64(input.PlannedDuration)
	return historydto.AppendOutput{
		ID:                input.ID,
		NotePath:          "sessions/" + input.ID + ".md",
		Completed:         percent >= 1,
		CompletionPercent: percent,
		Streak:            1,
	}, nil
}

func (f *fakeHistory) List(context.Context) ([]historydto.RecordOutput, error) { return nil, nil }
func (f *fakeHistory) Delete(context.Context, string) error                   { return nil }
func (f *fakeHistory) DeleteAll(context.Context) (int, error)                 { return 0, nil }
func (f *fakeHistory) Streak(context.Context) (int, error)                    { return 0, nil }

type fakeScheduler struct {
	planned   [][]string
	scheduled [][]string
	canceled  [][]string
}

func (f *fakeScheduler) PlanCompletion(_ context.Context, sessionID string, _ time.Duration) []string {
	ids := []string{sessionID + ":complete", sessionID + ":backup:3"}
	f.planned = append(f.planned, ids)
	return ids
}

func (f *fakeScheduler) ScheduleCompletion(_ context.Context, sessionID string, _ time.Duration) {
	f.scheduled = append(f.scheduled, []string{sessionID + ":complete", sessionID + ":backup:3"})
}

func (f *fakeScheduler) CancelAll(_ context.Context, ids []string) {
	f.canceled = append(f.canceled, ids)
}

// watchfulScheduler inspects the durable state at the moment alerts would
// be issued.
type watchfulScheduler struct {
	fakeScheduler
	store         timerout.ActiveStore
	sawDurableIDs bool
}

func (w *watchfulScheduler) ScheduleCompletion(ctx context.Context, sessionID string, planned time.Duration) {
	session, err := w.store.Load(ctx)
	w.sawDurableIDs = err == nil && len(session.AlertIDs) > 0
	w.fakeScheduler.ScheduleCompletion(ctx, sessionID, planned)
}

type nopPublisher struct{}

func (nopPublisher) Open(context.Context, string, time.Time, time.Duration) {}
func (nopPublisher) Update(context.Context, string, string, time.Time, time.Duration, time.Duration, time.Duration, float64) {
}
func (nopPublisher) Close(context.Context, string) {}

type countingCue struct{ rings int }

func (c *countingCue) Completion() { c.rings++ }

type discardHealth struct{}

func (discardHealth) WriteMindfulSession(context.Context, healthdto.MindfulSession) error {
	return nil
}
func (discardHealth) WriteMoodEntry(context.Context, healthdto.MoodEntry) error { return nil }

type discardCompanion struct{}

func (discardCompanion) Send(context.Context, companiondto.Snapshot) error { return nil }

type harness struct {
	clock   *manualClock
	history *fakeHistory
	alerts  *fakeScheduler
	cue     *countingCue
	active  timerout.ActiveStore
	uc      timerin.Usecase
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := t.TempDir()
	h := &harness{
		clock:   &manualClock{now: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)},
		history: newFakeHistory(),
		alerts:  &fakeScheduler{},
		cue:     &countingCue{},
		active:  adapterout.NewFileActiveStore(filepath.Join(dir, "active.json")),
	}
	h.uc = h.build()
	return h
}

// relaunch builds a fresh interactor over the same durable stores, the way
// a killed and restarted process would come back up.
func (h *harness) relaunch() {
	h.uc = h.build()
}

func (h *harness) build() timerin.Usecase {
	return usecase.NewInteractor(
		service.NewTimerService(h.clock, &seqID{}),
		h.active,
		h.history,
		h.alerts,
		nopPublisher{},
		h.cue,
		discardHealth{},
		discardCompanion{},
		wakelock.Noop{},
		hclog.NewNullLogger(),
	)
}

func TestCompletionRecordedExactlyOnceAcrossRelaunch(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := context.Background()

	started, err := h.uc.Start(ctx, dto.StartInput{Duration: 10 * time.Minute})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if started.Phase != "running" || !started.Applied {
		t.Fatalf("unexpected start snapshot: %+v", started)
	}

	// The process dies and comes back after the timer has long elapsed.
	h.clock.Advance(25 * time.Minute)
	h.relaunch()

	status, err := h.uc.Status(ctx)
	if err != nil {
		t.Fatalf("status after relaunch: %v", err)
	}
	if !status.CompletedNow {
		t.Fatalf("expected completion on first status after relaunch: %+v", status)
	}
	if status.SavedSessionID != started.SessionID {
		t.Fatalf("expected saved id %s, got %s", started.SessionID, status.SavedSessionID)
	}
	if h.history.appends != 1 {
		t.Fatalf("expected exactly one append, got %d", h.history.appends)
	}
	if h.cue.rings != 1 {
		t.Fatalf("expected one completion cue, got %d", h.cue.rings)
	}

	// Further status calls and even another relaunch find nothing to do.
	h.relaunch()
	again, err := h.uc.Status(ctx)
	if err != nil {
		t.Fatalf("status after completion: %v", err)
	}
	if again.Phase != "idle" || again.CompletedNow {
		t.Fatalf("expected quiet idle status, got %+v", again)
	}
	if h.history.appends != 1 {
		t.Fatalf("completion recorded twice: %d appends", h.history.appends)
	}
	if h.cue.rings != 1 {
		t.Fatalf("cue rang twice: %d", h.cue.rings)
	}
}

func TestElapsedSessionCompletesOnFirstCallAfterRelaunch(t *testing.T) {
	t.Parallel()

	// Whatever command a relaunched process issues first must complete an
	// elapsed session, not carry it forward: a pause would otherwise park
	// it at remaining zero and a stop would record it as an early abort.
	for name, op := range map[string]func(*harness) (dto.Snapshot, error){
		"pause":  func(h *harness) (dto.Snapshot, error) { return h.uc.Pause(context.Background()) },
		"resume": func(h *harness) (dto.Snapshot, error) { return h.uc.Resume(context.Background()) },
		"stop":   func(h *harness) (dto.Snapshot, error) { return h.uc.Stop(context.Background()) },
	} {
		name, op := name, op
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			h := newHarness(t)

			started, err := h.uc.Start(context.Background(), dto.StartInput{Duration: 10 * time.Minute})
			if err != nil {
				t.Fatalf("start: %v", err)
			}
			h.clock.Advance(25 * time.Minute)
			h.relaunch()

			snap, err := op(h)
			if err != nil {
				t.Fatalf("%s after relaunch: %v", name, err)
			}
			if !snap.CompletedNow || snap.Phase != "idle" {
				t.Fatalf("%s must finalize the elapsed session, got %+v", name, snap)
			}
			if snap.SavedSessionID != started.SessionID {
				t.Fatalf("expected saved id %s, got %s", started.SessionID, snap.SavedSessionID)
			}
			if h.history.appends != 1 {
				t.Fatalf("expected exactly one append, got %d", h.history.appends)
			}
			if h.cue.rings != 1 {
				t.Fatalf("expected one completion cue, got %d", h.cue.rings)
			}
		})
	}
}

func TestPausedTimeExtendsWallClockButNotMindfulTime(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := context.Background()

	if _, err := h.uc.Start(ctx, dto.StartInput{Duration: 10 * time.Minute}); err != nil {
		t.Fatalf("start: %v", err)
	}

	h.clock.Advance(5 * time.Minute)
	paused, err := h.uc.Pause(ctx)
	if err != nil {
		t.Fatalf("pause: %v", err)
	}
	if paused.Elapsed != 5*time.Minute {
		t.Fatalf("expected 5m elapsed at pause, got %s", paused.Elapsed)
	}

	// Five minutes pass while paused. At wall-clock +10m the session would
	// have completed without the pause; instead it still has 5m to go.
	h.clock.Advance(5 * time.Minute)
	resumed, err := h.uc.Resume(ctx)
	if err != nil {
		t.Fatalf("resume: %v", err)
	}
	if resumed.Remaining != 5*time.Minute {
		t.Fatalf("expected 5m remaining after resume, got %s", resumed.Remaining)
	}

	h.clock.Advance(5 * time.Minute)
	done, err := h.uc.Status(ctx)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !done.CompletedNow {
		t.Fatalf("expected natural completion, got %+v", done)
	}
	record := h.history.records[done.SessionID]
	if record.ActualDuration != 10*time.Minute {
		t.Fatalf("actual duration must exclude the pause: got %s", record.ActualDuration)
	}
	if record.EndedAt.Sub(record.StartedAt) != 15*time.Minute {
		t.Fatalf("wall-clock span should include the pause: got %s", record.EndedAt.Sub(record.StartedAt))
	}
}

func TestEarlyStopRecordsPartialSessionWithoutCue(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := context.Background()

	if _, err := h.uc.Start(ctx, dto.StartInput{Duration: 10 * time.Minute}); err != nil {
		t.Fatalf("start: %v", err)
	}
	h.clock.Advance(90 * time.Second)

	stopped, err := h.uc.Stop(ctx)
	if err != nil {
		t.Fatalf("stop: %v", err)
	}
	if stopped.CompletedNow {
		t.Fatalf("early stop must not report natural completion")
	}
	if stopped.SavedSessionID == "" {
		t.Fatalf("early stop must still save the session")
	}
	if h.history.appends != 1 {
		t.Fatalf("expected one append, got %d", h.history.appends)
	}
	if h.cue.rings != 0 {
		t.Fatalf("cue must stay silent on manual stop, rang %d times", h.cue.rings)
	}
	if len(h.alerts.canceled) != 1 {
		t.Fatalf("scheduled alerts must be canceled on stop")
	}
}

func TestImmediateStopSavesZeroLengthSession(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := context.Background()

	started, err := h.uc.Start(ctx, dto.StartInput{Duration: 10 * time.Minute})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	stopped, err := h.uc.Stop(ctx)
	if err != nil {
		t.Fatalf("stop: %v", err)
	}
	record := h.history.records[started.SessionID]
	if record.ActualDuration != 0 {
		t.Fatalf("expected zero actual duration, got %s", record.ActualDuration)
	}
	if stopped.Phase != "idle" {
		t.Fatalf("expected idle after stop, got %s", stopped.Phase)
	}
}

func TestTransitionsInvalidForPhaseAreIgnored(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := context.Background()

	// Everything is a no-op while idle.
	for name, op := range map[string]func(context.Context) (dto.Snapshot, error){
		"pause":  h.uc.Pause,
		"resume": h.uc.Resume,
		"stop":   h.uc.Stop,
	} {
		snap, err := op(ctx)
		if err != nil {
			t.Fatalf("%s while idle: %v", name, err)
		}
		if snap.Applied || snap.Phase != "idle" {
			t.Fatalf("%s while idle must be ignored, got %+v", name, snap)
		}
	}

	started, err := h.uc.Start(ctx, dto.StartInput{Duration: 10 * time.Minute})
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	// Resume while running and a second start are both ignored.
	if snap, _ := h.uc.Resume(ctx); snap.Applied {
		t.Fatalf("resume while running must be ignored")
	}
	second, err := h.uc.Start(ctx, dto.StartInput{Duration: 20 * time.Minute})
	if err != nil {
		t.Fatalf("second start: %v", err)
	}
	if second.Applied || second.SessionID != started.SessionID {
		t.Fatalf("second start must return the in-flight session, got %+v", second)
	}
	if len(h.alerts.scheduled) != 1 {
		t.Fatalf("second start must not schedule more alerts")
	}
}

func TestAlertIDsAreDurableBeforeScheduling(t *testing.T) {
	t.Parallel()
	store := adapterout.NewFileActiveStore(filepath.Join(t.TempDir(), "active.json"))
	sched := &watchfulScheduler{store: store}
	uc := usecase.NewInteractor(
		service.NewTimerService(&manualClock{now: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)}, &seqID{}),
		store,
		newFakeHistory(),
		sched,
		nopPublisher{},
		&countingCue{},
		discardHealth{},
		discardCompanion{},
		wakelock.Noop{},
		hclog.NewNullLogger(),
	)

	started, err := uc.Start(context.Background(), dto.StartInput{Duration: 10 * time.Minute})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	// Dying between the save and the schedule must leave a cancellable set
	// on disk, so the IDs go durable first.
	if !sched.sawDurableIDs {
		t.Fatalf("alert ids must be persisted before any alert is issued")
	}
	if len(sched.scheduled) != 1 {
		t.Fatalf("expected one schedule call, got %d", len(sched.scheduled))
	}
	session, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if session.SessionID != started.SessionID || len(session.AlertIDs) == 0 {
		t.Fatalf("durable state missing alert ids: %+v", session)
	}
}

func TestStartRejectsTooShortDuration(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	if _, err := h.uc.Start(context.Background(), dto.StartInput{Duration: 30 * time.Second}); err == nil {
		t.Fatalf("expected validation error for 30s session")
	}
	if _, err := h.active.Load(context.Background()); err == nil {
		t.Fatalf("rejected start must not persist state")
	}
}

func TestRecordFailureWithholdsSavedConfirmation(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := context.Background()

	if _, err := h.uc.Start(ctx, dto.StartInput{Duration: 10 * time.Minute}); err != nil {
		t.Fatalf("start: %v", err)
	}
	h.clock.Advance(time.Minute)
	h.history.fail = true

	stopped, err := h.uc.Stop(ctx)
	if err != nil {
		t.Fatalf("stop: %v", err)
	}
	if stopped.SavedSessionID != "" {
		t.Fatalf("saved confirmation must be withheld when nothing was saved")
	}
	if stopped.Phase != "idle" {
		t.Fatalf("machine must still return to idle, got %s", stopped.Phase)
	}
}
