package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	hclog "github.com/hashicorp/go-hclog"

	adapterout "stillpoint/internal/modules/alerts/adapter/out"
	"stillpoint/internal/modules/alerts/domain"
	"stillpoint/internal/modules/alerts/service"
)

type staticPrefs struct {
	prefs domain.Preferences
	err   error
}

func (s staticPrefs) Load(context.Context) (domain.Preferences, error) {
	return s.prefs, s.err
}

type deniedNotifier struct {
	scheduled int
}

func (d *deniedNotifier) Authorization(context.Context) (domain.AuthorizationStatus, error) {
	return domain.AuthorizationDenied, nil
}

func (d *deniedNotifier) Schedule(context.Context, domain.Alert) error {
	d.scheduled++
	return nil
}

func (d *deniedNotifier) Cancel(context.Context, []string) error { return nil }

func TestScheduleThenCancelLeavesNothingPending(t *testing.T) {
	t.Parallel()
	notifier := adapterout.NewLogNotifier(hclog.NewNullLogger())
	facade := service.NewFacade(notifier, staticPrefs{prefs: domain.Preferences{
		Enabled:  true,
		Interval: domain.IntervalFive,
		Markers:  []domain.Marker{domain.MarkerHalf},
	}}, hclog.NewNullLogger())
	ctx := context.Background()

	ids := facade.PlanCompletion(ctx, "s1", 20*time.Minute)
	if len(ids) == 0 {
		t.Fatalf("expected planned alerts")
	}
	facade.ScheduleCompletion(ctx, "s1", 20*time.Minute)
	// The plan is exactly what gets scheduled, so cancelling the planned
	// IDs clears everything.
	if got := len(notifier.Pending()); got != len(ids) {
		t.Fatalf("pending %d, want %d", got, len(ids))
	}

	facade.CancelAll(ctx, ids)
	if got := notifier.Pending(); len(got) != 0 {
		t.Fatalf("alerts left pending after cancel: %v", got)
	}

	// Cancelling again, and cancelling nothing, are both harmless.
	facade.CancelAll(ctx, ids)
	facade.CancelAll(ctx, nil)
}

func TestDeniedAuthorizationSchedulesNothing(t *testing.T) {
	t.Parallel()
	notifier := &deniedNotifier{}
	facade := service.NewFacade(notifier, staticPrefs{}, hclog.NewNullLogger())

	facade.ScheduleCompletion(context.Background(), "s1", 10*time.Minute)
	if notifier.scheduled != 0 {
		t.Fatalf("no alerts may be scheduled without authorization")
	}
	// Planning is local and still yields IDs; cancelling them later is a
	// no-op.
	if ids := facade.PlanCompletion(context.Background(), "s1", 10*time.Minute); len(ids) == 0 {
		t.Fatalf("plan must not depend on authorization")
	}
}

func TestPreferenceLoadFailureFallsBackToCompletionOnly(t *testing.T) {
	t.Parallel()
	notifier := adapterout.NewLogNotifier(hclog.NewNullLogger())
	facade := service.NewFacade(notifier, staticPrefs{err: fmt.Errorf("corrupt prefs")}, hclog.NewNullLogger())

	ids := facade.PlanCompletion(context.Background(), "s1", 10*time.Minute)
	// Primary plus four backups, nothing preference-driven.
	if len(ids) != 5 {
		t.Fatalf("expected 5 completion alerts, got %d: %v", len(ids), ids)
	}
	facade.ScheduleCompletion(context.Background(), "s1", 10*time.Minute)
	if got := len(notifier.Pending()); got != 5 {
		t.Fatalf("expected 5 scheduled alerts, got %d", got)
	}
}
