package service

import (
	"context"
	"time"

	hclog "github.com/hashicorp/go-hclog"

	"stillpoint/internal/modules/alerts/domain"
	alertsout "stillpoint/internal/modules/alerts/port/out"
)

// Facade translates a session's duration and notification preferences into
// redundant scheduled alerts. Every failure here degrades to a log line:
// the in-app completion cue remains the foreground guarantee, and alert
// trouble must never block a session.
type Facade struct {
	svc    alertsout.Service
	prefs  alertsout.PreferencesSource
	logger hclog.Logger
}

func NewFacade(svc alertsout.Service, prefs alertsout.PreferencesSource, logger hclog.Logger) *Facade {
	return &Facade{svc: svc, prefs: prefs, logger: logger}
}

// PlanCompletion returns every alert ID the completion plan for a session
// would issue, without contacting the notifier. Callers persist these
// before scheduling so a crash mid-schedule still leaves a cancellable
// set on disk.
func (f *Facade) PlanCompletion(ctx context.Context, sessionID string, planned time.Duration) []string {
	plan := domain.CompletionPlan(sessionID, planned, f.loadPrefs(ctx))
	ids := make([]string, 0, len(plan))
	for _, alert := range plan {
		ids = append(ids, alert.ID)
	}
	return ids
}

// ScheduleCompletion issues the completion plan for a session.
// Authorization trouble shrinks the scheduled set relative to the plan,
// never grows it.
func (f *Facade) ScheduleCompletion(ctx context.Context, sessionID string, planned time.Duration) {
	status, err := f.svc.Authorization(ctx)
	if err != nil {
		f.logger.Warn("alert authorization check failed", "error", err)
		return
	}
	if status != domain.AuthorizationAuthorized {
		f.logger.Warn("alerts not authorized, session proceeds without scheduled alerts", "status", status)
		return
	}

	for _, alert := range domain.CompletionPlan(sessionID, planned, f.loadPrefs(ctx)) {
		if err := f.svc.Schedule(ctx, alert); err != nil {
			f.logger.Warn("scheduling alert failed", "id", alert.ID, "error", err)
		}
	}
}

func (f *Facade) loadPrefs(ctx context.Context) domain.Preferences {
	prefs, err := f.prefs.Load(ctx)
	if err != nil {
		f.logger.Warn("loading notification preferences failed, using defaults", "error", err)
		return domain.Preferences{}
	}
	return prefs
}

// CancelAll removes every alert issued for a session. Safe to call twice
// and safe to call when nothing was ever scheduled.
func (f *Facade) CancelAll(ctx context.Context, ids []string) {
	if len(ids) == 0 {
		return
	}
	if err := f.svc.Cancel(ctx, ids); err != nil {
		f.logger.Warn("cancelling alerts failed", "count", len(ids), "error", err)
	}
}
