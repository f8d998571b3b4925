package service

import (
	"context"
	"sync"
	"time"

	hclog "github.com/hashicorp/go-hclog"

	"stillpoint/internal/modules/livestatus/domain"
	livestatusout "stillpoint/internal/modules/livestatus/port/out"
)

// Publisher maintains the single live countdown surface for the active
// session. Surface failures are logged and swallowed: a denied or broken
// ambient display must never abort the session.
type Publisher struct {
	mu      sync.Mutex
	surface livestatusout.Surface
	logger  hclog.Logger

	opened    bool
	sessionID string
	startedAt time.Time
	planned   time.Duration
}

func NewPublisher(surface livestatusout.Surface, logger hclog.Logger) *Publisher {
	return &Publisher{surface: surface, logger: logger}
}

func (p *Publisher) Open(ctx context.Context, sessionID string, startedAt time.Time, planned time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.opened && p.sessionID == sessionID {
		return
	}
	p.sessionID = sessionID
	p.startedAt = startedAt
	p.planned = planned
	state := p.state("running", 0, planned, 0, false)
	if err := p.surface.Open(ctx, state); err != nil {
		p.logger.Warn("live status surface unavailable", "error", err)
		return
	}
	p.opened = true
}

func (p *Publisher) Update(ctx context.Context, sessionID, phase string, startedAt time.Time, planned, elapsed, remaining time.Duration, progress float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	// A fresh process after relaunch has no open bookkeeping; adopt the
	// session so resync updates still reach the surface.
	p.sessionID = sessionID
	p.startedAt = startedAt
	p.planned = planned
	if err := p.surface.Update(ctx, p.state(phase, elapsed, remaining, progress, false)); err != nil {
		p.logger.Warn("live status update failed", "error", err)
	}
}

// Close pushes the terminal state (remaining 0, progress 1) before the
// surface is released.
func (p *Publisher) Close(ctx context.Context, sessionID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if sessionID != "" {
		p.sessionID = sessionID
	}
	state := p.state("idle", p.planned, 0, 1, true)
	if err := p.surface.End(ctx, state); err != nil {
		p.logger.Warn("live status close failed", "error", err)
	}
	p.opened = false
}

func (p *Publisher) state(phase string, elapsed, remaining time.Duration, progress float64, done bool) domain.State {
	return domain.State{
		SessionID:        p.sessionID,
		Phase:            phase,
		StartedAt:        p.startedAt,
		EndAt:            p.startedAt.Add(p.planned),
		PlannedSeconds:   int(p.planned.Seconds()),
		ElapsedSeconds:   int(elapsed.Seconds()),
		RemainingSeconds: int(remaining.Seconds()),
		Progress:         progress,
		Done:             done,
	}
}
