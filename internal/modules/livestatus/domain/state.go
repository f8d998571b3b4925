package domain

import "time"

// State is the snapshot pushed to the ambient countdown surface. EndAt is
// the authoritative completion timestamp: renderers interpolate against it
// between updates, so gaps in update delivery do not drift the display.
type State struct {
	SessionID        string    `json:"session_id"`
	Phase            string    `json:"phase"`
	StartedAt        time.Time `json:"started_at"`
	EndAt            time.Time `json:"end_at"`
	PlannedSeconds   int       `json:"planned_seconds"`
	ElapsedSeconds   int       `json:"elapsed_seconds"`
	RemainingSeconds int       `json:"remaining_seconds"`
	Progress         float64   `json:"progress"`
	Done             bool      `json:"done"`
}
