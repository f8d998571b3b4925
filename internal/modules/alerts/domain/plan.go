package domain

import (
	"fmt"
	"time"
)

type AuthorizationStatus string

const (
	AuthorizationAuthorized    AuthorizationStatus = "authorized"
	AuthorizationDenied        AuthorizationStatus = "denied"
	AuthorizationNotDetermined AuthorizationStatus = "not_determined"
)

type IntervalType string

const (
	IntervalNone IntervalType = "none"
	IntervalOne  IntervalType = "1m"
	IntervalTwo  IntervalType = "2m"
	IntervalFive IntervalType = "5m"
	IntervalTen  IntervalType = "10m"
)

// Every returns the check-in period, or zero for IntervalNone.
func (t IntervalType) Every() time.Duration {
	switch t {
	case IntervalOne:
		return time.Minute
	case IntervalTwo:
		return 2 * time.Minute
	case IntervalFive:
		return 5 * time.Minute
	case IntervalTen:
		return 10 * time.Minute
	default:
		return 0
	}
}

type Marker string

const (
	MarkerQuarter      Marker = "25pct"
	MarkerHalf         Marker = "50pct"
	MarkerThreeQuarter Marker = "75pct"
	MarkerTwoMinLeft   Marker = "2min-left"
	MarkerOneMinLeft   Marker = "1min-left"
)

// Offset computes the marker's fire offset for a session of the given
// length. ok is false when the marker is undefined for that length, e.g.
// "2 minutes left" in a 90 second session.
func (m Marker) Offset(planned time.Duration) (time.Duration, bool) {
	var offset time.Duration
	switch m {
	case MarkerQuarter:
		offset = planned / 4
	case MarkerHalf:
		offset = planned / 2
	case MarkerThreeQuarter:
		offset = planned * 3 / 4
	case MarkerTwoMinLeft:
		offset = planned - 2*time.Minute
	case MarkerOneMinLeft:
		offset = planned - time.Minute
	default:
		return 0, false
	}
	if offset < 0 || offset >= planned {
		return 0, false
	}
	return offset, true
}

func (m Marker) title() string {
	switch m {
	case MarkerQuarter:
		return "A quarter of the way"
	case MarkerHalf:
		return "Halfway there"
	case MarkerThreeQuarter:
		return "Three quarters done"
	case MarkerTwoMinLeft:
		return "Two minutes remaining"
	case MarkerOneMinLeft:
		return "One minute remaining"
	default:
		return string(m)
	}
}

// Preferences is the read-only notification configuration consumed when a
// session starts.
type Preferences struct {
	Enabled  bool
	Interval IntervalType
	Markers  []Marker
}

// Alert is one scheduled local notification request, offset from session
// start.
type Alert struct {
	ID     string
	Offset time.Duration
	Title  string
	Body   string
}

// backupOffsets trail the primary completion alert. OS delivery of a single
// alert is not reliable, so several independent requests cover the window
// after nominal completion.
var backupOffsets = []time.Duration{3 * time.Second, 7 * time.Second, 15 * time.Second, 30 * time.Second}

// intervalEndGuard suppresses check-ins that would land on top of the
// completion alerts.
const intervalEndGuard = 30 * time.Second

// CompletionPlan builds the full redundant alert set for a session: the
// primary completion alert, its backups, and, when enabled, periodic
// check-ins and one-shot progress markers. Alert IDs are namespaced by
// session so CancelAll can target exactly this session's requests.
func CompletionPlan(sessionID string, planned time.Duration, prefs Preferences) []Alert {
	alerts := []Alert{{
		ID:     fmt.Sprintf("%s:complete", sessionID),
		Offset: planned,
		Title:  "Session complete",
		Body:   "Your meditation session has ended.",
	}}
	for i, backup := range backupOffsets {
		alerts = append(alerts, Alert{
			ID:     fmt.Sprintf("%s:backup:%d", sessionID, i+1),
			Offset: planned + backup,
			Title:  "Session complete",
			Body:   "Your meditation session has ended.",
		})
	}
	if !prefs.Enabled {
		return alerts
	}

	if every := prefs.Interval.Every(); every > 0 {
		for offset := every; offset < planned-intervalEndGuard; offset += every {
			alerts = append(alerts, Alert{
				ID:     fmt.Sprintf("%s:interval:%d", sessionID, int(offset.Seconds())),
				Offset: offset,
				Title:  "Check in",
				Body:   "Notice your breath.",
			})
		}
	}

	for _, marker := range prefs.Markers {
		offset, ok := marker.Offset(planned)
		if !ok {
			continue
		}
		alerts = append(alerts, Alert{
			ID:     fmt.Sprintf("%s:marker:%s", sessionID, marker),
			Offset: offset,
			Title:  marker.title(),
			Body:   "Keep going.",
		})
	}
	return alerts
}
