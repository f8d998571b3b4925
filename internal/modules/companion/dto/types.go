package dto

import "time"

// Snapshot is one telemetry sample exchanged with the watch companion.
// Delivery is fire-and-forget: possibly dropped, possibly out of order.
type Snapshot struct {
	HeartRate      *float64  `json:"heart_rate,omitempty"`
	BreathingRate  *float64  `json:"breathing_rate,omitempty"`
	ElapsedSeconds int       `json:"elapsed_seconds"`
	Timestamp      time.Time `json:"timestamp"`
}
