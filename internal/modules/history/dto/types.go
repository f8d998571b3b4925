package dto

import "time"

type AppendInput struct {
	ID              string
	StartedAt       time.Time
	PlannedDuration time.Duration
	EndedAt         time.Time
	ActualDuration  time.Duration
}

type AppendOutput struct {
	ID                string
	NotePath          string
	Completed         bool
	CompletionPercent float64
	Streak            int
}

type RecordOutput struct {
	ID                string
	StartedAt         time.Time
	PlannedDuration   time.Duration
	EndedAt           time.Time
	ActualDuration    time.Duration
	Completed         bool
	CompletionPercent float64
}
