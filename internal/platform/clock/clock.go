package clock

import "time"

// Clock abstracts wall-clock time. Every component that reasons about
// elapsed time takes a Clock so tests can replay exact timelines.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
