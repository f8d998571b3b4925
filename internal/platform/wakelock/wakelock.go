package wakelock

// Lock keeps the host from idling while a session runs. Platforms without
// an idle-timer hook get the no-op implementation.
type Lock interface {
	Acquire() error
	Release() error
}

type Noop struct{}

func (Noop) Acquire() error { return nil }
func (Noop) Release() error { return nil }
