package clock

import "time"

// Clock is the time source used by services and the scheduler.
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

// New returns the wall clock, normalized to UTC.
func New() Clock {
	return realClock{}
}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

func (realClock) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}
