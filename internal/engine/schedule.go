package engine

import "time"

// Scheduler is the session's only source of delayed execution: debounce
// windows, the staggered criterion reveal and score ticks all go through it,
// so tests can drive time by hand.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

// Timer is a cancellable pending callback.
type Timer interface {
	Stop() bool
}

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// RealScheduler returns the wall-clock scheduler used in production.
func RealScheduler() Scheduler {
	return realScheduler{}
}
