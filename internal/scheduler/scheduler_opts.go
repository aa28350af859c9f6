package scheduler

import "time"

type SchedulerOpt func(*Scheduler)

// WithTickInterval sets the duration of one tick used to convert tick delays.
func WithTickInterval(d time.Duration) SchedulerOpt {
	return func(s *Scheduler) {
		if d > 0 {
			s.tickInterval = d
		}
	}
}

// WithClock sets the clock read by Tick.
func WithClock(c Clock) SchedulerOpt {
	return func(s *Scheduler) {
		s.clock = c
	}
}
