package scheduler

import "time"

// Timer is the handle for one scheduled callback.
//
// Cancelled timers stay queued until the scheduler pops them, so owners that
// keep a reference (a movement lock, a cooldown slot) should drop it from the
// callback and whenever they cancel.
type Timer struct {
	scheduler *Scheduler
	callback  func()

	length time.Duration
	dueAt  time.Duration
	seq    uint64

	cancelled bool
	fired     bool
}

// Cancel prevents the callback from ever firing.
func (t *Timer) Cancel() {
	t.cancelled = true
}

// Complete cancels the timer and runs its callback immediately. It does
// nothing if the timer already fired or was cancelled.
func (t *Timer) Complete() bool {
	if t.cancelled || t.fired {
		return false
	}
	t.cancelled = true
	t.scheduler.invoke(t)
	return true
}

// ExtendTo cancels the timer and schedules the same callback ticks from the
// current clock, returning the new handle.
func (t *Timer) ExtendTo(ticks int) *Timer {
	t.Cancel()
	return t.scheduler.AddEvent(t.callback, ticks)
}

func (t *Timer) Cancelled() bool {
	return t.cancelled
}

// Fired reports whether the scheduler has run the callback.
func (t *Timer) Fired() bool {
	return t.fired
}

// Length returns the delay the timer was created with.
func (t *Timer) Length() time.Duration {
	return t.length
}

// DueAt returns the internal clock value at which the timer fires.
func (t *Timer) DueAt() time.Duration {
	return t.dueAt
}

// RemainingMillis returns the milliseconds until the timer is due. The value
// is negative once the due time has passed.
func (t *Timer) RemainingMillis() float64 {
	return float64(t.dueAt-t.scheduler.now) / float64(time.Millisecond)
}

func (t *Timer) RemainingSeconds() float64 {
	return 1e-3 * t.RemainingMillis()
}

// RemainingFraction returns the remaining time divided by the timer length:
// 1 at creation, 0 when due, negative afterwards. It is not clamped. A zero
// length timer reports 0.
func (t *Timer) RemainingFraction() float64 {
	if t.length == 0 {
		return 0
	}
	return float64(t.dueAt-t.scheduler.now) / float64(t.length)
}

// Clamp01 limits f to [0, 1] for display.
func Clamp01(f float64) float64 {
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	default:
		return f
	}
}
