package scheduler

import (
	"log/slog"
	"math"
	"time"

	"github.com/pixil98/go-tilesim/internal/pqueue"
)

const (
	DefaultTickInterval = 50 * time.Millisecond
)

// Scheduler is the client event queue. It owns a monotonically increasing
// internal clock and fires scheduled callbacks once they are due.
// It is not safe for concurrent use; all calls happen on the frame loop.
type Scheduler struct {
	clock        Clock
	tickInterval time.Duration

	last time.Time     // clock reading at the previous Tick
	now  time.Duration // internal clock, time since the scheduler started
	seq  uint64

	queue *pqueue.Queue[*Timer]
}

func New(opts ...SchedulerOpt) *Scheduler {
	s := &Scheduler{
		clock:        systemClock{},
		tickInterval: DefaultTickInterval,
		queue:        pqueue.New(earlier),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.last = s.clock.Now()
	return s
}

// earlier orders timers by due time, breaking ties by insertion order.
func earlier(a, b *Timer) bool {
	if a.dueAt != b.dueAt {
		return a.dueAt < b.dueAt
	}
	return a.seq < b.seq
}

// Tick advances the internal clock by the time elapsed since the previous
// tick and fires every timer that is due.
func (s *Scheduler) Tick() {
	now := s.clock.Now()
	elapsed := now.Sub(s.last)
	s.last = now
	s.Advance(elapsed)
}

// Advance moves the internal clock forward by elapsed and fires every timer
// that is due. Negative values do not move the clock.
func (s *Scheduler) Advance(elapsed time.Duration) {
	if elapsed > 0 {
		s.now += elapsed
	}

	// Timers scheduled by callbacks during this pass wait for the next one.
	limit := s.seq
	for {
		next, ok := s.queue.Peek()
		if !ok || next.dueAt > s.now || next.seq > limit {
			return
		}
		s.queue.Pop()

		if next.cancelled {
			continue
		}
		next.fired = true
		s.invoke(next)
	}
}

// AddEvent schedules callback to fire ticks ticks from now. Negative delays
// are treated as zero; a zero delay fires on the next tick.
func (s *Scheduler) AddEvent(callback func(), ticks int) *Timer {
	if ticks < 0 {
		ticks = 0
	}
	if limit := int64(math.MaxInt64 / s.tickInterval); int64(ticks) > limit {
		ticks = int(limit)
	}
	return s.AddEventAfter(callback, time.Duration(ticks)*s.tickInterval)
}

// AddEventAfter schedules callback to fire once the internal clock has moved d forward.
func (s *Scheduler) AddEventAfter(callback func(), d time.Duration) *Timer {
	if d < 0 {
		d = 0
	}
	if d > math.MaxInt64-s.now {
		d = math.MaxInt64 - s.now
	}
	if callback == nil {
		slog.Warn("scheduling nil callback", "delay", d)
		callback = func() {}
	}

	s.seq++
	t := &Timer{
		scheduler: s,
		callback:  callback,
		length:    d,
		dueAt:     s.now + d,
		seq:       s.seq,
	}
	s.queue.Push(t)
	return t
}

// Now returns the internal clock.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Frame returns the number of whole ticks elapsed on the internal clock.
func (s *Scheduler) Frame() int64 {
	return int64(s.now / s.tickInterval)
}

func (s *Scheduler) TickInterval() time.Duration {
	return s.tickInterval
}

// Pending returns the number of queued entries, including cancelled ones
// that have not been popped yet.
func (s *Scheduler) Pending() int {
	return s.queue.Len()
}

func (s *Scheduler) invoke(t *Timer) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("scheduled callback panicked", "panic", r, "due_at", t.dueAt, "now", s.now)
		}
	}()
	t.callback()
}
