package scheduler

import (
	"math"
	"testing"
	"time"

	"github.com/pixil98/go-testutil"
)

func TestTimer_Remaining(t *testing.T) {
	s, _ := newTestScheduler()
	timer := s.AddEvent(func() {}, 4)

	tests := map[string]struct {
		advance     time.Duration
		expMillis   float64
		expSeconds  float64
		expFraction float64
	}{
		"at creation": {
			advance:     0,
			expMillis:   200,
			expSeconds:  0.2,
			expFraction: 1,
		},
		"half way": {
			advance:     2 * testTick,
			expMillis:   100,
			expSeconds:  0.1,
			expFraction: 0.5,
		},
		"due": {
			advance:     2 * testTick,
			expMillis:   0,
			expSeconds:  0,
			expFraction: 0,
		},
		"past due": {
			advance:     testTick,
			expMillis:   -50,
			expSeconds:  -0.05,
			expFraction: -0.25,
		},
	}

	// Cases run in declaration order against one timer.
	for _, name := range []string{"at creation", "half way", "due", "past due"} {
		tt := tests[name]
		t.Run(name, func(t *testing.T) {
			s.Advance(tt.advance)
			assertClose(t, "millis", timer.RemainingMillis(), tt.expMillis)
			assertClose(t, "seconds", timer.RemainingSeconds(), tt.expSeconds)
			assertClose(t, "fraction", timer.RemainingFraction(), tt.expFraction)
		})
	}
}

func TestTimer_FractionMonotonic(t *testing.T) {
	s, _ := newTestScheduler()
	timer := s.AddEvent(func() {}, 10)

	assertClose(t, "fraction at creation", timer.RemainingFraction(), 1)
	prev := timer.RemainingFraction()
	for i := 0; i < 10; i++ {
		s.Advance(testTick / 2)
		s.Advance(testTick / 2)
		f := timer.RemainingFraction()
		if f > prev {
			t.Fatalf("fraction increased from %v to %v", prev, f)
		}
		prev = f
	}
	assertClose(t, "fraction when due", prev, 0)
}

func TestTimer_ZeroLengthFraction(t *testing.T) {
	s, _ := newTestScheduler()
	timer := s.AddEvent(func() {}, 0)

	testutil.AssertEqual(t, "fraction", timer.RemainingFraction(), 0.0)
}

func TestTimer_Complete(t *testing.T) {
	s, _ := newTestScheduler()
	count := 0
	timer := s.AddEvent(func() { count++ }, 5)

	testutil.AssertEqual(t, "completed", timer.Complete(), true)
	testutil.AssertEqual(t, "count after complete", count, 1)

	s.Advance(10 * testTick)
	testutil.AssertEqual(t, "count after tick", count, 1)

	testutil.AssertEqual(t, "completed twice", timer.Complete(), false)
	testutil.AssertEqual(t, "count after second complete", count, 1)
}

func TestTimer_CompleteAfterFire(t *testing.T) {
	s, _ := newTestScheduler()
	count := 0
	timer := s.AddEvent(func() { count++ }, 1)
	s.Advance(testTick)

	testutil.AssertEqual(t, "completed", timer.Complete(), false)
	testutil.AssertEqual(t, "count", count, 1)
}

func TestTimer_CompletePanicIsolated(t *testing.T) {
	s, _ := newTestScheduler()
	timer := s.AddEvent(func() { panic("boom") }, 1)

	testutil.AssertEqual(t, "completed", timer.Complete(), true)
}

func TestTimer_ExtendTo(t *testing.T) {
	s, _ := newTestScheduler()
	count := 0
	timer := s.AddEvent(func() { count++ }, 2)

	s.Advance(testTick)
	extended := timer.ExtendTo(3)

	testutil.AssertEqual(t, "old cancelled", timer.Cancelled(), true)
	testutil.AssertEqual(t, "new due at", extended.DueAt(), 4*testTick)
	testutil.AssertEqual(t, "new length", extended.Length(), 3*testTick)

	s.Advance(2 * testTick)
	testutil.AssertEqual(t, "count at old due time", count, 0)

	s.Advance(testTick)
	testutil.AssertEqual(t, "count at new due time", count, 1)
}

func TestClamp01(t *testing.T) {
	tests := map[string]struct {
		in  float64
		exp float64
	}{
		"negative": {in: -0.5, exp: 0},
		"inside":   {in: 0.25, exp: 0.25},
		"above":    {in: 3, exp: 1},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "clamped", Clamp01(tt.in), tt.exp)
		})
	}
}

func assertClose(t *testing.T, name string, got, exp float64) {
	t.Helper()
	if math.Abs(got-exp) > 1e-9 {
		t.Errorf("%s: got %v, expected %v", name, got, exp)
	}
}
