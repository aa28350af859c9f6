package movement

import (
	"slices"
	"testing"
	"time"

	"github.com/pixil98/go-testutil"
	"github.com/pixil98/go-tilesim/internal/scheduler"
	"github.com/pixil98/go-tilesim/internal/world"
)

const testTick = 50 * time.Millisecond

type fakeWorld struct {
	friction map[world.Position]float64
	occupied map[world.Position]bool
}

// openWorld is a walkable square of friction 100 tiles from 0,0 to size-1,size-1.
func openWorld(size int) *fakeWorld {
	w := &fakeWorld{
		friction: map[world.Position]float64{},
		occupied: map[world.Position]bool{},
	}
	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			w.friction[world.Position{X: x, Y: y}] = 100
		}
	}
	return w
}

func (w *fakeWorld) IsWalkable(pos world.Position) bool {
	_, ok := w.friction[pos]
	return ok
}

func (w *fakeWorld) IsOccupied(pos world.Position) bool {
	return w.occupied[pos]
}

func (w *fakeWorld) Friction(pos world.Position) float64 {
	return w.friction[pos]
}

type step struct {
	dir      world.Direction
	from, to world.Position
}

type recorder struct {
	steps    []step
	messages []string
}

func (r *recorder) Moved(d world.Direction, from, to world.Position) {
	r.steps = append(r.steps, step{dir: d, from: from, to: to})
}

func (r *recorder) SetCancelMessage(msg string) {
	r.messages = append(r.messages, msg)
}

type fakeRouter struct {
	pending int
	handled int
	cleared int
}

func (r *fakeRouter) ClearPathfindCache() {
	r.pending = 0
	r.cleared++
}

func (r *fakeRouter) HasPendingMoves() bool {
	return r.pending > 0
}

func (r *fakeRouter) HandlePathfind() bool {
	r.pending--
	r.handled++
	return true
}

func newTestController(w WorldQuery, start world.Position) (*Controller, *scheduler.Scheduler, *recorder) {
	s := scheduler.New(scheduler.WithTickInterval(testTick))
	rec := &recorder{}
	c := New(s, w, start, WithObserver(rec), WithNotifier(rec))
	return c, s, rec
}

func advance(s *scheduler.Scheduler, ticks int) {
	for i := 0; i < ticks; i++ {
		s.Advance(testTick)
	}
}

func TestStepDuration(t *testing.T) {
	tests := map[string]struct {
		speed    int
		friction float64
		exp      int
	}{
		"default speed plain ground": {speed: 220, friction: 100, exp: 4},
		"default speed mud":          {speed: 220, friction: 150, exp: 6},
		"slow":                       {speed: 100, friction: 100, exp: 8},
		"fast":                       {speed: 1000, friction: 200, exp: 3},
		"zero speed":                 {speed: 0, friction: 100, exp: 2000},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "ticks", StepDuration(tt.speed, tt.friction, testTick), tt.exp)
		})
	}
}

func TestController_HandleKey(t *testing.T) {
	c, s, rec := newTestController(openWorld(5), world.Position{X: 2, Y: 2})

	c.HandleKey(world.East)

	testutil.AssertEqual(t, "position", c.Position(), world.Position{X: 3, Y: 2})
	testutil.AssertEqual(t, "look", c.LookDirection(), world.East)
	testutil.AssertEqual(t, "moving", c.IsMoving(), true)
	testutil.AssertEqual(t, "confirmed", c.Confirmed(), false)
	testutil.AssertEqual(t, "steps", len(rec.steps), 1)
	testutil.AssertEqual(t, "step from", rec.steps[0].from, world.Position{X: 2, Y: 2})

	advance(s, 3)
	testutil.AssertEqual(t, "still moving", c.IsMoving(), true)
	advance(s, 1)
	testutil.AssertEqual(t, "unlocked", c.IsMoving(), false)

	c.HandleKey(world.East)
	testutil.AssertEqual(t, "unconfirmed ignored", c.Position(), world.Position{X: 3, Y: 2})

	c.ConfirmWalk()
	c.HandleKey(world.East)
	testutil.AssertEqual(t, "second step", c.Position(), world.Position{X: 4, Y: 2})
}

func TestController_Blocked(t *testing.T) {
	tests := map[string]struct {
		setup func(w *fakeWorld)
	}{
		"wall": {
			setup: func(w *fakeWorld) { delete(w.friction, world.Position{X: 1, Y: 0}) },
		},
		"creature": {
			setup: func(w *fakeWorld) { w.occupied[world.Position{X: 1, Y: 0}] = true },
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			w := openWorld(3)
			tt.setup(w)
			c, _, rec := newTestController(w, world.Position{X: 0, Y: 0})
			router := &fakeRouter{pending: 3}
			c.SetRouter(router)

			ok := c.MoveDirection(world.East)

			testutil.AssertEqual(t, "ok", ok, false)
			testutil.AssertEqual(t, "position", c.Position(), world.Position{X: 0, Y: 0})
			testutil.AssertEqual(t, "moving", c.IsMoving(), false)
			testutil.AssertEqual(t, "route cleared", router.HasPendingMoves(), false)
			if !slices.Equal(rec.messages, []string{BlockedMessage}) {
				t.Errorf("messages %v, expected [%s]", rec.messages, BlockedMessage)
			}
		})
	}
}

func TestController_Diagonal(t *testing.T) {
	c, s, _ := newTestController(openWorld(3), world.Position{X: 0, Y: 0})

	c.MoveDirection(world.SouthEast)
	advance(s, 7)
	testutil.AssertEqual(t, "still moving", c.IsMoving(), true)
	advance(s, 1)
	testutil.AssertEqual(t, "unlocked", c.IsMoving(), false)
}

func TestController_KeyBuffer(t *testing.T) {
	tests := map[string]struct {
		waitTicks int
		expPos    world.Position
	}{
		"too early": {waitTicks: 1, expPos: world.Position{X: 3, Y: 2}},
		"buffered":  {waitTicks: 2, expPos: world.Position{X: 3, Y: 3}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			c, s, _ := newTestController(openWorld(5), world.Position{X: 2, Y: 2})

			c.HandleKey(world.East)
			c.ConfirmWalk()
			advance(s, tt.waitTicks)
			c.HandleKey(world.South)
			advance(s, 4-tt.waitTicks)

			testutil.AssertEqual(t, "position", c.Position(), tt.expPos)
		})
	}
}

func TestController_DrainsRouterOnUnlock(t *testing.T) {
	c, s, _ := newTestController(openWorld(5), world.Position{X: 2, Y: 2})
	c.MoveDirection(world.North)

	router := &fakeRouter{pending: 2}
	c.SetRouter(router)

	advance(s, 4)
	testutil.AssertEqual(t, "handled", router.handled, 1)
	testutil.AssertEqual(t, "pending", router.pending, 1)
}

func TestController_OneStepPerClockValue(t *testing.T) {
	c, _, rec := newTestController(openWorld(5), world.Position{X: 2, Y: 2})

	testutil.AssertEqual(t, "first", c.MoveDirection(world.North), true)
	testutil.AssertEqual(t, "second", c.MoveDirection(world.North), false)
	testutil.AssertEqual(t, "steps", len(rec.steps), 1)
}

func TestController_Teleport(t *testing.T) {
	c, s, _ := newTestController(openWorld(5), world.Position{X: 0, Y: 0})
	router := &fakeRouter{pending: 4}
	c.SetRouter(router)

	c.Teleport(world.Position{X: 4, Y: 4})

	testutil.AssertEqual(t, "position", c.Position(), world.Position{X: 4, Y: 4})
	testutil.AssertEqual(t, "route cleared", router.HasPendingMoves(), false)
	testutil.AssertEqual(t, "locked", c.IsMoving(), true)
	testutil.AssertEqual(t, "fraction", c.MovingFraction(), 0.0)
	testutil.AssertEqual(t, "can move", c.CanMove(), false)

	advance(s, TeleportLockTicks-1)
	testutil.AssertEqual(t, "still locked", c.IsMoving(), true)
	advance(s, 1)
	testutil.AssertEqual(t, "unlocked", c.IsMoving(), false)
	testutil.AssertEqual(t, "can move", c.CanMove(), true)
}

func TestController_TeleportKeepsStepLock(t *testing.T) {
	c, s, _ := newTestController(openWorld(5), world.Position{X: 0, Y: 0})

	c.MoveDirection(world.East)
	c.Teleport(world.Position{X: 2, Y: 2})

	advance(s, 4)
	testutil.AssertEqual(t, "unlocked with step", c.IsMoving(), false)
	testutil.AssertEqual(t, "confirmed", c.Confirmed(), true)
}

func TestController_Turn(t *testing.T) {
	c, s, _ := newTestController(openWorld(5), world.Position{X: 2, Y: 2})

	c.Turn(world.West)
	testutil.AssertEqual(t, "idle turn", c.LookDirection(), world.West)

	c.MoveDirection(world.North)
	c.Turn(world.East)
	testutil.AssertEqual(t, "buffered", c.LookDirection(), world.North)

	advance(s, 4)
	testutil.AssertEqual(t, "applied", c.LookDirection(), world.East)
}

func TestController_MovingFraction(t *testing.T) {
	c, s, _ := newTestController(openWorld(5), world.Position{X: 2, Y: 2})
	testutil.AssertEqual(t, "idle", c.MovingFraction(), 0.0)

	c.MoveDirection(world.North)
	testutil.AssertEqual(t, "start", c.MovingFraction(), 1.0)
	advance(s, 2)
	testutil.AssertEqual(t, "half", c.MovingFraction(), 0.5)
}
