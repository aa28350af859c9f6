package movement

import (
	"log/slog"
	"time"

	"github.com/pixil98/go-tilesim/internal/scheduler"
	"github.com/pixil98/go-tilesim/internal/world"
)

const (
	DefaultSpeed = 220

	// Leniency is the remaining step fraction below which a key pressed
	// while moving is buffered instead of dropped.
	Leniency = 0.75

	TeleportLockTicks = 10

	BlockedMessage = "You cannot walk here."
)

// WorldQuery answers what the controller needs to know about the ground.
type WorldQuery interface {
	IsWalkable(pos world.Position) bool
	IsOccupied(pos world.Position) bool
	Friction(pos world.Position) float64
}

// Observer is told about every step the controller applies, typically to
// send the move to the server.
type Observer interface {
	Moved(d world.Direction, from, to world.Position)
}

type Notifier interface {
	SetCancelMessage(msg string)
}

// Router is the queue of pathfinding moves the controller drains.
type Router interface {
	ClearPathfindCache()
	HasPendingMoves() bool
	HandlePathfind() bool
}

// Controller owns the player's position and movement lock. Keyboard input
// and pathfinding moves both go through it.
type Controller struct {
	scheduler *scheduler.Scheduler
	world     WorldQuery
	router    Router
	observer  Observer
	notifier  Notifier

	speed    int
	position world.Position
	look     world.Direction

	lock       *scheduler.Timer
	teleported bool
	confirmed  bool

	lookBuffer    world.Direction
	hasLookBuffer bool
	keyBuffer     world.Direction
	hasKeyBuffer  bool

	lastStep time.Duration
	stepped  bool
}

func New(s *scheduler.Scheduler, query WorldQuery, start world.Position, opts ...ControllerOpt) *Controller {
	c := &Controller{
		scheduler: s,
		world:     query,
		speed:     DefaultSpeed,
		position:  start,
		look:      world.South,
		confirmed: true,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// SetRouter attaches the pathfinding queue after construction.
func (c *Controller) SetRouter(r Router) {
	c.router = r
}

func (c *Controller) SetSpeed(speed int) {
	c.speed = speed
}

func (c *Controller) Position() world.Position {
	return c.position
}

func (c *Controller) LookDirection() world.Direction {
	return c.look
}

func (c *Controller) IsMoving() bool {
	return c.lock != nil
}

// Confirmed reports whether the server acknowledged the last step.
func (c *Controller) Confirmed() bool {
	return c.confirmed
}

// MovingFraction returns the remaining fraction of the current step in
// [0, 1]. It is 0 when idle or just teleported.
func (c *Controller) MovingFraction() float64 {
	if c.lock == nil || c.teleported {
		return 0
	}
	return scheduler.Clamp01(c.lock.RemainingFraction())
}

// HandleKey processes a held direction key for this tick.
func (c *Controller) HandleKey(d world.Direction) {
	c.clearRoute()
	if !c.confirmed {
		return
	}
	if c.IsMoving() {
		if c.MovingFraction() < Leniency {
			c.keyBuffer = d
			c.hasKeyBuffer = true
		}
		return
	}
	c.step(d)
}

// CanMove reports whether a step would be accepted right now.
func (c *Controller) CanMove() bool {
	return c.confirmed && !c.IsMoving()
}

// MoveDirection steps one tile in direction d.
func (c *Controller) MoveDirection(d world.Direction) bool {
	return c.step(d)
}

// Turn changes the look direction, or buffers it until the current step ends.
func (c *Controller) Turn(d world.Direction) {
	if c.IsMoving() {
		c.lookBuffer = d
		c.hasLookBuffer = true
		return
	}
	c.look = d
}

// ConfirmWalk records the server's acknowledgement of the last step and
// resumes pending movement if idle.
func (c *Controller) ConfirmWalk() {
	c.confirmed = true
	if !c.IsMoving() {
		c.resume()
	}
}

// Teleport applies a server position correction.
func (c *Controller) Teleport(pos world.Position) {
	c.clearRoute()
	c.hasKeyBuffer = false
	c.position = pos
	c.teleported = true
	c.confirmed = true

	if c.lock == nil {
		c.lock = c.scheduler.AddEvent(c.unlock, TeleportLockTicks)
	}
	slog.Debug("player teleported", "position", pos)
}

func (c *Controller) step(d world.Direction) bool {
	now := c.scheduler.Now()
	if c.stepped && c.lastStep == now {
		return false
	}

	to := c.position.Step(d)
	if !c.world.IsWalkable(to) || c.world.IsOccupied(to) {
		if c.notifier != nil {
			c.notifier.SetCancelMessage(BlockedMessage)
		}
		c.clearRoute()
		return false
	}

	ticks := StepDuration(c.speed, c.world.Friction(to), c.scheduler.TickInterval())
	if d.IsDiagonal() {
		ticks *= 2
	}

	if c.lock != nil {
		c.lock.Cancel()
	}
	c.lock = c.scheduler.AddEvent(c.unlock, ticks)
	c.teleported = false

	from := c.position
	c.position = to
	c.look = d
	c.confirmed = false
	c.lastStep = now
	c.stepped = true

	if c.observer != nil {
		c.observer.Moved(d, from, to)
	}
	return true
}

func (c *Controller) unlock() {
	if c.hasLookBuffer {
		c.look = c.lookBuffer
		c.hasLookBuffer = false
	}
	c.lock = nil
	c.teleported = false
	c.resume()
}

// resume drains one pathfinding move, or replays the buffered key.
func (c *Controller) resume() {
	if c.router != nil && c.router.HasPendingMoves() {
		c.router.HandlePathfind()
		return
	}
	if c.hasKeyBuffer && c.confirmed {
		d := c.keyBuffer
		c.hasKeyBuffer = false
		c.step(d)
	}
}

func (c *Controller) clearRoute() {
	if c.router != nil {
		c.router.ClearPathfindCache()
	}
}
