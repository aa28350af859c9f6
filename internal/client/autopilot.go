package client

import "github.com/pixil98/go-tilesim/internal/world"

// Autopilot walks a session through a list of waypoints.
type Autopilot struct {
	waypoints []world.Position
	next      int
	loop      bool
}

// NewAutopilot visits waypoints in order. With loop set it starts over
// after the last one.
func NewAutopilot(waypoints []world.Position, loop bool) *Autopilot {
	return &Autopilot{
		waypoints: append([]world.Position(nil), waypoints...),
		loop:      loop,
	}
}

// Target returns the waypoint being walked to.
func (a *Autopilot) Target() (world.Position, bool) {
	if a.Done() {
		return world.Position{}, false
	}
	return a.waypoints[a.next], true
}

func (a *Autopilot) Done() bool {
	return a.next >= len(a.waypoints)
}

func (a *Autopilot) advance() {
	a.next++
	if a.loop && a.next >= len(a.waypoints) {
		a.next = 0
	}
}
