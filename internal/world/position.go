package world

import "fmt"

// Position is a tile coordinate. Z is the floor.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

func (p Position) String() string {
	return fmt.Sprintf("%d, %d, %d", p.X, p.Y, p.Z)
}

// Step returns the position one tile away in direction d.
func (p Position) Step(d Direction) Position {
	dx, dy := d.Delta()
	return Position{X: p.X + dx, Y: p.Y + dy, Z: p.Z}
}

// DirectionTo returns the direction of an adjacent position on the same floor.
// It returns false if to is not one step away.
func (p Position) DirectionTo(to Position) (Direction, bool) {
	if p.Z != to.Z {
		return 0, false
	}
	dx, dy := to.X-p.X, to.Y-p.Y
	for _, d := range AllDirections {
		ddx, ddy := d.Delta()
		if ddx == dx && ddy == dy {
			return d, true
		}
	}
	return 0, false
}

// IsDiagonal reports whether to is diagonally adjacent to p.
func (p Position) IsDiagonal(to Position) bool {
	return abs(p.X-to.X) == 1 && abs(p.Y-to.Y) == 1
}

// Besides reports whether to is on the same floor and within one tile of p.
func (p Position) Besides(to Position) bool {
	if p.Z != to.Z {
		return false
	}
	return max(abs(p.X-to.X), abs(p.Y-to.Y)) <= 1
}

// Manhattan returns the grid distance between p and to, ignoring floors.
func (p Position) Manhattan(to Position) int {
	return abs(p.X-to.X) + abs(p.Y-to.Y)
}

func abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}
