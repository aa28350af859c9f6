package pathfind

import (
	"slices"

	"github.com/pixil98/go-tilesim/internal/world"
)

// SetPathfindCache replaces the pending moves. An empty list clears them,
// otherwise the first move is handed to the sink straight away.
func (p *Pathfinder) SetPathfindCache(moves []world.Direction) {
	if len(moves) == 0 {
		p.moves = nil
		return
	}
	p.moves = slices.Clone(moves)
	p.HandlePathfind()
}

func (p *Pathfinder) ClearPathfindCache() {
	p.moves = nil
}

// NextMove pops the oldest pending move.
func (p *Pathfinder) NextMove() (world.Direction, bool) {
	if len(p.moves) == 0 {
		return 0, false
	}
	d := p.moves[0]
	p.moves = p.moves[1:]
	return d, true
}

func (p *Pathfinder) HasPendingMoves() bool {
	return len(p.moves) > 0
}

// PendingMoves returns a copy of the queued moves.
func (p *Pathfinder) PendingMoves() []world.Direction {
	return slices.Clone(p.moves)
}

// HandlePathfind forwards the next move to the sink if it can take one.
func (p *Pathfinder) HandlePathfind() bool {
	if p.sink == nil || !p.sink.CanMove() {
		return false
	}
	d, ok := p.NextMove()
	if !ok {
		return false
	}
	return p.sink.MoveDirection(d)
}
