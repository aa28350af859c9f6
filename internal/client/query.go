package client

import (
	"github.com/pixil98/go-tilesim/internal/pathfind"
	"github.com/pixil98/go-tilesim/internal/world"
)

// worldQuery answers ground questions from the loaded graph and the
// creatures the server reported.
type worldQuery struct {
	graph     *pathfind.Graph
	occupancy *world.Occupancy
}

func (q *worldQuery) IsWalkable(pos world.Position) bool {
	_, ok := q.graph.Node(pos)
	return ok
}

func (q *worldQuery) IsOccupied(pos world.Position) bool {
	return q.occupancy.IsOccupied(pos)
}

func (q *worldQuery) Friction(pos world.Position) float64 {
	id, ok := q.graph.Node(pos)
	if !ok {
		return world.DefaultFriction
	}
	return q.graph.Cost(id)
}
