package pathfind

import "github.com/pixil98/go-tilesim/internal/world"

// NodeID addresses a node in a Graph. Ids are stable while the tile stays
// loaded and are recycled after it is removed.
type NodeID int

const NoNode NodeID = -1

type node struct {
	pos        world.Position
	cost       float64
	neighbours []NodeID
	live       bool
}

// Graph is an arena of walkable tiles linked to their up to 8 neighbours on
// the same floor.
type Graph struct {
	nodes []node
	index map[world.Position]NodeID
	free  []NodeID
}

func NewGraph() *Graph {
	return &Graph{
		index: make(map[world.Position]NodeID),
	}
}

// LoadChunk adds every tile of c, linking them to tiles already loaded.
func (g *Graph) LoadChunk(c world.Chunk) {
	for _, t := range c.Tiles {
		g.AddTile(t.Position, t.Friction)
	}
}

// AddTile adds a walkable tile with the given terrain cost, or updates the
// cost if the tile is already loaded.
func (g *Graph) AddTile(pos world.Position, cost float64) NodeID {
	if id, ok := g.index[pos]; ok {
		g.nodes[id].cost = cost
		return id
	}

	var id NodeID
	if n := len(g.free); n > 0 {
		id = g.free[n-1]
		g.free = g.free[:n-1]
	} else {
		id = NodeID(len(g.nodes))
		g.nodes = append(g.nodes, node{})
	}

	g.nodes[id] = node{pos: pos, cost: cost, live: true}
	g.index[pos] = id

	for _, d := range world.AllDirections {
		nid, ok := g.index[pos.Step(d)]
		if !ok {
			continue
		}
		g.nodes[id].neighbours = append(g.nodes[id].neighbours, nid)
		g.nodes[nid].neighbours = append(g.nodes[nid].neighbours, id)
	}

	return id
}

// RemoveTile unlinks and forgets the tile at pos. It returns false if no
// tile was loaded there.
func (g *Graph) RemoveTile(pos world.Position) bool {
	id, ok := g.index[pos]
	if !ok {
		return false
	}

	for _, nid := range g.nodes[id].neighbours {
		n := &g.nodes[nid]
		for i, other := range n.neighbours {
			if other == id {
				n.neighbours = append(n.neighbours[:i], n.neighbours[i+1:]...)
				break
			}
		}
	}

	g.nodes[id] = node{}
	delete(g.index, pos)
	g.free = append(g.free, id)
	return true
}

// Node returns the node standing on pos.
func (g *Graph) Node(pos world.Position) (NodeID, bool) {
	id, ok := g.index[pos]
	return id, ok
}

// Contains reports whether id refers to a loaded tile.
func (g *Graph) Contains(id NodeID) bool {
	return id >= 0 && int(id) < len(g.nodes) && g.nodes[id].live
}

func (g *Graph) Position(id NodeID) world.Position {
	return g.nodes[id].pos
}

// Cost returns the terrain cost of entering id.
func (g *Graph) Cost(id NodeID) float64 {
	return g.nodes[id].cost
}

func (g *Graph) Neighbours(id NodeID) []NodeID {
	return g.nodes[id].neighbours
}

// Len returns the number of loaded tiles.
func (g *Graph) Len() int {
	return len(g.index)
}

// size is the arena length, which bounds every NodeID handed out.
func (g *Graph) size() int {
	return len(g.nodes)
}
