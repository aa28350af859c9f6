package pathfind

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/pixil98/go-tilesim/internal/pqueue"
	"github.com/pixil98/go-tilesim/internal/world"
)

// DefaultDiagonalPenalty makes a diagonal step cost more than the two
// orthogonal steps it replaces, so orthogonal routes win ties.
var DefaultDiagonalPenalty = 2 * math.Sqrt2

// WorldQuery answers live questions about the world during a search.
type WorldQuery interface {
	IsOccupied(pos world.Position) bool
}

// MovementSink receives the moves drained from the queue.
type MovementSink interface {
	CanMove() bool
	MoveDirection(d world.Direction) bool
}

// Notifier shows short user facing messages.
type Notifier interface {
	SetCancelMessage(msg string)
}

// Result describes a single search. Path excludes the start node.
type Result struct {
	Path     []NodeID
	Cost     float64
	Expanded int
	Found    bool
}

// scratch is per node search state. An entry is only meaningful when its
// generation matches the pathfinder's current one.
type scratch struct {
	generation uint32
	visited    bool
	closed     bool
	heuristic  bool
	g          float64
	h          float64
	f          float64
	parent     NodeID
	seq        uint64
}

type Pathfinder struct {
	graph    *Graph
	world    WorldQuery
	sink     MovementSink
	notifier Notifier

	diagonalPenalty float64

	scratch    []scratch
	generation uint32
	seq        uint64
	touched    int
	open       *pqueue.Queue[NodeID]

	moves []world.Direction
}

func New(graph *Graph, query WorldQuery, sink MovementSink, opts ...PathfinderOpt) *Pathfinder {
	p := &Pathfinder{
		graph:           graph,
		world:           query,
		sink:            sink,
		diagonalPenalty: DefaultDiagonalPenalty,
	}
	p.open = pqueue.New(p.lower)

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// SetSink replaces the movement sink moves are forwarded to.
func (p *Pathfinder) SetSink(sink MovementSink) {
	p.sink = sink
}

func (p *Pathfinder) lower(a, b NodeID) bool {
	sa, sb := &p.scratch[a], &p.scratch[b]
	if sa.f != sb.f {
		return sa.f < sb.f
	}
	return sa.seq < sb.seq
}

// reset starts a new search generation. Nothing is walked, so the cost of
// a search is proportional to the nodes it touches.
func (p *Pathfinder) reset() {
	if n := p.graph.size(); len(p.scratch) < n {
		p.scratch = append(p.scratch, make([]scratch, n-len(p.scratch))...)
	}
	p.generation++
	if p.generation == 0 {
		for i := range p.scratch {
			p.scratch[i] = scratch{}
		}
		p.generation = 1
	}
	p.seq = 0
	p.touched = 0
	p.open.Clear()
}

func (p *Pathfinder) touch(id NodeID) *scratch {
	s := &p.scratch[id]
	if s.generation != p.generation {
		*s = scratch{generation: p.generation, parent: NoNode}
		p.touched++
	}
	return s
}

// Touched returns how many nodes the last search stamped.
func (p *Pathfinder) Touched() int {
	return p.touched
}

func (p *Pathfinder) estimate(s *scratch, from, to NodeID) float64 {
	if !s.heuristic {
		s.h = float64(p.graph.Position(from).Manhattan(p.graph.Position(to)))
		s.heuristic = true
	}
	return s.h
}

// Search runs A* from one node to another over the currently loaded graph,
// treating occupied tiles as blocked.
func (p *Pathfinder) Search(from, to NodeID) Result {
	p.reset()
	if !p.graph.Contains(from) || !p.graph.Contains(to) {
		return Result{}
	}

	start := p.touch(from)
	start.visited = true
	start.f = p.estimate(start, from, to)
	p.open.Push(from)

	expanded := 0
	for {
		current, ok := p.open.Pop()
		if !ok {
			return Result{Expanded: expanded}
		}

		cs := &p.scratch[current]
		if current == to {
			return Result{
				Path:     p.pathTo(current),
				Cost:     cs.g,
				Expanded: expanded,
				Found:    true,
			}
		}

		cs.closed = true
		expanded++
		cpos := p.graph.Position(current)

		for _, n := range p.graph.Neighbours(current) {
			ns := p.touch(n)
			if ns.closed {
				continue
			}
			npos := p.graph.Position(n)
			if p.world != nil && p.world.IsOccupied(npos) {
				continue
			}

			step := p.graph.Cost(n)
			if cpos.IsDiagonal(npos) {
				step *= p.diagonalPenalty
			}

			g := cs.g + step
			if ns.visited && g >= ns.g {
				continue
			}

			first := !ns.visited
			ns.visited = true
			ns.parent = current
			ns.g = g
			ns.f = g + p.estimate(ns, n, to)

			if first {
				p.seq++
				ns.seq = p.seq
				p.open.Push(n)
			} else {
				p.open.Rescore(n)
			}
		}
	}
}

func (p *Pathfinder) pathTo(id NodeID) []NodeID {
	var path []NodeID
	for cur := id; p.scratch[cur].parent != NoNode; cur = p.scratch[cur].parent {
		path = append(path, cur)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// FindPath searches from begin to end and replaces the move queue with the
// result. When no route exists the queue is left alone and the user is told.
func (p *Pathfinder) FindPath(begin, end world.Position) error {
	if begin == end {
		p.noPath()
		return fmt.Errorf("%w: already at %s", ErrNoPath, end)
	}

	from, ok := p.graph.Node(begin)
	if !ok {
		p.noPath()
		return fmt.Errorf("%w: %s", ErrInvalidDestination, begin)
	}
	to, ok := p.graph.Node(end)
	if !ok {
		p.noPath()
		return fmt.Errorf("%w: %s", ErrInvalidDestination, end)
	}

	res := p.Search(from, to)
	if !res.Found || len(res.Path) == 0 {
		p.noPath()
		return fmt.Errorf("%w: %s to %s", ErrNoPath, begin, end)
	}

	moves := p.directions(begin, res.Path)
	if len(moves) == 0 {
		p.noPath()
		return fmt.Errorf("%w: %s to %s cuts a blocked corner", ErrNoPath, begin, end)
	}

	slog.Debug("path found", "from", begin, "to", end, "cost", res.Cost, "expanded", res.Expanded, "moves", len(moves))
	p.SetPathfindCache(moves)
	return nil
}

func (p *Pathfinder) noPath() {
	if p.notifier != nil {
		p.notifier.SetCancelMessage(NoPathMessage)
	}
}

// directions turns a node path into single tile moves. A diagonal step is
// split into two orthogonal ones through a free corner, horizontal first.
// If neither corner is free the moves stop there.
func (p *Pathfinder) directions(begin world.Position, path []NodeID) []world.Direction {
	moves := make([]world.Direction, 0, len(path))
	prev := begin

	for _, id := range path {
		pos := p.graph.Position(id)
		d, ok := prev.DirectionTo(pos)
		if !ok {
			break
		}

		if h, v, diagonal := d.Split(); diagonal {
			switch {
			case p.passable(prev.Step(h)):
				moves = append(moves, h, v)
			case p.passable(prev.Step(v)):
				moves = append(moves, v, h)
			default:
				return moves
			}
		} else {
			moves = append(moves, d)
		}
		prev = pos
	}

	return moves
}

func (p *Pathfinder) passable(pos world.Position) bool {
	if _, ok := p.graph.Node(pos); !ok {
		return false
	}
	return p.world == nil || !p.world.IsOccupied(pos)
}
