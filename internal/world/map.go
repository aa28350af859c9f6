package world

import (
	"fmt"
	"slices"

	"github.com/pixil98/go-errors"
)

const (
	DefaultChunkSize = 16
	DefaultFriction  = 100

	// Symbols that never produce a walkable tile.
	SymbolWall = '#'
	SymbolVoid = ' '
)

// Map is the walkable layout of a world, stored as an asset.
type Map struct {
	Name    string             `json:"name"`
	Terrain map[string]float64 `json:"terrain"` // symbol -> friction
	Floors  []Floor            `json:"floors"`
}

// Floor is one z level of a map drawn as rows of symbols.
type Floor struct {
	Z    int      `json:"z"`
	Rows []string `json:"rows"`
}

// Tile is one walkable tile and the friction of its ground.
type Tile struct {
	Position Position
	Friction float64
}

// Chunk is a square block of tiles delivered to the client together.
type Chunk struct {
	Origin Position
	Size   int
	Tiles  []Tile
}

// Validate satisfies storage.ValidatingSpec.
func (m *Map) Validate() error {
	if m == nil {
		return fmt.Errorf("map is required")
	}

	el := errors.NewErrorList()

	if len(m.Floors) == 0 {
		el.Add(fmt.Errorf("at least one floor is required"))
	}

	for sym, friction := range m.Terrain {
		switch {
		case len([]rune(sym)) != 1:
			el.Add(fmt.Errorf("terrain symbol %q must be a single character", sym))
		case []rune(sym)[0] == SymbolWall || []rune(sym)[0] == SymbolVoid:
			el.Add(fmt.Errorf("terrain symbol %q is reserved", sym))
		case friction <= 0:
			el.Add(fmt.Errorf("terrain %q: friction must be positive", sym))
		}
	}

	seen := map[int]bool{}
	for i, f := range m.Floors {
		if seen[f.Z] {
			el.Add(fmt.Errorf("floor %d: duplicate z %d", i, f.Z))
		}
		seen[f.Z] = true

		for y, row := range f.Rows {
			for x, r := range []rune(row) {
				if r == SymbolWall || r == SymbolVoid {
					continue
				}
				if _, ok := m.Terrain[string(r)]; !ok {
					el.Add(fmt.Errorf("floor %d: unknown symbol %q at %d,%d", f.Z, r, x, y))
				}
			}
		}
	}

	return el.Err()
}

// Tiles returns every walkable tile of the map.
func (m *Map) Tiles() []Tile {
	var tiles []Tile
	for _, f := range m.Floors {
		for y, row := range f.Rows {
			for x, r := range []rune(row) {
				friction, ok := m.friction(r)
				if !ok {
					continue
				}
				tiles = append(tiles, Tile{
					Position: Position{X: x, Y: y, Z: f.Z},
					Friction: friction,
				})
			}
		}
	}
	return tiles
}

// Chunks groups the walkable tiles into square chunks of the given size,
// ordered by floor then row then column.
func (m *Map) Chunks(size int) []Chunk {
	if size <= 0 {
		size = DefaultChunkSize
	}

	byOrigin := map[Position]*Chunk{}
	for _, t := range m.Tiles() {
		origin := Position{
			X: floorDiv(t.Position.X, size) * size,
			Y: floorDiv(t.Position.Y, size) * size,
			Z: t.Position.Z,
		}
		c, ok := byOrigin[origin]
		if !ok {
			c = &Chunk{Origin: origin, Size: size}
			byOrigin[origin] = c
		}
		c.Tiles = append(c.Tiles, t)
	}

	chunks := make([]Chunk, 0, len(byOrigin))
	for _, c := range byOrigin {
		chunks = append(chunks, *c)
	}
	slices.SortFunc(chunks, func(a, b Chunk) int {
		if a.Origin.Z != b.Origin.Z {
			return a.Origin.Z - b.Origin.Z
		}
		if a.Origin.Y != b.Origin.Y {
			return a.Origin.Y - b.Origin.Y
		}
		return a.Origin.X - b.Origin.X
	})
	return chunks
}

func (m *Map) friction(r rune) (float64, bool) {
	if r == SymbolWall || r == SymbolVoid {
		return 0, false
	}
	f, ok := m.Terrain[string(r)]
	return f, ok
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}
