package world

import "fmt"

type Direction int

const (
	North Direction = iota
	East
	South
	West
	NorthEast
	SouthEast
	SouthWest
	NorthWest
)

// AllDirections lists the eight neighbour directions, cardinals first.
var AllDirections = [...]Direction{North, East, South, West, NorthEast, SouthEast, SouthWest, NorthWest}

var directionNames = map[Direction]string{
	North:     "north",
	East:      "east",
	South:     "south",
	West:      "west",
	NorthEast: "northeast",
	SouthEast: "southeast",
	SouthWest: "southwest",
	NorthWest: "northwest",
}

// Delta returns the x and y offset of one step in d. Y grows southwards.
func (d Direction) Delta() (int, int) {
	switch d {
	case North:
		return 0, -1
	case East:
		return 1, 0
	case South:
		return 0, 1
	case West:
		return -1, 0
	case NorthEast:
		return 1, -1
	case SouthEast:
		return 1, 1
	case SouthWest:
		return -1, 1
	case NorthWest:
		return -1, -1
	default:
		return 0, 0
	}
}

func (d Direction) IsDiagonal() bool {
	return d >= NorthEast && d <= NorthWest
}

// Split breaks a diagonal direction into its horizontal and vertical parts.
func (d Direction) Split() (horizontal, vertical Direction, ok bool) {
	switch d {
	case NorthEast:
		return East, North, true
	case SouthEast:
		return East, South, true
	case SouthWest:
		return West, South, true
	case NorthWest:
		return West, North, true
	default:
		return d, d, false
	}
}

func (d Direction) String() string {
	if name, ok := directionNames[d]; ok {
		return name
	}
	return fmt.Sprintf("direction(%d)", int(d))
}

func (d Direction) MarshalText() ([]byte, error) {
	name, ok := directionNames[d]
	if !ok {
		return nil, fmt.Errorf("unknown direction: %d", int(d))
	}
	return []byte(name), nil
}

func (d *Direction) UnmarshalText(text []byte) error {
	for dir, name := range directionNames {
		if name == string(text) {
			*d = dir
			return nil
		}
	}
	return fmt.Errorf("unknown direction: %s", text)
}
