package world

// Occupancy tracks which tiles hold creatures, as reported by the server.
type Occupancy struct {
	creatures map[string]Position
	counts    map[Position]int
}

func NewOccupancy() *Occupancy {
	return &Occupancy{
		creatures: make(map[string]Position),
		counts:    make(map[Position]int),
	}
}

// Place moves creature id to pos, adding it if unknown.
func (o *Occupancy) Place(id string, pos Position) {
	if prev, ok := o.creatures[id]; ok {
		if prev == pos {
			return
		}
		o.release(prev)
	}
	o.creatures[id] = pos
	o.counts[pos]++
}

// Remove forgets creature id. It returns false if the creature was unknown.
func (o *Occupancy) Remove(id string) bool {
	prev, ok := o.creatures[id]
	if !ok {
		return false
	}
	delete(o.creatures, id)
	o.release(prev)
	return true
}

// Position returns where creature id stands.
func (o *Occupancy) Position(id string) (Position, bool) {
	pos, ok := o.creatures[id]
	return pos, ok
}

func (o *Occupancy) IsOccupied(pos Position) bool {
	return o.counts[pos] > 0
}

func (o *Occupancy) Len() int {
	return len(o.creatures)
}

func (o *Occupancy) release(pos Position) {
	o.counts[pos]--
	if o.counts[pos] <= 0 {
		delete(o.counts, pos)
	}
}
