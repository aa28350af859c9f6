package pathfind

type PathfinderOpt func(*Pathfinder)

// WithDiagonalPenalty overrides the cost multiplier applied to diagonal steps.
func WithDiagonalPenalty(penalty float64) PathfinderOpt {
	return func(p *Pathfinder) {
		if penalty > 0 {
			p.diagonalPenalty = penalty
		}
	}
}

// WithNotifier sets where user facing failures such as "There is no way." go.
func WithNotifier(n Notifier) PathfinderOpt {
	return func(p *Pathfinder) {
		p.notifier = n
	}
}
