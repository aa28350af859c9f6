package pathfind

import "errors"

const NoPathMessage = "There is no way."

var (
	ErrNoPath             = errors.New("no path found")
	ErrInvalidDestination = errors.New("position outside loaded world")
)
