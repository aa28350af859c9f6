package movement

import (
	"math"
	"time"
)

// Step speed curve constants.
const (
	curveA = 857.36
	curveB = 261.29
	curveC = -4795.009
)

// StepSpeed converts a creature speed into tiles per thousand friction
// units, never less than 1.
func StepSpeed(speed int) float64 {
	if speed < 0 {
		speed = 0
	}
	return math.Max(1, math.Round(curveA*math.Log(float64(speed)+curveB)+curveC))
}

// StepDuration returns how many ticks one orthogonal step onto ground of
// the given friction takes. It is at least one tick.
func StepDuration(speed int, friction float64, tickInterval time.Duration) int {
	if tickInterval <= 0 {
		return 1
	}
	ms := math.Floor(1000 * friction / StepSpeed(speed))
	ticks := int(math.Ceil(ms / (float64(tickInterval) / float64(time.Millisecond))))
	return max(1, ticks)
}
