package driver

import "time"

type FrameDriverOpt func(*FrameDriver)

// WithTickLength sets the frame interval. Non-positive values are ignored.
func WithTickLength(tickLength time.Duration) FrameDriverOpt {
	return func(d *FrameDriver) {
		if tickLength > 0 {
			d.tickLength = tickLength
		}
	}
}
