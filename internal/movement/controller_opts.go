package movement

type ControllerOpt func(*Controller)

// WithSpeed sets the creature speed used for step durations.
func WithSpeed(speed int) ControllerOpt {
	return func(c *Controller) {
		c.speed = speed
	}
}

func WithObserver(o Observer) ControllerOpt {
	return func(c *Controller) {
		c.observer = o
	}
}

func WithNotifier(n Notifier) ControllerOpt {
	return func(c *Controller) {
		c.notifier = n
	}
}

func WithRouter(r Router) ControllerOpt {
	return func(c *Controller) {
		c.router = r
	}
}
