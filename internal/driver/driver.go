package driver

import (
	"context"
	"errors"
	"log/slog"
	"time"

	goerrors "github.com/pixil98/go-errors"

	"github.com/pixil98/go-tilesim/internal/notice"
	"github.com/pixil98/go-tilesim/internal/scheduler"
)

const (
	DefaultTickLength = scheduler.DefaultTickInterval
)

type Manager interface {
	Tick(context.Context) error
}

// FrameDriver calls Tick on every manager once per frame.
type FrameDriver struct {
	tickLength time.Duration
	managers   []Manager
	frames     int64
}

func NewFrameDriver(managers []Manager, opts ...FrameDriverOpt) *FrameDriver {
	d := &FrameDriver{
		tickLength: DefaultTickLength,
		managers:   managers,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

func (d *FrameDriver) Start(ctx context.Context) error {
	ticker := time.NewTicker(d.tickLength)
	defer ticker.Stop()

	slog.InfoContext(ctx, "frame driver started", "tick_length", d.tickLength, "managers", len(d.managers))
	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "frame driver stopped", "frames", d.frames)
			return nil
		case <-ticker.C:
			err := d.Tick(ctx)
			if err != nil {
				return err
			}
		}
	}
}

// Tick runs one frame. A manager failing with a notice.UserError is logged
// and does not stop the frame; any other failure is returned after every
// manager has run.
func (d *FrameDriver) Tick(ctx context.Context) error {
	d.frames++

	el := goerrors.NewErrorList()
	for _, m := range d.managers {
		err := m.Tick(ctx)
		if err == nil {
			continue
		}

		var ue *notice.UserError
		if errors.As(err, &ue) {
			slog.InfoContext(ctx, "user error during frame", "frame", d.frames, "message", ue.Message)
			continue
		}
		el.Add(err)
	}
	return el.Err()
}

// Frames returns the number of frames run so far.
func (d *FrameDriver) Frames() int64 {
	return d.frames
}
