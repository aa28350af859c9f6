package command

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pixil98/go-errors"

	"github.com/pixil98/go-tilesim/internal/client"
	"github.com/pixil98/go-tilesim/internal/scheduler"
	"github.com/pixil98/go-tilesim/internal/spellbook"
	"github.com/pixil98/go-tilesim/internal/storage"
	"github.com/pixil98/go-tilesim/internal/world"
)

type ClientConfig struct {
	Map       storage.Ref[*world.Map] `json:"map"`
	Start     *world.Position         `json:"start"`
	Speed     int                     `json:"speed"`
	Spells    []spellbook.SpellID     `json:"spells"`
	InboxSize int                     `json:"inbox_size"`

	// Autopilot
	Waypoints []world.Position `json:"waypoints"`
	Loop      bool             `json:"loop"`

	// AutoConfirm acknowledges every step over the bus, standing in for the
	// game server.
	AutoConfirm bool `json:"auto_confirm"`
}

func (c *ClientConfig) validate() error {
	el := errors.NewErrorList()

	if err := c.Map.Validate(); err != nil {
		el.Add(fmt.Errorf("client map: %w", err))
	}
	if c.Speed < 0 {
		el.Add(fmt.Errorf("client speed must not be negative"))
	}
	if c.InboxSize < 0 {
		el.Add(fmt.Errorf("client inbox_size must not be negative"))
	}
	if c.Loop && len(c.Waypoints) == 0 {
		el.Add(fmt.Errorf("client loop requires waypoints"))
	}

	return el.Err()
}

func (c *ClientConfig) buildSession(maps storage.Storer[*world.Map], transport client.Transport, id uuid.UUID, tick time.Duration) (*client.Session, error) {
	if err := c.Map.Resolve(maps); err != nil {
		return nil, fmt.Errorf("resolving map: %w", err)
	}
	m, _ := c.Map.Get()

	opts := []client.SessionOpt{
		client.WithID(id),
		client.WithSpells(c.Spells...),
		client.WithInboxSize(c.InboxSize),
		client.WithSchedulerOpts(scheduler.WithTickInterval(tick)),
	}
	if c.Start != nil {
		opts = append(opts, client.WithStart(*c.Start))
	}
	if c.Speed > 0 {
		opts = append(opts, client.WithSpeed(c.Speed))
	}
	if len(c.Waypoints) > 0 {
		opts = append(opts, client.WithAutopilot(client.NewAutopilot(c.Waypoints, c.Loop)))
	}

	return client.NewSession(m, transport, opts...)
}
