package spellbook

import (
	"github.com/pixil98/go-tilesim/internal/scheduler"
)

// Spell is the timing a cast bar needs. Channelled spells use ChannelTicks
// when CastTicks is zero.
type Spell struct {
	ID           SpellID `json:"id"`
	CastTicks    int     `json:"cast_ticks"`
	ChannelTicks int     `json:"channel_ticks"`
}

func (s Spell) duration() int {
	if s.CastTicks > 0 {
		return s.CastTicks
	}
	return s.ChannelTicks
}

// Caster drives the cast bar of the spell being cast.
type Caster struct {
	scheduler *scheduler.Scheduler
	timer     *scheduler.Timer
	spell     Spell
}

func NewCaster(s *scheduler.Scheduler) *Caster {
	return &Caster{scheduler: s}
}

// BeginCast starts the cast bar for spell, replacing any cast in progress.
func (c *Caster) BeginCast(spell Spell) {
	if c.timer != nil {
		c.timer.Cancel()
	}
	c.spell = spell
	c.timer = c.scheduler.AddEvent(c.EndCast, spell.duration())
}

// EndCast clears the cast bar.
func (c *Caster) EndCast() {
	if c.timer != nil {
		c.timer.Cancel()
	}
	c.timer = nil
	c.spell = Spell{}
}

// Finish ends the cast immediately, as if its cast time had elapsed.
func (c *Caster) Finish() bool {
	if c.timer == nil {
		return false
	}
	return c.timer.Complete()
}

func (c *Caster) IsCasting() bool {
	return c.timer != nil
}

// Spell returns the spell being cast.
func (c *Caster) Spell() (Spell, bool) {
	return c.spell, c.timer != nil
}

// CastFraction returns the progress of the cast bar in [0, 1].
func (c *Caster) CastFraction() float64 {
	if c.timer == nil {
		return 0
	}
	return scheduler.Clamp01(1 - c.timer.RemainingFraction())
}
