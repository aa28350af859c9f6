package spellbook

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/pixil98/go-tilesim/internal/scheduler"
)

type SpellID uint16

const (
	// GlobalCooldown is the cooldown slot shared by every spell.
	GlobalCooldown SpellID = 0xFFFF

	GlobalCooldownTicks = 20
)

// Sender forwards a cast request to the server.
type Sender interface {
	SendSpellCast(id SpellID) error
}

type Notifier interface {
	SetCancelMessage(msg string)
}

// Spellbook tracks the spells a player knows and their cooldowns.
type Spellbook struct {
	scheduler *scheduler.Scheduler
	sender    Sender
	notifier  Notifier

	spells    map[SpellID]struct{}
	cooldowns map[SpellID]*scheduler.Timer
}

func New(s *scheduler.Scheduler, sender Sender, notifier Notifier, spells ...SpellID) *Spellbook {
	sb := &Spellbook{
		scheduler: s,
		sender:    sender,
		notifier:  notifier,
		spells:    make(map[SpellID]struct{}, len(spells)),
		cooldowns: make(map[SpellID]*scheduler.Timer),
	}
	for _, id := range spells {
		sb.spells[id] = struct{}{}
	}
	return sb
}

func (sb *Spellbook) AddSpell(id SpellID) {
	sb.spells[id] = struct{}{}
}

func (sb *Spellbook) RemoveSpell(id SpellID) {
	delete(sb.spells, id)
}

func (sb *Spellbook) Knows(id SpellID) bool {
	_, ok := sb.spells[id]
	return ok
}

// Spells returns the known spells in ascending order.
func (sb *Spellbook) Spells() []SpellID {
	return slices.Sorted(maps.Keys(sb.spells))
}

// OnCooldown reports whether id or the global cooldown is active.
func (sb *Spellbook) OnCooldown(id SpellID) bool {
	_, gcd := sb.cooldowns[GlobalCooldown]
	_, own := sb.cooldowns[id]
	return gcd || own
}

// Cast asks the server to cast id unless it is still cooling down.
func (sb *Spellbook) Cast(id SpellID) error {
	if !sb.Knows(id) {
		return fmt.Errorf("%w: %d", ErrUnknownSpell, id)
	}
	if sb.OnCooldown(id) {
		if sb.notifier != nil {
			sb.notifier.SetCancelMessage(CooldownMessage)
		}
		return fmt.Errorf("%w: %d", ErrOnCooldown, id)
	}
	if err := sb.sender.SendSpellCast(id); err != nil {
		return fmt.Errorf("sending cast %d: %w", id, err)
	}
	return nil
}

// ServerCast locks id for cooldownTicks and starts the global cooldown, as
// reported by the server once a cast went through.
func (sb *Spellbook) ServerCast(id SpellID, cooldownTicks int) {
	sb.lock(id, cooldownTicks)
	sb.lock(GlobalCooldown, GlobalCooldownTicks)
	slog.Debug("spell cast", "spell", id, "cooldown_ticks", cooldownTicks)
}

func (sb *Spellbook) lock(id SpellID, ticks int) {
	if prev, ok := sb.cooldowns[id]; ok {
		prev.Cancel()
	}

	var t *scheduler.Timer
	t = sb.scheduler.AddEvent(func() {
		if sb.cooldowns[id] == t {
			delete(sb.cooldowns, id)
		}
	}, ticks)
	sb.cooldowns[id] = t
}

// CooldownSeconds returns the seconds until id can be cast again.
func (sb *Spellbook) CooldownSeconds(id SpellID) float64 {
	remaining := 0.0
	if t, ok := sb.cooldowns[GlobalCooldown]; ok {
		remaining = t.RemainingSeconds()
	}
	if t, ok := sb.cooldowns[id]; ok {
		remaining = max(remaining, t.RemainingSeconds())
	}
	return max(0, remaining)
}

// CooldownFraction returns how far id has recovered, from 0 just after a
// cast to 1 once castable.
func (sb *Spellbook) CooldownFraction(id SpellID) float64 {
	fraction := 1.0
	if t, ok := sb.cooldowns[GlobalCooldown]; ok {
		fraction = 1 - t.RemainingFraction()
	}
	if t, ok := sb.cooldowns[id]; ok {
		fraction = min(fraction, 1-t.RemainingFraction())
	}
	return scheduler.Clamp01(fraction)
}
