package client

import (
	"github.com/google/uuid"

	"github.com/pixil98/go-tilesim/internal/scheduler"
	"github.com/pixil98/go-tilesim/internal/spellbook"
	"github.com/pixil98/go-tilesim/internal/world"
)

type SessionOpt func(*Session)

func WithID(id uuid.UUID) SessionOpt {
	return func(s *Session) {
		s.id = id
	}
}

// WithStart places the player. Defaults to the first walkable tile of the map.
func WithStart(pos world.Position) SessionOpt {
	return func(s *Session) {
		s.start = &pos
	}
}

func WithSpeed(speed int) SessionOpt {
	return func(s *Session) {
		s.speed = speed
	}
}

func WithSpells(ids ...spellbook.SpellID) SessionOpt {
	return func(s *Session) {
		s.spells = append(s.spells, ids...)
	}
}

func WithAutopilot(a *Autopilot) SessionOpt {
	return func(s *Session) {
		s.autopilot = a
	}
}

func WithChunkSize(size int) SessionOpt {
	return func(s *Session) {
		s.chunkSize = size
	}
}

func WithInboxSize(size int) SessionOpt {
	return func(s *Session) {
		if size > 0 {
			s.inboxSize = size
		}
	}
}

func WithSchedulerOpts(opts ...scheduler.SchedulerOpt) SessionOpt {
	return func(s *Session) {
		s.schedulerOpts = append(s.schedulerOpts, opts...)
	}
}
