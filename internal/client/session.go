package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/pixil98/go-tilesim/internal/movement"
	"github.com/pixil98/go-tilesim/internal/notice"
	"github.com/pixil98/go-tilesim/internal/pathfind"
	"github.com/pixil98/go-tilesim/internal/scheduler"
	"github.com/pixil98/go-tilesim/internal/spellbook"
	"github.com/pixil98/go-tilesim/internal/world"
)

const (
	DefaultInboxSize = 256

	KindMove      = "move"
	KindSpellCast = "spell_cast"
)

// Transport carries the session's commands to the server.
type Transport interface {
	Send(kind string, v any) error
}

// Session is one connected client. Deliver and PressKey may be called from
// any goroutine; everything else belongs to the frame loop.
type Session struct {
	id uuid.UUID

	start         *world.Position
	speed         int
	spells        []spellbook.SpellID
	chunkSize     int
	inboxSize     int
	schedulerOpts []scheduler.SchedulerOpt

	transport  Transport
	scheduler  *scheduler.Scheduler
	graph      *pathfind.Graph
	occupancy  *world.Occupancy
	pathfinder *pathfind.Pathfinder
	controller *movement.Controller
	spellbook  *spellbook.Spellbook
	caster     *spellbook.Caster
	board      *notice.Board
	autopilot  *Autopilot

	inbox chan Packet
	keys  chan world.Direction
}

func NewSession(m *world.Map, transport Transport, opts ...SessionOpt) (*Session, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("validating map: %w", err)
	}
	if transport == nil {
		return nil, fmt.Errorf("transport is required")
	}

	s := &Session{
		id:        uuid.New(),
		speed:     movement.DefaultSpeed,
		chunkSize: world.DefaultChunkSize,
		inboxSize: DefaultInboxSize,
		transport: transport,
		occupancy: world.NewOccupancy(),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.scheduler = scheduler.New(s.schedulerOpts...)
	s.graph = pathfind.NewGraph()
	for _, c := range m.Chunks(s.chunkSize) {
		s.graph.LoadChunk(c)
	}

	start, err := s.startPosition(m)
	if err != nil {
		return nil, err
	}

	query := &worldQuery{graph: s.graph, occupancy: s.occupancy}
	s.board = notice.NewBoard(s.scheduler)
	s.pathfinder = pathfind.New(s.graph, query, nil, pathfind.WithNotifier(s.board))
	s.controller = movement.New(s.scheduler, query, start,
		movement.WithSpeed(s.speed),
		movement.WithObserver(s),
		movement.WithNotifier(s.board),
		movement.WithRouter(s.pathfinder),
	)
	s.pathfinder.SetSink(s.controller)
	s.spellbook = spellbook.New(s.scheduler, s, s.board, s.spells...)
	s.caster = spellbook.NewCaster(s.scheduler)

	s.inbox = make(chan Packet, s.inboxSize)
	s.keys = make(chan world.Direction, s.inboxSize)

	slog.Info("session created", "session", s.id, "map", m.Name, "tiles", s.graph.Len(), "start", start)
	return s, nil
}

func (s *Session) startPosition(m *world.Map) (world.Position, error) {
	if s.start != nil {
		if _, ok := s.graph.Node(*s.start); !ok {
			return world.Position{}, fmt.Errorf("start %s is not walkable", *s.start)
		}
		return *s.start, nil
	}
	tiles := m.Tiles()
	if len(tiles) == 0 {
		return world.Position{}, fmt.Errorf("map %q has no walkable tiles", m.Name)
	}
	return tiles[0].Position, nil
}

func (s *Session) ID() uuid.UUID {
	return s.id
}

func (s *Session) Position() world.Position {
	return s.controller.Position()
}

func (s *Session) Scheduler() *scheduler.Scheduler {
	return s.scheduler
}

func (s *Session) Controller() *movement.Controller {
	return s.controller
}

func (s *Session) Pathfinder() *pathfind.Pathfinder {
	return s.pathfinder
}

func (s *Session) Spellbook() *spellbook.Spellbook {
	return s.spellbook
}

func (s *Session) Caster() *spellbook.Caster {
	return s.caster
}

func (s *Session) Board() *notice.Board {
	return s.board
}

func (s *Session) Occupancy() *world.Occupancy {
	return s.occupancy
}

func (s *Session) Autopilot() *Autopilot {
	return s.autopilot
}

// Deliver queues a server packet for the next frame.
func (s *Session) Deliver(data []byte) error {
	p, err := DecodePacket(data)
	if err != nil {
		return err
	}
	select {
	case s.inbox <- p:
		return nil
	default:
		return fmt.Errorf("%w: dropping %s", ErrInboxFull, p.Type)
	}
}

// PressKey queues a movement key for the next frame.
func (s *Session) PressKey(d world.Direction) error {
	select {
	case s.keys <- d:
		return nil
	default:
		return fmt.Errorf("%w: dropping key %s", ErrInboxFull, d)
	}
}

// Tick runs one frame: server packets first, then timers, then input.
func (s *Session) Tick(ctx context.Context) error {
	for n := len(s.inbox); n > 0; n-- {
		p := <-s.inbox
		if err := s.apply(p); err != nil {
			slog.WarnContext(ctx, "rejected packet", "session", s.id, "type", p.Type, "error", err)
		}
	}

	s.scheduler.Tick()

	for n := len(s.keys); n > 0; n-- {
		s.controller.HandleKey(<-s.keys)
	}

	return s.steer(ctx)
}

// WalkTo routes the player to pos.
func (s *Session) WalkTo(pos world.Position) error {
	err := s.pathfinder.FindPath(s.controller.Position(), pos)
	if errors.Is(err, pathfind.ErrNoPath) || errors.Is(err, pathfind.ErrInvalidDestination) {
		return notice.WrapUserError(pathfind.NoPathMessage, err)
	}
	return err
}

// CastSpell asks the server to cast id.
func (s *Session) CastSpell(id spellbook.SpellID) error {
	err := s.spellbook.Cast(id)
	if errors.Is(err, spellbook.ErrOnCooldown) {
		return notice.WrapUserError(spellbook.CooldownMessage, err)
	}
	return err
}

// steer walks the autopilot once the previous route is finished.
func (s *Session) steer(ctx context.Context) error {
	if s.autopilot == nil {
		return nil
	}
	target, ok := s.autopilot.Target()
	if !ok {
		return nil
	}
	if s.controller.IsMoving() || !s.controller.Confirmed() || s.pathfinder.HasPendingMoves() {
		return nil
	}

	if s.controller.Position() == target {
		slog.DebugContext(ctx, "waypoint reached", "session", s.id, "position", target)
		s.autopilot.advance()
		return nil
	}

	if err := s.WalkTo(target); err != nil {
		s.autopilot.advance()
		return err
	}
	return nil
}

func (s *Session) apply(p Packet) error {
	switch p.Type {
	case PacketTeleport:
		var d TeleportData
		if err := p.decode(&d); err != nil {
			return err
		}
		s.controller.Teleport(d.Position)

	case PacketWalkConfirm:
		s.controller.ConfirmWalk()

	case PacketCreatureMove:
		var d CreatureMoveData
		if err := p.decode(&d); err != nil {
			return err
		}
		s.occupancy.Place(d.ID, d.Position)

	case PacketCreatureRemove:
		var d CreatureRemoveData
		if err := p.decode(&d); err != nil {
			return err
		}
		if !s.occupancy.Remove(d.ID) {
			return fmt.Errorf("%w: %s", ErrUnknownCreature, d.ID)
		}

	case PacketTileUpdate:
		var d TileUpdateData
		if err := p.decode(&d); err != nil {
			return err
		}
		if d.Removed {
			s.graph.RemoveTile(d.Position)
			return nil
		}
		friction := d.Friction
		if friction <= 0 {
			friction = world.DefaultFriction
		}
		s.graph.AddTile(d.Position, friction)

	case PacketSpellCast:
		var d SpellCastData
		if err := p.decode(&d); err != nil {
			return err
		}
		s.spellbook.ServerCast(d.Spell.ID, d.CooldownTicks)
		if d.Spell.CastTicks > 0 || d.Spell.ChannelTicks > 0 {
			s.caster.BeginCast(d.Spell)
		}

	case PacketCancelMessage:
		var d MessageData
		if err := p.decode(&d); err != nil {
			return err
		}
		s.board.SetCancelMessage(d.Message)

	case PacketServerMessage:
		var d MessageData
		if err := p.decode(&d); err != nil {
			return err
		}
		s.board.SetServerMessage(d.Message)

	case PacketSay:
		var d SayData
		if err := p.decode(&d); err != nil {
			return err
		}
		s.board.Say(d.Speaker, d.Message, d.Color)

	case PacketFloatingText:
		var d FloatingTextData
		if err := p.decode(&d); err != nil {
			return err
		}
		s.board.AddFloatingText(d.Position, d.Message, d.Color)

	default:
		return fmt.Errorf("%w: %s", ErrUnknownPacket, p.Type)
	}
	return nil
}

// Moved sends every applied step to the server.
func (s *Session) Moved(d world.Direction, from, to world.Position) {
	err := s.transport.Send(KindMove, MoveCommand{Direction: d, From: from, To: to})
	if err != nil {
		slog.Warn("sending move", "session", s.id, "direction", d, "error", err)
	}
}

// SendSpellCast satisfies spellbook.Sender.
func (s *Session) SendSpellCast(id spellbook.SpellID) error {
	return s.transport.Send(KindSpellCast, SpellCastCommand{Spell: id})
}
