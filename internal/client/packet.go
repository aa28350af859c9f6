package client

import (
	"encoding/json"
	"fmt"

	"github.com/pixil98/go-tilesim/internal/spellbook"
	"github.com/pixil98/go-tilesim/internal/world"
)

type PacketType string

const (
	PacketTeleport       PacketType = "teleport"
	PacketWalkConfirm    PacketType = "walk_confirm"
	PacketCreatureMove   PacketType = "creature_move"
	PacketCreatureRemove PacketType = "creature_remove"
	PacketTileUpdate     PacketType = "tile_update"
	PacketSpellCast      PacketType = "spell_cast"
	PacketCancelMessage  PacketType = "cancel_message"
	PacketServerMessage  PacketType = "server_message"
	PacketSay            PacketType = "say"
	PacketFloatingText   PacketType = "floating_text"
)

// Packet is the envelope of every message the server sends a session.
type Packet struct {
	Type PacketType      `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// NewPacket wraps data in an envelope of the given type.
func NewPacket(t PacketType, data any) (Packet, error) {
	p := Packet{Type: t}
	if data == nil {
		return p, nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return Packet{}, fmt.Errorf("marshalling %s: %w", t, err)
	}
	p.Data = raw
	return p, nil
}

// DecodePacket parses an envelope. The payload is decoded when applied.
func DecodePacket(data []byte) (Packet, error) {
	var p Packet
	if err := json.Unmarshal(data, &p); err != nil {
		return Packet{}, fmt.Errorf("unmarshalling packet: %w", err)
	}
	if p.Type == "" {
		return Packet{}, ErrMissingType
	}
	return p, nil
}

func (p Packet) decode(v any) error {
	if len(p.Data) == 0 {
		return fmt.Errorf("%s: %w", p.Type, ErrMissingData)
	}
	if err := json.Unmarshal(p.Data, v); err != nil {
		return fmt.Errorf("%s: %w", p.Type, err)
	}
	return nil
}

type TeleportData struct {
	Position world.Position `json:"position"`
}

type CreatureMoveData struct {
	ID       string         `json:"id"`
	Position world.Position `json:"position"`
}

type CreatureRemoveData struct {
	ID string `json:"id"`
}

// TileUpdateData adds, changes or removes one walkable tile.
type TileUpdateData struct {
	Position world.Position `json:"position"`
	Friction float64        `json:"friction"`
	Removed  bool           `json:"removed"`
}

// SpellCastData confirms a cast. A zero cast and channel time means the
// spell took effect immediately.
type SpellCastData struct {
	Spell         spellbook.Spell `json:"spell"`
	CooldownTicks int             `json:"cooldown_ticks"`
}

type MessageData struct {
	Message string `json:"message"`
}

type SayData struct {
	Speaker string `json:"speaker"`
	Message string `json:"message"`
	Color   int    `json:"color"`
}

type FloatingTextData struct {
	Position world.Position `json:"position"`
	Message  string         `json:"message"`
	Color    int            `json:"color"`
}

// Commands the session sends.

type MoveCommand struct {
	Direction world.Direction `json:"direction"`
	From      world.Position  `json:"from"`
	To        world.Position  `json:"to"`
}

type SpellCastCommand struct {
	Spell spellbook.SpellID `json:"spell"`
}
