package messaging

import (
	"encoding/json"
	"fmt"
)

// Conn is the part of a NATS connection a session bus needs.
type Conn interface {
	Publish(subject string, data []byte) error
	Subscribe(subject string, handler func(data []byte)) (func(), error)
}

func OutboundSubject(session string, kind string) string {
	return fmt.Sprintf("client-%s.%s", session, kind)
}

func InboundSubject(session string) string {
	return fmt.Sprintf("client-%s.inbound", session)
}

// SessionBus carries one client session's traffic: JSON messages the
// client sends, and packets delivered to it.
type SessionBus struct {
	conn    Conn
	session string
}

func NewSessionBus(conn Conn, session string) *SessionBus {
	return &SessionBus{conn: conn, session: session}
}

// Send publishes v as JSON on the session's subject for kind.
func (b *SessionBus) Send(kind string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshalling %s: %w", kind, err)
	}
	if err := b.conn.Publish(OutboundSubject(b.session, kind), data); err != nil {
		return fmt.Errorf("publishing %s: %w", kind, err)
	}
	return nil
}

// Listen calls handler with every packet delivered to the session.
func (b *SessionBus) Listen(handler func(data []byte)) (func(), error) {
	return b.conn.Subscribe(InboundSubject(b.session), handler)
}

// Deliver publishes a packet to the session as if it came from the server.
func (b *SessionBus) Deliver(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshalling packet: %w", err)
	}
	return b.conn.Publish(InboundSubject(b.session), data)
}

// ListenOutbound calls handler with everything the session sends of kind.
// It lets a stand-in server react to a session's commands.
func (b *SessionBus) ListenOutbound(kind string, handler func(data []byte)) (func(), error) {
	return b.conn.Subscribe(OutboundSubject(b.session, kind), handler)
}
