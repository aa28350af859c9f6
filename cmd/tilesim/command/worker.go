package command

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/pixil98/go-service/service"

	"github.com/pixil98/go-tilesim/internal/client"
	"github.com/pixil98/go-tilesim/internal/driver"
	"github.com/pixil98/go-tilesim/internal/messaging"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	tick, err := cfg.tickInterval()
	if err != nil {
		return nil, err
	}

	// Create the embedded bus
	natsServer, err := cfg.Nats.buildNatsServer()
	if err != nil {
		return nil, fmt.Errorf("creating nats server: %w", err)
	}

	// Load the maps
	maps, err := cfg.Storage.Maps.buildFileStore("maps")
	if err != nil {
		return nil, err
	}

	// Create the session
	id := uuid.New()
	bus := messaging.NewSessionBus(natsServer, id.String())
	session, err := cfg.Client.buildSession(maps, bus, id, tick)
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}

	workers := service.WorkerList{
		"nats": natsServer,
		"client": &sessionWorker{
			server:  natsServer,
			bus:     bus,
			session: session,
			driver:  driver.NewFrameDriver([]driver.Manager{session}, driver.WithTickLength(tick)),
		},
	}
	if cfg.Client.AutoConfirm {
		workers["loopback"] = &loopback{server: natsServer, bus: bus}
	}

	return workers, nil
}

// sessionWorker feeds bus packets to the session and runs its frame loop.
type sessionWorker struct {
	server  *messaging.NatsServer
	bus     *messaging.SessionBus
	session *client.Session
	driver  *driver.FrameDriver
}

func (w *sessionWorker) Start(ctx context.Context) error {
	if err := w.server.WaitReady(ctx); err != nil {
		return nil
	}

	stop, err := w.bus.Listen(func(data []byte) {
		if err := w.session.Deliver(data); err != nil {
			slog.Warn("dropping packet", "session", w.session.ID(), "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("listening for packets: %w", err)
	}
	defer stop()

	slog.InfoContext(ctx, "session started", "session", w.session.ID(), "position", w.session.Position())
	return w.driver.Start(ctx)
}

// loopback confirms every step the session sends.
type loopback struct {
	server *messaging.NatsServer
	bus    *messaging.SessionBus
}

func (l *loopback) Start(ctx context.Context) error {
	if err := l.server.WaitReady(ctx); err != nil {
		return nil
	}

	confirm, err := client.NewPacket(client.PacketWalkConfirm, nil)
	if err != nil {
		return err
	}

	stop, err := l.bus.ListenOutbound(client.KindMove, func([]byte) {
		if err := l.bus.Deliver(confirm); err != nil {
			slog.Warn("confirming walk", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("listening for moves: %w", err)
	}
	defer stop()

	<-ctx.Done()
	return nil
}
