package event

import (
	"context"
	"log/slog"
	"sync"

	"github.com/shandysiswandi/csvjson/internal/records/entity"
)

type Handler interface {
	Handle(ctx context.Context, event entity.ReplacedEvent) error
}

type ConsumerConfig struct {
	Workers int
}

// Consumer drains a Bus into a Handler. Each event is handed over once; a
// handler error is logged and the event is dropped.
type Consumer struct {
	bus     *Bus
	handler Handler
	workers int

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewConsumer(bus *Bus, handler Handler, cfg ConsumerConfig) *Consumer {
	ctx, cancel := context.WithCancel(context.Background())

	return &Consumer{
		bus:     bus,
		handler: handler,
		workers: max(cfg.Workers, 1),
		ctx:     ctx,
		cancel:  cancel,
	}
}

func (c *Consumer) Start() {
	for range c.workers {
		c.wg.Add(1)
		go c.worker()
	}
}

// Stop closes the bus and waits for queued events to be handled. When ctx
// ends first, the context given to running handlers is cancelled.
func (c *Consumer) Stop(ctx context.Context) error {
	c.bus.Close()

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		c.cancel()
		return nil
	case <-ctx.Done():
		c.cancel()
		return ctx.Err()
	}
}

func (c *Consumer) worker() {
	defer c.wg.Done()

	for {
		event, ok := c.bus.next()
		if !ok {
			return
		}
		c.process(event)
	}
}

func (c *Consumer) process(event entity.ReplacedEvent) {
	if c.handler == nil {
		return
	}

	if err := c.handler.Handle(c.ctx, event); err != nil {
		slog.Error("failed to handle replaced event", "event_id", event.EventID, "error", err)
	}
}
