package event

import (
	"context"
	"errors"
	"sync"

	"github.com/shandysiswandi/csvjson/internal/records/entity"
)

var ErrBusClosed = errors.New("event bus is closed")

// Bus is a bounded in-process queue of replacement notifications. Closing it
// never closes the queue itself, so a late Publish cannot panic.
type Bus struct {
	queue     chan entity.ReplacedEvent
	done      chan struct{}
	closeOnce sync.Once
}

func NewBus(buffer int) *Bus {
	return &Bus{
		queue: make(chan entity.ReplacedEvent, max(buffer, 1)),
		done:  make(chan struct{}),
	}
}

// Publish waits for room in the queue until ctx ends or the bus closes.
func (b *Bus) Publish(ctx context.Context, event entity.ReplacedEvent) error {
	select {
	case <-b.done:
		return ErrBusClosed
	default:
	}

	select {
	case b.queue <- event:
		return nil
	case <-b.done:
		return ErrBusClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Pending reports how many events are queued and not yet taken.
func (b *Bus) Pending() int {
	return len(b.queue)
}

func (b *Bus) Close() {
	b.closeOnce.Do(func() { close(b.done) })
}

// next blocks for the next event. Once the bus is closed it keeps returning
// queued events and then reports false.
func (b *Bus) next() (entity.ReplacedEvent, bool) {
	select {
	case event := <-b.queue:
		return event, true
	case <-b.done:
	}

	select {
	case event := <-b.queue:
		return event, true
	default:
		return entity.ReplacedEvent{}, false
	}
}
