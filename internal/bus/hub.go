package bus

import (
	"context"
	"log/slog"
	"sync"
)

func NewHub[T any]() *Hub[T] {
	return &Hub[T]{
		mu:   sync.Mutex{},
		subs: make(map[*chan T]struct{}),
	}
}

// Hub fans events out to channel subscribers. Slow subscribers miss events instead of blocking the publisher.
type Hub[T any] struct {
	mu   sync.Mutex
	subs map[*chan T]struct{}
}

func (h *Hub[T]) Broadcast(ctx context.Context, event T) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	for sub := range h.subs {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case *sub <- event:
		default:
			slog.Debug("Dropped event for slow subscriber", "package", "bus", "topic", topic[T]())
		}
	}

	return nil
}

// Register forwards every T published on b to the hub.
func (h *Hub[T]) Register(b *Bus) func() {
	return Subscribe(b, "bus.Hub", h.Broadcast)
}

func (h *Hub[T]) Subscribe(size int) (<-chan T, func()) {
	h.mu.Lock()
	c := make(chan T, size)

	key := &c
	h.subs[key] = struct{}{}
	h.mu.Unlock()

	return c, func() {
		h.mu.Lock()
		delete(h.subs, key)
		h.mu.Unlock()
	}
}
