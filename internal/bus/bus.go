// Package bus is an in-process message bus. Every registration returns a
// function that removes it, so the owner decides how long it lives.
package bus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

var ErrNoHandler = errors.New("no request handler")

type subscriber struct {
	name string
	fn   func(ctx context.Context, event any)
}

type handler struct {
	id   uuid.UUID
	name string
	fn   func(ctx context.Context, req any) (any, error)
}

type Bus struct {
	mu       sync.RWMutex
	subs     map[string]map[uuid.UUID]subscriber
	handlers map[string]handler
}

func New() *Bus {
	return &Bus{
		subs:     make(map[string]map[uuid.UUID]subscriber),
		handlers: make(map[string]handler),
	}
}

func topic[T any]() string {
	return fmt.Sprintf("%T", *new(T))
}

// Subscribe calls fn for every published T until the returned function is called.
func Subscribe[T any](b *Bus, name string, fn func(ctx context.Context, event T) error) func() {
	t := topic[T]()
	id := uuid.New()

	b.mu.Lock()
	if b.subs[t] == nil {
		b.subs[t] = make(map[uuid.UUID]subscriber)
	}
	b.subs[t][id] = subscriber{
		name: name,
		fn: func(ctx context.Context, event any) {
			if err := fn(ctx, event.(T)); err != nil {
				slog.Error("Failed to handle event", "package", "bus", "name", name, "topic", t, "error", err)
			}
		},
	}
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.subs[t], id)
		if len(b.subs[t]) == 0 {
			delete(b.subs, t)
		}
		b.mu.Unlock()
	}
}

// Publish delivers event to the current subscribers on the caller's goroutine.
func Publish[T any](ctx context.Context, b *Bus, event T) {
	t := topic[T]()

	b.mu.RLock()
	subs := make([]subscriber, 0, len(b.subs[t]))
	for _, sub := range b.subs[t] {
		subs = append(subs, sub)
	}
	b.mu.RUnlock()

	for _, sub := range subs {
		sub.fn(ctx, event)
	}
}

// HasSubscribers reports whether anything is subscribed to T.
func HasSubscribers[T any](b *Bus) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[topic[T]()]) > 0
}

// Handle registers fn as the single responder for Req. A later registration replaces an earlier one.
func Handle[Req, Resp any](b *Bus, name string, fn func(ctx context.Context, req Req) (Resp, error)) func() {
	t := topic[Req]()
	id := uuid.New()

	b.mu.Lock()
	if old, ok := b.handlers[t]; ok {
		slog.Warn("Replacing request handler", "package", "bus", "topic", t, "old", old.name, "new", name)
	}
	b.handlers[t] = handler{
		id:   id,
		name: name,
		fn: func(ctx context.Context, req any) (any, error) {
			return fn(ctx, req.(Req))
		},
	}
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		if h, ok := b.handlers[t]; ok && h.id == id {
			delete(b.handlers, t)
		}
		b.mu.Unlock()
	}
}

// Request sends req to its handler and waits for the reply.
func Request[Req, Resp any](ctx context.Context, b *Bus, req Req) (Resp, error) {
	t := topic[Req]()

	b.mu.RLock()
	h, ok := b.handlers[t]
	b.mu.RUnlock()

	var zero Resp
	if !ok {
		return zero, fmt.Errorf("%s: %w", t, ErrNoHandler)
	}

	resp, err := h.fn(ctx, req)
	if err != nil {
		return zero, err
	}
	if resp == nil {
		return zero, nil
	}

	r, ok := resp.(Resp)
	if !ok {
		return zero, fmt.Errorf("%s: unexpected response type %T", t, resp)
	}
	return r, nil
}
