// Package live fans out seat-map change notifications to connected
// clients, within one process through Hub and across instances through
// the Redis bridge.
package live

import (
	"context"
	"sync"

	"github.com/iliyamo/armhub-seatdesk/internal/model"
)

// Notifier is told after a store write that a room's seat map changed.
type Notifier interface {
	Notify(ctx context.Context, room model.RoomType)
}

// Subscription receives a value on C whenever its room changes.  C has a
// buffer of one and sends never block, so bursts of changes collapse into
// a single pending notification; the receiver always re-reads the full
// state.
type Subscription struct {
	C    <-chan struct{}
	room model.RoomType
	ch   chan struct{}
	hub  *Hub
	once sync.Once
}

// Close unregisters the subscription.  It is safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(func() { s.hub.remove(s) })
}

// Hub is an in-process notification fan-out.
type Hub struct {
	mu   sync.Mutex
	subs map[*Subscription]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[*Subscription]struct{})}
}

// Subscribe registers interest in room; the empty room matches every room.
func (h *Hub) Subscribe(room model.RoomType) *Subscription {
	ch := make(chan struct{}, 1)
	s := &Subscription{C: ch, room: room, ch: ch, hub: h}
	h.mu.Lock()
	h.subs[s] = struct{}{}
	h.mu.Unlock()
	return s
}

func (h *Hub) remove(s *Subscription) {
	h.mu.Lock()
	delete(h.subs, s)
	h.mu.Unlock()
}

// Publish signals every subscriber of room.
func (h *Hub) Publish(room model.RoomType) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for s := range h.subs {
		if s.room != "" && s.room != room {
			continue
		}
		select {
		case s.ch <- struct{}{}:
		default:
		}
	}
}

// Notify implements Notifier for single-instance deployments.
func (h *Hub) Notify(_ context.Context, room model.RoomType) { h.Publish(room) }

// Len returns the number of registered subscriptions.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
