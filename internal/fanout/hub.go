// Package fanout wakes every connected client after the shared game changes.
//
// Signals carry no payload: a receiver re-reads the game state on its own, so
// one pending token per subscriber is enough and extra notifications coalesce.
package fanout

import (
	"sync"

	"github.com/park285/glinski-chess/internal/obslog"
	"go.uber.org/zap"
)

// Subscriber is one connection's signal queue.
type Subscriber struct {
	ID string

	ch     chan struct{}
	once   sync.Once
	closed chan struct{}
}

// Signals yields a token whenever the game may have changed.
func (s *Subscriber) Signals() <-chan struct{} { return s.ch }

// Done is closed once the subscriber is unregistered.
func (s *Subscriber) Done() <-chan struct{} { return s.closed }

func (s *Subscriber) close() { s.once.Do(func() { close(s.closed) }) }

// signal queues a token unless one is already pending or the subscriber is
// gone. It never blocks.
func (s *Subscriber) signal() bool {
	select {
	case <-s.closed:
		return false
	default:
	}
	select {
	case s.ch <- struct{}{}:
		return true
	default:
		return false
	}
}

// Hub is the registry of live subscribers.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]*Subscriber
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]*Subscriber)}
}

// Register adds a subscriber under id. The new subscriber starts with one
// pending token so its owner sends the initial state right away.
func (h *Hub) Register(id string) *Subscriber {
	s := &Subscriber{ID: id, ch: make(chan struct{}, 1), closed: make(chan struct{})}
	s.ch <- struct{}{}
	h.mu.Lock()
	if prev, ok := h.subs[id]; ok {
		prev.close()
	}
	h.subs[id] = s
	n := len(h.subs)
	h.mu.Unlock()
	obslog.L().Debug("fanout_register", zap.String("sub_id", id), zap.Int("subscribers", n))
	return s
}

// Unregister removes s; later Notify calls skip it. Safe to call twice.
func (h *Hub) Unregister(s *Subscriber) {
	if s == nil {
		return
	}
	h.mu.Lock()
	if cur, ok := h.subs[s.ID]; ok && cur == s {
		delete(h.subs, s.ID)
	}
	h.mu.Unlock()
	s.close()
}

// Notify signals every subscriber and returns how many received a fresh
// token.
func (h *Hub) Notify() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	sent := 0
	for _, s := range h.subs {
		if s.signal() {
			sent++
		}
	}
	return sent
}

// Len returns the number of registered subscribers.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
