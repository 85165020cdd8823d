package service

import (
	"sync"

	"github.com/FilipeBHenriques/AlgoVizualizer/service/i"
)

const subscriberBuffer = 256

// eventHub fans one session's run events out to its subscribers.
// Thread-safe.
type eventHub struct {
	mu     sync.Mutex
	subs   map[uint64]chan i.RunEvent
	nextID uint64
	closed bool
}

func newEventHub() *eventHub {
	return &eventHub{subs: make(map[uint64]chan i.RunEvent)}
}

// publish delivers ev to every subscriber without blocking the run.
func (h *eventHub) publish(ev i.RunEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	for id, ch := range h.subs {
		select {
		case ch <- ev:
		default:
			// Slow subscriber: drop to prevent stalling the run.
			close(ch)
			delete(h.subs, id)
		}
	}
}

// subscribe registers a new subscriber and returns its channel plus an
// unsubscribe function. Subscribing to a closed hub yields a closed
// channel.
func (h *eventHub) subscribe() (<-chan i.RunEvent, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan i.RunEvent, subscriberBuffer)
	if h.closed {
		close(ch)
		return ch, func() {}
	}

	id := h.nextID
	h.nextID++
	h.subs[id] = ch
	unsub := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if _, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(ch)
		}
	}
	return ch, unsub
}

// close drops every subscriber and rejects further publishes.
func (h *eventHub) close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for id, ch := range h.subs {
		close(ch)
		delete(h.subs, id)
	}
}
