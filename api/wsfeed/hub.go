// Package wsfeed streams reserve events to websocket subscribers.
// Slow clients drop messages rather than backing up the settlement
// path.
package wsfeed

import "sync"

type subscription struct {
	ch chan []byte
}

type hub struct {
	mu   sync.RWMutex
	subs map[*subscription]struct{}
}

func newHub() *hub {
	return &hub{subs: make(map[*subscription]struct{})}
}

func (h *hub) Subscribe(buffer int) *subscription {
	sub := &subscription{ch: make(chan []byte, buffer)}
	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()
	return sub
}

func (h *hub) Unsubscribe(sub *subscription) {
	h.mu.Lock()
	delete(h.subs, sub)
	h.mu.Unlock()
	close(sub.ch)
}

func (h *hub) Broadcast(data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.subs {
		select {
		case sub.ch <- data:
		default:
		}
	}
}
