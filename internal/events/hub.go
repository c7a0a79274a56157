package events

import "sync"

type Hub struct {
	mu      sync.Mutex
	clients map[chan Notice]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[chan Notice]struct{})}
}

func (h *Hub) Subscribe() chan Notice {
	ch := make(chan Notice, 10)
	h.mu.Lock()
	h.clients[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

func (h *Hub) Unsubscribe(ch chan Notice) {
	h.mu.Lock()
	delete(h.clients, ch)
	h.mu.Unlock()
	close(ch)
}

func (h *Hub) Publish(n Notice) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.clients {
		select {
		case ch <- n:
		default:
			// drop if slow
		}
	}
}
