package app

import (
	"sync"

	"quiz-progress-service/internal/domain"
)

// Hub fans out fresh statistics to every live subscriber of a user.
type Hub struct {
	mu   sync.Mutex
	subs map[string]map[chan domain.AggregateStats]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[chan domain.AggregateStats]struct{})}
}

// Subscribe returns a channel of stats updates for userID.
// The caller must invoke the returned cancel function to avoid leaks.
func (h *Hub) Subscribe(userID string) (<-chan domain.AggregateStats, func()) {
	ch := make(chan domain.AggregateStats, 8)

	h.mu.Lock()
	if h.subs[userID] == nil {
		h.subs[userID] = make(map[chan domain.AggregateStats]struct{})
	}
	h.subs[userID][ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if _, ok := h.subs[userID][ch]; ok {
			delete(h.subs[userID], ch)
			if len(h.subs[userID]) == 0 {
				delete(h.subs, userID)
			}
			close(ch)
		}
	}
	return ch, cancel
}

// Publish never blocks: a full subscriber loses its oldest pending update.
func (h *Hub) Publish(userID string, stats domain.AggregateStats) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs[userID] {
		select {
		case ch <- stats:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- stats
		}
	}
}

// Subscribers reports how many live subscriptions userID has.
func (h *Hub) Subscribers(userID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[userID])
}
