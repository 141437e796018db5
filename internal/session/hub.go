package session

import (
	"log/slog"
	"sync"
)

// subscriptionBuffer bounds each subscriber's event channel. Broadcasts never
// block: a subscriber that cannot keep up loses the event and falls back on
// its next request failing auth.
const subscriptionBuffer = 4

// Subscription is one live connection's view of the hub. Events arrive on C
// until Unsubscribe, after which C is closed.
type Subscription struct {
	UserID    string
	SessionID string
	C         chan ForcedLogout
}

// Hub fans forced-logout events out to live connections. Delivery is
// at-most-once best-effort: there is no persistence or replay for
// connections that are absent or slow.
type Hub struct {
	mu     sync.RWMutex
	byUser map[string]map[*Subscription]struct{}
	logger *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		byUser: make(map[string]map[*Subscription]struct{}),
		logger: logger,
	}
}

// Subscribe registers a connection bound to the given user and session.
func (h *Hub) Subscribe(userID, sessionID string) *Subscription {
	sub := &Subscription{
		UserID:    userID,
		SessionID: sessionID,
		C:         make(chan ForcedLogout, subscriptionBuffer),
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.byUser[userID] == nil {
		h.byUser[userID] = make(map[*Subscription]struct{})
	}
	h.byUser[userID][sub] = struct{}{}

	return sub
}

// Unsubscribe removes the connection and closes its channel. Safe to call
// more than once.
func (h *Hub) Unsubscribe(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subs, ok := h.byUser[sub.UserID]
	if !ok {
		return
	}
	if _, ok := subs[sub]; !ok {
		return
	}
	delete(subs, sub)
	if len(subs) == 0 {
		delete(h.byUser, sub.UserID)
	}
	close(sub.C)
}

// BroadcastForcedLogout delivers the event to every connection of the target
// user except those belonging to the excluded (newly created) session.
func (h *Hub) BroadcastForcedLogout(event ForcedLogout) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for sub := range h.byUser[event.UserID] {
		if sub.SessionID == event.ExcludedSessionID {
			continue
		}
		select {
		case sub.C <- event:
		default:
			h.logger.Warn("dropping forced-logout event, subscriber buffer full",
				"user_id", event.UserID, "session_id", sub.SessionID)
		}
	}
}
