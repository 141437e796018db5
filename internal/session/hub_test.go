package session

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub() *Hub {
	return NewHub(slog.Default())
}

func drain(sub *Subscription) []ForcedLogout {
	var events []ForcedLogout
	for {
		select {
		case e, ok := <-sub.C:
			if !ok {
				return events
			}
			events = append(events, e)
		default:
			return events
		}
	}
}

func TestBroadcastReachesAllButExcludedSession(t *testing.T) {
	hub := newTestHub()

	oldPhone := hub.Subscribe("alice", "sess-old-1")
	oldLaptop := hub.Subscribe("alice", "sess-old-2")
	fresh := hub.Subscribe("alice", "sess-new")
	bystander := hub.Subscribe("bob", "sess-bob")

	hub.BroadcastForcedLogout(ForcedLogout{
		UserID:            "alice",
		ExcludedSessionID: "sess-new",
		Reason:            "signed in from another device",
	})

	require.Len(t, drain(oldPhone), 1)
	require.Len(t, drain(oldLaptop), 1)
	assert.Empty(t, drain(fresh), "the new session must not receive its own logout")
	assert.Empty(t, drain(bystander), "events are scoped to the target user")
}

func TestBroadcastToAbsentUserIsNoop(t *testing.T) {
	hub := newTestHub()
	hub.BroadcastForcedLogout(ForcedLogout{UserID: "nobody", ExcludedSessionID: "x"})
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	hub := newTestHub()
	sub := hub.Subscribe("alice", "sess-1")

	hub.Unsubscribe(sub)
	_, ok := <-sub.C
	assert.False(t, ok, "channel must be closed after unsubscribe")

	// A second unsubscribe must not panic on the closed channel.
	hub.Unsubscribe(sub)

	// Broadcasts after unsubscribe go nowhere.
	hub.BroadcastForcedLogout(ForcedLogout{UserID: "alice", ExcludedSessionID: "other"})
}

func TestBroadcastNeverBlocksOnFullBuffer(t *testing.T) {
	hub := newTestHub()
	sub := hub.Subscribe("alice", "sess-1")

	// Overflow the buffer; the extra events are dropped, not delivered late.
	for range subscriptionBuffer + 3 {
		hub.BroadcastForcedLogout(ForcedLogout{UserID: "alice", ExcludedSessionID: "other"})
	}

	assert.Len(t, drain(sub), subscriptionBuffer)
}
