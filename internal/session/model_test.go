package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSessionLive(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	expires := now.Add(time.Hour)

	s := &Session{ID: "s1", UserID: "u1", ExpiresAt: expires}
	assert.True(t, s.Live(now))

	// Expiry instant itself is no longer live.
	assert.False(t, s.Live(expires))
	assert.False(t, s.Live(expires.Add(time.Minute)))

	revokedAt := now.Add(time.Minute)
	s.RevokedAt = &revokedAt
	assert.False(t, s.Live(now))
}
