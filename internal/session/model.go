package session

import (
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("session not found")
	ErrExpired  = errors.New("session expired")
	ErrRevoked  = errors.New("session terminated")
)

// Session is one server-side login. A user has at most one live session: a
// new login revokes all of its predecessors.
type Session struct {
	ID        string // UUID
	UserID    string
	CreatedAt time.Time
	ExpiresAt time.Time
	RevokedAt *time.Time
}

// Live reports whether the session is still usable at the given instant.
func (s *Session) Live(now time.Time) bool {
	return s.RevokedAt == nil && now.Before(s.ExpiresAt)
}

// ForcedLogout is pushed to live connections whose session was superseded by
// a newer login.
type ForcedLogout struct {
	UserID            string `json:"user_id"`
	ExcludedSessionID string `json:"-"`
	Reason            string `json:"reason"`
}
