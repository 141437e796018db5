package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo struct {
	mu       sync.Mutex
	sessions map[string]*Session
	nextID   int
}

func newMemRepo() *memRepo {
	return &memRepo{sessions: make(map[string]*Session)}
}

func (r *memRepo) Create(ctx context.Context, s *Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s.ID == "" {
		r.nextID++
		s.ID = fmt.Sprintf("sess-%d", r.nextID)
	}
	s.CreatedAt = time.Now()
	copied := *s
	r.sessions[s.ID] = &copied
	return nil
}

func (r *memRepo) GetByID(ctx context.Context, id string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *s
	return &copied, nil
}

func (r *memRepo) Revoke(ctx context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok || s.RevokedAt != nil {
		return ErrNotFound
	}
	s.RevokedAt = &at
	return nil
}

func (r *memRepo) RevokeOthers(ctx context.Context, userID, keepID string, at time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, s := range r.sessions {
		if s.UserID == userID && s.ID != keepID && s.RevokedAt == nil {
			s.RevokedAt = &at
			n++
		}
	}
	return n, nil
}

func TestNewLoginRevokesPredecessorsAndNotifies(t *testing.T) {
	repo := newMemRepo()
	hub := NewHub(slog.Default())
	svc := NewService(repo, hub, time.Hour)
	ctx := context.Background()

	first, err := svc.Create(ctx, "alice")
	require.NoError(t, err)
	require.NoError(t, svc.Validate(ctx, first.ID))

	// A connection hangs off the first session.
	sub := hub.Subscribe("alice", first.ID)

	second, err := svc.Create(ctx, "alice")
	require.NoError(t, err)

	// The old session is dead, the new one lives.
	assert.ErrorIs(t, svc.Validate(ctx, first.ID), ErrRevoked)
	require.NoError(t, svc.Validate(ctx, second.ID))

	// And the old connection was told why.
	select {
	case event := <-sub.C:
		assert.Equal(t, "alice", event.UserID)
		assert.Equal(t, second.ID, event.ExcludedSessionID)
		assert.NotEmpty(t, event.Reason)
	default:
		t.Fatal("expected a forced-logout event on the old session's connection")
	}
}

func TestFirstLoginBroadcastsNothing(t *testing.T) {
	repo := newMemRepo()
	hub := NewHub(slog.Default())
	svc := NewService(repo, hub, time.Hour)

	sub := hub.Subscribe("alice", "pre-existing-connection")

	_, err := svc.Create(context.Background(), "alice")
	require.NoError(t, err)

	select {
	case <-sub.C:
		t.Fatal("no predecessor sessions existed, nothing should be broadcast")
	default:
	}
}

func TestValidate(t *testing.T) {
	repo := newMemRepo()
	hub := NewHub(slog.Default())
	svc := NewService(repo, hub, time.Hour).(*service)
	ctx := context.Background()

	sess, err := svc.Create(ctx, "alice")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Validate(ctx, "missing"), ErrNotFound)
	require.NoError(t, svc.Validate(ctx, sess.ID))

	// Expiry is checked against the clock.
	svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	assert.ErrorIs(t, svc.Validate(ctx, sess.ID), ErrExpired)
}

func TestRevokeOnLogout(t *testing.T) {
	repo := newMemRepo()
	hub := NewHub(slog.Default())
	svc := NewService(repo, hub, time.Hour)
	ctx := context.Background()

	sess, err := svc.Create(ctx, "alice")
	require.NoError(t, err)

	require.NoError(t, svc.Revoke(ctx, sess.ID))
	assert.ErrorIs(t, svc.Validate(ctx, sess.ID), ErrRevoked)
}
