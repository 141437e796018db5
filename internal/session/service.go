package session

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Service implements the single-active-session policy: a new login always
// invalidates every other session of that user and pushes a ForcedLogout to
// their live connections.
type Service interface {
	Create(ctx context.Context, userID string) (*Session, error)
	Validate(ctx context.Context, sessionID string) error
	Revoke(ctx context.Context, sessionID string) error
}

type service struct {
	repo Repository
	hub  *Hub
	ttl  time.Duration
	now  func() time.Time
}

func NewService(repo Repository, hub *Hub, ttl time.Duration) Service {
	return &service{
		repo: repo,
		hub:  hub,
		ttl:  ttl,
		now:  time.Now,
	}
}

func (s *service) Create(ctx context.Context, userID string) (*Session, error) {
	now := s.now().UTC()

	// The ID is minted here, not by the database, so the JWT can embed it
	// without depending on insert ordering.
	sess := &Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.repo.Create(ctx, sess); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	revoked, err := s.repo.RevokeOthers(ctx, userID, sess.ID, now)
	if err != nil {
		return nil, fmt.Errorf("revoke previous sessions: %w", err)
	}

	if revoked > 0 {
		s.hub.BroadcastForcedLogout(ForcedLogout{
			UserID:            userID,
			ExcludedSessionID: sess.ID,
			Reason:            "signed in from another device",
		})
	}

	return sess, nil
}

func (s *service) Validate(ctx context.Context, sessionID string) error {
	sess, err := s.repo.GetByID(ctx, sessionID)
	if err != nil {
		return err
	}

	if sess.Live(s.now()) {
		return nil
	}
	if sess.RevokedAt != nil {
		return ErrRevoked
	}
	return ErrExpired
}

func (s *service) Revoke(ctx context.Context, sessionID string) error {
	return s.repo.Revoke(ctx, sessionID, s.now().UTC())
}
