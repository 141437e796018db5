package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, s *Session) error
	GetByID(ctx context.Context, id string) (*Session, error)
	Revoke(ctx context.Context, id string, at time.Time) error

	// RevokeOthers revokes every live session of the user except keepID and
	// returns how many were revoked.
	RevokeOthers(ctx context.Context, userID, keepID string, at time.Time) (int64, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, s *Session) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("sessions").
		Columns("id", "user_id", "expires_at").
		Values(s.ID, s.UserID, s.ExpiresAt).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create session query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).Scan(&s.CreatedAt)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Session, error) {
	const query = `
		SELECT id, user_id, created_at, expires_at, revoked_at
		FROM sessions
		WHERE id = $1
	`

	var s Session
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.UserID, &s.CreatedAt, &s.ExpiresAt, &s.RevokedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get session failed: %w", err)
	}
	return &s, nil
}

func (r *pgxRepository) Revoke(ctx context.Context, id string, at time.Time) error {
	ct, err := r.pool.Exec(ctx, `
		UPDATE sessions SET revoked_at = $1
		WHERE id = $2 AND revoked_at IS NULL
	`, at, id)
	if err != nil {
		return fmt.Errorf("revoke session failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) RevokeOthers(ctx context.Context, userID, keepID string, at time.Time) (int64, error) {
	ct, err := r.pool.Exec(ctx, `
		UPDATE sessions SET revoked_at = $1
		WHERE user_id = $2 AND id <> $3 AND revoked_at IS NULL
	`, at, userID, keepID)
	if err != nil {
		return 0, fmt.Errorf("revoke other sessions failed: %w", err)
	}
	return ct.RowsAffected(), nil
}
