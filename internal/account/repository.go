package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines methods for accessing the Zoom account pool.
type Repository interface {
	// ListActive returns active accounts ordered ascending by id. The order
	// is what makes allocation decisions reproducible.
	ListActive(ctx context.Context) ([]*Account, error)
	List(ctx context.Context) ([]*Account, error)
	GetByID(ctx context.Context, id int64) (*Account, error)
	Create(ctx context.Context, a *Account) error
	Update(ctx context.Context, a *Account) error
	Count(ctx context.Context) (int, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const accountColumns = `id, name, login, secret, is_active, created_at`

func scanAccount(row pgx.Row) (*Account, error) {
	var a Account
	if err := row.Scan(&a.ID, &a.Name, &a.Login, &a.Secret, &a.IsActive, &a.CreatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *pgxRepository) listWhere(ctx context.Context, where string) ([]*Account, error) {
	query := `SELECT ` + accountColumns + ` FROM zoom_accounts` + where + ` ORDER BY id ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list zoom accounts failed: %w", err)
	}
	defer rows.Close()

	var accounts []*Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan zoom account failed: %w", err)
		}
		accounts = append(accounts, a)
	}
	return accounts, nil
}

func (r *pgxRepository) ListActive(ctx context.Context) ([]*Account, error) {
	return r.listWhere(ctx, ` WHERE is_active = true`)
}

func (r *pgxRepository) List(ctx context.Context) ([]*Account, error) {
	return r.listWhere(ctx, ``)
}

func (r *pgxRepository) GetByID(ctx context.Context, id int64) (*Account, error) {
	query := `SELECT ` + accountColumns + ` FROM zoom_accounts WHERE id = $1`

	a, err := scanAccount(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get zoom account failed: %w", err)
	}
	return a, nil
}

func (r *pgxRepository) Create(ctx context.Context, a *Account) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("zoom_accounts").
		Columns("name", "login", "secret", "is_active").
		Values(a.Name, a.Login, a.Secret, a.IsActive).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create zoom account query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).Scan(&a.ID, &a.CreatedAt)
}

func (r *pgxRepository) Update(ctx context.Context, a *Account) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("zoom_accounts").
		Set("name", a.Name).
		Set("login", a.Login).
		Set("secret", a.Secret).
		Set("is_active", a.IsActive).
		Where(squirrel.Eq{"id": a.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update zoom account query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update zoom account failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM zoom_accounts`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count zoom accounts failed: %w", err)
	}
	return n, nil
}
