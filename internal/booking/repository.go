package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meetroom-labs/zoom-booking-backend/internal/account"
)

// ReserveParams carries a validated booking request into the allocation
// critical section.
type ReserveParams struct {
	UserID       string
	Title        string
	MeetingDate  time.Time
	StartMinute  int
	EndMinute    int
	Participants int
	Purpose      string
}

type Repository interface {
	// ReserveConfirmed runs the allocate-and-confirm critical section: inside
	// one transaction it takes a per-date advisory lock, loads the active
	// pool and that day's confirmed bookings, picks an account, and inserts
	// the booking directly as confirmed. It returns ErrNoCapacity without
	// writing anything when no account qualifies.
	ReserveConfirmed(ctx context.Context, params ReserveParams) (*Booking, *account.Account, error)

	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	ListConfirmedByDate(ctx context.Context, date time.Time) ([]*Booking, error)
	UpdateStatus(ctx context.Context, id string, status Status) error

	// CompletePastDue transitions confirmed bookings whose end instant lies
	// strictly before now to completed, returning the number of rows moved.
	CompletePastDue(ctx context.Context, now time.Time) (int64, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const bookingColumns = `
	b.id, b.user_id, u.name, b.zoom_account_id, COALESCE(a.name, ''),
	b.title, b.meeting_date, b.start_minute, b.end_minute,
	b.participants, b.purpose, b.status, b.created_at
`

const bookingJoins = `
	FROM bookings b
	JOIN users u ON b.user_id = u.id
	LEFT JOIN zoom_accounts a ON b.zoom_account_id = a.id
`

func scanBooking(row pgx.Row, extra ...any) (*Booking, error) {
	var b Booking
	dest := []any{
		&b.ID, &b.UserID, &b.UserName, &b.AccountID, &b.AccountName,
		&b.Title, &b.MeetingDate, &b.StartMinute, &b.EndMinute,
		&b.Participants, &b.Purpose, &b.Status, &b.CreatedAt,
	}
	dest = append(dest, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *pgxRepository) ReserveConfirmed(ctx context.Context, params ReserveParams) (*Booking, *account.Account, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("begin reserve tx failed: %w", err)
	}
	defer tx.Rollback(ctx)

	// Serialize allocations for the same meeting date. Two concurrent
	// requests for different dates proceed in parallel; same-date requests
	// queue here, so the overlap check below cannot race with an uncommitted
	// insert.
	dateKey := params.MeetingDate.Format("2006-01-02")
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, dateKey); err != nil {
		return nil, nil, fmt.Errorf("acquire date lock failed: %w", err)
	}

	accounts, err := listActiveAccountsTx(ctx, tx)
	if err != nil {
		return nil, nil, err
	}

	dayBookings, err := listConfirmedByDateTx(ctx, tx, params.MeetingDate)
	if err != nil {
		return nil, nil, err
	}

	chosen := Pick(accounts, dayBookings, params.StartMinute, params.EndMinute)
	if chosen == nil {
		// Rollback via defer; nothing was written.
		return nil, nil, ErrNoCapacity
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("bookings").
		Columns(
			"user_id", "zoom_account_id", "title", "meeting_date",
			"start_minute", "end_minute", "participants", "purpose", "status",
		).
		Values(
			params.UserID, chosen.ID, params.Title, params.MeetingDate,
			params.StartMinute, params.EndMinute, params.Participants,
			params.Purpose, StatusConfirmed,
		).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, nil, fmt.Errorf("build insert booking query failed: %w", err)
	}

	b := &Booking{
		UserID:       params.UserID,
		AccountID:    &chosen.ID,
		AccountName:  chosen.Name,
		Title:        params.Title,
		MeetingDate:  params.MeetingDate,
		StartMinute:  params.StartMinute,
		EndMinute:    params.EndMinute,
		Participants: params.Participants,
		Purpose:      params.Purpose,
		Status:       StatusConfirmed,
	}

	if err := tx.QueryRow(ctx, query, args...).Scan(&b.ID, &b.CreatedAt); err != nil {
		return nil, nil, fmt.Errorf("insert booking failed: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf("commit reserve tx failed: %w", err)
	}

	return b, chosen, nil
}

func listActiveAccountsTx(ctx context.Context, tx pgx.Tx) ([]*account.Account, error) {
	rows, err := tx.Query(ctx, `
		SELECT id, name, login, secret, is_active, created_at
		FROM zoom_accounts
		WHERE is_active = true
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list active accounts failed: %w", err)
	}
	defer rows.Close()

	var accounts []*account.Account
	for rows.Next() {
		var a account.Account
		if err := rows.Scan(&a.ID, &a.Name, &a.Login, &a.Secret, &a.IsActive, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan account failed: %w", err)
		}
		accounts = append(accounts, &a)
	}
	return accounts, nil
}

func listConfirmedByDateTx(ctx context.Context, tx pgx.Tx, date time.Time) ([]*Booking, error) {
	rows, err := tx.Query(ctx, `
		SELECT id, user_id, zoom_account_id, start_minute, end_minute, status
		FROM bookings
		WHERE meeting_date = $1 AND status = $2
	`, date, StatusConfirmed)
	if err != nil {
		return nil, fmt.Errorf("list confirmed bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		var b Booking
		if err := rows.Scan(&b.ID, &b.UserID, &b.AccountID, &b.StartMinute, &b.EndMinute, &b.Status); err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, &b)
	}
	return bookings, nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	query := `SELECT` + bookingColumns + bookingJoins + `WHERE b.id = $1`

	b, err := scanBooking(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"b.id", "b.user_id", "u.name", "b.zoom_account_id", "COALESCE(a.name, '')",
		"b.title", "b.meeting_date", "b.start_minute", "b.end_minute",
		"b.participants", "b.purpose", "b.status", "b.created_at",
		"count(*) OVER() as total_count",
	).
		From("bookings b").
		Join("users u ON b.user_id = u.id").
		LeftJoin("zoom_accounts a ON b.zoom_account_id = a.id")

	if filter.UserID != "" {
		query = query.Where(squirrel.Eq{"b.user_id": filter.UserID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"b.status": filter.Status})
	}

	query = query.OrderBy("b.meeting_date DESC", "b.start_minute DESC")

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize
	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	var total int

	for rows.Next() {
		b, err := scanBooking(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, b)
	}

	return bookings, total, nil
}

func (r *pgxRepository) ListConfirmedByDate(ctx context.Context, date time.Time) ([]*Booking, error) {
	query := `SELECT` + bookingColumns + bookingJoins + `WHERE b.meeting_date = $1 AND b.status = $2`

	rows, err := r.pool.Query(ctx, query, date, StatusConfirmed)
	if err != nil {
		return nil, fmt.Errorf("list confirmed bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id string, status Status) error {
	ct, err := r.pool.Exec(ctx, `UPDATE bookings SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("update booking status failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) CompletePastDue(ctx context.Context, now time.Time) (int64, error) {
	// End-of-meeting instant = meeting_date at end_minute. Comparing against
	// now in one UPDATE keeps the sweep idempotent: rows already completed
	// no longer match the status filter.
	ct, err := r.pool.Exec(ctx, `
		UPDATE bookings
		SET status = $1
		WHERE status = $2
		  AND meeting_date + make_interval(mins => end_minute) < $3
	`, StatusCompleted, StatusConfirmed, now)
	if err != nil {
		return 0, fmt.Errorf("complete past-due bookings failed: %w", err)
	}
	return ct.RowsAffected(), nil
}
