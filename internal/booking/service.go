package booking

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/meetroom-labs/zoom-booking-backend/internal/account"
	"github.com/meetroom-labs/zoom-booking-backend/internal/pkg/timewindow"
)

// RequestParams carries an inbound booking request.
type RequestParams struct {
	UserID       string
	Title        string
	MeetingDate  time.Time
	StartTime    string // "HH:MM"
	EndTime      string // "HH:MM"
	Participants int
	Purpose      string
}

// Result pairs a confirmed booking with the credentials handed out for it.
type Result struct {
	Booking *Booking
	Account *account.Account
}

// Service manages the booking lifecycle: confirm on request, explicit cancel
// by the owner, automatic completion once the meeting end has passed.
type Service interface {
	Request(ctx context.Context, params RequestParams) (*Result, error)
	Cancel(ctx context.Context, bookingID, requesterID string) (*Booking, error)
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	ListConfirmedByDate(ctx context.Context, date time.Time) ([]*Booking, error)
	SweepCompleted(ctx context.Context, now time.Time) (int64, error)
}

type service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a booking Service. The clock is injectable for tests.
func NewService(repo Repository, logger *slog.Logger) Service {
	return &service{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

func (s *service) Request(ctx context.Context, params RequestParams) (*Result, error) {
	startMinute, err := timewindow.ParseClock(params.StartTime)
	if err != nil {
		return nil, ErrInvalidClock
	}
	endMinute, err := timewindow.ParseClock(params.EndTime)
	if err != nil {
		return nil, ErrInvalidClock
	}

	if startMinute >= endMinute {
		return nil, ErrInvalidWindow
	}
	if params.Participants < 1 || params.Title == "" {
		return nil, ErrInvalidInput
	}

	// Strict check: a start equal to the current instant is already too late.
	if !timewindow.StartsInFuture(params.MeetingDate, startMinute, s.now()) {
		return nil, ErrPastSchedule
	}

	b, a, err := s.repo.ReserveConfirmed(ctx, ReserveParams{
		UserID:       params.UserID,
		Title:        params.Title,
		MeetingDate:  params.MeetingDate,
		StartMinute:  startMinute,
		EndMinute:    endMinute,
		Participants: params.Participants,
		Purpose:      params.Purpose,
	})
	if err != nil {
		// ErrNoCapacity is an expected outcome, not a failure: nothing was
		// persisted and the caller should suggest another slot.
		return nil, err
	}

	return &Result{Booking: b, Account: a}, nil
}

func (s *service) Cancel(ctx context.Context, bookingID, requesterID string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if b.UserID != requesterID {
		return nil, ErrNotOwner
	}
	if b.Status != StatusConfirmed {
		return nil, ErrInvalidState
	}

	if err := s.repo.UpdateStatus(ctx, bookingID, StatusCancelled); err != nil {
		return nil, err
	}

	b.Status = StatusCancelled
	return b, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

// List sweeps first so past-due confirmed rows never show up as still active.
func (s *service) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	if _, err := s.SweepCompleted(ctx, s.now()); err != nil {
		return nil, 0, err
	}
	return s.repo.List(ctx, filter)
}

func (s *service) ListConfirmedByDate(ctx context.Context, date time.Time) ([]*Booking, error) {
	if _, err := s.SweepCompleted(ctx, s.now()); err != nil {
		return nil, err
	}
	return s.repo.ListConfirmedByDate(ctx, date)
}

func (s *service) SweepCompleted(ctx context.Context, now time.Time) (int64, error) {
	n, err := s.repo.CompletePastDue(ctx, now)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.logger.Info("completed past-due bookings", "count", n)
	}
	return n, nil
}

// IsNoCapacity reports whether err is the distinguished no-capacity outcome.
func IsNoCapacity(err error) bool {
	return errors.Is(err, ErrNoCapacity)
}
