package booking

import (
	"net/http"
	"time"

	"github.com/meetroom-labs/zoom-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound      = apperror.New(http.StatusNotFound, "booking not found")
	ErrInvalidWindow = apperror.New(http.StatusBadRequest, "end time must be after start time on the same day")
	ErrPastSchedule  = apperror.New(http.StatusBadRequest, "meeting start must be in the future")
	ErrNoCapacity    = apperror.New(http.StatusConflict, "no zoom accounts available for the requested time")
	ErrNotOwner      = apperror.New(http.StatusForbidden, "only the requester may cancel this booking")
	ErrInvalidState  = apperror.New(http.StatusConflict, "only confirmed bookings can be cancelled")
	ErrInvalidClock  = apperror.New(http.StatusBadRequest, "times must be HH:MM")
	ErrInvalidInput  = apperror.New(http.StatusBadRequest, "invalid input parameters")
)

type Status string

const (
	// StatusPending only exists mid-request: a booking row is never persisted
	// as pending. Allocation either confirms directly or persists nothing.
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// Booking is a single reservation of a shared Zoom account. Start and end
// are minutes since midnight on MeetingDate; cross-midnight meetings are not
// supported.
type Booking struct {
	ID           string
	UserID       string
	UserName     string
	AccountID    *int64
	AccountName  string
	Title        string
	MeetingDate  time.Time // date component only
	StartMinute  int
	EndMinute    int
	Participants int
	Purpose      string
	Status       Status
	CreatedAt    time.Time
}

// Filter defines parameters for listing bookings.
type Filter struct {
	UserID string
	Status string

	Page     int
	PageSize int
}
