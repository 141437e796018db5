package http

import (
	"time"

	acctHttp "github.com/meetroom-labs/zoom-booking-backend/internal/account/http"
	"github.com/meetroom-labs/zoom-booking-backend/internal/booking"
	"github.com/meetroom-labs/zoom-booking-backend/internal/pkg/request"
	"github.com/meetroom-labs/zoom-booking-backend/internal/pkg/timewindow"
	userHttp "github.com/meetroom-labs/zoom-booking-backend/internal/user/http"
)

// ListBookingsRequest defines query parameters for listing bookings.
type ListBookingsRequest struct {
	request.ListParams
	Status string `form:"status" binding:"omitempty,oneof=confirmed cancelled completed"`
	UserID string `form:"user_id" binding:"omitempty,uuid"`
}

type BookingResponse struct {
	ID           string               `json:"id"`
	User         userHttp.UserTag     `json:"user"`
	Account      *acctHttp.AccountTag `json:"account"`
	Title        string               `json:"title"`
	MeetingDate  string               `json:"meeting_date"`
	StartTime    string               `json:"start_time"`
	EndTime      string               `json:"end_time"`
	Participants int                  `json:"participants"`
	Purpose      string               `json:"purpose"`
	Status       string               `json:"status"`
	CreatedAt    time.Time            `json:"created_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	resp := BookingResponse{
		ID:           b.ID,
		User:         userHttp.UserTag{ID: b.UserID, Name: b.UserName},
		Title:        b.Title,
		MeetingDate:  b.MeetingDate.Format("2006-01-02"),
		StartTime:    timewindow.FormatClock(b.StartMinute),
		EndTime:      timewindow.FormatClock(b.EndMinute),
		Participants: b.Participants,
		Purpose:      b.Purpose,
		Status:       string(b.Status),
		CreatedAt:    b.CreatedAt,
	}
	if b.AccountID != nil {
		resp.Account = &acctHttp.AccountTag{ID: *b.AccountID, Name: b.AccountName}
	}
	return resp
}

type CreateBookingRequest struct {
	Title        string `json:"title" binding:"required"`
	MeetingDate  string `json:"meeting_date" binding:"required,datetime=2006-01-02"`
	StartTime    string `json:"start_time" binding:"required"`
	EndTime      string `json:"end_time" binding:"required"`
	Participants int    `json:"participants" binding:"required,min=1"`
	Purpose      string `json:"purpose" binding:"required"`
}

// CreateBookingResponse returns the confirmed booking together with the
// credentials of the assigned account.
type CreateBookingResponse struct {
	Booking BookingResponse          `json:"booking"`
	Account acctHttp.AccountResponse `json:"account"`
}
