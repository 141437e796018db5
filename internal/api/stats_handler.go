package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/meetroom-labs/zoom-booking-backend/internal/account"
	accountHttp "github.com/meetroom-labs/zoom-booking-backend/internal/account/http"
	"github.com/meetroom-labs/zoom-booking-backend/internal/auth"
	"github.com/meetroom-labs/zoom-booking-backend/internal/booking"
	bookingHttp "github.com/meetroom-labs/zoom-booking-backend/internal/booking/http"
	"github.com/meetroom-labs/zoom-booking-backend/internal/user"
	userHttp "github.com/meetroom-labs/zoom-booking-backend/internal/user/http"
)

type StatsHandler struct {
	bookingService booking.Service
	accountService account.Service
	userService    user.Service

	now func() time.Time
}

func NewStatsHandler(
	bookingService booking.Service,
	accountService account.Service,
	userService user.Service,
) *StatsHandler {
	return &StatsHandler{
		bookingService: bookingService,
		accountService: accountService,
		userService:    userService,
		now:            time.Now,
	}
}

type AdminStatsResponse struct {
	TotalBookings     int `json:"total_bookings"`
	ConfirmedBookings int `json:"confirmed_bookings"`
	CompletedBookings int `json:"completed_bookings"`
	CancelledBookings int `json:"cancelled_bookings"`
	TotalUsers        int `json:"total_users"`

	LatestBookings []bookingHttp.BookingResponse `json:"latest_bookings"`
	Users          []userHttp.UserResponse       `json:"users"`
}

//
// GET /v1/admin/stats
//

func (h *StatsHandler) AdminStats(c *gin.Context) {
	ctx := c.Request.Context()

	latest, total, err := h.bookingService.List(ctx, booking.Filter{Page: 1, PageSize: 5})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load bookings"})
		return
	}

	countByStatus := func(status booking.Status) (int, error) {
		_, n, err := h.bookingService.List(ctx, booking.Filter{
			Status:   string(status),
			Page:     1,
			PageSize: 1,
		})
		return n, err
	}

	confirmed, err := countByStatus(booking.StatusConfirmed)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load bookings"})
		return
	}
	completed, err := countByStatus(booking.StatusCompleted)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load bookings"})
		return
	}
	cancelled, err := countByStatus(booking.StatusCancelled)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load bookings"})
		return
	}

	users, userTotal, err := h.userService.List(ctx, user.Filter{Page: 1, PageSize: 100})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load users"})
		return
	}

	resp := AdminStatsResponse{
		TotalBookings:     total,
		ConfirmedBookings: confirmed,
		CompletedBookings: completed,
		CancelledBookings: cancelled,
		TotalUsers:        userTotal,
		LatestBookings:    make([]bookingHttp.BookingResponse, 0, len(latest)),
		Users:             make([]userHttp.UserResponse, 0, len(users)),
	}
	for _, b := range latest {
		resp.LatestBookings = append(resp.LatestBookings, bookingHttp.NewBookingResponse(b))
	}
	for _, u := range users {
		resp.Users = append(resp.Users, userHttp.NewUserResponse(u))
	}

	c.JSON(http.StatusOK, resp)
}

type DashboardAccount struct {
	Account accountHttp.AccountResponse `json:"account"`
	InUse   bool                        `json:"in_use"`
}

type DashboardResponse struct {
	Date            string                        `json:"date"`
	Accounts        []DashboardAccount            `json:"accounts"`
	AvailableNow    int                           `json:"available_now"`
	TodaysBookings  []bookingHttp.BookingResponse `json:"todays_bookings"`
	MyUpcomingCount int                           `json:"my_upcoming_count"`
}

//
// GET /v1/dashboard
//

func (h *StatsHandler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()
	now := h.now()

	accounts, err := h.accountService.ListActive(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load accounts"})
		return
	}

	todays, err := h.bookingService.ListConfirmedByDate(ctx, now)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load bookings"})
		return
	}

	minute := now.Hour()*60 + now.Minute()
	inUse := make(map[int64]bool, len(todays))
	for _, b := range todays {
		if b.AccountID == nil {
			continue
		}
		if b.StartMinute <= minute && minute < b.EndMinute {
			inUse[*b.AccountID] = true
		}
	}

	_, myUpcoming, err := h.bookingService.List(ctx, booking.Filter{
		UserID:   auth.GetUserID(c),
		Status:   string(booking.StatusConfirmed),
		Page:     1,
		PageSize: 1,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load bookings"})
		return
	}

	resp := DashboardResponse{
		Date:            now.Format("2006-01-02"),
		Accounts:        make([]DashboardAccount, 0, len(accounts)),
		TodaysBookings:  make([]bookingHttp.BookingResponse, 0, len(todays)),
		MyUpcomingCount: myUpcoming,
	}
	for _, a := range accounts {
		resp.Accounts = append(resp.Accounts, DashboardAccount{
			Account: accountHttp.NewAccountResponse(a, false),
			InUse:   inUse[a.ID],
		})
		if !inUse[a.ID] {
			resp.AvailableNow++
		}
	}
	for _, b := range todays {
		resp.TodaysBookings = append(resp.TodaysBookings, bookingHttp.NewBookingResponse(b))
	}

	c.JSON(http.StatusOK, resp)
}
