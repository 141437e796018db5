package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	acctHttp "github.com/meetroom-labs/zoom-booking-backend/internal/account/http"
	"github.com/meetroom-labs/zoom-booking-backend/internal/auth"
	"github.com/meetroom-labs/zoom-booking-backend/internal/booking"
	"github.com/meetroom-labs/zoom-booking-backend/internal/pkg/request"
	"github.com/meetroom-labs/zoom-booking-backend/internal/pkg/response"
	"github.com/meetroom-labs/zoom-booking-backend/internal/user"
)

type Handler struct {
	service     booking.Service
	userService user.Service
}

func NewHandler(service booking.Service, userService user.Service) *Handler {
	return &Handler{
		service:     service,
		userService: userService,
	}
}

// checkIsAdmin helper checks if the current user holds the admin role.
func (h *Handler) checkIsAdmin(c *gin.Context, userID string) bool {
	u, err := h.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		return false
	}
	return u.IsAdmin()
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	userID := auth.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	meetingDate, err := time.ParseInLocation("2006-01-02", req.MeetingDate, time.Local)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meeting_date"})
		return
	}

	res, err := h.service.Request(c.Request.Context(), booking.RequestParams{
		UserID:       userID,
		Title:        req.Title,
		MeetingDate:  meetingDate,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Participants: req.Participants,
		Purpose:      req.Purpose,
	})
	if err != nil {
		if booking.IsNoCapacity(err) {
			// Expected outcome, not a server failure: the caller should try
			// another slot.
			c.JSON(http.StatusConflict, gin.H{
				"error":  err.Error(),
				"reason": "no_capacity",
			})
			return
		}
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, CreateBookingResponse{
		Booking: NewBookingResponse(res.Booking),
		Account: acctHttp.NewAccountResponse(res.Account, true),
	})
}

func (h *Handler) List(c *gin.Context) {
	var req ListBookingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}

	currentUserID := auth.GetUserID(c)
	isAdmin := h.checkIsAdmin(c, currentUserID)

	filterUserID := currentUserID
	if isAdmin {
		// Admins see everything, optionally narrowed to one user.
		filterUserID = req.UserID
	}

	filter := booking.Filter{
		UserID:   filterUserID,
		Status:   req.Status,
		Page:     req.Page,
		PageSize: req.PageSize,
	}

	bookings, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list bookings"})
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	userID := auth.GetUserID(c)
	if b.UserID != userID && !h.checkIsAdmin(c, userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Cancel(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	b, err := h.service.Cancel(c.Request.Context(), req.ID, auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}
