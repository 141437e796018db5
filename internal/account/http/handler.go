package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/meetroom-labs/zoom-booking-backend/internal/account"
	"github.com/meetroom-labs/zoom-booking-backend/internal/auth"
	"github.com/meetroom-labs/zoom-booking-backend/internal/user"
)

type Handler struct {
	service     account.Service
	userService user.Service
}

func NewHandler(service account.Service, userService user.Service) *Handler {
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

func parseAccountID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid account id"})
		return 0, false
	}
	return id, true
}

func (h *Handler) List(c *gin.Context) {
	accounts, err := h.service.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list accounts"})
		return
	}

	includeSecret := h.checkIsAdmin(c, auth.GetUserID(c))

	items := make([]AccountResponse, len(accounts))
	for i, a := range accounts {
		items[i] = NewAccountResponse(a, includeSecret)
	}

	c.JSON(http.StatusOK, items)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := parseAccountID(c)
	if !ok {
		return
	}

	a, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if err == account.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "account not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get account"})
		return
	}

	includeSecret := h.checkIsAdmin(c, auth.GetUserID(c))
	c.JSON(http.StatusOK, NewAccountResponse(a, includeSecret))
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	a, err := h.service.Create(c.Request.Context(), account.CreateRequest{
		Name:   req.Name,
		Login:  req.Login,
		Secret: req.Secret,
	})
	if err != nil {
		if err == account.ErrEmptyName {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create account"})
		return
	}

	c.JSON(http.StatusCreated, NewAccountResponse(a, true))
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := parseAccountID(c)
	if !ok {
		return
	}

	var req UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	a, err := h.service.Update(c.Request.Context(), id, account.UpdateRequest{
		Name:     req.Name,
		Login:    req.Login,
		Secret:   req.Secret,
		IsActive: req.IsActive,
	})
	if err != nil {
		switch err {
		case account.ErrNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "account not found"})
		case account.ErrEmptyName:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update account"})
		}
		return
	}

	c.JSON(http.StatusOK, NewAccountResponse(a, true))
}
