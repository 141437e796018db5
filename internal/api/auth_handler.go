package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/meetroom-labs/zoom-booking-backend/internal/auth"
	"github.com/meetroom-labs/zoom-booking-backend/internal/session"
	"github.com/meetroom-labs/zoom-booking-backend/internal/user"
	userHttp "github.com/meetroom-labs/zoom-booking-backend/internal/user/http"
)

type AuthHandler struct {
	userService    user.Service
	sessionService session.Service
	jwtManager     *auth.JWTManager
}

func NewAuthHandler(
	userService user.Service,
	sessionService session.Service,
	jwtManager *auth.JWTManager,
) *AuthHandler {
	return &AuthHandler{
		userService:    userService,
		sessionService: sessionService,
		jwtManager:     jwtManager,
	}
}

//
// POST /v1/auth/login
//

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	ctx := c.Request.Context()

	u, err := h.userService.Login(ctx, req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "invalid username or password",
		})
		return
	}

	// Creating the session revokes every other live session of this user and
	// notifies their connections.
	sess, err := h.sessionService.Create(ctx, u.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to create session",
		})
		return
	}

	token, err := h.jwtManager.GenerateSessionToken(u.ID, sess.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to generate token",
		})
		return
	}

	resp := LoginResponse{
		AccessToken: token,
		User:        userHttp.NewUserResponse(u),
	}

	c.JSON(http.StatusOK, resp)
}

//
// POST /v1/auth/logout
//

func (h *AuthHandler) Logout(c *gin.Context) {
	sessionID := auth.GetSessionID(c)
	if sessionID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := h.sessionService.Revoke(c.Request.Context(), sessionID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to log out"})
		return
	}

	c.Status(http.StatusOK)
}

//
// GET /v1/me
//

func (h *AuthHandler) Me(c *gin.Context) {
	userID := auth.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	u, err := h.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, userHttp.NewUserResponse(u))
}
