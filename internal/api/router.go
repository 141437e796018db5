package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/meetroom-labs/zoom-booking-backend/internal/account"
	accountHttp "github.com/meetroom-labs/zoom-booking-backend/internal/account/http"
	"github.com/meetroom-labs/zoom-booking-backend/internal/auth"
	"github.com/meetroom-labs/zoom-booking-backend/internal/booking"
	bookingHttp "github.com/meetroom-labs/zoom-booking-backend/internal/booking/http"
	"github.com/meetroom-labs/zoom-booking-backend/internal/config"
	"github.com/meetroom-labs/zoom-booking-backend/internal/session"
	sessionHttp "github.com/meetroom-labs/zoom-booking-backend/internal/session/http"
	"github.com/meetroom-labs/zoom-booking-backend/internal/user"
	userHttp "github.com/meetroom-labs/zoom-booking-backend/internal/user/http"
)

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (CORS, Logger, Auth) and registering routes for various modules.
func NewRouter(
	cfg *config.Config,
	userService user.Service,
	accountService account.Service,
	bookingService booking.Service,
	sessionService session.Service,
	hub *session.Hub,
	jwtManager *auth.JWTManager,
) *gin.Engine {

	r := gin.New()

	// Global Middleware:
	// - Logger: Logs request information to the console.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	r.Use(gin.Logger(), gin.Recovery())

	// Configure CORS (Cross-Origin Resource Sharing).
	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// authMiddleware: Validates the bearer JWT and checks that its session is
	// still live, so revoked tokens stop working immediately.
	authMiddleware := auth.AuthRequired(jwtManager, sessionService)
	// adminMiddleware: Further checks if the authenticated user has admin privileges.
	adminMiddleware := RequireAdmin(userService)

	// Initialize HTTP Handlers for each module (injecting Service dependencies).
	authHandler := NewAuthHandler(userService, sessionService, jwtManager)
	statsHandler := NewStatsHandler(bookingService, accountService, userService)
	userHandler := userHttp.NewHandler(userService)
	accountHandler := accountHttp.NewHandler(accountService, userService)
	bookingHandler := bookingHttp.NewHandler(bookingService, userService)
	sessionHandler := sessionHttp.NewHandler(jwtManager, sessionService, hub)

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		v1.POST("/auth/login", authHandler.Login)
		v1.POST("/auth/logout", authMiddleware, authHandler.Logout)
		v1.GET("/me", authMiddleware, authHandler.Me)
		v1.GET("/dashboard", authMiddleware, statsHandler.Dashboard)
		v1.GET("/admin/stats", authMiddleware, adminMiddleware, statsHandler.AdminStats)

		sessionHttp.RegisterRoutes(v1, sessionHandler)
		userHttp.RegisterRoutes(v1, userHandler, authMiddleware, adminMiddleware)
		accountHttp.RegisterRoutes(v1, accountHandler, authMiddleware, adminMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware)
	}

	return r
}
