package app

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meetroom-labs/zoom-booking-backend/internal/account"
	"github.com/meetroom-labs/zoom-booking-backend/internal/api"
	"github.com/meetroom-labs/zoom-booking-backend/internal/auth"
	"github.com/meetroom-labs/zoom-booking-backend/internal/booking"
	"github.com/meetroom-labs/zoom-booking-backend/internal/config"
	"github.com/meetroom-labs/zoom-booking-backend/internal/session"
	"github.com/meetroom-labs/zoom-booking-backend/internal/user"
)

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager

	UserService    user.Service
	AccountService account.Service
	Sweeper        *booking.Sweeper
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg *config.Config, pool *pgxpool.Pool, logger *slog.Logger) *Container {
	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.SessionTTL)
	hub := session.NewHub(logger)

	// User Module
	userRepo := user.NewPgxRepository(pool)
	userService := user.NewService(userRepo, passwordHasher)

	// Session Module
	sessionRepo := session.NewPgxRepository(pool)
	sessionService := session.NewService(sessionRepo, hub, cfg.SessionTTL)

	// Account Module
	accountRepo := account.NewPgxRepository(pool)
	accountService := account.NewService(accountRepo, logger)

	// Booking Module
	bookingRepo := booking.NewPgxRepository(pool)
	bookingService := booking.NewService(bookingRepo, logger)
	sweeper := booking.NewSweeper(bookingService, logger)

	// Router
	router := api.NewRouter(
		cfg,
		userService,
		accountService,
		bookingService,
		sessionService,
		hub,
		jwtManager,
	)

	return &Container{
		Router:         router,
		JWTManager:     jwtManager,
		UserService:    userService,
		AccountService: accountService,
		Sweeper:        sweeper,
	}
}
