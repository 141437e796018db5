package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/meetroom-labs/zoom-booking-backend/internal/app"
	"github.com/meetroom-labs/zoom-booking-backend/internal/config"
	"github.com/meetroom-labs/zoom-booking-backend/internal/db"
)

func main() {
	// For receiving Ctrl+C / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// Apply pending schema migrations before opening the pool
	if err := db.RunMigrations(cfg.DBDSN); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	// Connect DB
	pool, err := db.NewPool(ctx, cfg.DBDSN)
	if err != nil {
		log.Fatalf("failed to connect to db: %v", err)
	}
	defer pool.Close()

	// Wire modules
	container := app.NewContainer(cfg, pool, logger)

	// First-run bootstrap: default admin user and placeholder account pool
	if err := container.UserService.SeedAdmin(ctx, cfg.AdminPass); err != nil {
		log.Fatalf("failed to seed admin user: %v", err)
	}
	if err := container.AccountService.Seed(ctx); err != nil {
		log.Fatalf("failed to seed account pool: %v", err)
	}

	// Periodic booking sweep (confirmed bookings whose window has passed)
	if err := container.Sweeper.Start(cfg.SweepSpec); err != nil {
		log.Fatalf("failed to start sweeper: %v", err)
	}
	defer container.Sweeper.Stop()

	// Use http.Server for graceful shutdown
	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: container.Router,
	}

	// Run server in separate goroutine
	go func() {
		log.Printf("server running on %s", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Wait for Ctrl+C
	<-ctx.Done()
	log.Println("shutdown signal received")

	// Create a shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("server forced to shutdown: %v", err)
	}

	log.Println("server exited gracefully")
}
