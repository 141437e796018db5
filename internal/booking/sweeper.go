package booking

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Sweeper periodically moves past-due confirmed bookings to completed. Reads
// also sweep opportunistically; the cron run only bounds how stale a row can
// get when nobody is looking.
type Sweeper struct {
	cron    *cron.Cron
	service Service
	logger  *slog.Logger
}

func NewSweeper(service Service, logger *slog.Logger) *Sweeper {
	return &Sweeper{
		cron:    cron.New(),
		service: service,
		logger:  logger,
	}
}

// Start registers the sweep under the given cron spec and starts the
// scheduler.
func (s *Sweeper) Start(spec string) error {
	_, err := s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if _, err := s.service.SweepCompleted(ctx, time.Now()); err != nil {
			s.logger.Error("booking sweep failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("booking sweeper started", "spec", spec)
	return nil
}

// Stop stops the scheduler; a sweep already in flight finishes on its own.
func (s *Sweeper) Stop() {
	s.cron.Stop()
	s.logger.Info("booking sweeper stopped")
}
