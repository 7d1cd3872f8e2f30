package app

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// BookingCompleter marks bookings whose day has passed as completed.
type BookingCompleter interface {
	CompletePastBookings(ctx context.Context) (int64, error)
}

// Scheduler runs background maintenance tasks.
type Scheduler struct {
	completer BookingCompleter
	interval  time.Duration
	logger    *zap.Logger
	stopChan  chan struct{}
	stopOnce  sync.Once
	wg        sync.WaitGroup
}

func NewScheduler(completer BookingCompleter, interval time.Duration, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		completer: completer,
		interval:  interval,
		logger:    logger,
		stopChan:  make(chan struct{}),
	}
}

func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler", zap.Duration("interval", s.interval))

	s.wg.Add(1)
	go s.runCompletionTask(ctx)
}

// Stop ends the background tasks and waits for them to return. Safe to call twice.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.logger.Info("Stopping background scheduler")
		close(s.stopChan)
	})
	s.wg.Wait()
}

func (s *Scheduler) runCompletionTask(ctx context.Context) {
	defer s.wg.Done()

	// First run right away so a restart catches up.
	s.completeBookings(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.completeBookings(ctx)
		case <-s.stopChan:
			s.logger.Info("Booking completion task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Booking completion task cancelled")
			return
		}
	}
}

func (s *Scheduler) completeBookings(ctx context.Context) {
	n, err := s.completer.CompletePastBookings(ctx)
	if err != nil {
		s.logger.Error("Failed to complete past bookings", zap.Error(err))
		return
	}

	s.logger.Debug("Booking completion run finished", zap.Int64("completed", n))
}
