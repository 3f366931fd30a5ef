package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/status-dashboard/internal/dashboard"
)

const defaultInterval = 10 * time.Second

// Ticker is what the scheduler drives once per interval.
type Ticker interface {
	Tick(ctx context.Context) (dashboard.Frame, error)
}

// Scheduler redraws the dashboard on a fixed interval. Ticks never overlap:
// a slow tick delays the next one instead of running alongside it.
type Scheduler struct {
	scheduler *gocron.Scheduler
	ticker    Ticker
	interval  time.Duration
	logger    *slog.Logger
	ctx       context.Context
}

// New creates a new Scheduler. ctx bounds every tick and is typically the
// process lifetime context.
func New(ctx context.Context, interval time.Duration, ticker Ticker, logger *slog.Logger) *Scheduler {
	s := gocron.NewScheduler(time.Local)
	s.SingletonModeAll()
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		scheduler: s,
		ticker:    ticker,
		interval:  interval,
		logger:    logger,
		ctx:       ctx,
	}
}

// Start schedules the tick job and starts the underlying scheduler. The
// first tick runs immediately.
func (s *Scheduler) Start() error {
	seconds := int(s.interval / time.Second)
	if seconds <= 0 {
		seconds = int(defaultInterval / time.Second)
	}

	_, err := s.scheduler.Every(seconds).Seconds().Do(s.run)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

func (s *Scheduler) run() {
	if s.ctx.Err() != nil {
		return
	}
	frame, err := s.ticker.Tick(s.ctx)
	if err != nil {
		s.logger.Error("scheduler: tick failed", "error", err)
		return
	}
	s.logger.Debug("scheduler: tick complete", "frame_id", frame.ID)
}

// Stop stops the scheduler and cancels any future ticks.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
