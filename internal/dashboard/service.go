package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/i474232898/status-dashboard/internal/common"
	"github.com/i474232898/status-dashboard/internal/metrics"
)

// Service builds a frame from its sources each tick, draws it and keeps the
// latest one around for the HTTP view.
type Service struct {
	store   Store
	display Display
	sources []Source
	logger  *slog.Logger
	now     func() time.Time
}

// ServiceOption configures the service.
type ServiceOption func(*Service)

// WithLogger sets the service logger.
func WithLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the wall clock used by Tick.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService creates a new Service. Sources are queried and drawn in the
// given order.
func NewService(store Store, display Display, sources []Source, opts ...ServiceOption) *Service {
	s := &Service{
		store:   store,
		display: display,
		sources: sources,
		logger:  slog.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BuildFrame queries every source once, one after another, and lays the
// results out for now.
func (s *Service) BuildFrame(ctx context.Context, now time.Time) Frame {
	lines := make([]string, 0, len(s.sources))
	for _, src := range s.sources {
		line := src.Line(ctx, now)
		metrics.IncLine(src.Name(), lineStatus(line))
		lines = append(lines, line)
	}

	width, height := s.display.Bounds()
	return ComposeFrame(uuid.NewString(), now, width, height, lines)
}

// Tick builds a frame for the current time, renders it and publishes it.
func (s *Service) Tick(ctx context.Context) (Frame, error) {
	start := time.Now()
	defer func() { metrics.ObserveTick(time.Since(start)) }()

	frame := s.BuildFrame(ctx, s.now())
	if s.store != nil {
		s.store.SaveFrame(frame)
	}

	if err := Render(frame, s.display); err != nil {
		return frame, fmt.Errorf("render frame %s: %w", frame.ID, err)
	}

	s.logger.Debug("frame rendered", "frame_id", frame.ID, "lines", len(frame.Lines), "elapsed", time.Since(start))
	return frame, nil
}

// Latest delegates to the underlying store.
func (s *Service) Latest() (Frame, error) {
	if s.store == nil {
		return Frame{}, fmt.Errorf("no frame store configured")
	}
	return s.store.Latest()
}

// lineStatus classifies a rendered line for metrics.
func lineStatus(line string) string {
	switch {
	case strings.HasSuffix(line, ": Disabled"):
		return "disabled"
	case common.HasAny(line, "N/A", "Config Error", "Unknown"):
		return "degraded"
	default:
		return "ok"
	}
}
