package sources

import (
	"context"
	"time"

	"github.com/i474232898/status-dashboard/internal/config"
	"github.com/i474232898/status-dashboard/internal/tariff"
)

// Tariff exposes the time-of-use evaluator as a dashboard source.
type Tariff struct {
	cfg config.Tariff
}

func NewTariff(cfg config.Tariff) *Tariff {
	return &Tariff{cfg: cfg}
}

func (t *Tariff) Name() string {
	return "cost"
}

func (t *Tariff) Line(_ context.Context, now time.Time) string {
	return tariff.Evaluate(t.cfg, now)
}
