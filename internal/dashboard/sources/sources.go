package sources

import (
	"log/slog"

	"github.com/i474232898/status-dashboard/internal/config"
	"github.com/i474232898/status-dashboard/internal/dashboard"
	"github.com/i474232898/status-dashboard/internal/fetch"
)

// FromConfig returns the sources in draw order: weather, cost, crypto,
// stocks.
func FromConfig(cfg config.Config, fetcher fetch.Fetcher, logger *slog.Logger) []dashboard.Source {
	return []dashboard.Source{
		NewWeather(cfg.Weather, fetcher, logger),
		NewTariff(cfg.Tariff),
		NewCrypto(cfg.Crypto, fetcher, logger),
		NewStocks(cfg.Stocks, fetcher, logger),
	}
}
