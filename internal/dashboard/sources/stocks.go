package sources

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/i474232898/status-dashboard/internal/common"
	"github.com/i474232898/status-dashboard/internal/config"
	"github.com/i474232898/status-dashboard/internal/fetch"
)

// Stocks renders last prices from an Alpha Vantage GLOBAL_QUOTE compatible
// endpoint, one request per ticker.
type Stocks struct {
	name    string
	cfg     config.Stocks
	fetcher fetch.Fetcher
	logger  *slog.Logger
}

func NewStocks(cfg config.Stocks, fetcher fetch.Fetcher, logger *slog.Logger) *Stocks {
	return &Stocks{
		name:    "stocks",
		cfg:     cfg,
		fetcher: fetcher,
		logger:  loggerOrDefault(logger),
	}
}

func (s *Stocks) Name() string {
	return s.name
}

// QuoteURL builds the quote request for one symbol.
func (s *Stocks) QuoteURL(symbol string) string {
	sep := "?"
	if strings.Contains(s.cfg.APIURL, "?") {
		sep = "&"
	}
	return s.cfg.APIURL + sep +
		"function=GLOBAL_QUOTE" +
		"&symbol=" + url.QueryEscape(symbol) +
		"&apikey=" + url.QueryEscape(s.cfg.APIKey)
}

// Line fetches tickers one after another; a failed ticker degrades to
// "$N/A" and the rest are still fetched.
func (s *Stocks) Line(ctx context.Context, _ time.Time) string {
	if !s.cfg.Enable {
		return "Stocks: Disabled"
	}
	if len(s.cfg.Tickers) == 0 || s.cfg.APIKey == "" {
		return "Stocks: N/A (invalid config)"
	}

	parts := make([]string, 0, len(s.cfg.Tickers))
	for _, ticker := range s.cfg.Tickers {
		parts = append(parts, ticker+" $"+s.price(ctx, ticker))
	}
	return common.JoinEntries("Stocks", parts)
}

type quotePayload struct {
	GlobalQuote struct {
		Price *scalar `json:"05. price"`
	} `json:"Global Quote"`
}

func (s *Stocks) price(ctx context.Context, ticker string) string {
	res := s.fetcher.Fetch(ctx, s.QuoteURL(ticker))
	if !res.OK() {
		return notAvailable
	}

	var payload quotePayload
	if err := res.Decode(&payload); err != nil {
		s.logger.Warn("stocks parse error", "ticker", ticker, "error", err)
		return notAvailable
	}
	if payload.GlobalQuote.Price == nil {
		return notAvailable
	}
	return payload.GlobalQuote.Price.String()
}
