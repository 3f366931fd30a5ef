package sources

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/i474232898/status-dashboard/internal/common"
	"github.com/i474232898/status-dashboard/internal/config"
	"github.com/i474232898/status-dashboard/internal/fetch"
)

// Crypto renders USD prices from a CoinGecko simple/price compatible
// endpoint.
type Crypto struct {
	name    string
	cfg     config.Crypto
	fetcher fetch.Fetcher
	logger  *slog.Logger
}

func NewCrypto(cfg config.Crypto, fetcher fetch.Fetcher, logger *slog.Logger) *Crypto {
	return &Crypto{
		name:    "crypto",
		cfg:     cfg,
		fetcher: fetcher,
		logger:  loggerOrDefault(logger),
	}
}

func (c *Crypto) Name() string {
	return c.name
}

// URL appends the ids parameter to the configured base, which is expected
// to carry its own query string already.
func (c *Crypto) URL() string {
	ids := make([]string, 0, len(c.cfg.Tickers))
	for _, t := range c.cfg.Tickers {
		ids = append(ids, url.QueryEscape(t))
	}
	return c.cfg.APIURL + "&ids=" + strings.Join(ids, ",")
}

func (c *Crypto) Line(ctx context.Context, _ time.Time) string {
	if !c.cfg.Enable {
		return "Crypto: Disabled"
	}
	if len(c.cfg.Tickers) == 0 || c.cfg.APIURL == "" {
		return "Crypto: N/A (invalid config)"
	}

	res := c.fetcher.Fetch(ctx, c.URL())
	if !res.OK() {
		return "Crypto: N/A (fetch error)"
	}

	coins, err := orderedEntries(res.Body)
	if err != nil {
		c.logger.Warn("crypto parse error", "error", err)
		return "Crypto: N/A"
	}

	parts := make([]string, 0, len(coins))
	for _, coin := range coins {
		parts = append(parts, coin.Key+" $"+c.usdPrice(coin))
	}
	return common.JoinEntries("Crypto", parts)
}

// usdPrice reads the usd member of a coin entry; an absent price is 0.
func (c *Crypto) usdPrice(coin entry) string {
	var quote map[string]json.RawMessage
	if err := json.Unmarshal(coin.Value, &quote); err != nil || quote == nil {
		c.logger.Warn("crypto parse error", "ticker", coin.Key, "error", errNotObject)
		return notAvailable
	}

	raw, ok := quote["usd"]
	if !ok {
		return "0"
	}
	var price *scalar
	if err := json.Unmarshal(raw, &price); err != nil || price == nil {
		c.logger.Warn("crypto parse error", "ticker", coin.Key, "usd", truncate(string(raw), 32))
		return notAvailable
	}
	return price.String()
}
