package sources

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/i474232898/status-dashboard/internal/config"
	"github.com/i474232898/status-dashboard/internal/fetch"
)

// Weather renders current conditions from a wttr.in compatible endpoint.
type Weather struct {
	name    string
	cfg     config.Weather
	fetcher fetch.Fetcher
	logger  *slog.Logger
}

func NewWeather(cfg config.Weather, fetcher fetch.Fetcher, logger *slog.Logger) *Weather {
	return &Weather{
		name:    "weather",
		cfg:     cfg,
		fetcher: fetcher,
		logger:  loggerOrDefault(logger),
	}
}

func (w *Weather) Name() string {
	return w.name
}

// URL returns the request URL, or "" when city or base URL is unusable.
func (w *Weather) URL() string {
	city := strings.ReplaceAll(w.cfg.City, " ", "+")
	base := trimQuery(w.cfg.APIURL)
	if city == "" || base == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s?format=j1", base, city)
}

func (w *Weather) Line(ctx context.Context, _ time.Time) string {
	if !w.cfg.Enable {
		return "Weather: Disabled"
	}

	u := w.URL()
	if u == "" {
		return "Weather: N/A"
	}

	res := w.fetcher.Fetch(ctx, u)
	if !res.OK() {
		return "Weather: N/A (fetch error)"
	}

	var payload weatherPayload
	if err := res.Decode(&payload); err != nil {
		w.logger.Warn("weather parse error", "error", err)
		return "Weather: N/A"
	}

	line, err := payload.line()
	if err != nil {
		w.logger.Warn("weather parse error", "error", err)
		return "Weather: N/A"
	}
	return line
}

// weatherPayload is the part of the j1 format we read.
type weatherPayload struct {
	CurrentCondition []struct {
		TempF       *scalar `json:"temp_F"`
		FeelsLikeF  *scalar `json:"FeelsLikeF"`
		Humidity    *scalar `json:"humidity"`
		WindMiles   *scalar `json:"windspeedMiles"`
		PrecipInch  *scalar `json:"precipInches"`
		WeatherDesc []struct {
			Value *scalar `json:"value"`
		} `json:"weatherDesc"`
	} `json:"current_condition"`
}

func (p weatherPayload) line() (string, error) {
	if len(p.CurrentCondition) == 0 {
		return "", errors.New("current_condition: missing or empty")
	}
	cur := p.CurrentCondition[0]
	if len(cur.WeatherDesc) == 0 {
		return "", errors.New("weatherDesc: missing or empty")
	}

	fields := []struct {
		name string
		val  *scalar
	}{
		{"temp_F", cur.TempF},
		{"FeelsLikeF", cur.FeelsLikeF},
		{"weatherDesc.value", cur.WeatherDesc[0].Value},
		{"humidity", cur.Humidity},
		{"windspeedMiles", cur.WindMiles},
		{"precipInches", cur.PrecipInch},
	}
	for _, f := range fields {
		if f.val == nil {
			return "", fmt.Errorf("%s: missing", f.name)
		}
	}

	return fmt.Sprintf("Weather: %s°F (%s), Feels %s°F, %s%% RH, %s mph, %s in",
		cur.TempF, cur.WeatherDesc[0].Value, cur.FeelsLikeF,
		cur.Humidity, cur.WindMiles, cur.PrecipInch,
	), nil
}
