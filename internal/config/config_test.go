package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleJSON = `{
  "wifi": {"enable": true, "ssid": "home", "password": "secret"},
  "weather": {"enable": true, "city": "Los Angeles", "api_url": "https://wttr.in?format=j1"},
  "crypto": {"enable": true, "tickers": ["bitcoin", "ethereum"], "api_url": "https://api.coingecko.com/api/v3/simple/price?vs_currencies=usd"},
  "stocks": {"enable": false, "tickers": ["AAPL"], "api_key": "demo"},
  "tou_d_prime": {
    "summer_months": [6, 7, 8, 9],
    "weekend_days": [5, 6],
    "summer": {
      "weekday": [{"start": 16, "end": 21, "rate": 60, "label": "Peak", "recommendation": "Avoid"}],
      "weekend": []
    },
    "winter": []
  },
  "main_loop": {"update_interval": 30}
}`

func TestParseJSON(t *testing.T) {
	cfg, err := Parse([]byte(sampleJSON), ".json")
	require.NoError(t, err)

	assert.True(t, cfg.WiFi.Enable)
	assert.Equal(t, "Los Angeles", cfg.Weather.City)
	assert.Equal(t, []string{"bitcoin", "ethereum"}, cfg.Crypto.Tickers)
	assert.False(t, cfg.Stocks.Enable)
	assert.Equal(t, defaultStocksURL, cfg.Stocks.APIURL)

	require.NotNil(t, cfg.Tariff.Summer)
	require.Len(t, cfg.Tariff.Summer.Weekday, 1)
	assert.Equal(t, 60.0, cfg.Tariff.Summer.Weekday[0].Rate)
	assert.NotNil(t, cfg.Tariff.Summer.Weekend)
	assert.NotNil(t, cfg.Tariff.Winter, "present but empty winter must stay non-nil")

	assert.Equal(t, 30*time.Second, cfg.MainLoop.Interval())
	assert.Equal(t, 480, cfg.Display.Width)
	assert.Equal(t, 9*time.Second, cfg.Fetch.Timeout())
}

func TestParseMissingSectionsAreDisabled(t *testing.T) {
	cfg, err := Parse([]byte(`{}`), ".json")
	require.NoError(t, err)

	assert.False(t, cfg.Weather.Enable)
	assert.False(t, cfg.Crypto.Enable)
	assert.False(t, cfg.Stocks.Enable)
	assert.Nil(t, cfg.Tariff.Summer)
	assert.Nil(t, cfg.Tariff.Winter)
	assert.Equal(t, 10*time.Second, cfg.MainLoop.Interval())
}

func TestParseYAML(t *testing.T) {
	raw := `
weather:
  enable: true
  city: Paris
  api_url: https://wttr.in
tou_d_prime:
  summer_months: [7]
  weekend_days: [6]
  summer:
    weekday: []
  winter:
    - {start: 0, end: 24, rate: 12.5, label: Flat, recommendation: Any time}
fetch:
  timeout_seconds: 2.5
`
	cfg, err := Parse([]byte(raw), ".yml")
	require.NoError(t, err)

	assert.Equal(t, "Paris", cfg.Weather.City)
	require.Len(t, cfg.Tariff.Winter, 1)
	assert.Equal(t, 12.5, cfg.Tariff.Winter[0].Rate)
	assert.Equal(t, 2500*time.Millisecond, cfg.Fetch.Timeout())
}

func TestParseKeepsOutOfRangeCalendarValues(t *testing.T) {
	cfg, err := Parse([]byte(`{"tou_d_prime": {"summer_months": [13, 7], "weekend_days": [9]}}`), ".json")
	require.NoError(t, err)
	assert.Equal(t, []int{13, 7}, cfg.Tariff.SummerMonths)
	assert.Equal(t, []int{9}, cfg.Tariff.WeekendDays)
}

func TestParseUpdateInterval(t *testing.T) {
	for _, raw := range []string{`{"main_loop": {"update_interval": 0}}`, `{"main_loop": {"update_interval": -5}}`} {
		_, err := Parse([]byte(raw), ".json")
		require.Error(t, err, raw)
		assert.True(t, errors.Is(err, ErrInvalid), raw)
	}

	cfg, err := Parse([]byte(`{"main_loop": {"update_interval": 1}}`), ".json")
	require.NoError(t, err)
	assert.Equal(t, time.Second, cfg.MainLoop.Interval())

	cfg, err = Parse([]byte(`{"main_loop": {}}`), ".json")
	require.NoError(t, err)
	assert.Nil(t, cfg.MainLoop.UpdateInterval)
	assert.Equal(t, 10*time.Second, cfg.MainLoop.Interval())
}

func TestParseRejectsMalformedJSON(t *testing.T) {
	_, err := Parse([]byte(`{"weather":`), ".json")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrInvalid))
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleJSON), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "home", cfg.WiFi.SSID)

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

func TestLoadEnvDefaults(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "")
	require.NoError(t, os.Unsetenv("LOG_LEVEL"))

	env, err := LoadEnv()
	require.NoError(t, err)
	assert.Equal(t, "9090", env.Port)
	assert.Equal(t, "info", env.LogLevel)
}
