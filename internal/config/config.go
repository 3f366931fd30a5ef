package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is returned when the dashboard file parses but fails validation.
var ErrInvalid = errors.New("invalid dashboard configuration")

var validate = validator.New()

// Config is the dashboard configuration, loaded once at process start and
// passed by value to every source.
type Config struct {
	WiFi     WiFi     `json:"wifi" yaml:"wifi"`
	Weather  Weather  `json:"weather" yaml:"weather"`
	Crypto   Crypto   `json:"crypto" yaml:"crypto"`
	Stocks   Stocks   `json:"stocks" yaml:"stocks"`
	Tariff   Tariff   `json:"tou_d_prime" yaml:"tou_d_prime"`
	MainLoop MainLoop `json:"main_loop" yaml:"main_loop"`
	Display  Display  `json:"display" yaml:"display"`
	Fetch    Fetch    `json:"fetch" yaml:"fetch"`
}

type WiFi struct {
	Enable   bool   `json:"enable" yaml:"enable"`
	SSID     string `json:"ssid" yaml:"ssid"`
	Password string `json:"password" yaml:"password"`
}

// Weather configures the wttr.in style weather source.
type Weather struct {
	Enable bool   `json:"enable" yaml:"enable"`
	City   string `json:"city" yaml:"city"`
	APIURL string `json:"api_url" yaml:"api_url"`
}

// Crypto configures the CoinGecko style simple price source. APIURL already
// carries its query string; ids are appended with '&'.
type Crypto struct {
	Enable  bool     `json:"enable" yaml:"enable"`
	Tickers []string `json:"tickers" yaml:"tickers"`
	APIURL  string   `json:"api_url" yaml:"api_url"`
}

// Stocks configures the Alpha Vantage style GLOBAL_QUOTE source.
type Stocks struct {
	Enable  bool     `json:"enable" yaml:"enable"`
	Tickers []string `json:"tickers" yaml:"tickers"`
	APIKey  string   `json:"api_key" yaml:"api_key"`
	APIURL  string   `json:"api_url" yaml:"api_url"`
}

// Tariff is the time-of-use rule table.
//
// Summer and Winter distinguish "absent" (nil) from "present but empty";
// the evaluator reports a config error for the former only.
type Tariff struct {
	SummerMonths []int           `json:"summer_months" yaml:"summer_months"`
	WeekendDays  []int           `json:"weekend_days" yaml:"weekend_days"`
	Summer       *SummerSchedule `json:"summer" yaml:"summer"`
	Winter       []TariffRule    `json:"winter" yaml:"winter" validate:"dive"`
}

type SummerSchedule struct {
	Weekday []TariffRule `json:"weekday" yaml:"weekday" validate:"dive"`
	Weekend []TariffRule `json:"weekend" yaml:"weekend" validate:"dive"`
}

// TariffRule prices the half-open hour range [Start, End).
type TariffRule struct {
	Start          int     `json:"start" yaml:"start"`
	End            int     `json:"end" yaml:"end"`
	Rate           float64 `json:"rate" yaml:"rate"`
	Label          string  `json:"label" yaml:"label"`
	Recommendation string  `json:"recommendation" yaml:"recommendation"`
}

type MainLoop struct {
	// UpdateInterval is in seconds; nil means not set.
	UpdateInterval *int `json:"update_interval" yaml:"update_interval" validate:"omitnil,min=1"`
}

type Display struct {
	Width  int `json:"width" yaml:"width" validate:"gte=0"`
	Height int `json:"height" yaml:"height" validate:"gte=0"`
}

type Fetch struct {
	TimeoutSeconds float64 `json:"timeout_seconds" yaml:"timeout_seconds" validate:"gte=0"`
}

const (
	defaultUpdateInterval = 10
	defaultDisplaySize    = 480
	defaultFetchTimeout   = 9 * time.Second
	defaultStocksURL      = "https://www.alphavantage.co/query"
)

// Interval returns the tick interval, falling back to the default when
// update_interval is absent.
func (m MainLoop) Interval() time.Duration {
	if m.UpdateInterval == nil {
		return defaultUpdateInterval * time.Second
	}
	return time.Duration(*m.UpdateInterval) * time.Second
}

// Timeout returns the per-request fetch timeout.
func (f Fetch) Timeout() time.Duration {
	if f.TimeoutSeconds <= 0 {
		return defaultFetchTimeout
	}
	return time.Duration(f.TimeoutSeconds * float64(time.Second))
}

// Load reads the dashboard file at path. Files ending in .yaml or .yml are
// decoded as YAML, everything else as JSON.
func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(raw, filepath.Ext(path))
}

// Parse decodes raw according to ext, applies defaults and validates.
func Parse(raw []byte, ext string) (Config, error) {
	var cfg Config
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("decode yaml config: %w", err)
		}
	default:
		if err := json.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("decode json config: %w", err)
		}
	}

	cfg.applyDefaults()

	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Display.Width == 0 {
		c.Display.Width = defaultDisplaySize
	}
	if c.Display.Height == 0 {
		c.Display.Height = defaultDisplaySize
	}
	if c.Stocks.APIURL == "" {
		c.Stocks.APIURL = defaultStocksURL
	}
}
