package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/i474232898/status-dashboard/internal/metrics"
)

// DefaultTimeout bounds a single request when no client timeout is given.
const DefaultTimeout = 9 * time.Second

var (
	ErrStatus      = errors.New("unexpected status code")
	ErrEmptyBody   = errors.New("empty response")
	ErrInvalidJSON = errors.New("response is not valid json")
)

// Result is the outcome of one fetch: either a JSON body or the cause of
// failure.
type Result struct {
	URL  string
	Body json.RawMessage
	Err  error
}

// OK reports whether the fetch produced data.
func (r Result) OK() bool {
	return r.Err == nil && len(r.Body) > 0
}

// Decode unmarshals the body into v.
func (r Result) Decode(v any) error {
	if !r.OK() {
		return fmt.Errorf("decode %s: no data", r.URL)
	}
	return json.Unmarshal(r.Body, v)
}

// Fetcher performs a single best-effort GET and never returns an error
// directly; failures are carried inside the Result.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) Result
}

// Client is the HTTP implementation of Fetcher. It holds no per-host state:
// every Fetch dials a fresh connection and closes it afterwards.
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient overrides the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the logger used for failure diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient builds a Client whose requests time out after timeout.
func NewClient(timeout time.Duration, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := &Client{
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: &http.Transport{DisableKeepAlives: true, Proxy: http.ProxyFromEnvironment},
		},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch issues one GET to rawURL and returns its JSON body.
func (c *Client) Fetch(ctx context.Context, rawURL string) Result {
	host := hostOf(rawURL)
	start := time.Now()

	body, err := c.do(ctx, rawURL)
	if err != nil {
		metrics.ObserveFetch(host, metrics.ResultError, time.Since(start))
		c.logger.Warn("request error", "url", redact(rawURL), "error", err)
		return Result{URL: rawURL, Err: err}
	}

	metrics.ObserveFetch(host, metrics.ResultSuccess, time.Since(start))
	return Result{URL: rawURL, Body: body}
}

func (c *Client) do(ctx context.Context, rawURL string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Close = true

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return parseBody(raw)
}

// parseBody checks that raw is a JSON document carrying data. Values that
// are falsy in the upstream sense (null, {}, [], "", 0, false) count as no
// data.
func parseBody(raw []byte) (json.RawMessage, error) {
	if !json.Valid(raw) {
		return nil, ErrInvalidJSON
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	switch compact.String() {
	case "", "null", "{}", "[]", `""`, "0", "false":
		return nil, ErrEmptyBody
	}
	return json.RawMessage(compact.Bytes()), nil
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return "unknown"
	}
	return u.Host
}

// redact hides credential-looking query parameters in log output.
func redact(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	q := u.Query()
	changed := false
	for _, key := range []string{"apikey", "api_key", "key", "appid"} {
		if q.Has(key) {
			q.Set(key, "REDACTED")
			changed = true
		}
	}
	if !changed {
		return rawURL
	}
	u.RawQuery = q.Encode()
	return u.String()
}
