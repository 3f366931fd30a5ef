package fetch

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchReturnsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"bitcoin": {"usd": 65000}}`))
	}))
	defer srv.Close()

	res := NewClient(time.Second).Fetch(context.Background(), srv.URL+"/price")
	require.True(t, res.OK())
	require.NoError(t, res.Err)

	var out map[string]map[string]int
	require.NoError(t, res.Decode(&out))
	assert.Equal(t, 65000, out["bitcoin"]["usd"])
}

func TestFetchFailures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "server error", status: http.StatusInternalServerError, body: `{}`, wantErr: ErrStatus},
		{name: "not found", status: http.StatusNotFound, body: `oops`, wantErr: ErrStatus},
		{name: "malformed body", status: http.StatusOK, body: `{"a":`, wantErr: ErrInvalidJSON},
		{name: "empty object", status: http.StatusOK, body: ` { } `, wantErr: ErrEmptyBody},
		{name: "null", status: http.StatusOK, body: `null`, wantErr: ErrEmptyBody},
		{name: "no body", status: http.StatusOK, body: ``, wantErr: ErrInvalidJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			res := NewClient(time.Second).Fetch(context.Background(), srv.URL)
			assert.False(t, res.OK())
			assert.True(t, errors.Is(res.Err, tt.wantErr), "got %v", res.Err)
			assert.Error(t, res.Decode(&struct{}{}))
		})
	}
}

func TestFetchTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	res := NewClient(50 * time.Millisecond).Fetch(context.Background(), srv.URL)
	assert.False(t, res.OK())
	assert.Error(t, res.Err)
}

func TestFetchUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	res := NewClient(time.Second).Fetch(context.Background(), addr)
	assert.False(t, res.OK())
	assert.Error(t, res.Err)
}

func TestRepeatedFailuresStillHitTheNetwork(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) <= 8 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := NewClient(time.Second)
	for i := 0; i < 8; i++ {
		res := c.Fetch(context.Background(), srv.URL)
		require.True(t, errors.Is(res.Err, ErrStatus), "got %v", res.Err)
	}

	res := c.Fetch(context.Background(), srv.URL)
	assert.True(t, res.OK(), "got %v", res.Err)
	assert.Equal(t, int32(9), calls.Load())
}

func TestEachFetchOpensItsOwnConnection(t *testing.T) {
	var conns atomic.Int32
	srv := httptest.NewUnstartedServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"Global Quote":{"05. price":"1.00"}}`))
	}))
	srv.Config.ConnState = func(_ net.Conn, state http.ConnState) {
		if state == http.StateNew {
			conns.Add(1)
		}
	}
	srv.Start()
	defer srv.Close()

	c := NewClient(time.Second)
	for i := 0; i < 8; i++ {
		require.True(t, c.Fetch(context.Background(), srv.URL).OK())
	}
	assert.Equal(t, int32(8), conns.Load())
}

func TestRedact(t *testing.T) {
	got := redact("https://www.alphavantage.co/query?function=GLOBAL_QUOTE&symbol=AAPL&apikey=secret")
	assert.NotContains(t, got, "secret")
	assert.Contains(t, got, "symbol=AAPL")

	plain := "https://wttr.in/Paris?format=j1"
	assert.Equal(t, plain, redact(plain))
}
