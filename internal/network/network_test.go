package network

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/status-dashboard/internal/config"
)

type fakeConnector struct {
	err   error
	ssid  string
	calls int
}

func (f *fakeConnector) Connect(_ context.Context, ssid, _ string) error {
	f.calls++
	f.ssid = ssid
	return f.err
}

func TestBringUpDisabled(t *testing.T) {
	var buf bytes.Buffer
	c := &fakeConnector{}
	ok := BringUp(context.Background(), config.WiFi{SSID: "home"}, c, slog.New(slog.NewTextHandler(&buf, nil)))

	assert.False(t, ok)
	assert.Zero(t, c.calls)
	assert.Contains(t, buf.String(), "disabled")
}

func TestBringUpConnects(t *testing.T) {
	c := &fakeConnector{}
	ok := BringUp(context.Background(), config.WiFi{Enable: true, SSID: "home", Password: "pw"}, c, nil)

	assert.True(t, ok)
	assert.Equal(t, "home", c.ssid)
}

func TestBringUpFailureIsNotFatal(t *testing.T) {
	var buf bytes.Buffer
	c := &fakeConnector{err: errors.New("auth rejected")}
	ok := BringUp(context.Background(), config.WiFi{Enable: true, SSID: "home"}, c, slog.New(slog.NewTextHandler(&buf, nil)))

	assert.False(t, ok)
	assert.Contains(t, buf.String(), "auth rejected")
}

func TestHostConnectorProbe(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	go func() {
		if conn, err := ln.Accept(); err == nil {
			_ = conn.Close()
		}
	}()

	hc := NewHostConnector(ln.Addr().String(), time.Second)
	assert.NoError(t, hc.Connect(context.Background(), "home", "pw"))

	addr := ln.Addr().String()
	require.NoError(t, ln.Close())
	assert.Error(t, NewHostConnector(addr, time.Second).Connect(context.Background(), "home", "pw"))
}
