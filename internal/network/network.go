package network

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/i474232898/status-dashboard/internal/config"
)

// Connector brings the network link up.
type Connector interface {
	Connect(ctx context.Context, ssid, password string) error
}

// HostConnector relies on the operating system to manage the wireless link
// and only confirms that the network is reachable by dialing a probe
// address.
type HostConnector struct {
	ProbeAddr string
	Timeout   time.Duration
	dial      func(ctx context.Context, network, addr string) (net.Conn, error)
}

func NewHostConnector(probeAddr string, timeout time.Duration) *HostConnector {
	d := &net.Dialer{}
	return &HostConnector{
		ProbeAddr: probeAddr,
		Timeout:   timeout,
		dial:      d.DialContext,
	}
}

func (h *HostConnector) Connect(ctx context.Context, ssid, _ string) error {
	if h.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.Timeout)
		defer cancel()
	}

	conn, err := h.dial(ctx, "tcp", h.ProbeAddr)
	if err != nil {
		return fmt.Errorf("network %q unreachable via %s: %w", ssid, h.ProbeAddr, err)
	}
	return conn.Close()
}

// BringUp is consulted once at startup. It reports whether the link is up;
// failure is logged and never fatal.
func BringUp(ctx context.Context, cfg config.WiFi, c Connector, logger *slog.Logger) bool {
	if logger == nil {
		logger = slog.Default()
	}
	if !cfg.Enable {
		logger.Info("network bring-up disabled in config")
		return false
	}

	if err := c.Connect(ctx, cfg.SSID, cfg.Password); err != nil {
		logger.Warn("network connection failed", "ssid", cfg.SSID, "error", err)
		return false
	}
	logger.Info("network connected", "ssid", cfg.SSID)
	return true
}
