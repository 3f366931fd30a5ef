package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpapi "github.com/i474232898/status-dashboard/internal/api/http"
	"github.com/i474232898/status-dashboard/internal/config"
	"github.com/i474232898/status-dashboard/internal/dashboard"
	"github.com/i474232898/status-dashboard/internal/dashboard/sources"
	"github.com/i474232898/status-dashboard/internal/display"
	"github.com/i474232898/status-dashboard/internal/fetch"
	"github.com/i474232898/status-dashboard/internal/logging"
	"github.com/i474232898/status-dashboard/internal/metrics"
	"github.com/i474232898/status-dashboard/internal/network"
	"github.com/i474232898/status-dashboard/internal/scheduler"
	"github.com/i474232898/status-dashboard/internal/store"
	"github.com/i474232898/status-dashboard/internal/tariff"
)

func main() {
	env, err := config.LoadEnv()
	if err != nil {
		log.Fatalf("failed to load environment: %v", err)
	}

	logger := logging.New(os.Stderr, env.LogLevel)

	// Dashboard configuration is read once and passed down by value.
	cfg, err := config.Load(env.ConfigPath)
	if err != nil {
		logger.Error("failed to load config", "path", env.ConfigPath, "error", err)
		os.Exit(1)
	}

	for _, issue := range tariff.Validate(cfg.Tariff) {
		logger.Warn("tariff table issue", "schedule", issue.Schedule, "kind", issue.Kind, "message", issue.Message)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	network.BringUp(ctx, cfg.WiFi, network.NewHostConnector(env.ProbeAddr, cfg.Fetch.Timeout()), logger)

	metrics.Init()

	fetcher := fetch.NewClient(cfg.Fetch.Timeout(), fetch.WithLogger(logger))
	frames := store.NewMemoryStore()
	screen := display.NewCanvas(cfg.Display.Width, cfg.Display.Height, display.ConsoleSink(os.Stdout))

	service := dashboard.NewService(frames, screen, sources.FromConfig(cfg, fetcher, logger), dashboard.WithLogger(logger))

	sched := scheduler.New(ctx, cfg.MainLoop.Interval(), service, logger)
	if err := sched.Start(); err != nil {
		logger.Error("failed to start scheduler", "error", err)
		os.Exit(1)
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "status-dashboard",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "status-dashboard",
		})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	httpapi.RegisterRoutes(app, service, cfg.Tariff, time.Now)

	go func() {
		if err := app.Listen(":" + env.Port); err != nil {
			logger.Error("fiber server stopped", "error", err)
		}
	}()

	logger.Info("dashboard running", "interval", cfg.MainLoop.Interval().String(), "port", env.Port)

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error("error during shutdown", "error", err)
	}
}
