package httpapi

import (
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/status-dashboard/internal/config"
	"github.com/i474232898/status-dashboard/internal/dashboard"
	"github.com/i474232898/status-dashboard/internal/store"
	"github.com/i474232898/status-dashboard/internal/tariff"
)

var validate = validator.New()

// FrameSource returns the most recently rendered frame.
type FrameSource interface {
	Latest() (dashboard.Frame, error)
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, frames FrameSource, table config.Tariff, now func() time.Time) {
	if now == nil {
		now = time.Now
	}
	v1 := app.Group("/api/v1")

	v1.Get("/frame", func(c *fiber.Ctx) error {
		frame, err := frames.Latest()
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no frame rendered yet")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to load frame")
		}

		return c.JSON(frame)
	})

	v1.Get("/tariff", func(c *fiber.Ctx) error {
		var req tariffQuery
		if err := req.bind(c, now); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		at := req.At.In(time.Local)
		schedule := ""
		if tariff.Structured(table) {
			name, _ := tariff.SelectSchedule(table, at)
			schedule = string(name)
		}

		return c.JSON(fiber.Map{
			"at":       at,
			"schedule": schedule,
			"line":     tariff.Evaluate(table, at),
		})
	})

	v1.Get("/tariff/issues", func(c *fiber.Ctx) error {
		issues := tariff.Validate(table)
		if issues == nil {
			issues = []tariff.Issue{}
		}
		return c.JSON(fiber.Map{
			"issues": issues,
		})
	})
}

// tariffQuery holds query parameters for the tariff endpoint.
type tariffQuery struct {
	At time.Time `validate:"required"`
}

func (q *tariffQuery) bind(c *fiber.Ctx, now func() time.Time) error {
	atStr := c.Query("at")
	if atStr == "" {
		q.At = now()
		return nil
	}

	at, err := parseTime(atStr)
	if err != nil {
		return err
	}
	q.At = at
	return nil
}

// parseTime tries to parse either RFC3339 or Unix seconds.
func parseTime(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	if unix, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(unix, 0).UTC(), nil
	}
	return time.Time{}, errors.New("invalid time format; use RFC3339 or unix seconds")
}
