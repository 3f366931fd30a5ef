package dashboard

import (
	"context"
	"time"
)

// Source produces one display line per tick. Implementations never fail:
// every problem degrades into a fallback line.
type Source interface {
	Name() string
	Line(ctx context.Context, now time.Time) string
}

// Display is the screen the frame is drawn on.
type Display interface {
	Bounds() (width, height int)
	SetPen(pen int)
	Clear()
	Text(text string, x, y, wrap int, scale float64)
	Circle(x, y, radius int)
	Update() error
}

// Store keeps the most recently rendered frame.
type Store interface {
	SaveFrame(frame Frame)
	Latest() (Frame, error)
}
