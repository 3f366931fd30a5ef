// Package display provides screen implementations the dashboard can draw
// on when no panel hardware is attached.
package display

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// OpKind names a drawing primitive.
type OpKind string

const (
	OpClear  OpKind = "clear"
	OpText   OpKind = "text"
	OpCircle OpKind = "circle"
)

// Op is one recorded drawing call.
type Op struct {
	Kind   OpKind
	Pen    int
	Text   string
	X, Y   int
	Wrap   int
	Scale  float64
	Radius int
}

// Sink receives the ops of a completed frame on Update.
type Sink func(ops []Op) error

// Canvas records drawing calls and hands them to a sink when the frame is
// flushed.
type Canvas struct {
	width, height int
	sink          Sink

	mu      sync.Mutex
	pen     int
	pending []Op
	last    []Op
	flushes int
}

// NewCanvas creates a Canvas with the given bounds. A nil sink discards
// frames.
func NewCanvas(width, height int, sink Sink) *Canvas {
	return &Canvas{width: width, height: height, sink: sink}
}

func (c *Canvas) Bounds() (int, int) {
	return c.width, c.height
}

func (c *Canvas) SetPen(pen int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pen = pen
}

func (c *Canvas) Clear() {
	c.record(Op{Kind: OpClear})
}

func (c *Canvas) Text(text string, x, y, wrap int, scale float64) {
	c.record(Op{Kind: OpText, Text: text, X: x, Y: y, Wrap: wrap, Scale: scale})
}

func (c *Canvas) Circle(x, y, radius int) {
	c.record(Op{Kind: OpCircle, X: x, Y: y, Radius: radius})
}

// Update flushes the pending frame to the sink.
func (c *Canvas) Update() error {
	c.mu.Lock()
	ops := c.pending
	c.pending = nil
	c.last = ops
	c.flushes++
	c.mu.Unlock()

	if c.sink == nil {
		return nil
	}
	if err := c.sink(ops); err != nil {
		return fmt.Errorf("flush canvas: %w", err)
	}
	return nil
}

// LastFrame returns the ops of the most recently flushed frame.
func (c *Canvas) LastFrame() []Op {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Op(nil), c.last...)
}

// Flushes reports how many frames have been flushed.
func (c *Canvas) Flushes() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.flushes
}

func (c *Canvas) record(op Op) {
	c.mu.Lock()
	defer c.mu.Unlock()
	op.Pen = c.pen
	c.pending = append(c.pending, op)
}

// ConsoleSink writes the text of each frame to w, one line per text op,
// followed by a separator.
func ConsoleSink(w io.Writer) Sink {
	return func(ops []Op) error {
		var b strings.Builder
		for _, op := range ops {
			switch op.Kind {
			case OpText:
				b.WriteString(op.Text)
				b.WriteByte('\n')
			case OpCircle:
				fmt.Fprintf(&b, "(o) at %d,%d\n", op.X, op.Y)
			}
		}
		b.WriteString(strings.Repeat("-", 40))
		b.WriteByte('\n')
		_, err := io.WriteString(w, b.String())
		return err
	}
}
