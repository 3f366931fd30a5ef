package dashboard

import (
	"time"
)

// Pen indices used when rendering a frame.
const (
	PenBackground = 0
	PenText       = 15
	PenArt        = 9
)

// TextLine is one line of text placed on the display.
type TextLine struct {
	Text  string  `json:"text"`
	X     int     `json:"x"`
	Y     int     `json:"y"`
	Wrap  int     `json:"wrap"`
	Scale float64 `json:"scale"`
}

// Circle is a filled circle drawn with the given pen.
type Circle struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Radius int `json:"radius"`
	Pen    int `json:"pen"`
}

// Frame is everything drawn in one tick. Frames are built fresh each tick
// and never reused.
type Frame struct {
	ID     string     `json:"id"`
	At     time.Time  `json:"at"`
	Width  int        `json:"width"`
	Height int        `json:"height"`
	Lines  []TextLine `json:"lines"`
	Shapes []Circle   `json:"shapes"`
}

// Texts returns the text of every line in draw order.
func (f Frame) Texts() []string {
	out := make([]string, 0, len(f.Lines))
	for _, l := range f.Lines {
		out = append(out, l.Text)
	}
	return out
}
