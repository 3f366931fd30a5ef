package dashboard

import (
	"math"
	"time"
)

const (
	marginX     = 5
	firstLineY  = 5
	headerStep  = 20
	sourceStep  = 40
	textScale   = 2
	artRadius   = 10
	artBaseline = 30
)

// ComposeFrame lays out the date/time header followed by one line per source
// and adds the animated circle. Source lines are given in draw order.
func ComposeFrame(id string, now time.Time, width, height int, sourceLines []string) Frame {
	lines := make([]TextLine, 0, len(sourceLines)+2)

	y := firstLineY
	lines = append(lines, textLine("Date: "+now.Format("2006-01-02"), y, width))
	y += headerStep
	lines = append(lines, textLine("Time: "+now.Format("15:04:05"), y, width))
	y += headerStep

	for i, text := range sourceLines {
		if i > 0 {
			y += sourceStep
		}
		lines = append(lines, textLine(text, y, width))
	}

	cx, cy := ArtPosition(now, width, height)

	return Frame{
		ID:     id,
		At:     now,
		Width:  width,
		Height: height,
		Lines:  lines,
		Shapes: []Circle{{X: cx, Y: cy, Radius: artRadius, Pen: PenArt}},
	}
}

// ArtPosition returns the centre of the decorative circle. It swings
// horizontally around the middle of the screen and bobs near the bottom,
// driven by seconds since the epoch.
func ArtPosition(now time.Time, width, height int) (int, int) {
	t := float64(now.UnixNano()) / float64(time.Second)
	w := float64(width)
	h := float64(height)

	cx := int(w/2 + (w/4)*math.Sin(t))
	cy := int(h - artBaseline - (h/8)*math.Cos(t))
	return cx, cy
}

func textLine(text string, y, width int) TextLine {
	return TextLine{Text: text, X: marginX, Y: y, Wrap: width, Scale: textScale}
}
