package dashboard

// Render draws frame onto d and flushes it.
func Render(frame Frame, d Display) error {
	d.SetPen(PenBackground)
	d.Clear()

	d.SetPen(PenText)
	for _, l := range frame.Lines {
		d.Text(l.Text, l.X, l.Y, l.Wrap, l.Scale)
	}

	for _, c := range frame.Shapes {
		d.SetPen(c.Pen)
		d.Circle(c.X, c.Y, c.Radius)
	}

	return d.Update()
}
