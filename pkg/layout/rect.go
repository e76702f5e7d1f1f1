package layout

// Rect is a note footprint anchored at its top-left corner, in canvas pixels.
// Y grows downward.
type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Right returns the horizontal end of the rectangle.
func (r Rect) Right() float64 { return r.Left + r.Width }

// Bottom returns the vertical end of the rectangle.
func (r Rect) Bottom() float64 { return r.Top + r.Height }

// CenterX returns the horizontal center of the rectangle.
func (r Rect) CenterX() float64 { return r.Left + r.Width/2 }

// CenterY returns the vertical center of the rectangle.
func (r Rect) CenterY() float64 { return r.Top + r.Height/2 }

// Expand returns r grown by d on every side.
func (r Rect) Expand(d float64) Rect {
	return Rect{Left: r.Left - d, Top: r.Top - d, Width: r.Width + 2*d, Height: r.Height + 2*d}
}

// Overlaps reports whether r and o intersect once both are grown by gap on
// every side. Touching edges count as overlapping, so accepted rectangles are
// strictly more than 2*gap apart on at least one axis.
func (r Rect) Overlaps(o Rect, gap float64) bool {
	return !(r.Right()+gap < o.Left-gap ||
		r.Left-gap > o.Right()+gap ||
		r.Bottom()+gap < o.Top-gap ||
		r.Top-gap > o.Bottom()+gap)
}

// rectAt builds the pixel rectangle of a note from its normalized center.
func rectAt(x, y float64, fp Footprint, c Canvas) Rect {
	return Rect{
		Left:   x/100*c.Width - fp.Width/2,
		Top:    y/100*c.Height - fp.Height/2,
		Width:  fp.Width,
		Height: fp.Height,
	}
}

// NoteRect returns the pixel rectangle a stored note occupies on canvas c.
func NoteRect(n Note, c Canvas) Rect {
	return rectAt(n.X, n.Y, EstimateFootprint(n.TextLength), c)
}
