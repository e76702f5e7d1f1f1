package layout

import "math"

// Footprint estimation constants, in canvas pixels.
const (
	CharWidth         = 8   // estimated advance of one glyph
	LineHeight        = 20  // height of one wrapped text line
	MaxWidth          = 250 // widest a note can grow
	HorizontalPadding = 24  // left + right inner padding
	BaseWidth         = 120 // narrowest note
	BaseHeight        = 100 // shortest note
	VerticalChrome    = 60  // nickname header and vertical padding
)

// Footprint is the on-canvas size of a note.
type Footprint struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// EstimateFootprint derives a note's size from its glyph count.
//
// Width grows with the text up to [MaxWidth]; height grows with the number of
// wrapped lines at that width. The result is always at least
// [BaseWidth] x [BaseHeight]. Negative lengths are treated as zero.
func EstimateFootprint(textLength int) Footprint {
	n := max(textLength, 0)

	rawTextWidth := min(n*CharWidth, MaxWidth-HorizontalPadding)
	width := min(max(BaseWidth, rawTextWidth+HorizontalPadding), MaxWidth)

	lines := 1
	if charsPerLine := (width - HorizontalPadding) / CharWidth; charsPerLine > 0 {
		lines = int(math.Ceil(float64(n) / float64(charsPerLine)))
	}
	height := max(BaseHeight, lines*LineHeight+VerticalChrome)

	return Footprint{Width: float64(width), Height: float64(height)}
}
