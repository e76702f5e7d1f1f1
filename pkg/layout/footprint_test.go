package layout

import "testing"

func TestEstimateFootprint(t *testing.T) {
	tests := []struct {
		name       string
		textLength int
		want       Footprint
	}{
		{"empty message", 0, Footprint{Width: 120, Height: 100}},
		{"short message keeps base width", 10, Footprint{Width: 120, Height: 100}},
		{"width grows with text", 20, Footprint{Width: 184, Height: 100}},
		{"two lines still base height", 50, Footprint{Width: 250, Height: 100}},
		{"third line grows height", 57, Footprint{Width: 250, Height: 120}},
		{"max message length", 100, Footprint{Width: 250, Height: 140}},
		{"very long text", 1000, Footprint{Width: 250, Height: 780}},
		{"negative treated as empty", -5, Footprint{Width: 120, Height: 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EstimateFootprint(tt.textLength); got != tt.want {
				t.Errorf("EstimateFootprint(%d) = %+v, want %+v", tt.textLength, got, tt.want)
			}
		})
	}
}

func TestEstimateFootprintBounds(t *testing.T) {
	for n := 0; n <= 300; n++ {
		fp := EstimateFootprint(n)
		if fp.Width < BaseWidth || fp.Width > MaxWidth {
			t.Fatalf("EstimateFootprint(%d).Width = %v, outside [%d, %d]", n, fp.Width, BaseWidth, MaxWidth)
		}
		if fp.Height < BaseHeight {
			t.Fatalf("EstimateFootprint(%d).Height = %v, below %d", n, fp.Height, BaseHeight)
		}
		if n > 0 && fp.Height < EstimateFootprint(n-1).Height {
			t.Fatalf("height shrank between %d and %d glyphs", n-1, n)
		}
	}
}
