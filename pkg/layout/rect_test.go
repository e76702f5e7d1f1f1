package layout

import "testing"

func TestRectAccessors(t *testing.T) {
	r := Rect{Left: 30, Top: 40, Width: 120, Height: 100}

	if got := r.Right(); got != 150 {
		t.Errorf("Right() = %v, want 150", got)
	}
	if got := r.Bottom(); got != 140 {
		t.Errorf("Bottom() = %v, want 140", got)
	}
	if got := r.CenterX(); got != 90 {
		t.Errorf("CenterX() = %v, want 90", got)
	}
	if got := r.CenterY(); got != 90 {
		t.Errorf("CenterY() = %v, want 90", got)
	}

	e := r.Expand(15)
	if e != (Rect{Left: 15, Top: 25, Width: 150, Height: 130}) {
		t.Errorf("Expand(15) = %+v", e)
	}
}

func TestRectOverlaps(t *testing.T) {
	base := Rect{Left: 0, Top: 0, Width: 100, Height: 100}

	tests := []struct {
		name  string
		other Rect
		want  bool
	}{
		{"identical", base, true},
		{"contained", Rect{Left: 10, Top: 10, Width: 10, Height: 10}, true},
		{"single gap apart", Rect{Left: 115, Top: 0, Width: 100, Height: 100}, true},
		{"exactly double gap apart", Rect{Left: 130, Top: 0, Width: 100, Height: 100}, true},
		{"just past double gap", Rect{Left: 131, Top: 0, Width: 100, Height: 100}, false},
		{"left side clear", Rect{Left: -131, Top: 0, Width: 100, Height: 100}, false},
		{"below, clear", Rect{Left: 0, Top: 131, Width: 100, Height: 100}, false},
		{"below, inside margin", Rect{Left: 0, Top: 120, Width: 100, Height: 100}, true},
		{"above, clear", Rect{Left: 0, Top: -140, Width: 100, Height: 100}, false},
		{"diagonal far", Rect{Left: 500, Top: 500, Width: 100, Height: 100}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Overlaps(tt.other, MinGap); got != tt.want {
				t.Errorf("Overlaps(%+v) = %v, want %v", tt.other, got, tt.want)
			}
			if got := tt.other.Overlaps(base, MinGap); got != tt.want {
				t.Errorf("Overlaps is not symmetric for %+v", tt.other)
			}
		})
	}
}

func TestNoteRect(t *testing.T) {
	c := Canvas{Width: 1000, Height: 500}
	n := Note{TextLength: 0, X: 50, Y: 50}

	r := NoteRect(n, c)
	want := Rect{Left: 440, Top: 200, Width: 120, Height: 100}
	if r != want {
		t.Errorf("NoteRect() = %+v, want %+v", r, want)
	}
}
