package graphics

import (
	"math"
	"testing"
)

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func nearOffset(a, b Offset) bool {
	return near(a.X, b.X) && near(a.Y, b.Y)
}

func TestPolar(t *testing.T) {
	tests := []struct {
		r, deg float64
		want   Offset
	}{
		{1, 0, Offset{1, 0}},
		{1, 90, Offset{0, 1}},
		{2, 180, Offset{-2, 0}},
		{1, -90, Offset{0, -1}},
		{0.5, 450, Offset{0, 0.5}},
	}
	for _, tt := range tests {
		if got := Polar(tt.r, tt.deg); !nearOffset(got, tt.want) {
			t.Errorf("Polar(%v, %v) = %+v, want %+v", tt.r, tt.deg, got, tt.want)
		}
	}
}

func TestExtent(t *testing.T) {
	e := SquareExtent(1.15)
	if !near(e.Width(), 2.3) || !near(e.Height(), 2.3) {
		t.Errorf("SquareExtent(1.15) size = %v x %v", e.Width(), e.Height())
	}
	if e.IsEmpty() {
		t.Error("square extent reported empty")
	}
	if !(Extent{XMin: 1, XMax: 1, YMin: 0, YMax: 1}).IsEmpty() {
		t.Error("zero-width extent not empty")
	}
	if !(Extent{XMin: 0, XMax: 1, YMin: 1, YMax: -1}).IsEmpty() {
		t.Error("inverted extent not empty")
	}
}

func TestFitExtent_Square(t *testing.T) {
	xf := FitExtent(SquareExtent(1), RectFromLTWH(0, 0, 200, 200), true)

	cases := map[Offset]Offset{
		{0, 0}:   {100, 100},
		{1, 1}:   {200, 0},
		{-1, -1}: {0, 200},
		{0, 1}:   {100, 0},
	}
	for in, want := range cases {
		if got := xf.Apply(in); !nearOffset(got, want) {
			t.Errorf("Apply(%+v) = %+v, want %+v", in, got, want)
		}
	}
	if got := xf.ScaleLength(0.5); !near(got, 50) {
		t.Errorf("ScaleLength(0.5) = %v, want 50", got)
	}
}

func TestFitExtent_EqualAspectCenters(t *testing.T) {
	// A wide rect letterboxes the square extent horizontally.
	xf := FitExtent(SquareExtent(1), RectFromLTWH(10, 20, 300, 100), true)
	if !near(xf.ScaleX, 50) || !near(xf.ScaleY, 50) {
		t.Fatalf("scale = %v, %v; want 50", xf.ScaleX, xf.ScaleY)
	}
	if got := xf.Apply(Offset{}); !nearOffset(got, Offset{160, 70}) {
		t.Errorf("origin maps to %+v, want center {160 70}", got)
	}
	if got := xf.Apply(Offset{-1, 1}); !nearOffset(got, Offset{110, 20}) {
		t.Errorf("top-left maps to %+v, want {110 20}", got)
	}
}

func TestFitExtent_Stretch(t *testing.T) {
	xf := FitExtent(SquareExtent(1), RectFromLTWH(0, 0, 300, 100), false)
	if !near(xf.ScaleX, 150) || !near(xf.ScaleY, 50) {
		t.Fatalf("scale = %v, %v; want 150, 50", xf.ScaleX, xf.ScaleY)
	}
	if got := xf.Apply(Offset{1, -1}); !nearOffset(got, Offset{300, 100}) {
		t.Errorf("bottom-right maps to %+v", got)
	}
	if got := xf.ScaleLength(1); !near(got, 50) {
		t.Errorf("ScaleLength uses %v, want the smaller scale 50", got)
	}
}

func TestFitExtent_Degenerate(t *testing.T) {
	if xf := FitExtent(Extent{}, RectFromLTWH(0, 0, 10, 10), true); xf != (Transform{}) {
		t.Errorf("empty extent gave %+v", xf)
	}
	if xf := FitExtent(SquareExtent(1), Rect{}, true); xf != (Transform{}) {
		t.Errorf("empty rect gave %+v", xf)
	}
}

func TestRect(t *testing.T) {
	r := RectFromLTWH(10, 20, 30, 40)
	if r.Right != 40 || r.Bottom != 60 {
		t.Errorf("RectFromLTWH = %+v", r)
	}
	if r.Width() != 30 || r.Height() != 40 {
		t.Errorf("size = %v x %v", r.Width(), r.Height())
	}
	if got := (Offset{1, 2}).Add(Offset{3, 4}); got != (Offset{4, 6}) {
		t.Errorf("Add = %+v", got)
	}
}
