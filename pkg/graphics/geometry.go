package graphics

import "math"

// epsilon is the tolerance for floating-point comparisons.
const epsilon = 0.0001

// Offset represents a 2D point or vector. On a [Surface] it is expressed in
// data coordinates (y up); on a pixel grid it is in pixels (y down).
type Offset struct {
	X float64
	Y float64
}

// Add returns the component-wise sum of two offsets.
func (o Offset) Add(other Offset) Offset {
	return Offset{X: o.X + other.X, Y: o.Y + other.Y}
}

// Polar returns the point at radius r and angle degrees, measured
// counter-clockwise from the positive x axis.
func Polar(r, degrees float64) Offset {
	rad := degrees * math.Pi / 180
	return Offset{X: r * math.Cos(rad), Y: r * math.Sin(rad)}
}

// Rect represents a rectangle using left, top, right, bottom coordinates.
type Rect struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

// RectFromLTWH constructs a Rect from left, top, width, height values.
func RectFromLTWH(left, top, width, height float64) Rect {
	return Rect{
		Left:   left,
		Top:    top,
		Right:  left + width,
		Bottom: top + height,
	}
}

// Width returns the width of the rectangle.
func (r Rect) Width() float64 {
	return r.Right - r.Left
}

// Height returns the height of the rectangle.
func (r Rect) Height() float64 {
	return r.Bottom - r.Top
}

// Extent is the visible data range of a surface. Y grows upward.
type Extent struct {
	XMin, XMax float64
	YMin, YMax float64
}

// SquareExtent returns an extent of half-width h centered on the origin.
func SquareExtent(h float64) Extent {
	return Extent{XMin: -h, XMax: h, YMin: -h, YMax: h}
}

// Width returns the data width of the extent.
func (e Extent) Width() float64 { return e.XMax - e.XMin }

// Height returns the data height of the extent.
func (e Extent) Height() float64 { return e.YMax - e.YMin }

// IsEmpty reports whether the extent has no area.
func (e Extent) IsEmpty() bool {
	return e.Width() <= epsilon || e.Height() <= epsilon
}

// Transform maps data coordinates (y up) to pixel coordinates (y down).
type Transform struct {
	ScaleX, ScaleY float64
	OffsetX        float64
	OffsetY        float64
}

// Apply maps a data point to pixel space.
func (t Transform) Apply(p Offset) Offset {
	return Offset{
		X: t.OffsetX + p.X*t.ScaleX,
		Y: t.OffsetY - p.Y*t.ScaleY,
	}
}

// ScaleLength maps a data-space length to pixels using the smaller axis
// scale, which equals either axis when aspect is equal.
func (t Transform) ScaleLength(l float64) float64 {
	return l * math.Min(t.ScaleX, t.ScaleY)
}

// FitExtent computes the transform that places e inside the pixel rect
// dst. With equalAspect the same scale is used on both axes and the extent
// is centered in dst, so circles stay circular on non-square rects.
func FitExtent(e Extent, dst Rect, equalAspect bool) Transform {
	if e.IsEmpty() || dst.Width() <= 0 || dst.Height() <= 0 {
		return Transform{}
	}
	sx := dst.Width() / e.Width()
	sy := dst.Height() / e.Height()
	if equalAspect {
		s := math.Min(sx, sy)
		sx, sy = s, s
	}
	usedW := e.Width() * sx
	usedH := e.Height() * sy
	left := dst.Left + (dst.Width()-usedW)/2
	top := dst.Top + (dst.Height()-usedH)/2
	return Transform{
		ScaleX:  sx,
		ScaleY:  sy,
		OffsetX: left - e.XMin*sx,
		OffsetY: top + e.YMax*sy,
	}
}
