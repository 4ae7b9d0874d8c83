package graphics

import "fmt"

// PaintStyle describes how shapes are filled or stroked.
type PaintStyle int

const (
	// PaintStyleFill fills the shape interior.
	PaintStyleFill PaintStyle = iota

	// PaintStyleStroke draws only the outline.
	PaintStyleStroke
)

// String returns a human-readable representation of the paint style.
func (s PaintStyle) String() string {
	switch s {
	case PaintStyleFill:
		return "fill"
	case PaintStyleStroke:
		return "stroke"
	default:
		return fmt.Sprintf("PaintStyle(%d)", int(s))
	}
}

// Paint describes how to draw a shape on a surface.
//
// StrokeWidth is in points; backends scale it by their pixel density, not by
// the data extent, so hand thickness does not change with the face radius.
type Paint struct {
	Color       Color
	Style       PaintStyle
	StrokeWidth float64
}

// Stroke returns a stroking paint of the given color and width.
func Stroke(c Color, width float64) Paint {
	return Paint{Color: c, Style: PaintStyleStroke, StrokeWidth: width}
}

// Fill returns a filling paint of the given color.
func Fill(c Color) Paint {
	return Paint{Color: c, Style: PaintStyleFill}
}
