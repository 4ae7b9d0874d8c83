package graphics

import "fmt"

// HorizontalAlign anchors text horizontally relative to its position.
type HorizontalAlign int

const (
	AlignCenter HorizontalAlign = iota
	AlignLeft
	AlignRight
)

// String returns a human-readable representation of the alignment.
func (a HorizontalAlign) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignLeft:
		return "left"
	case AlignRight:
		return "right"
	default:
		return fmt.Sprintf("HorizontalAlign(%d)", int(a))
	}
}

// VerticalAlign anchors text vertically relative to its position.
type VerticalAlign int

const (
	AlignMiddle VerticalAlign = iota
	AlignTop
	AlignBottom
	AlignBaseline
)

// String returns a human-readable representation of the alignment.
func (a VerticalAlign) String() string {
	switch a {
	case AlignMiddle:
		return "middle"
	case AlignTop:
		return "top"
	case AlignBottom:
		return "bottom"
	case AlignBaseline:
		return "baseline"
	default:
		return fmt.Sprintf("VerticalAlign(%d)", int(a))
	}
}

// TextStyle describes how a single line of text should be rendered.
// FontSize is in points.
type TextStyle struct {
	Color    Color
	FontSize float64
	HAlign   HorizontalAlign
	VAlign   VerticalAlign
}

// WithColor returns a copy of the TextStyle with the specified color.
func (s TextStyle) WithColor(c Color) TextStyle {
	s.Color = c
	return s
}
