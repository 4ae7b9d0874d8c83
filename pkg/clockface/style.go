package clockface

import (
	"fmt"

	"github.com/go-drift/exoclock/pkg/errors"
	"github.com/go-drift/exoclock/pkg/graphics"
)

// Geometry gives the face proportions as fractions of the radius.
type Geometry struct {
	Margin      float64 // visible half-extent
	TickInner   float64
	LabelRadius float64
	HourHand    float64
	MinuteHand  float64
	SecondHand  float64
	HubRadius   float64
}

// DefaultGeometry returns the standard face proportions.
func DefaultGeometry() Geometry {
	return Geometry{
		Margin:      1.15,
		TickInner:   0.92,
		LabelRadius: 0.82,
		HourHand:    0.50,
		MinuteHand:  0.75,
		SecondHand:  0.88,
		HubRadius:   0.03,
	}
}

// Style controls stroke widths, colors and font sizes of a face.
// Widths and font sizes are in points.
type Style struct {
	Geometry Geometry

	OutlineWidth float64
	TickWidth    float64
	HourWidth    float64
	MinuteWidth  float64
	SecondWidth  float64

	LabelSize float64
	TitleSize float64

	Outline graphics.Color
	Ink     graphics.Color // labels, title and hub

	// Cycle, when non-empty, colors ticks and then the hour, minute and
	// second hands with successive entries, wrapping around. When empty,
	// ticks use Ink and hands use HandColor.
	Cycle     []graphics.Color
	HandColor graphics.Color
}

// DefaultStyle returns the standard clock face style.
func DefaultStyle() Style {
	return Style{
		Geometry:     DefaultGeometry(),
		OutlineWidth: 1.6,
		TickWidth:    1,
		HourWidth:    3,
		MinuteWidth:  2,
		SecondWidth:  0.8,
		LabelSize:    10,
		TitleSize:    9,
		Outline:      graphics.ColorBlack,
		Ink:          graphics.ColorBlack,
		Cycle:        graphics.CategoryPalette,
		HandColor:    graphics.ColorBlack,
	}
}

// Validate checks that the style describes a drawable face: hands must be
// ordered thickest (hour) to thinnest (second) and every hand must fit
// inside the face.
func (s Style) Validate() error {
	if !(s.HourWidth > s.MinuteWidth && s.MinuteWidth > s.SecondWidth && s.SecondWidth > 0) {
		return errors.Config("clockface.Style", "hand widths must satisfy hour > minute > second > 0, got %g/%g/%g",
			s.HourWidth, s.MinuteWidth, s.SecondWidth)
	}
	g := s.Geometry
	for name, v := range map[string]float64{
		"tick inner":   g.TickInner,
		"label radius": g.LabelRadius,
		"hour hand":    g.HourHand,
		"minute hand":  g.MinuteHand,
		"second hand":  g.SecondHand,
		"hub radius":   g.HubRadius,
	} {
		if v <= 0 || v > 1 {
			return errors.Config("clockface.Style", "%s must be in (0, 1], got %g", name, v)
		}
	}
	if g.Margin < 1 {
		return errors.Config("clockface.Style", "margin must be at least 1, got %g", g.Margin)
	}
	if s.LabelSize <= 0 || s.TitleSize <= 0 {
		return errors.Config("clockface.Style", "font sizes must be positive")
	}
	return nil
}

// colorAt returns the nth cycled color, or fallback without a cycle.
func (s Style) colorAt(n int, fallback graphics.Color) graphics.Color {
	if len(s.Cycle) == 0 {
		return fallback
	}
	return s.Cycle[n%len(s.Cycle)]
}

func (g Geometry) String() string {
	return fmt.Sprintf("margin=%g tick=%g label=%g hands=%g/%g/%g hub=%g",
		g.Margin, g.TickInner, g.LabelRadius, g.HourHand, g.MinuteHand, g.SecondHand, g.HubRadius)
}
