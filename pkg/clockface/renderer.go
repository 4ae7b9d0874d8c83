// Package clockface draws analog clock faces.
//
// A face is a circle with twelve ticks, twelve labels from a
// [labels.LabelSet], hour, minute and second hands, a hub and a title. The
// [Renderer] draws onto any [graphics.Surface]; it keeps no state between
// frames, so drawing the same inputs twice on a cleared surface yields the
// same result.
package clockface

import (
	"github.com/go-drift/exoclock/pkg/errors"
	"github.com/go-drift/exoclock/pkg/graphics"
	"github.com/go-drift/exoclock/pkg/labels"
)

// Radius is the face radius in data units.
const Radius = 1.0

// Renderer draws clock faces with a fixed style.
type Renderer struct {
	style Style
}

// NewRenderer returns a renderer for style, or a configuration error if the
// style is not drawable.
func NewRenderer(style Style) (*Renderer, error) {
	if err := style.Validate(); err != nil {
		return nil, err
	}
	return &Renderer{style: style}, nil
}

// DefaultRenderer returns a renderer using DefaultStyle.
func DefaultRenderer() *Renderer {
	return &Renderer{style: DefaultStyle()}
}

// Style returns the renderer's style.
func (r *Renderer) Style() Style {
	return r.style
}

// Draw renders one complete face for t on s. It returns the surface's
// error, if any, as a render error; a partially drawn face is never
// reported as success.
func (r *Renderer) Draw(s graphics.Surface, ls labels.LabelSet, title string, t TimeSample) error {
	st := r.style
	g := st.Geometry

	s.SetEqualAspect(true)
	s.SetExtent(graphics.SquareExtent(g.Margin * Radius))

	s.DrawCircle(graphics.Offset{}, Radius, graphics.Stroke(st.Outline, st.OutlineWidth))

	labelStyle := graphics.TextStyle{
		Color:    st.Ink,
		FontSize: st.LabelSize,
		HAlign:   graphics.AlignCenter,
		VAlign:   graphics.AlignMiddle,
	}
	for h := range labels.Positions {
		angle := HourMarkAngle(h)
		s.DrawLine(
			graphics.Polar(Radius, angle),
			graphics.Polar(g.TickInner*Radius, angle),
			graphics.Stroke(st.colorAt(h, st.Ink), st.TickWidth),
		)
		s.DrawText(ls[h], graphics.Polar(g.LabelRadius*Radius, angle), labelStyle)
	}

	hands := HandAnglesOf(t)
	next := labels.Positions
	for _, hand := range []struct {
		length, angle, width float64
	}{
		{g.HourHand, hands.Hour, st.HourWidth},
		{g.MinuteHand, hands.Minute, st.MinuteWidth},
		{g.SecondHand, hands.Second, st.SecondWidth},
	} {
		s.DrawLine(
			graphics.Offset{},
			graphics.Polar(hand.length*Radius, hand.angle),
			graphics.Stroke(st.colorAt(next, st.HandColor), hand.width),
		)
		next++
	}

	s.DrawCircle(graphics.Offset{}, g.HubRadius*Radius, graphics.Fill(st.Ink))

	s.DrawText(title, graphics.Offset{X: 0, Y: g.Margin * Radius}, graphics.TextStyle{
		Color:    st.Ink,
		FontSize: st.TitleSize,
		HAlign:   graphics.AlignCenter,
		VAlign:   graphics.AlignBottom,
	})

	if err := s.Err(); err != nil {
		return &errors.ClockError{Op: "clockface.Draw", Kind: errors.KindRender, Face: title, Err: err}
	}
	return nil
}
