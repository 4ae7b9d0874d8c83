// Package graphics defines the drawing vocabulary shared by the clock face
// renderer and its backends: colors, paints, text styles, geometry, and the
// [Surface] capability a backend must provide.
package graphics

// Surface is a drawable region with its own data coordinate system.
//
// Coordinates passed to the Draw methods are in data units within the
// visible [Extent], with y growing upward. Backends record the first
// failure and report it from Err; once Err is non-nil further draw calls
// are no-ops. Clear still fills the region, and keeps the view settings
// and any recorded error.
type Surface interface {
	// SetEqualAspect forces the same scale on both axes.
	SetEqualAspect(equal bool)

	// SetExtent sets the visible data range.
	SetExtent(e Extent)

	// Clear fills the whole region with the given color.
	Clear(color Color)

	// DrawCircle draws a circle, filled or stroked per paint.Style.
	DrawCircle(center Offset, radius float64, paint Paint)

	// DrawLine draws a line segment. Paint style is ignored.
	DrawLine(p1, p2 Offset, paint Paint)

	// DrawText draws a single line of text anchored at pos.
	DrawText(text string, pos Offset, style TextStyle)

	// Err returns the first error the surface encountered, if any.
	Err() error
}
