// Package raster implements graphics.Surface on regions of an in-memory
// RGBA image, using golang.org/x/image/vector for anti-aliased shapes and
// golang.org/x/image/font for text.
package raster

import (
	stderrors "errors"
	"fmt"
	"image"
	"math"
	"unicode/utf8"

	"golang.org/x/image/draw"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/go-drift/exoclock/pkg/graphics"
)

// DefaultPointScale maps points to pixels at 100 DPI.
const DefaultPointScale = 100.0 / 72.0

// Insets reserves pixels inside a region that the data extent does not
// use. Drawing is still allowed there (a face title sits in the top inset).
type Insets struct {
	Top, Right, Bottom, Left int
}

// Options configure a Canvas.
type Options struct {
	// Fonts is the font chain for text. Nil uses DefaultFontManager.
	Fonts *FontManager
	// PointScale converts stroke widths and font sizes from points to
	// pixels. Zero uses DefaultPointScale.
	PointScale float64
	// Insets shrink the area the extent is fitted into.
	Insets Insets
}

// Canvas draws into one rectangular region of an image. It implements
// graphics.Surface; all output is clipped to the region.
type Canvas struct {
	dst    *image.RGBA
	region image.Rectangle
	fonts  *FontManager
	scale  float64
	insets Insets

	extent      graphics.Extent
	equalAspect bool
	xf          graphics.Transform

	z   *vector.Rasterizer
	buf sfnt.Buffer
	err error
}

// NewCanvas returns a canvas drawing into region of img.
func NewCanvas(img *image.RGBA, region image.Rectangle, opts Options) (*Canvas, error) {
	region = region.Intersect(img.Bounds())
	if region.Empty() {
		return nil, stderrors.New("raster: canvas region is empty")
	}
	fonts := opts.Fonts
	if fonts == nil {
		var err error
		if fonts, err = DefaultFontManager(); err != nil {
			return nil, err
		}
	}
	scale := opts.PointScale
	if scale <= 0 {
		scale = DefaultPointScale
	}
	in := opts.Insets
	if in.Left+in.Right >= region.Dx() || in.Top+in.Bottom >= region.Dy() {
		return nil, fmt.Errorf("raster: insets %+v leave no drawing area in %v", in, region)
	}
	c := &Canvas{
		dst:    img.SubImage(region).(*image.RGBA),
		region: region,
		fonts:  fonts,
		scale:  scale,
		insets: in,
		extent: graphics.SquareExtent(1),
		z:      vector.NewRasterizer(region.Dx(), region.Dy()),
	}
	c.updateTransform()
	return c, nil
}

// Region returns the image rectangle the canvas draws into.
func (c *Canvas) Region() image.Rectangle {
	return c.region
}

func (c *Canvas) SetEqualAspect(equal bool) {
	c.equalAspect = equal
	c.updateTransform()
}

func (c *Canvas) SetExtent(e graphics.Extent) {
	if e.IsEmpty() {
		c.fail(fmt.Errorf("raster: empty extent %+v", e))
		return
	}
	c.extent = e
	c.updateTransform()
}

// updateTransform fits the extent into the inset area, in coordinates
// relative to the region's top-left corner.
func (c *Canvas) updateTransform() {
	inner := graphics.Rect{
		Left:   float64(c.insets.Left),
		Top:    float64(c.insets.Top),
		Right:  float64(c.region.Dx() - c.insets.Right),
		Bottom: float64(c.region.Dy() - c.insets.Bottom),
	}
	c.xf = graphics.FitExtent(c.extent, inner, c.equalAspect)
}

func (c *Canvas) Clear(color graphics.Color) {
	draw.Draw(c.dst, c.region, image.NewUniform(color), image.Point{}, draw.Src)
}

func (c *Canvas) DrawCircle(center graphics.Offset, radius float64, paint graphics.Paint) {
	if c.err != nil {
		return
	}
	p, ok := c.project(center)
	if !ok {
		return
	}
	r := c.xf.ScaleLength(radius)
	if !finite(r) || r < 0 {
		c.fail(fmt.Errorf("raster: invalid radius %v", radius))
		return
	}

	c.begin()
	switch paint.Style {
	case graphics.PaintStyleStroke:
		half := math.Max(paint.StrokeWidth*c.scale, 0) / 2
		c.circlePath(p, r+half, false)
		if inner := r - half; inner > 0 {
			c.circlePath(p, inner, true)
		}
	default:
		c.circlePath(p, r, false)
	}
	c.fill(paint.Color)
}

func (c *Canvas) DrawLine(p1, p2 graphics.Offset, paint graphics.Paint) {
	if c.err != nil {
		return
	}
	a, ok := c.project(p1)
	if !ok {
		return
	}
	b, ok := c.project(p2)
	if !ok {
		return
	}
	dx, dy := b.X-a.X, b.Y-a.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	half := math.Max(paint.StrokeWidth*c.scale, 0) / 2
	nx, ny := -dy/length*half, dx/length*half

	c.begin()
	c.z.MoveTo(float32(a.X+nx), float32(a.Y+ny))
	c.z.LineTo(float32(b.X+nx), float32(b.Y+ny))
	c.z.LineTo(float32(b.X-nx), float32(b.Y-ny))
	c.z.LineTo(float32(a.X-nx), float32(a.Y-ny))
	c.z.ClosePath()
	c.fill(paint.Color)
}

func (c *Canvas) DrawText(text string, pos graphics.Offset, style graphics.TextStyle) {
	if c.err != nil || text == "" {
		return
	}
	if !utf8.ValidString(text) {
		c.fail(fmt.Errorf("raster: text %q is not valid UTF-8", text))
		return
	}
	p, ok := c.project(pos)
	if !ok {
		return
	}
	px := style.FontSize * c.scale
	faces, err := c.fonts.facesFor(px)
	if err != nil {
		c.fail(fmt.Errorf("raster: %w", err))
		return
	}

	box := missingBox(px)
	var width fixed.Int26_6
	for _, r := range text {
		if face, ok := pick(faces, &c.buf, r); ok {
			adv, _ := face.GlyphAdvance(r)
			width += adv
		} else {
			width += box
		}
	}
	m := faces[0].face.Metrics()

	x := fixed.Int26_6(math.Round(p.X * 64))
	switch style.HAlign {
	case graphics.AlignCenter:
		x -= width / 2
	case graphics.AlignRight:
		x -= width
	}
	y := fixed.Int26_6(math.Round(p.Y * 64))
	switch style.VAlign {
	case graphics.AlignMiddle:
		y += (m.Ascent - m.Descent) / 2
	case graphics.AlignTop:
		y += m.Ascent
	case graphics.AlignBottom:
		y -= m.Descent
	}

	dot := fixed.Point26_6{
		X: x + fixed.I(c.region.Min.X),
		Y: y + fixed.I(c.region.Min.Y),
	}
	src := image.NewUniform(style.Color)
	for _, r := range text {
		face, ok := pick(faces, &c.buf, r)
		if !ok {
			c.drawMissing(dot, px, style.Color)
			dot.X += box
			continue
		}
		dr, mask, maskp, adv, ok := face.Glyph(dot, r)
		if ok {
			draw.DrawMask(c.dst, dr, src, image.Point{}, mask, maskp, draw.Over)
		}
		dot.X += adv
	}
}

// missingBox is the advance of the box drawn for an uncovered rune.
func missingBox(px float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(px * 0.6 * 64))
}

// drawMissing draws a hollow box standing on the baseline at dot, which is
// in image coordinates.
func (c *Canvas) drawMissing(dot fixed.Point26_6, px float64, col graphics.Color) {
	w, h := px*0.5, px*0.7
	t := math.Max(1, px/16)
	x0 := float64(dot.X)/64 - float64(c.region.Min.X) + px*0.05
	y1 := float64(dot.Y)/64 - float64(c.region.Min.Y)
	x1, y0 := x0+w, y1-h

	c.begin()
	c.rectPath(x0, y0, x1, y1, false)
	c.rectPath(x0+t, y0+t, x1-t, y1-t, true)
	c.fill(col)
}

func (c *Canvas) rectPath(x0, y0, x1, y1 float64, reverse bool) {
	c.z.MoveTo(float32(x0), float32(y0))
	if reverse {
		c.z.LineTo(float32(x0), float32(y1))
		c.z.LineTo(float32(x1), float32(y1))
		c.z.LineTo(float32(x1), float32(y0))
	} else {
		c.z.LineTo(float32(x1), float32(y0))
		c.z.LineTo(float32(x1), float32(y1))
		c.z.LineTo(float32(x0), float32(y1))
	}
	c.z.ClosePath()
}

func (c *Canvas) Err() error {
	return c.err
}

// ResetErr clears a recorded error so the canvas can be reused.
func (c *Canvas) ResetErr() {
	c.err = nil
}

func (c *Canvas) fail(err error) {
	if c.err == nil {
		c.err = err
	}
}

// project maps a data point to region-relative pixels, failing the canvas
// on non-finite input.
func (c *Canvas) project(p graphics.Offset) (graphics.Offset, bool) {
	if !finite(p.X) || !finite(p.Y) {
		c.fail(fmt.Errorf("raster: non-finite point %+v", p))
		return graphics.Offset{}, false
	}
	return c.xf.Apply(p), true
}

func (c *Canvas) begin() {
	c.z.Reset(c.region.Dx(), c.region.Dy())
	c.z.DrawOp = draw.Over
}

func (c *Canvas) fill(col graphics.Color) {
	c.z.Draw(c.dst, c.region, image.NewUniform(col), image.Point{})
}

// circlePath adds a closed polygon approximating a circle. Reversed paths
// wind the other way, cutting a hole out of an enclosing path.
func (c *Canvas) circlePath(center graphics.Offset, r float64, reverse bool) {
	n := int(math.Ceil(2 * math.Pi * r / 2))
	n = max(24, min(n, 720))
	step := 2 * math.Pi / float64(n)
	if reverse {
		step = -step
	}
	c.z.MoveTo(float32(center.X+r), float32(center.Y))
	for i := 1; i < n; i++ {
		a := float64(i) * step
		c.z.LineTo(float32(center.X+r*math.Cos(a)), float32(center.Y+r*math.Sin(a)))
	}
	c.z.ClosePath()
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
