// Package panel composes a grid of clock faces into one image.
//
// A [Panel] owns the image and one drawing surface per face. It hands the
// surfaces to an animation.Driver as targets and publishes the composed
// image to its sinks after every frame:
//
//	p, err := panel.New(specs, panel.Options{Title: "World", Sinks: sinks})
//	if err != nil {
//	    return err
//	}
//	defer p.Close()
//	d, err := animation.NewDriver(clock, p.Targets(), animation.WithPresenter(p.Present))
package panel

import (
	"context"
	stderrors "errors"
	"image"
	"io"
	"log/slog"

	"golang.org/x/image/draw"

	"github.com/go-drift/exoclock/pkg/animation"
	"github.com/go-drift/exoclock/pkg/errors"
	"github.com/go-drift/exoclock/pkg/graphics"
	"github.com/go-drift/exoclock/pkg/labels"
	"github.com/go-drift/exoclock/pkg/raster"
	"github.com/go-drift/exoclock/pkg/sink"
)

// DefaultTitleSize is the panel title font size in points.
const DefaultTitleSize = 14

// Options configure a Panel.
type Options struct {
	// Title is drawn once above the grid. Empty omits the header.
	Title string
	// Layout defaults to DefaultLayout(len(specs)).
	Layout *Layout
	// Background fills the image and every cell on clear. Zero is white.
	Background graphics.Color
	// Ink colors the panel title. Zero is black.
	Ink graphics.Color
	// TitleSize is the panel title font size in points.
	TitleSize float64
	// Fonts is the text font chain. Nil uses raster.DefaultFontManager.
	Fonts *raster.FontManager
	// Sinks receive every presented frame, in order.
	Sinks []sink.Sink
	// Logger defaults to discarding.
	Logger *slog.Logger
}

// Panel is a grid of clock faces drawn into one RGBA image.
type Panel struct {
	specs      []labels.ClockSpec
	layout     Layout
	img        *image.RGBA
	cells      []*raster.Canvas
	sinks      []sink.Sink
	background graphics.Color
	logger     *slog.Logger
}

// New builds a panel for specs. All configuration errors are reported here.
func New(specs []labels.ClockSpec, opts Options) (*Panel, error) {
	if err := labels.Validate(specs); err != nil {
		return nil, err
	}
	layout := DefaultLayout(len(specs))
	if opts.Layout != nil {
		layout = *opts.Layout
	}
	if opts.Title == "" {
		layout.HeaderHeight = 0
	}
	if err := layout.Validate(len(specs)); err != nil {
		return nil, err
	}
	bg := opts.Background
	if bg == 0 {
		bg = graphics.ColorWhite
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	p := &Panel{
		specs:      append([]labels.ClockSpec(nil), specs...),
		layout:     layout,
		img:        image.NewRGBA(layout.Bounds()),
		sinks:      append([]sink.Sink(nil), opts.Sinks...),
		background: bg,
		logger:     logger,
	}
	draw.Draw(p.img, p.img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	for i := range specs {
		c, err := raster.NewCanvas(p.img, layout.CellRect(i), raster.Options{
			Fonts:  opts.Fonts,
			Insets: raster.Insets{Top: layout.TitleBand},
		})
		if err != nil {
			return nil, errors.New("panel.New", errors.KindInit, err)
		}
		p.cells = append(p.cells, c)
	}

	if err := p.checkGlyphs(opts); err != nil {
		return nil, err
	}
	if opts.Title != "" {
		if err := p.drawHeader(opts); err != nil {
			return nil, err
		}
	}
	logger.Debug("panel built",
		slog.Int("faces", len(specs)),
		slog.Int("rows", layout.Rows),
		slog.Int("columns", layout.Columns),
		slog.String("size", layout.Bounds().Size().String()))
	return p, nil
}

// checkGlyphs warns once per face about text no font can draw. Those runes
// render as hollow boxes.
func (p *Panel) checkGlyphs(opts Options) error {
	fonts := opts.Fonts
	if fonts == nil {
		var err error
		if fonts, err = raster.DefaultFontManager(); err != nil {
			return err
		}
	}
	if missing := fonts.Missing(opts.Title); len(missing) > 0 {
		p.logger.Warn("panel title has glyphs no font covers",
			slog.String("title", opts.Title),
			slog.String("runes", string(missing)))
	}
	for _, spec := range p.specs {
		missing := fonts.Missing(append([]string{spec.Title}, spec.Labels[:]...)...)
		if len(missing) == 0 {
			continue
		}
		p.logger.Warn("face has glyphs no font covers",
			slog.String("face", spec.Title),
			slog.String("runes", string(missing)),
			slog.Any("fonts", fonts.Names()))
	}
	return nil
}

// drawHeader writes the panel title once; the driver never clears it.
func (p *Panel) drawHeader(opts Options) error {
	c, err := raster.NewCanvas(p.img, p.layout.Header(), raster.Options{Fonts: opts.Fonts})
	if err != nil {
		return errors.New("panel.drawHeader", errors.KindInit, err)
	}
	ink := opts.Ink
	if ink == 0 {
		ink = graphics.ColorBlack
	}
	size := opts.TitleSize
	if size <= 0 {
		size = DefaultTitleSize
	}
	c.DrawText(opts.Title, graphics.Offset{}, graphics.TextStyle{
		Color:    ink,
		FontSize: size,
		HAlign:   graphics.AlignCenter,
		VAlign:   graphics.AlignMiddle,
	})
	if err := c.Err(); err != nil {
		return &errors.ClockError{Op: "panel.drawHeader", Kind: errors.KindRender, Face: opts.Title, Err: err}
	}
	return nil
}

// Layout returns the panel's resolved layout.
func (p *Panel) Layout() Layout {
	return p.layout
}

// Image returns the composed image. It changes on every frame.
func (p *Panel) Image() *image.RGBA {
	return p.img
}

// Background returns the color cells are cleared to.
func (p *Panel) Background() graphics.Color {
	return p.background
}

// Specs returns the faces in panel order.
func (p *Panel) Specs() []labels.ClockSpec {
	return append([]labels.ClockSpec(nil), p.specs...)
}

// Targets pairs every face with its cell surface, in panel order.
func (p *Panel) Targets() []animation.Target {
	targets := make([]animation.Target, len(p.specs))
	for i, spec := range p.specs {
		targets[i] = animation.Target{Spec: spec, Surface: p.cells[i]}
	}
	return targets
}

// Present publishes the composed image to every sink. It is an
// animation.Presenter. All sinks are tried; their errors are joined.
func (p *Panel) Present(ctx context.Context, f animation.Frame) error {
	frame := sink.Frame{Seq: f.Seq, Time: f.Time, Image: p.img}
	var errs []error
	for _, s := range p.sinks {
		if err := s.Publish(ctx, frame); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return errors.New("panel.Present", errors.KindSink, stderrors.Join(errs...))
	}
	p.logger.Debug("frame presented", slog.Uint64("seq", f.Seq), slog.Int("sinks", len(p.sinks)))
	return nil
}

// Close closes every sink.
func (p *Panel) Close() error {
	var errs []error
	for _, s := range p.sinks {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return stderrors.Join(errs...)
}
