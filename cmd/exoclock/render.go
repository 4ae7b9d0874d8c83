package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-drift/exoclock/pkg/animation"
	"github.com/go-drift/exoclock/pkg/clockface"
	"github.com/go-drift/exoclock/pkg/errors"
	"github.com/go-drift/exoclock/pkg/labels"
	"github.com/go-drift/exoclock/pkg/panel"
	"github.com/go-drift/exoclock/pkg/sink"
	drifttest "github.com/go-drift/exoclock/pkg/testing"
)

// RenderCmd draws one frame.
type RenderCmd struct {
	At     string `help:"Time of day to draw as HH:MM[:SS[.fff]] (default now)."`
	Output string `help:"Image file to write (overrides output.path)." short:"o" type:"path"`
	Format string `help:"Image format: png, bmp or tiff (default from the file extension)."`
	Ops    string `help:"Also write the drawing operations of every face as JSON to this file." type:"path"`
}

var timeLayouts = []string{"15:04:05.999999999", "15:04:05", "15:04"}

// parseAt reads a time of day and places it on the date of now.
func parseAt(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return now, nil
	}
	for _, layout := range timeLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return time.Date(now.Year(), now.Month(), now.Day(),
				t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), now.Location()), nil
		}
	}
	return time.Time{}, errors.Config("exoclock.render", "--at %q is not a time of day (want HH:MM[:SS])", s)
}

func (c *RenderCmd) Run(env *Env) error {
	r, err := env.resolve()
	if err != nil {
		return err
	}
	at, err := parseAt(c.At, time.Now())
	if err != nil {
		return err
	}

	path, format := r.OutputPath, r.OutputFormat
	if c.Output != "" {
		path, format = c.Output, sink.FormatFromPath(c.Output)
	}
	if path == "" {
		path = "exoclock.png"
		format = sink.FormatPNG
	}
	if c.Format != "" {
		if format, err = sink.ParseFormat(c.Format); err != nil {
			return errors.New("exoclock.render", errors.KindConfig, err)
		}
	}
	out, err := sink.NewFile(path, format)
	if err != nil {
		return err
	}

	fonts, err := env.fonts(r.Fonts)
	if err != nil {
		return err
	}
	p, err := panel.New(r.Clocks, panel.Options{
		Title:      r.Title,
		Layout:     &r.Layout,
		Background: r.Background,
		Fonts:      fonts,
		Sinks:      []sink.Sink{out},
		Logger:     env.Logger,
	})
	if err != nil {
		return err
	}
	defer p.Close()

	renderer := clockface.DefaultRenderer()
	sample := r.Sampler()(at)
	for _, t := range p.Targets() {
		t.Surface.Clear(p.Background())
		if err := renderer.Draw(t.Surface, t.Spec.Labels, t.Spec.Title, sample); err != nil {
			return err
		}
	}
	if err := p.Present(context.Background(), animation.Frame{Seq: 1, Time: at, Sample: sample}); err != nil {
		return err
	}
	env.Logger.Info("frame written", slog.String("path", out.Path()), slog.String("time", sample.String()))

	if c.Ops != "" {
		if err := writeOps(c.Ops, renderer, r.Clocks, sample); err != nil {
			return err
		}
	}
	fmt.Fprintln(env.Stdout, out.Path())
	return nil
}

// writeOps replays the frame on recording surfaces and dumps the result.
func writeOps(path string, renderer *clockface.Renderer, specs []labels.ClockSpec, sample clockface.TimeSample) error {
	surfaces := make(map[string]*drifttest.RecordingSurface, len(specs))
	for i, spec := range specs {
		s := drifttest.NewRecordingSurface()
		if err := renderer.Draw(s, spec.Labels, spec.Title, sample); err != nil {
			return err
		}
		key := spec.Title
		if _, dup := surfaces[key]; dup {
			key = fmt.Sprintf("%s #%d", spec.Title, i)
		}
		surfaces[key] = s
	}
	data, err := drifttest.CaptureSnapshot(surfaces).JSON()
	if err != nil {
		return errors.New("exoclock.render", errors.KindSink, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.New("exoclock.render", errors.KindSink, err)
	}
	return nil
}
