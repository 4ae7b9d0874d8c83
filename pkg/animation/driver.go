// Package animation drives a panel of clock faces from a repeating timer.
//
// A [Driver] draws every configured face once at start-up, then once per
// tick of a fixed-period ticker. Each frame reads the clock exactly once,
// so all faces of one frame show the same time. Frames are drawn
// sequentially on the goroutine that called [Driver.Run]; nothing is drawn
// concurrently and no frame is retried.
//
// # Basic Usage
//
//	targets := []animation.Target{{Spec: spec, Surface: canvas}}
//	d, err := animation.NewDriver(animation.SystemClock(), targets,
//	    animation.WithPresenter(panel.Present))
//	if err != nil {
//	    return err
//	}
//	err = d.Run(ctx) // returns ctx.Err() once ctx is canceled
package animation

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/go-drift/exoclock/pkg/clockface"
	"github.com/go-drift/exoclock/pkg/errors"
	"github.com/go-drift/exoclock/pkg/graphics"
	"github.com/go-drift/exoclock/pkg/labels"
)

// DefaultInterval is the redraw period.
const DefaultInterval = time.Second

// State is the lifecycle state of a Driver.
//
//	         Run()
//	Idle ──────────► Running ──── ctx canceled ───► Stopped
//	                    │
//	                    └──────── draw/present error ──► Failed
//
// The ticker is armed only in Running and is stopped on leaving it.
type State int32

const (
	// StateIdle means Run has not been called.
	StateIdle State = iota
	// StateRunning means the first frame was drawn and the ticker is armed.
	StateRunning
	// StateStopped means Run returned because its context ended.
	StateStopped
	// StateFailed means Run returned because a frame could not be drawn
	// or presented.
	StateFailed
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// ErrAlreadyStarted is returned when Run is called more than once.
var ErrAlreadyStarted = stderrors.New("animation: driver already started")

// FaceRenderer draws one clock face. *clockface.Renderer implements it.
type FaceRenderer interface {
	Draw(s graphics.Surface, ls labels.LabelSet, title string, t clockface.TimeSample) error
}

// Target pairs a clock spec with the surface region it is drawn on.
type Target struct {
	Spec    labels.ClockSpec
	Surface graphics.Surface
}

// Frame describes one completed redraw pass.
type Frame struct {
	Seq    uint64
	Time   time.Time
	Sample clockface.TimeSample
}

// Presenter publishes a completed frame, for example by encoding the
// panel image. A presenter error ends the run.
type Presenter func(ctx context.Context, f Frame) error

// Option configures a Driver.
type Option func(*Driver)

// WithInterval overrides DefaultInterval.
func WithInterval(d time.Duration) Option {
	return func(dr *Driver) { dr.interval = d }
}

// WithRenderer overrides the default clock face renderer.
func WithRenderer(r FaceRenderer) Option {
	return func(dr *Driver) { dr.renderer = r }
}

// WithSampler overrides clockface.SampleOf, e.g. with
// clockface.WholeSecondSampleOf for a ticking second hand.
func WithSampler(s clockface.Sampler) Option {
	return func(dr *Driver) { dr.sampler = s }
}

// WithPresenter sets the function called after every frame.
func WithPresenter(p Presenter) Option {
	return func(dr *Driver) { dr.present = p }
}

// WithBackground sets the color each region is cleared to.
func WithBackground(c graphics.Color) Option {
	return func(dr *Driver) { dr.background = c }
}

// WithLogger sets the driver's logger.
func WithLogger(l *slog.Logger) Option {
	return func(dr *Driver) { dr.logger = l }
}

// Driver redraws a fixed list of targets once per interval.
type Driver struct {
	clock      Clock
	targets    []Target
	renderer   FaceRenderer
	interval   time.Duration
	sampler    clockface.Sampler
	present    Presenter
	background graphics.Color
	logger     *slog.Logger

	state  atomic.Int32
	frames atomic.Uint64
}

// NewDriver validates the targets and returns an idle driver. Invalid
// configuration is reported here, before anything is drawn.
func NewDriver(clock Clock, targets []Target, opts ...Option) (*Driver, error) {
	if clock == nil {
		return nil, errors.Config("animation.NewDriver", "clock is required")
	}
	specs := make([]labels.ClockSpec, len(targets))
	for i, t := range targets {
		if t.Surface == nil {
			return nil, errors.Config("animation.NewDriver", "target %d (%s) has no surface", i, t.Spec.Title)
		}
		specs[i] = t.Spec
	}
	if err := labels.Validate(specs); err != nil {
		return nil, err
	}

	d := &Driver{
		clock:      clock,
		targets:    append([]Target(nil), targets...),
		renderer:   clockface.DefaultRenderer(),
		interval:   DefaultInterval,
		sampler:    clockface.SampleOf,
		background: graphics.ColorWhite,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.interval <= 0 {
		return nil, errors.Config("animation.NewDriver", "interval must be positive, got %v", d.interval)
	}
	if d.renderer == nil || d.sampler == nil {
		return nil, errors.Config("animation.NewDriver", "renderer and sampler are required")
	}
	return d, nil
}

// State returns the driver's current state.
func (d *Driver) State() State {
	return State(d.state.Load())
}

// Frames returns the number of frames drawn so far.
func (d *Driver) Frames() uint64 {
	return d.frames.Load()
}

// Run draws the first frame immediately, then one frame per tick until ctx
// ends or a frame fails. It returns ctx.Err() on cancellation and the
// frame's error on failure; in both cases the ticker is stopped first.
func (d *Driver) Run(ctx context.Context) error {
	if !d.state.CompareAndSwap(int32(StateIdle), int32(StateRunning)) {
		return ErrAlreadyStarted
	}
	d.logger.Info("driver started", slog.Int("faces", len(d.targets)), slog.Duration("interval", d.interval))

	if err := d.frame(ctx, d.clock.Now()); err != nil {
		return d.end(ctx, err)
	}

	ticker := d.clock.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return d.stop(ctx)
		case <-ticker.Chan():
			// Sample at fire time; a late tick shows the time it is drawn at.
			if err := d.frame(ctx, d.clock.Now()); err != nil {
				return d.end(ctx, err)
			}
		}
	}
}

func (d *Driver) stop(ctx context.Context) error {
	d.state.Store(int32(StateStopped))
	d.logger.Info("driver stopped", slog.Uint64("frames", d.Frames()))
	return ctx.Err()
}

// end finishes a run after a failed frame. A frame cut short by
// cancellation is a stop, not a failure.
func (d *Driver) end(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return d.stop(ctx)
	}
	return d.fail(err)
}

func (d *Driver) fail(err error) error {
	d.state.Store(int32(StateFailed))
	var ce *errors.ClockError
	if stderrors.As(err, &ce) {
		errors.Report(ce)
	}
	d.logger.Error("driver failed", slog.Any("err", err))
	return err
}

// frame draws every target with one shared sample, then presents.
func (d *Driver) frame(ctx context.Context, now time.Time) error {
	sample := d.sampler(now)
	for _, t := range d.targets {
		t.Surface.Clear(d.background)
		if err := d.renderer.Draw(t.Surface, t.Spec.Labels, t.Spec.Title, sample); err != nil {
			return err
		}
	}
	seq := d.frames.Add(1)
	d.logger.Debug("frame drawn", slog.Uint64("seq", seq), slog.String("sample", sample.String()))

	if d.present == nil {
		return nil
	}
	if err := d.present(ctx, Frame{Seq: seq, Time: now, Sample: sample}); err != nil {
		if errors.KindOf(err) != errors.KindUnknown {
			return err
		}
		return errors.New("animation.present", errors.KindSink, err)
	}
	return nil
}
