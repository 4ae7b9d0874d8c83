package animation

import (
	"context"
	stderrors "errors"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/exoclock/pkg/clockface"
	"github.com/go-drift/exoclock/pkg/errors"
	"github.com/go-drift/exoclock/pkg/graphics"
	"github.com/go-drift/exoclock/pkg/labels"
	drifttest "github.com/go-drift/exoclock/pkg/testing"
)

type drawCall struct {
	title  string
	sample clockface.TimeSample
}

// spyRenderer records draws and can fail on a given call number.
type spyRenderer struct {
	mu     sync.Mutex
	calls  []drawCall
	failAt int
	err    error
}

func (r *spyRenderer) Draw(_ graphics.Surface, _ labels.LabelSet, title string, t clockface.TimeSample) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, drawCall{title: title, sample: t})
	if r.err != nil && len(r.calls) == r.failAt {
		return r.err
	}
	return nil
}

func (r *spyRenderer) snapshot() []drawCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]drawCall(nil), r.calls...)
}

func testTargets(n int) ([]Target, []*drifttest.RecordingSurface) {
	specs := labels.Builtin()[:n]
	targets := make([]Target, n)
	surfaces := make([]*drifttest.RecordingSurface, n)
	for i, spec := range specs {
		surfaces[i] = drifttest.NewRecordingSurface()
		targets[i] = Target{Spec: spec, Surface: surfaces[i]}
	}
	return targets, surfaces
}

func recvFrame(t *testing.T, frames <-chan Frame) Frame {
	t.Helper()
	select {
	case f := <-frames:
		return f
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for a frame")
		return Frame{}
	}
}

type harness struct {
	errc   chan error
	cancel context.CancelFunc
}

// startDriver runs d in the background and returns once the first frame
// was presented and the ticker is armed.
func startDriver(t *testing.T, d *Driver, frames chan Frame, clk *clockwork.FakeClock) *harness {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	errc := make(chan error, 1)
	go func() { errc <- d.Run(ctx) }()

	recvFrame(t, frames)
	waitCtx, waitCancel := context.WithTimeout(ctx, 5*time.Second)
	defer waitCancel()
	require.NoError(t, clk.BlockUntilContext(waitCtx, 1), "ticker was never armed")
	return &harness{errc: errc, cancel: cancel}
}

func presentTo(frames chan Frame) Presenter {
	return func(_ context.Context, f Frame) error {
		frames <- f
		return nil
	}
}

func TestFirstFrameBeforeFirstTick(t *testing.T) {
	clk := drifttest.NewFakeClockAt(9, 41, 0, 0)
	spy := &spyRenderer{}
	targets, _ := testTargets(3)
	frames := make(chan Frame, 16)

	d, err := NewDriver(clk, targets, WithRenderer(spy), WithPresenter(presentTo(frames)))
	require.NoError(t, err)
	require.Equal(t, StateIdle, d.State())

	h := startDriver(t, d, frames, clk)

	require.Equal(t, StateRunning, d.State())
	require.Equal(t, uint64(1), d.Frames())
	calls := spy.snapshot()
	require.Len(t, calls, 3)
	for i, c := range calls {
		require.Equal(t, targets[i].Spec.Title, c.title)
		require.Equal(t, clockface.TimeSample{Hour: 9, Minute: 41}, c.sample)
	}

	h.cancel()
	require.ErrorIs(t, <-h.errc, context.Canceled)
}

func TestEveryTickDrawsEveryFaceWithOneSample(t *testing.T) {
	const faces, ticks = 10, 6

	clk := drifttest.NewFakeClockAt(23, 59, 57, 0)
	spy := &spyRenderer{}
	targets, _ := testTargets(faces)
	frames := make(chan Frame, 16)

	d, err := NewDriver(clk, targets, WithRenderer(spy), WithPresenter(presentTo(frames)))
	require.NoError(t, err)
	h := startDriver(t, d, frames, clk)

	for i := 0; i < ticks; i++ {
		clk.Advance(time.Second)
		f := recvFrame(t, frames)
		require.Equal(t, uint64(i+2), f.Seq)
	}
	h.cancel()
	require.ErrorIs(t, <-h.errc, context.Canceled)

	calls := spy.snapshot()
	require.Len(t, calls, faces*(ticks+1))

	perFace := make(map[string]int)
	for _, c := range calls {
		perFace[c.title]++
	}
	for _, target := range targets {
		require.Equal(t, ticks+1, perFace[target.Spec.Title], "draws for %s", target.Spec.Title)
	}

	for frame := 0; frame <= ticks; frame++ {
		batch := calls[frame*faces : (frame+1)*faces]
		for _, c := range batch[1:] {
			require.Equal(t, batch[0].sample, c.sample, "frame %d mixed samples", frame)
		}
	}
	// 23:59:57 + 3s wraps to midnight.
	require.Equal(t, clockface.TimeSample{}, calls[3*faces].sample)
}

func TestCancelDisarmsTicker(t *testing.T) {
	clk := drifttest.NewFakeClock()
	targets, _ := testTargets(2)
	frames := make(chan Frame, 16)

	d, err := NewDriver(clk, targets, WithRenderer(&spyRenderer{}), WithPresenter(presentTo(frames)))
	require.NoError(t, err)
	h := startDriver(t, d, frames, clk)

	h.cancel()
	require.ErrorIs(t, <-h.errc, context.Canceled)
	require.Equal(t, StateStopped, d.State())

	clk.Advance(10 * time.Second)
	require.Equal(t, uint64(1), d.Frames())
	require.Empty(t, frames)
}

func TestRenderErrorEndsRun(t *testing.T) {
	clk := drifttest.NewFakeClock()
	renderErr := &errors.ClockError{Op: "clockface.Draw", Kind: errors.KindRender, Err: stderrors.New("device lost")}
	// Second face of the second frame fails.
	spy := &spyRenderer{failAt: 4, err: renderErr}
	targets, _ := testTargets(2)
	frames := make(chan Frame, 16)

	handled := make(chan *errors.ClockError, 1)
	prev := errors.SetHandler(handlerFunc(func(e *errors.ClockError) { handled <- e }))
	t.Cleanup(func() { errors.SetHandler(prev) })

	d, err := NewDriver(clk, targets, WithRenderer(spy), WithPresenter(presentTo(frames)))
	require.NoError(t, err)
	h := startDriver(t, d, frames, clk)

	clk.Advance(time.Second)
	err = <-h.errc
	require.ErrorIs(t, err, renderErr)
	require.Equal(t, StateFailed, d.State())
	require.Equal(t, uint64(1), d.Frames(), "a failed frame must not be counted or presented")
	require.Empty(t, frames)
	require.Same(t, renderErr, <-handled)

	clk.Advance(5 * time.Second)
	require.Len(t, spy.snapshot(), 4, "no frames may be drawn after a failure")
}

func TestPresenterErrorIsSinkError(t *testing.T) {
	clk := drifttest.NewFakeClock()
	targets, _ := testTargets(1)
	boom := stderrors.New("disk full")

	d, err := NewDriver(clk, targets,
		WithRenderer(&spyRenderer{}),
		WithPresenter(func(context.Context, Frame) error { return boom }))
	require.NoError(t, err)

	err = d.Run(context.Background())
	require.ErrorIs(t, err, boom)
	require.Equal(t, errors.KindSink, errors.KindOf(err))
	require.Equal(t, StateFailed, d.State())
}

func TestCancelDuringPresentStops(t *testing.T) {
	clk := drifttest.NewFakeClock()
	targets, _ := testTargets(1)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	d, err := NewDriver(clk, targets,
		WithRenderer(&spyRenderer{}),
		WithPresenter(func(ctx context.Context, _ Frame) error {
			cancel()
			return ctx.Err()
		}))
	require.NoError(t, err)

	require.ErrorIs(t, d.Run(ctx), context.Canceled)
	require.Equal(t, StateStopped, d.State())
}

func TestRealRendererClearsBeforeDrawing(t *testing.T) {
	clk := drifttest.NewFakeClockAt(3, 15, 0, 0)
	targets, surfaces := testTargets(2)

	d, err := NewDriver(clk, targets,
		WithBackground(graphics.ColorBlack),
		WithPresenter(func(context.Context, Frame) error { return stderrors.New("stop") }))
	require.NoError(t, err)
	require.Error(t, d.Run(context.Background()))

	for _, s := range surfaces {
		ops := s.Ops()
		require.Equal(t, "clear", ops[0].Op)
		require.Equal(t, "0xFF000000", ops[0].Params["color"])
		require.Len(t, s.OpsNamed("drawLine"), 15)
	}
}

func TestWholeSecondSampler(t *testing.T) {
	clk := drifttest.NewFakeClockAt(10, 0, 0, 500_000_000)
	spy := &spyRenderer{}
	targets, _ := testTargets(1)

	d, err := NewDriver(clk, targets,
		WithRenderer(spy),
		WithSampler(clockface.WholeSecondSampleOf),
		WithPresenter(func(context.Context, Frame) error { return stderrors.New("stop") }))
	require.NoError(t, err)
	require.Error(t, d.Run(context.Background()))

	require.Equal(t, 0.0, spy.snapshot()[0].sample.Second)
}

func TestRunTwice(t *testing.T) {
	clk := drifttest.NewFakeClock()
	targets, _ := testTargets(1)
	d, err := NewDriver(clk, targets,
		WithRenderer(&spyRenderer{}),
		WithPresenter(func(context.Context, Frame) error { return stderrors.New("stop") }))
	require.NoError(t, err)
	require.Error(t, d.Run(context.Background()))
	require.ErrorIs(t, d.Run(context.Background()), ErrAlreadyStarted)
}

func TestNewDriverRejectsBadConfig(t *testing.T) {
	clk := drifttest.NewFakeClock()
	targets, _ := testTargets(1)

	tests := []struct {
		name    string
		clock   Clock
		targets []Target
		opts    []Option
	}{
		{"no targets", clk, nil, nil},
		{"nil clock", nil, targets, nil},
		{"nil surface", clk, []Target{{Spec: labels.Builtin()[0]}}, nil},
		{"blank title", clk, []Target{{Spec: labels.ClockSpec{Labels: labels.Runes}, Surface: drifttest.NewRecordingSurface()}}, nil},
		{"zero interval", clk, targets, []Option{WithInterval(0)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDriver(tt.clock, tt.targets, tt.opts...)
			require.True(t, errors.IsConfig(err), "err = %v", err)
		})
	}
}

func TestStateString(t *testing.T) {
	require.Equal(t, "idle", StateIdle.String())
	require.Equal(t, "running", StateRunning.String())
	require.Equal(t, "stopped", StateStopped.String())
	require.Equal(t, "failed", StateFailed.String())
	require.Equal(t, "State(9)", State(9).String())
}

type handlerFunc func(*errors.ClockError)

func (f handlerFunc) HandleError(e *errors.ClockError) { f(e) }
func (f handlerFunc) HandlePanic(*errors.PanicError)   {}
