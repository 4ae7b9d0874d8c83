package main

import (
	"context"
	stderrors "errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-drift/exoclock/internal/config"
	"github.com/go-drift/exoclock/pkg/animation"
	"github.com/go-drift/exoclock/pkg/errors"
	"github.com/go-drift/exoclock/pkg/panel"
	"github.com/go-drift/exoclock/pkg/sink"
)

// RunCmd animates the panel.
type RunCmd struct {
	Output       string        `help:"Rewrite this image file every frame (overrides output.path)." short:"o" type:"path"`
	Addr         string        `help:"Serve the live view on this address (overrides live.addr)."`
	Interval     time.Duration `help:"Redraw period (overrides interval)."`
	WholeSeconds bool          `help:"Move the second hand in whole-second steps."`
}

func (c *RunCmd) apply(r *config.Resolved) error {
	if c.Output != "" {
		r.OutputPath = c.Output
		r.OutputFormat = sink.FormatFromPath(c.Output)
	}
	if c.Addr != "" {
		r.LiveAddr = c.Addr
	}
	if c.Interval < 0 {
		return errors.Config("exoclock.run", "--interval must be positive, got %v", c.Interval)
	}
	if c.Interval > 0 {
		r.Interval = c.Interval
	}
	if c.WholeSeconds {
		r.WholeSeconds = true
	}
	return nil
}

func (c *RunCmd) Run(env *Env) error {
	r, err := env.resolve()
	if err != nil {
		return err
	}
	if err := c.apply(r); err != nil {
		return err
	}
	fonts, err := env.fonts(r.Fonts)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	var sinks []sink.Sink
	if r.OutputPath != "" {
		fs, err := sink.NewFile(r.OutputPath, r.OutputFormat)
		if err != nil {
			return err
		}
		sinks = append(sinks, fs)
		env.Logger.Info("writing frames", slog.String("path", fs.Path()))
	}
	if r.LiveAddr != "" {
		live, err := startLive(r, env.Logger, cancel)
		if err != nil {
			return err
		}
		sinks = append(sinks, live)
	}

	p, err := panel.New(r.Clocks, panel.Options{
		Title:      r.Title,
		Layout:     &r.Layout,
		Background: r.Background,
		Fonts:      fonts,
		Sinks:      sinks,
		Logger:     env.Logger,
	})
	if err != nil {
		for _, s := range sinks {
			_ = s.Close()
		}
		return err
	}
	defer func() {
		if err := p.Close(); err != nil {
			env.Logger.Warn("closing sinks", slog.Any("err", err))
		}
	}()

	d, err := animation.NewDriver(animation.SystemClock(), p.Targets(),
		animation.WithInterval(r.Interval),
		animation.WithSampler(r.Sampler()),
		animation.WithPresenter(p.Present),
		animation.WithBackground(r.Background),
		animation.WithLogger(env.Logger),
	)
	if err != nil {
		return err
	}

	err = d.Run(ctx)
	if stderrors.Is(err, context.Canceled) {
		if cause := context.Cause(ctx); cause != nil && !stderrors.Is(cause, context.Canceled) {
			return cause
		}
		return nil
	}
	return err
}

// startLive binds the live view address and serves it in the background.
// A server failure after start-up cancels the run.
func startLive(r *config.Resolved, logger *slog.Logger, cancel context.CancelCauseFunc) (*sink.Live, error) {
	ln, err := net.Listen("tcp", r.LiveAddr)
	if err != nil {
		return nil, errors.New("exoclock.run", errors.KindInit, err)
	}
	live := sink.NewLive(sink.LiveOptions{MaxWidth: r.LiveMaxWidth, Logger: logger})
	go func() {
		defer errors.Recover("exoclock.live")
		if err := live.Serve(ln); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			cancel(errors.New("exoclock.live", errors.KindSink, err))
		}
	}()
	logger.Info("live view", slog.String("url", "http://"+displayAddr(ln.Addr().String())+"/"))
	return live, nil
}

func displayAddr(addr string) string {
	if strings.HasPrefix(addr, "[::]:") {
		return "localhost" + strings.TrimPrefix(addr, "[::]")
	}
	if strings.HasPrefix(addr, "0.0.0.0:") {
		return "localhost" + strings.TrimPrefix(addr, "0.0.0.0")
	}
	return addr
}
