package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/go-drift/exoclock/internal/config"
	"github.com/go-drift/exoclock/pkg/errors"
	"github.com/go-drift/exoclock/pkg/raster"
)

// Env is bound into every command's Run method.
type Env struct {
	ConfigPath string
	Stdout     io.Writer
	Logger     *slog.Logger
}

func newEnv(cli *CLI, stdout, stderr io.Writer) *Env {
	logger := newLogger(stderr, cli.LogLevel, cli.LogFormat)
	errors.SetHandler(&errors.LogHandler{Logger: logger, Verbose: cli.LogLevel == "debug"})
	return &Env{ConfigPath: cli.Config, Stdout: stdout, Logger: logger}
}

func newLogger(w io.Writer, level, format string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// resolve loads the configuration. An explicit --config must exist; the
// default file is optional.
func (e *Env) resolve() (*config.Resolved, error) {
	var (
		cfg *config.Config
		err error
	)
	if e.ConfigPath != "" {
		cfg, err = config.Load(e.ConfigPath)
	} else {
		cfg, err = config.LoadOptional(config.FileName)
	}
	if err != nil {
		return nil, err
	}
	r, err := config.Resolve(cfg)
	if err != nil {
		return nil, err
	}
	if r.Source != "" {
		e.Logger.Debug("configuration loaded", slog.String("path", r.Source))
	}
	return r, nil
}

// fonts builds the font chain: the bundled font first, then the
// configured fallbacks in order.
func (e *Env) fonts(paths []string) (*raster.FontManager, error) {
	fm, err := raster.NewFontManager()
	if err != nil {
		return nil, errors.New("exoclock.fonts", errors.KindInit, err)
	}
	for _, p := range paths {
		if err := fm.RegisterFile(p); err != nil {
			return nil, errors.New("exoclock.fonts", errors.KindConfig, fmt.Errorf("font %s: %w", p, err))
		}
		e.Logger.Debug("font registered", slog.String("path", p))
	}
	return fm, nil
}
