// Package config loads the optional exoclock.yaml file and resolves it
// into the values the panel, driver and sinks are built from.
package config

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/exoclock/pkg/animation"
	"github.com/go-drift/exoclock/pkg/clockface"
	"github.com/go-drift/exoclock/pkg/errors"
	"github.com/go-drift/exoclock/pkg/graphics"
	"github.com/go-drift/exoclock/pkg/labels"
	"github.com/go-drift/exoclock/pkg/panel"
	"github.com/go-drift/exoclock/pkg/sink"
)

// FileName is the configuration file looked up when none is given.
const FileName = "exoclock.yaml"

// SchemaVersion is the configuration schema this build writes and reads.
// Files declaring another major version are rejected.
const SchemaVersion = "v1.0.0"

// DefaultOutput is the image written when neither an output path nor a
// live address is configured.
const DefaultOutput = "exoclock.png"

// Config represents the optional exoclock.yaml configuration.
type Config struct {
	Version      string        `yaml:"version,omitempty"`
	Panel        PanelConfig   `yaml:"panel"`
	Fonts        []string      `yaml:"fonts,omitempty"`
	Interval     time.Duration `yaml:"interval,omitempty"`
	WholeSeconds bool          `yaml:"whole_seconds,omitempty"`
	Clocks       []ClockConfig `yaml:"clocks,omitempty"`
	Output       OutputConfig  `yaml:"output"`
	Live         LiveConfig    `yaml:"live"`

	// path is the file the config was read from, if any.
	path string
}

// PanelConfig contains grid and title settings.
type PanelConfig struct {
	// Title is the heading above the grid. Unset uses the built-in
	// heading; an explicit empty string omits it.
	Title      *string `yaml:"title,omitempty"`
	Rows       int     `yaml:"rows,omitempty"`
	Columns    int     `yaml:"columns,omitempty"`
	CellSize   int     `yaml:"cell_size,omitempty"`
	Background string  `yaml:"background,omitempty"`
}

// ClockConfig selects one face: a catalog set, or a title with twelve
// labels given 12-first (labels) or 1-first (labels_one_first).
type ClockConfig struct {
	Catalog        string   `yaml:"catalog,omitempty"`
	Title          string   `yaml:"title,omitempty"`
	Labels         []string `yaml:"labels,omitempty"`
	LabelsOneFirst []string `yaml:"labels_one_first,omitempty"`
}

// OutputConfig contains the file sink settings.
type OutputConfig struct {
	Path   string `yaml:"path,omitempty"`
	Format string `yaml:"format,omitempty"`
}

// LiveConfig contains the websocket live view settings.
type LiveConfig struct {
	Addr     string `yaml:"addr,omitempty"`
	MaxWidth int    `yaml:"max_width,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	// Source is the file the values came from, empty for defaults.
	Source       string
	Title        string
	Clocks       []labels.ClockSpec
	Layout       panel.Layout
	Background   graphics.Color
	Fonts        []string
	Interval     time.Duration
	WholeSeconds bool
	OutputPath   string
	OutputFormat sink.Format
	LiveAddr     string
	LiveMaxWidth int
}

// Sampler returns the time sampler matching WholeSeconds.
func (r *Resolved) Sampler() clockface.Sampler {
	if r.WholeSeconds {
		return clockface.WholeSecondSampleOf
	}
	return clockface.SampleOf
}

// LoadOptional reads path if present. A missing file yields an empty
// Config.
func LoadOptional(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil && stderrors.Is(err, os.ErrNotExist) {
		return &Config{}, nil
	}
	return cfg, err
}

// Load reads and parses path. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("config.Load", errors.KindConfig, fmt.Errorf("failed to read %s: %w", path, err))
	}
	cfg, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, errors.New("config.Load", errors.KindConfig, fmt.Errorf("failed to parse %s: %w", path, err))
	}
	cfg.path = path
	return cfg, nil
}

// Parse decodes a configuration document.
func Parse(r io.Reader) (*Config, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var cfg Config
	if err := dec.Decode(&cfg); err != nil && !stderrors.Is(err, io.EOF) {
		return nil, err
	}
	return &cfg, nil
}

// Resolve applies defaults and validates cfg. Every error it returns is a
// configuration error.
func Resolve(cfg *Config) (*Resolved, error) {
	const op = "config.Resolve"

	if err := checkVersion(cfg.Version); err != nil {
		return nil, errors.New(op, errors.KindConfig, err)
	}

	clocks, err := resolveClocks(cfg.Clocks)
	if err != nil {
		return nil, err
	}

	title := labels.DefaultPanelTitle
	if cfg.Panel.Title != nil {
		title = strings.TrimSpace(*cfg.Panel.Title)
	}

	if cfg.Panel.Rows < 0 || cfg.Panel.Columns < 0 {
		return nil, errors.Config(op, "panel rows and columns must not be negative")
	}
	rows, cols := panel.Grid(len(clocks), cfg.Panel.Rows, cfg.Panel.Columns)
	layout := panel.DefaultLayout(len(clocks))
	layout.Rows, layout.Columns = rows, cols
	if cfg.Panel.CellSize != 0 {
		layout = layout.WithCellSize(cfg.Panel.CellSize)
	}
	if title == "" {
		layout.HeaderHeight = 0
	}
	if err := layout.Validate(len(clocks)); err != nil {
		return nil, err
	}

	background := graphics.ColorWhite
	if cfg.Panel.Background != "" {
		background, err = graphics.ParseHex(cfg.Panel.Background)
		if err != nil {
			return nil, errors.New(op, errors.KindConfig, fmt.Errorf("panel.background: %w", err))
		}
	}

	interval := cfg.Interval
	switch {
	case interval == 0:
		interval = animation.DefaultInterval
	case interval < 0:
		return nil, errors.Config(op, "interval must be positive, got %v", interval)
	}

	format, err := sink.ParseFormat(cfg.Output.Format)
	if err != nil {
		return nil, errors.New(op, errors.KindConfig, fmt.Errorf("output.format: %w", err))
	}
	outPath := strings.TrimSpace(cfg.Output.Path)
	liveAddr := strings.TrimSpace(cfg.Live.Addr)
	if outPath == "" && liveAddr == "" {
		outPath = DefaultOutput
	}
	if outPath != "" && cfg.Output.Format == "" {
		format = sink.FormatFromPath(outPath)
	}
	if cfg.Live.MaxWidth < 0 {
		return nil, errors.Config(op, "live.max_width must not be negative")
	}

	return &Resolved{
		Source:       cfg.path,
		Title:        title,
		Clocks:       clocks,
		Layout:       layout,
		Background:   background,
		Fonts:        resolveFonts(cfg.Fonts, cfg.path),
		Interval:     interval,
		WholeSeconds: cfg.WholeSeconds,
		OutputPath:   outPath,
		OutputFormat: format,
		LiveAddr:     liveAddr,
		LiveMaxWidth: cfg.Live.MaxWidth,
	}, nil
}

// checkVersion accepts an empty version or any v1.x.y.
func checkVersion(v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return fmt.Errorf("version %q is not a semantic version", v)
	}
	if semver.Major(v) != semver.Major(SchemaVersion) {
		return fmt.Errorf("version %s is not supported (want %s.x)", v, semver.Major(SchemaVersion))
	}
	return nil
}

// resolveClocks turns clock entries into specs. No entries means the
// whole built-in catalog.
func resolveClocks(entries []ClockConfig) ([]labels.ClockSpec, error) {
	if len(entries) == 0 {
		return labels.Builtin(), nil
	}
	specs := make([]labels.ClockSpec, 0, len(entries))
	for i, c := range entries {
		spec, err := resolveClock(c)
		if err != nil {
			return nil, errors.New("config.Resolve", errors.KindConfig, fmt.Errorf("clocks[%d]: %w", i, err))
		}
		specs = append(specs, spec)
	}
	if err := labels.Validate(specs); err != nil {
		return nil, err
	}
	return specs, nil
}

func resolveClock(c ClockConfig) (labels.ClockSpec, error) {
	sources := 0
	for _, set := range []bool{c.Catalog != "", c.Labels != nil, c.LabelsOneFirst != nil} {
		if set {
			sources++
		}
	}
	if sources != 1 {
		return labels.ClockSpec{}, stderrors.New("exactly one of catalog, labels or labels_one_first is required")
	}

	var (
		spec labels.ClockSpec
		err  error
	)
	switch {
	case c.Catalog != "":
		spec, err = labels.Lookup(c.Catalog)
	case c.Labels != nil:
		spec.Labels, err = labels.New(c.Labels)
	default:
		spec.Labels, err = labels.FromOneFirst(c.LabelsOneFirst)
	}
	if err != nil {
		return labels.ClockSpec{}, err
	}
	if t := strings.TrimSpace(c.Title); t != "" {
		spec.Title = t
	}
	if spec.Title == "" {
		return labels.ClockSpec{}, stderrors.New("title is required for custom labels")
	}
	return spec, nil
}

// resolveFonts makes relative font paths relative to the config file.
func resolveFonts(fonts []string, source string) []string {
	if len(fonts) == 0 {
		return nil
	}
	base := "."
	if source != "" {
		base = filepath.Dir(source)
	}
	out := make([]string, 0, len(fonts))
	for _, f := range fonts {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		if !filepath.IsAbs(f) {
			f = filepath.Join(base, f)
		}
		out = append(out, f)
	}
	return out
}
