package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/c360studio/sosagraph/config"
	"github.com/c360studio/sosagraph/export"
	"github.com/c360studio/sosagraph/graph"
	"github.com/c360studio/sosagraph/identifier"
	"github.com/c360studio/sosagraph/manifest"
	"github.com/c360studio/sosagraph/sosa"
	"github.com/c360studio/sosagraph/store"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// App wires configuration, manifests, the session and output together.
type App struct {
	cfg    *config.Config
	logger *slog.Logger
	alloc  *identifier.Allocator

	// registry is nil when metrics are disabled
	registry *prometheus.Registry

	now func() time.Time
}

// BuildResult is the outcome of applying manifests to a fresh session.
type BuildResult struct {
	Session *sosa.Session
	Network *manifest.Network
	Files   []string
}

// OutputOptions selects how a build is rendered.
type OutputOptions struct {
	Format   export.Format
	Payloads bool
	// Output is a file path; empty writes to the app's stdout writer.
	Output string
}

// NewApp creates a new application instance.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	alloc, err := cfg.Allocator()
	if err != nil {
		return nil, err
	}

	app := &App{
		cfg:    cfg,
		logger: logger,
		alloc:  alloc,
		now:    func() time.Time { return time.Now().UTC() },
	}
	if cfg.Metrics.Enabled {
		app.registry = prometheus.NewRegistry()
	}
	return app, nil
}

// OutputOptions resolves output settings. Explicit arguments win over the
// configuration; with no format anywhere the output extension decides.
func (a *App) OutputOptions(format, output string, payloads bool) (OutputOptions, error) {
	opts := OutputOptions{Payloads: payloads, Output: a.cfg.Export.Output}
	if output != "" {
		opts.Output = output
	}

	switch {
	case format != "":
		f, err := export.ParseFormat(format)
		if err != nil {
			return opts, err
		}
		opts.Format = f
	case output != "":
		if f, ok := export.FormatForPath(output); ok {
			opts.Format = f
			break
		}
		fallthrough
	default:
		f, err := a.cfg.Format()
		if err != nil {
			return opts, err
		}
		opts.Format = f
	}
	return opts, nil
}

// Build loads every manifest matching pattern and applies them to a new session.
func (a *App) Build(pattern string) (*BuildResult, error) {
	m, files, err := manifest.LoadGlob(pattern)
	if err != nil {
		return nil, err
	}

	storeOpts := []store.Option{store.WithLogger(a.logger)}
	if a.registry != nil {
		storeOpts = append(storeOpts, store.WithMetrics(a.registry))
	}
	s := sosa.NewSession(
		sosa.WithStore(store.NewMemory(storeOpts...)),
		sosa.WithAllocator(a.alloc),
		sosa.WithLogger(a.logger),
	)

	network, err := m.Apply(s)
	if err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("apply manifests: %w", err)
	}

	a.logger.Info("Graph built",
		"manifests", len(files),
		"triples", s.Store().Len(),
		"platforms", len(network.Platforms),
		"collections", len(network.Collections))

	return &BuildResult{Session: s, Network: network, Files: files}, nil
}

// Render writes the built graph to w.
func (a *App) Render(w io.Writer, res *BuildResult, opts OutputOptions) error {
	if opts.Payloads {
		payloads := graph.BuildPayloads(res.Session.Store(), graph.DefaultSource, a.now())
		return graph.WriteJSONLines(w, payloads)
	}
	return res.Session.Write(w, opts.Format)
}

// Emit renders the build to the configured output file, or to stdout when
// no file is set. The file is only replaced once rendering succeeded.
func (a *App) Emit(stdout io.Writer, res *BuildResult, opts OutputOptions) error {
	if opts.Output == "" {
		return a.Render(stdout, res, opts)
	}

	var buf bytes.Buffer
	if err := a.Render(&buf, res, opts); err != nil {
		return err
	}
	if dir := filepath.Dir(opts.Output); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(opts.Output, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	a.logger.Info("Wrote graph", "path", opts.Output, "format", opts.Format, "payloads", opts.Payloads)
	return nil
}

// Run builds and emits once.
func (a *App) Run(stdout io.Writer, pattern string, opts OutputOptions) (*BuildResult, error) {
	res, err := a.Build(pattern)
	if err != nil {
		return nil, err
	}
	defer res.Session.Close()

	if err := a.Emit(stdout, res, opts); err != nil {
		return nil, err
	}
	a.ReportMetrics()
	return res, nil
}

// Watch builds once, then rebuilds whenever a manifest under the pattern's
// base directory changes, until ctx is cancelled. Failed rebuilds are logged
// and the previous output is kept.
func (a *App) Watch(ctx context.Context, stdout io.Writer, pattern string, opts OutputOptions) error {
	pattern = filepath.Clean(pattern)
	base, _ := doublestar.SplitPattern(filepath.ToSlash(pattern))

	res, err := a.Run(stdout, pattern, opts)
	if err != nil {
		return err
	}

	w, err := manifest.NewWatcher(manifest.DefaultWatchConfig(), filepath.FromSlash(base), a.logger)
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	w.Seed(res.Files...)

	if err := w.Start(ctx); err != nil {
		_ = w.Stop()
		return fmt.Errorf("start watcher: %w", err)
	}
	defer w.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events():
			if !ok {
				return nil
			}
			changed := a.matches(pattern, ev)
			// Coalesce whatever else is already queued
			for drained := false; !drained; {
				select {
				case more, ok := <-w.Events():
					if !ok {
						return nil
					}
					changed = changed || a.matches(pattern, more)
				default:
					drained = true
				}
			}
			if !changed {
				continue
			}
			if _, err := a.Run(stdout, pattern, opts); err != nil {
				a.logger.Error("Rebuild failed", "error", err)
			}
		}
	}
}

func (a *App) matches(pattern string, ev manifest.WatchEvent) bool {
	ok, err := doublestar.Match(filepath.ToSlash(pattern), filepath.ToSlash(filepath.Clean(ev.Name)))
	if err != nil {
		return false
	}
	a.logger.Debug("Manifest event", "path", ev.Path, "op", ev.Operation, "matched", ok)
	return ok
}

// ReportMetrics logs the current value of every registered metric.
func (a *App) ReportMetrics() {
	values := a.MetricValues()
	for _, name := range sortedNames(values) {
		a.logger.Info("Metric", "name", name, "value", values[name])
	}
}

// MetricValues gathers the registry into name/value pairs. It returns nil
// when metrics are disabled.
func (a *App) MetricValues() map[string]float64 {
	if a.registry == nil {
		return nil
	}
	families, err := a.registry.Gather()
	if err != nil {
		a.logger.Warn("Failed to gather metrics", "error", err)
		return nil
	}

	values := make(map[string]float64, len(families))
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			values[mf.GetName()] += metricValue(mf.GetType(), m)
		}
	}
	return values
}

func metricValue(t dto.MetricType, m *dto.Metric) float64 {
	switch t {
	case dto.MetricType_COUNTER:
		return m.GetCounter().GetValue()
	case dto.MetricType_GAUGE:
		return m.GetGauge().GetValue()
	default:
		return m.GetUntyped().GetValue()
	}
}

// sortedNames returns the keys of m in order.
func sortedNames(m map[string]float64) []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
