package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/c360studio/sosagraph/config"
	"github.com/c360studio/sosagraph/export"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const stationManifest = `
properties:
  - id: airspeed
    label: air speed
platforms:
  - id: p1
    label: P1
    comment: Platform1
    sensors:
      - id: s1
        description: S1
        observes: [airspeed]
collections:
  - id: myCol
    comment: myCol
    observations:
      - sensor: s1
        result: 42.0
`

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeManifest(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func newTestApp(t *testing.T, modify func(*config.Config)) *App {
	t.Helper()
	cfg := config.DefaultConfig()
	if modify != nil {
		modify(cfg)
	}
	app, err := NewApp(cfg, quietLogger())
	require.NoError(t, err)
	return app
}

func TestNewAppRejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Export.Format = "rdfxml"
	_, err := NewApp(cfg, quietLogger())
	assert.Error(t, err)
}

func TestAppBuildAndRenderTurtle(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "station.yaml", stationManifest)
	app := newTestApp(t, nil)

	res, err := app.Build(path)
	require.NoError(t, err)
	assert.Equal(t, []string{path}, res.Files)
	assert.Contains(t, res.Network.Platforms, "p1")
	assert.Contains(t, res.Network.Sensors, "s1")
	assert.Len(t, res.Network.Observations["myCol"], 1)

	var buf bytes.Buffer
	require.NoError(t, app.Render(&buf, res, OutputOptions{Format: export.FormatTurtle}))
	out := buf.String()
	assert.Contains(t, out, "sosa:Platform")
	assert.Contains(t, out, "sosa:hosts")
	assert.Contains(t, out, "sosa:madeBySensor")
	assert.Contains(t, out, `"42.0"`)
}

func TestAppBuildErrors(t *testing.T) {
	dir := t.TempDir()
	app := newTestApp(t, nil)

	_, err := app.Build(filepath.Join(dir, "*.yaml"))
	assert.Error(t, err, "no manifests match")

	bad := writeManifest(t, dir, "bad.yaml", `
collections:
  - id: c
    observations:
      - sensor: missing
        result: 1
`)
	_, err = app.Build(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing")
}

func TestAppRenderPayloads(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "station.yaml", stationManifest)
	app := newTestApp(t, nil)
	app.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	res, err := app.Build(path)
	require.NoError(t, err)

	subjects := make(map[string]bool)
	for _, q := range res.Session.Store().Triples() {
		subjects[q.Subject.String()] = true
	}

	var buf bytes.Buffer
	require.NoError(t, app.Render(&buf, res, OutputOptions{Payloads: true}))

	lines := 0
	sc := bufio.NewScanner(&buf)
	for sc.Scan() {
		var payload struct {
			ID      string           `json:"id"`
			Triples []map[string]any `json:"triples"`
		}
		require.NoError(t, json.Unmarshal(sc.Bytes(), &payload))
		assert.NotEmpty(t, payload.ID)
		assert.NotEmpty(t, payload.Triples)
		lines++
	}
	require.NoError(t, sc.Err())
	assert.Equal(t, len(subjects), lines)
}

func TestAppOutputOptions(t *testing.T) {
	tests := []struct {
		name       string
		cfgFormat  string
		format     string
		output     string
		wantFormat export.Format
		wantErr    bool
	}{
		{name: "config default", wantFormat: export.FormatTurtle},
		{name: "config format", cfgFormat: "jsonld", wantFormat: export.FormatJSONLD},
		{name: "explicit alias", format: "nt", wantFormat: export.FormatNTriples},
		{name: "explicit wins over extension", format: "ttl", output: "g.jsonld", wantFormat: export.FormatTurtle},
		{name: "extension", output: "out/graph.nt", wantFormat: export.FormatNTriples},
		{name: "unknown extension falls back", cfgFormat: "jsonld", output: "graph.txt", wantFormat: export.FormatJSONLD},
		{name: "unknown format", format: "rdfxml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t, func(c *config.Config) {
				if tt.cfgFormat != "" {
					c.Export.Format = tt.cfgFormat
				}
			})
			opts, err := app.OutputOptions(tt.format, tt.output, false)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantFormat, opts.Format)
			assert.Equal(t, tt.output, opts.Output)
		})
	}
}

func TestAppOutputOptionsConfigOutput(t *testing.T) {
	app := newTestApp(t, func(c *config.Config) { c.Export.Output = "graph.ttl" })

	opts, err := app.OutputOptions("", "", false)
	require.NoError(t, err)
	assert.Equal(t, "graph.ttl", opts.Output)

	opts, err = app.OutputOptions("", "other.nt", false)
	require.NoError(t, err)
	assert.Equal(t, "other.nt", opts.Output)
	assert.Equal(t, export.FormatNTriples, opts.Format)
}

func TestAppRunWritesFile(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "station.yaml", stationManifest)
	out := filepath.Join(dir, "build", "graph.nt")
	app := newTestApp(t, nil)

	opts, err := app.OutputOptions("", out, false)
	require.NoError(t, err)

	var stdout bytes.Buffer
	res, err := app.Run(&stdout, path, opts)
	require.NoError(t, err)
	assert.Empty(t, stdout.String())

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()

	triples, err := export.Parse(f, export.FormatNTriples)
	require.NoError(t, err)
	assert.Len(t, triples, res.Session.Store().Len())
}

func TestAppMetrics(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "station.yaml", stationManifest)

	disabled := newTestApp(t, nil)
	assert.Nil(t, disabled.MetricValues())

	app := newTestApp(t, func(c *config.Config) { c.Metrics.Enabled = true })
	res, err := app.Run(io.Discard, path, OutputOptions{Format: export.FormatTurtle})
	require.NoError(t, err)

	values := app.MetricValues()
	n := float64(res.Session.Store().Len())
	assert.Equal(t, n, values["sosagraph_store_triples"])
	assert.Equal(t, n, values["sosagraph_store_asserted_total"])
	assert.Equal(t, 0.0, values["sosagraph_store_retracted_total"])

	// A second build reuses the registered collectors
	_, err = app.Run(io.Discard, path, OutputOptions{Format: export.FormatTurtle})
	require.NoError(t, err)
	values = app.MetricValues()
	assert.Equal(t, n, values["sosagraph_store_triples"])
	assert.Equal(t, 2*n, values["sosagraph_store_asserted_total"])
}

func TestAppWatchRebuilds(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "station.yaml", stationManifest)
	out := filepath.Join(dir, "graph.ttl")
	app := newTestApp(t, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- app.Watch(ctx, io.Discard, path, OutputOptions{Format: export.FormatTurtle, Output: out})
	}()

	require.Eventually(t, func() bool {
		data, err := os.ReadFile(out)
		return err == nil && strings.Contains(string(data), "Platform1")
	}, 5*time.Second, 50*time.Millisecond, "initial build")

	// Give the watcher time to set up
	time.Sleep(200 * time.Millisecond)

	updated := strings.Replace(stationManifest, "comment: Platform1", "comment: Platform2", 1)
	require.NoError(t, os.WriteFile(path, []byte(updated), 0644))

	require.Eventually(t, func() bool {
		data, err := os.ReadFile(out)
		return err == nil && strings.Contains(string(data), "Platform2")
	}, 5*time.Second, 50*time.Millisecond, "rebuild after change")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

func TestAppWatchInitialBuildFails(t *testing.T) {
	app := newTestApp(t, nil)
	err := app.Watch(context.Background(), io.Discard, filepath.Join(t.TempDir(), "*.yaml"), OutputOptions{Format: export.FormatTurtle})
	assert.Error(t, err)
}

func executeRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, config.DefaultConfig().SaveToFile(cfgPath))

	var stdout, stderr bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", cfgPath, "--log-level", "error"}, args...))
	err := cmd.Execute()
	return stdout.String(), err
}

func TestBuildCommand(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "station.yaml", stationManifest)

	out, err := executeRoot(t, "build", "-m", path, "-f", "nt")
	require.NoError(t, err)
	assert.Contains(t, out, "<http://www.w3.org/ns/sosa/hosts>")

	triples, err := export.Parse(strings.NewReader(out), export.FormatNTriples)
	require.NoError(t, err)
	assert.NotEmpty(t, triples)
}

func TestBuildCommandRequiresManifest(t *testing.T) {
	_, err := executeRoot(t, "build")
	assert.Error(t, err)
}

func TestBuildCommandBadLogLevel(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "station.yaml", stationManifest)
	_, err := executeRoot(t, "build", "-m", path, "--log-level", "loud")
	assert.Error(t, err)
}

func TestContextCommand(t *testing.T) {
	out, err := executeRoot(t, "context")
	require.NoError(t, err)

	var doc map[string]map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Contains(t, doc["@context"], "sosa")
	assert.Contains(t, doc["@context"], "madeBySensor")
}

func TestFormatsCommand(t *testing.T) {
	out, err := executeRoot(t, "formats")
	require.NoError(t, err)
	for _, name := range []string{"turtle", "ntriples", "jsonld", ".ttl", "application/ld+json"} {
		assert.Contains(t, out, name)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := executeRoot(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "sosagraph version "+Version+" (build: "+BuildTime+")\n", out)
}
