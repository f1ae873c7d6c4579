// Package main provides the sosagraph binary entry point.
// Sosagraph builds SOSA/SSN sensor network graphs from YAML manifests and
// serializes them as Turtle, N-Triples, JSON-LD or graph-ingest payloads.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/c360studio/sosagraph/config"
	"github.com/c360studio/sosagraph/export"
	"github.com/c360studio/sosagraph/vocabulary/ssn"
	"github.com/spf13/cobra"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "sosagraph"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// globals carries state resolved by the root command for its subcommands.
type globals struct {
	configPath string
	logLevel   string

	cfg    *config.Config
	logger *slog.Logger
}

func rootCmd() *cobra.Command {
	g := &globals{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "SOSA/SSN sensor network graph builder",
		Long: `Sosagraph builds W3C SOSA/SSN sensor network graphs.

Platforms, sensors, actuators, samplers and observation collections are
described in YAML manifests and turned into an RDF graph that can be
written as Turtle, N-Triples or JSON-LD, or as semstreams graph-ingest
entity payloads.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.setup(cmd)
		},
	}

	cmd.PersistentFlags().StringVarP(&g.configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		buildCmd(g),
		watchCmd(g),
		contextCmd(),
		formatsCmd(),
		versionCmd(),
	)

	return cmd
}

// setup loads configuration and configures logging.
func (g *globals) setup(cmd *cobra.Command) error {
	// Bootstrap logger so config loading can report at the requested level
	level, err := config.ParseLevel(g.logLevel)
	if err != nil {
		return fmt.Errorf("--log-level: %w", err)
	}
	g.logger = newLogger(cmd.ErrOrStderr(), level)

	loader := config.NewLoader(g.logger)
	if g.configPath != "" {
		g.cfg, err = loader.LoadFile(g.configPath)
	} else {
		g.cfg, err = loader.Load()
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if cmd.Flags().Changed("log-level") {
		g.cfg.Log.Level = g.logLevel
	}
	level, err = config.ParseLevel(g.cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	g.logger = newLogger(cmd.ErrOrStderr(), level)
	slog.SetDefault(g.logger)
	return nil
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// outputFlags are shared by build and watch.
type outputFlags struct {
	manifests string
	format    string
	output    string
	payloads  bool
}

func (f *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.manifests, "manifest", "m", "", "Manifest file or glob (supports **)")
	cmd.Flags().StringVarP(&f.format, "format", "f", "", "Output format (turtle, ntriples, jsonld)")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().BoolVar(&f.payloads, "payloads", false, "Write graph-ingest entity payloads as JSON lines")
	_ = cmd.MarkFlagRequired("manifest")
}

func (f *outputFlags) resolve(g *globals) (*App, OutputOptions, error) {
	app, err := NewApp(g.cfg, g.logger)
	if err != nil {
		return nil, OutputOptions{}, err
	}
	opts, err := app.OutputOptions(f.format, f.output, f.payloads)
	if err != nil {
		return nil, OutputOptions{}, err
	}
	return app, opts, nil
}

func buildCmd(g *globals) *cobra.Command {
	f := &outputFlags{}
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a graph from manifests and write it out",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, opts, err := f.resolve(g)
			if err != nil {
				return err
			}
			_, err = app.Run(cmd.OutOrStdout(), f.manifests, opts)
			return err
		},
	}
	f.register(cmd)
	return cmd
}

func watchCmd(g *globals) *cobra.Command {
	f := &outputFlags{}
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Rebuild the graph whenever a manifest changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, opts, err := f.resolve(g)
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			g.logger.Info("Watching manifests", "pattern", f.manifests)
			if err := app.Watch(ctx, cmd.OutOrStdout(), f.manifests, opts); err != nil {
				return err
			}
			g.logger.Info("Watch stopped")
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func contextCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "context",
		Short: "Print the JSON-LD context",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := json.MarshalIndent(map[string]any{"@context": ssn.Context()}, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal context: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}
}

func formatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List supported output formats",
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tALIASES\tEXTENSION\tMIME TYPE\tDESCRIPTION")
			for _, info := range export.Formats() {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
					info.Name, strings.Join(info.Aliases, ","), info.Extension, info.MIMEType, info.Description)
			}
			return tw.Flush()
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	}
}
