package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"git.home.luguber.info/inful/docbabel/internal/build"
	"git.home.luguber.info/inful/docbabel/internal/config"
	"git.home.luguber.info/inful/docbabel/internal/logfields"
	"git.home.luguber.info/inful/docbabel/internal/metrics"
	"git.home.luguber.info/inful/docbabel/internal/plugin"
	"git.home.luguber.info/inful/docbabel/internal/watch"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	SiteDir     string `name:"site-dir" short:"d" help:"Override site_dir from the configuration" type:"path"`
	Clean       bool   `help:"Remove the site directory before building"`
	Watch       bool   `short:"w" help:"Rebuild whenever the docs, theme or configuration change"`
	MetricsFile string `name:"metrics-file" help:"Write Prometheus metrics in text format to this file after each build" type:"path"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	runner := &buildRunner{
		configPath:  root.Config,
		siteDir:     b.SiteDir,
		clean:       b.Clean,
		metricsFile: b.MetricsFile,
		recorder:    metrics.NewPrometheusRecorder(nil),
		logger:      g.logger(),
		out:         os.Stdout,
	}
	if !b.Watch {
		return runner.build(ctx)
	}
	return runner.watch(ctx)
}

// buildRunner loads the configuration afresh for every build so that watch
// mode picks up edits to the configuration file.
type buildRunner struct {
	configPath  string
	siteDir     string
	clean       bool
	metricsFile string
	registry    *plugin.Registry
	recorder    *metrics.PrometheusRecorder
	logger      *slog.Logger
	out         io.Writer
}

func (r *buildRunner) load() (*config.Config, error) {
	cfg, err := config.Load(r.configPath)
	if err != nil {
		return nil, err
	}
	if r.siteDir != "" {
		cfg.SiteDir = r.siteDir
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func (r *buildRunner) build(ctx context.Context) error {
	cfg, err := r.load()
	if err != nil {
		return err
	}
	reg := r.registry
	if reg == nil {
		reg = plugin.DefaultRegistry()
	}
	plugins, err := plugin.LoadCollection(reg, cfg, r.logger)
	if err != nil {
		return err
	}
	builder, err := build.NewBuilder(cfg, plugins)
	if err != nil {
		return err
	}
	builder.WithRecorder(r.recorder).WithLogger(r.logger).WithOptions(build.Options{Clean: r.clean})

	result, buildErr := builder.Run(ctx)
	if r.metricsFile != "" {
		if err := r.recorder.WriteTextfile(r.metricsFile); err != nil {
			r.logger.Warn("Failed to write metrics file", logfields.Path(r.metricsFile), logfields.Error(err))
		}
	}
	if buildErr != nil {
		return buildErr
	}
	_, _ = fmt.Fprintf(r.out, "Built %d pages into %s in %s\n",
		result.PagesBuilt, result.SiteDir, result.Duration.Round(time.Millisecond))
	return nil
}

func (r *buildRunner) watch(ctx context.Context) error {
	// A failing first build still enters watch mode so the author can fix it.
	if err := r.build(ctx); err != nil {
		r.logger.Error("Initial build failed", logfields.Error(err))
	}

	cfg, err := r.load()
	if err != nil {
		return err
	}
	dirs := []string{cfg.DocsDir, filepath.Dir(cfg.ConfigFile)}
	if cfg.Theme.CustomDir != "" {
		dirs = append(dirs, cfg.Theme.CustomDir)
	}
	return watch.New(r.build, uniqueDirs(dirs), cfg.SiteDir).Run(ctx)
}

// uniqueDirs drops directories nested in (or equal to) another entry.
func uniqueDirs(dirs []string) []string {
	var out []string
	for _, d := range dirs {
		d = filepath.Clean(d)
		covered := false
		for i, o := range out {
			if within(d, o) {
				covered = true
				break
			}
			if within(o, d) {
				out[i] = d
				covered = true
				break
			}
		}
		if !covered {
			out = append(out, d)
		}
	}
	return out
}

func within(p, dir string) bool {
	rel, err := filepath.Rel(dir, p)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
