package build

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/docbabel/internal/config"
	derrors "git.home.luguber.info/inful/docbabel/internal/errors"
	"git.home.luguber.info/inful/docbabel/internal/logfields"
	"git.home.luguber.info/inful/docbabel/internal/metrics"
	"git.home.luguber.info/inful/docbabel/internal/observability"
	"git.home.luguber.info/inful/docbabel/internal/plugin"
	"git.home.luguber.info/inful/docbabel/internal/structure"
	"git.home.luguber.info/inful/docbabel/internal/theme"
)

// Options modifies build behavior.
type Options struct {
	// Clean removes the site directory before writing.
	Clean bool
}

// Builder builds a site from its configuration. A Builder may run any
// number of builds, one at a time.
type Builder struct {
	cfg      *config.Config
	plugins  *plugin.Collection
	env      *theme.Environment
	recorder metrics.Recorder
	logger   *slog.Logger
	opts     Options

	// pagesWritten counts BuildPage calls of the running build.
	pagesWritten int
}

var _ plugin.Host = (*Builder)(nil)

// NewBuilder loads the configured theme and returns a Builder running the
// given plugins. A nil collection builds without plugins.
func NewBuilder(cfg *config.Config, plugins *plugin.Collection) (*Builder, error) {
	env, err := theme.Load(cfg.Theme)
	if err != nil {
		return nil, derrors.Wrap(err, derrors.CategoryConfig, derrors.SeverityFatal, "failed to load theme").
			WithContext("theme", cfg.Theme.Name)
	}
	if plugins == nil {
		plugins = plugin.NewCollection(nil)
	}
	return &Builder{
		cfg:      cfg,
		plugins:  plugins,
		env:      env,
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
	}, nil
}

// WithRecorder sets the metrics recorder.
func (b *Builder) WithRecorder(r metrics.Recorder) *Builder {
	if r != nil {
		b.recorder = r
	}
	return b
}

// WithLogger sets the logger handed to plugins.
func (b *Builder) WithLogger(l *slog.Logger) *Builder {
	if l != nil {
		b.logger = l
	}
	return b
}

// WithOptions sets the build options.
func (b *Builder) WithOptions(o Options) *Builder {
	b.opts = o
	return b
}

// Config implements plugin.Host.
func (b *Builder) Config() *config.Config { return b.cfg }

// Plugins implements plugin.Host.
func (b *Builder) Plugins() *plugin.Collection { return b.plugins }

// Logger implements plugin.Host.
func (b *Builder) Logger() *slog.Logger { return b.logger }

// Metrics implements plugin.Host.
func (b *Builder) Metrics() metrics.Recorder { return b.recorder }

func (b *Builder) stages() []StageDef {
	return []StageDef{
		{StagePrepareOutput, stagePrepareOutput},
		{StagePreBuild, stagePreBuild},
		{StageDiscover, stageDiscover},
		{StageFiles, stageFiles},
		{StageNav, stageNav},
		{StageCopyStatic, stageCopyStatic},
		{StagePopulate, stagePopulate},
		{StageRender, stageRender},
		{StagePostBuild, stagePostBuild},
	}
}

// Run executes one complete build.
func (b *Builder) Run(ctx context.Context) (*BuildResult, error) {
	start := time.Now()
	result := &BuildResult{
		BuildID:        uuid.NewString(),
		SiteDir:        b.cfg.SiteDir,
		StageDurations: make(map[StageName]time.Duration),
		StartTime:      start,
	}
	ctx = observability.WithBuildID(ctx, result.BuildID)
	observability.InfoContext(ctx, "Building site",
		logfields.Path(b.cfg.DocsDir), slog.String("site_dir", b.cfg.SiteDir))

	b.pagesWritten = 0
	bs := &BuildState{Builder: b, Result: result}
	err := runStages(ctx, bs, b.stages())

	result.PagesBuilt = b.pagesWritten
	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(start)
	b.recorder.ObserveBuildDuration(result.Duration)

	switch {
	case err == nil:
		result.Status = BuildStatusSuccess
		b.recorder.IncBuildOutcome(metrics.BuildOutcomeSuccess)
		observability.InfoContext(ctx, "Site built",
			logfields.Count(result.PagesBuilt), logfields.DurationMS(float64(result.Duration.Milliseconds())))
	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		result.Status = BuildStatusCancelled
		b.recorder.IncBuildOutcome(metrics.BuildOutcomeCanceled)
		observability.WarnContext(ctx, "Build cancelled")
	default:
		result.Status = BuildStatusFailed
		b.recorder.IncBuildOutcome(metrics.BuildOutcomeFailed)
	}
	return result, err
}

func stagePrepareOutput(_ context.Context, bs *BuildState) error {
	cfg := bs.Builder.cfg
	if bs.Builder.opts.Clean {
		if err := checkCleanable(cfg); err != nil {
			return err
		}
		if err := os.RemoveAll(cfg.SiteDir); err != nil {
			return derrors.WriteError(cfg.SiteDir, err)
		}
	}
	if err := os.MkdirAll(cfg.SiteDir, 0o755); err != nil { //nolint:gosec // published site tree
		return derrors.WriteError(cfg.SiteDir, err)
	}
	return nil
}

// checkCleanable refuses to remove a site directory that holds the docs.
func checkCleanable(cfg *config.Config) error {
	site, err := filepath.Abs(cfg.SiteDir)
	if err != nil {
		return derrors.WriteError(cfg.SiteDir, err)
	}
	docs, err := filepath.Abs(cfg.DocsDir)
	if err != nil {
		return derrors.WriteError(cfg.DocsDir, err)
	}
	rel, err := filepath.Rel(site, docs)
	if err == nil && (rel == "." || !strings.HasPrefix(rel, "..")) {
		return derrors.Wrap(ErrUnsafeClean, derrors.CategoryValidation, derrors.SeverityFatal, "site_dir contains docs_dir").
			WithContext("site_dir", cfg.SiteDir)
	}
	return nil
}

func stagePreBuild(_ context.Context, bs *BuildState) error {
	return bs.Builder.plugins.RunPreBuild(bs.Builder.cfg)
}

func stageDiscover(ctx context.Context, bs *BuildState) error {
	files, err := Discover(bs.Builder.cfg)
	if err != nil {
		return err
	}
	bs.Files = files
	bs.Result.FilesDiscovered = files.Len()
	bs.Builder.recorder.SetFilesDiscovered(files.Len())
	observability.InfoContext(ctx, "Files discovered",
		logfields.Count(files.Len()), slog.Int("pages", len(files.DocumentationPages())))
	return nil
}

func stageFiles(_ context.Context, bs *BuildState) error {
	files, err := bs.Builder.plugins.RunFiles(bs.Files, bs.Builder.cfg)
	if err != nil {
		return err
	}
	bs.Files = files
	return nil
}

func stageNav(_ context.Context, bs *BuildState) error {
	nav := structure.GetNavigation(bs.Files, bs.Builder.cfg)
	nav, err := bs.Builder.plugins.RunNav(nav, bs.Builder.cfg, bs.Files)
	if err != nil {
		return err
	}
	bs.Nav = nav
	return nil
}

func stageCopyStatic(ctx context.Context, bs *BuildState) error {
	for _, f := range bs.Files.StaticFiles() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := copyFile(f.AbsSrcPath, f.AbsDestPath); err != nil {
			return derrors.WriteError(f.AbsDestPath, err)
		}
	}
	return nil
}

func stagePopulate(ctx context.Context, bs *BuildState) error {
	for _, f := range bs.Files.DocumentationPages() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if f.Page == nil {
			structure.NewPage("", f)
		}
		if err := bs.Builder.PopulatePage(f.Page, bs.Files); err != nil {
			return err
		}
	}
	return nil
}

func stageRender(ctx context.Context, bs *BuildState) error {
	for _, f := range bs.Files.DocumentationPages() {
		if err := bs.Builder.BuildPage(ctx, f.Page, bs.Files, bs.Nav); err != nil {
			return err
		}
		bs.Builder.recorder.IncPagesBuilt("")
	}
	return nil
}

func stagePostBuild(ctx context.Context, bs *BuildState) error {
	return bs.Builder.plugins.RunPostBuild(ctx, bs.Builder)
}
