package build

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"git.home.luguber.info/inful/docbabel/internal/config"
	derrors "git.home.luguber.info/inful/docbabel/internal/errors"
	"git.home.luguber.info/inful/docbabel/internal/metrics"
	"git.home.luguber.info/inful/docbabel/internal/plugin"
	_ "git.home.luguber.info/inful/docbabel/internal/plugins/i18n"
	"git.home.luguber.info/inful/docbabel/internal/structure"
)

const i18nSite = `
site_name: Manual
plugins:
  - i18n:
      default_language: en
      languages:
        fr:
          name: Français
`

var i18nDocs = map[string]string{
	"index.md":      "# Welcome\n\nRead the [guide](guide.md).\n",
	"index.fr.md":   "# Bienvenue\n\nLire le [guide](guide.fr.md).\n",
	"guide.md":      "---\ntitle: User Guide\n---\n# Guide\n\nBack [home](index.md#top).\n",
	"guide.fr.md":   "# Guide utilisateur\n\nRetour à l'[accueil](index.fr.md).\n",
	"about.md":      "# About\n",
	"css/extra.css": "body { color: red; }\n",
	".hidden.md":    "# Hidden\n",
}

type countingRecorder struct {
	metrics.NoopRecorder
	pages    map[string]int
	outcomes []metrics.BuildOutcomeLabel
	stages   map[string]metrics.ResultLabel
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{pages: map[string]int{}, stages: map[string]metrics.ResultLabel{}}
}

func (r *countingRecorder) IncPagesBuilt(lang string) { r.pages[lang]++ }
func (r *countingRecorder) IncBuildOutcome(o metrics.BuildOutcomeLabel) {
	r.outcomes = append(r.outcomes, o)
}
func (r *countingRecorder) IncStageResult(stage string, res metrics.ResultLabel) {
	r.stages[stage] = res
}

func newBuilder(t *testing.T, cfg *config.Config) *Builder {
	t.Helper()
	plugins, err := plugin.LoadCollection(plugin.DefaultRegistry(), cfg, nil)
	require.NoError(t, err)
	b, err := NewBuilder(cfg, plugins)
	require.NoError(t, err)
	return b
}

func TestRun_MultiLanguageSite(t *testing.T) {
	cfg := loadSite(t, i18nSite, i18nDocs)
	rec := newCountingRecorder()
	b := newBuilder(t, cfg).WithRecorder(rec)

	res, err := b.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, BuildStatusSuccess, res.Status)
	assert.Equal(t, 6, res.FilesDiscovered)
	assert.Equal(t, 5, res.PagesBuilt)
	assert.Equal(t, map[string]int{"": 3, "fr": 2}, rec.pages)
	assert.Equal(t, []metrics.BuildOutcomeLabel{metrics.BuildOutcomeSuccess}, rec.outcomes)
	assert.Contains(t, res.StageDurations, StagePostBuild)

	for _, rel := range []string{
		"index.html", "guide/index.html", "about/index.html", "css/extra.css",
		"fr/index.html", "fr/guide/index.html",
	} {
		assert.True(t, exists(cfg, rel), rel)
	}
	for _, rel := range []string{
		"guide.fr/index.html", "index.fr/index.html", "fr/about/index.html", "en", ".hidden/index.html",
	} {
		assert.False(t, exists(cfg, rel), rel)
	}
}

func TestRun_TranslatedPageContent(t *testing.T) {
	cfg := loadSite(t, i18nSite, i18nDocs)
	_, err := newBuilder(t, cfg).Run(context.Background())
	require.NoError(t, err)

	doc := readPage(t, cfg, "fr/guide/index.html")
	assert.Equal(t, "fr", attr(findFirst(t, doc, "html"), "lang"))
	assert.Equal(t, "Guide utilisateur - Manual", text(findFirst(t, doc, "title")))

	article := findFirst(t, doc, "article")
	links := findAll(article, func(n *html.Node) bool { return n.Data == "a" })
	require.Len(t, links, 1)
	assert.Equal(t, "../", attr(links[0], "href"))

	switcher := findAll(doc, func(n *html.Node) bool { return n.Data == "a" && attr(n, "hreflang") != "" })
	require.Len(t, switcher, 2)
	assert.Equal(t, "en", attr(switcher[0], "hreflang"))
	assert.Equal(t, "../../guide/", attr(switcher[0], "href"))
	assert.Equal(t, "fr", attr(switcher[1], "hreflang"))
	assert.Equal(t, "true", attr(switcher[1], "aria-current"))
	assert.Equal(t, "Français", text(switcher[1]))
}

func TestRun_DefaultPageContent(t *testing.T) {
	cfg := loadSite(t, i18nSite, i18nDocs)
	_, err := newBuilder(t, cfg).Run(context.Background())
	require.NoError(t, err)

	doc := readPage(t, cfg, "guide/index.html")
	assert.Equal(t, "en", attr(findFirst(t, doc, "html"), "lang"))
	assert.Equal(t, "User Guide - Manual", text(findFirst(t, doc, "title")))

	links := findAll(findFirst(t, doc, "article"), func(n *html.Node) bool { return n.Data == "a" })
	require.Len(t, links, 1)
	assert.Equal(t, "..#top", attr(links[0], "href"))

	about := readPage(t, cfg, "about/index.html")
	fr := findAll(about, func(n *html.Node) bool { return n.Data == "a" && attr(n, "hreflang") == "fr" })
	require.Len(t, fr, 1)
	assert.Equal(t, "../fr/", attr(fr[0], "href"))
	assert.Equal(t, "This page is not translated yet", attr(fr[0], "title"))
}

func TestRun_WithoutPlugins(t *testing.T) {
	cfg := loadSite(t, "site_name: Plain\n", map[string]string{
		"index.md":         "# Home\n",
		"guide.fr.md":      "# Not special\n",
		"sub/index.md":     "# Sub\n",
		"img/logo.svg":     "<svg/>",
		".git/config":      "[core]\n",
		"sub/.draft.md":    "# Draft\n",
		"sub/details.md":   "Details\n",
		"sub/more/deep.md": "# Deep\n",
	})
	b, err := NewBuilder(cfg, nil)
	require.NoError(t, err)

	res, err := b.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 6, res.FilesDiscovered)
	assert.Equal(t, 5, res.PagesBuilt)
	assert.True(t, exists(cfg, "guide.fr/index.html"))
	assert.True(t, exists(cfg, "sub/more/deep/index.html"))
	assert.True(t, exists(cfg, "img/logo.svg"))
	assert.False(t, exists(cfg, ".git"))

	doc := readPage(t, cfg, "sub/details/index.html")
	assert.Equal(t, "Details - Plain", text(findFirst(t, doc, "title")))
}

func TestRun_Clean(t *testing.T) {
	cfg := loadSite(t, "site_name: Plain\n", map[string]string{"index.md": "# Home\n"})
	writeTree(t, cfg.SiteDir, map[string]string{"stale/index.html": "old"})

	b, err := NewBuilder(cfg, nil)
	require.NoError(t, err)

	_, err = b.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, exists(cfg, "stale/index.html"), "kept without clean")

	_, err = b.WithOptions(Options{Clean: true}).Run(context.Background())
	require.NoError(t, err)
	assert.False(t, exists(cfg, "stale/index.html"))
	assert.True(t, exists(cfg, "index.html"))
}

func TestRun_CleanRefusesSiteContainingDocs(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.SiteDir = dir
	cfg.DocsDir = filepath.Join(dir, "docs")
	writeTree(t, cfg.DocsDir, map[string]string{"index.md": "# Home\n"})

	b, err := NewBuilder(cfg, nil)
	require.NoError(t, err)
	res, err := b.WithOptions(Options{Clean: true}).Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsafeClean)
	assert.Equal(t, BuildStatusFailed, res.Status)
	assert.FileExists(t, filepath.Join(cfg.DocsDir, "index.md"))
}

func TestRun_Cancelled(t *testing.T) {
	cfg := loadSite(t, i18nSite, i18nDocs)
	rec := newCountingRecorder()
	b := newBuilder(t, cfg).WithRecorder(rec)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := b.Run(ctx)

	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, BuildStatusCancelled, res.Status)
	assert.Equal(t, []metrics.BuildOutcomeLabel{metrics.BuildOutcomeCanceled}, rec.outcomes)
	assert.Equal(t, metrics.ResultCanceled, rec.stages[string(StagePrepareOutput)])
	var se *StageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, StageErrorCanceled, se.Kind)
}

type failingPlugin struct {
	plugin.BasePlugin
}

func (failingPlugin) Metadata() plugin.PluginMetadata {
	return plugin.PluginMetadata{Name: "broken", Version: "v0.0.1", Type: plugin.PluginTypeContent}
}

func (failingPlugin) OnFiles(*structure.Files, *config.Config) (*structure.Files, error) {
	return nil, errors.New("boom")
}

func TestRun_PluginFailure(t *testing.T) {
	cfg := loadSite(t, "site_name: Plain\n", map[string]string{"index.md": "# Home\n"})
	b, err := NewBuilder(cfg, plugin.NewCollection(nil, &failingPlugin{}))
	require.NoError(t, err)

	res, err := b.Run(context.Background())
	require.Error(t, err)
	assert.Equal(t, BuildStatusFailed, res.Status)
	assert.True(t, derrors.IsCategory(err, derrors.CategoryPlugin))

	var se *StageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, StageFiles, se.Stage)
	assert.Equal(t, StageErrorFatal, se.Kind)
	assert.Contains(t, err.Error(), "boom")
}

func TestRun_RepeatedBuildsStartFresh(t *testing.T) {
	cfg := loadSite(t, i18nSite, i18nDocs)
	b := newBuilder(t, cfg)

	first, err := b.Run(context.Background())
	require.NoError(t, err)
	second, err := b.Run(context.Background())
	require.NoError(t, err)

	assert.NotEqual(t, first.BuildID, second.BuildID)
	assert.Equal(t, first.PagesBuilt, second.PagesBuilt)
}

func TestNewBuilder_UnknownTheme(t *testing.T) {
	cfg := config.Default()
	cfg.Theme = config.Theme{Name: "material"}
	_, err := NewBuilder(cfg, nil)
	require.Error(t, err)
	assert.True(t, derrors.IsCategory(err, derrors.CategoryConfig))
}

func TestPopulatePage_TitlePrecedence(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"meta.md":    "---\ntitle: From Meta\n---\n# From Heading\n",
		"heading.md": "# From Heading\n\n## Second\n",
		"plain.md":   "No heading here.\n",
		"nav.md":     "# From Heading\n",
		"broken.md":  "---\ntitle: [unclosed\n---\n",
	})
	cfg := config.Default()
	cfg.DocsDir = dir
	b, err := NewBuilder(cfg, nil)
	require.NoError(t, err)

	newPage := func(src, title string) *structure.Page {
		return structure.NewPage(title, structure.NewFile(src, dir, "/site", true))
	}
	files := structure.NewFiles()

	p := newPage("meta.md", "")
	require.NoError(t, b.PopulatePage(p, files))
	assert.Equal(t, "From Meta", p.Title)
	assert.Equal(t, "From Meta", p.Meta["title"])

	p = newPage("heading.md", "")
	require.NoError(t, b.PopulatePage(p, files))
	assert.Equal(t, "From Heading", p.Title)
	require.Len(t, p.TOC, 2)
	assert.Equal(t, "second", p.TOC[1].ID)

	p = newPage("plain.md", "")
	require.NoError(t, b.PopulatePage(p, files))
	assert.Equal(t, "Plain", p.Title)
	assert.Contains(t, p.Content, "<p>No heading here.</p>")

	p = newPage("nav.md", "Chosen In Nav")
	require.NoError(t, b.PopulatePage(p, files))
	assert.Equal(t, "Chosen In Nav", p.Title)

	err = b.PopulatePage(newPage("broken.md", ""), files)
	require.Error(t, err)
	assert.True(t, derrors.IsCategory(err, derrors.CategoryRender))

	err = b.PopulatePage(newPage("missing.md", ""), files)
	require.Error(t, err)
	assert.True(t, derrors.IsCategory(err, derrors.CategoryFileSystem))
}

func TestBuildPage_WriteError(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "site")
	require.NoError(t, os.WriteFile(blocker, []byte("file, not dir"), 0o600))

	cfg := config.Default()
	b, err := NewBuilder(cfg, nil)
	require.NoError(t, err)

	f := structure.NewFile("guide.md", dir, blocker, true)
	files := structure.NewFiles(f)
	nav := structure.GetNavigation(files, cfg)

	err = b.BuildPage(context.Background(), f.Page, files, nav)
	require.Error(t, err)
	assert.True(t, derrors.IsCategory(err, derrors.CategoryFileSystem))
}
