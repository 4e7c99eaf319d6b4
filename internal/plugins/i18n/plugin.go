// Package i18n is the multi-language plugin. Pages named with a language
// suffix (guide.fr.md) are published under a per-language prefix (fr/guide/)
// with their own navigation, built in a second pass after the main site.
package i18n

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"git.home.luguber.info/inful/docbabel/internal/config"
	derrors "git.home.luguber.info/inful/docbabel/internal/errors"
	"git.home.luguber.info/inful/docbabel/internal/logfields"
	"git.home.luguber.info/inful/docbabel/internal/plugin"
	"git.home.luguber.info/inful/docbabel/internal/structure"
	"git.home.luguber.info/inful/docbabel/internal/theme"
)

// Name is the key the plugin is enabled with in the site configuration.
const Name = "i18n"

// Version is the plugin version reported in its metadata.
const Version = "v1.0.0"

func init() {
	plugin.MustRegister(func() plugin.Plugin { return New() })
}

// Translator implements the i18n plugin hooks.
type Translator struct {
	config  *Config
	session *Session
	logger  *slog.Logger
}

// New returns an unconfigured Translator; options are applied by Validate.
func New() *Translator {
	return &Translator{logger: slog.Default().With(logfields.Plugin(Name))}
}

// Metadata implements plugin.Plugin.
func (t *Translator) Metadata() plugin.PluginMetadata {
	return plugin.PluginMetadata{
		Name:         Name,
		Version:      Version,
		Type:         plugin.PluginTypeStructure,
		Description:  "Publishes translated pages under per-language URL prefixes",
		Capabilities: []plugin.PluginCapability{plugin.CapabilityI18n},
	}
}

// Validate implements plugin.Plugin.
func (t *Translator) Validate(options map[string]any) error {
	cfg, err := ParseConfig(options)
	if err != nil {
		return err
	}
	t.config = cfg
	return nil
}

// Config returns the decoded options, nil before Validate.
func (t *Translator) Config() *Config {
	return t.config
}

// Session returns the state of the current build, nil outside a build.
func (t *Translator) Session() *Session {
	return t.session
}

// OnPreBuild starts a fresh session for the build.
func (t *Translator) OnPreBuild(*config.Config) error {
	if t.config == nil {
		return derrors.ConfigRequired("plugins.i18n")
	}
	t.session = NewSession(t.config.AllLanguages())
	t.logger.Debug("Translation session started", logfields.BuildID(t.session.ID))
	return nil
}

// currentSession returns the build's session, starting one when a hook
// runs without a preceding OnPreBuild.
func (t *Translator) currentSession() (*Session, error) {
	if t.session == nil {
		if err := t.OnPreBuild(nil); err != nil {
			return nil, err
		}
	}
	return t.session, nil
}

// OnFiles splits the discovered files by language. Pages of the default
// language stay in the returned collection; every page also gets a
// translated copy in its language's collection.
func (t *Translator) OnFiles(files *structure.Files, cfg *config.Config) (*structure.Files, error) {
	s, err := t.currentSession()
	if err != nil {
		return nil, err
	}
	langs := t.config.AllLanguages()
	main := structure.NewFiles()

	for _, f := range files.StaticFiles() {
		main.Append(f)
		for _, lang := range langs {
			s.Collection(lang).Append(f)
		}
	}

	for _, f := range files.DocumentationPages() {
		lang := t.config.Resolve(f.URL)
		if lang == t.config.DefaultLanguage {
			main.Append(f)
		}
		s.Collection(lang).Append(TranslatePage(f, lang, cfg.SiteDir))
	}
	s.sortByDepth()

	for _, lang := range s.Languages() {
		t.logger.Debug("Language files collected",
			logfields.Language(lang), logfields.Count(len(s.Files[lang].DocumentationPages())))
	}
	return main, nil
}

// OnNav builds one navigation per language, once per build. The nav of the
// main site is returned unchanged.
func (t *Translator) OnNav(nav *structure.Navigation, cfg *config.Config, _ *structure.Files) (*structure.Navigation, error) {
	s, err := t.currentSession()
	if err != nil {
		return nil, err
	}
	if s.State >= SessionNavBuilt {
		return nav, nil
	}
	for _, lang := range s.Languages() {
		files := s.Files[lang]
		if files.Len() == 0 {
			continue
		}
		t.logger.Debug("Building navigation", logfields.Language(lang))
		langNav := structure.GetNavigation(files, cfg)
		var home *structure.Page
		if f, ok := s.FindPage(lang, RootURL(lang, cfg.UseDirectoryURLs)); ok {
			home = f.Page
		}
		langNav.SetHomepage(home)
		s.Navs[lang] = langNav
	}
	s.State = SessionNavBuilt
	return nav, nil
}

// OnPageContext sets the theme language of translated pages and exposes
// the language switcher to templates as Extra["i18n"].
func (t *Translator) OnPageContext(tctx *theme.Context, page *structure.Page, cfg *config.Config, _ *structure.Navigation) (*theme.Context, error) {
	if t.config == nil {
		return tctx, nil
	}
	lang, prefixed := t.pageLanguage(page.URL())
	if prefixed && tctx.Config.Theme.HasSetting("language") {
		tctx.Config.Theme.Set("language", lang)
	}
	if t.session != nil {
		tctx.Extra[Name] = t.switcher(page.URL(), lang, prefixed, cfg.UseDirectoryURLs)
	}
	return tctx, nil
}

// pageLanguage returns the configured language whose prefix the URL starts
// with, or the default language.
func (t *Translator) pageLanguage(url string) (string, bool) {
	for _, lang := range t.config.LanguageTags() {
		if strings.HasPrefix(url, lang+"/") {
			return lang, true
		}
	}
	return t.config.DefaultLanguage, false
}

// OnPostBuild renders every configured language with its own files and
// navigation through the host's page routines.
func (t *Translator) OnPostBuild(ctx context.Context, host plugin.Host) error {
	s, err := t.currentSession()
	if err != nil {
		return err
	}
	defer func() { t.session = nil }()

	cfg := host.Config()
	t.logger.Info("Building translations", logfields.BuildID(s.ID))
	for _, lang := range t.config.LanguageTags() {
		start := time.Now()
		if err := t.buildLanguage(ctx, host, cfg, s, lang); err != nil {
			return err
		}
		t.logger.Info("Language built", logfields.Language(lang),
			logfields.Count(len(s.Collection(lang).DocumentationPages())),
			logfields.DurationMS(float64(time.Since(start).Milliseconds())))
	}
	s.State = SessionDone
	return nil
}

func (t *Translator) buildLanguage(ctx context.Context, host plugin.Host, cfg *config.Config, s *Session, lang string) error {
	files := s.Collection(lang)
	nav := s.Navs[lang]
	if nav == nil {
		nav = structure.GetNavigation(files, cfg)
		s.Navs[lang] = nav
	}
	nav, err := host.Plugins().RunNav(nav, cfg, files)
	if err != nil {
		return err
	}

	pages := files.DocumentationPages()
	// All pages are populated before any is rendered so that navigation
	// titles are final.
	for _, f := range pages {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := host.PopulatePage(f.Page, files); err != nil {
			return derrors.BuildFailed("populate", err).WithContext("language", lang).WithContext("page", f.SrcPath)
		}
	}
	for _, f := range pages {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := host.BuildPage(ctx, f.Page, files, nav); err != nil {
			return derrors.BuildFailed("render", err).WithContext("language", lang).WithContext("page", f.SrcPath)
		}
		host.Metrics().IncPagesBuilt(lang)
	}
	return nil
}
