package commands

import (
	"fmt"
	"io"
	"os"
	"sort"

	"git.home.luguber.info/inful/docbabel/internal/build"
	"git.home.luguber.info/inful/docbabel/internal/config"
	"git.home.luguber.info/inful/docbabel/internal/logfields"
	"git.home.luguber.info/inful/docbabel/internal/plugins/i18n"
	"git.home.luguber.info/inful/docbabel/internal/structure"
)

// DiscoverCmd implements the 'discover' command.
type DiscoverCmd struct{}

func (d *DiscoverCmd) Run(g *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	return RunDiscover(cfg, os.Stdout, g)
}

// RunDiscover lists the documentation pages of cfg grouped by the language
// they would be published under. Without the i18n plugin every page belongs
// to a single group.
func RunDiscover(cfg *config.Config, out io.Writer, g *Global) error {
	files, err := build.Discover(cfg)
	if err != nil {
		return err
	}

	var langs *i18n.Config
	if entry, ok := cfg.Plugins.Get(i18n.Name); ok {
		langs, err = i18n.ParseConfig(entry.Options)
		if err != nil {
			return err
		}
	}

	groups := map[string][]*structure.File{}
	for _, f := range files.DocumentationPages() {
		lang := ""
		if langs != nil {
			lang = langs.Resolve(f.URL)
		}
		groups[lang] = append(groups[lang], f)
	}
	g.logger().Info("Discovery completed", logfields.Count(len(files.All())))

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, lang := range keys {
		pages := groups[lang]
		switch {
		case lang == "":
			_, _ = fmt.Fprintf(out, "pages (%d)\n", len(pages))
		case lang == langs.DefaultLanguage:
			_, _ = fmt.Fprintf(out, "%s, default (%d)\n", lang, len(pages))
		default:
			_, _ = fmt.Fprintf(out, "%s (%d)\n", lang, len(pages))
		}
		for _, f := range pages {
			url := f.URL
			if lang != "" && lang != langs.DefaultLanguage {
				url = i18n.TranslatePage(f, lang, cfg.SiteDir).URL
			}
			_, _ = fmt.Fprintf(out, "  %s -> %s\n", f.SrcPath, url)
		}
	}
	_, _ = fmt.Fprintf(out, "static files (%d)\n", len(files.StaticFiles()))
	return nil
}
