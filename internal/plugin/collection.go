package plugin

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/docbabel/internal/config"
	derrors "git.home.luguber.info/inful/docbabel/internal/errors"
	"git.home.luguber.info/inful/docbabel/internal/logfields"
	"git.home.luguber.info/inful/docbabel/internal/structure"
	"git.home.luguber.info/inful/docbabel/internal/theme"
)

// Collection is the ordered set of plugins enabled for a site. It runs
// each pipeline event through every plugin that handles it.
type Collection struct {
	plugins []Plugin
	logger  *slog.Logger
}

// NewCollection wraps already configured plugins.
func NewCollection(logger *slog.Logger, plugins ...Plugin) *Collection {
	if logger == nil {
		logger = slog.Default()
	}
	return &Collection{plugins: plugins, logger: logger}
}

// LoadCollection instantiates the plugins listed in cfg from reg and
// validates each one's options.
func LoadCollection(reg *Registry, cfg *config.Config, logger *slog.Logger) (*Collection, error) {
	c := NewCollection(logger)
	for _, entry := range cfg.Plugins {
		p, err := reg.New(entry.Name)
		if err != nil {
			return nil, derrors.ValidationFailed("plugins", err.Error())
		}
		if err := p.Validate(entry.Options); err != nil {
			return nil, derrors.Wrap(err, derrors.CategoryConfig, derrors.SeverityFatal, "invalid plugin options").
				WithContext("plugin", entry.Name)
		}
		c.logger.Debug("Plugin loaded", logfields.Plugin(entry.Name), slog.String("version", p.Metadata().Version))
		c.plugins = append(c.plugins, p)
	}
	return c, nil
}

// All returns the plugins in run order.
func (c *Collection) All() []Plugin {
	return c.plugins
}

// Len returns the number of plugins.
func (c *Collection) Len() int {
	return len(c.plugins)
}

// Get returns the plugin with the given name.
func (c *Collection) Get(name string) (Plugin, bool) {
	for _, p := range c.plugins {
		if p.Metadata().Name == name {
			return p, true
		}
	}
	return nil, false
}

func (c *Collection) wrap(p Plugin, event Event, err error) error {
	name := p.Metadata().Name
	c.logger.Error("Plugin event failed", logfields.Plugin(name), logfields.Event(string(event)), logfields.Error(err))
	return NewPluginError(name, event, err)
}

// RunPreBuild runs the pre_build event.
func (c *Collection) RunPreBuild(cfg *config.Config) error {
	for _, p := range c.plugins {
		if h, ok := p.(PreBuildHook); ok {
			if err := h.OnPreBuild(cfg); err != nil {
				return c.wrap(p, EventPreBuild, err)
			}
		}
	}
	return nil
}

// RunFiles runs the files event. A hook returning nil keeps the current files.
func (c *Collection) RunFiles(files *structure.Files, cfg *config.Config) (*structure.Files, error) {
	for _, p := range c.plugins {
		h, ok := p.(FilesHook)
		if !ok {
			continue
		}
		out, err := h.OnFiles(files, cfg)
		if err != nil {
			return nil, c.wrap(p, EventFiles, err)
		}
		if out != nil {
			files = out
		}
	}
	return files, nil
}

// RunNav runs the nav event. A hook returning nil keeps the current navigation.
func (c *Collection) RunNav(nav *structure.Navigation, cfg *config.Config, files *structure.Files) (*structure.Navigation, error) {
	for _, p := range c.plugins {
		h, ok := p.(NavHook)
		if !ok {
			continue
		}
		out, err := h.OnNav(nav, cfg, files)
		if err != nil {
			return nil, c.wrap(p, EventNav, err)
		}
		if out != nil {
			nav = out
		}
	}
	return nav, nil
}

// RunPageContext runs the page_context event. A hook returning nil keeps the current context.
func (c *Collection) RunPageContext(tctx *theme.Context, page *structure.Page, cfg *config.Config, nav *structure.Navigation) (*theme.Context, error) {
	for _, p := range c.plugins {
		h, ok := p.(PageContextHook)
		if !ok {
			continue
		}
		out, err := h.OnPageContext(tctx, page, cfg, nav)
		if err != nil {
			return nil, c.wrap(p, EventPageContext, err)
		}
		if out != nil {
			tctx = out
		}
	}
	return tctx, nil
}

// RunPostBuild runs the post_build event.
func (c *Collection) RunPostBuild(ctx context.Context, host Host) error {
	for _, p := range c.plugins {
		if h, ok := p.(PostBuildHook); ok {
			if err := h.OnPostBuild(ctx, host); err != nil {
				return c.wrap(p, EventPostBuild, err)
			}
		}
	}
	return nil
}
