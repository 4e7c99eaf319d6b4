// Package theme renders pages through html/template using the embedded
// default theme or a custom template directory.
package theme

import (
	"html/template"

	"git.home.luguber.info/inful/docbabel/internal/config"
	"git.home.luguber.info/inful/docbabel/internal/structure"
)

// Context is the data a page template is executed with.
type Context struct {
	// Config is a per-page copy of the site configuration; its Theme may be
	// changed without affecting other pages.
	Config  *config.Config
	Nav     *structure.Navigation
	Page    *structure.Page
	BaseURL string
	// Extra carries plugin-provided values, keyed by plugin.
	Extra map[string]any
}

// NewContext builds the render context for page.
func NewContext(cfg *config.Config, page *structure.Page, nav *structure.Navigation) *Context {
	pageCfg := *cfg
	pageCfg.Theme = cfg.Theme.Clone()
	return &Context{
		Config:  &pageCfg,
		Nav:     nav,
		Page:    page,
		BaseURL: structure.RelativeURL(".", page.URL()),
		Extra:   map[string]any{},
	}
}

// URL returns target (a site-root relative URL) relative to the current page.
func (c *Context) URL(target string) string {
	return structure.RelativeURL(target, c.Page.URL())
}

// Language returns the theme's language setting.
func (c *Context) Language() string {
	return c.Config.Theme.GetString("language")
}

// Content returns the rendered page body for direct inclusion.
func (c *Context) Content() template.HTML {
	return template.HTML(c.Page.Content) //nolint:gosec // rendered from trusted docs sources
}

// Title returns the HTML title: page title and site name.
func (c *Context) Title() string {
	if c.Page.IsHomepage || c.Page.Title == "" {
		return c.Config.SiteName
	}
	return c.Page.Title + " - " + c.Config.SiteName
}

// NavLink is a navigation entry prepared for templates.
type NavLink struct {
	Title    string
	URL      string
	Active   bool
	Section  bool
	Children []NavLink
}

// NavLinks returns the navigation tree with URLs relative to the current page.
func (c *Context) NavLinks() []NavLink {
	if c.Nav == nil {
		return nil
	}
	return c.navLinks(c.Nav.Items)
}

func (c *Context) navLinks(items []structure.NavItem) []NavLink {
	out := make([]NavLink, 0, len(items))
	for _, it := range items {
		switch v := it.(type) {
		case *structure.Page:
			out = append(out, NavLink{Title: v.Title, URL: c.URL(v.URL()), Active: v == c.Page})
		case *structure.Section:
			children := c.navLinks(v.Children)
			active := false
			for _, ch := range children {
				active = active || ch.Active
			}
			out = append(out, NavLink{Title: v.Title, Section: true, Active: active, Children: children})
		}
	}
	return out
}
