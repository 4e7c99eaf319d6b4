package structure

import (
	"log/slog"
	"path"
	"strings"

	"git.home.luguber.info/inful/docbabel/internal/config"
	"git.home.luguber.info/inful/docbabel/internal/logfields"
)

// NavItem is a node of the navigation tree: a *Page or a *Section.
type NavItem interface {
	navItem()
}

// Section groups pages and nested sections under a title.
type Section struct {
	Title    string
	Children []NavItem
	Parent   *Section
}

func (s *Section) navItem() {}

// Pages returns the pages directly inside the section.
func (s *Section) Pages() []*Page {
	var out []*Page
	for _, c := range s.Children {
		if p, ok := c.(*Page); ok {
			out = append(out, p)
		}
	}
	return out
}

// Navigation is the site's menu tree.
type Navigation struct {
	Items []NavItem
	// Pages lists every page of the tree in reading order.
	Pages    []*Page
	Homepage *Page
}

// GetNavigation builds the navigation tree over the documentation pages of
// files, binding a Page to each file. The explicit nav of cfg is followed
// when present; otherwise pages are nested by source directory in file order.
func GetNavigation(files *Files, cfg *config.Config) *Navigation {
	nav := &Navigation{}
	if len(cfg.Nav) > 0 {
		nav.Items = itemsFromConfig(cfg.Nav, files, nil)
	} else {
		nav.Items = itemsFromPaths(files)
	}

	nav.Pages = flattenPages(nav.Items, nil)
	for i, p := range nav.Pages {
		if i > 0 {
			p.Previous = nav.Pages[i-1]
		}
		if i+1 < len(nav.Pages) {
			p.Next = nav.Pages[i+1]
		}
	}

	// Pages left out of an explicit nav are still rendered.
	for _, f := range files.DocumentationPages() {
		if f.Page == nil || !containsPage(nav.Pages, f.Page) {
			NewPage("", f)
		}
	}

	for _, p := range nav.Pages {
		if p.Parent == nil && p.IsIndex() && isRootURL(p.URL()) {
			p.IsHomepage = true
			nav.Homepage = p
			break
		}
	}
	return nav
}

// SetHomepage designates p as the navigation's homepage. A nil page clears it.
func (n *Navigation) SetHomepage(p *Page) {
	if n.Homepage != nil {
		n.Homepage.IsHomepage = false
	}
	n.Homepage = p
	if p != nil {
		p.IsHomepage = true
	}
}

func isRootURL(u string) bool {
	return u == "." || u == "./" || u == "index.html"
}

func containsPage(pages []*Page, p *Page) bool {
	for _, q := range pages {
		if q == p {
			return true
		}
	}
	return false
}

func itemsFromConfig(entries []config.NavEntry, files *Files, parent *Section) []NavItem {
	items := make([]NavItem, 0, len(entries))
	for _, e := range entries {
		if e.IsSection() {
			s := &Section{Title: e.Title, Parent: parent}
			s.Children = itemsFromConfig(e.Children, files, s)
			items = append(items, s)
			continue
		}
		f, ok := files.Get(e.Path)
		if !ok || !f.IsDocumentationPage() {
			slog.Debug("Nav entry does not match a documentation page", logfields.Path(e.Path))
			continue
		}
		p := NewPage(e.Title, f)
		p.Parent = parent
		items = append(items, p)
	}
	return items
}

func itemsFromPaths(files *Files) []NavItem {
	root := &Section{}
	sections := map[string]*Section{".": root}

	var sectionFor func(dir string) *Section
	sectionFor = func(dir string) *Section {
		if s, ok := sections[dir]; ok {
			return s
		}
		parent := sectionFor(path.Dir(dir))
		s := &Section{Title: TitleFromName(path.Base(dir)), Parent: parent}
		if parent == root {
			s.Parent = nil
		}
		parent.Children = append(parent.Children, s)
		sections[dir] = s
		return s
	}

	for _, f := range files.DocumentationPages() {
		s := sectionFor(path.Dir(f.SrcPath))
		p := NewPage("", f)
		if s != root {
			p.Parent = s
		}
		s.Children = append(s.Children, p)
	}
	return root.Children
}

func flattenPages(items []NavItem, out []*Page) []*Page {
	for _, it := range items {
		switch v := it.(type) {
		case *Page:
			out = append(out, v)
		case *Section:
			out = flattenPages(v.Children, out)
		}
	}
	return out
}

// Walk visits every item of the tree depth-first. Returning false from fn
// skips a section's children.
func (n *Navigation) Walk(fn func(item NavItem, depth int) bool) {
	var walk func(items []NavItem, depth int)
	walk = func(items []NavItem, depth int) {
		for _, it := range items {
			if !fn(it, depth) {
				continue
			}
			if s, ok := it.(*Section); ok {
				walk(s.Children, depth+1)
			}
		}
	}
	walk(n.Items, 0)
}

// String renders the tree as an indented outline, mainly for debugging.
func (n *Navigation) String() string {
	var b strings.Builder
	n.Walk(func(item NavItem, depth int) bool {
		b.WriteString(strings.Repeat("    ", depth))
		switch v := item.(type) {
		case *Page:
			b.WriteString("Page(" + v.Title + ", " + v.URL() + ")\n")
		case *Section:
			b.WriteString("Section(" + v.Title + ")\n")
		}
		return true
	})
	return b.String()
}
