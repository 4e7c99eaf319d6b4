package structure

import (
	"path"
	"strings"
	"unicode"
)

// Heading is one entry of a page's table of contents.
type Heading struct {
	Level int
	ID    string
	Text  string
}

// Page is a documentation page: the File it is rendered from plus the
// state filled in while populating and rendering it.
type Page struct {
	File *File

	Title    string
	Meta     map[string]any
	Markdown string
	Content  string
	TOC      []Heading

	Parent   *Section
	Previous *Page
	Next     *Page

	IsHomepage bool
}

// NewPage binds a page to its file. An empty title is derived from the file name.
func NewPage(title string, file *File) *Page {
	p := &Page{File: file, Title: title, Meta: map[string]any{}}
	if p.Title == "" {
		p.Title = p.DefaultTitle()
	}
	file.Page = p
	return p
}

// URL returns the page's URL relative to the site root.
func (p *Page) URL() string {
	return p.File.URL
}

// IsIndex reports whether the page is its directory's index.
func (p *Page) IsIndex() bool {
	return p.File.IsIndex()
}

// Ancestors returns the sections containing the page, innermost first.
func (p *Page) Ancestors() []*Section {
	var out []*Section
	for s := p.Parent; s != nil; s = s.Parent {
		out = append(out, s)
	}
	return out
}

// DefaultTitle derives a title from the file name, used when neither
// frontmatter nor a top-level heading provides one.
func (p *Page) DefaultTitle() string {
	name := p.File.Name
	if p.File.IsIndex() {
		dir := path.Base(path.Dir(p.File.SrcPath))
		if dir == "." || dir == "/" {
			return "Home"
		}
		name = dir
	}
	return TitleFromName(name)
}

// TitleFromName turns a file or directory name into a display title.
func TitleFromName(name string) string {
	name = strings.NewReplacer("-", " ", "_", " ").Replace(name)
	r := []rune(strings.TrimSpace(name))
	if len(r) == 0 {
		return ""
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func (p *Page) navItem() {}
