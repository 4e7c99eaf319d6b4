package theme

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/docbabel/internal/config"
)

//go:embed templates/*.html
var builtin embed.FS

// MainTemplate is the template every page is rendered with.
const MainTemplate = "main.html"

// Environment holds the parsed templates of the configured theme.
type Environment struct {
	tmpl *template.Template
}

// Load parses the theme templates: the embedded default theme, overlaid with
// any templates of the same name found in the theme's custom_dir.
func Load(t config.Theme) (*Environment, error) {
	if t.Name != config.DefaultThemeName && t.CustomDir == "" {
		return nil, fmt.Errorf("unknown theme %q: set theme.custom_dir for themes other than %q", t.Name, config.DefaultThemeName)
	}

	root := template.New(MainTemplate).Funcs(funcs)
	if t.Name == config.DefaultThemeName {
		if _, err := root.ParseFS(builtin, "templates/*.html"); err != nil {
			return nil, fmt.Errorf("parse default theme: %w", err)
		}
	}
	if t.CustomDir != "" {
		if err := parseDir(root, t.CustomDir); err != nil {
			return nil, err
		}
	}
	if root.Lookup(MainTemplate) == nil {
		return nil, fmt.Errorf("theme %q has no %s", t.Name, MainTemplate)
	}
	return &Environment{tmpl: root}, nil
}

func parseDir(root *template.Template, dir string) error {
	matches, err := fs.Glob(os.DirFS(dir), "*.html")
	if err != nil {
		return fmt.Errorf("list templates in %s: %w", dir, err)
	}
	for _, name := range matches {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return fmt.Errorf("read template: %w", err)
		}
		if _, err := root.New(name).Parse(string(data)); err != nil {
			return fmt.Errorf("parse template %s: %w", name, err)
		}
	}
	return nil
}

// Render executes the main template for a page.
func (e *Environment) Render(c *Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := e.tmpl.ExecuteTemplate(&buf, MainTemplate, c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var funcs = template.FuncMap{
	"safe": func(s string) template.HTML {
		return template.HTML(s) //nolint:gosec // only used for trusted site configuration
	},
}
