package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docbabel/internal/config"
	"git.home.luguber.info/inful/docbabel/internal/structure"
)

func testSite(t *testing.T) (*config.Config, *structure.Navigation) {
	t.Helper()
	cfg, err := config.Parse([]byte("site_name: Manual\n"))
	require.NoError(t, err)
	files := structure.NewFiles(
		structure.NewFile("index.md", "d", "s", true),
		structure.NewFile("guide/index.md", "d", "s", true),
		structure.NewFile("guide/setup.md", "d", "s", true),
	)
	return cfg, structure.GetNavigation(files, cfg)
}

func TestNewContext_ThemeCopyIsPerPage(t *testing.T) {
	cfg, nav := testSite(t)
	c := NewContext(cfg, nav.Pages[2], nav)

	c.Config.Theme.Set("language", "fr")

	assert.Equal(t, "fr", c.Language())
	assert.Equal(t, "en", cfg.Theme.GetString("language"))
	assert.Equal(t, "../..", c.BaseURL)
}

func TestContext_NavLinks(t *testing.T) {
	cfg, nav := testSite(t)
	c := NewContext(cfg, nav.Pages[2], nav)

	links := c.NavLinks()
	require.Len(t, links, 2)
	assert.Equal(t, "../..", links[0].URL)
	assert.True(t, links[1].Section)
	assert.True(t, links[1].Active)
	require.Len(t, links[1].Children, 2)
	assert.Equal(t, "../", links[1].Children[0].URL)
	assert.Equal(t, "./", links[1].Children[1].URL)
	assert.True(t, links[1].Children[1].Active)
}

func TestContext_Title(t *testing.T) {
	cfg, nav := testSite(t)
	assert.Equal(t, "Manual", NewContext(cfg, nav.Homepage, nav).Title())
	assert.Equal(t, "Setup - Manual", NewContext(cfg, nav.Pages[2], nav).Title())
}

func TestRender_DefaultTheme(t *testing.T) {
	cfg, nav := testSite(t)
	env, err := Load(cfg.Theme)
	require.NoError(t, err)

	page := nav.Pages[2]
	page.Content = "<p>Install it.</p>"
	c := NewContext(cfg, page, nav)
	c.Config.Theme.Set("language", "de")

	out, err := env.Render(c)
	require.NoError(t, err)
	html := string(out)
	assert.Contains(t, html, `<html lang="de">`)
	assert.Contains(t, html, "<p>Install it.</p>")
	assert.Contains(t, html, `rel="prev" href="../"`)
	assert.Contains(t, html, "<title>Setup - Manual</title>")
}

type switcher struct {
	Links []link
}

type link struct {
	Code, Name, URL, Title string
	Current                bool
}

func TestRender_LanguageSwitcherFromExtra(t *testing.T) {
	cfg, nav := testSite(t)
	env, err := Load(cfg.Theme)
	require.NoError(t, err)

	c := NewContext(cfg, nav.Homepage, nav)
	c.Extra["i18n"] = switcher{Links: []link{
		{Code: "en", Name: "English", URL: ".", Current: true},
		{Code: "fr", Name: "Français", URL: "fr/", Title: "Not translated"},
	}}

	out, err := env.Render(c)
	require.NoError(t, err)
	assert.Contains(t, string(out), `hreflang="fr" title="Not translated"`)
	assert.Contains(t, string(out), `aria-current="true"`)
}

func TestLoad_CustomDirOverridesMain(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.html"), []byte(`custom {{ .Page.Title }}`), 0o600))

	env, err := Load(config.Theme{Name: "mine", CustomDir: dir})
	require.NoError(t, err)

	cfg, nav := testSite(t)
	out, err := env.Render(NewContext(cfg, nav.Pages[1], nav))
	require.NoError(t, err)
	assert.Equal(t, "custom Guide", string(out))
}

func TestLoad_UnknownThemeWithoutCustomDir(t *testing.T) {
	_, err := Load(config.Theme{Name: "material"})
	require.Error(t, err)
}
