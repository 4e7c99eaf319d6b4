package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docbabel/internal/structure"
)

func TestRender_TitleAndTOC(t *testing.T) {
	res, err := Render([]byte("# Getting *started*\n\nIntro\n\n## Install `tool`\n"), Options{})
	require.NoError(t, err)

	assert.Equal(t, "Getting started", res.Title)
	require.Len(t, res.TOC, 2)
	assert.Equal(t, 2, res.TOC[1].Level)
	assert.Equal(t, "Install tool", res.TOC[1].Text)
	assert.NotEmpty(t, res.TOC[1].ID)
	assert.Contains(t, res.HTML, "<h1 id=")
	assert.Contains(t, res.HTML, "<em>started</em>")
}

func TestRender_GFMTable(t *testing.T) {
	res, err := Render([]byte("| a | b |\n|---|---|\n| 1 | 2 |\n"), Options{})
	require.NoError(t, err)
	assert.Contains(t, res.HTML, "<table>")
	assert.Empty(t, res.Title)
}

func TestRender_RewritesPageLinks(t *testing.T) {
	guide := structure.NewFile("guide/index.md", "d", "s", true)
	setup := structure.NewFile("guide/setup.md", "d", "s", true)
	files := structure.NewFiles(structure.NewFile("index.md", "d", "s", true), guide, setup)

	body := "[setup](setup.md#install) [home](../index.md) [ext](https://example.com/a.md) [missing](nope.md)\n"
	res, err := Render([]byte(body), Options{ResolveLink: PageLinkResolver(guide, files)})
	require.NoError(t, err)

	assert.Contains(t, res.HTML, `href="setup/#install"`)
	assert.Contains(t, res.HTML, `href=".."`)
	assert.Contains(t, res.HTML, `href="https://example.com/a.md"`)
	assert.Contains(t, res.HTML, `href="nope.md"`)
}
