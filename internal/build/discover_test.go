package build

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docbabel/internal/config"
	derrors "git.home.luguber.info/inful/docbabel/internal/errors"
)

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	docs := filepath.Join(dir, "docs")
	writeTree(t, docs, map[string]string{
		"z.md":            "",
		"index.md":        "",
		"sub/b.md":        "",
		"sub/README.md":   "",
		"sub/a.png":       "",
		".obsidian/x.md":  "",
		"sub/.DS_Store":   "",
		"site/index.html": "",
	})
	cfg := config.Default()
	cfg.DocsDir = docs
	cfg.SiteDir = filepath.Join(docs, "site")

	files, err := Discover(cfg)
	require.NoError(t, err)

	var got []string
	for _, f := range files.All() {
		got = append(got, f.SrcPath)
	}
	assert.Equal(t, []string{"index.md", "z.md", "sub/README.md", "sub/a.png", "sub/b.md"}, got)

	readme, ok := files.Get("sub/README.md")
	require.True(t, ok)
	assert.Equal(t, "sub/", readme.URL)
	assert.Equal(t, filepath.Join(cfg.SiteDir, "sub", "index.html"), readme.AbsDestPath)
}

func TestDiscover_MissingDocsDir(t *testing.T) {
	cfg := config.Default()
	cfg.DocsDir = filepath.Join(t.TempDir(), "nope")

	_, err := Discover(cfg)
	require.Error(t, err)
	assert.True(t, derrors.IsCategory(err, derrors.CategoryFileSystem))
}
