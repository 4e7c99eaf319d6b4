package build

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"git.home.luguber.info/inful/docbabel/internal/config"
)

// writeTree creates files (slash paths relative to root) with the given contents.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	}
}

// loadSite writes docbabel.yml plus a docs tree into a temp dir and loads the config.
func loadSite(t *testing.T, yml string, docs map[string]string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	writeTree(t, filepath.Join(dir, "docs"), docs)
	cfgPath := filepath.Join(dir, config.DefaultConfigFile)
	require.NoError(t, os.WriteFile(cfgPath, []byte(yml), 0o600))
	cfg, err := config.Load(cfgPath)
	require.NoError(t, err)
	return cfg
}

func readPage(t *testing.T, cfg *config.Config, rel string) *html.Node {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(cfg.SiteDir, filepath.FromSlash(rel)))
	require.NoError(t, err)
	doc, err := html.Parse(strings.NewReader(string(data)))
	require.NoError(t, err)
	return doc
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func findAll(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && match(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func findFirst(t *testing.T, n *html.Node, tag string) *html.Node {
	t.Helper()
	nodes := findAll(n, func(n *html.Node) bool { return n.Data == tag })
	require.NotEmpty(t, nodes, "no <%s> element", tag)
	return nodes[0]
}

func text(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(b.String())
}

func exists(cfg *config.Config, rel string) bool {
	_, err := os.Stat(filepath.Join(cfg.SiteDir, filepath.FromSlash(rel)))
	return err == nil
}
