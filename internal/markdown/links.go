package markdown

import (
	"net/url"
	"path"
	"strings"

	"git.home.luguber.info/inful/docbabel/internal/structure"
)

// PageLinkResolver rewrites relative links to other documentation sources
// (`../setup.md#install`) into URLs relative to the page being rendered.
func PageLinkResolver(page *structure.File, files *structure.Files) func(string) (string, bool) {
	return func(dest string) (string, bool) {
		u, err := url.Parse(dest)
		if err != nil || u.Scheme != "" || u.Host != "" || u.Path == "" || strings.HasPrefix(u.Path, "/") {
			return "", false
		}
		target := path.Clean(path.Join(path.Dir(page.SrcPath), u.Path))
		f, ok := files.Get(target)
		if !ok {
			return "", false
		}
		out := f.URLRelativeTo(page)
		if u.Fragment != "" {
			out += "#" + u.Fragment
		}
		return out, true
	}
}
