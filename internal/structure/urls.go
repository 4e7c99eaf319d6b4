package structure

import (
	"net/url"
	"path"
	"strings"
)

// QuoteURL percent-encodes every segment of a slash-separated URL path,
// leaving the separators intact.
func QuoteURL(p string) string {
	segs := strings.Split(p, "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	return strings.Join(segs, "/")
}

// RelativeURL returns target expressed relative to the page published at from.
func RelativeURL(target, from string) string {
	if from != "." {
		dir, file := path.Split(from)
		if strings.Contains(file, ".") {
			from = dir
		}
	}
	rel := relPath("/"+target, "/"+from)
	if strings.HasSuffix(target, "/") {
		return rel + "/"
	}
	return rel
}

func relPath(target, base string) string {
	t := splitClean(target)
	b := splitClean(base)
	i := 0
	for i < len(t) && i < len(b) && t[i] == b[i] {
		i++
	}
	parts := make([]string, 0, len(b)-i+len(t)-i)
	for range b[i:] {
		parts = append(parts, "..")
	}
	parts = append(parts, t[i:]...)
	if len(parts) == 0 {
		return "."
	}
	return strings.Join(parts, "/")
}

func splitClean(p string) []string {
	p = strings.Trim(path.Clean(p), "/")
	if p == "" || p == "." {
		return nil
	}
	return strings.Split(p, "/")
}

// Depth counts the slash-separated segments of a URL, so "fr/" is 2 and "fr/guide/" is 3.
func Depth(u string) int {
	return len(strings.Split(u, "/"))
}
