package i18n

import (
	"log/slog"
	"path"
	"strings"

	"git.home.luguber.info/inful/docbabel/internal/logfields"
)

// Resolve returns the language of a page from its URL: the final
// dot-separated segment (`guide.fr/` -> `fr`) when it names a configured
// language, the default language otherwise. Flat URLs (`guide.fr.html`)
// are handled by dropping the `.html` extension first.
func (c *Config) Resolve(url string) string {
	u := strings.TrimSuffix(strings.TrimRight(url, "/"), ".html")
	i := strings.LastIndex(u, ".")
	if i < 0 || strings.Contains(u[i:], "/") {
		return c.DefaultLanguage
	}
	lang := u[i+1:]
	if c.IsConfigured(lang) {
		return lang
	}
	if lang != "" {
		slog.Debug("Unrecognized language suffix; using default language",
			logfields.URL(url), slog.String("suffix", lang), logfields.Language(c.DefaultLanguage))
	}
	return c.DefaultLanguage
}

// RootURL returns the URL a language's homepage is published at:
// `fr/`, or `fr/index.html` without directory URLs.
func RootURL(lang string, useDirectoryURLs bool) string {
	if useDirectoryURLs {
		return path.Clean(lang) + "/"
	}
	return path.Clean(lang) + "/index.html"
}
