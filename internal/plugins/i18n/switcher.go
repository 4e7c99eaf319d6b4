package i18n

import "strings"

// LanguageLink points from a page to its counterpart in one language.
type LanguageLink struct {
	Code string
	Name string
	// URL is relative to the site root.
	URL string
	// Title is the no_translation text when the counterpart does not exist
	// and URL falls back to the language's homepage.
	Title   string
	Current bool
}

// Switcher is the template data of the language switcher.
type Switcher struct {
	Current       string
	NoTranslation string
	Links         []LanguageLink
}

// switcher lists the page's counterpart in the default language and every
// configured language. The default language links to the unprefixed site.
func (t *Translator) switcher(url, current string, prefixed, useDirectoryURLs bool) Switcher {
	key := url
	if prefixed {
		key = strings.TrimPrefix(url, current+"/")
	} else if key == "." {
		key = ""
	}

	sw := Switcher{Current: current, NoTranslation: t.config.NoTranslation}
	for _, lang := range t.config.AllLanguages() {
		link := LanguageLink{
			Code:    lang,
			Name:    t.config.DisplayName(lang),
			Current: lang == current,
		}
		_, exists := t.session.FindPage(lang, lang+"/"+key)
		switch {
		case lang == t.config.DefaultLanguage:
			link.URL = defaultURL(key)
			if !exists {
				link.URL, link.Title = ".", t.config.NoTranslation
			}
		case exists:
			link.URL = lang + "/" + key
		default:
			link.URL, link.Title = RootURL(lang, useDirectoryURLs), t.config.NoTranslation
		}
		sw.Links = append(sw.Links, link)
	}
	return sw
}

func defaultURL(key string) string {
	if key == "" {
		return "."
	}
	return key
}
