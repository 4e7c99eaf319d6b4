package i18n

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/docbabel/internal/structure"
)

// SessionState tracks how far a build has progressed through the plugin.
type SessionState int

const (
	// SessionCollecting: language collections are being filled.
	SessionCollecting SessionState = iota
	// SessionNavBuilt: per-language navigations exist and are not rebuilt.
	SessionNavBuilt
	// SessionDone: translations have been written.
	SessionDone
)

func (s SessionState) String() string {
	switch s {
	case SessionCollecting:
		return "collecting"
	case SessionNavBuilt:
		return "nav_built"
	case SessionDone:
		return "done"
	default:
		return "unknown"
	}
}

// Session is the per-build state of the plugin.
type Session struct {
	ID      string
	Started time.Time
	State   SessionState
	// Files holds one collection per language; static files are shared by all.
	Files map[string]*structure.Files
	Navs  map[string]*structure.Navigation
}

// NewSession starts a session with an empty collection for each language.
func NewSession(languages []string) *Session {
	s := &Session{
		ID:      uuid.NewString(),
		Started: time.Now(),
		State:   SessionCollecting,
		Files:   make(map[string]*structure.Files, len(languages)),
		Navs:    make(map[string]*structure.Navigation, len(languages)),
	}
	for _, lang := range languages {
		s.Collection(lang)
	}
	return s
}

// Collection returns the file collection of lang, creating it if needed.
func (s *Session) Collection(lang string) *structure.Files {
	fs, ok := s.Files[lang]
	if !ok {
		fs = structure.NewFiles()
		s.Files[lang] = fs
	}
	return fs
}

// Languages returns the languages that have a collection, sorted.
func (s *Session) Languages() []string {
	langs := make([]string, 0, len(s.Files))
	for lang := range s.Files {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// FindPage returns the documentation page of lang published at url.
func (s *Session) FindPage(lang, url string) (*structure.File, bool) {
	for _, f := range s.Files[lang].DocumentationPages() {
		if f.URL == url {
			return f, true
		}
	}
	return nil, false
}

// sortByDepth orders every collection by URL depth so parent index pages
// come before the pages beneath them.
func (s *Session) sortByDepth() {
	for _, fs := range s.Files {
		fs.SortStableBy(func(f *structure.File) int { return structure.Depth(f.URL) })
	}
}
