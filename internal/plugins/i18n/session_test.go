package i18n

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docbabel/internal/structure"
)

func TestNewSession(t *testing.T) {
	s := NewSession([]string{"fr", "en"})

	_, err := uuid.Parse(s.ID)
	require.NoError(t, err)
	assert.Equal(t, SessionCollecting, s.State)
	assert.Equal(t, []string{"en", "fr"}, s.Languages())
	assert.Equal(t, 0, s.Collection("fr").Len())
	assert.NotEqual(t, s.ID, NewSession(nil).ID)
}

func TestSession_SortByDepth(t *testing.T) {
	s := NewSession([]string{"test"})
	index := structure.NewFile("theme/index.md", "/tmp", "/tmp", false)
	index.URL = "lang/theme/"
	second := structure.NewFile("theme/b.md", "/tmp", "/tmp", false)
	second.URL = "lang/theme/b/"

	s.Collection("test").Append(second)
	s.Collection("test").Append(index)
	s.sortByDepth()

	pages := s.Collection("test").DocumentationPages()
	require.Len(t, pages, 2)
	assert.Same(t, index, pages[0])
}

func TestSession_FindPage(t *testing.T) {
	s := NewSession([]string{"fr"})
	f := TranslatePage(structure.NewFile("index.fr.md", "/d", "/s", true), "fr", "/s")
	s.Collection("fr").Append(f)

	got, ok := s.FindPage("fr", "fr/")
	require.True(t, ok)
	assert.Same(t, f, got)

	_, ok = s.FindPage("de", "de/")
	assert.False(t, ok)
}

func TestSessionState_String(t *testing.T) {
	assert.Equal(t, "collecting", SessionCollecting.String())
	assert.Equal(t, "nav_built", SessionNavBuilt.String())
	assert.Equal(t, "done", SessionDone.String())
}
