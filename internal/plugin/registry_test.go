package plugin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockPlugin is a test plugin recording the options it was validated with.
type mockPlugin struct {
	BasePlugin
	metadata PluginMetadata
}

func (m *mockPlugin) Metadata() PluginMetadata {
	return m.metadata
}

func mockFactory(name string, pluginType PluginType) Factory {
	return func() Plugin {
		return &mockPlugin{metadata: PluginMetadata{Name: name, Version: "v1.0.0", Type: pluginType}}
	}
}

func TestRegistryRegister(t *testing.T) {
	registry := NewRegistry()

	require.NoError(t, registry.Register(mockFactory("test-plugin", PluginTypeStructure)))
	assert.True(t, registry.Has("test-plugin"))
	assert.Error(t, registry.Register(mockFactory("test-plugin", PluginTypeStructure)), "duplicate registration")
}

func TestRegistryRegisterInvalid(t *testing.T) {
	registry := NewRegistry()

	assert.Error(t, registry.Register(nil))
	assert.Error(t, registry.Register(func() Plugin { return nil }))
	assert.Error(t, registry.Register(mockFactory("", PluginTypeStructure)))
	assert.Equal(t, 0, registry.Count())
}

func TestRegistryNewReturnsFreshInstances(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.Register(mockFactory("a", PluginTypeContent)))

	p1, err := registry.New("a")
	require.NoError(t, err)
	p2, err := registry.New("a")
	require.NoError(t, err)
	assert.NotSame(t, p1, p2)

	_, err = registry.New("missing")
	assert.Error(t, err)
}

func TestRegistryListing(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.Register(mockFactory("b", PluginTypeContent)))
	require.NoError(t, registry.Register(mockFactory("a", PluginTypeStructure)))

	assert.Equal(t, []string{"a", "b"}, registry.Names())
	assert.Equal(t, []string{"b"}, registry.ListByType(PluginTypeContent))
	m, ok := registry.Metadata("a")
	require.True(t, ok)
	assert.Equal(t, PluginTypeStructure, m.Type)
}

func TestRegistryUnregister(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.Register(mockFactory("a", PluginTypeContent)))

	require.NoError(t, registry.Unregister("a"))
	assert.False(t, registry.Has("a"))
	assert.Error(t, registry.Unregister("a"))
}
