package plugin

import (
	"fmt"
	"sort"
	"sync"
)

// Factory constructs a fresh plugin instance.
type Factory func() Plugin

// Registry maps plugin names to factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
	metadata  map[string]PluginMetadata
}

// NewRegistry creates a new empty plugin registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
		metadata:  make(map[string]PluginMetadata),
	}
}

// Register adds a plugin factory to the registry, keyed by the name in the
// metadata of the plugin it constructs.
// Returns an error if a plugin with the same name already exists.
func (r *Registry) Register(factory Factory) error {
	if factory == nil {
		return fmt.Errorf("cannot register nil plugin factory")
	}
	probe := factory()
	if probe == nil {
		return fmt.Errorf("plugin factory returned nil")
	}

	metadata := probe.Metadata()
	if err := metadata.Validate(); err != nil {
		return fmt.Errorf("invalid plugin metadata: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[metadata.Name]; exists {
		return fmt.Errorf("plugin %s already registered", metadata.Name)
	}

	r.factories[metadata.Name] = factory
	r.metadata[metadata.Name] = metadata
	return nil
}

// New constructs the named plugin.
// Returns an error if the plugin is not registered.
func (r *Registry) New(name string) (Plugin, error) {
	r.mu.RLock()
	factory, ok := r.factories[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("plugin %s not found", name)
	}
	return factory(), nil
}

// Metadata returns the metadata of the named plugin.
func (r *Registry) Metadata(name string) (PluginMetadata, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.metadata[name]
	return m, ok
}

// Names returns the registered plugin names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ListByType returns the names of registered plugins of a specific type.
func (r *Registry) ListByType(pluginType PluginType) []string {
	var result []string
	for _, name := range r.Names() {
		if m, _ := r.Metadata(name); m.Type == pluginType {
			result = append(result, name)
		}
	}
	return result
}

// Has checks if a plugin with the given name exists.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.factories[name]
	return ok
}

// Unregister removes a plugin from the registry.
func (r *Registry) Unregister(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.factories[name]; !ok {
		return fmt.Errorf("plugin %s not found", name)
	}
	delete(r.factories, name)
	delete(r.metadata, name)
	return nil
}

// Count returns the number of registered plugins.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.factories)
}

// globalRegistry is the default plugin registry used throughout the application.
var globalRegistry = NewRegistry()

// DefaultRegistry returns the global plugin registry.
func DefaultRegistry() *Registry {
	return globalRegistry
}

// Register adds a plugin factory to the global registry.
func Register(factory Factory) error {
	return globalRegistry.Register(factory)
}

// MustRegister is Register for use in init functions; it panics on error.
func MustRegister(factory Factory) {
	if err := globalRegistry.Register(factory); err != nil {
		panic(err)
	}
}
