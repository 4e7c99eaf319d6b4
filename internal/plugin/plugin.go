// Package plugin defines how plugins hook into the docbabel build pipeline.
//
// A plugin implements Plugin plus any of the hook interfaces (FilesHook,
// NavHook, ...). The build invokes hooks synchronously, in the order the
// plugins are listed in the site configuration.
package plugin

import (
	"context"
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/docbabel/internal/config"
	"git.home.luguber.info/inful/docbabel/internal/metrics"
	"git.home.luguber.info/inful/docbabel/internal/structure"
	"git.home.luguber.info/inful/docbabel/internal/theme"
)

// Plugin represents a docbabel plugin with metadata and configuration.
type Plugin interface {
	// Metadata returns the plugin's metadata (name, version, type, capabilities).
	Metadata() PluginMetadata

	// Validate decodes the plugin's options from the site configuration.
	// Returns an error if the options are invalid.
	Validate(options map[string]any) error
}

// PreBuildHook runs once at the start of every build.
type PreBuildHook interface {
	OnPreBuild(cfg *config.Config) error
}

// FilesHook runs after discovery and may replace the set of files to build.
type FilesHook interface {
	OnFiles(files *structure.Files, cfg *config.Config) (*structure.Files, error)
}

// NavHook runs after the navigation tree is built and may replace it.
type NavHook interface {
	OnNav(nav *structure.Navigation, cfg *config.Config, files *structure.Files) (*structure.Navigation, error)
}

// PageContextHook runs for every page before its template is rendered.
type PageContextHook interface {
	OnPageContext(tctx *theme.Context, page *structure.Page, cfg *config.Config, nav *structure.Navigation) (*theme.Context, error)
}

// PostBuildHook runs once after every page of the build has been written.
type PostBuildHook interface {
	OnPostBuild(ctx context.Context, host Host) error
}

// Host gives post-build plugins access to the routines the build itself uses.
type Host interface {
	Config() *config.Config
	Plugins() *Collection
	Logger() *slog.Logger
	Metrics() metrics.Recorder

	// PopulatePage reads the page source and renders its Markdown, resolving
	// links against files.
	PopulatePage(page *structure.Page, files *structure.Files) error

	// BuildPage renders a populated page with its template and writes it to
	// its destination.
	BuildPage(ctx context.Context, page *structure.Page, files *structure.Files, nav *structure.Navigation) error
}

// PluginMetadata describes a plugin's identity and capabilities.
type PluginMetadata struct {
	// Name is the identifier used in the `plugins` section of the site config.
	Name string

	// Version is the semantic version (e.g., "v1.0.0").
	Version string

	// Type identifies the plugin category.
	Type PluginType

	// Description provides a human-readable summary of the plugin's purpose.
	Description string

	// Capabilities lists optional features this plugin provides.
	Capabilities []PluginCapability
}

// String returns a human-readable representation of the plugin metadata.
func (m PluginMetadata) String() string {
	return fmt.Sprintf("%s@%s (%s)", m.Name, m.Version, m.Type)
}

// HasCapability reports whether the plugin declares c.
func (m PluginMetadata) HasCapability(c PluginCapability) bool {
	for _, have := range m.Capabilities {
		if have == c {
			return true
		}
	}
	return false
}

// Validate checks if the plugin metadata is valid.
func (m PluginMetadata) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("plugin name is required")
	}
	if m.Version == "" {
		return fmt.Errorf("plugin version is required")
	}
	if !m.Type.IsValid() {
		return fmt.Errorf("invalid plugin type: %s", m.Type)
	}
	return nil
}

// BasePlugin provides a default Validate that accepts any options.
// Plugins can embed this to avoid implementing it.
type BasePlugin struct{}

// Validate is a no-op default implementation that accepts any options.
func (b *BasePlugin) Validate(map[string]any) error {
	return nil
}
