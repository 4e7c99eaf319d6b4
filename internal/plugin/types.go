package plugin

import "fmt"

// PluginType identifies the category of plugin.
type PluginType string

const (
	// PluginTypeStructure reshapes the site: which files are built, where they
	// are written and how they are navigated.
	PluginTypeStructure PluginType = "structure"

	// PluginTypeContent modifies page content or render context.
	PluginTypeContent PluginType = "content"

	// PluginTypeTheme contributes templates or theme settings.
	PluginTypeTheme PluginType = "theme"
)

// IsValid returns true if the plugin type is recognized.
func (t PluginType) IsValid() bool {
	switch t {
	case PluginTypeStructure, PluginTypeContent, PluginTypeTheme:
		return true
	default:
		return false
	}
}

// String returns the string representation of the plugin type.
func (t PluginType) String() string {
	return string(t)
}

// PluginCapability describes optional features a plugin may provide.
type PluginCapability string

const (
	// CapabilityI18n indicates the plugin supports internationalization.
	CapabilityI18n PluginCapability = "i18n"

	// CapabilitySearch indicates the plugin provides search functionality.
	CapabilitySearch PluginCapability = "search"
)

// String returns the string representation of the capability.
func (c PluginCapability) String() string {
	return string(c)
}

// Event names a point of the build pipeline at which plugins are invoked.
type Event string

const (
	EventPreBuild    Event = "pre_build"
	EventFiles       Event = "files"
	EventNav         Event = "nav"
	EventPageContext Event = "page_context"
	EventPostBuild   Event = "post_build"
)

// PluginError represents an error that occurred within a plugin.
type PluginError struct {
	// PluginName identifies which plugin failed.
	PluginName string

	// Event is the pipeline event the plugin was handling when it failed.
	Event Event

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *PluginError) Error() string {
	return fmt.Sprintf("plugin %s failed during %s: %v", e.PluginName, e.Event, e.Err)
}

// Unwrap returns the underlying error for error inspection.
func (e *PluginError) Unwrap() error {
	return e.Err
}

// NewPluginError creates a new plugin error.
func NewPluginError(pluginName string, event Event, err error) *PluginError {
	return &PluginError{
		PluginName: pluginName,
		Event:      event,
		Err:        err,
	}
}
