package errors

// Convenience functions for common error patterns

// Config errors

func ConfigNotFound(path string) *DocBabelError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ConfigRequired(field string) *DocBabelError {
	return New(CategoryConfig, SeverityFatal, "required configuration missing").
		WithContext("field", field)
}

func ValidationFailed(field, reason string) *DocBabelError {
	return New(CategoryValidation, SeverityFatal, "validation failed").
		WithContext("field", field).
		WithContext("reason", reason)
}

// Build pipeline errors

func BuildFailed(stage string, cause error) *DocBabelError {
	return Wrap(cause, CategoryBuild, SeverityFatal, "build failed").
		WithContext("stage", stage)
}

func DiscoveryError(dir string, cause error) *DocBabelError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "documentation discovery failed").
		WithContext("docs_dir", dir)
}

func WriteError(path string, cause error) *DocBabelError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "writing output failed").
		WithContext("path", path)
}

func RenderError(page string, cause error) *DocBabelError {
	return Wrap(cause, CategoryRender, SeverityFatal, "page rendering failed").
		WithContext("page", page)
}

func PluginFailed(plugin, event string, cause error) *DocBabelError {
	return Wrap(cause, CategoryPlugin, SeverityFatal, "plugin event failed").
		WithContext("plugin", plugin).
		WithContext("event", event)
}

// Internal errors

func InternalError(message string, cause error) *DocBabelError {
	return Wrap(cause, CategoryInternal, SeverityFatal, message)
}
