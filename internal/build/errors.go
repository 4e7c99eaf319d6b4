package build

import "errors"

// Sentinel errors classifying pipeline failures. They are wrapped with
// context at the call site.
var (
	ErrDiscovery   = errors.New("docbabel: discovery error")
	ErrRender      = errors.New("docbabel: render error")
	ErrUnsafeClean = errors.New("docbabel: refusing to clean site directory")
)
