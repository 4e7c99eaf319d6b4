// Package build runs the site build pipeline: discover the docs tree, let
// plugins reshape files and navigation, render every page through the theme
// and write the site.
//
// The Builder implements plugin.Host so that plugins can drive additional
// render passes (the i18n plugin builds one per language) with the same
// populate and render routines the main pass uses.
package build
