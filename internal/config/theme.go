package config

import (
	"maps"

	"gopkg.in/yaml.v3"
)

// DefaultThemeName is the theme embedded in the binary.
const DefaultThemeName = "default"

// Theme selects the template set and carries its free-form settings.
// Accepts either a bare name (`theme: default`) or a mapping.
type Theme struct {
	Name      string
	CustomDir string
	Settings  map[string]any
}

type themeYAML struct {
	Name      string         `yaml:"name"`
	CustomDir string         `yaml:"custom_dir,omitempty"`
	Settings  map[string]any `yaml:",inline"`
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (t *Theme) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		t.Name = node.Value
		return nil
	}
	var raw themeYAML
	if err := node.Decode(&raw); err != nil {
		return err
	}
	t.Name = raw.Name
	t.CustomDir = raw.CustomDir
	t.Settings = raw.Settings
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (t Theme) MarshalYAML() (any, error) {
	return themeYAML{Name: t.Name, CustomDir: t.CustomDir, Settings: t.Settings}, nil
}

// Get returns a theme setting.
func (t *Theme) Get(key string) (any, bool) {
	v, ok := t.Settings[key]
	return v, ok
}

// GetString returns a theme setting as a string, or "" when unset or not a string.
func (t *Theme) GetString(key string) string {
	if v, ok := t.Settings[key].(string); ok {
		return v
	}
	return ""
}

// Set assigns a theme setting.
func (t *Theme) Set(key string, value any) {
	if t.Settings == nil {
		t.Settings = make(map[string]any)
	}
	t.Settings[key] = value
}

// HasSetting reports whether the theme declares the named setting.
func (t *Theme) HasSetting(key string) bool {
	_, ok := t.Settings[key]
	return ok
}

// Clone returns a copy whose settings can be changed without affecting t.
func (t Theme) Clone() Theme {
	t.Settings = maps.Clone(t.Settings)
	return t
}
