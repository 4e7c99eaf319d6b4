package i18n

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
	"gopkg.in/yaml.v3"

	derrors "git.home.luguber.info/inful/docbabel/internal/errors"
	"git.home.luguber.info/inful/docbabel/internal/logfields"
)

// DefaultNoTranslation is the placeholder shown for pages without a translation.
const DefaultNoTranslation = "This page is not translated yet"

// Config holds the plugin options.
type Config struct {
	// Languages maps each translation language tag to free-form metadata.
	// Only the keys are used for routing. A string value, or the "name" entry
	// of a mapping, labels the language in the language switcher.
	Languages       map[string]any `yaml:"languages"`
	DefaultLanguage string         `yaml:"default_language"`
	NoTranslation   string         `yaml:"no_translation"`
}

// ParseConfig decodes and validates plugin options.
func ParseConfig(options map[string]any) (*Config, error) {
	raw, err := yaml.Marshal(options)
	if err != nil {
		return nil, fmt.Errorf("encode options: %w", err)
	}
	cfg := &Config{NoTranslation: DefaultNoTranslation}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, derrors.Wrap(err, derrors.CategoryConfig, derrors.SeverityFatal, "invalid i18n options")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required options.
func (c *Config) Validate() error {
	if c.Languages == nil {
		return derrors.ConfigRequired("plugins.i18n.languages")
	}
	if c.DefaultLanguage == "" {
		return derrors.ConfigRequired("plugins.i18n.default_language")
	}
	for _, tag := range c.LanguageTags() {
		if tag == "" || strings.ContainsAny(tag, "./") {
			return derrors.ValidationFailed("plugins.i18n.languages", fmt.Sprintf("invalid language tag %q", tag))
		}
		if _, err := language.Parse(tag); err != nil {
			// Still routed; only display names fall back to the raw tag.
			slog.Warn("Language tag is not a BCP 47 tag", logfields.Language(tag))
		}
	}
	return nil
}

// LanguageTags returns the configured translation languages in sorted order.
func (c *Config) LanguageTags() []string {
	tags := make([]string, 0, len(c.Languages))
	for tag := range c.Languages {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// AllLanguages returns the translation languages plus the default language, sorted.
func (c *Config) AllLanguages() []string {
	tags := c.LanguageTags()
	if !c.IsConfigured(c.DefaultLanguage) {
		tags = append(tags, c.DefaultLanguage)
		sort.Strings(tags)
	}
	return tags
}

// IsConfigured reports whether tag is one of the translation languages.
func (c *Config) IsConfigured(tag string) bool {
	_, ok := c.Languages[tag]
	return ok
}

// DisplayName returns the label for a language: the configured "name", the
// language's name in itself, or the tag.
func (c *Config) DisplayName(tag string) string {
	switch v := c.Languages[tag].(type) {
	case string:
		if v != "" {
			return v
		}
	case map[string]any:
		if name, ok := v["name"].(string); ok && name != "" {
			return name
		}
	}
	if t, err := language.Parse(tag); err == nil {
		if name := display.Self.Name(t); name != "" {
			return name
		}
	}
	return tag
}
