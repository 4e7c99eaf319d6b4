package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	derrors "git.home.luguber.info/inful/docbabel/internal/errors"
)

// DefaultConfigFile is the configuration file name used when none is given.
const DefaultConfigFile = "docbabel.yml"

// Config represents the site configuration
type Config struct {
	SiteName         string         `yaml:"site_name"`
	SiteURL          string         `yaml:"site_url,omitempty"`
	SiteDescription  string         `yaml:"site_description,omitempty"`
	DocsDir          string         `yaml:"docs_dir"`
	SiteDir          string         `yaml:"site_dir"`
	UseDirectoryURLs bool           `yaml:"use_directory_urls"`
	Strict           bool           `yaml:"strict,omitempty"`
	Theme            Theme          `yaml:"theme"`
	Nav              []NavEntry     `yaml:"nav,omitempty"`
	Plugins          PluginList     `yaml:"plugins,omitempty"`
	Extra            map[string]any `yaml:"extra,omitempty"`

	// ConfigFile is the path the configuration was loaded from (empty when built in code).
	ConfigFile string `yaml:"-"`
}

// Default returns a configuration populated with default values.
func Default() *Config {
	return &Config{
		SiteName:         "Documentation",
		DocsDir:          "docs",
		SiteDir:          "site",
		UseDirectoryURLs: true,
		Theme:            Theme{Name: DefaultThemeName},
		Extra:            map[string]any{},
	}
}

// Load loads configuration from the specified file
func Load(configPath string) (*Config, error) {
	// A missing .env is the common case and not an error.
	_ = loadEnvFile()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, derrors.ConfigNotFound(configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := Parse([]byte(os.ExpandEnv(string(data))))
	if err != nil {
		return nil, err
	}
	cfg.ConfigFile = configPath

	// Relative directories are relative to the config file, not the working directory.
	base := filepath.Dir(configPath)
	if !filepath.IsAbs(cfg.DocsDir) {
		cfg.DocsDir = filepath.Join(base, cfg.DocsDir)
	}
	if !filepath.IsAbs(cfg.SiteDir) {
		cfg.SiteDir = filepath.Join(base, cfg.SiteDir)
	}
	if cfg.Theme.CustomDir != "" && !filepath.IsAbs(cfg.Theme.CustomDir) {
		cfg.Theme.CustomDir = filepath.Join(base, cfg.Theme.CustomDir)
	}

	return cfg, nil
}

// Parse decodes YAML configuration over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, derrors.Wrap(err, derrors.CategoryConfig, derrors.SeverityFatal, "failed to unmarshal config")
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Theme.Name == "" {
		c.Theme.Name = DefaultThemeName
	}
	if c.Theme.Name == DefaultThemeName {
		if _, ok := c.Theme.Get("language"); !ok {
			c.Theme.Set("language", "en")
		}
	}
	if c.Extra == nil {
		c.Extra = map[string]any{}
	}
}

// Validate checks the configuration for required fields and conflicting values.
func (c *Config) Validate() error {
	if c.SiteName == "" {
		return derrors.ConfigRequired("site_name")
	}
	if c.DocsDir == "" {
		return derrors.ConfigRequired("docs_dir")
	}
	if c.SiteDir == "" {
		return derrors.ConfigRequired("site_dir")
	}
	if filepath.Clean(c.DocsDir) == filepath.Clean(c.SiteDir) {
		return derrors.ValidationFailed("site_dir", "site_dir must differ from docs_dir")
	}
	seen := make(map[string]struct{}, len(c.Plugins))
	for _, p := range c.Plugins {
		if p.Name == "" {
			return derrors.ValidationFailed("plugins", "plugin name must not be empty")
		}
		if _, dup := seen[p.Name]; dup {
			return derrors.ValidationFailed("plugins", fmt.Sprintf("plugin %q listed more than once", p.Name))
		}
		seen[p.Name] = struct{}{}
	}
	return nil
}

// Init creates a new configuration file with example content
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	example := Default()
	example.SiteName = "My Documentation"
	example.SiteURL = "https://example.com/"
	example.Theme.Set("language", "en")
	example.Plugins = PluginList{
		{
			Name: "i18n",
			Options: map[string]any{
				"default_language": "en",
				"languages": map[string]any{
					"fr": map[string]any{"name": "Français"},
					"de": map[string]any{"name": "Deutsch"},
				},
			},
		},
	}

	data, err := yaml.Marshal(example)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
