// Package config handles condense configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/HartBrook/condense/internal/compress"
	"github.com/HartBrook/condense/internal/errors"
	"github.com/HartBrook/condense/internal/logging"
	"gopkg.in/yaml.v3"
)

// CacheConfig contains result cache settings.
type CacheConfig struct {
	Enabled *bool  `yaml:"enabled,omitempty"`
	TTL     string `yaml:"ttl"` // e.g., "24h"
}

// GitHubConfig contains settings for fetching prompts from repositories.
type GitHubConfig struct {
	Ref string `yaml:"ref,omitempty"` // branch, tag or commit; empty uses the default branch
}

// PolicyConfig overrides part of the built-in policy for one prompt type.
// Unset fields keep the built-in value.
type PolicyConfig struct {
	Min         *int     `yaml:"min,omitempty"`
	Max         *int     `yaml:"max,omitempty"`
	MaxExamples *int     `yaml:"max_examples,omitempty"`
	Allowed     []string `yaml:"allowed,omitempty"` // technique codes, e.g. list_to_prose
	Risky       []string `yaml:"risky,omitempty"`
}

// Config represents the condense configuration file.
type Config struct {
	Version int `yaml:"version"`

	Cache   CacheConfig    `yaml:"cache"`
	Logging logging.Config `yaml:"logging,omitempty"`
	GitHub  GitHubConfig   `yaml:"github,omitempty"`

	// Policies maps prompt type names to band overrides.
	Policies map[string]PolicyConfig `yaml:"policies,omitempty"`
}

// Default values.
const (
	DefaultVersion  = 1
	DefaultCacheTTL = "168h"
)

// Default returns a config with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// LoadOrDefault reads config from path, falling back to defaults when the
// file does not exist. Any other failure is returned.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := LoadFrom(path)
	if err == nil {
		return cfg, nil
	}
	if typed, ok := err.(*errors.Error); ok && typed.Code == errors.ErrConfigNotFound {
		return Default(), nil
	}
	return nil, err
}

// LoadFrom reads and validates config from a specific path.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigNotFound(path)
		}
		return nil, errors.Wrap(errors.ErrConfigInvalid, "failed to read config", "", err)
	}
	return Parse(data)
}

// Parse decodes config YAML after expanding ${VAR} and ${VAR:-default}.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal([]byte(expandEnvWithDefaults(string(data))), &cfg); err != nil {
		return nil, errors.Wrap(errors.ErrConfigInvalid, "failed to parse config YAML", "Check config syntax", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// SaveTo writes config to a specific path.
func SaveTo(cfg *Config, path string) error {
	cfg.applyDefaults()

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(errors.ErrConfigInvalid, "failed to marshal config", "", err)
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, DefaultDirMode); err != nil {
		return errors.Wrap(errors.ErrConfigInvalid, "failed to create config directory", "", err)
	}

	return os.WriteFile(path, data, DefaultFileMode)
}

// Validate checks config for valid values.
func (c *Config) Validate() error {
	if c.Cache.TTL != "" {
		if _, err := time.ParseDuration(c.Cache.TTL); err != nil {
			return errors.ConfigInvalid("invalid cache.ttl format, use Go duration format (e.g., 24h)")
		}
	}

	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return errors.ConfigInvalid(fmt.Sprintf("logging.format must be console or json, got %q", c.Logging.Format))
	}

	_, err := c.PolicyTable()
	return err
}

// applyDefaults sets default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = DefaultVersion
	}
	if c.Cache.TTL == "" {
		c.Cache.TTL = DefaultCacheTTL
	}
	if c.Cache.Enabled == nil {
		enabled := true
		c.Cache.Enabled = &enabled
	}
	defaults := logging.DefaultConfig()
	if c.Logging.Level == "" {
		c.Logging.Level = defaults.Level
	}
	if c.Logging.Format == "" {
		c.Logging.Format = defaults.Format
	}
	if c.Logging.Output == "" {
		c.Logging.Output = defaults.Output
	}
}

// CacheEnabled reports whether compression results are cached.
func (c *Config) CacheEnabled() bool {
	return c.Cache.Enabled == nil || *c.Cache.Enabled
}

// TTLDuration returns the cache TTL as a time.Duration.
func (c *CacheConfig) TTLDuration() time.Duration {
	d, err := time.ParseDuration(c.TTL)
	if err != nil {
		d, _ = time.ParseDuration(DefaultCacheTTL)
	}
	return d
}

// Exists checks if a config file exists at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// PolicyTable applies the configured overrides on top of the built-in
// policies. Overrides are applied in type-name order.
func (c *Config) PolicyTable() (compress.PolicyTable, error) {
	table := compress.DefaultPolicies()

	names := make([]string, 0, len(c.Policies))
	for name := range c.Policies {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		t, ok := compress.ParsePromptType(name)
		if !ok {
			return compress.PolicyTable{}, errors.UnknownPromptType(name, typeNames())
		}
		cfg, err := c.Policies[name].apply(table.Lookup(t))
		if err != nil {
			return compress.PolicyTable{}, errors.PolicyInvalid(name, err)
		}
		if err := cfg.Validate(); err != nil {
			return compress.PolicyTable{}, errors.PolicyInvalid(name, err)
		}
		table = table.WithOverride(t, cfg)
	}

	return table, nil
}

func (p PolicyConfig) apply(cfg compress.CompressionConfig) (compress.CompressionConfig, error) {
	if p.Min != nil {
		cfg.TargetReductionMin = *p.Min
	}
	if p.Max != nil {
		cfg.TargetReductionMax = *p.Max
	}
	if p.MaxExamples != nil {
		cfg.MaxExamples = *p.MaxExamples
	}
	if p.Allowed != nil {
		allowed, err := parseTechniques(p.Allowed)
		if err != nil {
			return cfg, err
		}
		cfg.AllowedTechniques = allowed
	}
	if p.Risky != nil {
		risky, err := parseTechniques(p.Risky)
		if err != nil {
			return cfg, err
		}
		cfg.RiskyTechniques = risky
	}
	return cfg, nil
}

func parseTechniques(names []string) ([]compress.Technique, error) {
	techniques := make([]compress.Technique, 0, len(names))
	for _, name := range names {
		t, ok := compress.ParseTechnique(name)
		if !ok {
			return nil, fmt.Errorf("unknown technique %q", name)
		}
		techniques = append(techniques, t)
	}
	return techniques, nil
}

func typeNames() []string {
	types := compress.Types()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return names
}
