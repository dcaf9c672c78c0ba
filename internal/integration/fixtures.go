package integration

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/HartBrook/condense/internal/config"
	"gopkg.in/yaml.v3"
)

// Fixture represents a compression scenario loaded from YAML.
type Fixture struct {
	Name        string            `yaml:"name"`
	Description string            `yaml:"description"`
	Setup       FixtureSetup      `yaml:"setup"`
	Assertions  FixtureAssertions `yaml:"assertions"`
}

// FixtureSetup defines the prompt and the config it runs under.
type FixtureSetup struct {
	Prompt   string                         `yaml:"prompt"`
	Type     string                         `yaml:"type"`     // empty means classify
	Policies map[string]config.PolicyConfig `yaml:"policies"` // written to config.yaml
}

// FixtureAssertions defines what to verify on the result.
type FixtureAssertions struct {
	DetectedType  string   `yaml:"detected_type"`
	Compressed    *string  `yaml:"compressed"` // exact match
	Contains      []string `yaml:"contains"`
	NotContains   []string `yaml:"not_contains"`
	Techniques    []string `yaml:"techniques"`
	NotTechniques []string `yaml:"not_techniques"`
	Flags         []string `yaml:"flags"`
	NotFlags      []string `yaml:"not_flags"`
	MinQuality    *int     `yaml:"min_quality"`
	Reduction     *int     `yaml:"reduction"`
	MaxExamples   *int     `yaml:"max_examples"`
	InBand        bool     `yaml:"in_band"`
	NoGrowth      bool     `yaml:"no_growth"`
	Terminal      bool     `yaml:"terminal"`
}

// LoadFixture loads a fixture from a YAML file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var fixture Fixture
	if err := yaml.Unmarshal(data, &fixture); err != nil {
		return nil, err
	}

	if err := fixture.Validate(); err != nil {
		return nil, fmt.Errorf("invalid fixture %s: %w", path, err)
	}

	return &fixture, nil
}

// Validate checks that the fixture has all required fields.
func (f *Fixture) Validate() error {
	if f.Name == "" {
		return fmt.Errorf("missing required field: name")
	}
	if f.Setup.Prompt == "" {
		return fmt.Errorf("missing required field: setup.prompt")
	}
	return nil
}

// LoadAllFixtures loads all fixtures from a directory.
func LoadAllFixtures(dir string) ([]*Fixture, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var fixtures []*Fixture
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if filepath.Ext(name) != ".yaml" && filepath.Ext(name) != ".yml" {
			continue
		}

		fixture, err := LoadFixture(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		fixtures = append(fixtures, fixture)
	}

	return fixtures, nil
}

// ToConfig converts the fixture setup to a config.Config.
func (s *FixtureSetup) ToConfig() *config.Config {
	cfg := config.Default()
	cfg.Policies = s.Policies
	return cfg
}
