// Package integration runs compression scenarios end to end: config on disk,
// policy overrides, the engine and the result cache.
package integration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/HartBrook/condense/internal/cache"
	"github.com/HartBrook/condense/internal/compress"
	"github.com/HartBrook/condense/internal/config"
)

// TestEnv provides an isolated test environment with overridden paths.
type TestEnv struct {
	t         *testing.T
	RootDir   string        // t.TempDir() root
	ConfigDir string        // ~/.config/condense
	CacheDir  string        // ~/.cache/condense
	Paths     *config.Paths // Configured paths pointing to temp dirs
}

// NewTestEnv creates an isolated test environment.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	rootDir := t.TempDir()
	configDir := filepath.Join(rootDir, "home", ".config", "condense")
	cacheDir := filepath.Join(rootDir, "home", ".cache", "condense")

	for _, dir := range []string{configDir, cacheDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("failed to create directory %s: %v", dir, err)
		}
	}

	return &TestEnv{
		t:         t,
		RootDir:   rootDir,
		ConfigDir: configDir,
		CacheDir:  cacheDir,
		Paths:     config.NewPathsWithOverrides(configDir, cacheDir),
	}
}

// SetupConfig writes config.yaml.
func (e *TestEnv) SetupConfig(cfg *config.Config) error {
	return config.SaveTo(cfg, e.Paths.ConfigFile)
}

// Run is the outcome of one compression through the environment.
type Run struct {
	Result    *compress.Result
	Policy    compress.CompressionConfig
	FromCache bool
}

// Compress loads config.yaml, builds the engine from its policy table and
// compresses prompt, reading and writing the result cache the way the CLI does.
func (e *TestEnv) Compress(prompt string, override compress.PromptType) (*Run, error) {
	cfg, err := config.LoadOrDefault(e.Paths.ConfigFile)
	if err != nil {
		return nil, err
	}
	policies, err := cfg.PolicyTable()
	if err != nil {
		return nil, err
	}

	fingerprint := policies.Fingerprint()
	key := cache.Key(prompt, override, fingerprint)
	c := cache.New(e.Paths)

	if result, meta, err := c.Read(key); err == nil && !meta.IsStale(cfg.Cache.TTLDuration()) {
		return &Run{Result: result, Policy: policies.Lookup(result.DetectedType), FromCache: true}, nil
	}

	engine := compress.New(compress.WithPolicies(policies))
	result := engine.Compress(compress.Request{Text: prompt, Type: override})
	if err := c.Write(key, result, cache.NewMetadata(key, "fixture", fingerprint, result)); err != nil {
		return nil, err
	}

	return &Run{Result: result, Policy: policies.Lookup(result.DetectedType)}, nil
}
