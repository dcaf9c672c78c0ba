package config

import (
	"os"
	"path/filepath"
)

// File permission constants for consistent file creation.
const (
	DefaultFileMode = 0644
	DefaultDirMode  = 0755
)

// Paths provides all condense-related filesystem paths.
type Paths struct {
	ConfigDir  string // ~/.config/condense
	CacheDir   string // ~/.cache/condense
	ConfigFile string // ~/.config/condense/config.yaml
	ResultsDir string // ~/.cache/condense/results
}

// NewPaths creates Paths using ~/.config and ~/.cache directories.
// We use these paths explicitly for cross-platform consistency rather than
// platform-specific defaults (like ~/Library/Application Support on macOS).
func NewPaths() *Paths {
	home := os.Getenv("HOME")
	return NewPathsWithOverrides(
		filepath.Join(home, ".config", "condense"),
		filepath.Join(home, ".cache", "condense"),
	)
}

// NewPathsWithOverrides allows overriding directories for testing.
func NewPathsWithOverrides(configDir, cacheDir string) *Paths {
	return &Paths{
		ConfigDir:  configDir,
		CacheDir:   cacheDir,
		ConfigFile: filepath.Join(configDir, "config.yaml"),
		ResultsDir: filepath.Join(cacheDir, "results"),
	}
}

// ResultFile returns the path for a cached compression result.
func (p *Paths) ResultFile(key string) string {
	return filepath.Join(p.ResultsDir, key+".json")
}

// ResultMetaFile returns the path for a cached result's metadata sidecar.
func (p *Paths) ResultMetaFile(key string) string {
	return filepath.Join(p.ResultsDir, key+".meta.json")
}
