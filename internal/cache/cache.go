package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/HartBrook/condense/internal/compress"
	"github.com/HartBrook/condense/internal/config"
	"github.com/HartBrook/condense/internal/errors"
)

// Cache manages cached compression results.
type Cache struct {
	paths *config.Paths
}

// New creates a new cache manager.
func New(paths *config.Paths) *Cache {
	return &Cache{paths: paths}
}

// Key derives the cache key for a compression request. The policy
// fingerprint is part of the key so edited policies never serve stale output.
func Key(text string, override compress.PromptType, fingerprint string) string {
	h := sha256.New()
	h.Write([]byte(text))
	h.Write([]byte{0})
	h.Write([]byte(override))
	h.Write([]byte{0})
	h.Write([]byte(fingerprint))
	return hex.EncodeToString(h.Sum(nil))
}

// Read retrieves a cached result and its metadata.
func (c *Cache) Read(key string) (*compress.Result, *Metadata, error) {
	data, err := os.ReadFile(c.paths.ResultFile(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, errors.CacheNotFound(key)
		}
		return nil, nil, fmt.Errorf("failed to read cached result: %w", err)
	}

	var result compress.Result
	if err := json.Unmarshal(data, &result); err != nil {
		// A corrupt entry is treated as missing and removed.
		_ = c.Clear(key)
		return nil, nil, errors.CacheNotFound(key)
	}

	meta, err := c.GetMetadata(key)
	if err != nil {
		_ = c.Clear(key)
		return nil, nil, errors.CacheNotFound(key)
	}

	return &result, meta, nil
}

// Write stores a result and its metadata.
func (c *Cache) Write(key string, result *compress.Result, meta *Metadata) error {
	if err := os.MkdirAll(c.paths.ResultsDir, config.DefaultDirMode); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	if err := os.WriteFile(c.paths.ResultFile(key), data, config.DefaultFileMode); err != nil {
		return fmt.Errorf("failed to write cached result: %w", err)
	}

	meta.Key = key
	metaData, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}
	if err := os.WriteFile(c.paths.ResultMetaFile(key), metaData, config.DefaultFileMode); err != nil {
		return fmt.Errorf("failed to write metadata: %w", err)
	}

	return nil
}

// Exists checks if a cached result exists.
func (c *Cache) Exists(key string) bool {
	_, err := os.Stat(c.paths.ResultFile(key))
	return err == nil
}

// Clear removes a cached result. Missing entries are not an error.
func (c *Cache) Clear(key string) error {
	for _, path := range []string{c.paths.ResultFile(key), c.paths.ResultMetaFile(key)} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove %s: %w", path, err)
		}
	}
	return nil
}

// ClearAll removes every cached result and returns how many were removed.
func (c *Cache) ClearAll() (int, error) {
	keys, err := c.keys()
	if err != nil {
		return 0, err
	}
	for _, key := range keys {
		if err := c.Clear(key); err != nil {
			return 0, err
		}
	}
	return len(keys), nil
}

// GetMetadata returns metadata for a cached result.
func (c *Cache) GetMetadata(key string) (*Metadata, error) {
	data, err := os.ReadFile(c.paths.ResultMetaFile(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.CacheNotFound(key)
		}
		return nil, fmt.Errorf("failed to read metadata: %w", err)
	}

	var meta Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("failed to parse metadata: %w", err)
	}

	return &meta, nil
}

// CacheDir returns the results directory path.
func (c *Cache) CacheDir() string {
	return c.paths.ResultsDir
}

// List returns metadata for all cached results, newest first.
func (c *Cache) List() ([]*Metadata, error) {
	keys, err := c.keys()
	if err != nil {
		return nil, err
	}

	var entries []*Metadata
	for _, key := range keys {
		meta, err := c.GetMetadata(key)
		if err != nil {
			continue
		}
		entries = append(entries, meta)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	return entries, nil
}

// keys lists the keys of all stored results.
func (c *Cache) keys() ([]string, error) {
	entries, err := os.ReadDir(c.paths.ResultsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var keys []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasSuffix(name, ".meta.json") || filepath.Ext(name) != ".json" {
			continue
		}
		keys = append(keys, strings.TrimSuffix(name, ".json"))
	}
	return keys, nil
}
