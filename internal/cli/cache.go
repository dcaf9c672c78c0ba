package cli

import (
	"fmt"
	"strings"

	"github.com/HartBrook/condense/internal/cache"
	"github.com/HartBrook/condense/internal/errors"
	"github.com/spf13/cobra"
)

// NewCacheCmd creates the cache command group.
func NewCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear cached compression results",
	}

	cmd.AddCommand(newCacheListCmd())
	cmd.AddCommand(newCacheClearCmd())

	return cmd
}

func newCacheListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List cached results, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, paths, err := loadConfig()
			if err != nil {
				return err
			}

			c := cache.New(paths)
			entries, err := c.List()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, dim("No cached results."))
				printInfo(out, "Directory", c.CacheDir())
				return nil
			}

			ttl := cfg.Cache.TTLDuration()
			for _, meta := range entries {
				age := meta.Age()
				if meta.IsStale(ttl) {
					age = warning(age + " (stale)")
				}
				fmt.Fprintf(out, "%s  %-11s %4d -> %-4d tokens  %s  %s\n",
					info(meta.ShortKey()), meta.DetectedType,
					meta.OriginalTokens, meta.CompressedTokens, meta.Source, dim(age))
			}
			return nil
		},
	}
}

func newCacheClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear [key]",
		Short: "Remove one cached result, or all of them",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, paths, err := loadConfig()
			if err != nil {
				return err
			}
			c := cache.New(paths)
			out := cmd.OutOrStdout()

			if len(args) == 1 {
				key, err := resolveCacheKey(c, args[0])
				if err != nil {
					return err
				}
				if err := c.Clear(key); err != nil {
					return err
				}
				printSuccess(out, "Removed cached result %s", key[:min(12, len(key))])
				return nil
			}

			removed, err := c.ClearAll()
			if err != nil {
				return err
			}
			printSuccess(out, "Removed %d cached result(s)", removed)
			return nil
		},
	}
}

// resolveCacheKey expands a key prefix, as shown by `cache list`, to a full key.
func resolveCacheKey(c *cache.Cache, prefix string) (string, error) {
	if c.Exists(prefix) {
		return prefix, nil
	}
	entries, err := c.List()
	if err != nil {
		return "", err
	}
	var matches []string
	for _, meta := range entries {
		if strings.HasPrefix(meta.Key, prefix) {
			matches = append(matches, meta.Key)
		}
	}
	switch len(matches) {
	case 0:
		return "", errors.CacheNotFound(prefix)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("cache key prefix %q is ambiguous (%d matches)", prefix, len(matches))
	}
}
