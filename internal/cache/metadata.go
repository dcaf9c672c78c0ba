// Package cache stores compression results on disk.
package cache

import (
	"fmt"
	"time"

	"github.com/HartBrook/condense/internal/compress"
	"github.com/google/uuid"
)

// Metadata describes a cached compression result.
type Metadata struct {
	Key               string              `json:"key"`
	RunID             string              `json:"run_id"`
	Source            string              `json:"source"`
	DetectedType      compress.PromptType `json:"detected_type"`
	PolicyFingerprint string              `json:"policy_fingerprint"`
	OriginalTokens    int                 `json:"original_tokens"`
	CompressedTokens  int                 `json:"compressed_tokens"`
	CreatedAt         time.Time           `json:"created_at"`
}

// NewMetadata builds metadata for a fresh result with a new run id.
func NewMetadata(key, source, fingerprint string, result *compress.Result) *Metadata {
	return &Metadata{
		Key:               key,
		RunID:             uuid.NewString(),
		Source:            source,
		DetectedType:      result.DetectedType,
		PolicyFingerprint: fingerprint,
		OriginalTokens:    result.OriginalTokens,
		CompressedTokens:  result.CompressedTokens,
		CreatedAt:         time.Now().UTC(),
	}
}

// IsStale returns true if the entry is at or older than the TTL.
func (m *Metadata) IsStale(ttl time.Duration) bool {
	return time.Since(m.CreatedAt) >= ttl
}

// Age returns human-readable age string.
func (m *Metadata) Age() string {
	duration := time.Since(m.CreatedAt)

	switch {
	case duration < time.Minute:
		return "just now"
	case duration < time.Hour:
		mins := int(duration.Minutes())
		if mins == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", mins)
	case duration < 24*time.Hour:
		hours := int(duration.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	default:
		days := int(duration.Hours() / 24)
		if days == 1 {
			return "1 day ago"
		}
		return fmt.Sprintf("%d days ago", days)
	}
}

// ShortKey returns the first 12 characters of the key for display.
func (m *Metadata) ShortKey() string {
	if len(m.Key) <= 12 {
		return m.Key
	}
	return m.Key[:12]
}
