package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewPaths(t *testing.T) {
	home := os.Getenv("HOME")
	paths := NewPaths()

	if want := filepath.Join(home, ".config", "condense", "config.yaml"); paths.ConfigFile != want {
		t.Errorf("ConfigFile = %q, want %q", paths.ConfigFile, want)
	}
	if want := filepath.Join(home, ".cache", "condense", "results"); paths.ResultsDir != want {
		t.Errorf("ResultsDir = %q, want %q", paths.ResultsDir, want)
	}
}

func TestPaths_ResultFiles(t *testing.T) {
	tempDir := t.TempDir()
	paths := NewPathsWithOverrides(tempDir, tempDir)

	result := paths.ResultFile("abc123")
	meta := paths.ResultMetaFile("abc123")

	if !strings.HasPrefix(result, paths.ResultsDir) || !strings.HasSuffix(result, "abc123.json") {
		t.Errorf("ResultFile() = %q", result)
	}
	if !strings.HasPrefix(meta, paths.ResultsDir) || !strings.HasSuffix(meta, "abc123.meta.json") {
		t.Errorf("ResultMetaFile() = %q", meta)
	}
}

func TestExpandEnvWithDefaults(t *testing.T) {
	t.Setenv("CONDENSE_SET", "value")

	tests := []struct {
		input string
		want  string
	}{
		{"${CONDENSE_SET}", "value"},
		{"${CONDENSE_SET:-fallback}", "value"},
		{"${CONDENSE_UNSET_VAR:-fallback}", "fallback"},
		{"${CONDENSE_UNSET_VAR}", ""},
		{"plain $HOME text", "plain $HOME text"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := expandEnvWithDefaults(tt.input); got != tt.want {
				t.Errorf("expandEnvWithDefaults(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
