package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/HartBrook/condense/internal/compress"
	"github.com/HartBrook/condense/internal/errors"
	"github.com/HartBrook/condense/internal/logging"
)

func TestParseRepo(t *testing.T) {
	tests := []struct {
		name      string
		repo      string
		wantOwner string
		wantRepo  string
		wantErr   bool
	}{
		{
			name:      "full github.com URL",
			repo:      "github.com/acme/prompts",
			wantOwner: "acme",
			wantRepo:  "prompts",
		},
		{
			name:      "https URL",
			repo:      "https://github.com/acme/prompts",
			wantOwner: "acme",
			wantRepo:  "prompts",
		},
		{
			name:      "short format",
			repo:      "acme/prompts",
			wantOwner: "acme",
			wantRepo:  "prompts",
		},
		{
			name:      "with dots",
			repo:      "org.name/repo.name",
			wantOwner: "org.name",
			wantRepo:  "repo.name",
		},
		{
			name:      "https URL with .git suffix",
			repo:      "https://github.com/acme/prompts.git",
			wantOwner: "acme",
			wantRepo:  "prompts",
		},
		{
			name:      "blob URL",
			repo:      "https://github.com/acme/prompts/blob/main/review.md",
			wantOwner: "acme",
			wantRepo:  "prompts",
		},
		{
			name:    "empty",
			repo:    "",
			wantErr: true,
		},
		{
			name:    "owner only",
			repo:    "acme",
			wantErr: true,
		},
		{
			name:    "invalid characters",
			repo:    "acme/pro mpts",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			owner, repo, err := ParseRepo(tt.repo)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseRepo(%q) expected error", tt.repo)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRepo(%q) error: %v", tt.repo, err)
			}
			if owner != tt.wantOwner || repo != tt.wantRepo {
				t.Errorf("ParseRepo(%q) = %q, %q, want %q, %q", tt.repo, owner, repo, tt.wantOwner, tt.wantRepo)
			}
		})
	}
}

func TestParsePromptSource(t *testing.T) {
	tests := []struct {
		name    string
		repo    string
		path    string
		ref     string
		want    PromptSource
		wantErr bool
	}{
		{
			name: "explicit path",
			repo: "acme/prompts",
			path: "/review.md",
			want: PromptSource{Owner: "acme", Repo: "prompts", Path: "review.md"},
		},
		{
			name: "blob URL",
			repo: "https://github.com/acme/prompts/blob/v2/prompts/review.md",
			want: PromptSource{Owner: "acme", Repo: "prompts", Path: "prompts/review.md", Ref: "v2"},
		},
		{
			name: "flags override URL",
			repo: "https://github.com/acme/prompts/blob/v2/prompts/review.md",
			path: "other.md",
			ref:  "main",
			want: PromptSource{Owner: "acme", Repo: "prompts", Path: "other.md", Ref: "main"},
		},
		{
			name:    "missing path",
			repo:    "acme/prompts",
			wantErr: true,
		},
		{
			name:    "bad repo",
			repo:    "not a repo",
			path:    "x.md",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePromptSource(tt.repo, tt.path, tt.ref)
			if tt.wantErr {
				typed, ok := err.(*errors.Error)
				if !ok || typed.Code != errors.ErrInvalidRepo {
					t.Errorf("ParsePromptSource() error = %v, want INVALID_REPO", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePromptSource() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParsePromptSource() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestPromptSource_String(t *testing.T) {
	src := PromptSource{Owner: "acme", Repo: "prompts", Path: "a.md", Ref: "main"}
	if got := src.String(); got != "acme/prompts:a.md@main" {
		t.Errorf("String() = %q", got)
	}
	src.Ref = ""
	if got := src.String(); got != "acme/prompts:a.md" {
		t.Errorf("String() = %q", got)
	}
}

func TestConfigValidation(t *testing.T) {
	minOver := 60
	maxUnder := 40

	tests := []struct {
		name     string
		cfg      Config
		wantCode errors.ErrorCode
	}{
		{
			name: "valid defaults",
			cfg:  *Default(),
		},
		{
			name:     "bad ttl",
			cfg:      Config{Cache: CacheConfig{TTL: "tomorrow"}},
			wantCode: errors.ErrConfigInvalid,
		},
		{
			name:     "bad log format",
			cfg:      Config{Logging: logging.Config{Format: "xml"}},
			wantCode: errors.ErrConfigInvalid,
		},
		{
			name:     "unknown prompt type",
			cfg:      Config{Policies: map[string]PolicyConfig{"poetry": {}}},
			wantCode: errors.ErrUnknownPromptType,
		},
		{
			name:     "inverted band",
			cfg:      Config{Policies: map[string]PolicyConfig{"code": {Min: &minOver, Max: &maxUnder}}},
			wantCode: errors.ErrPolicyInvalid,
		},
		{
			name:     "unknown technique",
			cfg:      Config{Policies: map[string]PolicyConfig{"code": {Allowed: []string{"telepathy"}}}},
			wantCode: errors.ErrPolicyInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantCode == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			typed, ok := err.(*errors.Error)
			if !ok {
				t.Fatalf("Validate() error = %v, want *errors.Error", err)
			}
			if typed.Code != tt.wantCode {
				t.Errorf("Validate() code = %s, want %s", typed.Code, tt.wantCode)
			}
		})
	}
}

func TestConfigDefaults(t *testing.T) {
	cfg := &Config{}

	cfg.applyDefaults()

	if cfg.Version != DefaultVersion {
		t.Errorf("Version = %d, want %d", cfg.Version, DefaultVersion)
	}
	if cfg.Cache.TTL != DefaultCacheTTL {
		t.Errorf("TTL = %q, want %q", cfg.Cache.TTL, DefaultCacheTTL)
	}
	if !cfg.CacheEnabled() {
		t.Error("cache should be enabled by default")
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want warn", cfg.Logging.Level)
	}
}

func TestLoadAndSave(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "nested", "config.yaml")

	disabled := false
	minBand := 10
	original := &Config{
		Version: 1,
		Cache: CacheConfig{
			Enabled: &disabled,
			TTL:     "12h",
		},
		GitHub:   GitHubConfig{Ref: "main"},
		Policies: map[string]PolicyConfig{"code": {Min: &minBand}},
	}

	// Save
	if err := SaveTo(original, configPath); err != nil {
		t.Fatalf("SaveTo() error: %v", err)
	}

	if !Exists(configPath) {
		t.Fatalf("Exists(%q) = false after SaveTo", configPath)
	}

	// Load
	loaded, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}

	if loaded.Cache.TTL != "12h" {
		t.Errorf("TTL = %q, want %q", loaded.Cache.TTL, "12h")
	}
	if loaded.CacheEnabled() {
		t.Error("cache should be disabled after round trip")
	}
	if loaded.GitHub.Ref != "main" {
		t.Errorf("GitHub.Ref = %q, want main", loaded.GitHub.Ref)
	}
	table, err := loaded.PolicyTable()
	if err != nil {
		t.Fatalf("PolicyTable() error: %v", err)
	}
	if got := table.Lookup(compress.TypeCode).TargetReductionMin; got != 10 {
		t.Errorf("code min = %d, want 10", got)
	}
}

func TestLoadNotFound(t *testing.T) {
	if Exists("/nonexistent/path/config.yaml") {
		t.Error("Exists() should be false for a missing file")
	}

	_, err := LoadFrom("/nonexistent/path/config.yaml")
	typed, ok := err.(*errors.Error)
	if !ok || typed.Code != errors.ErrConfigNotFound {
		t.Errorf("LoadFrom() error = %v, want CONFIG_NOT_FOUND", err)
	}
}

func TestLoadOrDefault(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadOrDefault() error: %v", err)
	}
	if cfg.Cache.TTL != DefaultCacheTTL {
		t.Errorf("TTL = %q, want default", cfg.Cache.TTL)
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("version: ["), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadOrDefault(bad); err == nil {
		t.Error("LoadOrDefault() expected parse error")
	}
}

func TestParse_EnvExpansion(t *testing.T) {
	t.Setenv("CONDENSE_TEST_TTL", "6h")

	cfg, err := Parse([]byte("cache:\n  ttl: ${CONDENSE_TEST_TTL}\nlogging:\n  level: ${CONDENSE_TEST_LEVEL:-debug}\n"))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if cfg.Cache.TTL != "6h" {
		t.Errorf("TTL = %q, want 6h", cfg.Cache.TTL)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
}

func TestPolicyTable_Overrides(t *testing.T) {
	maxExamples := 2
	cfg := &Config{Policies: map[string]PolicyConfig{
		"few-shot": {MaxExamples: &maxExamples, Risky: []string{}},
		"visual":   {Allowed: []string{"list_to_prose", "intensifiers removed"}},
	}}

	table, err := cfg.PolicyTable()
	if err != nil {
		t.Fatalf("PolicyTable() error: %v", err)
	}

	fewshot := table.Lookup(compress.TypeFewShot)
	if fewshot.MaxExamples != 2 {
		t.Errorf("fewshot MaxExamples = %d, want 2", fewshot.MaxExamples)
	}
	if fewshot.TargetReductionMin != 35 {
		t.Errorf("fewshot min = %d, want built-in 35", fewshot.TargetReductionMin)
	}
	if len(fewshot.RiskyTechniques) != 0 {
		t.Errorf("fewshot risky = %v, want none", fewshot.RiskyTechniques)
	}

	visual := table.Lookup(compress.TypeVisual)
	if len(visual.AllowedTechniques) != 2 || visual.Allows(compress.TechniqueMergeSections) {
		t.Errorf("visual allowed = %v", visual.AllowedTechniques)
	}

	if table.Fingerprint() == compress.DefaultPolicies().Fingerprint() {
		t.Error("fingerprint should change with overrides")
	}
}

func TestTTLDuration(t *testing.T) {
	tests := []struct {
		ttl     string
		wantHrs int
	}{
		{"24h", 24},
		{"1h", 1},
		{"168h", 168},
		{"invalid", 168}, // Falls back to default
		{"", 168},        // Falls back to default
	}

	for _, tt := range tests {
		t.Run(tt.ttl, func(t *testing.T) {
			cfg := CacheConfig{TTL: tt.ttl}
			d := cfg.TTLDuration()
			gotHrs := int(d.Hours())
			if gotHrs != tt.wantHrs {
				t.Errorf("TTLDuration() = %d hours, want %d", gotHrs, tt.wantHrs)
			}
		})
	}
}
