package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultValidatesWithAPIKey(t *testing.T) {
	cfg := Default()
	cfg.Catalog.APIKey = "test-key"
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidateRequiresAPIKey(t *testing.T) {
	t.Setenv("RAWG_API_KEY", "")
	cfg := Default()
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing api key")
	}
	if !strings.Contains(err.Error(), "catalog.api_key") {
		t.Fatalf("error should name catalog.api_key, got %q", err)
	}
}

func TestAPIKeyEnvFallback(t *testing.T) {
	t.Setenv("RAWG_API_KEY", "env-key")
	cfg := Default()
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if cfg.Catalog.APIKey != "env-key" {
		t.Fatalf("APIKey = %q, want env-key", cfg.Catalog.APIKey)
	}
}

func TestWebhookEnvFallback(t *testing.T) {
	t.Setenv("DISCORD_WEBHOOK", "https://discord.com/api/webhooks/1/abc")
	cfg := Default()
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if cfg.Notifications.DiscordWebhook != "https://discord.com/api/webhooks/1/abc" {
		t.Fatalf("DiscordWebhook = %q", cfg.Notifications.DiscordWebhook)
	}
}

func TestLoadParsesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[catalog]
api_key = "file-key"
page_size = 20

[matching]
similarity_threshold = 0.7

[logging]
format = "json"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists {
		t.Fatal("expected exists = true")
	}
	if resolved != path {
		t.Fatalf("resolved = %q, want %q", resolved, path)
	}
	if cfg.Catalog.APIKey != "file-key" {
		t.Fatalf("APIKey = %q", cfg.Catalog.APIKey)
	}
	if cfg.Catalog.PageSize != 20 {
		t.Fatalf("PageSize = %d, want 20", cfg.Catalog.PageSize)
	}
	if cfg.Matching.SimilarityThreshold != 0.7 {
		t.Fatalf("SimilarityThreshold = %v, want 0.7", cfg.Matching.SimilarityThreshold)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("Format = %q, want json", cfg.Logging.Format)
	}
	// Untouched sections keep defaults.
	if cfg.Storefront.MaxCandidates != defaultMaxCandidates {
		t.Fatalf("MaxCandidates = %d, want default %d", cfg.Storefront.MaxCandidates, defaultMaxCandidates)
	}
}

func TestLoadMissingExplicitPath(t *testing.T) {
	t.Setenv("RAWG_API_KEY", "env-key")
	path := filepath.Join(t.TempDir(), "missing.toml")
	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if exists {
		t.Fatal("expected exists = false")
	}
	if resolved != path {
		t.Fatalf("resolved = %q, want %q", resolved, path)
	}
	if cfg.Catalog.PageSize != defaultCatalogPageSize {
		t.Fatalf("PageSize = %d, want default", cfg.Catalog.PageSize)
	}
}

func TestValidateRejectsBadThresholds(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"similarity above one", func(c *Config) { c.Matching.SimilarityThreshold = 1.5 }},
		{"similarity negative", func(c *Config) { c.Matching.SimilarityThreshold = -0.1 }},
		{"fallback above one", func(c *Config) { c.Matching.FallbackThreshold = 2 }},
		{"fallback negative", func(c *Config) { c.Matching.FallbackThreshold = -1 }},
		{"zero page size", func(c *Config) { c.Catalog.PageSize = 0 }},
		{"bad log format", func(c *Config) { c.Logging.Format = "yaml" }},
		{"zero refresh days", func(c *Config) { c.Pipeline.PriceRefreshDays = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Catalog.APIKey = "key"
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestExpandPathHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}
	got, err := expandPath("~/gamewatch-test")
	if err != nil {
		t.Fatalf("expandPath: %v", err)
	}
	want := filepath.Join(home, "gamewatch-test")
	if got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}

func TestCreateSampleRoundTrip(t *testing.T) {
	t.Setenv("RAWG_API_KEY", "env-key")
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	if _, _, _, err := Load(path); err != nil {
		t.Fatalf("Load sample: %v", err)
	}
}

func TestLockFilePathDefault(t *testing.T) {
	cfg := Default()
	cfg.Paths.LogDir = "/tmp/gamewatch-logs"
	if got := cfg.LockFilePath(); got != filepath.Join("/tmp/gamewatch-logs", "gamewatch.lock") {
		t.Fatalf("LockFilePath = %q", got)
	}
	cfg.Pipeline.LockFile = "/run/custom.lock"
	if got := cfg.LockFilePath(); got != "/run/custom.lock" {
		t.Fatalf("LockFilePath override = %q", got)
	}
}
