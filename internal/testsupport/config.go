package testsupport

import (
	"path/filepath"
	"testing"

	"gamewatch/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Catalog.APIKey = "test"
	cfg.Catalog.RateLimitDelay = 0
	cfg.Storefront.DelayBetweenRequests = 0

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithAPIKey sets the catalog API key on the test config.
func WithAPIKey(key string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Catalog.APIKey = key
	}
}

// WithWebhook sets the Discord webhook on the test config.
func WithWebhook(url string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Notifications.DiscordWebhook = url
	}
}
