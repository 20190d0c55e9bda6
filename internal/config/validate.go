package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateCatalog(); err != nil {
		return err
	}
	if err := c.validateStorefront(); err != nil {
		return err
	}
	if err := c.validateMatching(); err != nil {
		return err
	}
	if err := c.validateNotifications(); err != nil {
		return err
	}
	if err := c.validatePipeline(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateCatalog() error {
	if c.Catalog.APIKey == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/gamewatch/config.toml"
		}
		return fmt.Errorf("catalog.api_key is required. Set RAWG_API_KEY env var or edit %s (create with 'gamewatch config init')", defaultPath)
	}
	if err := ensurePositiveMap(map[string]int{
		"catalog.page_size":      c.Catalog.PageSize,
		"catalog.games_per_sync": c.Catalog.GamesPerSync,
	}); err != nil {
		return err
	}
	if c.Catalog.RateLimitDelay < 0 {
		return errors.New("catalog.rate_limit_delay must not be negative")
	}
	return nil
}

func (c *Config) validateStorefront() error {
	if c.Storefront.BaseURL == "" {
		return errors.New("storefront.base_url must be set")
	}
	if err := ensurePositiveMap(map[string]int{
		"storefront.max_candidates":        c.Storefront.MaxCandidates,
		"storefront.request_timeout":       c.Storefront.RequestTimeout,
		"storefront.max_games_per_session": c.Storefront.MaxGamesPerSession,
	}); err != nil {
		return err
	}
	if c.Storefront.DelayBetweenRequests < 0 {
		return errors.New("storefront.delay_between_requests must not be negative")
	}
	return nil
}

func (c *Config) validateMatching() error {
	if c.Matching.SimilarityThreshold < 0 || c.Matching.SimilarityThreshold > 1 {
		return errors.New("matching.similarity_threshold must be between 0 and 1")
	}
	if c.Matching.FallbackThreshold < 0 || c.Matching.FallbackThreshold > 1 {
		return errors.New("matching.fallback_threshold must be between 0 and 1")
	}
	return nil
}

func (c *Config) validateNotifications() error {
	if c.Notifications.RequestTimeout <= 0 {
		return errors.New("notifications.request_timeout must be positive")
	}
	return nil
}

func (c *Config) validatePipeline() error {
	if c.Pipeline.PriceRefreshDays <= 0 {
		return errors.New("pipeline.price_refresh_days must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	if c.Logging.RetentionDays < 0 {
		return errors.New("logging.retention_days must not be negative")
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
