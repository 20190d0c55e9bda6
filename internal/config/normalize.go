package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeCatalog()
	c.normalizeStorefront()
	c.normalizeNotifications()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Pipeline.LockFile) != "" {
		if c.Pipeline.LockFile, err = expandPath(c.Pipeline.LockFile); err != nil {
			return fmt.Errorf("pipeline.lock_file: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizeCatalog() {
	c.Catalog.APIKey = strings.TrimSpace(c.Catalog.APIKey)
	if c.Catalog.APIKey == "" {
		c.Catalog.APIKey = strings.TrimSpace(os.Getenv("RAWG_API_KEY"))
	}
	c.Catalog.BaseURL = strings.TrimRight(strings.TrimSpace(c.Catalog.BaseURL), "/")
	if c.Catalog.BaseURL == "" {
		c.Catalog.BaseURL = defaultCatalogBaseURL
	}
	if c.Catalog.PageSize <= 0 {
		c.Catalog.PageSize = defaultCatalogPageSize
	}
	if c.Catalog.GamesPerSync <= 0 {
		c.Catalog.GamesPerSync = defaultGamesPerSync
	}
	if c.Catalog.RateLimitDelay < 0 {
		c.Catalog.RateLimitDelay = defaultRateLimitDelay
	}
}

func (c *Config) normalizeStorefront() {
	c.Storefront.BaseURL = strings.TrimRight(strings.TrimSpace(c.Storefront.BaseURL), "/")
	if c.Storefront.BaseURL == "" {
		c.Storefront.BaseURL = defaultStorefrontBaseURL
	}
	if c.Storefront.MaxCandidates <= 0 {
		c.Storefront.MaxCandidates = defaultMaxCandidates
	}
	if c.Storefront.RequestTimeout <= 0 {
		c.Storefront.RequestTimeout = defaultStorefrontTimeout
	}
	if c.Storefront.MaxGamesPerSession <= 0 {
		c.Storefront.MaxGamesPerSession = defaultMaxGamesPerSession
	}
	if c.Storefront.DelayBetweenRequests < 0 {
		c.Storefront.DelayBetweenRequests = defaultDelayBetweenRequests
	}
}

func (c *Config) normalizeNotifications() {
	c.Notifications.DiscordWebhook = strings.TrimSpace(c.Notifications.DiscordWebhook)
	if c.Notifications.DiscordWebhook == "" {
		c.Notifications.DiscordWebhook = strings.TrimSpace(os.Getenv("DISCORD_WEBHOOK"))
	}
	if c.Notifications.RequestTimeout <= 0 {
		c.Notifications.RequestTimeout = defaultNotifyTimeout
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.RetentionDays < 0 {
		c.Logging.RetentionDays = defaultLogRetentionDays
	}
}
