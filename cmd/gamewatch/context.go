package main

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"gamewatch/internal/catalog"
	"gamewatch/internal/config"
	"gamewatch/internal/logging"
	"gamewatch/internal/notifications"
	"gamewatch/internal/pipeline"
	"gamewatch/internal/store"
	"gamewatch/internal/storefront"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) newLogger() (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return logging.NewFromConfig(cfg)
}

func (c *commandContext) openStore() (*store.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return store.Open(cfg)
}

func (c *commandContext) newRunner() (*pipeline.Runner, *store.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, err := c.newLogger()
	if err != nil {
		return nil, nil, err
	}
	st, err := store.Open(cfg)
	if err != nil {
		return nil, nil, err
	}

	catalogClient := catalog.NewClient(cfg.Catalog.APIKey,
		catalog.WithBaseURL(cfg.Catalog.BaseURL),
		catalog.WithPageSize(cfg.Catalog.PageSize),
		catalog.WithRateLimitDelay(time.Duration(cfg.Catalog.RateLimitDelay*float64(time.Second))),
	)
	searcher := storefront.NewClient(
		storefront.WithBaseURL(cfg.Storefront.BaseURL),
		storefront.WithMaxCandidates(cfg.Storefront.MaxCandidates),
		storefront.WithTimeout(time.Duration(cfg.Storefront.RequestTimeout)*time.Second),
	)
	notifier := notifications.NewService(cfg)

	runner, err := pipeline.New(cfg, st, catalogClient, searcher, notifier, logger)
	if err != nil {
		_ = st.Close()
		return nil, nil, err
	}
	return runner, st, nil
}
