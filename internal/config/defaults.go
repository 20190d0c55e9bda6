package config

const (
	defaultDataDir              = "~/.local/share/gamewatch"
	defaultLogDir               = "~/.local/share/gamewatch/logs"
	defaultCatalogBaseURL       = "https://api.rawg.io/api"
	defaultCatalogPageSize      = 40
	defaultGamesPerSync         = 500
	defaultRateLimitDelay       = 1.0
	defaultStorefrontBaseURL    = "https://www.dlcompare.com"
	defaultMaxCandidates        = 10
	defaultStorefrontTimeout    = 15
	defaultMaxGamesPerSession   = 50
	defaultDelayBetweenRequests = 3.0
	defaultSimilarityThreshold  = 0.6
	defaultFallbackThreshold    = 0.3
	defaultNotifyTimeout        = 10
	defaultPriceRefreshDays     = 7
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
	defaultLogRetentionDays     = 14
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Catalog: Catalog{
			BaseURL:        defaultCatalogBaseURL,
			PageSize:       defaultCatalogPageSize,
			GamesPerSync:   defaultGamesPerSync,
			RateLimitDelay: defaultRateLimitDelay,
		},
		Storefront: Storefront{
			BaseURL:              defaultStorefrontBaseURL,
			MaxCandidates:        defaultMaxCandidates,
			RequestTimeout:       defaultStorefrontTimeout,
			MaxGamesPerSession:   defaultMaxGamesPerSession,
			DelayBetweenRequests: defaultDelayBetweenRequests,
		},
		Matching: Matching{
			SimilarityThreshold: defaultSimilarityThreshold,
			FallbackThreshold:   defaultFallbackThreshold,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyTimeout,
			Sync:           true,
			Enrichment:     true,
			Errors:         true,
		},
		Pipeline: Pipeline{
			PriceRefreshDays: defaultPriceRefreshDays,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}
