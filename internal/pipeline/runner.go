package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"gamewatch/internal/catalog"
	"gamewatch/internal/config"
	"gamewatch/internal/logging"
	"gamewatch/internal/matching"
	"gamewatch/internal/notifications"
	"gamewatch/internal/pricing"
	"gamewatch/internal/store"
)

// ErrAlreadyRunning indicates another gamewatch pipeline holds the lock.
var ErrAlreadyRunning = errors.New("another gamewatch run is in progress")

// CatalogClient fetches pages of games from the upstream catalog.
type CatalogClient interface {
	FetchGames(ctx context.Context, limit, startPage int) ([]catalog.Game, int, error)
}

// Runner coordinates the sync, enrichment, and maintenance stages and
// enforces single-instance execution via a lock file.
type Runner struct {
	cfg      *config.Config
	store    *store.Store
	catalog  CatalogClient
	searcher pricing.Searcher
	matcher  *matching.Matcher
	notifier notifications.Service
	logger   *slog.Logger
	lock     *flock.Flock
}

// New constructs a pipeline runner with initialized dependencies.
func New(cfg *config.Config, st *store.Store, catalogClient CatalogClient, searcher pricing.Searcher, notifier notifications.Service, logger *slog.Logger) (*Runner, error) {
	if cfg == nil || st == nil || catalogClient == nil || searcher == nil {
		return nil, errors.New("pipeline requires config, store, catalog client, and searcher")
	}
	if notifier == nil {
		notifier = notifications.NewService(cfg)
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Runner{
		cfg:      cfg,
		store:    st,
		catalog:  catalogClient,
		searcher: searcher,
		matcher: matching.NewMatcher(
			matching.WithThreshold(cfg.Matching.SimilarityThreshold),
			matching.WithFallbackThreshold(cfg.Matching.FallbackThreshold),
		),
		notifier: notifier,
		logger:   logging.WithComponent(logger, "pipeline"),
		lock:     flock.New(cfg.LockFilePath()),
	}, nil
}

// Run executes a full pipeline pass: catalog sync, price enrichment, then
// maintenance. Only one run may be active per lock file.
func (r *Runner) Run(ctx context.Context) error {
	ok, err := r.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return ErrAlreadyRunning
	}
	defer func() {
		if unlockErr := r.lock.Unlock(); unlockErr != nil {
			r.logger.Warn("failed to release pipeline lock", logging.Error(unlockErr))
		}
	}()

	sessionID := uuid.NewString()
	ctx = logging.WithSessionID(ctx, sessionID)
	logger := logging.WithContext(ctx, r.logger)
	logger.Info("pipeline run started", logging.String("lock", r.cfg.LockFilePath()))

	if _, err := r.Sync(ctx); err != nil {
		r.notifyError(ctx, err, "catalog sync")
		return err
	}
	if _, err := r.Enrich(ctx); err != nil {
		r.notifyError(ctx, err, "price enrichment")
		return err
	}
	r.Maintain(ctx)

	logger.Info("pipeline run finished")
	return nil
}

// Sync pulls the next batch of games from the catalog API and stores them.
// Paging position persists in settings so successive syncs walk the catalog.
func (r *Runner) Sync(ctx context.Context) (int, error) {
	logger := logging.WithContext(ctx, r.logger)
	started := time.Now()

	startPage := 1
	if value, ok, err := r.store.GetSetting(ctx, store.SettingCatalogLastPage); err != nil {
		return 0, err
	} else if ok {
		if page, convErr := strconv.Atoi(value); convErr == nil && page > 0 {
			startPage = page + 1
		}
	}

	logger.Info("catalog sync started",
		logging.Int("start_page", startPage),
		logging.Int("limit", r.cfg.Catalog.GamesPerSync),
	)

	games, lastPage, err := r.catalog.FetchGames(ctx, r.cfg.Catalog.GamesPerSync, startPage)
	if err != nil {
		return 0, fmt.Errorf("fetch games: %w", err)
	}

	if len(games) == 0 {
		// Catalog exhausted; wrap around on the next sync.
		if err := r.store.DeleteSetting(ctx, store.SettingCatalogLastPage); err != nil {
			return 0, err
		}
		logger.Info("catalog exhausted, paging reset")
		return 0, nil
	}

	if err := r.store.UpsertGames(ctx, toStoreGames(games)); err != nil {
		return 0, fmt.Errorf("store games: %w", err)
	}
	if err := r.store.SetSetting(ctx, store.SettingCatalogLastPage, strconv.Itoa(lastPage)); err != nil {
		return 0, err
	}
	if err := r.store.SetSetting(ctx, store.SettingCatalogLastSync, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return 0, err
	}

	duration := time.Since(started)
	logger.Info("catalog sync finished",
		logging.Int("games", len(games)),
		logging.Int("last_page", lastPage),
		logging.Duration("duration", duration),
	)
	if err := r.notifier.NotifySyncCompleted(ctx, len(games), duration); err != nil {
		logger.Warn("sync notification failed", logging.Error(err))
	}
	return len(games), nil
}

// Enrich runs one price enrichment session over games with missing or stale
// prices.
func (r *Runner) Enrich(ctx context.Context) (pricing.Summary, error) {
	logger := logging.WithContext(ctx, r.logger)

	enricher := pricing.NewEnricher(r.store, r.searcher, r.matcher, r.notifier, logging.WithContext(ctx, r.logger), pricing.Options{
		MaxGames:     r.cfg.Storefront.MaxGamesPerSession,
		RefreshAfter: time.Duration(r.cfg.Pipeline.PriceRefreshDays) * 24 * time.Hour,
		DelayBetween: time.Duration(r.cfg.Storefront.DelayBetweenRequests * float64(time.Second)),
	})

	summary, err := enricher.Run(ctx)
	if err != nil {
		return summary, err
	}

	if err := r.store.SetSetting(ctx, store.SettingLastEnrichment, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return summary, err
	}
	if err := r.notifier.NotifyEnrichmentCompleted(ctx, summary.Matched, summary.Failed, summary.Skipped, summary.Duration); err != nil {
		logger.Warn("enrichment notification failed", logging.Error(err))
	}
	return summary, nil
}

// Maintain prunes old logs and compacts the database. Failures are logged,
// not fatal.
func (r *Runner) Maintain(ctx context.Context) {
	logger := logging.WithContext(ctx, r.logger)

	removed := logging.CleanupOldLogs(logger, r.cfg.Logging.RetentionDays, logging.RetentionTarget{
		Dir:     r.cfg.Paths.LogDir,
		Pattern: "*.log",
		Exclude: []string{r.cfg.Paths.LogDir + "/" + logging.LogFileName},
	})
	if err := r.store.Vacuum(ctx); err != nil {
		logger.Warn("database vacuum failed", logging.Error(err))
	}
	logger.Info("maintenance finished", logging.Int("logs_pruned", removed))
}

func (r *Runner) notifyError(ctx context.Context, err error, label string) {
	if notifyErr := r.notifier.NotifyError(ctx, err, label); notifyErr != nil {
		logging.WithContext(ctx, r.logger).Warn("error notification failed", logging.Error(notifyErr))
	}
}

func toStoreGames(games []catalog.Game) []store.Game {
	out := make([]store.Game, len(games))
	for i, game := range games {
		out[i] = store.Game{
			ID:              game.ID,
			Name:            game.Name,
			Released:        game.Released,
			Rating:          game.Rating,
			Metacritic:      game.Metacritic,
			Genres:          game.Genres,
			Platforms:       game.Platforms,
			BackgroundImage: game.BackgroundImage,
		}
	}
	return out
}
