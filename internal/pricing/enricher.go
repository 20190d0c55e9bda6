package pricing

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"gamewatch/internal/logging"
	"gamewatch/internal/matching"
	"gamewatch/internal/notifications"
	"gamewatch/internal/store"
	"gamewatch/internal/storefront"
)

// PriceStore is the persistence surface the enricher needs.
type PriceStore interface {
	GamesNeedingPrices(ctx context.Context, olderThan time.Time, limit int) ([]store.Game, error)
	UpsertBestPrice(ctx context.Context, price store.BestPrice) error
}

// Searcher finds storefront listings and their prices.
type Searcher interface {
	Search(ctx context.Context, query string) ([]storefront.Result, error)
	FetchPrice(ctx context.Context, listingURL string) (storefront.Price, error)
}

// Options tunes an enrichment session.
type Options struct {
	MaxGames        int
	RefreshAfter    time.Duration
	DelayBetween    time.Duration
	NotifyEachPrice bool
}

// Summary reports what an enrichment session did.
type Summary struct {
	Processed int
	Matched   int
	Skipped   int
	Failed    int
	Duration  time.Duration
}

// Enricher walks games with missing or stale prices, matches them against
// storefront listings, and stores the best price found.
type Enricher struct {
	store    PriceStore
	searcher Searcher
	matcher  *matching.Matcher
	notifier notifications.Service
	logger   *slog.Logger
	opts     Options
}

// NewEnricher wires an enrichment session. A nil notifier disables
// notifications; a nil logger discards output.
func NewEnricher(priceStore PriceStore, searcher Searcher, matcher *matching.Matcher, notifier notifications.Service, logger *slog.Logger, opts Options) *Enricher {
	if matcher == nil {
		matcher = matching.NewMatcher()
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	if opts.MaxGames <= 0 {
		opts.MaxGames = 50
	}
	if opts.RefreshAfter <= 0 {
		opts.RefreshAfter = 7 * 24 * time.Hour
	}
	return &Enricher{
		store:    priceStore,
		searcher: searcher,
		matcher:  matcher,
		notifier: notifier,
		logger:   logging.WithComponent(logger, "pricing"),
		opts:     opts,
	}
}

// Run performs one enrichment session. It stops early when the context is
// cancelled, returning the partial summary alongside the context error.
func (e *Enricher) Run(ctx context.Context) (Summary, error) {
	started := time.Now()
	summary := Summary{}

	cutoff := time.Now().Add(-e.opts.RefreshAfter)
	games, err := e.store.GamesNeedingPrices(ctx, cutoff, e.opts.MaxGames)
	if err != nil {
		return summary, err
	}

	e.logger.Info("enrichment started",
		logging.Int("games", len(games)),
		logging.Bool("vector_mode", e.matcher.VectorMode()),
	)

	for i, game := range games {
		if i > 0 && e.opts.DelayBetween > 0 {
			select {
			case <-time.After(e.opts.DelayBetween):
			case <-ctx.Done():
				summary.Duration = time.Since(started)
				return summary, ctx.Err()
			}
		}
		if err := ctx.Err(); err != nil {
			summary.Duration = time.Since(started)
			return summary, err
		}

		summary.Processed++
		if err := e.enrichGame(ctx, game, &summary); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				summary.Duration = time.Since(started)
				return summary, err
			}
			summary.Failed++
			e.logger.Warn("enrichment failed for game",
				logging.Int64(logging.FieldGameID, game.ID),
				logging.String("name", game.Name),
				logging.Error(err),
			)
		}
	}

	summary.Duration = time.Since(started)
	e.logger.Info("enrichment finished",
		logging.Int("processed", summary.Processed),
		logging.Int("matched", summary.Matched),
		logging.Int("skipped", summary.Skipped),
		logging.Int("failed", summary.Failed),
		logging.Duration("duration", summary.Duration),
	)
	return summary, nil
}

func (e *Enricher) enrichGame(ctx context.Context, game store.Game, summary *Summary) error {
	results, err := e.searcher.Search(ctx, game.Name)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		summary.Skipped++
		e.logger.Debug("no storefront listings",
			logging.Int64(logging.FieldGameID, game.ID),
			logging.String("name", game.Name),
		)
		return nil
	}

	titles := make([]string, len(results))
	for i, result := range results {
		titles[i] = result.Title
	}

	match := e.matcher.FindBestMatch(game.Name, titles)
	if !match.Found() {
		summary.Skipped++
		e.logger.Info("no listing cleared the threshold",
			logging.Int64(logging.FieldGameID, game.ID),
			logging.String("name", game.Name),
			logging.Float64(logging.FieldScore, match.Score),
			logging.String(logging.FieldStrategy, match.Strategy()),
			logging.Int("candidates", len(titles)),
		)
		return nil
	}

	listing := results[match.Index]
	price, err := e.searcher.FetchPrice(ctx, listing.URL)
	if err != nil {
		return err
	}

	record := store.BestPrice{
		GameID:          game.ID,
		MatchedTitle:    listing.Title,
		Price:           price.Amount,
		Currency:        price.Currency,
		Shop:            price.Shop,
		URL:             price.URL,
		SimilarityScore: match.Score,
		Strategy:        match.Strategy(),
		CheckedAt:       time.Now(),
	}
	if err := e.store.UpsertBestPrice(ctx, record); err != nil {
		return err
	}

	summary.Matched++
	e.logger.Info("best price stored",
		logging.Int64(logging.FieldGameID, game.ID),
		logging.String("name", game.Name),
		logging.String("matched_title", listing.Title),
		logging.Float64("price", price.Amount),
		logging.String("currency", price.Currency),
		logging.String("shop", price.Shop),
		logging.Float64(logging.FieldScore, match.Score),
		logging.String(logging.FieldStrategy, match.Strategy()),
	)

	if e.notifier != nil && e.opts.NotifyEachPrice {
		if err := e.notifier.NotifyPriceFound(ctx, game.Name, price.Amount, price.Currency, price.Shop, match.Score); err != nil {
			e.logger.Warn("price notification failed", logging.Error(err))
		}
	}
	return nil
}
