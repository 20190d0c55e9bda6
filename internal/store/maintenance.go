package store

import (
	"context"
	"fmt"
	"os"
	"time"
)

// Summary aggregates catalog state for diagnostic output.
type Summary struct {
	Games        int
	Priced       int
	StalePrices  int
	OldestCheck  time.Time
	DatabaseSize int64
}

// Summarize gathers row counts and price freshness for status displays.
func (s *Store) Summarize(ctx context.Context, staleCutoff time.Time) (Summary, error) {
	ctx = ensureContext(ctx)

	var summary Summary
	var err error
	if summary.Games, err = s.CountGames(ctx); err != nil {
		return Summary{}, err
	}
	if summary.Priced, err = s.CountBestPrices(ctx); err != nil {
		return Summary{}, err
	}

	if err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM best_prices WHERE checked_at < ?", formatTime(staleCutoff),
	).Scan(&summary.StalePrices); err != nil {
		return Summary{}, fmt.Errorf("count stale prices: %w", err)
	}

	var oldest string
	if err := s.db.QueryRowContext(ctx,
		"SELECT COALESCE(MIN(checked_at), '') FROM best_prices",
	).Scan(&oldest); err != nil {
		return Summary{}, fmt.Errorf("oldest price check: %w", err)
	}
	if oldest != "" {
		summary.OldestCheck = parseTime(oldest)
	}

	if info, err := os.Stat(s.path); err == nil {
		summary.DatabaseSize = info.Size()
	}

	return summary, nil
}

// CheckHealth verifies the database responds and the expected tables exist.
func (s *Store) CheckHealth(ctx context.Context) error {
	ctx = ensureContext(ctx)
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database %s: %w", s.path, err)
	}
	for _, table := range []string{"games", "best_prices", "settings"} {
		var name string
		if err := s.db.QueryRowContext(ctx,
			"SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table,
		).Scan(&name); err != nil {
			return fmt.Errorf("table %q missing: %w", table, err)
		}
	}
	return nil
}

// Vacuum compacts the database file.
func (s *Store) Vacuum(ctx context.Context) error {
	ctx = ensureContext(ctx)
	if _, err := s.db.ExecContext(ctx, "VACUUM"); err != nil {
		return fmt.Errorf("vacuum: %w", err)
	}
	return nil
}
