package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// UpsertBestPrice records or replaces the best price for a game.
func (s *Store) UpsertBestPrice(ctx context.Context, price BestPrice) error {
	_, err := s.execWithRetry(ctx, `
		INSERT INTO best_prices (game_id, matched_title, price, currency, shop, url, similarity_score, strategy, checked_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(game_id) DO UPDATE SET
			matched_title = excluded.matched_title,
			price = excluded.price,
			currency = excluded.currency,
			shop = excluded.shop,
			url = excluded.url,
			similarity_score = excluded.similarity_score,
			strategy = excluded.strategy,
			checked_at = excluded.checked_at`,
		price.GameID,
		price.MatchedTitle,
		price.Price,
		price.Currency,
		price.Shop,
		price.URL,
		price.SimilarityScore,
		price.Strategy,
		formatTime(price.CheckedAt),
	)
	if err != nil {
		return fmt.Errorf("upsert best price for game %d: %w", price.GameID, err)
	}
	return nil
}

const priceColumns = "game_id, matched_title, price, currency, shop, url, similarity_score, strategy, checked_at"

func scanPrice(scanner interface{ Scan(...any) error }) (BestPrice, error) {
	var (
		price     BestPrice
		checkedAt string
	)
	if err := scanner.Scan(
		&price.GameID,
		&price.MatchedTitle,
		&price.Price,
		&price.Currency,
		&price.Shop,
		&price.URL,
		&price.SimilarityScore,
		&price.Strategy,
		&checkedAt,
	); err != nil {
		return BestPrice{}, err
	}
	price.CheckedAt = parseTime(checkedAt)
	return price, nil
}

// BestPriceByGameID fetches the stored price for a game.
func (s *Store) BestPriceByGameID(ctx context.Context, gameID int64) (BestPrice, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(ctx, "SELECT "+priceColumns+" FROM best_prices WHERE game_id = ?", gameID)
	price, err := scanPrice(row)
	if errors.Is(err, sql.ErrNoRows) {
		return BestPrice{}, fmt.Errorf("best price for game %d: %w", gameID, ErrNotFound)
	}
	if err != nil {
		return BestPrice{}, fmt.Errorf("load best price for game %d: %w", gameID, err)
	}
	return price, nil
}

// ListBestPrices returns stored prices ordered from cheapest. A limit of 0
// means all.
func (s *Store) ListBestPrices(ctx context.Context, limit int) ([]BestPrice, error) {
	ctx = ensureContext(ctx)
	query := "SELECT " + priceColumns + " FROM best_prices ORDER BY price"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list best prices: %w", err)
	}
	defer rows.Close()

	var prices []BestPrice
	for rows.Next() {
		price, err := scanPrice(rows)
		if err != nil {
			return nil, err
		}
		prices = append(prices, price)
	}
	return prices, rows.Err()
}

// CountBestPrices returns the number of stored prices.
func (s *Store) CountBestPrices(ctx context.Context) (int, error) {
	ctx = ensureContext(ctx)
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM best_prices").Scan(&count); err != nil {
		return 0, fmt.Errorf("count best prices: %w", err)
	}
	return count, nil
}
