package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound indicates the requested row does not exist.
var ErrNotFound = errors.New("not found")

// UpsertGames inserts or refreshes catalog entries in a single transaction.
// Existing rows keep their created_at; everything else is overwritten.
func (s *Store) UpsertGames(ctx context.Context, games []Game) error {
	if len(games) == 0 {
		return nil
	}
	ctx = ensureContext(ctx)
	return retryOnBusy(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin upsert tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO games (id, name, released, rating, metacritic, genres, platforms, background_image, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				name = excluded.name,
				released = excluded.released,
				rating = excluded.rating,
				metacritic = excluded.metacritic,
				genres = excluded.genres,
				platforms = excluded.platforms,
				background_image = excluded.background_image,
				updated_at = excluded.updated_at`)
		if err != nil {
			return fmt.Errorf("prepare upsert: %w", err)
		}
		defer stmt.Close()

		now := formatTime(time.Now())
		for _, game := range games {
			if _, err := stmt.ExecContext(ctx,
				game.ID,
				game.Name,
				game.Released,
				game.Rating,
				game.Metacritic,
				joinList(game.Genres),
				joinList(game.Platforms),
				game.BackgroundImage,
				now,
				now,
			); err != nil {
				return fmt.Errorf("upsert game %d: %w", game.ID, err)
			}
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit upsert: %w", err)
		}
		return nil
	})
}

const gameColumns = "id, name, released, rating, metacritic, genres, platforms, background_image, created_at, updated_at"

func scanGame(scanner interface{ Scan(...any) error }) (Game, error) {
	var (
		game                 Game
		genres, platforms    string
		createdAt, updatedAt string
	)
	if err := scanner.Scan(
		&game.ID,
		&game.Name,
		&game.Released,
		&game.Rating,
		&game.Metacritic,
		&genres,
		&platforms,
		&game.BackgroundImage,
		&createdAt,
		&updatedAt,
	); err != nil {
		return Game{}, err
	}
	game.Genres = splitList(genres)
	game.Platforms = splitList(platforms)
	game.CreatedAt = parseTime(createdAt)
	game.UpdatedAt = parseTime(updatedAt)
	return game, nil
}

// GameByID fetches a single catalog entry.
func (s *Store) GameByID(ctx context.Context, id int64) (Game, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(ctx, "SELECT "+gameColumns+" FROM games WHERE id = ?", id)
	game, err := scanGame(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Game{}, fmt.Errorf("game %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return Game{}, fmt.Errorf("load game %d: %w", id, err)
	}
	return game, nil
}

// ListGames returns catalog entries ordered by name. A limit of 0 means all.
func (s *Store) ListGames(ctx context.Context, limit int) ([]Game, error) {
	ctx = ensureContext(ctx)
	query := "SELECT " + gameColumns + " FROM games ORDER BY name"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	defer rows.Close()

	var games []Game
	for rows.Next() {
		game, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		games = append(games, game)
	}
	return games, rows.Err()
}

// CountGames returns the number of catalog entries.
func (s *Store) CountGames(ctx context.Context) (int, error) {
	ctx = ensureContext(ctx)
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM games").Scan(&count); err != nil {
		return 0, fmt.Errorf("count games: %w", err)
	}
	return count, nil
}

// GamesNeedingPrices returns games with no stored price, or whose price is
// older than the cutoff, ordered so never-checked games come first.
func (s *Store) GamesNeedingPrices(ctx context.Context, olderThan time.Time, limit int) ([]Game, error) {
	ctx = ensureContext(ctx)
	query := `
		SELECT g.id, g.name, g.released, g.rating, g.metacritic, g.genres, g.platforms, g.background_image, g.created_at, g.updated_at
		FROM games g
		LEFT JOIN best_prices bp ON bp.game_id = g.id
		WHERE bp.game_id IS NULL OR bp.checked_at < ?
		ORDER BY bp.checked_at IS NOT NULL, bp.checked_at, g.name`
	args := []any{formatTime(olderThan)}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("games needing prices: %w", err)
	}
	defer rows.Close()

	var games []Game
	for rows.Next() {
		game, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		games = append(games, game)
	}
	return games, rows.Err()
}
