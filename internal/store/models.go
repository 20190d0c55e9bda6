package store

import (
	"strings"
	"time"
)

const timeLayout = time.RFC3339

// Game is a catalog entry synced from the upstream game API.
type Game struct {
	ID              int64
	Name            string
	Released        string
	Rating          float64
	Metacritic      int
	Genres          []string
	Platforms       []string
	BackgroundImage string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// BestPrice is the lowest retail price found for a game, together with the
// storefront listing it was matched against and the score that matched it.
type BestPrice struct {
	GameID          int64
	MatchedTitle    string
	Price           float64
	Currency        string
	Shop            string
	URL             string
	SimilarityScore float64
	Strategy        string
	CheckedAt       time.Time
}

func joinList(values []string) string {
	cleaned := make([]string, 0, len(values))
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	return strings.Join(cleaned, ",")
}

func splitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UTC().Format(timeLayout)
}

func parseTime(value string) time.Time {
	t, err := time.Parse(timeLayout, value)
	if err != nil {
		return time.Time{}
	}
	return t
}
