package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	defaultBaseURL     = "https://api.rawg.io/api"
	defaultPageSize    = 40
	defaultHTTPTimeout = 15 * time.Second
)

// Game is one catalog entry returned by the game API.
type Game struct {
	ID              int64
	Name            string
	Released        string
	Rating          float64
	Metacritic      int
	Genres          []string
	Platforms       []string
	BackgroundImage string
}

// Client wraps the RAWG games API.
type Client struct {
	apiKey         string
	baseURL        string
	pageSize       int
	rateLimitDelay time.Duration
	httpClient     *http.Client
}

// Option customizes the catalog client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the default API base (useful for tests/mocks).
func WithBaseURL(base string) Option {
	return func(c *Client) {
		base = strings.TrimSpace(base)
		if base != "" {
			c.baseURL = strings.TrimRight(base, "/")
		}
	}
}

// WithPageSize sets the number of games requested per API page.
func WithPageSize(size int) Option {
	return func(c *Client) {
		if size > 0 {
			c.pageSize = size
		}
	}
}

// WithRateLimitDelay sets the pause between successive page requests.
func WithRateLimitDelay(delay time.Duration) Option {
	return func(c *Client) {
		if delay >= 0 {
			c.rateLimitDelay = delay
		}
	}
}

// NewClient constructs a catalog API client.
func NewClient(apiKey string, opts ...Option) *Client {
	client := &Client{
		apiKey:         strings.TrimSpace(apiKey),
		baseURL:        defaultBaseURL,
		pageSize:       defaultPageSize,
		rateLimitDelay: time.Second,
		httpClient:     &http.Client{Timeout: defaultHTTPTimeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

type gamesResponse struct {
	Count   int    `json:"count"`
	Next    string `json:"next"`
	Results []struct {
		ID              int64   `json:"id"`
		Name            string  `json:"name"`
		Released        string  `json:"released"`
		Rating          float64 `json:"rating"`
		Metacritic      int     `json:"metacritic"`
		BackgroundImage string  `json:"background_image"`
		Genres          []struct {
			Name string `json:"name"`
		} `json:"genres"`
		Platforms []struct {
			Platform struct {
				Name string `json:"name"`
			} `json:"platform"`
		} `json:"platforms"`
	} `json:"results"`
}

// FetchPage retrieves a single page of games ordered by popularity. The
// second return reports whether more pages exist.
func (c *Client) FetchPage(ctx context.Context, page int) ([]Game, bool, error) {
	if strings.TrimSpace(c.apiKey) == "" {
		return nil, false, errors.New("catalog fetch: api key required")
	}
	if page < 1 {
		page = 1
	}

	endpoint, err := url.Parse(c.baseURL + "/games")
	if err != nil {
		return nil, false, fmt.Errorf("catalog fetch: build url: %w", err)
	}
	query := endpoint.Query()
	query.Set("key", c.apiKey)
	query.Set("page", strconv.Itoa(page))
	query.Set("page_size", strconv.Itoa(c.pageSize))
	query.Set("ordering", "-added")
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, false, fmt.Errorf("catalog fetch: request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, false, fmt.Errorf("catalog fetch: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, fmt.Errorf("catalog fetch: read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("catalog fetch: http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload gamesResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, false, fmt.Errorf("catalog fetch: decode response: %w", err)
	}

	games := make([]Game, 0, len(payload.Results))
	for _, result := range payload.Results {
		name := strings.TrimSpace(result.Name)
		if name == "" {
			continue
		}
		game := Game{
			ID:              result.ID,
			Name:            name,
			Released:        result.Released,
			Rating:          result.Rating,
			Metacritic:      result.Metacritic,
			BackgroundImage: result.BackgroundImage,
		}
		for _, genre := range result.Genres {
			if genre.Name != "" {
				game.Genres = append(game.Genres, genre.Name)
			}
		}
		for _, platform := range result.Platforms {
			if platform.Platform.Name != "" {
				game.Platforms = append(game.Platforms, platform.Platform.Name)
			}
		}
		games = append(games, game)
	}

	return games, payload.Next != "", nil
}

// FetchGames pulls up to limit games starting at startPage, pausing between
// pages to respect the API rate limit. It returns the games together with
// the last page fetched so callers can resume a later sync from there.
func (c *Client) FetchGames(ctx context.Context, limit, startPage int) ([]Game, int, error) {
	if limit <= 0 {
		return nil, startPage, nil
	}
	if startPage < 1 {
		startPage = 1
	}

	var games []Game
	page := startPage
	for len(games) < limit {
		if page > startPage && c.rateLimitDelay > 0 {
			select {
			case <-time.After(c.rateLimitDelay):
			case <-ctx.Done():
				return games, page - 1, ctx.Err()
			}
		}

		pageGames, more, err := c.FetchPage(ctx, page)
		if err != nil {
			// Keep whatever was collected before the failure.
			if len(games) > 0 {
				return games, page - 1, err
			}
			return nil, startPage, err
		}
		games = append(games, pageGames...)
		if !more || len(pageGames) == 0 {
			return trimGames(games, limit), page, nil
		}
		page++
	}
	return trimGames(games, limit), page - 1, nil
}

func trimGames(games []Game, limit int) []Game {
	if limit > 0 && len(games) > limit {
		return games[:limit]
	}
	return games
}
