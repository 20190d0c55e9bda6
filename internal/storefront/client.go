package storefront

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultBaseURL     = "https://www.dlcompare.com"
	defaultCandidates  = 10
	defaultHTTPTimeout = 15 * time.Second
	userAgent          = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"
)

// Result is one storefront listing returned by a search.
type Result struct {
	Title string
	URL   string
}

// Price is the lowest offer found on a listing page.
type Price struct {
	Amount   float64
	Currency string
	Shop     string
	URL      string
}

// Client scrapes storefront search results and price pages.
type Client struct {
	baseURL       string
	maxCandidates int
	httpClient    *http.Client
}

// Option customizes the storefront client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the default storefront base (useful for tests/mocks).
func WithBaseURL(base string) Option {
	return func(c *Client) {
		base = strings.TrimSpace(base)
		if base != "" {
			c.baseURL = strings.TrimRight(base, "/")
		}
	}
}

// WithMaxCandidates caps how many search results a query returns.
func WithMaxCandidates(max int) Option {
	return func(c *Client) {
		if max > 0 {
			c.maxCandidates = max
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// NewClient constructs a storefront scraping client.
func NewClient(opts ...Option) *Client {
	client := &Client{
		baseURL:       defaultBaseURL,
		maxCandidates: defaultCandidates,
		httpClient:    &http.Client{Timeout: defaultHTTPTimeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

func (c *Client) get(ctx context.Context, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("storefront: request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("storefront: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("storefront: read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("storefront: http %d for %s", resp.StatusCode, target)
	}
	return body, nil
}

// Search queries the storefront and returns up to maxCandidates listings.
func (c *Client) Search(ctx context.Context, query string) ([]Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	target := c.baseURL + "/search?q=" + url.QueryEscape(query)
	body, err := c.get(ctx, target)
	if err != nil {
		return nil, err
	}

	results, err := parseSearchResults(body)
	if err != nil {
		return nil, fmt.Errorf("storefront: parse search results: %w", err)
	}

	for i := range results {
		results[i].URL = c.absoluteURL(results[i].URL)
	}
	if len(results) > c.maxCandidates {
		results = results[:c.maxCandidates]
	}
	return results, nil
}

// FetchPrice loads a listing page and extracts the lowest offer.
func (c *Client) FetchPrice(ctx context.Context, listingURL string) (Price, error) {
	body, err := c.get(ctx, listingURL)
	if err != nil {
		return Price{}, err
	}

	price, err := parsePricePage(body)
	if err != nil {
		return Price{}, fmt.Errorf("storefront: parse price page %s: %w", listingURL, err)
	}
	price.URL = listingURL
	return price, nil
}

func (c *Client) absoluteURL(href string) string {
	if href == "" || strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	if !strings.HasPrefix(href, "/") {
		href = "/" + href
	}
	return c.baseURL + href
}
