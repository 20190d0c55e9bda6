// Package catalog fetches the game catalog from the RAWG API with paging
// and rate limiting.
package catalog
