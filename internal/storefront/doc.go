// Package storefront scrapes a price-comparison site: searching for game
// listings and extracting the lowest offer from a listing page.
package storefront
