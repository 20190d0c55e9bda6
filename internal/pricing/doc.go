// Package pricing enriches catalog games with the best retail price found
// on the storefront, using the title matcher to decide which listing is the
// same game.
package pricing
