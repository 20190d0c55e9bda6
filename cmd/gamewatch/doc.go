// Command gamewatch tracks a game catalog and the best retail price for
// each game. It syncs games from the RAWG API, matches them against
// storefront listings with a TF-IDF title matcher, and stores the lowest
// price found.
package main
