// Package store persists the game catalog, best prices, and pipeline
// settings in a SQLite database. The schema is embedded and versioned;
// opening a database with a mismatched schema version fails rather than
// migrating silently.
package store
