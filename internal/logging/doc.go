// Package logging builds the application's slog loggers: a console handler
// for terminals, a JSON handler for machine consumption, shared attribute
// helpers, and log file retention.
package logging
