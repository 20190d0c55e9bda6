// Package notifications delivers pipeline events via pluggable notifiers.
//
// The default implementation posts to a Discord webhook configured in
// config.toml and gracefully degrades to a no-op when no webhook is set.
// Pipeline code depends only on the Service interface, so alternative
// transports slot in without touching callers.
package notifications
