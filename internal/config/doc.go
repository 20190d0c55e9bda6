// Package config loads, validates, and normalizes gamewatch configuration.
//
// Configuration is TOML, resolved from an explicit --config path, then
// ~/.config/gamewatch/config.toml, then ./gamewatch.toml. Defaults cover
// every field so a config file is only required for secrets; the catalog
// API key and Discord webhook also fall back to the RAWG_API_KEY and
// DISCORD_WEBHOOK environment variables.
package config
