package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	DataDir string `toml:"data_dir"`
	LogDir  string `toml:"log_dir"`
}

// Catalog contains configuration for the RAWG game catalog API.
type Catalog struct {
	APIKey         string  `toml:"api_key"`
	BaseURL        string  `toml:"base_url"`
	PageSize       int     `toml:"page_size"`
	GamesPerSync   int     `toml:"games_per_sync"`
	RateLimitDelay float64 `toml:"rate_limit_delay"`
}

// Storefront contains configuration for retail price discovery.
type Storefront struct {
	BaseURL              string  `toml:"base_url"`
	MaxCandidates        int     `toml:"max_candidates"`
	RequestTimeout       int     `toml:"request_timeout"`
	MaxGamesPerSession   int     `toml:"max_games_per_session"`
	DelayBetweenRequests float64 `toml:"delay_between_requests"`
}

// Matching contains the title matcher thresholds. The two thresholds are
// independent tunables: similarity_threshold gates the TF-IDF strategy,
// fallback_threshold gates the coarser token-overlap strategy.
type Matching struct {
	SimilarityThreshold float64 `toml:"similarity_threshold"`
	FallbackThreshold   float64 `toml:"fallback_threshold"`
}

// Notifications contains configuration for Discord webhook notifications.
type Notifications struct {
	DiscordWebhook string `toml:"discord_webhook"`
	RequestTimeout int    `toml:"request_timeout"`
	Sync           bool   `toml:"sync"`
	Enrichment     bool   `toml:"enrichment"`
	Errors         bool   `toml:"errors"`
}

// Pipeline contains orchestration settings.
type Pipeline struct {
	PriceRefreshDays int    `toml:"price_refresh_days"`
	LockFile         string `toml:"lock_file"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format        string `toml:"format"`
	Level         string `toml:"level"`
	RetentionDays int    `toml:"retention_days"`
}

// Config encapsulates all configuration values for gamewatch.
//
// Configuration sections by subsystem:
//   - Paths: database and log directories
//   - Catalog: RAWG API ingest settings
//   - Storefront: retail search and scraping settings
//   - Matching: title matcher thresholds
//   - Notifications: Discord webhook settings
//   - Pipeline: run cadence and locking
//   - Logging: log format, level, and retention
type Config struct {
	Paths         Paths         `toml:"paths"`
	Catalog       Catalog       `toml:"catalog"`
	Storefront    Storefront    `toml:"storefront"`
	Matching      Matching      `toml:"matching"`
	Notifications Notifications `toml:"notifications"`
	Pipeline      Pipeline      `toml:"pipeline"`
	Logging       Logging       `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/gamewatch/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("gamewatch.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories required for operation.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// DatabasePath returns the location of the sqlite database file.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.Paths.DataDir, "gamewatch.db")
}

// LockFilePath returns the pipeline lock file location.
func (c *Config) LockFilePath() string {
	if strings.TrimSpace(c.Pipeline.LockFile) != "" {
		return c.Pipeline.LockFile
	}
	return filepath.Join(c.Paths.LogDir, "gamewatch.lock")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
