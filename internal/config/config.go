package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// Server
	Port int    `envconfig:"PORT" default:"8080"`
	Env  string `envconfig:"ENV" default:"development"`

	// CORS
	AllowedOriginsRaw string   `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
	AllowedOrigins    []string `ignored:"true"`

	// Upstream
	FPLBaseURL        string        `envconfig:"FPL_BASE_URL" default:"https://fantasy.premierleague.com/api"`
	UserAgent         string        `envconfig:"FPL_USER_AGENT" default:"fpl-advisor/1.0 (+https://github.com/fpladvisor/advisor-api)"`
	HTTPTimeout       time.Duration `envconfig:"HTTP_TIMEOUT" default:"8s"`
	EnrichmentTimeout time.Duration `envconfig:"ENRICHMENT_TIMEOUT" default:"2500ms"`
	ImageTimeout      time.Duration `envconfig:"IMAGE_TIMEOUT" default:"5s"`

	// Cache. An empty RedisURL selects the in-process cache.
	RedisURL string `envconfig:"REDIS_URL"`
	Cache    CacheTTL

	// Enrichment providers
	APIFootballKey    string `envconfig:"APIFOOTBALL_KEY"`
	APIFootballSeason int    `envconfig:"APIFOOTBALL_SEASON" default:"2024"`
	OddsAPIKey        string `envconfig:"ODDS_API_KEY"`

	// Worker pool
	WorkerCount int `envconfig:"WORKER_COUNT" default:"8"`

	// Rate limiting, ulule/limiter formatted ("100-S", "1000-H")
	RateLimit string `envconfig:"RATE_LIMIT" default:"100-S"`

	// Scheduled cache warming, 0 disables
	WarmCacheInterval time.Duration `envconfig:"WARM_CACHE_INTERVAL" default:"0s"`

	// MCP server
	MCPAddr string `envconfig:"MCP_ADDR" default:":8090"`
	MCPPath string `envconfig:"MCP_PATH" default:"/mcp"`
}

// CacheTTL holds per-endpoint cache windows.
type CacheTTL struct {
	Bootstrap time.Duration `envconfig:"CACHE_BOOTSTRAP_TTL" default:"5m"`
	Fixtures  time.Duration `envconfig:"CACHE_FIXTURES_TTL" default:"10m"`
	Entry     time.Duration `envconfig:"CACHE_ENTRY_TTL" default:"2m"`
	Picks     time.Duration `envconfig:"CACHE_PICKS_TTL" default:"30s"`
	History   time.Duration `envconfig:"CACHE_HISTORY_TTL" default:"5m"`
	League    time.Duration `envconfig:"CACHE_LEAGUE_TTL" default:"2m"`
	Live      time.Duration `envconfig:"CACHE_LIVE_TTL" default:"30s"`
	Signals   time.Duration `envconfig:"CACHE_SIGNALS_TTL" default:"30m"`
	Odds      time.Duration `envconfig:"CACHE_ODDS_TTL" default:"5m"`
}

// Load loads configuration from environment variables, reading a local .env
// file first when present. It returns an error if a value is malformed.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}

	// CORS
	rawOrigins := strings.Split(cfg.AllowedOriginsRaw, ",")
	for _, o := range rawOrigins {
		if trimmed := strings.TrimSpace(o); trimmed != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// IsDevelopment reports whether the service runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT: %d", c.Port)
	}
	if c.HTTPTimeout <= 0 {
		return errors.New("HTTP_TIMEOUT must be positive")
	}
	if c.EnrichmentTimeout <= 0 {
		return errors.New("ENRICHMENT_TIMEOUT must be positive")
	}
	if c.WorkerCount <= 0 {
		return fmt.Errorf("invalid WORKER_COUNT: %d", c.WorkerCount)
	}
	if c.WarmCacheInterval < 0 {
		return errors.New("WARM_CACHE_INTERVAL must not be negative")
	}
	if strings.TrimSpace(c.FPLBaseURL) == "" {
		return errors.New("FPL_BASE_URL must not be empty")
	}
	c.FPLBaseURL = strings.TrimRight(c.FPLBaseURL, "/")
	return nil
}
