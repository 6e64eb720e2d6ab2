// Package app wires configuration into the cache, upstream clients, worker
// pool and services shared by every binary.
package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
	"go.uber.org/zap"

	"github.com/fpladvisor/advisor-api/internal/cache"
	"github.com/fpladvisor/advisor-api/internal/config"
	"github.com/fpladvisor/advisor-api/internal/fpl"
	"github.com/fpladvisor/advisor-api/internal/handlers"
	"github.com/fpladvisor/advisor-api/internal/images"
	"github.com/fpladvisor/advisor-api/internal/logic"
	"github.com/fpladvisor/advisor-api/internal/signals"
	"github.com/fpladvisor/advisor-api/internal/worker"
)

const (
	cachePrefix     = "fpladvisor:"
	limiterPrefix   = "fpladvisor:limiter"
	memoryCacheSize = 4096
)

// App holds the long-lived dependencies. Close releases them.
type App struct {
	Config *config.Config
	Logger *zap.Logger
	Cache  cache.Cache
	FPL    *fpl.Client
	Pool   *worker.Pool

	Advisor       logic.AdvisorService
	Insights      logic.PlayerInsightService
	Fixtures      logic.FixtureService
	Squads        logic.SquadService
	Leagues       logic.LeagueService
	Live          logic.LiveService
	Notifications logic.NotificationService
	Images        *images.Resolver

	redis *redis.Client
}

// NewLogger returns a development logger in development and a JSON
// production logger otherwise.
func NewLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsDevelopment() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// New builds the dependency graph and starts the worker pool.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	a := &App{Config: cfg, Logger: logger}

	if cfg.RedisURL != "" {
		rc, client, err := cache.NewRedisFromURL(cfg.RedisURL, cachePrefix)
		if err != nil {
			return nil, err
		}
		a.redis = client
		a.Cache = cache.WithMetrics("redis", rc)
		if err := rc.Ping(ctx); err != nil {
			// Requests still work against a cold cache; /ready reports it.
			logger.Warn("Redis unreachable at startup", zap.Error(err))
		}
	} else {
		a.Cache = cache.WithMetrics("memory", cache.NewMemory(memoryCacheSize))
	}

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	a.FPL = fpl.NewClient(fpl.ClientConfig{
		BaseURL:    cfg.FPLBaseURL,
		HTTPClient: httpClient,
		UserAgent:  cfg.UserAgent,
		Cache:      a.Cache,
		TTL: &fpl.TTLs{
			Bootstrap: cfg.Cache.Bootstrap,
			Fixtures:  cfg.Cache.Fixtures,
			Entry:     cfg.Cache.Entry,
			Picks:     cfg.Cache.Picks,
			History:   cfg.Cache.History,
			League:    cfg.Cache.League,
			Live:      cfg.Cache.Live,
		},
		Logger: logger,
	})

	a.Pool = worker.NewPool(worker.PoolConfig{
		WorkerCount: cfg.WorkerCount,
		ItemTimeout: cfg.EnrichmentTimeout,
		Logger:      logger,
	})
	a.Pool.Start(ctx)

	teamSignals := signals.NewBestEffort(signals.NewAPIFootball(signals.APIFootballConfig{
		APIKey:     cfg.APIFootballKey,
		Season:     cfg.APIFootballSeason,
		HTTPClient: httpClient,
		Cache:      a.Cache,
		TTL:        cfg.Cache.Signals,
		Logger:     logger,
	}), cfg.EnrichmentTimeout, logger)
	cleanSheets := signals.NewBestEffortCleanSheets(signals.NewOdds(signals.OddsConfig{
		APIKey:     cfg.OddsAPIKey,
		HTTPClient: httpClient,
		Cache:      a.Cache,
		TTL:        cfg.Cache.Odds,
		Logger:     logger,
	}), cfg.EnrichmentTimeout, logger)

	a.Advisor = logic.NewAdvisorService(logic.AdvisorConfig{
		Source:      a.FPL,
		Signals:     teamSignals,
		CleanSheets: cleanSheets,
		Pool:        a.Pool,
		Logger:      logger,
	})
	a.Insights = logic.NewPlayerInsightService(logic.InsightConfig{Source: a.FPL, Logger: logger})
	a.Fixtures = logic.NewFixtureService(logic.FixtureConfig{
		Source:  a.FPL,
		Signals: teamSignals,
		Pool:    a.Pool,
		Logger:  logger,
	})
	a.Squads = logic.NewSquadService(logic.SquadConfig{Source: a.FPL, Logger: logger})
	a.Leagues = logic.NewLeagueService(a.FPL, logger)
	a.Live = logic.NewLiveService(logic.LiveConfig{Source: a.FPL, Logger: logger})
	a.Notifications = logic.NewNotificationService(logic.NotificationConfig{Source: a.FPL, Logger: logger})
	a.Images = images.NewResolver(images.ResolverConfig{
		TryTimeout: cfg.ImageTimeout,
		Cache:      a.Cache,
		Logger:     logger,
	})

	return a, nil
}

// Handler builds the HTTP handler set over the services.
func (a *App) Handler() *handlers.Handler {
	return handlers.New(handlers.Config{
		Logger:        a.Logger,
		Cache:         a.Cache,
		Teams:         a.FPL,
		Advisor:       a.Advisor,
		Insights:      a.Insights,
		Fixtures:      a.Fixtures,
		Squads:        a.Squads,
		Leagues:       a.Leagues,
		Live:          a.Live,
		Notifications: a.Notifications,
		Images:        a.Images,
	})
}

// Limiter builds the per-IP rate limiter, sharing counters through Redis
// when it is configured. An empty rate disables limiting.
func (a *App) Limiter() (*limiter.Limiter, error) {
	if a.Config.RateLimit == "" {
		return nil, nil
	}
	rate, err := limiter.NewRateFromFormatted(a.Config.RateLimit)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT %q: %w", a.Config.RateLimit, err)
	}

	var store limiter.Store
	if a.redis != nil {
		store, err = sredis.NewStoreWithOptions(a.redis, limiter.StoreOptions{Prefix: limiterPrefix})
		if err != nil {
			return nil, fmt.Errorf("failed to create limiter store: %w", err)
		}
	} else {
		store = memory.NewStore()
	}
	return limiter.New(store, rate), nil
}

// Close stops the pool and closes the Redis client.
func (a *App) Close() {
	if a.Pool != nil {
		a.Pool.Stop()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.Logger.Warn("Failed to close redis client", zap.Error(err))
		}
	}
}
