package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"go.uber.org/zap"

	_ "github.com/fpladvisor/advisor-api/internal/docs"
)

const requestTimeout = 30 * time.Second

type RouterConfig struct {
	AllowedOrigins []string
	// Limiter throttles /api routes per client IP; nil disables it.
	Limiter *limiter.Limiter
	Logger  *zap.Logger
}

// NewRouter mounts every endpoint on a chi router.
func NewRouter(h *Handler, cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(middleware.RealIP)
	r.Use(AccessLog(logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
		MaxAge:         300,
	}))

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.Limiter != nil {
			r.Use(stdlib.NewMiddleware(cfg.Limiter).Handler)
		}
		r.Use(middleware.Timeout(requestTimeout))

		r.Route("/entries/{entryId}", func(r chi.Router) {
			r.Get("/lineup", h.GetLineup)
			r.Get("/transfers", h.SuggestTransfers)
			r.Get("/captain", h.SuggestCaptain)
			r.Get("/chips", h.GetChipStrategy)
			r.Get("/live", h.GetLiveGameweek)
		})

		r.Route("/players", func(r chi.Router) {
			r.Get("/differentials", h.GetDifferentials)
			r.Get("/value", h.GetValuePicks)
			r.Get("/prices", h.GetPriceMovements)
			r.Get("/injuries", h.GetInjuryNews)
			r.Get("/transfers", h.GetTransferTrends)
			r.Get("/search", h.SearchPlayers)
			r.Get("/{playerId}/photo", h.GetPlayerPhoto)
		})

		r.Get("/fixtures/planner", h.GetFixturePlanner)
		r.Get("/fixtures/predictions", h.GetMatchPredictions)
		r.Get("/leagues/{leagueId}/standings", h.GetLeagueStandings)
		r.Get("/squad/optimal", h.GetOptimalSquad)
		r.Get("/notifications", h.GetNotifications)

		r.Get("/teams/{teamId}/crest", h.GetTeamCrest)
		r.Get("/teams/{teamId}/kit", h.GetTeamKit)
	})

	return r
}
