package handlers

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/fpladvisor/advisor-api/internal/logic"
	"github.com/fpladvisor/advisor-api/internal/models"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// TeamSource provides the team list for image lookups.
type TeamSource interface {
	Bootstrap(ctx context.Context) (*models.Bootstrap, error)
}

// ImageResolver finds crest, kit and headshot URLs.
type ImageResolver interface {
	Crest(ctx context.Context, team models.Team, size int) models.ImageResult
	Kit(ctx context.Context, team models.Team, goalkeeper bool, size int) models.ImageResult
	PlayerPhoto(ctx context.Context, p models.Player, teamCode int) models.ImageResult
}

type Config struct {
	Logger *zap.Logger
	// Cache is pinged by the readiness check; nil skips the check.
	Cache Pinger
	Teams TeamSource
	// Services
	Advisor       logic.AdvisorService
	Insights      logic.PlayerInsightService
	Fixtures      logic.FixtureService
	Squads        logic.SquadService
	Leagues       logic.LeagueService
	Live          logic.LiveService
	Notifications logic.NotificationService
	Images        ImageResolver
}

type Handler struct {
	logger    *zap.SugaredLogger
	validator *validator.Validate
	cache     Pinger
	teams     TeamSource
	advisor   logic.AdvisorService
	insights  logic.PlayerInsightService
	fixtures  logic.FixtureService
	squads    logic.SquadService
	leagues   logic.LeagueService
	live      logic.LiveService
	notify    logic.NotificationService
	images    ImageResolver
}

func New(cfg Config) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		logger:    logger.Sugar(),
		validator: validator.New(),
		cache:     cfg.Cache,
		teams:     cfg.Teams,
		advisor:   cfg.Advisor,
		insights:  cfg.Insights,
		fixtures:  cfg.Fixtures,
		squads:    cfg.Squads,
		leagues:   cfg.Leagues,
		live:      cfg.Live,
		notify:    cfg.Notifications,
		images:    cfg.Images,
	}
}
