package logic

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/fpladvisor/advisor-api/internal/models"
	"github.com/fpladvisor/advisor-api/internal/scoring"
	"github.com/fpladvisor/advisor-api/internal/signals"
	"github.com/fpladvisor/advisor-api/internal/worker"
)

const (
	defaultPlannerHorizon = 8
	maxPlannerHorizon     = 15
	plannerAverageWindow  = 5
)

// Fixture run ratings.
const (
	RatingEasy   = "easy"
	RatingMedium = "medium"
	RatingHard   = "hard"
)

// FixtureConfig holds the fixture service's dependencies.
type FixtureConfig struct {
	Source  FPLSource
	Signals signals.TeamProvider
	Pool    *worker.Pool
	Logger  *zap.Logger
}

type fixtureService struct {
	source  FPLSource
	signals signals.TeamProvider
	pool    *worker.Pool
	logger  *zap.SugaredLogger
}

func NewFixtureService(cfg FixtureConfig) FixtureService {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	var sig signals.TeamProvider = signals.Neutral{}
	if cfg.Signals != nil {
		sig = cfg.Signals
	}
	return &fixtureService{
		source:  cfg.Source,
		signals: sig,
		pool:    cfg.Pool,
		logger:  logger.Sugar(),
	}
}

// Planner lays out every team's fixtures for the next horizon gameweeks,
// starting at the current one, easiest runs first.
func (s *fixtureService) Planner(ctx context.Context, horizon int) (*models.FixturePlan, error) {
	if horizon == 0 {
		horizon = defaultPlannerHorizon
	}
	if horizon < 1 || horizon > maxPlannerHorizon {
		return nil, ValidationError("invalid horizon %d: must be between 1 and %d", horizon, maxPlannerHorizon)
	}

	var boot *models.Bootstrap
	var fixtures []models.Fixture
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if boot, err = s.source.Bootstrap(gctx); err != nil {
			return fmt.Errorf("bootstrap: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if fixtures, err = s.source.Fixtures(gctx, 0); err != nil {
			return fmt.Errorf("fixtures: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	from := scoring.ResolveGameweek(boot.Gameweeks, models.CurrentGameweek)
	to := from + horizon - 1
	return buildFixturePlan(boot, fixtures, from, to), nil
}

func buildFixturePlan(boot *models.Bootstrap, fixtures []models.Fixture, from, to int) *models.FixturePlan {
	var window []models.Fixture
	for _, f := range fixtures {
		if f.Event >= from && f.Event <= to {
			window = append(window, f)
		}
	}
	sort.SliceStable(window, func(i, j int) bool { return window[i].Event < window[j].Event })
	idx := scoring.NewFixtureIndex(window)

	plan := &models.FixturePlan{FromGameweek: from, ToGameweek: to, Teams: []models.TeamFixtureRun{}}
	for _, team := range boot.Teams {
		run := models.TeamFixtureRun{
			TeamID:    team.ID,
			TeamShort: team.Label(),
			TeamName:  team.Name,
			Fixtures:  []models.PlannedFixture{},
		}
		sum, n := 0, 0
		for _, f := range idx.Fixtures(team.ID) {
			run.Fixtures = append(run.Fixtures, models.PlannedFixture{
				Gameweek:      f.Gameweek,
				OpponentID:    f.OpponentID,
				OpponentShort: boot.TeamShort(f.OpponentID, ""),
				Home:          f.Home,
				Difficulty:    f.Difficulty,
			})
			if f.Gameweek < from+plannerAverageWindow {
				sum += f.Difficulty
				n++
			}
		}
		avg := 3.0
		if n > 0 {
			avg = float64(sum) / float64(n)
		}
		run.AvgDifficulty = scoring.Round(avg, 2)
		run.Rating = fixtureRating(run.AvgDifficulty)
		plan.Teams = append(plan.Teams, run)
	}

	sort.SliceStable(plan.Teams, func(i, j int) bool {
		return plan.Teams[i].AvgDifficulty < plan.Teams[j].AvgDifficulty
	})
	return plan
}

func fixtureRating(avg float64) string {
	switch {
	case avg <= 2.5:
		return RatingEasy
	case avg <= 3.5:
		return RatingMedium
	default:
		return RatingHard
	}
}

// Predictions runs the match model over a gameweek's fixtures. Teams without
// signals fall back to strength ratings.
func (s *fixtureService) Predictions(ctx context.Context, sel models.GameweekSelector) ([]models.MatchPrediction, error) {
	boot, err := s.source.Bootstrap(ctx)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: %w", err)
	}
	gw := scoring.ResolveGameweek(boot.Gameweeks, sel)

	fixtures, err := s.source.Fixtures(ctx, gw)
	if err != nil {
		return nil, fmt.Errorf("fixtures gw %d: %w", gw, err)
	}

	seen := map[int]bool{}
	var teams []models.Team
	for _, f := range fixtures {
		for _, id := range []int{f.TeamH, f.TeamA} {
			if seen[id] {
				continue
			}
			seen[id] = true
			if t, ok := boot.Team(id); ok {
				teams = append(teams, *t)
			}
		}
	}

	results := worker.Map(ctx, s.pool, teams,
		func(ctx context.Context, t models.Team) (*models.TeamSignals, error) {
			return s.signals.TeamSignals(ctx, t)
		},
		func(t models.Team, err error) *models.TeamSignals {
			s.logger.Debugw("Team signals unavailable", "team", t.ID, "error", err)
			return nil
		},
	)
	sigs := make(map[int]*models.TeamSignals, len(teams))
	for i, t := range teams {
		sigs[t.ID] = results[i]
	}

	league := scoring.NewLeagueStrengths(boot.Teams)
	out := make([]models.MatchPrediction, 0, len(fixtures))
	for _, f := range fixtures {
		home, okH := boot.Team(f.TeamH)
		away, okA := boot.Team(f.TeamA)
		if !okH || !okA {
			continue
		}
		lam, used := scoring.MatchLambdas(*home, *away, league, sigs[home.ID], sigs[away.ID])
		h, a, p := scoring.MostLikelyScore(lam.Home, lam.Away)
		out = append(out, models.MatchPrediction{
			FixtureID:   f.ID,
			Gameweek:    f.Event,
			HomeTeamID:  home.ID,
			HomeShort:   home.Label(),
			AwayTeamID:  away.ID,
			AwayShort:   away.Label(),
			Lambdas:     models.MatchLambdas{Home: scoring.Round(lam.Home, 2), Away: scoring.Round(lam.Away, 2)},
			Score:       models.Scoreline{Home: h, Away: a},
			Confidence:  scoring.Round(p*100, 1),
			SignalsUsed: used,
		})
	}
	return out, nil
}
