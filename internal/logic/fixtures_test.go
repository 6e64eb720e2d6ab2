package logic

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fpladvisor/advisor-api/internal/models"
	"github.com/fpladvisor/advisor-api/internal/worker"
)

func plannerSource() *MockFPLSource {
	boot := &models.Bootstrap{
		Teams:     []models.Team{team(1, "ARS"), team(2, "CHE"), team(3, "LIV"), team(4, "BHA")},
		Gameweeks: seasonGameweeks(3),
	}
	fixtures := []models.Fixture{
		{ID: 30, Event: 5, TeamH: 2, TeamA: 3, TeamHDifficulty: 5, TeamADifficulty: 5},
		{ID: 10, Event: 3, TeamH: 1, TeamA: 2, TeamHDifficulty: 2, TeamADifficulty: 4},
		{ID: 20, Event: 4, TeamH: 3, TeamA: 1, TeamHDifficulty: 3, TeamADifficulty: 2},
		{ID: 40, Event: 6, TeamH: 1, TeamA: 4, TeamHDifficulty: 5, TeamADifficulty: 1},
		{ID: 1, Event: 2, TeamH: 4, TeamA: 1, TeamHDifficulty: 1, TeamADifficulty: 1},
	}
	return &MockFPLSource{
		BootstrapFunc: func(context.Context) (*models.Bootstrap, error) { return boot, nil },
		FixturesFunc: func(_ context.Context, gw int) ([]models.Fixture, error) {
			if gw != 0 {
				return nil, errors.New("planner should request the full fixture list")
			}
			return fixtures, nil
		},
	}
}

func TestPlanner(t *testing.T) {
	svc := NewFixtureService(FixtureConfig{Source: plannerSource(), Logger: zap.NewNop()})

	plan, err := svc.Planner(context.Background(), 3)
	require.NoError(t, err)

	assert.Equal(t, 3, plan.FromGameweek)
	assert.Equal(t, 5, plan.ToGameweek)
	require.Len(t, plan.Teams, 4)

	var order []int
	for _, run := range plan.Teams {
		order = append(order, run.TeamID)
	}
	assert.Equal(t, []int{1, 4, 3, 2}, order, "easiest runs first")

	ars := plan.Teams[0]
	assert.Equal(t, 2.0, ars.AvgDifficulty)
	assert.Equal(t, RatingEasy, ars.Rating)
	require.Len(t, ars.Fixtures, 2)
	assert.Equal(t, models.PlannedFixture{Gameweek: 3, OpponentID: 2, OpponentShort: "CHE", Home: true, Difficulty: 2}, ars.Fixtures[0])
	assert.Equal(t, models.PlannedFixture{Gameweek: 4, OpponentID: 3, OpponentShort: "LIV", Home: false, Difficulty: 2}, ars.Fixtures[1])

	bha := plan.Teams[1]
	assert.Empty(t, bha.Fixtures)
	assert.NotNil(t, bha.Fixtures)
	assert.Equal(t, 3.0, bha.AvgDifficulty, "teams without fixtures rate neutral")
	assert.Equal(t, RatingMedium, bha.Rating)

	assert.Equal(t, 4.5, plan.Teams[3].AvgDifficulty)
	assert.Equal(t, RatingHard, plan.Teams[3].Rating)
}

func TestPlanner_Horizon(t *testing.T) {
	svc := NewFixtureService(FixtureConfig{Source: plannerSource()})

	plan, err := svc.Planner(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 10, plan.ToGameweek, "default horizon is eight gameweeks")

	for _, h := range []int{-1, 16} {
		_, err := svc.Planner(context.Background(), h)
		assert.ErrorIs(t, err, ErrValidation, "horizon %d", h)
	}
}

func TestFixtureRating(t *testing.T) {
	tests := []struct {
		avg  float64
		want string
	}{
		{1.0, RatingEasy},
		{2.5, RatingEasy},
		{2.51, RatingMedium},
		{3.5, RatingMedium},
		{3.6, RatingHard},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, fixtureRating(tt.avg), "avg %.2f", tt.avg)
	}
}

func predictionSource() *MockFPLSource {
	boot := &models.Bootstrap{
		Teams:     []models.Team{team(1, "ARS"), team(2, "CHE")},
		Gameweeks: seasonGameweeks(3),
	}
	return &MockFPLSource{
		BootstrapFunc: func(context.Context) (*models.Bootstrap, error) { return boot, nil },
		FixturesFunc: func(_ context.Context, gw int) ([]models.Fixture, error) {
			return []models.Fixture{
				{ID: 7, Event: gw, TeamH: 1, TeamA: 2},
				{ID: 8, Event: gw, TeamH: 1, TeamA: 99},
			}, nil
		},
	}
}

func TestPredictions_StrengthFallback(t *testing.T) {
	svc := NewFixtureService(FixtureConfig{Source: predictionSource()})

	got, err := svc.Predictions(context.Background(), models.NextGameweek)
	require.NoError(t, err)

	require.Len(t, got, 1, "fixtures with unknown teams are skipped")
	p := got[0]
	assert.Equal(t, 7, p.FixtureID)
	assert.Equal(t, 4, p.Gameweek)
	assert.Equal(t, "ARS", p.HomeShort)
	assert.Equal(t, "CHE", p.AwayShort)
	assert.False(t, p.SignalsUsed)
	assert.Greater(t, p.Lambdas.Home, p.Lambdas.Away, "equal teams favour the home side")
	assert.Greater(t, p.Confidence, 0.0)
	assert.LessOrEqual(t, p.Confidence, 100.0)
}

func TestPredictions_WithSignals(t *testing.T) {
	var calls atomic.Int32
	provider := &MockTeamProvider{
		TeamSignalsFunc: func(_ context.Context, tm models.Team) (*models.TeamSignals, error) {
			calls.Add(1)
			if tm.ID == 1 {
				return &models.TeamSignals{GoalsForAvgHome: 2.4, GoalsAgainstAvgHome: 0.6, FormScore: 0.8}, nil
			}
			return &models.TeamSignals{GoalsForAvgAway: 0.7, GoalsAgainstAvgAway: 2.0, FormScore: 0.2}, nil
		},
	}
	pool := worker.NewPool(worker.PoolConfig{WorkerCount: 2, Logger: zap.NewNop()})
	pool.Start(context.Background())
	defer pool.Stop()

	svc := NewFixtureService(FixtureConfig{
		Source:  predictionSource(),
		Signals: provider,
		Pool:    pool,
		Logger:  zap.NewNop(),
	})

	got, err := svc.Predictions(context.Background(), models.GameweekNumber(5))
	require.NoError(t, err)

	require.Len(t, got, 1)
	p := got[0]
	assert.Equal(t, 5, p.Gameweek)
	assert.True(t, p.SignalsUsed)
	assert.Equal(t, int32(2), calls.Load(), "one lookup per known team")
	assert.Greater(t, p.Lambdas.Home, 2*p.Lambdas.Away)
	assert.Greater(t, p.Score.Home, p.Score.Away)
}

func TestPredictions_SignalErrorsFallBack(t *testing.T) {
	provider := &MockTeamProvider{
		TeamSignalsFunc: func(context.Context, models.Team) (*models.TeamSignals, error) {
			return nil, errors.New("upstream down")
		},
	}
	svc := NewFixtureService(FixtureConfig{Source: predictionSource(), Signals: provider})

	got, err := svc.Predictions(context.Background(), models.CurrentGameweek)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.False(t, got[0].SignalsUsed)
}
