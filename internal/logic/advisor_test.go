package logic

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fpladvisor/advisor-api/internal/fpl"
	"github.com/fpladvisor/advisor-api/internal/models"
	"github.com/fpladvisor/advisor-api/internal/scoring"
)

func advisorBootstrap() *models.Bootstrap {
	return &models.Bootstrap{
		Teams: []models.Team{team(1, "ARS"), team(2, "CHE"), team(3, "LIV"), {ID: 4, Name: "Man City", ShortName: "MCI"}},
		Players: []models.Player{
			player(1, 1, models.PositionGK, 45, 3, 3),
			player(2, 1, models.PositionDEF, 50, 4, 4),
			player(3, 2, models.PositionMID, 80, 6, 5),
			player(4, 3, models.PositionFWD, 90, 7, 6),
			player(5, 4, models.PositionDEF, 40, 1, 1),
			player(6, 4, models.PositionMID, 55, 2, 2),
			player(7, 3, models.PositionMID, 45, 1, 1),
		},
		Gameweeks: seasonGameweeks(6),
	}
}

func advisorPicks() *models.Picks {
	return &models.Picks{
		ActiveChip:   "bboost",
		EntryHistory: models.EventEntryHistory{Event: 6, Bank: 15},
		Picks: []models.Pick{
			{Element: 4, Position: 4, Multiplier: 1},
			{Element: 1, Position: 1, Multiplier: 1},
			{Element: 3, Position: 3, Multiplier: 2, IsCaptain: true},
			{Element: 999, Position: 5, Multiplier: 1},
			{Element: 5, Position: 12, Multiplier: 0},
			{Element: 2, Position: 2, Multiplier: 1, IsViceCaptain: true},
			{Element: 6, Position: 0, Multiplier: 1},
			{Element: 7, Position: 0, Multiplier: 0},
		},
	}
}

func advisorFixtures() []models.Fixture {
	return []models.Fixture{
		{ID: 1, Event: 6, TeamH: 1, TeamA: 2, TeamHDifficulty: 2, TeamADifficulty: 4},
		{ID: 2, Event: 6, TeamH: 3, TeamA: 4, TeamHDifficulty: 3, TeamADifficulty: 3},
		{ID: 3, Event: 6, TeamH: 1, TeamA: 3, TeamHDifficulty: 3, TeamADifficulty: 4},
	}
}

func ids(players []models.LineupPlayer) []int {
	out := make([]int, len(players))
	for i, p := range players {
		out[i] = p.ID
	}
	return out
}

func TestBuildLineup(t *testing.T) {
	lineup := BuildLineup(advisorPicks().Picks, advisorBootstrap(), advisorFixtures())

	assert.Equal(t, []int{1, 2, 3, 4, 6}, ids(lineup.Starters), "slot order, slotless starter last")
	assert.Equal(t, []int{5, 7}, ids(lineup.Bench))

	gk := lineup.Starters[0]
	assert.Equal(t, "P1", gk.Name)
	assert.Equal(t, 101, gk.TeamCode)
	assert.Equal(t, "ARS", gk.TeamShort)
	require.Len(t, gk.Fixtures, 2, "double gameweek keeps both opponents")
	assert.Equal(t, models.OpponentRef{OpponentID: 2, OpponentShort: "CHE", Home: true}, gk.Fixtures[0])
	assert.Equal(t, models.OpponentRef{OpponentID: 3, OpponentShort: "LIV", Home: true}, gk.Fixtures[1])

	captain := lineup.Starters[2]
	assert.True(t, captain.IsCaptain)
	assert.Equal(t, 2, captain.Multiplier)

	bench := lineup.Bench[0]
	assert.Equal(t, 4, bench.TeamCode, "team code falls back to the team id")
}

func TestBuildLineup_BlankGameweekHasNoFixtures(t *testing.T) {
	lineup := BuildLineup(advisorPicks().Picks, advisorBootstrap(), nil)
	for _, p := range append(lineup.Starters, lineup.Bench...) {
		assert.NotNil(t, p.Fixtures)
		assert.Empty(t, p.Fixtures)
	}
}

func newTestAdvisor(src *MockFPLSource, opts ...func(*AdvisorConfig)) AdvisorService {
	cfg := AdvisorConfig{Source: src, Logger: zap.NewNop()}
	for _, o := range opts {
		o(&cfg)
	}
	return NewAdvisorService(cfg)
}

func TestGetLineup_PicksFallbackChain(t *testing.T) {
	var tried []int
	src := &MockFPLSource{
		BootstrapFunc: func(context.Context) (*models.Bootstrap, error) { return advisorBootstrap(), nil },
		PicksFunc: func(_ context.Context, _, gw int) (*models.Picks, error) {
			tried = append(tried, gw)
			if gw == 5 {
				return advisorPicks(), nil
			}
			return nil, fpl.ErrNotFound
		},
		FixturesFunc: func(_ context.Context, gw int) ([]models.Fixture, error) {
			assert.Equal(t, 5, gw, "fixtures follow the picks gameweek")
			return nil, nil
		},
	}

	res, err := newTestAdvisor(src).GetLineup(context.Background(), 42, models.CurrentGameweek)
	require.NoError(t, err)

	assert.Equal(t, []int{6, 7, 5}, tried)
	assert.Equal(t, 5, res.Gameweek)
	assert.Equal(t, models.SourceHistory, res.Source)
	assert.Equal(t, "bboost", res.ActiveChip)
	assert.Equal(t, "Test Manager", res.ManagerName)
	assert.Equal(t, "Test XI", res.TeamName)
	assert.Len(t, res.Lineup.Starters, 5)
}

func TestGetLineup_Errors(t *testing.T) {
	boom := errors.New("upstream down")

	tests := []struct {
		name    string
		entryID int
		src     *MockFPLSource
		check   func(t *testing.T, err error)
	}{
		{
			name:    "invalid entry id",
			entryID: 0,
			src:     &MockFPLSource{},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrValidation)
			},
		},
		{
			name:    "no picks anywhere",
			entryID: 42,
			src: &MockFPLSource{
				BootstrapFunc: func(context.Context) (*models.Bootstrap, error) { return advisorBootstrap(), nil },
			},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrNotFound)
				assert.True(t, IsNotFound(err))
			},
		},
		{
			name:    "picks upstream failure stops the chain",
			entryID: 42,
			src: &MockFPLSource{
				BootstrapFunc: func(context.Context) (*models.Bootstrap, error) { return advisorBootstrap(), nil },
				PicksFunc: func(context.Context, int, int) (*models.Picks, error) {
					return nil, boom
				},
			},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, boom)
				assert.False(t, IsNotFound(err))
			},
		},
		{
			name:    "bootstrap failure",
			entryID: 42,
			src: &MockFPLSource{
				BootstrapFunc: func(context.Context) (*models.Bootstrap, error) { return nil, boom },
			},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, boom)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestAdvisor(tt.src).GetLineup(context.Background(), tt.entryID, models.CurrentGameweek)
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestGetLineup_ChainIsBounded(t *testing.T) {
	boot := advisorBootstrap()
	boot.Gameweeks = nil
	for id := 1; id <= 38; id++ {
		boot.Gameweeks = append(boot.Gameweeks, models.Gameweek{ID: id, Finished: id < 30, IsCurrent: id == 30})
	}

	var calls int32
	src := &MockFPLSource{
		BootstrapFunc: func(context.Context) (*models.Bootstrap, error) { return boot, nil },
		PicksFunc: func(context.Context, int, int) (*models.Picks, error) {
			atomic.AddInt32(&calls, 1)
			return nil, fpl.ErrNotFound
		},
	}

	_, err := newTestAdvisor(src).GetLineup(context.Background(), 42, models.CurrentGameweek)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.EqualValues(t, maxPicksAttempts, atomic.LoadInt32(&calls))
}

func TestGetLineup_NoCurrentFlagReachesLastPlayedGameweek(t *testing.T) {
	boot := advisorBootstrap()
	boot.Gameweeks = nil
	for id := 1; id <= 38; id++ {
		boot.Gameweeks = append(boot.Gameweeks, models.Gameweek{ID: id, Finished: id <= 10, IsNext: id == 11})
	}

	var tried []int
	src := &MockFPLSource{
		BootstrapFunc: func(context.Context) (*models.Bootstrap, error) { return boot, nil },
		PicksFunc: func(_ context.Context, _, gw int) (*models.Picks, error) {
			tried = append(tried, gw)
			if gw == 10 {
				return advisorPicks(), nil
			}
			return nil, fpl.ErrNotFound
		},
	}

	res, err := newTestAdvisor(src).GetLineup(context.Background(), 42, models.CurrentGameweek)
	require.NoError(t, err)
	assert.Equal(t, 10, res.Gameweek)
	assert.Equal(t, models.SourceHistory, res.Source)
	assert.Equal(t, []int{11, 10}, tried)
}

func TestGetLineup_EntryFailureDegrades(t *testing.T) {
	src := &MockFPLSource{
		BootstrapFunc: func(context.Context) (*models.Bootstrap, error) { return advisorBootstrap(), nil },
		PicksFunc:     func(context.Context, int, int) (*models.Picks, error) { return advisorPicks(), nil },
		EntryFunc: func(context.Context, int) (*models.Entry, error) {
			return nil, errors.New("entry down")
		},
	}

	res, err := newTestAdvisor(src).GetLineup(context.Background(), 42, models.GameweekNumber(6))
	require.NoError(t, err)
	assert.Equal(t, models.SourceRequested, res.Source)
	assert.Equal(t, "Unknown Manager", res.ManagerName)
	assert.Equal(t, "Unknown Team", res.TeamName)
}

func transferBootstrap() *models.Bootstrap {
	injured := player(12, 3, models.PositionMID, 50, 9, 9)
	injured.Status = models.StatusInjured
	return &models.Bootstrap{
		Teams: []models.Team{team(1, "ARS"), team(2, "CHE"), team(3, "LIV"), team(4, "MCI")},
		Players: []models.Player{
			player(1, 1, models.PositionMID, 60, 2, 2),
			player(2, 2, models.PositionFWD, 70, 3, 3),
			player(10, 3, models.PositionMID, 65, 8, 6),
			player(11, 4, models.PositionMID, 100, 10, 8),
			injured,
			player(13, 1, models.PositionFWD, 70, 1, 1),
		},
		Gameweeks: seasonGameweeks(6),
	}
}

func TestSuggestTransfers(t *testing.T) {
	var fixtureCalls []int
	src := &MockFPLSource{
		BootstrapFunc: func(context.Context) (*models.Bootstrap, error) { return transferBootstrap(), nil },
		PicksFunc: func(_ context.Context, _, gw int) (*models.Picks, error) {
			return &models.Picks{
				EntryHistory: models.EventEntryHistory{Bank: 10},
				Picks: []models.Pick{
					{Element: 1, Position: 1, Multiplier: 1},
					{Element: 2, Position: 2, Multiplier: 1},
				},
			}, nil
		},
		FixturesFunc: func(_ context.Context, gw int) ([]models.Fixture, error) {
			fixtureCalls = append(fixtureCalls, gw)
			return nil, nil
		},
	}

	res, err := newTestAdvisor(src).SuggestTransfers(context.Background(), 42, models.CurrentGameweek)
	require.NoError(t, err)

	assert.Equal(t, 6, res.Gameweek)
	assert.Equal(t, 6, res.DisplayGameweek)
	assert.Equal(t, []int{6}, fixtureCalls, "same gameweek is fetched once")
	assert.Equal(t, 1.0, res.Bank)

	require.Len(t, res.Suggestions, 1)
	s := res.Suggestions[0]
	assert.Equal(t, 1, s.OutID)
	assert.Equal(t, 10, s.InID)
	assert.Equal(t, models.PositionMID, s.Pos)
	assert.Equal(t, 6.0, s.PriceOut)
	assert.Equal(t, 6.5, s.PriceIn)
	assert.InDelta(t, 5.09, s.Delta, 0.011)
	assert.Len(t, res.Lineup.Starters, 2)
}

func TestSuggestTransfers_NextUsesFlaggedGameweekForPool(t *testing.T) {
	seen := map[int]bool{}
	done := make(chan int, 4)
	src := &MockFPLSource{
		BootstrapFunc: func(context.Context) (*models.Bootstrap, error) { return transferBootstrap(), nil },
		PicksFunc: func(_ context.Context, _, gw int) (*models.Picks, error) {
			if gw != 6 {
				return nil, fpl.ErrNotFound
			}
			return &models.Picks{Picks: []models.Pick{{Element: 1, Position: 1, Multiplier: 1}}}, nil
		},
		FixturesFunc: func(_ context.Context, gw int) ([]models.Fixture, error) {
			done <- gw
			return nil, nil
		},
	}

	res, err := newTestAdvisor(src).SuggestTransfers(context.Background(), 42, models.NextGameweek)
	require.NoError(t, err)
	close(done)
	for gw := range done {
		seen[gw] = true
	}

	assert.Equal(t, 6, res.Gameweek, "next gameweek has no picks yet")
	assert.Equal(t, models.SourceCurrent, res.Source)
	assert.Equal(t, 7, res.DisplayGameweek)
	assert.True(t, seen[6] && seen[7], "both gameweeks' fixtures fetched")
}

func TestRankTransfers_NoImprovementReturnsBestPair(t *testing.T) {
	boot := &models.Bootstrap{
		Teams: []models.Team{team(1, "ARS"), team(2, "CHE")},
		Players: []models.Player{
			player(1, 1, models.PositionMID, 60, 9, 9),
			player(20, 2, models.PositionMID, 55, 1, 1),
			player(21, 2, models.PositionMID, 60, 2, 2),
			player(22, 2, models.PositionMID, 61, 8, 8),
		},
	}
	picks := []models.Pick{{Element: 1, Position: 1}}

	got := rankTransfers(picks, boot, nil, nil, 0)
	require.Len(t, got, 1)
	assert.Equal(t, 21, got[0].InID, "over-budget player is never suggested")
	assert.Less(t, got[0].Delta, 0.0)
}

func TestRankTransfers_ClubLimit(t *testing.T) {
	boot := &models.Bootstrap{
		Teams: []models.Team{team(1, "ARS"), team(3, "LIV"), team(4, "MCI")},
		Players: []models.Player{
			player(1, 1, models.PositionMID, 60, 1, 1),
			player(30, 3, models.PositionDEF, 45, 1, 1),
			player(31, 3, models.PositionDEF, 45, 1, 1),
			player(32, 3, models.PositionFWD, 60, 1, 1),
			player(10, 3, models.PositionMID, 60, 9, 9),
			player(40, 4, models.PositionMID, 60, 5, 5),
			player(33, 3, models.PositionDEF, 45, 6, 6),
		},
	}
	picks := []models.Pick{
		{Element: 1, Position: 1}, {Element: 30, Position: 2}, {Element: 31, Position: 3}, {Element: 32, Position: 4},
	}

	got := rankTransfers(picks, boot, nil, nil, 0)
	require.NotEmpty(t, got)
	for _, s := range got {
		assert.NotEqual(t, 10, s.InID, "a fourth LIV player breaks the club limit")
	}
	assert.Equal(t, 33, got[0].InID, "same-club swap keeps the count")
	assert.Len(t, got, 3)
}

func TestRankTransfers_TieBreaks(t *testing.T) {
	boot := &models.Bootstrap{
		Teams: []models.Team{team(1, "ARS"), team(2, "CHE")},
		Players: []models.Player{
			player(1, 1, models.PositionMID, 50, 1, 1),
			player(2, 1, models.PositionMID, 70, 1, 1),
			player(21, 2, models.PositionMID, 50, 5, 5),
			player(20, 2, models.PositionMID, 50, 5, 5),
		},
	}
	picks := []models.Pick{{Element: 1, Position: 1}, {Element: 2, Position: 2}}

	got := rankTransfers(picks, boot, nil, nil, 0)
	require.Len(t, got, 3)
	assert.Equal(t, [2]int{2, 20}, [2]int{got[0].OutID, got[0].InID})
	assert.Equal(t, [2]int{2, 21}, [2]int{got[1].OutID, got[1].InID})
	assert.Equal(t, [2]int{1, 20}, [2]int{got[2].OutID, got[2].InID})
}

func captainSource() *MockFPLSource {
	return &MockFPLSource{
		BootstrapFunc: func(context.Context) (*models.Bootstrap, error) { return advisorBootstrap(), nil },
		PicksFunc:     func(context.Context, int, int) (*models.Picks, error) { return advisorPicks(), nil },
		FixturesFunc: func(context.Context, int) ([]models.Fixture, error) {
			return advisorFixtures(), nil
		},
	}
}

func findCaptain(res *models.CaptainResult, id int) *models.CaptainSuggestion {
	for i := range res.Suggestions {
		if res.Suggestions[i].ID == id {
			return &res.Suggestions[i]
		}
	}
	return nil
}

func TestSuggestCaptain_Neutral(t *testing.T) {
	res, err := newTestAdvisor(captainSource()).SuggestCaptain(context.Background(), 42, models.CurrentGameweek)
	require.NoError(t, err)

	require.Len(t, res.Suggestions, 4)
	for i := 1; i < len(res.Suggestions); i++ {
		assert.GreaterOrEqual(t, res.Suggestions[i-1].CaptainPts, res.Suggestions[i].CaptainPts)
	}
	for _, s := range res.Suggestions {
		assert.NotEqual(t, 5, s.ID, "bench players are not candidates")
		assert.InDelta(t, 2*s.SmartEPts, s.CaptainPts, 0.011)
		assert.GreaterOrEqual(t, s.Confidence, 40.0)
		assert.LessOrEqual(t, s.Confidence, 95.0)
		assert.True(t, strings.HasPrefix(s.Reasons[0], "vs "))
	}

	mid := findCaptain(res, 3)
	require.NotNil(t, mid)
	assert.Equal(t, 54.0, mid.Confidence, "neutral base 55 scaled by 0.95 minutes")
	assert.Equal(t, "ARS (A)", mid.Opponent)
	assert.Contains(t, mid.Reasons[1], "Team λ: 1.25, Opp λ: 1.15")
}

func TestSuggestCaptain_SignalsAndOdds(t *testing.T) {
	var calls int32
	sig := &MockTeamProvider{
		TeamSignalsFunc: func(_ context.Context, tm models.Team) (*models.TeamSignals, error) {
			atomic.AddInt32(&calls, 1)
			return &models.TeamSignals{
				GoalsForAvgHome: 1.6, GoalsForAvgAway: 1.2,
				GoalsAgainstAvgHome: 1.0, GoalsAgainstAvgAway: 1.3,
				FormScore: 0.5,
			}, nil
		},
	}
	odds := &MockCleanSheetProvider{
		CleanSheetProbabilitiesFunc: func(context.Context, []models.Team) (map[int]float64, error) {
			return map[int]float64{1: 0.6}, nil
		},
	}

	res, err := newTestAdvisor(captainSource(), func(c *AdvisorConfig) {
		c.Signals = sig
		c.CleanSheets = odds
	}).SuggestCaptain(context.Background(), 42, models.CurrentGameweek)
	require.NoError(t, err)

	assert.EqualValues(t, 4, atomic.LoadInt32(&calls), "one lookup per team")

	mid := findCaptain(res, 3)
	require.NotNil(t, mid)
	assert.Equal(t, 64.0, mid.Confidence, "signals base 65 scaled by 0.95 minutes")
	assert.NotContains(t, mid.Reasons[1], "Team λ: 1.25,")

	if def := findCaptain(res, 2); def != nil {
		assert.Contains(t, def.Reasons[1], "CS 60%", "odds override the Poisson clean sheet")
	}
}

func TestSuggestCaptain_FailingSignalsFallBack(t *testing.T) {
	sig := &MockTeamProvider{
		TeamSignalsFunc: func(context.Context, models.Team) (*models.TeamSignals, error) {
			return nil, errors.New("provider down")
		},
	}
	odds := &MockCleanSheetProvider{
		CleanSheetProbabilitiesFunc: func(context.Context, []models.Team) (map[int]float64, error) {
			return nil, errors.New("odds down")
		},
	}

	res, err := newTestAdvisor(captainSource(), func(c *AdvisorConfig) {
		c.Signals = sig
		c.CleanSheets = odds
	}).SuggestCaptain(context.Background(), 42, models.CurrentGameweek)
	require.NoError(t, err)

	mid := findCaptain(res, 3)
	require.NotNil(t, mid)
	assert.Equal(t, 54.0, mid.Confidence)
}

func TestSuggestCaptain_EmptyStartingXI(t *testing.T) {
	src := captainSource()
	src.PicksFunc = func(context.Context, int, int) (*models.Picks, error) {
		return &models.Picks{Picks: []models.Pick{{Element: 5, Position: 12}}}, nil
	}

	_, err := newTestAdvisor(src).SuggestCaptain(context.Background(), 42, models.CurrentGameweek)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCaptainSuggestion_DisciplineReason(t *testing.T) {
	boot := advisorBootstrap()
	p := boot.Players[3]
	p.Minutes = 900
	p.YellowCards = 30
	s := captainSuggestion(p, boot, scoring.NewFixtureIndex(nil), teamContext{league: scoring.NewLeagueStrengths(boot.Teams)})

	assert.Equal(t, "no fixture", s.Opponent)
	assert.Equal(t, "Discipline -8%", s.Reasons[len(s.Reasons)-1])
}
