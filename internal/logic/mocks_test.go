package logic

import (
	"context"
	"fmt"

	"github.com/fpladvisor/advisor-api/internal/fpl"
	"github.com/fpladvisor/advisor-api/internal/models"
)

// MockFPLSource implements FPLSource for testing
type MockFPLSource struct {
	BootstrapFunc       func(ctx context.Context) (*models.Bootstrap, error)
	FixturesFunc        func(ctx context.Context, gw int) ([]models.Fixture, error)
	EntryFunc           func(ctx context.Context, entryID int) (*models.Entry, error)
	PicksFunc           func(ctx context.Context, entryID, gw int) (*models.Picks, error)
	HistoryFunc         func(ctx context.Context, entryID int) (*models.EntryHistory, error)
	LeagueStandingsFunc func(ctx context.Context, leagueID, page int) (*models.LeagueStandings, error)
	LiveFunc            func(ctx context.Context, gw int) (*models.LiveEvent, error)
}

func (m *MockFPLSource) Bootstrap(ctx context.Context) (*models.Bootstrap, error) {
	if m.BootstrapFunc != nil {
		return m.BootstrapFunc(ctx)
	}
	return &models.Bootstrap{}, nil
}

func (m *MockFPLSource) Fixtures(ctx context.Context, gw int) ([]models.Fixture, error) {
	if m.FixturesFunc != nil {
		return m.FixturesFunc(ctx, gw)
	}
	return nil, nil
}

func (m *MockFPLSource) Entry(ctx context.Context, entryID int) (*models.Entry, error) {
	if m.EntryFunc != nil {
		return m.EntryFunc(ctx, entryID)
	}
	return &models.Entry{ID: entryID, PlayerFirstName: "Test", PlayerLastName: "Manager", Name: "Test XI"}, nil
}

func (m *MockFPLSource) Picks(ctx context.Context, entryID, gw int) (*models.Picks, error) {
	if m.PicksFunc != nil {
		return m.PicksFunc(ctx, entryID, gw)
	}
	return nil, fmt.Errorf("GET /entry/%d/event/%d/picks/: %w", entryID, gw, fpl.ErrNotFound)
}

func (m *MockFPLSource) History(ctx context.Context, entryID int) (*models.EntryHistory, error) {
	if m.HistoryFunc != nil {
		return m.HistoryFunc(ctx, entryID)
	}
	return &models.EntryHistory{}, nil
}

func (m *MockFPLSource) LeagueStandings(ctx context.Context, leagueID, page int) (*models.LeagueStandings, error) {
	if m.LeagueStandingsFunc != nil {
		return m.LeagueStandingsFunc(ctx, leagueID, page)
	}
	return &models.LeagueStandings{}, nil
}

func (m *MockFPLSource) Live(ctx context.Context, gw int) (*models.LiveEvent, error) {
	if m.LiveFunc != nil {
		return m.LiveFunc(ctx, gw)
	}
	return &models.LiveEvent{}, nil
}

// MockTeamProvider implements signals.TeamProvider for testing
type MockTeamProvider struct {
	TeamSignalsFunc func(ctx context.Context, team models.Team) (*models.TeamSignals, error)
}

func (m *MockTeamProvider) TeamSignals(ctx context.Context, team models.Team) (*models.TeamSignals, error) {
	if m.TeamSignalsFunc != nil {
		return m.TeamSignalsFunc(ctx, team)
	}
	return nil, nil
}

// MockCleanSheetProvider implements signals.CleanSheetProvider for testing
type MockCleanSheetProvider struct {
	CleanSheetProbabilitiesFunc func(ctx context.Context, teams []models.Team) (map[int]float64, error)
}

func (m *MockCleanSheetProvider) CleanSheetProbabilities(ctx context.Context, teams []models.Team) (map[int]float64, error) {
	if m.CleanSheetProbabilitiesFunc != nil {
		return m.CleanSheetProbabilitiesFunc(ctx, teams)
	}
	return map[int]float64{}, nil
}

func intPtr(v int) *int { return &v }

func team(id int, short string) models.Team {
	return models.Team{ID: id, Code: id + 100, Name: short + " FC", ShortName: short, Strength: 3}
}

func player(id, teamID int, pos models.Position, cost int, form, ppg float64) models.Player {
	return models.Player{
		ID:            id,
		WebName:       fmt.Sprintf("P%d", id),
		FirstName:     "Player",
		SecondName:    fmt.Sprintf("%d", id),
		TeamID:        teamID,
		Position:      pos,
		NowCost:       cost,
		Status:        models.StatusAvailable,
		Form:          form,
		PointsPerGame: ppg,
		Minutes:       900,
	}
}

// seasonGameweeks returns 10 gameweeks with current as the flagged current.
func seasonGameweeks(current int) []models.Gameweek {
	gws := make([]models.Gameweek, 0, 10)
	for id := 1; id <= 10; id++ {
		gws = append(gws, models.Gameweek{
			ID:        id,
			Name:      fmt.Sprintf("Gameweek %d", id),
			IsCurrent: id == current,
			IsNext:    id == current+1,
			Finished:  id < current,
		})
	}
	return gws
}
