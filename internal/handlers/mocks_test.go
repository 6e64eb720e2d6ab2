package handlers

import (
	"context"

	"github.com/fpladvisor/advisor-api/internal/logic"
	"github.com/fpladvisor/advisor-api/internal/models"
)

// MockAdvisorService
type MockAdvisorService struct {
	GetLineupFunc        func(ctx context.Context, entryID int, sel models.GameweekSelector) (*models.LineupResult, error)
	SuggestTransfersFunc func(ctx context.Context, entryID int, sel models.GameweekSelector) (*models.TransfersResult, error)
	SuggestCaptainFunc   func(ctx context.Context, entryID int, sel models.GameweekSelector) (*models.CaptainResult, error)
}

func (m *MockAdvisorService) GetLineup(ctx context.Context, entryID int, sel models.GameweekSelector) (*models.LineupResult, error) {
	if m.GetLineupFunc != nil {
		return m.GetLineupFunc(ctx, entryID, sel)
	}
	return &models.LineupResult{EntryID: entryID}, nil
}

func (m *MockAdvisorService) SuggestTransfers(ctx context.Context, entryID int, sel models.GameweekSelector) (*models.TransfersResult, error) {
	if m.SuggestTransfersFunc != nil {
		return m.SuggestTransfersFunc(ctx, entryID, sel)
	}
	return &models.TransfersResult{}, nil
}

func (m *MockAdvisorService) SuggestCaptain(ctx context.Context, entryID int, sel models.GameweekSelector) (*models.CaptainResult, error) {
	if m.SuggestCaptainFunc != nil {
		return m.SuggestCaptainFunc(ctx, entryID, sel)
	}
	return &models.CaptainResult{}, nil
}

// MockPlayerInsightService
type MockPlayerInsightService struct {
	DifferentialsFunc  func(ctx context.Context, f logic.DifferentialFilter) ([]models.Differential, error)
	ValuePicksFunc     func(ctx context.Context, f logic.ValueFilter) ([]models.ValuePick, error)
	PriceMovementsFunc func(ctx context.Context) (*models.PriceMovements, error)
	InjuryNewsFunc     func(ctx context.Context, limit int) ([]models.InjuryNews, error)
	SearchPlayersFunc  func(ctx context.Context, query string, pos models.Position, limit int) ([]models.PlayerMatch, error)
	TransferTrendsFunc func(ctx context.Context, limit int) (*models.TransferTrends, error)
}

func (m *MockPlayerInsightService) Differentials(ctx context.Context, f logic.DifferentialFilter) ([]models.Differential, error) {
	if m.DifferentialsFunc != nil {
		return m.DifferentialsFunc(ctx, f)
	}
	return []models.Differential{}, nil
}

func (m *MockPlayerInsightService) ValuePicks(ctx context.Context, f logic.ValueFilter) ([]models.ValuePick, error) {
	if m.ValuePicksFunc != nil {
		return m.ValuePicksFunc(ctx, f)
	}
	return []models.ValuePick{}, nil
}

func (m *MockPlayerInsightService) PriceMovements(ctx context.Context) (*models.PriceMovements, error) {
	if m.PriceMovementsFunc != nil {
		return m.PriceMovementsFunc(ctx)
	}
	return &models.PriceMovements{}, nil
}

func (m *MockPlayerInsightService) InjuryNews(ctx context.Context, limit int) ([]models.InjuryNews, error) {
	if m.InjuryNewsFunc != nil {
		return m.InjuryNewsFunc(ctx, limit)
	}
	return []models.InjuryNews{}, nil
}

func (m *MockPlayerInsightService) SearchPlayers(ctx context.Context, query string, pos models.Position, limit int) ([]models.PlayerMatch, error) {
	if m.SearchPlayersFunc != nil {
		return m.SearchPlayersFunc(ctx, query, pos, limit)
	}
	return []models.PlayerMatch{}, nil
}

func (m *MockPlayerInsightService) TransferTrends(ctx context.Context, limit int) (*models.TransferTrends, error) {
	if m.TransferTrendsFunc != nil {
		return m.TransferTrendsFunc(ctx, limit)
	}
	return &models.TransferTrends{}, nil
}

// MockFixtureService
type MockFixtureService struct {
	PlannerFunc     func(ctx context.Context, horizon int) (*models.FixturePlan, error)
	PredictionsFunc func(ctx context.Context, sel models.GameweekSelector) ([]models.MatchPrediction, error)
}

func (m *MockFixtureService) Planner(ctx context.Context, horizon int) (*models.FixturePlan, error) {
	if m.PlannerFunc != nil {
		return m.PlannerFunc(ctx, horizon)
	}
	return &models.FixturePlan{}, nil
}

func (m *MockFixtureService) Predictions(ctx context.Context, sel models.GameweekSelector) ([]models.MatchPrediction, error) {
	if m.PredictionsFunc != nil {
		return m.PredictionsFunc(ctx, sel)
	}
	return []models.MatchPrediction{}, nil
}

// MockSquadService
type MockSquadService struct {
	OptimalSquadFunc func(ctx context.Context, formation string) (*models.Squad, error)
	ChipStrategyFunc func(ctx context.Context, entryID int) (*models.ChipStrategy, error)
}

func (m *MockSquadService) OptimalSquad(ctx context.Context, formation string) (*models.Squad, error) {
	if m.OptimalSquadFunc != nil {
		return m.OptimalSquadFunc(ctx, formation)
	}
	return &models.Squad{}, nil
}

func (m *MockSquadService) ChipStrategy(ctx context.Context, entryID int) (*models.ChipStrategy, error) {
	if m.ChipStrategyFunc != nil {
		return m.ChipStrategyFunc(ctx, entryID)
	}
	return &models.ChipStrategy{}, nil
}

// MockLeagueService
type MockLeagueService struct {
	StandingsFunc func(ctx context.Context, leagueID, page int) (*models.LeagueStandings, error)
}

func (m *MockLeagueService) Standings(ctx context.Context, leagueID, page int) (*models.LeagueStandings, error) {
	if m.StandingsFunc != nil {
		return m.StandingsFunc(ctx, leagueID, page)
	}
	return &models.LeagueStandings{}, nil
}

// MockLiveService
type MockLiveService struct {
	LiveGameweekFunc func(ctx context.Context, entryID int) (*models.LiveGameweekResult, error)
}

func (m *MockLiveService) LiveGameweek(ctx context.Context, entryID int) (*models.LiveGameweekResult, error) {
	if m.LiveGameweekFunc != nil {
		return m.LiveGameweekFunc(ctx, entryID)
	}
	return &models.LiveGameweekResult{EntryID: entryID}, nil
}

// MockNotificationService
type MockNotificationService struct {
	NotificationsFunc func(ctx context.Context) (*models.NotificationFeed, error)
}

func (m *MockNotificationService) Notifications(ctx context.Context) (*models.NotificationFeed, error) {
	if m.NotificationsFunc != nil {
		return m.NotificationsFunc(ctx)
	}
	return &models.NotificationFeed{Notifications: []models.Notification{}}, nil
}

// MockImageResolver
type MockImageResolver struct {
	CrestFunc func(ctx context.Context, team models.Team, size int) models.ImageResult
	KitFunc   func(ctx context.Context, team models.Team, goalkeeper bool, size int) models.ImageResult
	PhotoFunc func(ctx context.Context, p models.Player, teamCode int) models.ImageResult
}

func (m *MockImageResolver) Crest(ctx context.Context, team models.Team, size int) models.ImageResult {
	if m.CrestFunc != nil {
		return m.CrestFunc(ctx, team, size)
	}
	return models.ImageResult{URL: "/placeholder-crest.svg", Placeholder: true}
}

func (m *MockImageResolver) Kit(ctx context.Context, team models.Team, goalkeeper bool, size int) models.ImageResult {
	if m.KitFunc != nil {
		return m.KitFunc(ctx, team, goalkeeper, size)
	}
	return models.ImageResult{URL: "/placeholder-kit.svg", Placeholder: true}
}

func (m *MockImageResolver) PlayerPhoto(ctx context.Context, p models.Player, teamCode int) models.ImageResult {
	if m.PhotoFunc != nil {
		return m.PhotoFunc(ctx, p, teamCode)
	}
	return models.ImageResult{URL: "/placeholder-player.svg", Placeholder: true}
}

// MockTeamSource
type MockTeamSource struct {
	BootstrapFunc func(ctx context.Context) (*models.Bootstrap, error)
}

func (m *MockTeamSource) Bootstrap(ctx context.Context) (*models.Bootstrap, error) {
	if m.BootstrapFunc != nil {
		return m.BootstrapFunc(ctx)
	}
	return &models.Bootstrap{
		Teams:   []models.Team{{ID: 1, Code: 3, Name: "Arsenal", ShortName: "ARS"}},
		Players: []models.Player{{ID: 10, WebName: "Saka", TeamID: 1, Photo: "223340.jpg"}},
	}, nil
}

// MockPinger
type MockPinger struct {
	Err error
}

func (m *MockPinger) Ping(ctx context.Context) error { return m.Err }

// newTestHandler wires mocks with defaults for every service.
func newTestHandler(cfg Config) *Handler {
	if cfg.Advisor == nil {
		cfg.Advisor = &MockAdvisorService{}
	}
	if cfg.Insights == nil {
		cfg.Insights = &MockPlayerInsightService{}
	}
	if cfg.Fixtures == nil {
		cfg.Fixtures = &MockFixtureService{}
	}
	if cfg.Squads == nil {
		cfg.Squads = &MockSquadService{}
	}
	if cfg.Leagues == nil {
		cfg.Leagues = &MockLeagueService{}
	}
	if cfg.Live == nil {
		cfg.Live = &MockLiveService{}
	}
	if cfg.Notifications == nil {
		cfg.Notifications = &MockNotificationService{}
	}
	if cfg.Teams == nil {
		cfg.Teams = &MockTeamSource{}
	}
	if cfg.Images == nil {
		cfg.Images = &MockImageResolver{}
	}
	return New(cfg)
}
