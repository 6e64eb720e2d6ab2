// Package logic implements the recommendation engines and insight services
// over the FPL data source. Services are constructed once with their
// dependencies and are safe for concurrent use; no request state is shared.
package logic

import (
	"context"

	"github.com/fpladvisor/advisor-api/internal/models"
)

// FPLSource is the read side of the FPL API used by the services.
// *fpl.Client implements it.
type FPLSource interface {
	Bootstrap(ctx context.Context) (*models.Bootstrap, error)
	Fixtures(ctx context.Context, gw int) ([]models.Fixture, error)
	Entry(ctx context.Context, entryID int) (*models.Entry, error)
	Picks(ctx context.Context, entryID, gw int) (*models.Picks, error)
	History(ctx context.Context, entryID int) (*models.EntryHistory, error)
	LeagueStandings(ctx context.Context, leagueID, page int) (*models.LeagueStandings, error)
	Live(ctx context.Context, gw int) (*models.LiveEvent, error)
}

// AdvisorService builds lineups and transfer and captain recommendations
// for a manager.
type AdvisorService interface {
	GetLineup(ctx context.Context, entryID int, sel models.GameweekSelector) (*models.LineupResult, error)
	SuggestTransfers(ctx context.Context, entryID int, sel models.GameweekSelector) (*models.TransfersResult, error)
	SuggestCaptain(ctx context.Context, entryID int, sel models.GameweekSelector) (*models.CaptainResult, error)
}

// PlayerInsightService ranks the player pool.
type PlayerInsightService interface {
	Differentials(ctx context.Context, f DifferentialFilter) ([]models.Differential, error)
	ValuePicks(ctx context.Context, f ValueFilter) ([]models.ValuePick, error)
	PriceMovements(ctx context.Context) (*models.PriceMovements, error)
	InjuryNews(ctx context.Context, limit int) ([]models.InjuryNews, error)
	SearchPlayers(ctx context.Context, query string, pos models.Position, limit int) ([]models.PlayerMatch, error)
	TransferTrends(ctx context.Context, limit int) (*models.TransferTrends, error)
}

// FixtureService plans fixture runs and predicts match scores.
type FixtureService interface {
	Planner(ctx context.Context, horizon int) (*models.FixturePlan, error)
	Predictions(ctx context.Context, sel models.GameweekSelector) ([]models.MatchPrediction, error)
}

// SquadService generates squads and chip plans.
type SquadService interface {
	OptimalSquad(ctx context.Context, formation string) (*models.Squad, error)
	ChipStrategy(ctx context.Context, entryID int) (*models.ChipStrategy, error)
}

// LeagueService reads mini-league standings.
type LeagueService interface {
	Standings(ctx context.Context, leagueID, page int) (*models.LeagueStandings, error)
}

// LiveService tracks the gameweek in progress.
type LiveService interface {
	LiveGameweek(ctx context.Context, entryID int) (*models.LiveGameweekResult, error)
}

// NotificationService builds the alert feed.
type NotificationService interface {
	Notifications(ctx context.Context) (*models.NotificationFeed, error)
}
