package logic

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/fpladvisor/advisor-api/internal/fpl"
	"github.com/fpladvisor/advisor-api/internal/models"
)

type leagueService struct {
	source FPLSource
	logger *zap.SugaredLogger
}

func NewLeagueService(source FPLSource, logger *zap.Logger) LeagueService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &leagueService{source: source, logger: logger.Sugar()}
}

// Standings returns one page of a classic league's standings.
func (s *leagueService) Standings(ctx context.Context, leagueID, page int) (*models.LeagueStandings, error) {
	if leagueID <= 0 {
		return nil, ValidationError("invalid league id %d: must be a positive integer", leagueID)
	}
	if page < 1 {
		page = 1
	}

	st, err := s.source.LeagueStandings(ctx, leagueID, page)
	if errors.Is(err, fpl.ErrNotFound) {
		s.logger.Debugw("League not found", "league", leagueID, "page", page)
		return nil, NotFoundError("league %d does not exist or is private", leagueID)
	}
	if err != nil {
		return nil, fmt.Errorf("league %d standings: %w", leagueID, err)
	}
	if st.Standings.Results == nil {
		st.Standings.Results = []models.StandingRow{}
	}
	return st, nil
}
