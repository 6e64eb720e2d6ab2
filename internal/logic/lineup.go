package logic

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/fpladvisor/advisor-api/internal/fpl"
	"github.com/fpladvisor/advisor-api/internal/models"
	"github.com/fpladvisor/advisor-api/internal/scoring"
)

// maxPicksAttempts bounds the picks fallback chain. A manager id that does not
// exist 404s on every gameweek.
const maxPicksAttempts = 8

// BuildLineup resolves picks against bootstrap data and splits them into
// starters and bench, each ordered by slot. Picks whose player or team is
// unknown are dropped. The provider's XI is taken as given.
func BuildLineup(picks []models.Pick, boot *models.Bootstrap, fixtures []models.Fixture) models.Lineup {
	lineup, _ := buildLineup(picks, boot, scoring.NewFixtureIndex(fixtures))
	return lineup
}

func buildLineup(picks []models.Pick, boot *models.Bootstrap, idx *scoring.FixtureIndex) (models.Lineup, []int) {
	sorted := make([]models.Pick, len(picks))
	copy(sorted, picks)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].SortSlot() < sorted[j].SortSlot() })

	lineup := models.Lineup{
		Starters: []models.LineupPlayer{},
		Bench:    []models.LineupPlayer{},
	}
	var dropped []int
	for _, pk := range sorted {
		p, ok := boot.Player(pk.Element)
		if !ok {
			dropped = append(dropped, pk.Element)
			continue
		}
		team, ok := boot.Team(p.TeamID)
		if !ok {
			dropped = append(dropped, pk.Element)
			continue
		}
		code := team.Code
		if code == 0 {
			code = team.ID
		}
		lp := models.LineupPlayer{
			ID:         p.ID,
			Name:       p.DisplayName(),
			Pos:        p.Position,
			TeamID:     team.ID,
			TeamCode:   code,
			TeamShort:  team.Label(),
			Slot:       pk.Position,
			Multiplier: pk.Multiplier,
			IsCaptain:  pk.IsCaptain,
			IsVice:     pk.IsViceCaptain,
			Fixtures:   idx.Opponents(team.ID, boot),
		}
		if pk.IsStarter() {
			lineup.Starters = append(lineup.Starters, lp)
		} else {
			lineup.Bench = append(lineup.Bench, lp)
		}
	}
	return lineup, dropped
}

// resolvedPicks is a manager's squad and the gameweek it was found in.
type resolvedPicks struct {
	picks    *models.Picks
	gameweek int
	source   string
}

// resolvePicks walks the picks fallback chain. A 404 moves on to the next
// candidate; any other error stops the walk.
func (s *advisorService) resolvePicks(ctx context.Context, entryID int, boot *models.Bootstrap, sel models.GameweekSelector) (*resolvedPicks, error) {
	candidates := scoring.PicksCandidates(boot.Gameweeks, sel, s.now())
	if len(candidates) > maxPicksAttempts {
		candidates = candidates[:maxPicksAttempts]
	}

	for _, c := range candidates {
		picks, err := s.source.Picks(ctx, entryID, c.Gameweek)
		if errors.Is(err, fpl.ErrNotFound) {
			s.logger.Debugw("No picks for gameweek", "entry", entryID, "gw", c.Gameweek)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("picks for entry %d gw %d: %w", entryID, c.Gameweek, err)
		}
		if len(picks.Picks) == 0 {
			continue
		}
		return &resolvedPicks{picks: picks, gameweek: c.Gameweek, source: c.Source}, nil
	}
	return nil, NotFoundError("no picks found for entry %d, check the manager id or try a different gameweek", entryID)
}

// GetLineup returns a manager's starters and bench for the resolved gameweek.
func (s *advisorService) GetLineup(ctx context.Context, entryID int, sel models.GameweekSelector) (*models.LineupResult, error) {
	if err := validateEntryID(entryID); err != nil {
		return nil, err
	}

	boot, err := s.source.Bootstrap(ctx)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: %w", err)
	}

	rp, err := s.resolvePicks(ctx, entryID, boot, sel)
	if err != nil {
		return nil, err
	}

	fixtures, names, err := s.fixturesAndNames(ctx, entryID, rp.gameweek)
	if err != nil {
		return nil, err
	}

	lineup, dropped := buildLineup(rp.picks.Picks, boot, scoring.NewFixtureIndex(fixtures))
	if len(dropped) > 0 {
		s.logger.Debugw("Dropped unresolvable picks", "entry", entryID, "elements", dropped)
	}

	return &models.LineupResult{
		EntryID:     entryID,
		Gameweek:    rp.gameweek,
		Source:      rp.source,
		ActiveChip:  rp.picks.ActiveChip,
		ManagerName: names.manager,
		TeamName:    names.team,
		Lineup:      lineup,
	}, nil
}
