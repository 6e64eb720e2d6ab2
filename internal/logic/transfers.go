package logic

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/fpladvisor/advisor-api/internal/models"
	"github.com/fpladvisor/advisor-api/internal/scoring"
)

const (
	maxTransferSuggestions = 3
	maxPlayersPerClub      = 3
)

type transferCandidate struct {
	out, in *models.Player
	ePtsOut float64
	ePtsIn  float64
	delta   float64
}

// SuggestTransfers ranks single-player swaps by expected points gained.
// Rostered players are scored on the picks gameweek's fixtures and the pool
// on the display gameweek's.
func (s *advisorService) SuggestTransfers(ctx context.Context, entryID int, sel models.GameweekSelector) (*models.TransfersResult, error) {
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
	displayGW := displayGameweek(boot.Gameweeks, sel, rp.gameweek)

	var picksFixtures, displayFixtures []models.Fixture
	var names entryNames
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		picksFixtures, err = s.source.Fixtures(gctx, rp.gameweek)
		if err != nil {
			return fmt.Errorf("fixtures gw %d: %w", rp.gameweek, err)
		}
		return nil
	})
	if displayGW != rp.gameweek {
		g.Go(func() error {
			var err error
			displayFixtures, err = s.source.Fixtures(gctx, displayGW)
			if err != nil {
				return fmt.Errorf("fixtures gw %d: %w", displayGW, err)
			}
			return nil
		})
	}
	g.Go(func() error {
		names = s.lookupNames(gctx, entryID)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if displayGW == rp.gameweek {
		displayFixtures = picksFixtures
	}

	picksIdx := scoring.NewFixtureIndex(picksFixtures)
	displayIdx := scoring.NewFixtureIndex(displayFixtures)

	bank := rp.picks.EntryHistory.Bank
	suggestions := rankTransfers(rp.picks.Picks, boot, picksIdx, displayIdx, bank)

	lineup, dropped := buildLineup(rp.picks.Picks, boot, displayIdx)
	if len(dropped) > 0 {
		s.logger.Debugw("Dropped unresolvable picks", "entry", entryID, "elements", dropped)
	}

	return &models.TransfersResult{
		EntryID:         entryID,
		Gameweek:        rp.gameweek,
		DisplayGameweek: displayGW,
		Source:          rp.source,
		Bank:            scoring.Round(float64(bank)/10, 1),
		Suggestions:     suggestions,
		Lineup:          lineup,
		ManagerName:     names.manager,
		TeamName:        names.team,
	}, nil
}

// displayGameweek is the gameweek whose fixtures score incoming players.
func displayGameweek(gws []models.Gameweek, sel models.GameweekSelector, picksGW int) int {
	switch sel.Kind {
	case models.SelectNumber:
		return sel.Number
	case models.SelectNext:
		for _, gw := range gws {
			if gw.IsNext {
				return gw.ID
			}
		}
	}
	return picksGW
}

// rankTransfers enumerates every eligible (out, in) pair. Budget checks are
// done in tenths so they are exact.
func rankTransfers(picks []models.Pick, boot *models.Bootstrap, picksIdx, displayIdx *scoring.FixtureIndex, bank int) []models.TransferSuggestion {
	rostered := make(map[int]bool, len(picks))
	clubCount := map[int]int{}
	var squad []*models.Player
	for _, pk := range picks {
		p, ok := boot.Player(pk.Element)
		if !ok {
			continue
		}
		rostered[p.ID] = true
		clubCount[p.TeamID]++
		squad = append(squad, p)
	}

	outPts := make(map[int]float64, len(squad))
	for _, p := range squad {
		outPts[p.ID] = scoring.ExpectedPoints(*p, picksIdx)
	}

	var pool []*models.Player
	inPts := map[int]float64{}
	for i := range boot.Players {
		p := &boot.Players[i]
		if rostered[p.ID] || p.Status == models.StatusInjured {
			continue
		}
		pool = append(pool, p)
		inPts[p.ID] = scoring.ExpectedPoints(*p, displayIdx)
	}

	var positive []transferCandidate
	var best *transferCandidate
	for _, out := range squad {
		for _, in := range pool {
			if in.Position != out.Position {
				continue
			}
			if in.NowCost > bank+out.NowCost {
				continue
			}
			if in.TeamID != out.TeamID && clubCount[in.TeamID] >= maxPlayersPerClub {
				continue
			}
			c := transferCandidate{
				out:     out,
				in:      in,
				ePtsOut: outPts[out.ID],
				ePtsIn:  inPts[in.ID],
			}
			c.delta = c.ePtsIn - c.ePtsOut
			if c.delta > 0 {
				positive = append(positive, c)
			}
			if best == nil || betterTransfer(c, *best) {
				cc := c
				best = &cc
			}
		}
	}

	if len(positive) == 0 {
		if best == nil {
			return []models.TransferSuggestion{}
		}
		return []models.TransferSuggestion{best.suggestion()}
	}

	sort.Slice(positive, func(i, j int) bool { return betterTransfer(positive[i], positive[j]) })
	if len(positive) > maxTransferSuggestions {
		positive = positive[:maxTransferSuggestions]
	}
	out := make([]models.TransferSuggestion, len(positive))
	for i, c := range positive {
		out[i] = c.suggestion()
	}
	return out
}

// betterTransfer orders by delta, then larger outgoing price, then in id.
func betterTransfer(a, b transferCandidate) bool {
	if a.delta != b.delta {
		return a.delta > b.delta
	}
	if a.out.NowCost != b.out.NowCost {
		return a.out.NowCost > b.out.NowCost
	}
	return a.in.ID < b.in.ID
}

func (c transferCandidate) suggestion() models.TransferSuggestion {
	return models.TransferSuggestion{
		Pos:      c.out.Position,
		OutID:    c.out.ID,
		OutName:  c.out.DisplayName(),
		PriceOut: scoring.Round(c.out.Price(), 1),
		EPtsOut:  scoring.Round(c.ePtsOut, 2),
		InID:     c.in.ID,
		InName:   c.in.DisplayName(),
		PriceIn:  scoring.Round(c.in.Price(), 1),
		EPtsIn:   scoring.Round(c.ePtsIn, 2),
		Delta:    scoring.Round(c.delta, 2),
	}
}
