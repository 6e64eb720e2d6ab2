package logic

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/fpladvisor/advisor-api/internal/models"
	"github.com/fpladvisor/advisor-api/internal/scoring"
	"github.com/fpladvisor/advisor-api/internal/worker"
)

const (
	maxCaptainSuggestions = 4
	neutralConfidence     = 55.0
	signalsConfidence     = 65.0
	materialDiscipline    = 0.98
)

// teamContext is the enrichment gathered for one gameweek, keyed by team id.
type teamContext struct {
	signals map[int]*models.TeamSignals
	odds    map[int]float64
	league  scoring.LeagueStrengths
}

// SuggestCaptain ranks the starting XI by captaincy value. Missing or slow
// enrichment falls back to neutral match rates.
func (s *advisorService) SuggestCaptain(ctx context.Context, entryID int, sel models.GameweekSelector) (*models.CaptainResult, error) {
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

	fixtures, err := s.source.Fixtures(ctx, rp.gameweek)
	if err != nil {
		return nil, fmt.Errorf("fixtures gw %d: %w", rp.gameweek, err)
	}
	idx := scoring.NewFixtureIndex(fixtures)

	lineup, _ := buildLineup(rp.picks.Picks, boot, idx)
	if len(lineup.Starters) == 0 {
		return nil, NotFoundError("entry %d has no starting XI in gameweek %d", entryID, rp.gameweek)
	}

	tc := s.enrich(ctx, boot, idx, lineup.Starters)

	suggestions := make([]models.CaptainSuggestion, 0, len(lineup.Starters))
	for _, lp := range lineup.Starters {
		p, ok := boot.Player(lp.ID)
		if !ok {
			continue
		}
		suggestions = append(suggestions, captainSuggestion(*p, boot, idx, tc))
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		if suggestions[i].CaptainPts != suggestions[j].CaptainPts {
			return suggestions[i].CaptainPts > suggestions[j].CaptainPts
		}
		return suggestions[i].ID < suggestions[j].ID
	})
	if len(suggestions) > maxCaptainSuggestions {
		suggestions = suggestions[:maxCaptainSuggestions]
	}

	return &models.CaptainResult{
		EntryID:     entryID,
		Gameweek:    rp.gameweek,
		Source:      rp.source,
		Suggestions: suggestions,
	}, nil
}

// enrich gathers team signals for every starter's club and opponents on the
// worker pool, alongside the clean-sheet odds. It never fails.
func (s *advisorService) enrich(ctx context.Context, boot *models.Bootstrap, idx *scoring.FixtureIndex, starters []models.LineupPlayer) teamContext {
	seen := map[int]bool{}
	var teams []models.Team
	add := func(id int) {
		if seen[id] {
			return
		}
		seen[id] = true
		if t, ok := boot.Team(id); ok {
			teams = append(teams, *t)
		}
	}
	for _, lp := range starters {
		add(lp.TeamID)
		for _, f := range idx.Fixtures(lp.TeamID) {
			add(f.OpponentID)
		}
	}

	tc := teamContext{
		signals: make(map[int]*models.TeamSignals, len(teams)),
		odds:    map[int]float64{},
		league:  scoring.NewLeagueStrengths(boot.Teams),
	}

	var g errgroup.Group
	g.Go(func() error {
		results := worker.Map(ctx, s.pool, teams,
			func(ctx context.Context, t models.Team) (*models.TeamSignals, error) {
				return s.signals.TeamSignals(ctx, t)
			},
			func(t models.Team, err error) *models.TeamSignals {
				s.logger.Debugw("Team signals unavailable", "team", t.ID, "error", err)
				return nil
			},
		)
		for i, t := range teams {
			tc.signals[t.ID] = results[i]
		}
		return nil
	})
	g.Go(func() error {
		probs, err := s.cleanSheets.CleanSheetProbabilities(ctx, boot.Teams)
		if err != nil {
			s.logger.Warnw("Clean sheet odds unavailable", "error", err)
			return nil
		}
		if probs != nil {
			tc.odds = probs
		}
		return nil
	})
	_ = g.Wait()
	return tc
}

// matchRates averages the team and opponent scoring rates over a team's
// fixtures. used reports whether every fixture had both teams' signals.
func matchRates(teamID int, boot *models.Bootstrap, idx *scoring.FixtureIndex, tc teamContext) (teamLambda, oppLambda float64, used bool) {
	fx := idx.Fixtures(teamID)
	if len(fx) == 0 {
		return scoring.NeutralTeamLambda, scoring.NeutralOpponentLambda, false
	}

	team, okTeam := boot.Team(teamID)
	used = true
	for _, f := range fx {
		opp, okOpp := boot.Team(f.OpponentID)
		sigTeam, sigOpp := tc.signals[teamID], tc.signals[f.OpponentID]
		if !okTeam || !okOpp || sigTeam == nil || sigOpp == nil {
			teamLambda += scoring.NeutralTeamLambda
			oppLambda += scoring.NeutralOpponentLambda
			used = false
			continue
		}

		var lam models.MatchLambdas
		if f.Home {
			lam, _ = scoring.MatchLambdas(*team, *opp, tc.league, sigTeam, sigOpp)
			teamLambda += lam.Home
			oppLambda += lam.Away
		} else {
			lam, _ = scoring.MatchLambdas(*opp, *team, tc.league, sigOpp, sigTeam)
			teamLambda += lam.Away
			oppLambda += lam.Home
		}
	}
	n := float64(len(fx))
	return teamLambda / n, oppLambda / n, used
}

func captainSuggestion(p models.Player, boot *models.Bootstrap, idx *scoring.FixtureIndex, tc teamContext) models.CaptainSuggestion {
	base := scoring.ExpectedPoints(p, idx)
	minP := scoring.MinutesProbability(p)

	teamLambda, oppLambda, used := matchRates(p.TeamID, boot, idx, tc)
	confBase := neutralConfidence
	if used {
		confBase = signalsConfidence
	}

	cs := scoring.CleanSheetProbability(oppLambda)
	if prob, ok := tc.odds[p.TeamID]; ok && prob > 0 {
		cs = prob
	}

	share := scoring.InvolvementShare(p, scoring.TeamInvolvement(boot.Players, p.TeamID))
	goalWeight := scoring.GoalWeight(p)
	involvement := scoring.InvolvementPoints(teamLambda, share, goalWeight, p.Position)
	discipline := scoring.DisciplineMultiplier(p)

	smart := scoring.SmartExpectedPoints(scoring.CaptainInputs{
		Base:        base,
		Involvement: involvement,
		CleanSheet:  scoring.CleanSheetPoints(p.Position) * cs,
		Discipline:  discipline,
		MinutesP:    minP,
	})

	opponent := opponentLabel(p.TeamID, boot, idx)
	reasons := []string{
		"vs " + opponent,
		fmt.Sprintf("Team λ: %.2f, Opp λ: %.2f, CS %.0f%%", teamLambda, oppLambda, cs*100),
		fmt.Sprintf("xGI/90 share %.0f%% (goal bias %.0f%%)", share*100, goalWeight*100),
		fmt.Sprintf("Minutes %.0f%%", minP*100),
	}
	if discipline < materialDiscipline {
		reasons = append(reasons, fmt.Sprintf("Discipline -%.0f%%", (1-discipline)*100))
	}

	return models.CaptainSuggestion{
		ID:         p.ID,
		Name:       p.DisplayName(),
		Pos:        p.Position,
		TeamID:     p.TeamID,
		TeamShort:  boot.TeamShort(p.TeamID, ""),
		Opponent:   opponent,
		MinutesP:   scoring.Round(minP, 2),
		BaseEPts:   scoring.Round(base, 2),
		SmartEPts:  scoring.Round(smart, 2),
		CaptainPts: scoring.Round(2*smart, 2),
		Confidence: math.Round(scoring.CaptainConfidence(confBase, minP)),
		Reasons:    reasons,
	}
}

// opponentLabel renders "ARS (H)", joining double gameweek opponents.
func opponentLabel(teamID int, boot *models.Bootstrap, idx *scoring.FixtureIndex) string {
	opps := idx.Opponents(teamID, boot)
	if len(opps) == 0 {
		return "no fixture"
	}
	labels := make([]string, len(opps))
	for i, o := range opps {
		venue := "A"
		if o.Home {
			venue = "H"
		}
		labels[i] = fmt.Sprintf("%s (%s)", o.OpponentShort, venue)
	}
	return strings.Join(labels, ", ")
}
