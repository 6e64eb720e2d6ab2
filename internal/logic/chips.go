package logic

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/fpladvisor/advisor-api/internal/models"
	"github.com/fpladvisor/advisor-api/internal/scoring"
)

// Chip identifiers as reported by the FPL API.
const (
	ChipWildcard      = "wildcard"
	ChipBenchBoost    = "bboost"
	ChipTripleCaptain = "3xc"
	ChipFreeHit       = "freehit"
)

const (
	chipLookahead      = 15
	upcomingLookahead  = 10
	upcomingLimit      = 5
	normalFixtureCount = 10
	dgwTeamThreshold   = 4
	wildcardFallbackGW = 8
)

var chipNames = []struct{ name, display string }{
	{ChipWildcard, "Wildcard"},
	{ChipBenchBoost, "Bench Boost"},
	{ChipTripleCaptain, "Triple Captain"},
	{ChipFreeHit, "Free Hit"},
}

// gameweekShape summarises one future gameweek's fixture list.
type gameweekShape struct {
	fixtures int
	double   bool
	blank    bool
	strength float64
}

// ChipStrategy reports which chips a manager has left and suggests a
// gameweek for each, based on upcoming double and blank gameweeks.
func (s *squadService) ChipStrategy(ctx context.Context, entryID int) (*models.ChipStrategy, error) {
	if err := validateEntryID(entryID); err != nil {
		return nil, err
	}

	var (
		boot     *models.Bootstrap
		fixtures []models.Fixture
		entry    *models.Entry
		history  *models.EntryHistory
	)
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
	g.Go(func() error {
		var err error
		if entry, err = s.source.Entry(gctx, entryID); err != nil {
			return fmt.Errorf("entry %d: %w", entryID, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if history, err = s.source.History(gctx, entryID); err != nil {
			// chip usage degrades to "unused"
			s.logger.Warnw("History lookup failed", "entry", entryID, "error", err)
			history = &models.EntryHistory{}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	current := scoring.ResolveGameweek(boot.Gameweeks, models.CurrentGameweek)
	used := chipsUsed(history)
	shapes := gameweekShapes(boot, fixtures, current)

	var dgws, bgws []int
	for gw := current + 1; gw <= current+chipLookahead; gw++ {
		sh, ok := shapes[gw]
		if !ok {
			continue
		}
		if sh.double {
			dgws = append(dgws, gw)
		}
		if sh.blank {
			bgws = append(bgws, gw)
		}
	}

	res := &models.ChipStrategy{
		EntryID:         entryID,
		ManagerName:     entry.ManagerName(),
		TeamName:        entry.Name,
		OverallPoints:   entry.SummaryOverallPoints,
		OverallRank:     entry.SummaryOverallRank,
		CurrentGameweek: current,
		Upcoming:        []models.UpcomingGameweek{},
	}
	for _, c := range chipNames {
		st := models.ChipStatus{Name: c.name, DisplayName: c.display}
		if gw, ok := used[c.name]; ok {
			st.Used = true
			st.UsedIn = gw
		}
		res.Chips = append(res.Chips, st)
	}
	res.Recommendations = recommendChips(used, current, dgws, bgws, easiestGameweek(shapes))

	for _, gw := range boot.Gameweeks {
		if gw.ID <= current || gw.ID > current+upcomingLookahead {
			continue
		}
		sh := shapes[gw.ID]
		res.Upcoming = append(res.Upcoming, models.UpcomingGameweek{
			ID:           gw.ID,
			Name:         gw.Name,
			DeadlineTime: gw.DeadlineTime,
			FixtureCount: sh.fixtures,
			IsDouble:     sh.double,
			IsBlank:      sh.blank,
		})
		if gw.IsNext {
			res.NextDeadline = gw.DeadlineTime
			res.NextDeadlineGWID = gw.ID
		}
	}
	sort.SliceStable(res.Upcoming, func(i, j int) bool { return res.Upcoming[i].ID < res.Upcoming[j].ID })
	if len(res.Upcoming) > upcomingLimit {
		res.Upcoming = res.Upcoming[:upcomingLimit]
	}
	return res, nil
}

// chipsUsed maps each played chip to the gameweek it was played in.
func chipsUsed(history *models.EntryHistory) map[string]int {
	used := map[string]int{}
	for _, c := range history.Chips {
		if c.Name != "" {
			used[c.Name] = c.Event
		}
	}
	for _, row := range history.Current {
		if row.ActiveChip != "" {
			if _, ok := used[row.ActiveChip]; !ok {
				used[row.ActiveChip] = row.Event
			}
		}
	}
	return used
}

// gameweekShapes classifies every gameweek after current. A double gameweek
// has at least four teams playing twice or more than ten fixtures; a blank
// gameweek has fewer than eight.
func gameweekShapes(boot *models.Bootstrap, fixtures []models.Fixture, current int) map[int]gameweekShape {
	byGW := map[int][]models.Fixture{}
	for _, f := range fixtures {
		if f.Event > current && f.Event <= current+chipLookahead {
			byGW[f.Event] = append(byGW[f.Event], f)
		}
	}

	shapes := make(map[int]gameweekShape, len(byGW))
	for gw, fx := range byGW {
		perTeam := map[int]int{}
		strength, counted := 0.0, 0
		for _, f := range fx {
			perTeam[f.TeamH]++
			perTeam[f.TeamA]++
			home, okH := boot.Team(f.TeamH)
			away, okA := boot.Team(f.TeamA)
			if okH && okA {
				strength += float64(home.Strength+away.Strength) / 2
				counted++
			}
		}
		multi := 0
		for _, n := range perTeam {
			if n >= 2 {
				multi++
			}
		}
		sh := gameweekShape{
			fixtures: len(fx),
			double:   multi >= dgwTeamThreshold || len(fx) > normalFixtureCount,
			blank:    len(fx) < normalFixtureCount-2,
		}
		if counted > 0 {
			sh.strength = strength / float64(counted)
		}
		shapes[gw] = sh
	}
	return shapes
}

// easiestGameweek is the future gameweek with the weakest average opposition,
// or 0 when none is known.
func easiestGameweek(shapes map[int]gameweekShape) int {
	best, bestStrength := 0, 0.0
	for gw, sh := range shapes {
		if sh.strength <= 0 {
			continue
		}
		if best == 0 || sh.strength < bestStrength || (sh.strength == bestStrength && gw < best) {
			best, bestStrength = gw, sh.strength
		}
	}
	return best
}

func gwPtr(gw int) *int {
	if gw <= 0 {
		return nil
	}
	return &gw
}

func recommendChips(used map[string]int, current int, dgws, bgws []int, easiest int) []models.ChipRecommendation {
	firstDGW, firstBGW := 0, 0
	if len(dgws) > 0 {
		firstDGW = dgws[0]
	}
	if len(bgws) > 0 {
		firstBGW = bgws[0]
	}

	var recs []models.ChipRecommendation
	add := func(chip string, gw int, reason string, priority int) {
		if _, ok := used[chip]; ok {
			recs = append(recs, models.ChipRecommendation{Chip: chip, Reason: "Already used", Priority: 0})
			return
		}
		recs = append(recs, models.ChipRecommendation{Chip: chip, RecommendedGW: gwPtr(gw), Reason: reason, Priority: priority})
	}

	if firstDGW > 0 {
		add(ChipWildcard, firstDGW-1, fmt.Sprintf("Play in GW%d to build a squad for double gameweek %d", firstDGW-1, firstDGW), 3)
		add(ChipBenchBoost, firstDGW, fmt.Sprintf("Save for GW%d, a double gameweek", firstDGW), 5)
		add(ChipTripleCaptain, firstDGW, fmt.Sprintf("Use in GW%d on a premium captain with two fixtures", firstDGW), 5)
	} else {
		add(ChipWildcard, current+wildcardFallbackGW, fmt.Sprintf("Hold until around GW%d to refresh the squad", current+wildcardFallbackGW), 3)
		add(ChipBenchBoost, 0, "Wait for a double gameweek to be announced", 4)
		if easiest > 0 {
			add(ChipTripleCaptain, easiest, fmt.Sprintf("GW%d has the weakest opposition on average", easiest), 4)
		} else {
			add(ChipTripleCaptain, 0, "Wait for a double gameweek or an easy fixture", 4)
		}
	}

	if firstBGW > 0 {
		add(ChipFreeHit, firstBGW, fmt.Sprintf("Save for GW%d, a blank gameweek", firstBGW), 5)
	} else {
		add(ChipFreeHit, 0, "Wait for a blank gameweek to be announced", 3)
	}
	return recs
}
