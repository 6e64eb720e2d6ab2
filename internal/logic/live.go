package logic

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/fpladvisor/advisor-api/internal/fpl"
	"github.com/fpladvisor/advisor-api/internal/models"
)

const topPerformerLimit = 10

// LiveConfig holds the live service's dependencies.
type LiveConfig struct {
	Source FPLSource
	Logger *zap.Logger
}

type liveService struct {
	source FPLSource
	logger *zap.SugaredLogger
}

func NewLiveService(cfg LiveConfig) LiveService {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &liveService{source: cfg.Source, logger: logger.Sugar()}
}

// LiveGameweek scores a manager's squad against the live feed of the
// gameweek flagged as current.
func (s *liveService) LiveGameweek(ctx context.Context, entryID int) (*models.LiveGameweekResult, error) {
	if err := validateEntryID(entryID); err != nil {
		return nil, err
	}

	boot, err := s.source.Bootstrap(ctx)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: %w", err)
	}
	var gw *models.Gameweek
	for i := range boot.Gameweeks {
		if boot.Gameweeks[i].IsCurrent {
			gw = &boot.Gameweeks[i]
			break
		}
	}
	if gw == nil {
		return nil, NotFoundError("no gameweek is in progress")
	}

	var (
		live     *models.LiveEvent
		picks    *models.Picks
		fixtures []models.Fixture
		entry    *models.Entry
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if live, err = s.source.Live(gctx, gw.ID); err != nil {
			return fmt.Errorf("live gw %d: %w", gw.ID, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		picks, err = s.source.Picks(gctx, entryID, gw.ID)
		if errors.Is(err, fpl.ErrNotFound) {
			return NotFoundError("no picks found for entry %d in gameweek %d", entryID, gw.ID)
		}
		if err != nil {
			return fmt.Errorf("picks gw %d: %w", gw.ID, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if fixtures, err = s.source.Fixtures(gctx, gw.ID); err != nil {
			return fmt.Errorf("fixtures gw %d: %w", gw.ID, err)
		}
		return nil
	})
	g.Go(func() error {
		e, err := s.source.Entry(gctx, entryID)
		if err != nil {
			s.logger.Warnw("Entry lookup failed", "entry", entryID, "error", err)
			return nil
		}
		entry = e
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &models.LiveGameweekResult{
		EntryID: entryID,
		Gameweek: models.LiveGameweekInfo{
			ID:           gw.ID,
			Name:         gw.Name,
			DeadlineTime: gw.DeadlineTime,
			AverageScore: gw.AverageEntryScore,
			HighestScore: gw.HighestScore,
			Finished:     gw.Finished,
		},
		Team:       summarizeEntry(entry, picks),
		Players:    []models.LivePlayer{},
		InProgress: []string{},
	}

	idx := live.Index()
	for _, pk := range picks.Picks {
		el := idx[pk.Element]
		lp := models.LivePlayer{
			ID:            pk.Element,
			Name:          fmt.Sprintf("Player %d", pk.Element),
			Slot:          pk.Position,
			Multiplier:    pk.Multiplier,
			Points:        el.Stats.TotalPoints,
			TotalPoints:   el.Stats.TotalPoints * pk.Multiplier,
			IsCaptain:     pk.IsCaptain,
			IsViceCaptain: pk.IsViceCaptain,
			Stats:         el.Stats,
		}
		if len(el.Fixtures) > 0 {
			lp.FixtureID = el.Fixtures[0]
		}
		if p, ok := boot.Player(pk.Element); ok {
			lp.Name = p.DisplayName()
			lp.TeamShort = boot.TeamShort(p.TeamID, "")
			lp.Pos = p.Position
		}
		res.Team.LivePoints += lp.TotalPoints
		if pk.IsCaptain {
			res.Team.CaptainPoints = lp.TotalPoints
		}
		res.Players = append(res.Players, lp)
	}
	sort.SliceStable(res.Players, func(i, j int) bool { return res.Players[i].Slot < res.Players[j].Slot })
	res.Team.NetPoints = res.Team.LivePoints - res.Team.TransfersCost

	res.TopPerformers = topPerformers(boot, live)
	res.Fixtures, res.InProgress = liveFixtures(boot, fixtures)
	return res, nil
}

func summarizeEntry(entry *models.Entry, picks *models.Picks) models.LiveTeamSummary {
	sum := models.LiveTeamSummary{
		ManagerName:   unknownManager,
		TeamName:      unknownTeam,
		Transfers:     picks.EntryHistory.EventTransfers,
		TransfersCost: picks.EntryHistory.EventTransfersCost,
		ActiveChip:    picks.ActiveChip,
	}
	if entry == nil {
		return sum
	}
	if n := entry.ManagerName(); n != "" {
		sum.ManagerName = n
	}
	if entry.Name != "" {
		sum.TeamName = entry.Name
	}
	sum.OverallPoints = entry.SummaryOverallPoints
	sum.OverallRank = entry.SummaryOverallRank
	return sum
}

// topPerformers returns the highest live scorers across the whole pool.
func topPerformers(boot *models.Bootstrap, live *models.LiveEvent) []models.LivePerformer {
	out := []models.LivePerformer{}
	for _, el := range live.Elements {
		if el.Stats.TotalPoints <= 0 {
			continue
		}
		lp := models.LivePerformer{ID: el.ID, Points: el.Stats.TotalPoints, Stats: el.Stats}
		if p, ok := boot.Player(el.ID); ok {
			lp.Name = p.DisplayName()
			lp.TeamShort = boot.TeamShort(p.TeamID, "")
			lp.Pos = p.Position
		}
		out = append(out, lp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Points != out[j].Points {
			return out[i].Points > out[j].Points
		}
		return out[i].ID < out[j].ID
	})
	if len(out) > topPerformerLimit {
		out = out[:topPerformerLimit]
	}
	return out
}

func liveFixtures(boot *models.Bootstrap, fixtures []models.Fixture) ([]models.LiveFixture, []string) {
	side := func(teamID int, score *int) models.LiveSide {
		ls := models.LiveSide{TeamID: teamID, Score: score}
		if t, ok := boot.Team(teamID); ok {
			ls.Name = t.Name
			ls.ShortName = t.ShortName
		}
		return ls
	}

	out := make([]models.LiveFixture, 0, len(fixtures))
	playing := []string{}
	for _, f := range fixtures {
		lf := models.LiveFixture{
			ID:          f.ID,
			KickoffTime: f.KickoffTime,
			Started:     f.Started,
			Finished:    f.Finished,
			Home:        side(f.TeamH, f.TeamHScore),
			Away:        side(f.TeamA, f.TeamAScore),
		}
		if f.Started && !f.Finished {
			playing = append(playing, fmt.Sprintf("%s vs %s",
				boot.TeamShort(f.TeamH, "?"), boot.TeamShort(f.TeamA, "?")))
		}
		out = append(out, lf)
	}
	return out, playing
}
