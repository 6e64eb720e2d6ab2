package logic

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/fpladvisor/advisor-api/internal/models"
	"github.com/fpladvisor/advisor-api/internal/signals"
	"github.com/fpladvisor/advisor-api/internal/worker"
)

const (
	unknownManager = "Unknown Manager"
	unknownTeam    = "Unknown Team"
)

// AdvisorConfig holds the advisor's dependencies. Signals and CleanSheets are
// optional; nil means neutral.
type AdvisorConfig struct {
	Source      FPLSource
	Signals     signals.TeamProvider
	CleanSheets signals.CleanSheetProvider
	Pool        *worker.Pool
	Logger      *zap.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

type advisorService struct {
	source      FPLSource
	signals     signals.TeamProvider
	cleanSheets signals.CleanSheetProvider
	pool        *worker.Pool
	logger      *zap.SugaredLogger
	now         func() time.Time
}

func NewAdvisorService(cfg AdvisorConfig) AdvisorService {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	var sig signals.TeamProvider = signals.Neutral{}
	if cfg.Signals != nil {
		sig = cfg.Signals
	}
	var cs signals.CleanSheetProvider = signals.Neutral{}
	if cfg.CleanSheets != nil {
		cs = cfg.CleanSheets
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &advisorService{
		now:         now,
		source:      cfg.Source,
		signals:     sig,
		cleanSheets: cs,
		pool:        cfg.Pool,
		logger:      logger.Sugar(),
	}
}

func validateEntryID(entryID int) error {
	if entryID <= 0 {
		return ValidationError("invalid entry id %d: must be a positive integer", entryID)
	}
	return nil
}

type entryNames struct {
	manager string
	team    string
}

// lookupNames never fails; a missing entry degrades to placeholders.
func (s *advisorService) lookupNames(ctx context.Context, entryID int) entryNames {
	names := entryNames{manager: unknownManager, team: unknownTeam}
	entry, err := s.source.Entry(ctx, entryID)
	if err != nil {
		s.logger.Warnw("Entry lookup failed", "entry", entryID, "error", err)
		return names
	}
	if n := entry.ManagerName(); n != "" {
		names.manager = n
	}
	if entry.Name != "" {
		names.team = entry.Name
	}
	return names
}

// fixturesAndNames fetches a gameweek's fixtures and the entry names
// concurrently.
func (s *advisorService) fixturesAndNames(ctx context.Context, entryID, gw int) ([]models.Fixture, entryNames, error) {
	var fixtures []models.Fixture
	var names entryNames

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		fixtures, err = s.source.Fixtures(gctx, gw)
		if err != nil {
			return fmt.Errorf("fixtures gw %d: %w", gw, err)
		}
		return nil
	})
	g.Go(func() error {
		names = s.lookupNames(gctx, entryID)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, entryNames{}, err
	}
	return fixtures, names, nil
}
