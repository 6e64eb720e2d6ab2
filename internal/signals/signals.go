// Package signals provides optional enrichment data for the captain and match
// models: team form, goal averages, discipline and absences from API-Football,
// and clean-sheet prices from The Odds API. Every provider is best effort; a
// missing key, slow upstream or parse failure yields no signal, never an error
// the caller has to handle.
package signals

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/fpladvisor/advisor-api/internal/models"
)

// TeamProvider returns team-level signals. A nil result with a nil error means
// the provider has nothing for this team.
type TeamProvider interface {
	TeamSignals(ctx context.Context, team models.Team) (*models.TeamSignals, error)
}

// CleanSheetProvider returns clean-sheet probabilities keyed by FPL team id.
// Teams without a price are absent from the map.
type CleanSheetProvider interface {
	CleanSheetProbabilities(ctx context.Context, teams []models.Team) (map[int]float64, error)
}

// Neutral never has signals. It is used when no provider key is configured.
type Neutral struct{}

func (Neutral) TeamSignals(context.Context, models.Team) (*models.TeamSignals, error) {
	return nil, nil
}

func (Neutral) CleanSheetProbabilities(context.Context, []models.Team) (map[int]float64, error) {
	return map[int]float64{}, nil
}

// BestEffort bounds a TeamProvider by a timeout and turns every failure into
// "no signal".
type BestEffort struct {
	next    TeamProvider
	timeout time.Duration
	logger  *zap.SugaredLogger
}

func NewBestEffort(next TeamProvider, timeout time.Duration, logger *zap.Logger) *BestEffort {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BestEffort{next: next, timeout: timeout, logger: logger.Sugar()}
}

func (b *BestEffort) TeamSignals(ctx context.Context, team models.Team) (*models.TeamSignals, error) {
	if b.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.timeout)
		defer cancel()
	}
	sig, err := b.next.TeamSignals(ctx, team)
	if err != nil {
		b.logger.Debugw("Team signals unavailable", "team", team.ID, "error", err)
		return nil, nil
	}
	return sig, nil
}

// BestEffortCleanSheets is the CleanSheetProvider counterpart of BestEffort.
type BestEffortCleanSheets struct {
	next    CleanSheetProvider
	timeout time.Duration
	logger  *zap.SugaredLogger
}

func NewBestEffortCleanSheets(next CleanSheetProvider, timeout time.Duration, logger *zap.Logger) *BestEffortCleanSheets {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BestEffortCleanSheets{next: next, timeout: timeout, logger: logger.Sugar()}
}

func (b *BestEffortCleanSheets) CleanSheetProbabilities(ctx context.Context, teams []models.Team) (map[int]float64, error) {
	if b.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.timeout)
		defer cancel()
	}
	probs, err := b.next.CleanSheetProbabilities(ctx, teams)
	if err != nil || probs == nil {
		if err != nil {
			b.logger.Debugw("Clean sheet odds unavailable", "error", err)
		}
		return map[int]float64{}, nil
	}
	return probs, nil
}
