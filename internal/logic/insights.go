package logic

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/fpladvisor/advisor-api/internal/models"
	"github.com/fpladvisor/advisor-api/internal/scoring"
)

const (
	defaultMaxOwnership   = 10.0
	defaultInsightLimit   = 20
	defaultInjuryLimit    = 10
	priceMovementLimit    = 50
	defaultTrendLimit     = 5
	differentialHorizon   = 5
	minDifferentialChance = 50
	minValueChance        = 75
	minValueMinutes       = 90
)

// Value pick sort orders.
const (
	SortByValue  = "value"
	SortByPoints = "points"
	SortByForm   = "form"
)

// DifferentialFilter narrows the differential finder. Zero values take the
// defaults.
type DifferentialFilter struct {
	MaxOwnership float64
	MinForm      float64
	MaxPrice     float64
	Position     models.Position
	Limit        int
}

// ValueFilter narrows the value picks list.
type ValueFilter struct {
	MaxPrice float64
	Position models.Position
	SortBy   string
	Limit    int
}

// InsightConfig holds the insight services' dependencies.
type InsightConfig struct {
	Source FPLSource
	Logger *zap.Logger
}

type insightService struct {
	source FPLSource
	logger *zap.SugaredLogger
}

func NewPlayerInsightService(cfg InsightConfig) PlayerInsightService {
	return newInsightService(cfg)
}

func newInsightService(cfg InsightConfig) *insightService {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &insightService{source: cfg.Source, logger: logger.Sugar()}
}

func (s *insightService) bootstrapAndFixtures(ctx context.Context) (*models.Bootstrap, []models.Fixture, error) {
	var boot *models.Bootstrap
	var fixtures []models.Fixture

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
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return boot, fixtures, nil
}

func chanceAtLeast(p models.Player, threshold int) bool {
	return p.ChanceOfPlayingNextRound == nil || *p.ChanceOfPlayingNextRound >= threshold
}

func positionMatches(filter, pos models.Position) bool {
	return filter == "" || filter == pos
}

// Differentials ranks low-ownership players by form, points per game and the
// ease of the next five gameweeks.
func (s *insightService) Differentials(ctx context.Context, f DifferentialFilter) ([]models.Differential, error) {
	if f.MaxOwnership <= 0 {
		f.MaxOwnership = defaultMaxOwnership
	}
	if f.Limit <= 0 {
		f.Limit = defaultInsightLimit
	}

	boot, fixtures, err := s.bootstrapAndFixtures(ctx)
	if err != nil {
		return nil, err
	}

	current := scoring.ResolveGameweek(boot.Gameweeks, models.CurrentGameweek)
	var window []models.Fixture
	for _, fx := range fixtures {
		if fx.Event > current && fx.Event <= current+differentialHorizon {
			window = append(window, fx)
		}
	}
	idx := scoring.NewFixtureIndex(window)

	out := []models.Differential{}
	for _, p := range boot.Players {
		if p.SelectedByPercent > f.MaxOwnership || p.Form < f.MinForm {
			continue
		}
		if f.MaxPrice > 0 && p.Price() > f.MaxPrice {
			continue
		}
		if !positionMatches(f.Position, p.Position) || !chanceAtLeast(p, minDifferentialChance) {
			continue
		}
		switch p.Status {
		case models.StatusInjured, models.StatusSuspended, models.StatusUnavailable:
			continue
		}

		avg := idx.AverageDifficulty(p.TeamID)
		own := p.SelectedByPercent
		if own <= 0 {
			own = 0.1
		}
		score := ((p.Form*2 + p.PointsPerGame) * (1 + (6-avg)*0.2)) / (own + p.Price()*0.1 + 1)

		out = append(out, models.Differential{
			ID:            p.ID,
			Name:          p.DisplayName(),
			TeamShort:     boot.TeamShort(p.TeamID, ""),
			Pos:           p.Position,
			Price:         p.Price(),
			Form:          p.Form,
			PointsPerGame: p.PointsPerGame,
			Ownership:     p.SelectedByPercent,
			AvgDifficulty: scoring.Round(avg, 2),
			Score:         score,
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > f.Limit {
		out = out[:f.Limit]
	}
	for i := range out {
		out[i].Score = scoring.Round(out[i].Score, 2)
	}
	return out, nil
}

// ValuePicks ranks regular starters by points per million.
func (s *insightService) ValuePicks(ctx context.Context, f ValueFilter) ([]models.ValuePick, error) {
	switch f.SortBy {
	case "":
		f.SortBy = SortByValue
	case SortByValue, SortByPoints, SortByForm:
	default:
		return nil, ValidationError("invalid sortBy %q: use value, points or form", f.SortBy)
	}
	if f.Limit <= 0 {
		f.Limit = defaultInsightLimit
	}

	boot, err := s.source.Bootstrap(ctx)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: %w", err)
	}

	out := []models.ValuePick{}
	for _, p := range boot.Players {
		if p.NowCost <= 0 || p.Minutes < minValueMinutes || !chanceAtLeast(p, minValueChance) {
			continue
		}
		if (f.MaxPrice > 0 && p.Price() > f.MaxPrice) || !positionMatches(f.Position, p.Position) {
			continue
		}
		price := p.Price()
		out = append(out, models.ValuePick{
			ID:          p.ID,
			Name:        p.DisplayName(),
			TeamShort:   boot.TeamShort(p.TeamID, ""),
			Pos:         p.Position,
			Price:       price,
			TotalPoints: p.TotalPoints,
			Form:        p.Form,
			Minutes:     p.Minutes,
			ValueScore:  scoring.Round(float64(p.TotalPoints)/price*0.6+p.Form/price*0.4, 2),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		switch f.SortBy {
		case SortByPoints:
			return out[i].TotalPoints > out[j].TotalPoints
		case SortByForm:
			return out[i].Form > out[j].Form
		default:
			return out[i].ValueScore > out[j].ValueScore
		}
	})
	if len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

// PriceMovements lists this gameweek's risers and fallers, largest moves
// first.
func (s *insightService) PriceMovements(ctx context.Context) (*models.PriceMovements, error) {
	boot, err := s.source.Bootstrap(ctx)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: %w", err)
	}

	res := &models.PriceMovements{Risers: []models.PriceChange{}, Fallers: []models.PriceChange{}}
	for _, p := range boot.Players {
		if p.CostChangeEvent == 0 {
			continue
		}
		pc := models.PriceChange{
			ID:                p.ID,
			Name:              p.DisplayName(),
			TeamShort:         boot.TeamShort(p.TeamID, ""),
			Pos:               p.Position,
			Price:             p.Price(),
			Change:            scoring.Round(float64(p.CostChangeEvent)/10, 1),
			TransfersInEvent:  p.TransfersInEvent,
			TransfersOutEvent: p.TransfersOutEvent,
			Ownership:         p.SelectedByPercent,
		}
		if p.CostChangeEvent > 0 {
			res.Risers = append(res.Risers, pc)
		} else {
			res.Fallers = append(res.Fallers, pc)
		}
	}

	sort.SliceStable(res.Risers, func(i, j int) bool {
		a, b := res.Risers[i], res.Risers[j]
		if a.Change != b.Change {
			return a.Change > b.Change
		}
		return a.TransfersInEvent > b.TransfersInEvent
	})
	sort.SliceStable(res.Fallers, func(i, j int) bool {
		a, b := res.Fallers[i], res.Fallers[j]
		if a.Change != b.Change {
			return a.Change < b.Change
		}
		return a.TransfersOutEvent > b.TransfersOutEvent
	})
	if len(res.Risers) > priceMovementLimit {
		res.Risers = res.Risers[:priceMovementLimit]
	}
	if len(res.Fallers) > priceMovementLimit {
		res.Fallers = res.Fallers[:priceMovementLimit]
	}
	return res, nil
}

// TransferTrends lists the players most transferred in and out this
// gameweek. Players with no activity in a direction are left out of it.
func (s *insightService) TransferTrends(ctx context.Context, limit int) (*models.TransferTrends, error) {
	if limit <= 0 {
		limit = defaultTrendLimit
	}

	boot, err := s.source.Bootstrap(ctx)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: %w", err)
	}

	res := &models.TransferTrends{In: []models.TransferTrend{}, Out: []models.TransferTrend{}}
	for _, p := range boot.Players {
		if p.TransfersInEvent <= 0 && p.TransfersOutEvent <= 0 {
			continue
		}
		tt := models.TransferTrend{
			ID:           p.ID,
			Name:         p.DisplayName(),
			FullName:     p.FullName(),
			TeamShort:    boot.TeamShort(p.TeamID, ""),
			Pos:          p.Position,
			Price:        p.Price(),
			Ownership:    p.SelectedByPercent,
			TransfersIn:  p.TransfersInEvent,
			TransfersOut: p.TransfersOutEvent,
		}
		if p.TransfersInEvent > 0 {
			res.In = append(res.In, tt)
		}
		if p.TransfersOutEvent > 0 {
			res.Out = append(res.Out, tt)
		}
	}

	sort.Slice(res.In, func(i, j int) bool {
		if res.In[i].TransfersIn != res.In[j].TransfersIn {
			return res.In[i].TransfersIn > res.In[j].TransfersIn
		}
		return res.In[i].ID < res.In[j].ID
	})
	sort.Slice(res.Out, func(i, j int) bool {
		if res.Out[i].TransfersOut != res.Out[j].TransfersOut {
			return res.Out[i].TransfersOut > res.Out[j].TransfersOut
		}
		return res.Out[i].ID < res.Out[j].ID
	})
	if len(res.In) > limit {
		res.In = res.In[:limit]
	}
	if len(res.Out) > limit {
		res.Out = res.Out[:limit]
	}
	return res, nil
}

var statusLabels = map[string]string{
	models.StatusInjured:     "Injured",
	models.StatusDoubtful:    "Doubtful",
	models.StatusSuspended:   "Suspended",
	models.StatusUnavailable: "Unavailable",
	models.StatusNotInSquad:  "Not in squad",
}

// InjuryNews returns flagged players with news, most recent first.
func (s *insightService) InjuryNews(ctx context.Context, limit int) ([]models.InjuryNews, error) {
	if limit <= 0 {
		limit = defaultInjuryLimit
	}

	boot, err := s.source.Bootstrap(ctx)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: %w", err)
	}

	out := []models.InjuryNews{}
	for _, p := range boot.Players {
		if p.Status == models.StatusAvailable || strings.TrimSpace(p.News) == "" {
			continue
		}
		label, ok := statusLabels[p.Status]
		if !ok {
			label = "Unknown"
		}
		out = append(out, models.InjuryNews{
			ID:          p.ID,
			Name:        p.DisplayName(),
			TeamShort:   boot.TeamShort(p.TeamID, ""),
			Pos:         p.Position,
			Status:      p.Status,
			StatusLabel: label,
			Chance:      p.ChanceOfPlayingNextRound,
			News:        p.News,
			NewsAdded:   p.NewsAdded,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].NewsAdded, out[j].NewsAdded
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// SearchPlayers fuzzy-matches query against display and full names.
func (s *insightService) SearchPlayers(ctx context.Context, query string, pos models.Position, limit int) ([]models.PlayerMatch, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ValidationError("search query must not be empty")
	}
	if limit <= 0 {
		limit = defaultInsightLimit
	}

	boot, err := s.source.Bootstrap(ctx)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: %w", err)
	}

	best := map[int]int{}
	targets := make([]string, 0, len(boot.Players)*2)
	owners := make([]int, 0, len(boot.Players)*2)
	for i, p := range boot.Players {
		if !positionMatches(pos, p.Position) {
			continue
		}
		targets = append(targets, p.DisplayName(), p.FullName())
		owners = append(owners, i, i)
	}

	for _, r := range fuzzy.RankFindNormalizedFold(query, targets) {
		i := owners[r.OriginalIndex]
		if d, ok := best[i]; !ok || r.Distance < d {
			best[i] = r.Distance
		}
	}

	out := make([]models.PlayerMatch, 0, len(best))
	for i, d := range best {
		p := boot.Players[i]
		out = append(out, models.PlayerMatch{
			ID:        p.ID,
			Name:      p.DisplayName(),
			FullName:  p.FullName(),
			TeamShort: boot.TeamShort(p.TeamID, ""),
			Pos:       p.Position,
			Price:     p.Price(),
			Distance:  d,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Distance != out[j].Distance {
			return out[i].Distance < out[j].Distance
		}
		return out[i].ID < out[j].ID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
