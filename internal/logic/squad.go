package logic

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/fpladvisor/advisor-api/internal/models"
	"github.com/fpladvisor/advisor-api/internal/scoring"
)

const (
	// DefaultFormation is used when no formation is requested.
	DefaultFormation = "3-4-3"
	squadBudget      = 1000
	squadSize        = 15
)

var squadQuota = map[models.Position]int{
	models.PositionGK:  2,
	models.PositionDEF: 5,
	models.PositionMID: 5,
	models.PositionFWD: 3,
}

var positionOrder = []models.Position{
	models.PositionGK,
	models.PositionDEF,
	models.PositionMID,
	models.PositionFWD,
}

// formations maps a formation to its starting DEF, MID and FWD counts.
var formations = map[string][3]int{
	"3-4-3": {3, 4, 3},
	"3-5-2": {3, 5, 2},
	"4-3-3": {4, 3, 3},
	"4-4-2": {4, 4, 2},
	"4-5-1": {4, 5, 1},
	"5-3-2": {5, 3, 2},
	"5-4-1": {5, 4, 1},
}

// Formations lists the supported formations in a stable order.
func Formations() []string {
	out := make([]string, 0, len(formations))
	for f := range formations {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// SquadConfig holds the squad service's dependencies.
type SquadConfig struct {
	Source FPLSource
	Logger *zap.Logger
}

type squadService struct {
	source FPLSource
	logger *zap.SugaredLogger
}

func NewSquadService(cfg SquadConfig) SquadService {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &squadService{source: cfg.Source, logger: logger.Sugar()}
}

// OptimalSquad builds a 15-player squad under the 100.0m budget and picks a
// starting XI for the formation.
func (s *squadService) OptimalSquad(ctx context.Context, formation string) (*models.Squad, error) {
	if formation == "" {
		formation = DefaultFormation
	}
	starting, ok := formations[formation]
	if !ok {
		return nil, ValidationError("invalid formation %q: valid formations are %s", formation, strings.Join(Formations(), ", "))
	}

	boot, err := s.source.Bootstrap(ctx)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: %w", err)
	}

	squad := buildSquad(boot)
	if len(squad) < squadSize {
		return nil, fmt.Errorf("could not fill a %d-player squad from %d eligible players", squadSize, len(squad))
	}
	return pickStartingXI(squad, formation, starting), nil
}

func squadPlayer(p models.Player, boot *models.Bootstrap) models.SquadPlayer {
	teamName := "Unknown"
	if t, ok := boot.Team(p.TeamID); ok {
		teamName = t.Name
	}
	return models.SquadPlayer{
		ID:             p.ID,
		Name:           p.FullName(),
		WebName:        p.WebName,
		TeamID:         p.TeamID,
		TeamName:       teamName,
		Pos:            p.Position,
		Cost:           p.NowCost,
		ExpectedPoints: p.Form * p.PointsPerGame,
		Form:           p.Form,
		PointsPerGame:  p.PointsPerGame,
	}
}

// squadState tracks the constraints while a squad is assembled.
type squadState struct {
	players  []models.SquadPlayer
	picked   map[int]bool
	clubs    map[int]int
	needed   map[models.Position]int
	cost     int
	minPrice map[models.Position]int
}

// reserve is the cheapest possible cost of the open slots after one more
// player of pos is added.
func (st *squadState) reserve(pos models.Position) int {
	total := 0
	for p, n := range st.needed {
		if p == pos {
			n--
		}
		total += n * st.minPrice[p]
	}
	return total
}

func (st *squadState) fits(p models.SquadPlayer, reserve bool) bool {
	if st.picked[p.ID] || st.needed[p.Pos] <= 0 || st.clubs[p.TeamID] >= maxPlayersPerClub {
		return false
	}
	limit := squadBudget
	if reserve {
		limit -= st.reserve(p.Pos)
	}
	return st.cost+p.Cost <= limit
}

func (st *squadState) add(p models.SquadPlayer) {
	st.players = append(st.players, p)
	st.picked[p.ID] = true
	st.clubs[p.TeamID]++
	st.needed[p.Pos]--
	st.cost += p.Cost
}

// buildSquad fills the squad greedily by expected points while keeping enough
// budget for the open slots, fills any gaps with the cheapest players, then
// upgrades players while budget remains.
func buildSquad(boot *models.Bootstrap) []models.SquadPlayer {
	var pool []models.SquadPlayer
	minPrice := map[models.Position]int{}
	for _, p := range boot.Players {
		if _, ok := squadQuota[p.Position]; !ok {
			continue
		}
		if p.NowCost <= 0 || p.Form <= 0 || p.PointsPerGame <= 0 {
			continue
		}
		sp := squadPlayer(p, boot)
		pool = append(pool, sp)
		if m, ok := minPrice[sp.Pos]; !ok || sp.Cost < m {
			minPrice[sp.Pos] = sp.Cost
		}
	}
	sort.SliceStable(pool, func(i, j int) bool { return pool[i].ExpectedPoints > pool[j].ExpectedPoints })

	st := &squadState{
		picked:   map[int]bool{},
		clubs:    map[int]int{},
		needed:   map[models.Position]int{},
		minPrice: minPrice,
	}
	for pos, n := range squadQuota {
		st.needed[pos] = n
	}

	for _, pos := range positionOrder {
		for _, p := range pool {
			if p.Pos == pos && st.fits(p, true) {
				st.add(p)
			}
		}
	}

	if len(st.players) < squadSize {
		cheapest := make([]models.SquadPlayer, len(pool))
		copy(cheapest, pool)
		sort.SliceStable(cheapest, func(i, j int) bool { return cheapest[i].Cost < cheapest[j].Cost })
		for _, p := range cheapest {
			if st.fits(p, false) {
				st.add(p)
			}
		}
	}

	if len(st.players) == squadSize {
		upgradeSquad(st, pool)
	}
	return st.players
}

// upgradeSquad swaps in better players while the remaining budget covers the
// price difference. Club limits are checked for the incoming player before
// every swap.
func upgradeSquad(st *squadState, pool []models.SquadPlayer) {
	for _, in := range pool {
		if st.picked[in.ID] {
			continue
		}
		worst := -1
		for i, cur := range st.players {
			if cur.Pos != in.Pos || cur.ExpectedPoints >= in.ExpectedPoints {
				continue
			}
			if in.Cost-cur.Cost > squadBudget-st.cost {
				continue
			}
			if in.TeamID != cur.TeamID && st.clubs[in.TeamID] >= maxPlayersPerClub {
				continue
			}
			if worst < 0 || cur.ExpectedPoints < st.players[worst].ExpectedPoints {
				worst = i
			}
		}
		if worst < 0 {
			continue
		}

		out := st.players[worst]
		st.players[worst] = in
		delete(st.picked, out.ID)
		st.picked[in.ID] = true
		st.clubs[out.TeamID]--
		st.clubs[in.TeamID]++
		st.cost += in.Cost - out.Cost
	}
}

func pickStartingXI(squad []models.SquadPlayer, formation string, starting [3]int) *models.Squad {
	rank := map[models.Position]int{}
	for i, pos := range positionOrder {
		rank[pos] = i
	}
	sorted := make([]models.SquadPlayer, len(squad))
	copy(sorted, squad)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Pos != sorted[j].Pos {
			return rank[sorted[i].Pos] < rank[sorted[j].Pos]
		}
		return sorted[i].ExpectedPoints > sorted[j].ExpectedPoints
	})

	slots := map[models.Position]int{
		models.PositionGK:  1,
		models.PositionDEF: starting[0],
		models.PositionMID: starting[1],
		models.PositionFWD: starting[2],
	}

	res := &models.Squad{
		Formation:  formation,
		StartingXI: []models.SquadPlayer{},
		Bench:      []models.SquadPlayer{},
	}
	total := 0.0
	for _, p := range sorted {
		p.ExpectedPoints = scoring.Round(p.ExpectedPoints, 2)
		res.TotalCost += p.Cost
		total += p.ExpectedPoints
		if slots[p.Pos] > 0 {
			slots[p.Pos]--
			res.StartingXI = append(res.StartingXI, p)
		} else {
			res.Bench = append(res.Bench, p)
		}
	}
	res.TotalExpectedPoints = scoring.Round(total, 2)

	byPoints := make([]models.SquadPlayer, len(res.StartingXI))
	copy(byPoints, res.StartingXI)
	sort.SliceStable(byPoints, func(i, j int) bool { return byPoints[i].ExpectedPoints > byPoints[j].ExpectedPoints })
	if len(byPoints) > 0 {
		res.Captain = &byPoints[0]
	}
	if len(byPoints) > 1 {
		res.ViceCaptain = &byPoints[1]
	}
	return res
}
