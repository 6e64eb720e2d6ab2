package logic

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fpladvisor/advisor-api/internal/models"
)

// squadPool builds six players for each of twenty clubs with spread prices.
func squadPool() *models.Bootstrap {
	boot := &models.Bootstrap{Gameweeks: seasonGameweeks(3)}
	id := 1
	for t := 1; t <= 20; t++ {
		boot.Teams = append(boot.Teams, team(t, fmt.Sprintf("T%02d", t)))
		for _, spec := range []struct {
			pos  models.Position
			cost int
		}{
			{models.PositionGK, 40 + (t%3)*5},
			{models.PositionDEF, 40 + (t%5)*5},
			{models.PositionDEF, 45 + (t%4)*5},
			{models.PositionMID, 50 + (t%6)*15},
			{models.PositionMID, 55 + (t%4)*10},
			{models.PositionFWD, 55 + (t%5)*20},
		} {
			form := 1 + float64((id*7)%9)
			ppg := 1 + float64(spec.cost)/20
			boot.Players = append(boot.Players, player(id, t, spec.pos, spec.cost, form, ppg))
			id++
		}
	}
	return boot
}

func squadSource(boot *models.Bootstrap) *MockFPLSource {
	return &MockFPLSource{
		BootstrapFunc: func(context.Context) (*models.Bootstrap, error) { return boot, nil },
	}
}

func TestOptimalSquad_Constraints(t *testing.T) {
	svc := NewSquadService(SquadConfig{Source: squadSource(squadPool())})

	for _, formation := range Formations() {
		t.Run(formation, func(t *testing.T) {
			squad, err := svc.OptimalSquad(context.Background(), formation)
			require.NoError(t, err)

			all := append(append([]models.SquadPlayer{}, squad.StartingXI...), squad.Bench...)
			require.Len(t, all, 15)
			assert.Len(t, squad.StartingXI, 11)
			assert.Len(t, squad.Bench, 4)

			perPos := map[models.Position]int{}
			perClub := map[int]int{}
			seen := map[int]bool{}
			cost := 0
			for _, p := range all {
				assert.False(t, seen[p.ID], "player %d picked twice", p.ID)
				seen[p.ID] = true
				perPos[p.Pos]++
				perClub[p.TeamID]++
				cost += p.Cost
			}
			assert.Equal(t, squadQuota, perPos)
			for club, n := range perClub {
				assert.LessOrEqual(t, n, maxPlayersPerClub, "club %d", club)
			}
			assert.Equal(t, cost, squad.TotalCost)
			assert.LessOrEqual(t, squad.TotalCost, squadBudget)

			starters := map[models.Position]int{}
			for _, p := range squad.StartingXI {
				starters[p.Pos]++
			}
			shape := formations[formation]
			assert.Equal(t, 1, starters[models.PositionGK])
			assert.Equal(t, shape[0], starters[models.PositionDEF])
			assert.Equal(t, shape[1], starters[models.PositionMID])
			assert.Equal(t, shape[2], starters[models.PositionFWD])

			require.NotNil(t, squad.Captain)
			require.NotNil(t, squad.ViceCaptain)
			for _, p := range squad.StartingXI {
				assert.GreaterOrEqual(t, squad.Captain.ExpectedPoints, p.ExpectedPoints)
			}
			assert.NotEqual(t, squad.Captain.ID, squad.ViceCaptain.ID)
		})
	}
}

func TestOptimalSquad_DefaultFormation(t *testing.T) {
	squad, err := NewSquadService(SquadConfig{Source: squadSource(squadPool())}).OptimalSquad(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, DefaultFormation, squad.Formation)
}

func TestOptimalSquad_Errors(t *testing.T) {
	svc := NewSquadService(SquadConfig{Source: squadSource(squadPool())})
	_, err := svc.OptimalSquad(context.Background(), "2-5-3")
	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "3-4-3")

	thin := squadPool()
	thin.Players = thin.Players[:12]
	_, err = NewSquadService(SquadConfig{Source: squadSource(thin)}).OptimalSquad(context.Background(), "")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrValidation)
}

func TestBuildSquad_KeepsBudgetForOpenSlots(t *testing.T) {
	boot := squadPool()
	// Premium forwards worth far more than anyone else would bust the budget
	// if taken greedily without a reserve.
	for i := range boot.Players {
		if boot.Players[i].Position == models.PositionFWD && boot.Players[i].TeamID <= 6 {
			boot.Players[i].NowCost = 250
			boot.Players[i].Form = 20
			boot.Players[i].PointsPerGame = 20
		}
	}

	squad := buildSquad(boot)
	require.Len(t, squad, 15)

	cost := 0
	for _, p := range squad {
		cost += p.Cost
	}
	assert.LessOrEqual(t, cost, squadBudget)
}

func TestUpgradeSquad_RespectsClubLimit(t *testing.T) {
	mk := func(id, club int, pos models.Position, cost int, ePts float64) models.SquadPlayer {
		return models.SquadPlayer{ID: id, TeamID: club, Pos: pos, Cost: cost, ExpectedPoints: ePts}
	}
	st := &squadState{
		picked: map[int]bool{},
		clubs:  map[int]int{},
		needed: map[models.Position]int{models.PositionMID: 4},
	}
	for _, p := range []models.SquadPlayer{
		mk(1, 1, models.PositionMID, 50, 5),
		mk(2, 1, models.PositionMID, 50, 5),
		mk(3, 1, models.PositionMID, 50, 5),
		mk(4, 2, models.PositionMID, 50, 1),
	} {
		st.add(p)
	}

	// Club 1 is full, so the incoming club 1 player may only replace a
	// club 1 player even though player 4 is weaker.
	upgradeSquad(st, []models.SquadPlayer{mk(9, 1, models.PositionMID, 60, 10)})
	assert.True(t, st.picked[9])
	assert.True(t, st.picked[4])
	assert.False(t, st.picked[1])
	assert.Equal(t, 3, st.clubs[1])

	upgradeSquad(st, []models.SquadPlayer{mk(10, 3, models.PositionMID, 60, 10)})
	assert.True(t, st.picked[10])
	assert.False(t, st.picked[4], "the weakest player is replaced")
	assert.Equal(t, 0, st.clubs[2])
	assert.Equal(t, 220, st.cost)
}
