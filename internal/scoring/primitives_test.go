package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fpladvisor/advisor-api/internal/models"
)

func intPtr(v int) *int { return &v }

func TestMinutesProbability(t *testing.T) {
	tests := []struct {
		name   string
		player models.Player
		want   float64
	}{
		{"available no doubt", models.Player{Status: "a"}, 0.95},
		{"available with chance", models.Player{Status: "a", ChanceOfPlayingNextRound: intPtr(100)}, 1.0},
		{"doubtful 75", models.Player{Status: "d", ChanceOfPlayingNextRound: intPtr(75)}, 0.75},
		{"injured zero", models.Player{Status: "i", ChanceOfPlayingNextRound: intPtr(0)}, 0},
		{"unknown status no chance", models.Player{Status: "u"}, 0.35},
		{"out of range chance", models.Player{Status: "d", ChanceOfPlayingNextRound: intPtr(150)}, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MinutesProbability(tt.player)
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 1.0)
		})
	}
}

func TestFixtureDifficultyMultiplier_StrictlyDecreasing(t *testing.T) {
	for r := 1; r < 5; r++ {
		assert.Greater(t, FixtureDifficultyMultiplier(r), FixtureDifficultyMultiplier(r+1), "rating %d vs %d", r, r+1)
	}
	assert.Equal(t, 1.0, FixtureDifficultyMultiplier(0))
	assert.Equal(t, 1.0, FixtureDifficultyMultiplier(9))
}

func TestPositionShort(t *testing.T) {
	types := []models.ElementType{
		{ID: 1, SingularName: "Goalkeeper", SingularNameShort: "GKP"},
		{ID: 2, SingularName: "Defender", SingularNameShort: "DEF"},
		{ID: 3, SingularName: "Midfielder", SingularNameShort: ""},
		{ID: 4, SingularName: "Forward", SingularNameShort: "Forward"},
	}

	assert.Equal(t, models.PositionGK, PositionShort(1, types))
	assert.Equal(t, models.PositionDEF, PositionShort(2, types))
	assert.Equal(t, models.PositionMID, PositionShort(3, types))
	assert.Equal(t, models.PositionFWD, PositionShort(4, types))
	assert.Equal(t, models.PositionUnknown, PositionShort(5, types))
}

func TestExpectedPoints(t *testing.T) {
	p := models.Player{TeamID: 1, Position: models.PositionMID, Status: "a", Form: 6, PointsPerGame: 5}
	fixtures := []models.Fixture{{ID: 10, TeamH: 1, TeamA: 2, TeamHDifficulty: 2, TeamADifficulty: 4}}

	got := ExpectedPoints(p, NewFixtureIndex(fixtures))
	want := (0.55*6 + 0.45*5) * 0.95 * 1.08 * 1.05
	assert.InDelta(t, want, got, 1e-9)
}

func TestExpectedPoints_ZeroMinutesIsZero(t *testing.T) {
	p := models.Player{TeamID: 1, Position: models.PositionFWD, Status: "i", ChanceOfPlayingNextRound: intPtr(0), Form: 9, PointsPerGame: 8}
	assert.Equal(t, 0.0, ExpectedPoints(p, NewFixtureIndex(nil)))
}

func TestExpectedPoints_DoubleGameweekUsesMean(t *testing.T) {
	p := models.Player{TeamID: 1, Position: models.PositionDEF, Status: "a", Form: 4, PointsPerGame: 4}
	fixtures := []models.Fixture{
		{ID: 1, TeamH: 1, TeamA: 2, TeamHDifficulty: 1, TeamADifficulty: 5},
		{ID: 2, TeamH: 3, TeamA: 1, TeamHDifficulty: 2, TeamADifficulty: 5},
	}

	got := ExpectedPoints(p, NewFixtureIndex(fixtures))
	want := 4.0 * 0.95 * ((1.15 + 0.85) / 2)
	assert.InDelta(t, want, got, 1e-9)

	firstOnly := 4.0 * 0.95 * 1.15
	assert.NotEqual(t, firstOnly, got)
}

func TestFixtureIndex_BlankGameweekIsNeutral(t *testing.T) {
	idx := NewFixtureIndex(nil)
	assert.Equal(t, []int{3}, idx.Difficulties(7))
	assert.Equal(t, 1.0, idx.AverageMultiplier(7))
}

func TestFixtureIndex_Opponents(t *testing.T) {
	boot := &models.Bootstrap{Teams: []models.Team{{ID: 1, ShortName: "ARS"}, {ID: 2, ShortName: "CHE"}}}
	idx := NewFixtureIndex([]models.Fixture{{ID: 1, TeamH: 1, TeamA: 2}})

	home := idx.Opponents(1, boot)
	require.Len(t, home, 1)
	assert.Equal(t, models.OpponentRef{OpponentID: 2, OpponentShort: "CHE", Home: true}, home[0])

	away := idx.Opponents(2, boot)
	require.Len(t, away, 1)
	assert.Equal(t, "ARS", away[0].OpponentShort)
	assert.False(t, away[0].Home)
}

func TestRound(t *testing.T) {
	assert.Equal(t, 1.2, Round(1.24, 1))
	assert.Equal(t, 1.25, Round(1.2549, 2))
}
