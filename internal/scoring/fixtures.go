package scoring

import "github.com/fpladvisor/advisor-api/internal/models"

// TeamFixture is one fixture seen from a team's side.
type TeamFixture struct {
	FixtureID  int
	Gameweek   int
	OpponentID int
	Home       bool
	Difficulty int
}

// FixtureIndex groups a set of fixtures by team. A team may have zero, one
// or several fixtures; nothing here assumes exactly one.
type FixtureIndex struct {
	byTeam map[int][]TeamFixture
}

// NewFixtureIndex indexes fixtures in their given order.
func NewFixtureIndex(fixtures []models.Fixture) *FixtureIndex {
	idx := &FixtureIndex{byTeam: make(map[int][]TeamFixture)}
	for _, f := range fixtures {
		idx.byTeam[f.TeamH] = append(idx.byTeam[f.TeamH], TeamFixture{
			FixtureID:  f.ID,
			Gameweek:   f.Event,
			OpponentID: f.TeamA,
			Home:       true,
			Difficulty: f.TeamHDifficulty,
		})
		idx.byTeam[f.TeamA] = append(idx.byTeam[f.TeamA], TeamFixture{
			FixtureID:  f.ID,
			Gameweek:   f.Event,
			OpponentID: f.TeamH,
			Home:       false,
			Difficulty: f.TeamADifficulty,
		})
	}
	return idx
}

// Fixtures returns a team's fixtures.
func (idx *FixtureIndex) Fixtures(teamID int) []TeamFixture {
	if idx == nil {
		return nil
	}
	return idx.byTeam[teamID]
}

// Difficulties returns the team-perspective rating of every fixture, or a
// single neutral rating when the team has none.
func (idx *FixtureIndex) Difficulties(teamID int) []int {
	fx := idx.Fixtures(teamID)
	if len(fx) == 0 {
		return []int{neutralDifficulty}
	}
	out := make([]int, len(fx))
	for i, f := range fx {
		out[i] = f.Difficulty
	}
	return out
}

// AverageMultiplier is the mean difficulty multiplier across a team's fixtures.
func (idx *FixtureIndex) AverageMultiplier(teamID int) float64 {
	ds := idx.Difficulties(teamID)
	sum := 0.0
	for _, d := range ds {
		sum += FixtureDifficultyMultiplier(d)
	}
	return sum / float64(len(ds))
}

// AverageDifficulty is the mean raw rating across a team's fixtures.
func (idx *FixtureIndex) AverageDifficulty(teamID int) float64 {
	ds := idx.Difficulties(teamID)
	sum := 0
	for _, d := range ds {
		sum += d
	}
	return float64(sum) / float64(len(ds))
}

// Opponents resolves a team's opponents for display, in fixture order.
func (idx *FixtureIndex) Opponents(teamID int, boot *models.Bootstrap) []models.OpponentRef {
	fx := idx.Fixtures(teamID)
	out := make([]models.OpponentRef, 0, len(fx))
	for _, f := range fx {
		fallback := "A"
		if !f.Home {
			fallback = "H"
		}
		out = append(out, models.OpponentRef{
			OpponentID:    f.OpponentID,
			OpponentShort: boot.TeamShort(f.OpponentID, fallback),
			Home:          f.Home,
		})
	}
	return out
}
