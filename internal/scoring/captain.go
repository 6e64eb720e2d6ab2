package scoring

import "github.com/fpladvisor/advisor-api/internal/models"

// Neutral match rates used when no team signals are available.
const (
	NeutralTeamLambda     = 1.25
	NeutralOpponentLambda = 1.15
	maxInvolvementShare   = 0.5
	maxDisciplineDrop     = 0.08
	assistPoints          = 3.0
)

// XGI90 is a player's expected goal involvements per 90. It falls back to
// xG90 + xA90, then to points per game / 6 when no involvement data exists.
func XGI90(p models.Player) float64 {
	if p.ExpectedGoalInvolvementsPer90 != 0 {
		return p.ExpectedGoalInvolvementsPer90
	}
	if p.ExpectedGoalsPer90 != 0 || p.ExpectedAssistsPer90 != 0 {
		return p.ExpectedGoalsPer90 + p.ExpectedAssistsPer90
	}
	return p.PointsPerGame / 6
}

// TeamInvolvement sums XGI90 over every player of a team. It never returns 0.
func TeamInvolvement(players []models.Player, teamID int) float64 {
	sum := 0.0
	for _, p := range players {
		if p.TeamID == teamID {
			sum += XGI90(p)
		}
	}
	if sum == 0 {
		return 1
	}
	return sum
}

// InvolvementShare is a player's share of team involvement, capped at 50%.
func InvolvementShare(p models.Player, teamSum float64) float64 {
	if teamSum <= 0 {
		teamSum = 1
	}
	return clamp(XGI90(p)/teamSum, 0, maxInvolvementShare)
}

// GoalWeight estimates the goal share of a player's involvements.
func GoalWeight(p models.Player) float64 {
	xg, xa := p.ExpectedGoalsPer90, p.ExpectedAssistsPer90
	if xg+xa > 0 {
		return xg / (xg + xa)
	}
	switch p.Position {
	case models.PositionFWD:
		return 0.7
	case models.PositionMID:
		return 0.55
	default:
		return 0.35
	}
}

// GoalPoints is the FPL score for a goal by position.
func GoalPoints(pos models.Position) float64 {
	switch pos {
	case models.PositionFWD:
		return 4
	case models.PositionMID:
		return 5
	default:
		return 6
	}
}

// CleanSheetPoints is the FPL clean-sheet award by position.
func CleanSheetPoints(pos models.Position) float64 {
	switch pos {
	case models.PositionGK, models.PositionDEF:
		return 4
	case models.PositionMID:
		return 1
	default:
		return 0
	}
}

// DisciplineMultiplier reduces a score by up to 8% for frequent bookings.
func DisciplineMultiplier(p models.Player) float64 {
	if p.Minutes <= 0 {
		return 1
	}
	mins := float64(p.Minutes)
	yc90 := float64(p.YellowCards) / mins * 90
	rc90 := float64(p.RedCards) / mins * 90
	drop := yc90*0.03 + rc90*0.4
	if drop > maxDisciplineDrop {
		drop = maxDisciplineDrop
	}
	return 1 - drop
}

// InvolvementPoints converts a team rate and share into expected attacking points.
func InvolvementPoints(teamLambda, share, goalWeight float64, pos models.Position) float64 {
	return teamLambda * share * (goalWeight*GoalPoints(pos) + (1-goalWeight)*assistPoints)
}

// CaptainInputs are the per-player values the captain score blends.
type CaptainInputs struct {
	Base        float64
	Involvement float64
	CleanSheet  float64
	Discipline  float64
	MinutesP    float64
}

// SmartExpectedPoints blends base, involvement and clean-sheet points.
func SmartExpectedPoints(in CaptainInputs) float64 {
	return (0.5*in.Base + 0.45*in.Involvement + 0.05*in.CleanSheet) * in.Discipline * in.MinutesP
}

// CaptainConfidence scales a base confidence by availability into [40, 95].
func CaptainConfidence(base, minutesP float64) float64 {
	return clamp(base*(0.6+0.4*minutesP), 40, 95)
}
