// Package scoring holds the pure scoring functions behind the lineup,
// transfer and captain engines. Nothing here performs I/O.
//
// Expected points are a heuristic blend of form, points per game, fixture
// difficulty and availability. They are not calibrated against outcomes.
package scoring

import (
	"math"
	"strings"

	"github.com/fpladvisor/advisor-api/internal/models"
)

const (
	availableProbability = 0.95
	unknownProbability   = 0.35
	neutralDifficulty    = 3
)

var difficultyMultipliers = map[int]float64{
	1: 1.15,
	2: 1.08,
	3: 1.00,
	4: 0.92,
	5: 0.85,
}

var positionMultipliers = map[models.Position]float64{
	models.PositionGK:  1.00,
	models.PositionDEF: 1.00,
	models.PositionMID: 1.05,
	models.PositionFWD: 1.07,
}

// MinutesProbability estimates the chance a player features next round.
func MinutesProbability(p models.Player) float64 {
	if p.Status == models.StatusAvailable && p.ChanceOfPlayingNextRound == nil {
		return availableProbability
	}
	if p.ChanceOfPlayingNextRound != nil {
		return clamp(float64(*p.ChanceOfPlayingNextRound)/100, 0, 1)
	}
	return unknownProbability
}

// FixtureDifficultyMultiplier maps a 1..5 rating to a multiplier; unknown
// ratings are neutral.
func FixtureDifficultyMultiplier(rating int) float64 {
	if m, ok := difficultyMultipliers[rating]; ok {
		return m
	}
	return 1.0
}

// NormalizePosition maps provider labels to canonical short codes.
func NormalizePosition(label string) models.Position {
	switch strings.ToUpper(strings.TrimSpace(label)) {
	case "GK", "GKP", "GOALKEEPER":
		return models.PositionGK
	case "DEF", "DEFENDER":
		return models.PositionDEF
	case "MID", "MIDFIELDER":
		return models.PositionMID
	case "FWD", "FORWARD":
		return models.PositionFWD
	default:
		return models.PositionUnknown
	}
}

// PositionShort resolves an element type through the provider lookup table.
func PositionShort(elementType int, types []models.ElementType) models.Position {
	for _, et := range types {
		if et.ID != elementType {
			continue
		}
		if pos := NormalizePosition(et.SingularNameShort); pos != models.PositionUnknown {
			return pos
		}
		return NormalizePosition(et.SingularName)
	}
	return models.PositionUnknown
}

// PositionMultiplier gives attacking positions a small boost.
func PositionMultiplier(pos models.Position) float64 {
	if m, ok := positionMultipliers[pos]; ok {
		return m
	}
	return 1.0
}

// ExpectedPoints is the heuristic points estimate for one gameweek. Double
// gameweeks average the difficulty multipliers of every fixture.
func ExpectedPoints(p models.Player, fixtures *FixtureIndex) float64 {
	base := 0.55*p.Form + 0.45*p.PointsPerGame
	return base * MinutesProbability(p) * fixtures.AverageMultiplier(p.TeamID) * PositionMultiplier(p.Position)
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}

// Round rounds x to dp decimal places.
func Round(x float64, dp int) float64 {
	pow := math.Pow(10, float64(dp))
	return math.Round(x*pow) / pow
}
