package scoring

import "math"

const maxGoals = 7

// PoissonPMF is P(X = k) for X ~ Poisson(lambda).
func PoissonPMF(lambda float64, k int) float64 {
	if k < 0 || lambda < 0 {
		return 0
	}
	if lambda == 0 {
		if k == 0 {
			return 1
		}
		return 0
	}
	lg, _ := math.Lgamma(float64(k + 1))
	return math.Exp(-lambda + float64(k)*math.Log(lambda) - lg)
}

// CleanSheetProbability is P(0 goals conceded) given the opponent's rate.
func CleanSheetProbability(opponentLambda float64) float64 {
	return math.Exp(-opponentLambda)
}

// MostLikelyScore searches 0..7 goals per side for the most probable
// scoreline under independent Poisson rates.
func MostLikelyScore(lambdaHome, lambdaAway float64) (home, away int, prob float64) {
	for i := 0; i <= maxGoals; i++ {
		ph := PoissonPMF(lambdaHome, i)
		for j := 0; j <= maxGoals; j++ {
			p := ph * PoissonPMF(lambdaAway, j)
			if p > prob {
				home, away, prob = i, j, p
			}
		}
	}
	return home, away, prob
}
