package scoring

import "github.com/fpladvisor/advisor-api/internal/models"

const (
	baseHomeRate = 1.45
	baseAwayRate = 1.15

	homeAdvantage     = 0.08
	formImpact        = 0.10
	injuryAttackDrop  = 0.07
	injuryDefenceGain = 0.07
	disciplineMax     = 0.06
	missingCap        = 0.35

	targetTotalGoals = 2.75
	defaultStrength  = 100.0
)

// LeagueStrengths are the league-wide average strength ratings.
type LeagueStrengths struct {
	AttackHome  float64
	AttackAway  float64
	DefenceHome float64
	DefenceAway float64
}

// NewLeagueStrengths averages strength ratings across teams. Missing (zero)
// ratings count as 100.
func NewLeagueStrengths(teams []models.Team) LeagueStrengths {
	if len(teams) == 0 {
		return LeagueStrengths{defaultStrength, defaultStrength, defaultStrength, defaultStrength}
	}
	var ls LeagueStrengths
	for _, t := range teams {
		ls.AttackHome += strength(t.StrengthAttackHome)
		ls.AttackAway += strength(t.StrengthAttackAway)
		ls.DefenceHome += strength(t.StrengthDefenceHome)
		ls.DefenceAway += strength(t.StrengthDefenceAway)
	}
	n := float64(len(teams))
	ls.AttackHome /= n
	ls.AttackAway /= n
	ls.DefenceHome /= n
	ls.DefenceAway /= n
	return ls
}

func strength(v int) float64 {
	if v <= 0 {
		return defaultStrength
	}
	return float64(v)
}

func ratio(v int, avg float64) float64 {
	if avg == 0 {
		return 1
	}
	return strength(v) / avg
}

// MatchLambdas estimates home and away scoring rates for a fixture. Team
// signals are optional; without them the FPL strength ratings separate the
// teams. The boolean reports whether both teams' signals were used.
func MatchLambdas(home, away models.Team, league LeagueStrengths, sigH, sigA *models.TeamSignals) (models.MatchLambdas, bool) {
	var gfH, gfA, gaH, gaA float64
	if sigH != nil {
		gfH, gaH = sigH.GoalsForAvgHome, sigH.GoalsAgainstAvgHome
	} else {
		gfH = baseHomeRate * ratio(home.StrengthAttackHome, league.AttackHome)
		gaH = baseAwayRate / ratio(home.StrengthDefenceHome, league.DefenceHome)
	}
	if sigA != nil {
		gfA, gaA = sigA.GoalsForAvgAway, sigA.GoalsAgainstAvgAway
	} else {
		gfA = baseAwayRate * ratio(away.StrengthAttackAway, league.AttackAway)
		gaA = baseHomeRate / ratio(away.StrengthDefenceAway, league.DefenceAway)
	}

	// Attack rate times the opponent's relative leakiness against the same venue.
	lamH := gfH * clamp(gaA/baseHomeRate, 0.6, 1.6)
	lamA := gfA * clamp(gaH/baseAwayRate, 0.6, 1.6)

	lamH *= 1 + homeAdvantage

	if sigH != nil {
		lamH *= 1 + formImpact*(sigH.FormScore-0.5)*2
		lamH *= 1 - minF(missingCap, attackingMissing(sigH.Missing)*injuryAttackDrop)
		lamA *= 1 + minF(missingCap, defensiveMissing(sigH.Missing)*injuryDefenceGain)
		lamH *= 1 - minF(disciplineMax, disciplineLoad(sigH))
	}
	if sigA != nil {
		lamA *= 1 + formImpact*(sigA.FormScore-0.5)*2
		lamA *= 1 - minF(missingCap, attackingMissing(sigA.Missing)*injuryAttackDrop)
		lamH *= 1 + minF(missingCap, defensiveMissing(sigA.Missing)*injuryDefenceGain)
		lamA *= 1 - minF(disciplineMax, disciplineLoad(sigA))
	}

	lamH = clamp(lamH, 0.2, 3.2)
	lamA = clamp(lamA, 0.2, 3.0)
	scale := clamp(targetTotalGoals/(lamH+lamA), 0.85, 1.15)

	return models.MatchLambdas{Home: lamH * scale, Away: lamA * scale}, sigH != nil && sigA != nil
}

func attackingMissing(m models.MissingPlayers) float64 {
	return float64(m.Att+m.Mid+m.SuspendedAtt) + float64(m.SuspendedMid)*1.2
}

func defensiveMissing(m models.MissingPlayers) float64 {
	return float64(m.Def+m.GK) + float64(m.SuspendedDef)*1.2
}

func disciplineLoad(s *models.TeamSignals) float64 {
	return clamp(s.YellowPerMatch*0.05+s.RedPerMatch*0.6, 0, 1)
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
