package models

// MissingPlayers counts unavailable players by line and reason.
type MissingPlayers struct {
	Att          int `json:"att"`
	Mid          int `json:"mid"`
	Def          int `json:"def"`
	GK           int `json:"gk"`
	SuspendedAtt int `json:"suspendedAtt"`
	SuspendedMid int `json:"suspendedMid"`
	SuspendedDef int `json:"suspendedDef"`
}

// TeamSignals are optional team-level statistics from a secondary provider.
type TeamSignals struct {
	GoalsForAvgHome     float64        `json:"gfAvgHome"`
	GoalsForAvgAway     float64        `json:"gfAvgAway"`
	GoalsAgainstAvgHome float64        `json:"gaAvgHome"`
	GoalsAgainstAvgAway float64        `json:"gaAvgAway"`
	FormScore           float64        `json:"formScore"` // 0..1 over the last 6 results
	YellowPerMatch      float64        `json:"yellowPerMatch"`
	RedPerMatch         float64        `json:"redPerMatch"`
	Missing             MissingPlayers `json:"missing"`
}

// MatchLambdas is a pair of expected-goal rates for one fixture.
type MatchLambdas struct {
	Home float64 `json:"home"`
	Away float64 `json:"away"`
}

// Scoreline is a predicted final score.
type Scoreline struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

// MatchPrediction is the smart match model output for one fixture.
type MatchPrediction struct {
	FixtureID   int          `json:"fixtureId"`
	Gameweek    int          `json:"gw"`
	HomeTeamID  int          `json:"homeTeamId"`
	HomeShort   string       `json:"homeShort"`
	AwayTeamID  int          `json:"awayTeamId"`
	AwayShort   string       `json:"awayShort"`
	Lambdas     MatchLambdas `json:"lambdas"`
	Score       Scoreline    `json:"score"`
	Confidence  float64      `json:"conf"`
	SignalsUsed bool         `json:"signalsUsed"`
}
