package models

import "time"

// Differential is a low-ownership player ranked by upside.
type Differential struct {
	ID            int      `json:"id"`
	Name          string   `json:"name"`
	TeamShort     string   `json:"teamShort"`
	Pos           Position `json:"pos"`
	Price         float64  `json:"price"`
	Form          float64  `json:"form"`
	PointsPerGame float64  `json:"pointsPerGame"`
	Ownership     float64  `json:"ownership"`
	AvgDifficulty float64  `json:"avgDifficulty"`
	Score         float64  `json:"differentialScore"`
}

// ValuePick is a player ranked by points per million.
type ValuePick struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	TeamShort   string   `json:"teamShort"`
	Pos         Position `json:"pos"`
	Price       float64  `json:"price"`
	TotalPoints int      `json:"totalPoints"`
	Form        float64  `json:"form"`
	Minutes     int      `json:"minutes"`
	ValueScore  float64  `json:"valueScore"`
}

// PriceChange is a player whose price moved this gameweek.
type PriceChange struct {
	ID                int      `json:"id"`
	Name              string   `json:"name"`
	TeamShort         string   `json:"teamShort"`
	Pos               Position `json:"pos"`
	Price             float64  `json:"price"`
	Change            float64  `json:"change"`
	TransfersInEvent  int      `json:"transfersIn"`
	TransfersOutEvent int      `json:"transfersOut"`
	Ownership         float64  `json:"ownership"`
}

// PriceMovements groups risers and fallers.
type PriceMovements struct {
	Risers  []PriceChange `json:"risers"`
	Fallers []PriceChange `json:"fallers"`
}

// InjuryNews is a flagged player's latest status.
type InjuryNews struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	TeamShort   string     `json:"teamShort"`
	Pos         Position   `json:"pos"`
	Status      string     `json:"status"`
	StatusLabel string     `json:"statusLabel"`
	Chance      *int       `json:"chance"`
	News        string     `json:"news"`
	NewsAdded   *time.Time `json:"newsAdded,omitempty"`
}

// PlannedFixture is one opponent within a team's fixture run.
type PlannedFixture struct {
	Gameweek      int    `json:"gw"`
	OpponentID    int    `json:"oppId"`
	OpponentShort string `json:"oppShort"`
	Home          bool   `json:"home"`
	Difficulty    int    `json:"difficulty"`
}

// TeamFixtureRun is a team's upcoming schedule with an average rating.
type TeamFixtureRun struct {
	TeamID        int              `json:"teamId"`
	TeamShort     string           `json:"teamShort"`
	TeamName      string           `json:"teamName"`
	Fixtures      []PlannedFixture `json:"fixtures"`
	AvgDifficulty float64          `json:"avgDifficulty"`
	Rating        string           `json:"rating"`
}

// FixturePlan is the fixture planner response.
type FixturePlan struct {
	FromGameweek int              `json:"fromGw"`
	ToGameweek   int              `json:"toGw"`
	Teams        []TeamFixtureRun `json:"teams"`
}

// SquadPlayer is a member of a generated squad.
type SquadPlayer struct {
	ID             int      `json:"id"`
	Name           string   `json:"name"`
	WebName        string   `json:"webName"`
	TeamID         int      `json:"teamId"`
	TeamName       string   `json:"teamName"`
	Pos            Position `json:"positionName"`
	Cost           int      `json:"cost"`
	ExpectedPoints float64  `json:"expectedPoints"`
	Form           float64  `json:"form"`
	PointsPerGame  float64  `json:"pointsPerGame"`
}

// Squad is a generated 15-player squad.
type Squad struct {
	Formation           string        `json:"formation"`
	StartingXI          []SquadPlayer `json:"starting_11"`
	Bench               []SquadPlayer `json:"bench"`
	Captain             *SquadPlayer  `json:"captain"`
	ViceCaptain         *SquadPlayer  `json:"vice_captain"`
	TotalCost           int           `json:"totalCost"`
	TotalExpectedPoints float64       `json:"totalExpectedPoints"`
}

// ChipStatus reports whether a chip is still available.
type ChipStatus struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Used        bool   `json:"used"`
	UsedIn      int    `json:"usedIn,omitempty"`
}

// ChipRecommendation suggests when to play a chip.
type ChipRecommendation struct {
	Chip          string `json:"chip"`
	RecommendedGW *int   `json:"recommendedGw"`
	Reason        string `json:"reason"`
	Priority      int    `json:"priority"`
}

// UpcomingGameweek is a gameweek flagged for double or blank fixtures.
type UpcomingGameweek struct {
	ID           int        `json:"id"`
	Name         string     `json:"name"`
	DeadlineTime *time.Time `json:"deadlineTime,omitempty"`
	FixtureCount int        `json:"fixtureCount"`
	IsDouble     bool       `json:"isDGW"`
	IsBlank      bool       `json:"isBGW"`
}

// ChipStrategy is the chip planner response.
type ChipStrategy struct {
	EntryID          int                  `json:"entryId"`
	ManagerName      string               `json:"managerName"`
	TeamName         string               `json:"teamName"`
	OverallPoints    int                  `json:"overallPoints"`
	OverallRank      int                  `json:"overallRank"`
	CurrentGameweek  int                  `json:"currentGw"`
	Chips            []ChipStatus         `json:"chips"`
	Recommendations  []ChipRecommendation `json:"recommendations"`
	Upcoming         []UpcomingGameweek   `json:"upcomingGws"`
	NextDeadline     *time.Time           `json:"nextDeadline,omitempty"`
	NextDeadlineGWID int                  `json:"nextGw,omitempty"`
}

// PlayerMatch is a fuzzy search hit.
type PlayerMatch struct {
	ID        int      `json:"id"`
	Name      string   `json:"name"`
	FullName  string   `json:"fullName"`
	TeamShort string   `json:"teamShort"`
	Pos       Position `json:"pos"`
	Price     float64  `json:"price"`
	Distance  int      `json:"distance"`
}

// ImageResult is a resolved crest, kit or photo URL.
type ImageResult struct {
	URL         string `json:"url"`
	Placeholder bool   `json:"placeholder"`
}
