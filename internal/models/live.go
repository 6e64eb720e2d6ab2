package models

import "time"

// LiveStats are a player's running totals for one gameweek.
type LiveStats struct {
	Minutes       int `json:"minutes"`
	GoalsScored   int `json:"goalsScored"`
	Assists       int `json:"assists"`
	CleanSheets   int `json:"cleanSheets"`
	GoalsConceded int `json:"goalsConceded"`
	Saves         int `json:"saves"`
	YellowCards   int `json:"yellowCards"`
	RedCards      int `json:"redCards"`
	Bonus         int `json:"bonus"`
	BPS           int `json:"bps"`
	TotalPoints   int `json:"totalPoints"`
}

// LiveElement is one player's entry in event/{gw}/live.
type LiveElement struct {
	ID       int
	Stats    LiveStats
	Fixtures []int
}

// LiveEvent is the live feed of a gameweek.
type LiveEvent struct {
	Elements []LiveElement
}

// Index maps element ids to their live entries.
func (l *LiveEvent) Index() map[int]LiveElement {
	idx := make(map[int]LiveElement, len(l.Elements))
	for _, e := range l.Elements {
		idx[e.ID] = e
	}
	return idx
}

type LiveGameweekInfo struct {
	ID           int        `json:"id"`
	Name         string     `json:"name"`
	DeadlineTime *time.Time `json:"deadlineTime,omitempty"`
	AverageScore int        `json:"averageScore"`
	HighestScore int        `json:"highestScore"`
	Finished     bool       `json:"finished"`
}

// LiveTeamSummary totals a manager's gameweek so far. NetPoints subtracts the
// transfer hit.
type LiveTeamSummary struct {
	ManagerName   string `json:"managerName"`
	TeamName      string `json:"teamName"`
	LivePoints    int    `json:"livePoints"`
	CaptainPoints int    `json:"captainPoints"`
	Transfers     int    `json:"transfers"`
	TransfersCost int    `json:"transfersCost"`
	NetPoints     int    `json:"netPoints"`
	ActiveChip    string `json:"activeChip,omitempty"`
	OverallPoints int    `json:"overallPoints"`
	OverallRank   int    `json:"overallRank"`
}

type LivePlayer struct {
	ID            int       `json:"id"`
	Name          string    `json:"name"`
	TeamShort     string    `json:"teamShort"`
	Pos           Position  `json:"pos"`
	Slot          int       `json:"slot"`
	Points        int       `json:"points"`
	Multiplier    int       `json:"multiplier"`
	TotalPoints   int       `json:"totalPoints"`
	IsCaptain     bool      `json:"isCaptain"`
	IsViceCaptain bool      `json:"isViceCaptain"`
	Stats         LiveStats `json:"stats"`
	FixtureID     int       `json:"fixtureId,omitempty"`
}

type LivePerformer struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	TeamShort string    `json:"teamShort"`
	Pos       Position  `json:"pos"`
	Points    int       `json:"points"`
	Stats     LiveStats `json:"stats"`
}

type LiveSide struct {
	TeamID    int    `json:"teamId"`
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
	Score     *int   `json:"score"`
}

type LiveFixture struct {
	ID          int        `json:"id"`
	KickoffTime *time.Time `json:"kickoffTime,omitempty"`
	Started     bool       `json:"started"`
	Finished    bool       `json:"finished"`
	Home        LiveSide   `json:"home"`
	Away        LiveSide   `json:"away"`
}

// LiveGameweekResult is a manager's live view of the gameweek in progress.
type LiveGameweekResult struct {
	EntryID       int              `json:"entryId"`
	Gameweek      LiveGameweekInfo `json:"gameweek"`
	Team          LiveTeamSummary  `json:"team"`
	Players       []LivePlayer     `json:"players"`
	TopPerformers []LivePerformer  `json:"topPerformers"`
	Fixtures      []LiveFixture    `json:"fixtures"`
	InProgress    []string         `json:"inProgress"`
}

// TransferTrend is a player's transfer activity this gameweek.
type TransferTrend struct {
	ID           int      `json:"id"`
	Name         string   `json:"name"`
	FullName     string   `json:"fullName"`
	TeamShort    string   `json:"teamShort"`
	Pos          Position `json:"pos"`
	Price        float64  `json:"price"`
	Ownership    float64  `json:"ownership"`
	TransfersIn  int      `json:"transfersIn"`
	TransfersOut int      `json:"transfersOut"`
}

// TransferTrends lists the most transferred in and out players.
type TransferTrends struct {
	In  []TransferTrend `json:"transferredIn"`
	Out []TransferTrend `json:"transferredOut"`
}

// Notification priorities, highest first.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Notification kinds.
const (
	NotifyDeadline = "deadline"
	NotifyPrice    = "price"
	NotifyInjury   = "injury"
	NotifyTransfer = "transfer"
	NotifyForm     = "form"
	NotifyFixture  = "fixture"
)

// Notification is one alert in the feed. Link points at the endpoint with the
// details.
type Notification struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Priority  string         `json:"priority"`
	Title     string         `json:"title"`
	Message   string         `json:"message"`
	Timestamp time.Time      `json:"timestamp"`
	Link      string         `json:"link"`
	Data      map[string]any `json:"data,omitempty"`
}

type NotificationCounts struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// NotificationFeed is ordered by priority, then newest first.
type NotificationFeed struct {
	CurrentGameweek int                `json:"currentGameweek"`
	Total           int                `json:"total"`
	Notifications   []Notification     `json:"notifications"`
	LastUpdated     time.Time          `json:"lastUpdated"`
	Counts          NotificationCounts `json:"counts"`
}
