package models

import (
	"strings"
	"sync"
	"time"
)

// Position is the canonical short position code.
type Position string

const (
	PositionGK      Position = "GK"
	PositionDEF     Position = "DEF"
	PositionMID     Position = "MID"
	PositionFWD     Position = "FWD"
	PositionUnknown Position = "UNK"
)

// Availability status codes used by the FPL API.
const (
	StatusAvailable   = "a"
	StatusDoubtful    = "d"
	StatusInjured     = "i"
	StatusSuspended   = "s"
	StatusUnavailable = "u"
	StatusNotInSquad  = "n"
)

// Player is a normalized FPL element. Prices are in tenths (85 = 8.5m).
type Player struct {
	ID          int      `json:"id"`
	WebName     string   `json:"web_name"`
	FirstName   string   `json:"first_name"`
	SecondName  string   `json:"second_name"`
	TeamID      int      `json:"team"`
	ElementType int      `json:"element_type"`
	Position    Position `json:"position"`
	NowCost     int      `json:"now_cost"`
	Status      string   `json:"status"`
	// ChanceOfPlayingNextRound is nil when the provider records no doubt.
	ChanceOfPlayingNextRound *int `json:"chance_of_playing_next_round"`

	TotalPoints int `json:"total_points"`
	Minutes     int `json:"minutes"`
	GoalsScored int `json:"goals_scored"`
	Assists     int `json:"assists"`
	CleanSheets int `json:"clean_sheets"`
	YellowCards int `json:"yellow_cards"`
	RedCards    int `json:"red_cards"`

	Form              float64 `json:"form"`
	PointsPerGame     float64 `json:"points_per_game"`
	SelectedByPercent float64 `json:"selected_by_percent"`
	TransfersInEvent  int     `json:"transfers_in_event"`
	TransfersOutEvent int     `json:"transfers_out_event"`
	CostChangeEvent   int     `json:"cost_change_event"`

	ExpectedGoals                 float64 `json:"expected_goals"`
	ExpectedAssists               float64 `json:"expected_assists"`
	ExpectedGoalInvolvements      float64 `json:"expected_goal_involvements"`
	ExpectedGoalsPer90            float64 `json:"expected_goals_per_90"`
	ExpectedAssistsPer90          float64 `json:"expected_assists_per_90"`
	ExpectedGoalInvolvementsPer90 float64 `json:"expected_goal_involvements_per_90"`

	News      string     `json:"news"`
	NewsAdded *time.Time `json:"news_added,omitempty"`
	Photo     string     `json:"photo"`
}

// DisplayName returns the web name, falling back to the full name.
func (p Player) DisplayName() string {
	if p.WebName != "" {
		return p.WebName
	}
	return p.FullName()
}

// FullName joins first and second name.
func (p Player) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.SecondName)
}

// Price returns the price in millions.
func (p Player) Price() float64 {
	return float64(p.NowCost) / 10
}

// Team is a Premier League club as seen by the FPL API.
type Team struct {
	ID                  int    `json:"id"`
	Code                int    `json:"code"`
	Name                string `json:"name"`
	ShortName           string `json:"short_name"`
	Strength            int    `json:"strength"`
	StrengthOverallHome int    `json:"strength_overall_home"`
	StrengthOverallAway int    `json:"strength_overall_away"`
	StrengthAttackHome  int    `json:"strength_attack_home"`
	StrengthAttackAway  int    `json:"strength_attack_away"`
	StrengthDefenceHome int    `json:"strength_defence_home"`
	StrengthDefenceAway int    `json:"strength_defence_away"`
}

// Label returns the short name, falling back to the full name.
func (t Team) Label() string {
	if t.ShortName != "" {
		return t.ShortName
	}
	return t.Name
}

// Gameweek is an FPL event.
type Gameweek struct {
	ID                int        `json:"id"`
	Name              string     `json:"name"`
	DeadlineTime      *time.Time `json:"deadline_time,omitempty"`
	IsCurrent         bool       `json:"is_current"`
	IsNext            bool       `json:"is_next"`
	IsPrevious        bool       `json:"is_previous"`
	Finished          bool       `json:"finished"`
	AverageEntryScore int        `json:"average_entry_score"`
	HighestScore      int        `json:"highest_score"`
}

// ElementType is a provider position definition.
type ElementType struct {
	ID                int    `json:"id"`
	SingularName      string `json:"singular_name"`
	SingularNameShort string `json:"singular_name_short"`
	PluralName        string `json:"plural_name"`
}

// Bootstrap is the root reference data for a request.
type Bootstrap struct {
	Players      []Player      `json:"elements"`
	Teams        []Team        `json:"teams"`
	Gameweeks    []Gameweek    `json:"events"`
	ElementTypes []ElementType `json:"element_types"`
	TotalPlayers int           `json:"total_players"`

	indexOnce sync.Once
	players   map[int]int
	teams     map[int]int
}

func (b *Bootstrap) buildIndex() {
	b.indexOnce.Do(func() {
		b.players = make(map[int]int, len(b.Players))
		for i, p := range b.Players {
			b.players[p.ID] = i
		}
		b.teams = make(map[int]int, len(b.Teams))
		for i, t := range b.Teams {
			b.teams[t.ID] = i
		}
	})
}

// Player looks up a player by id.
func (b *Bootstrap) Player(id int) (*Player, bool) {
	b.buildIndex()
	i, ok := b.players[id]
	if !ok {
		return nil, false
	}
	return &b.Players[i], true
}

// Team looks up a team by id.
func (b *Bootstrap) Team(id int) (*Team, bool) {
	b.buildIndex()
	i, ok := b.teams[id]
	if !ok {
		return nil, false
	}
	return &b.Teams[i], true
}

// TeamShort returns the team's short label or fallback when unknown.
func (b *Bootstrap) TeamShort(id int, fallback string) string {
	if t, ok := b.Team(id); ok {
		if l := t.Label(); l != "" {
			return l
		}
	}
	return fallback
}

// Fixture pairs two teams within a gameweek. Difficulty is 1 (easiest) to 5.
type Fixture struct {
	ID              int        `json:"id"`
	Event           int        `json:"event"`
	TeamH           int        `json:"team_h"`
	TeamA           int        `json:"team_a"`
	TeamHDifficulty int        `json:"team_h_difficulty"`
	TeamADifficulty int        `json:"team_a_difficulty"`
	TeamHScore      *int       `json:"team_h_score"`
	TeamAScore      *int       `json:"team_a_score"`
	Started         bool       `json:"started"`
	Finished        bool       `json:"finished"`
	KickoffTime     *time.Time `json:"kickoff_time,omitempty"`
}

// Pick is one slot in a manager's squad for a gameweek.
type Pick struct {
	Element       int  `json:"element"`
	Position      int  `json:"position"`
	Multiplier    int  `json:"multiplier"`
	IsCaptain     bool `json:"is_captain"`
	IsViceCaptain bool `json:"is_vice_captain"`
}

// IsStarter applies the canonical starting XI rule: slot 1..11 when the slot
// is known, otherwise a positive multiplier.
func (p Pick) IsStarter() bool {
	if p.Position > 0 {
		return p.Position <= 11
	}
	return p.Multiplier > 0
}

// SortSlot is the slot used for ordering; unknown slots sort last.
func (p Pick) SortSlot() int {
	if p.Position > 0 {
		return p.Position
	}
	return 99
}

// EventEntryHistory is the per-gameweek summary attached to picks.
type EventEntryHistory struct {
	Event              int `json:"event"`
	Points             int `json:"points"`
	TotalPoints        int `json:"total_points"`
	Bank               int `json:"bank"`
	Value              int `json:"value"`
	EventTransfers     int `json:"event_transfers"`
	EventTransfersCost int `json:"event_transfers_cost"`
	PointsOnBench      int `json:"points_on_bench"`
}

// Picks is a manager's squad for one gameweek.
type Picks struct {
	ActiveChip   string            `json:"active_chip"`
	EntryHistory EventEntryHistory `json:"entry_history"`
	Picks        []Pick            `json:"picks"`
}

// Entry is a manager's public team summary.
type Entry struct {
	ID                   int    `json:"id"`
	PlayerFirstName      string `json:"player_first_name"`
	PlayerLastName       string `json:"player_last_name"`
	Name                 string `json:"name"`
	SummaryOverallPoints int    `json:"summary_overall_points"`
	SummaryOverallRank   int    `json:"summary_overall_rank"`
	CurrentEvent         int    `json:"current_event"`
}

// ManagerName joins the manager's first and last name.
func (e Entry) ManagerName() string {
	return strings.TrimSpace(e.PlayerFirstName + " " + e.PlayerLastName)
}

// EntryHistory holds a manager's season history.
type EntryHistory struct {
	Current []EventEntryHistoryRow `json:"current"`
	Past    []SeasonHistory        `json:"past"`
	Chips   []ChipPlay             `json:"chips"`
}

// EventEntryHistoryRow is one gameweek row of a manager's history.
type EventEntryHistoryRow struct {
	EventEntryHistory
	Rank        int    `json:"rank"`
	OverallRank int    `json:"overall_rank"`
	ActiveChip  string `json:"active_chip,omitempty"`
}

// SeasonHistory is a past season summary.
type SeasonHistory struct {
	SeasonName  string `json:"season_name"`
	TotalPoints int    `json:"total_points"`
	Rank        int    `json:"rank"`
}

// ChipPlay records a chip played in a gameweek.
type ChipPlay struct {
	Name  string     `json:"name"`
	Event int        `json:"event"`
	Time  *time.Time `json:"time,omitempty"`
}

// League describes a classic league.
type League struct {
	ID         int        `json:"id"`
	Name       string     `json:"name"`
	Created    *time.Time `json:"created,omitempty"`
	Closed     bool       `json:"closed"`
	MaxEntries *int       `json:"max_entries"`
	LeagueType string     `json:"league_type"`
	Scoring    string     `json:"scoring"`
	StartEvent int        `json:"start_event"`
}

// StandingRow is one manager's position in a league.
type StandingRow struct {
	ID         int    `json:"id"`
	Entry      int    `json:"entry"`
	EntryName  string `json:"entry_name"`
	PlayerName string `json:"player_name"`
	Rank       int    `json:"rank"`
	LastRank   int    `json:"last_rank"`
	RankSort   int    `json:"rank_sort"`
	Total      int    `json:"total"`
	EventTotal int    `json:"event_total"`
}

// Movement returns the rank change since the previous gameweek (positive = up).
func (r StandingRow) Movement() int {
	if r.LastRank == 0 {
		return 0
	}
	return r.LastRank - r.Rank
}

// Standings is one page of league standings.
type Standings struct {
	HasNext bool          `json:"has_next"`
	Page    int           `json:"page"`
	Results []StandingRow `json:"results"`
}

// LeagueStandings is a classic league standings page.
type LeagueStandings struct {
	League    League    `json:"league"`
	Standings Standings `json:"standings"`
}
