package fpl

import (
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/fpladvisor/advisor-api/internal/models"
	"github.com/fpladvisor/advisor-api/internal/scoring"
)

// Wire types mirror the upstream JSON. Numeric fields the provider sends as
// strings (or inconsistently) decode through the models.Flex* types, so the
// rest of the service only ever sees strict types.

type wireElement struct {
	ID                            models.FlexInt     `json:"id"`
	WebName                       string             `json:"web_name"`
	FirstName                     string             `json:"first_name"`
	SecondName                    string             `json:"second_name"`
	Team                          models.FlexInt     `json:"team"`
	ElementType                   models.FlexInt     `json:"element_type"`
	NowCost                       models.FlexInt     `json:"now_cost"`
	Status                        string             `json:"status"`
	ChanceOfPlayingNextRound      models.NullableInt `json:"chance_of_playing_next_round"`
	TotalPoints                   models.FlexInt     `json:"total_points"`
	Minutes                       models.FlexInt     `json:"minutes"`
	GoalsScored                   models.FlexInt     `json:"goals_scored"`
	Assists                       models.FlexInt     `json:"assists"`
	CleanSheets                   models.FlexInt     `json:"clean_sheets"`
	YellowCards                   models.FlexInt     `json:"yellow_cards"`
	RedCards                      models.FlexInt     `json:"red_cards"`
	Form                          models.FlexFloat   `json:"form"`
	PointsPerGame                 models.FlexFloat   `json:"points_per_game"`
	SelectedByPercent             models.FlexFloat   `json:"selected_by_percent"`
	TransfersInEvent              models.FlexInt     `json:"transfers_in_event"`
	TransfersOutEvent             models.FlexInt     `json:"transfers_out_event"`
	CostChangeEvent               models.FlexInt     `json:"cost_change_event"`
	ExpectedGoals                 models.FlexFloat   `json:"expected_goals"`
	ExpectedAssists               models.FlexFloat   `json:"expected_assists"`
	ExpectedGoalInvolvements      models.FlexFloat   `json:"expected_goal_involvements"`
	ExpectedGoalsPer90            models.FlexFloat   `json:"expected_goals_per_90"`
	ExpectedAssistsPer90          models.FlexFloat   `json:"expected_assists_per_90"`
	ExpectedGoalInvolvementsPer90 models.FlexFloat   `json:"expected_goal_involvements_per_90"`
	News                          string             `json:"news"`
	NewsAdded                     *time.Time         `json:"news_added"`
	Photo                         string             `json:"photo"`
}

type wireTeam struct {
	ID                  models.FlexInt `json:"id"`
	Code                models.FlexInt `json:"code"`
	Name                string         `json:"name"`
	ShortName           string         `json:"short_name"`
	Strength            models.FlexInt `json:"strength"`
	StrengthOverallHome models.FlexInt `json:"strength_overall_home"`
	StrengthOverallAway models.FlexInt `json:"strength_overall_away"`
	StrengthAttackHome  models.FlexInt `json:"strength_attack_home"`
	StrengthAttackAway  models.FlexInt `json:"strength_attack_away"`
	StrengthDefenceHome models.FlexInt `json:"strength_defence_home"`
	StrengthDefenceAway models.FlexInt `json:"strength_defence_away"`
}

type wireEvent struct {
	ID                models.FlexInt `json:"id"`
	Name              string         `json:"name"`
	DeadlineTime      *time.Time     `json:"deadline_time"`
	IsCurrent         bool           `json:"is_current"`
	IsNext            bool           `json:"is_next"`
	IsPrevious        bool           `json:"is_previous"`
	Finished          bool           `json:"finished"`
	AverageEntryScore models.FlexInt `json:"average_entry_score"`
	HighestScore      models.FlexInt `json:"highest_score"`
}

type wireElementType struct {
	ID                models.FlexInt `json:"id"`
	SingularName      string         `json:"singular_name"`
	SingularNameShort string         `json:"singular_name_short"`
	PluralName        string         `json:"plural_name"`
}

type wireBootstrap struct {
	Elements     []wireElement     `json:"elements"`
	Teams        []wireTeam        `json:"teams"`
	Events       []wireEvent       `json:"events"`
	ElementTypes []wireElementType `json:"element_types"`
	TotalPlayers models.FlexInt    `json:"total_players"`
}

type wireFixture struct {
	ID              models.FlexInt `json:"id"`
	Event           models.FlexInt `json:"event"`
	TeamH           models.FlexInt `json:"team_h"`
	TeamA           models.FlexInt `json:"team_a"`
	TeamHDifficulty models.FlexInt `json:"team_h_difficulty"`
	TeamADifficulty models.FlexInt `json:"team_a_difficulty"`
	TeamHScore      *int           `json:"team_h_score"`
	TeamAScore      *int           `json:"team_a_score"`
	Started         *bool          `json:"started"`
	Finished        bool           `json:"finished"`
	KickoffTime     *time.Time     `json:"kickoff_time"`
}

type wirePick struct {
	Element       models.FlexInt `json:"element"`
	Position      models.FlexInt `json:"position"`
	Multiplier    models.FlexInt `json:"multiplier"`
	IsCaptain     bool           `json:"is_captain"`
	IsViceCaptain bool           `json:"is_vice_captain"`
}

type wireEntryHistory struct {
	Event              models.FlexInt `json:"event"`
	Points             models.FlexInt `json:"points"`
	TotalPoints        models.FlexInt `json:"total_points"`
	Bank               models.FlexInt `json:"bank"`
	Value              models.FlexInt `json:"value"`
	EventTransfers     models.FlexInt `json:"event_transfers"`
	EventTransfersCost models.FlexInt `json:"event_transfers_cost"`
	PointsOnBench      models.FlexInt `json:"points_on_bench"`
	Rank               models.FlexInt `json:"rank"`
	OverallRank        models.FlexInt `json:"overall_rank"`
	ActiveChip         string         `json:"active_chip"`
}

type wirePicks struct {
	ActiveChip   *string          `json:"active_chip"`
	EntryHistory wireEntryHistory `json:"entry_history"`
	Picks        []wirePick       `json:"picks"`
}

type wireEntry struct {
	ID                   models.FlexInt `json:"id"`
	PlayerFirstName      string         `json:"player_first_name"`
	PlayerLastName       string         `json:"player_last_name"`
	Name                 string         `json:"name"`
	SummaryOverallPoints models.FlexInt `json:"summary_overall_points"`
	SummaryOverallRank   models.FlexInt `json:"summary_overall_rank"`
	CurrentEvent         models.FlexInt `json:"current_event"`
}

type wireHistory struct {
	Current []wireEntryHistory `json:"current"`
	Past    []struct {
		SeasonName  string         `json:"season_name"`
		TotalPoints models.FlexInt `json:"total_points"`
		Rank        models.FlexInt `json:"rank"`
	} `json:"past"`
	Chips []struct {
		Name  string         `json:"name"`
		Event models.FlexInt `json:"event"`
		Time  *time.Time     `json:"time"`
	} `json:"chips"`
}

type wireLeagueStandings struct {
	League struct {
		ID         models.FlexInt `json:"id"`
		Name       string         `json:"name"`
		Created    *time.Time     `json:"created"`
		Closed     bool           `json:"closed"`
		MaxEntries *int           `json:"max_entries"`
		LeagueType string         `json:"league_type"`
		Scoring    string         `json:"scoring"`
		StartEvent models.FlexInt `json:"start_event"`
	} `json:"league"`
	Standings struct {
		HasNext bool           `json:"has_next"`
		Page    models.FlexInt `json:"page"`
		Results []struct {
			ID         models.FlexInt `json:"id"`
			Entry      models.FlexInt `json:"entry"`
			EntryName  string         `json:"entry_name"`
			PlayerName string         `json:"player_name"`
			Rank       models.FlexInt `json:"rank"`
			LastRank   models.FlexInt `json:"last_rank"`
			RankSort   models.FlexInt `json:"rank_sort"`
			Total      models.FlexInt `json:"total"`
			EventTotal models.FlexInt `json:"event_total"`
		} `json:"results"`
	} `json:"standings"`
}

type wireLiveStats struct {
	Minutes       models.FlexInt `json:"minutes"`
	GoalsScored   models.FlexInt `json:"goals_scored"`
	Assists       models.FlexInt `json:"assists"`
	CleanSheets   models.FlexInt `json:"clean_sheets"`
	GoalsConceded models.FlexInt `json:"goals_conceded"`
	Saves         models.FlexInt `json:"saves"`
	YellowCards   models.FlexInt `json:"yellow_cards"`
	RedCards      models.FlexInt `json:"red_cards"`
	Bonus         models.FlexInt `json:"bonus"`
	BPS           models.FlexInt `json:"bps"`
	TotalPoints   models.FlexInt `json:"total_points"`
}

type wireLive struct {
	Elements []struct {
		ID      models.FlexInt `json:"id"`
		Stats   wireLiveStats  `json:"stats"`
		Explain []struct {
			Fixture models.FlexInt `json:"fixture"`
		} `json:"explain"`
	} `json:"elements"`
}

// parseBootstrap validates and converts bootstrap-static into strict types.
// Rows without a usable id are dropped and logged.
func parseBootstrap(raw []byte, logger *zap.SugaredLogger) (*models.Bootstrap, error) {
	var w wireBootstrap
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("decode bootstrap: %w", err)
	}
	if len(w.Elements) == 0 || len(w.Teams) == 0 {
		return nil, fmt.Errorf("decode bootstrap: %w", ErrSchema)
	}

	boot := &models.Bootstrap{TotalPlayers: w.TotalPlayers.Int()}

	for _, et := range w.ElementTypes {
		boot.ElementTypes = append(boot.ElementTypes, models.ElementType{
			ID:                et.ID.Int(),
			SingularName:      et.SingularName,
			SingularNameShort: et.SingularNameShort,
			PluralName:        et.PluralName,
		})
	}

	for _, t := range w.Teams {
		if t.ID <= 0 {
			logger.Warnw("Dropping team without id", "name", t.Name)
			continue
		}
		boot.Teams = append(boot.Teams, models.Team{
			ID:                  t.ID.Int(),
			Code:                t.Code.Int(),
			Name:                t.Name,
			ShortName:           t.ShortName,
			Strength:            t.Strength.Int(),
			StrengthOverallHome: t.StrengthOverallHome.Int(),
			StrengthOverallAway: t.StrengthOverallAway.Int(),
			StrengthAttackHome:  t.StrengthAttackHome.Int(),
			StrengthAttackAway:  t.StrengthAttackAway.Int(),
			StrengthDefenceHome: t.StrengthDefenceHome.Int(),
			StrengthDefenceAway: t.StrengthDefenceAway.Int(),
		})
	}

	for _, e := range w.Events {
		if e.ID <= 0 {
			continue
		}
		boot.Gameweeks = append(boot.Gameweeks, models.Gameweek{
			ID:                e.ID.Int(),
			Name:              e.Name,
			DeadlineTime:      e.DeadlineTime,
			IsCurrent:         e.IsCurrent,
			IsNext:            e.IsNext,
			IsPrevious:        e.IsPrevious,
			Finished:          e.Finished,
			AverageEntryScore: e.AverageEntryScore.Int(),
			HighestScore:      e.HighestScore.Int(),
		})
	}

	dropped := 0
	for _, e := range w.Elements {
		if e.ID <= 0 || e.Team <= 0 {
			dropped++
			continue
		}
		boot.Players = append(boot.Players, models.Player{
			ID:                            e.ID.Int(),
			WebName:                       e.WebName,
			FirstName:                     e.FirstName,
			SecondName:                    e.SecondName,
			TeamID:                        e.Team.Int(),
			ElementType:                   e.ElementType.Int(),
			Position:                      scoring.PositionShort(e.ElementType.Int(), boot.ElementTypes),
			NowCost:                       e.NowCost.Int(),
			Status:                        e.Status,
			ChanceOfPlayingNextRound:      e.ChanceOfPlayingNextRound.Ptr(),
			TotalPoints:                   e.TotalPoints.Int(),
			Minutes:                       e.Minutes.Int(),
			GoalsScored:                   e.GoalsScored.Int(),
			Assists:                       e.Assists.Int(),
			CleanSheets:                   e.CleanSheets.Int(),
			YellowCards:                   e.YellowCards.Int(),
			RedCards:                      e.RedCards.Int(),
			Form:                          e.Form.Float64(),
			PointsPerGame:                 e.PointsPerGame.Float64(),
			SelectedByPercent:             e.SelectedByPercent.Float64(),
			TransfersInEvent:              e.TransfersInEvent.Int(),
			TransfersOutEvent:             e.TransfersOutEvent.Int(),
			CostChangeEvent:               e.CostChangeEvent.Int(),
			ExpectedGoals:                 e.ExpectedGoals.Float64(),
			ExpectedAssists:               e.ExpectedAssists.Float64(),
			ExpectedGoalInvolvements:      e.ExpectedGoalInvolvements.Float64(),
			ExpectedGoalsPer90:            e.ExpectedGoalsPer90.Float64(),
			ExpectedAssistsPer90:          e.ExpectedAssistsPer90.Float64(),
			ExpectedGoalInvolvementsPer90: e.ExpectedGoalInvolvementsPer90.Float64(),
			News:                          e.News,
			NewsAdded:                     e.NewsAdded,
			Photo:                         e.Photo,
		})
	}
	if dropped > 0 {
		logger.Warnw("Dropped bootstrap elements without id or team", "count", dropped)
	}

	return boot, nil
}

func parseFixtures(raw []byte) ([]models.Fixture, error) {
	var w []wireFixture
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("decode fixtures: %w", err)
	}
	out := make([]models.Fixture, 0, len(w))
	for _, f := range w {
		if f.TeamH <= 0 || f.TeamA <= 0 {
			continue
		}
		started := f.Started != nil && *f.Started
		out = append(out, models.Fixture{
			ID:              f.ID.Int(),
			Event:           f.Event.Int(),
			TeamH:           f.TeamH.Int(),
			TeamA:           f.TeamA.Int(),
			TeamHDifficulty: f.TeamHDifficulty.Int(),
			TeamADifficulty: f.TeamADifficulty.Int(),
			TeamHScore:      f.TeamHScore,
			TeamAScore:      f.TeamAScore,
			Started:         started,
			Finished:        f.Finished,
			KickoffTime:     f.KickoffTime,
		})
	}
	return out, nil
}

func (h wireEntryHistory) toModel() models.EventEntryHistory {
	return models.EventEntryHistory{
		Event:              h.Event.Int(),
		Points:             h.Points.Int(),
		TotalPoints:        h.TotalPoints.Int(),
		Bank:               h.Bank.Int(),
		Value:              h.Value.Int(),
		EventTransfers:     h.EventTransfers.Int(),
		EventTransfersCost: h.EventTransfersCost.Int(),
		PointsOnBench:      h.PointsOnBench.Int(),
	}
}

func parsePicks(raw []byte) (*models.Picks, error) {
	var w wirePicks
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("decode picks: %w", err)
	}
	out := &models.Picks{EntryHistory: w.EntryHistory.toModel()}
	if w.ActiveChip != nil {
		out.ActiveChip = *w.ActiveChip
	}
	for _, p := range w.Picks {
		if p.Element <= 0 {
			continue
		}
		out.Picks = append(out.Picks, models.Pick{
			Element:       p.Element.Int(),
			Position:      p.Position.Int(),
			Multiplier:    p.Multiplier.Int(),
			IsCaptain:     p.IsCaptain,
			IsViceCaptain: p.IsViceCaptain,
		})
	}
	return out, nil
}

func parseEntry(raw []byte) (*models.Entry, error) {
	var w wireEntry
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("decode entry: %w", err)
	}
	return &models.Entry{
		ID:                   w.ID.Int(),
		PlayerFirstName:      w.PlayerFirstName,
		PlayerLastName:       w.PlayerLastName,
		Name:                 w.Name,
		SummaryOverallPoints: w.SummaryOverallPoints.Int(),
		SummaryOverallRank:   w.SummaryOverallRank.Int(),
		CurrentEvent:         w.CurrentEvent.Int(),
	}, nil
}

func parseHistory(raw []byte) (*models.EntryHistory, error) {
	var w wireHistory
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("decode history: %w", err)
	}
	out := &models.EntryHistory{}
	for _, row := range w.Current {
		out.Current = append(out.Current, models.EventEntryHistoryRow{
			EventEntryHistory: row.toModel(),
			Rank:              row.Rank.Int(),
			OverallRank:       row.OverallRank.Int(),
			ActiveChip:        row.ActiveChip,
		})
	}
	for _, p := range w.Past {
		out.Past = append(out.Past, models.SeasonHistory{
			SeasonName:  p.SeasonName,
			TotalPoints: p.TotalPoints.Int(),
			Rank:        p.Rank.Int(),
		})
	}
	for _, c := range w.Chips {
		out.Chips = append(out.Chips, models.ChipPlay{Name: c.Name, Event: c.Event.Int(), Time: c.Time})
	}
	return out, nil
}

func parseLeagueStandings(raw []byte) (*models.LeagueStandings, error) {
	var w wireLeagueStandings
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("decode league standings: %w", err)
	}
	if w.League.ID <= 0 {
		return nil, fmt.Errorf("decode league standings: %w", ErrSchema)
	}
	out := &models.LeagueStandings{
		League: models.League{
			ID:         w.League.ID.Int(),
			Name:       w.League.Name,
			Created:    w.League.Created,
			Closed:     w.League.Closed,
			MaxEntries: w.League.MaxEntries,
			LeagueType: w.League.LeagueType,
			Scoring:    w.League.Scoring,
			StartEvent: w.League.StartEvent.Int(),
		},
		Standings: models.Standings{
			HasNext: w.Standings.HasNext,
			Page:    w.Standings.Page.Int(),
		},
	}
	for _, r := range w.Standings.Results {
		out.Standings.Results = append(out.Standings.Results, models.StandingRow{
			ID:         r.ID.Int(),
			Entry:      r.Entry.Int(),
			EntryName:  r.EntryName,
			PlayerName: r.PlayerName,
			Rank:       r.Rank.Int(),
			LastRank:   r.LastRank.Int(),
			RankSort:   r.RankSort.Int(),
			Total:      r.Total.Int(),
			EventTotal: r.EventTotal.Int(),
		})
	}
	return out, nil
}

func parseLive(raw []byte) (*models.LiveEvent, error) {
	var w wireLive
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("decode live: %w", err)
	}
	out := &models.LiveEvent{Elements: make([]models.LiveElement, 0, len(w.Elements))}
	for _, e := range w.Elements {
		if e.ID <= 0 {
			continue
		}
		el := models.LiveElement{
			ID: e.ID.Int(),
			Stats: models.LiveStats{
				Minutes:       e.Stats.Minutes.Int(),
				GoalsScored:   e.Stats.GoalsScored.Int(),
				Assists:       e.Stats.Assists.Int(),
				CleanSheets:   e.Stats.CleanSheets.Int(),
				GoalsConceded: e.Stats.GoalsConceded.Int(),
				Saves:         e.Stats.Saves.Int(),
				YellowCards:   e.Stats.YellowCards.Int(),
				RedCards:      e.Stats.RedCards.Int(),
				Bonus:         e.Stats.Bonus.Int(),
				BPS:           e.Stats.BPS.Int(),
				TotalPoints:   e.Stats.TotalPoints.Int(),
			},
		}
		for _, x := range e.Explain {
			if x.Fixture > 0 {
				el.Fixtures = append(el.Fixtures, x.Fixture.Int())
			}
		}
		out.Elements = append(out.Elements, el)
	}
	return out, nil
}
