package models

// Query parameter shapes validated by the HTTP layer before any upstream call.

type EntryRequest struct {
	EntryID int    `validate:"gt=0"`
	Event   string `validate:"omitempty,max=8"`
}

type DifferentialsRequest struct {
	MaxOwnership float64  `validate:"gte=0,lte=100"`
	MinForm      float64  `validate:"gte=0,lte=30"`
	MaxPrice     float64  `validate:"gte=0,lte=20"`
	Position     Position `validate:"omitempty,oneof=GK DEF MID FWD"`
	Limit        int      `validate:"gte=0,lte=100"`
}

type ValuePicksRequest struct {
	MaxPrice float64  `validate:"gte=0,lte=20"`
	Position Position `validate:"omitempty,oneof=GK DEF MID FWD"`
	SortBy   string   `validate:"omitempty,oneof=value points form"`
	Limit    int      `validate:"gte=0,lte=100"`
}

type InjuryNewsRequest struct {
	Limit int `validate:"gte=0,lte=100"`
}

type TransferTrendsRequest struct {
	Limit int `validate:"gte=0,lte=20"`
}

type PlayerSearchRequest struct {
	Query    string   `validate:"required,min=2,max=50"`
	Position Position `validate:"omitempty,oneof=GK DEF MID FWD"`
	Limit    int      `validate:"gte=0,lte=50"`
}

type PlannerRequest struct {
	Horizon int `validate:"gte=0,lte=15"`
}

type StandingsRequest struct {
	LeagueID int `validate:"gt=0"`
	Page     int `validate:"gte=0,lte=1000"`
}

type SquadRequest struct {
	Formation string `validate:"omitempty,max=5"`
}

type PlayerPhotoRequest struct {
	PlayerID int `validate:"gt=0"`
}

type TeamImageRequest struct {
	TeamID     int `validate:"gt=0"`
	Size       int `validate:"omitempty,oneof=50 66 70 110"`
	Goalkeeper bool
}
