package models

// OpponentRef is one upcoming opponent of a team within a gameweek.
type OpponentRef struct {
	OpponentID    int    `json:"oppId"`
	OpponentShort string `json:"oppShort"`
	Home          bool   `json:"home"`
}

// LineupPlayer is a pick resolved for display.
type LineupPlayer struct {
	ID         int           `json:"id"`
	Name       string        `json:"name"`
	Pos        Position      `json:"pos"`
	TeamID     int           `json:"teamId"`
	TeamCode   int           `json:"teamCode"`
	TeamShort  string        `json:"teamShort"`
	Slot       int           `json:"position"`
	Multiplier int           `json:"multiplier"`
	IsCaptain  bool          `json:"isCaptain"`
	IsVice     bool          `json:"isVice"`
	Fixtures   []OpponentRef `json:"fixtures"`
}

// Lineup partitions a squad into starters and bench, each sorted by slot.
type Lineup struct {
	Starters []LineupPlayer `json:"starters"`
	Bench    []LineupPlayer `json:"bench"`
}

// Picks source labels.
const (
	SourceRequested = "requested"
	SourceCurrent   = "current"
	SourceNext      = "next"
	SourceHistory   = "history"
)

// LineupResult is the response of GetLineup.
type LineupResult struct {
	EntryID     int    `json:"entryId"`
	Gameweek    int    `json:"gw"`
	Source      string `json:"source"`
	ActiveChip  string `json:"activeChip,omitempty"`
	ManagerName string `json:"managerName"`
	TeamName    string `json:"teamName"`
	Lineup      Lineup `json:"lineup"`
}

// TransferSuggestion is a single candidate swap.
type TransferSuggestion struct {
	Pos      Position `json:"pos"`
	OutID    int      `json:"outId"`
	OutName  string   `json:"outName"`
	PriceOut float64  `json:"priceOut"`
	EPtsOut  float64  `json:"ePtsOut"`
	InID     int      `json:"inId"`
	InName   string   `json:"inName"`
	PriceIn  float64  `json:"priceIn"`
	EPtsIn   float64  `json:"ePtsIn"`
	Delta    float64  `json:"delta"`
}

// TransfersResult is the response of SuggestTransfers.
type TransfersResult struct {
	EntryID         int                  `json:"entryId"`
	Gameweek        int                  `json:"gw"`
	DisplayGameweek int                  `json:"displayGw"`
	Source          string               `json:"source"`
	Bank            float64              `json:"bank"`
	Suggestions     []TransferSuggestion `json:"suggestions"`
	Lineup          Lineup               `json:"lineup"`
	ManagerName     string               `json:"managerName"`
	TeamName        string               `json:"teamName"`
}

// CaptainSuggestion is one ranked captaincy candidate.
type CaptainSuggestion struct {
	ID         int      `json:"id"`
	Name       string   `json:"name"`
	Pos        Position `json:"pos"`
	TeamID     int      `json:"teamId"`
	TeamShort  string   `json:"teamShort"`
	Opponent   string   `json:"opponent"`
	MinutesP   float64  `json:"minutesP"`
	BaseEPts   float64  `json:"baseEpts"`
	SmartEPts  float64  `json:"smartEpts"`
	CaptainPts float64  `json:"captainPts"`
	Confidence float64  `json:"confidence"`
	Reasons    []string `json:"reasons"`
}

// CaptainResult is the response of SuggestCaptain.
type CaptainResult struct {
	EntryID     int                 `json:"entryId"`
	Gameweek    int                 `json:"gw"`
	Source      string              `json:"source"`
	Suggestions []CaptainSuggestion `json:"suggestions"`
}
