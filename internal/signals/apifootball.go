package signals

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/fpladvisor/advisor-api/internal/cache"
	"github.com/fpladvisor/advisor-api/internal/models"
)

const (
	DefaultAPIFootballURL = "https://v3.football.api-sports.io"
	premierLeagueID       = 39
	formWindow            = 6
	teamListTTL           = 12 * time.Hour
)

type APIFootballConfig struct {
	BaseURL    string
	APIKey     string
	Season     int
	League     int
	HTTPClient *http.Client
	Cache      cache.Cache
	TTL        time.Duration
	Logger     *zap.Logger
}

// APIFootball reads team statistics and absences from API-Football.
type APIFootball struct {
	baseURL string
	apiKey  string
	season  int
	league  int
	client  *http.Client
	cache   cache.Cache
	ttl     time.Duration
	logger  *zap.SugaredLogger
	now     func() time.Time
}

func NewAPIFootball(cfg APIFootballConfig) *APIFootball {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = DefaultAPIFootballURL
	}
	league := cfg.League
	if league == 0 {
		league = premierLeagueID
	}
	c := cfg.Cache
	if c == nil {
		c = cache.Noop{}
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &APIFootball{
		baseURL: base,
		apiKey:  cfg.APIKey,
		season:  cfg.Season,
		league:  league,
		client:  client,
		cache:   c,
		ttl:     ttl,
		logger:  logger.Sugar(),
		now:     time.Now,
	}
}

type afTeamsResponse struct {
	Response []struct {
		Team struct {
			ID   int    `json:"id"`
			Name string `json:"name"`
		} `json:"team"`
	} `json:"response"`
}

type afCardBucket struct {
	Total *int `json:"total"`
}

type afStatisticsResponse struct {
	Response struct {
		Form     string `json:"form"`
		Fixtures struct {
			Played struct {
				Total int `json:"total"`
			} `json:"played"`
		} `json:"fixtures"`
		Goals struct {
			For struct {
				Average struct {
					Home models.FlexFloat `json:"home"`
					Away models.FlexFloat `json:"away"`
				} `json:"average"`
			} `json:"for"`
			Against struct {
				Average struct {
					Home models.FlexFloat `json:"home"`
					Away models.FlexFloat `json:"away"`
				} `json:"average"`
			} `json:"against"`
		} `json:"goals"`
		Cards struct {
			Yellow map[string]afCardBucket `json:"yellow"`
			Red    map[string]afCardBucket `json:"red"`
		} `json:"cards"`
	} `json:"response"`
}

type afInjuriesResponse struct {
	Response []struct {
		Player struct {
			ID       int    `json:"id"`
			Name     string `json:"name"`
			Type     string `json:"type"`
			Reason   string `json:"reason"`
			Position string `json:"position"`
		} `json:"player"`
	} `json:"response"`
}

type teamRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

var errTeamUnknown = errors.New("apifootball: team not found")

// TeamSignals implements TeamProvider. Without an API key it has no signals.
func (a *APIFootball) TeamSignals(ctx context.Context, team models.Team) (*models.TeamSignals, error) {
	if a.apiKey == "" {
		return nil, nil
	}

	providerID, err := a.teamID(ctx, team)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("apifootball:signals:%d:%d:%d", a.league, a.season, providerID)
	var cached models.TeamSignals
	if err := cache.GetJSON(ctx, a.cache, key, &cached); err == nil {
		return &cached, nil
	}

	var stats afStatisticsResponse
	var injuries afInjuriesResponse
	injuriesOK := false

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return a.get(gctx, "/teams/statistics", url.Values{"team": {strconv.Itoa(providerID)}}, &stats)
	})
	g.Go(func() error {
		q := url.Values{"team": {strconv.Itoa(providerID)}, "date": {a.now().UTC().Format("2006-01-02")}}
		if err := a.get(gctx, "/injuries", q, &injuries); err != nil {
			// absences are optional
			a.logger.Debugw("Injuries unavailable", "team", team.ID, "error", err)
			return nil
		}
		injuriesOK = true
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("team statistics: %w", err)
	}

	sig := buildSignals(stats)
	if injuriesOK {
		sig.Missing = countMissing(injuries)
	}

	if err := cache.SetJSON(ctx, a.cache, key, sig, a.ttl); err != nil {
		a.logger.Warnw("Failed to cache team signals", "team", team.ID, "error", err)
	}
	return &sig, nil
}

// teamID maps an FPL team to the provider's id by matching names against
// the league's team list.
func (a *APIFootball) teamID(ctx context.Context, team models.Team) (int, error) {
	key := fmt.Sprintf("apifootball:teams:%d:%d", a.league, a.season)
	var refs []teamRef
	if err := cache.GetJSON(ctx, a.cache, key, &refs); err != nil {
		var resp afTeamsResponse
		if err := a.get(ctx, "/teams", url.Values{}, &resp); err != nil {
			return 0, fmt.Errorf("team list: %w", err)
		}
		for _, r := range resp.Response {
			refs = append(refs, teamRef{ID: r.Team.ID, Name: r.Team.Name})
		}
		if len(refs) > 0 {
			if err := cache.SetJSON(ctx, a.cache, key, refs, teamListTTL); err != nil {
				a.logger.Warnw("Failed to cache team list", "error", err)
			}
		}
	}

	candidates := make([]models.Team, 0, len(refs))
	for _, r := range refs {
		candidates = append(candidates, models.Team{ID: r.ID, Name: r.Name})
	}
	match, ok := MatchTeam(team.Name, candidates)
	if !ok {
		return 0, fmt.Errorf("%w: %s", errTeamUnknown, team.Name)
	}
	return match.ID, nil
}

func (a *APIFootball) get(ctx context.Context, path string, q url.Values, dst any) error {
	q.Set("league", strconv.Itoa(a.league))
	q.Set("season", strconv.Itoa(a.season))
	u := a.baseURL + path + "?" + q.Encode()
	return getJSON(ctx, a.client, u, map[string]string{"x-apisports-key": a.apiKey}, dst)
}

func buildSignals(stats afStatisticsResponse) models.TeamSignals {
	r := stats.Response
	played := r.Fixtures.Played.Total
	if played <= 0 {
		played = 1
	}
	return models.TeamSignals{
		GoalsForAvgHome:     r.Goals.For.Average.Home.Float64(),
		GoalsForAvgAway:     r.Goals.For.Average.Away.Float64(),
		GoalsAgainstAvgHome: r.Goals.Against.Average.Home.Float64(),
		GoalsAgainstAvgAway: r.Goals.Against.Average.Away.Float64(),
		FormScore:           FormScore(r.Form),
		YellowPerMatch:      float64(sumCards(r.Cards.Yellow)) / float64(played),
		RedPerMatch:         float64(sumCards(r.Cards.Red)) / float64(played),
	}
}

func sumCards(buckets map[string]afCardBucket) int {
	total := 0
	for _, b := range buckets {
		if b.Total != nil {
			total += *b.Total
		}
	}
	return total
}

// FormScore rates the last six results: 3 per win, 1 per draw, out of 18.
// An empty form string is neutral (0.5).
func FormScore(form string) float64 {
	form = strings.ToUpper(strings.TrimSpace(form))
	if form == "" {
		return 0.5
	}
	if len(form) > formWindow {
		form = form[len(form)-formWindow:]
	}
	score := 0
	for _, r := range form {
		switch r {
		case 'W':
			score += 3
		case 'D':
			score++
		}
	}
	v := float64(score) / 18
	if v > 1 {
		return 1
	}
	return v
}

func countMissing(resp afInjuriesResponse) models.MissingPlayers {
	var m models.MissingPlayers
	seen := make(map[int]bool, len(resp.Response))
	for _, row := range resp.Response {
		p := row.Player
		if p.ID != 0 {
			if seen[p.ID] {
				continue
			}
			seen[p.ID] = true
		}
		if strings.EqualFold(p.Type, "Questionable") {
			continue
		}
		line := positionLine(p.Position)
		if isSuspension(p.Reason) {
			switch line {
			case "att":
				m.SuspendedAtt++
			case "def", "gk":
				m.SuspendedDef++
			default:
				m.SuspendedMid++
			}
			continue
		}
		switch line {
		case "att":
			m.Att++
		case "def":
			m.Def++
		case "gk":
			m.GK++
		default:
			m.Mid++
		}
	}
	return m
}

func isSuspension(reason string) bool {
	r := strings.ToLower(reason)
	return strings.Contains(r, "suspend") || strings.Contains(r, "card")
}

// positionLine buckets a free-text position; unknown counts as midfield.
func positionLine(position string) string {
	p := strings.ToLower(position)
	switch {
	case strings.Contains(p, "goalkeeper") || p == "g" || strings.Contains(p, "gk"):
		return "gk"
	case strings.Contains(p, "defender") || p == "d" || strings.Contains(p, "def"):
		return "def"
	case strings.Contains(p, "attacker") || strings.Contains(p, "forward") || p == "f" || strings.Contains(p, "att"):
		return "att"
	default:
		return "mid"
	}
}
