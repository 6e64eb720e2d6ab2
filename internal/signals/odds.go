package signals

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/fpladvisor/advisor-api/internal/cache"
	"github.com/fpladvisor/advisor-api/internal/models"
)

const (
	DefaultOddsURL  = "https://api.the-odds-api.com/v4"
	cleanSheetKey   = "clean_sheet"
	oddsSport       = "soccer_epl"
	oddsDefaultRegs = "uk"
)

type OddsConfig struct {
	BaseURL    string
	APIKey     string
	Regions    string
	HTTPClient *http.Client
	Cache      cache.Cache
	TTL        time.Duration
	Logger     *zap.Logger
}

// Odds converts bookmaker clean-sheet prices into probabilities.
type Odds struct {
	baseURL string
	apiKey  string
	regions string
	client  *http.Client
	cache   cache.Cache
	ttl     time.Duration
	logger  *zap.SugaredLogger
}

func NewOdds(cfg OddsConfig) *Odds {
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
		base = DefaultOddsURL
	}
	regions := cfg.Regions
	if regions == "" {
		regions = oddsDefaultRegs
	}
	c := cfg.Cache
	if c == nil {
		c = cache.Noop{}
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Odds{
		baseURL: base,
		apiKey:  cfg.APIKey,
		regions: regions,
		client:  client,
		cache:   c,
		ttl:     ttl,
		logger:  logger.Sugar(),
	}
}

type oddsEvent struct {
	HomeTeam   string `json:"home_team"`
	AwayTeam   string `json:"away_team"`
	Bookmakers []struct {
		Key     string `json:"key"`
		Markets []struct {
			Key      string `json:"key"`
			Outcomes []struct {
				Name        string           `json:"name"`
				Description string           `json:"description"`
				Price       models.FlexFloat `json:"price"`
			} `json:"outcomes"`
		} `json:"markets"`
	} `json:"bookmakers"`
}

// CleanSheetProbabilities implements CleanSheetProvider. Prices from several
// bookmakers for the same team are averaged. Without a key the map is empty.
func (o *Odds) CleanSheetProbabilities(ctx context.Context, teams []models.Team) (map[int]float64, error) {
	out := map[int]float64{}
	if o.apiKey == "" {
		return out, nil
	}

	key := "odds:" + oddsSport + ":" + cleanSheetKey + ":" + o.regions
	var events []oddsEvent
	if err := cache.GetJSON(ctx, o.cache, key, &events); err != nil {
		q := url.Values{
			"apiKey":     {o.apiKey},
			"regions":    {o.regions},
			"markets":    {cleanSheetKey},
			"oddsFormat": {"decimal"},
		}
		u := fmt.Sprintf("%s/sports/%s/odds/?%s", o.baseURL, oddsSport, q.Encode())
		if err := getJSON(ctx, o.client, u, nil, &events); err != nil {
			return nil, fmt.Errorf("odds: %w", err)
		}
		if err := cache.SetJSON(ctx, o.cache, key, events, o.ttl); err != nil {
			o.logger.Warnw("Failed to cache odds", "error", err)
		}
	}

	sums := map[int]float64{}
	counts := map[int]int{}
	for _, ev := range events {
		for _, bm := range ev.Bookmakers {
			for _, m := range bm.Markets {
				if m.Key != cleanSheetKey {
					continue
				}
				for _, oc := range m.Outcomes {
					price := oc.Price.Float64()
					if price <= 1 {
						continue
					}
					name := oc.Description
					if name == "" {
						name = oc.Name
					}
					// yes/no style markets carry the team in the description
					if strings.EqualFold(oc.Name, "no") {
						continue
					}
					team, ok := MatchTeam(name, teams)
					if !ok {
						continue
					}
					sums[team.ID] += 1 / price
					counts[team.ID]++
				}
			}
		}
	}
	for id, s := range sums {
		out[id] = s / float64(counts[id])
	}
	return out, nil
}
