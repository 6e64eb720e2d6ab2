// Package images resolves club crest, kit and player photo URLs by probing an
// ordered list of upstream candidates, falling back to bundled placeholders.
package images

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/fpladvisor/advisor-api/internal/cache"
	"github.com/fpladvisor/advisor-api/internal/models"
)

const (
	PlaceholderCrest  = "/placeholder-crest.svg"
	PlaceholderKit    = "/placeholder-kit.svg"
	PlaceholderPlayer = "/player-placeholder.svg"

	DefaultFPLStaticURL = "https://fantasy.premierleague.com/dist/img"
	DefaultResourcesURL = "https://resources.premierleague.com/premierleague"

	defaultTryTimeout = 5 * time.Second
	maxCandidates     = 8
	resolvedTTL       = 24 * time.Hour
	userAgent         = "Mozilla/5.0 (compatible; fpl-advisor)"
)

var imageLookups = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "fpladvisor_image_lookups_total",
	Help: "Image resolutions by kind and outcome",
}, []string{"kind", "outcome"})

// ResolverConfig configures a Resolver. Zero values use the public hosts.
type ResolverConfig struct {
	HTTPClient   *http.Client
	TryTimeout   time.Duration
	FPLStaticURL string
	ResourcesURL string
	Cache        cache.Cache
	Logger       *zap.Logger
}

// Resolver finds the first reachable image URL for a team or player.
type Resolver struct {
	client     *http.Client
	tryTimeout time.Duration
	static     string
	resources  string
	cache      cache.Cache
	logger     *zap.SugaredLogger
}

func NewResolver(cfg ResolverConfig) *Resolver {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{}
	}
	timeout := cfg.TryTimeout
	if timeout <= 0 {
		timeout = defaultTryTimeout
	}
	c := cfg.Cache
	if c == nil {
		c = cache.Noop{}
	}
	return &Resolver{
		client:     client,
		tryTimeout: timeout,
		static:     baseOr(cfg.FPLStaticURL, DefaultFPLStaticURL),
		resources:  baseOr(cfg.ResourcesURL, DefaultResourcesURL),
		cache:      c,
		logger:     logger.Sugar(),
	}
}

func baseOr(v, def string) string {
	v = strings.TrimRight(strings.TrimSpace(v), "/")
	if v == "" {
		return def
	}
	return v
}

// CrestSize normalises a requested crest size to 70 or 50.
func CrestSize(size int) int {
	if size == 50 {
		return 50
	}
	return 70
}

// KitSize normalises a requested shirt size to 110 or 66.
func KitSize(size int) int {
	if size == 66 {
		return 66
	}
	return 110
}

// Crest resolves a club badge.
func (r *Resolver) Crest(ctx context.Context, team models.Team, size int) models.ImageResult {
	size = CrestSize(size)
	var urls []string
	if team.Code > 0 {
		badges := r.static + "/badges"
		urls = append(urls,
			fmt.Sprintf("%s/badge_%d-%d.png", badges, team.Code, size),
			fmt.Sprintf("%s/badge_%d_%d.png", badges, team.Code, size),
			fmt.Sprintf("%s/%d.png", badges, team.Code),
			fmt.Sprintf("%s/badges/%d/t%d.png", r.resources, size, team.Code),
		)
	}
	return r.resolve(ctx, "crest", fmt.Sprintf("crest:%d:%d", team.Code, size), urls, PlaceholderCrest)
}

// Kit resolves a club shirt. Goalkeeper shirts fall back to the outfield
// shirt, then to the club crest.
func (r *Resolver) Kit(ctx context.Context, team models.Team, goalkeeper bool, size int) models.ImageResult {
	size = KitSize(size)
	shirts := r.static + "/shirts/standard"
	var urls []string
	if team.Code > 0 {
		if goalkeeper {
			urls = append(urls,
				fmt.Sprintf("%s/shirt_%d_1-%d.png", shirts, team.Code, size),
				fmt.Sprintf("%s/shirt_%d_1-66.png", shirts, team.Code),
			)
		}
		urls = append(urls,
			fmt.Sprintf("%s/shirt_%d-%d.png", shirts, team.Code, size),
			fmt.Sprintf("%s/shirt_%d-66.png", shirts, team.Code),
			fmt.Sprintf("%s/badges/70/t%d.png", r.resources, team.Code),
		)
	}
	key := fmt.Sprintf("kit:%d:%t:%d", team.Code, goalkeeper, size)
	return r.resolve(ctx, "kit", key, urls, PlaceholderKit)
}

// PlayerPhoto resolves a headshot from the player's photo code, falling back
// to the club crest.
func (r *Resolver) PlayerPhoto(ctx context.Context, p models.Player, teamCode int) models.ImageResult {
	var urls []string
	if code, _, _ := strings.Cut(p.Photo, "."); code != "" {
		for _, size := range []string{"250x250", "110x140"} {
			urls = append(urls, fmt.Sprintf("%s/photos/players/%s/p%s.png", r.resources, size, code))
		}
	}
	if teamCode > 0 {
		urls = append(urls, fmt.Sprintf("%s/badges/100/t%d.png", r.resources, teamCode))
	}
	return r.resolve(ctx, "player", fmt.Sprintf("photo:%d:%s", p.ID, p.Photo), urls, PlaceholderPlayer)
}

func (r *Resolver) resolve(ctx context.Context, kind, key string, urls []string, placeholder string) models.ImageResult {
	key = "images:" + key
	var hit models.ImageResult
	if err := cache.GetJSON(ctx, r.cache, key, &hit); err == nil && hit.URL != "" {
		return hit
	}

	urls = dedupe(urls)
	if len(urls) > maxCandidates {
		urls = urls[:maxCandidates]
	}
	res := models.ImageResult{URL: placeholder, Placeholder: true}
	for _, u := range urls {
		if ctx.Err() != nil {
			break
		}
		if r.exists(ctx, u) {
			res = models.ImageResult{URL: u}
			break
		}
	}

	outcome := "found"
	if res.Placeholder {
		outcome = "placeholder"
		r.logger.Debugw("No image candidate reachable", "kind", kind, "candidates", len(urls))
	}
	imageLookups.WithLabelValues(kind, outcome).Inc()

	// Only resolved URLs are cached.
	if !res.Placeholder {
		if err := cache.SetJSON(ctx, r.cache, key, res, resolvedTTL); err != nil {
			r.logger.Warnw("Failed to cache image", "key", key, "error", err)
		}
	}
	return res
}

func dedupe(urls []string) []string {
	seen := make(map[string]bool, len(urls))
	out := urls[:0]
	for _, u := range urls {
		if !seen[u] {
			seen[u] = true
			out = append(out, u)
		}
	}
	return out
}

func (r *Resolver) exists(ctx context.Context, url string) bool {
	ctx, cancel := context.WithTimeout(ctx, r.tryTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", userAgent)
	resp, err := r.client.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}
