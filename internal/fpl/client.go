// Package fpl is the data access layer for the public Fantasy Premier League
// API. Raw bodies are cached per endpoint and decoded into internal/models
// types at this boundary.
package fpl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/fpladvisor/advisor-api/internal/cache"
	"github.com/fpladvisor/advisor-api/internal/models"
)

const (
	DefaultBaseURL   = "https://fantasy.premierleague.com/api"
	defaultUserAgent = "fpl-advisor/1.0"
	defaultTimeout   = 8 * time.Second
)

var (
	upstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fpladvisor_upstream_requests_total",
		Help: "Requests made to the FPL API by endpoint and status code",
	}, []string{"endpoint", "code"})

	upstreamDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "fpladvisor_upstream_request_duration_seconds",
		Help:    "Latency of FPL API requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"})
)

// TTLs are the cache windows per endpoint. Zero disables caching for that
// endpoint.
type TTLs struct {
	Bootstrap time.Duration
	Fixtures  time.Duration
	Entry     time.Duration
	Picks     time.Duration
	History   time.Duration
	League    time.Duration
	Live      time.Duration
}

// DefaultTTLs mirror the configuration defaults.
var DefaultTTLs = TTLs{
	Bootstrap: 5 * time.Minute,
	Fixtures:  10 * time.Minute,
	Entry:     2 * time.Minute,
	Picks:     30 * time.Second,
	History:   5 * time.Minute,
	League:    2 * time.Minute,
	Live:      30 * time.Second,
}

type ClientConfig struct {
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
	UserAgent  string
	Cache      cache.Cache
	TTL        *TTLs
	Logger     *zap.Logger
}

// Client fetches and decodes FPL API resources.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	timeout    time.Duration
	cache      cache.Cache
	ttl        TTLs
	logger     *zap.SugaredLogger
	flight     singleflight.Group
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	c := cfg.Cache
	if c == nil {
		c = cache.Noop{}
	}
	ttl := DefaultTTLs
	if cfg.TTL != nil {
		ttl = *cfg.TTL
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		userAgent:  ua,
		timeout:    timeout,
		cache:      c,
		ttl:        ttl,
		logger:     logger.Sugar(),
	}
}

// Bootstrap fetches bootstrap-static: players, teams, gameweeks, positions.
func (c *Client) Bootstrap(ctx context.Context) (*models.Bootstrap, error) {
	raw, err := c.get(ctx, "bootstrap", "/bootstrap-static/", c.ttl.Bootstrap)
	if err != nil {
		return nil, err
	}
	return parseBootstrap(raw, c.logger)
}

// Fixtures returns the fixtures of a gameweek, or every fixture when gw is 0.
func (c *Client) Fixtures(ctx context.Context, gw int) ([]models.Fixture, error) {
	path := "/fixtures/"
	if gw > 0 {
		path += "?event=" + strconv.Itoa(gw)
	}
	raw, err := c.get(ctx, "fixtures", path, c.ttl.Fixtures)
	if err != nil {
		return nil, err
	}
	return parseFixtures(raw)
}

func (c *Client) Entry(ctx context.Context, entryID int) (*models.Entry, error) {
	raw, err := c.get(ctx, "entry", fmt.Sprintf("/entry/%d/", entryID), c.ttl.Entry)
	if err != nil {
		return nil, err
	}
	return parseEntry(raw)
}

// Picks returns a manager's squad for a gameweek. A gameweek with no picks
// (not yet played, or before the manager joined) answers ErrNotFound.
func (c *Client) Picks(ctx context.Context, entryID, gw int) (*models.Picks, error) {
	raw, err := c.get(ctx, "picks", fmt.Sprintf("/entry/%d/event/%d/picks/", entryID, gw), c.ttl.Picks)
	if err != nil {
		return nil, err
	}
	return parsePicks(raw)
}

func (c *Client) History(ctx context.Context, entryID int) (*models.EntryHistory, error) {
	raw, err := c.get(ctx, "history", fmt.Sprintf("/entry/%d/history/", entryID), c.ttl.History)
	if err != nil {
		return nil, err
	}
	return parseHistory(raw)
}

// Live fetches the per-player live stats of a gameweek.
func (c *Client) Live(ctx context.Context, gw int) (*models.LiveEvent, error) {
	raw, err := c.get(ctx, "live", fmt.Sprintf("/event/%d/live/", gw), c.ttl.Live)
	if err != nil {
		return nil, err
	}
	return parseLive(raw)
}

// LeagueStandings fetches one page (1-based) of a classic league.
func (c *Client) LeagueStandings(ctx context.Context, leagueID, page int) (*models.LeagueStandings, error) {
	if page < 1 {
		page = 1
	}
	path := fmt.Sprintf("/leagues-classic/%d/standings/?page_standings=%d", leagueID, page)
	raw, err := c.get(ctx, "league", path, c.ttl.League)
	if err != nil {
		return nil, err
	}
	return parseLeagueStandings(raw)
}

// get returns the raw body for path, from cache when fresh. Concurrent
// callers for the same path share one upstream request.
func (c *Client) get(ctx context.Context, endpoint, path string, ttl time.Duration) ([]byte, error) {
	key := "fpl:" + path
	if ttl > 0 {
		if raw, err := c.cache.Get(ctx, key); err == nil {
			return raw, nil
		} else if !errors.Is(err, cache.ErrMiss) {
			c.logger.Warnw("Cache read failed", "key", key, "error", err)
		}
	}

	// The shared fetch outlives any single caller; each caller waits only on
	// its own context.
	ch := c.flight.DoChan(path, func() (interface{}, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
		defer cancel()
		return c.fetch(fetchCtx, endpoint, path)
	})
	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		return nil, fmt.Errorf("GET %s: %w", path, ctx.Err())
	}
	if res.Err != nil {
		return nil, res.Err
	}
	raw := res.Val.([]byte)

	if ttl > 0 {
		if err := c.cache.Set(ctx, key, raw, ttl); err != nil {
			c.logger.Warnw("Cache write failed", "key", key, "error", err)
		}
	}
	return raw, nil
}

func (c *Client) fetch(ctx context.Context, endpoint, path string) ([]byte, error) {
	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	upstreamDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		upstreamRequests.WithLabelValues(endpoint, "error").Inc()
		return nil, fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()
	upstreamRequests.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("GET %s: %w", path, ErrNotFound)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, &StatusError{URL: path, StatusCode: resp.StatusCode, Body: truncateBody(body)}
	}

	c.logger.Debugw("Fetched upstream", "endpoint", endpoint, "path", path, "bytes", len(body), "duration", time.Since(start))
	return body, nil
}
