// Package cache provides the key/value cache injected into the data access
// layer. Values are raw bytes with a per-entry expiry; backends are a no-op,
// an in-process map and Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ErrMiss is returned by Get when the key is absent or expired.
var ErrMiss = errors.New("cache: miss")

// Cache stores raw values with a time-to-live.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Ping(ctx context.Context) error
}

// Prometheus metrics
var (
	cacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fpladvisor_cache_hits_total",
		Help: "Total number of cache hits",
	}, []string{"backend"})

	cacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fpladvisor_cache_misses_total",
		Help: "Total number of cache misses",
	}, []string{"backend"})

	cacheErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fpladvisor_cache_errors_total",
		Help: "Total number of cache backend errors",
	}, []string{"backend"})
)

type instrumented struct {
	backend string
	next    Cache
}

// WithMetrics records hit/miss/error counters for a backend.
func WithMetrics(backend string, c Cache) Cache {
	return &instrumented{backend: backend, next: c}
}

func (i *instrumented) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := i.next.Get(ctx, key)
	switch {
	case err == nil:
		cacheHits.WithLabelValues(i.backend).Inc()
	case errors.Is(err, ErrMiss):
		cacheMisses.WithLabelValues(i.backend).Inc()
	default:
		cacheErrors.WithLabelValues(i.backend).Inc()
	}
	return v, err
}

func (i *instrumented) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := i.next.Set(ctx, key, value, ttl)
	if err != nil {
		cacheErrors.WithLabelValues(i.backend).Inc()
	}
	return err
}

func (i *instrumented) Ping(ctx context.Context) error {
	return i.next.Ping(ctx)
}

// GetJSON decodes a cached JSON value into dst.
func GetJSON(ctx context.Context, c Cache, key string, dst any) error {
	raw, err := c.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("cache: decode %s: %w", key, err)
	}
	return nil
}

// SetJSON encodes value as JSON and stores it.
func SetJSON(ctx context.Context, c Cache, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache: encode %s: %w", key, err)
	}
	return c.Set(ctx, key, raw, ttl)
}

// Noop never stores anything.
type Noop struct{}

func (Noop) Get(context.Context, string) ([]byte, error) { return nil, ErrMiss }

func (Noop) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (Noop) Ping(context.Context) error { return nil }
