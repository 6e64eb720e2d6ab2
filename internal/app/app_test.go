package app

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/fpladvisor/advisor-api/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:              8080,
		Env:               "test",
		FPLBaseURL:        "http://127.0.0.1:1",
		HTTPTimeout:       time.Second,
		EnrichmentTimeout: 100 * time.Millisecond,
		ImageTimeout:      100 * time.Millisecond,
		WorkerCount:       2,
		RateLimit:         "10-S",
	}
}

func TestNew_MemoryCache(t *testing.T) {
	a, err := New(context.Background(), testConfig(), zap.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer a.Close()

	if a.Cache == nil || a.FPL == nil || a.Pool == nil {
		t.Fatal("core dependencies not built")
	}
	if a.Advisor == nil || a.Insights == nil || a.Fixtures == nil || a.Squads == nil || a.Leagues == nil || a.Images == nil {
		t.Fatal("services not built")
	}
	if err := a.Cache.Ping(context.Background()); err != nil {
		t.Errorf("memory cache ping: %v", err)
	}
	if a.Handler() == nil {
		t.Error("Handler() = nil")
	}
}

func TestNew_BadRedisURL(t *testing.T) {
	cfg := testConfig()
	cfg.RedisURL = "not-a-redis-url"
	if _, err := New(context.Background(), cfg, zap.NewNop()); err == nil {
		t.Fatal("New succeeded with a malformed REDIS_URL")
	}
}

func TestLimiter(t *testing.T) {
	tests := []struct {
		name    string
		rate    string
		wantNil bool
		wantErr bool
	}{
		{name: "Configured", rate: "10-S"},
		{name: "Disabled", rate: "", wantNil: true},
		{name: "Malformed", rate: "ten-per-second", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.RateLimit = tt.rate
			a, err := New(context.Background(), cfg, zap.NewNop())
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			defer a.Close()

			lim, err := a.Limiter()
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if (lim == nil) != tt.wantNil {
				t.Errorf("limiter nil = %v, want %v", lim == nil, tt.wantNil)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	for _, env := range []string{"development", "production"} {
		logger, err := NewLogger(&config.Config{Env: env})
		if err != nil {
			t.Fatalf("NewLogger(%s): %v", env, err)
		}
		_ = logger.Sync()
	}
}
