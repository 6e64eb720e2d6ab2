package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"

	"github.com/fpladvisor/advisor-api/internal/models"
)

// Source is the part of the FPL client the warmer refreshes.
type Source interface {
	Bootstrap(ctx context.Context) (*models.Bootstrap, error)
	Fixtures(ctx context.Context, gw int) ([]models.Fixture, error)
}

// Warmer refreshes the shared FPL payloads on a fixed interval so request
// paths rarely pay for a cold fetch.
type Warmer struct {
	s       gocron.Scheduler
	source  Source
	timeout time.Duration
	logger  *zap.SugaredLogger
}

func NewWarmer(source Source, logger *zap.Logger) (*Warmer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}
	return &Warmer{
		s:       s,
		source:  source,
		timeout: 30 * time.Second,
		logger:  logger.Sugar(),
	}, nil
}

// Start schedules the warm job every interval, running it once immediately.
func (w *Warmer) Start(interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("invalid warm interval %s", interval)
	}
	_, err := w.s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(w.warm),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to create warm job: %w", err)
	}
	w.s.Start()
	w.logger.Infow("Cache warmer started", "interval", interval)
	return nil
}

func (w *Warmer) Stop() error {
	return w.s.Shutdown()
}

func (w *Warmer) warm() {
	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()

	start := time.Now()
	boot, err := w.source.Bootstrap(ctx)
	if err != nil {
		w.logger.Warnw("Warm bootstrap failed", "error", err)
		return
	}
	fixtures, err := w.source.Fixtures(ctx, 0)
	if err != nil {
		w.logger.Warnw("Warm fixtures failed", "error", err)
		return
	}
	w.logger.Debugw("Cache warmed",
		"players", len(boot.Players),
		"fixtures", len(fixtures),
		"duration_ms", time.Since(start).Milliseconds(),
	)
}
