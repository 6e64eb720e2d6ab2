package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/fpladvisor/advisor-api/internal/models"
)

type countingSource struct {
	bootstrap  atomic.Int32
	fixtures   atomic.Int32
	failBoot   bool
	lastGWSeen atomic.Int32
}

func (c *countingSource) Bootstrap(ctx context.Context) (*models.Bootstrap, error) {
	c.bootstrap.Add(1)
	if c.failBoot {
		return nil, errors.New("upstream 503")
	}
	return &models.Bootstrap{}, nil
}

func (c *countingSource) Fixtures(ctx context.Context, gw int) ([]models.Fixture, error) {
	c.fixtures.Add(1)
	c.lastGWSeen.Store(int32(gw))
	return nil, nil
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestWarmer_RunsImmediately(t *testing.T) {
	src := &countingSource{}
	w, err := NewWarmer(src, zap.NewNop())
	if err != nil {
		t.Fatalf("NewWarmer: %v", err)
	}
	if err := w.Start(time.Hour); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	waitFor(t, func() bool { return src.fixtures.Load() >= 1 })
	if src.bootstrap.Load() < 1 {
		t.Errorf("bootstrap not fetched")
	}
	if gw := src.lastGWSeen.Load(); gw != 0 {
		t.Errorf("fixtures gw = %d, want 0 (all fixtures)", gw)
	}
}

func TestWarmer_BootstrapFailureSkipsFixtures(t *testing.T) {
	src := &countingSource{failBoot: true}
	w, err := NewWarmer(src, nil)
	if err != nil {
		t.Fatalf("NewWarmer: %v", err)
	}
	if err := w.Start(time.Hour); err != nil {
		t.Fatalf("Start: %v", err)
	}

	waitFor(t, func() bool { return src.bootstrap.Load() >= 1 })
	if err := w.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if n := src.fixtures.Load(); n != 0 {
		t.Errorf("fixtures fetched %d times after bootstrap failure", n)
	}
}

func TestWarmer_RejectsNonPositiveInterval(t *testing.T) {
	w, err := NewWarmer(&countingSource{}, nil)
	if err != nil {
		t.Fatalf("NewWarmer: %v", err)
	}
	if err := w.Start(0); err == nil {
		t.Error("Start(0) succeeded, want error")
	}
}
