// Package worker implements a bounded worker pool for per-item enrichment.
// Request handlers fan items (captain candidates, fixtures) out to a shared,
// fixed set of workers so a burst of requests cannot open an unbounded number
// of outbound calls. Each item runs under its own deadline and degrades to a
// caller-supplied fallback when it fails, times out or is shed.
package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

// Prometheus metrics
var (
	itemsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fpladvisor_enrichment_items_total",
		Help: "Enrichment items by outcome (ok, fallback, shed)",
	}, []string{"outcome"})

	itemDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "fpladvisor_enrichment_item_duration_seconds",
		Help:    "Duration of enrichment items including timeouts",
		Buckets: prometheus.DefBuckets,
	})

	queueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "fpladvisor_worker_queue_depth",
		Help: "Current depth of the enrichment queue",
	})
)

var (
	// ErrQueueFull is passed to fallbacks for items shed at enqueue time.
	ErrQueueFull = errors.New("worker: queue full")
	// ErrStopped is passed to fallbacks for items submitted after Stop.
	ErrStopped = errors.New("worker: pool stopped")
)

// Job is a unit of work. The context is cancelled when the pool stops.
type Job func(ctx context.Context)

// PoolConfig configures the worker pool
type PoolConfig struct {
	WorkerCount int
	QueueSize   int
	// ItemTimeout bounds each item in Map; zero means only the caller's
	// context applies.
	ItemTimeout time.Duration
	Logger      *zap.Logger
}

// Pool runs jobs on a fixed number of goroutines.
type Pool struct {
	config   PoolConfig
	jobQueue chan Job
	wg       sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
	logger   *zap.SugaredLogger

	mu      sync.RWMutex
	stopped bool
}

// NewPool creates a new worker pool
func NewPool(cfg PoolConfig) *Pool {
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = cfg.WorkerCount * 32
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return &Pool{
		config:   cfg,
		jobQueue: make(chan Job, cfg.QueueSize),
		logger:   cfg.Logger.Sugar(),
	}
}

// Start launches the worker goroutines
func (p *Pool) Start(ctx context.Context) {
	p.ctx, p.cancel = context.WithCancel(ctx)

	for i := 0; i < p.config.WorkerCount; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}

	go p.reportQueueDepth()

	p.logger.Infow("Worker pool started",
		"workers", p.config.WorkerCount,
		"queueSize", p.config.QueueSize,
		"itemTimeout", p.config.ItemTimeout,
	)
}

// Stop drains queued jobs and waits for the workers to exit. Jobs still in the
// queue run with a cancelled context.
func (p *Pool) Stop() {
	p.logger.Info("Stopping worker pool...")

	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.jobQueue)
	p.mu.Unlock()

	p.cancel()
	p.wg.Wait()
	p.logger.Info("Worker pool stopped")
}

// Enqueue adds a job without blocking. It returns ErrQueueFull when the queue
// is full and ErrStopped after Stop.
func (p *Pool) Enqueue(job Job) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stopped {
		return ErrStopped
	}

	select {
	case p.jobQueue <- job:
		return nil
	default:
		return ErrQueueFull
	}
}

// QueueDepth returns current queue size
func (p *Pool) QueueDepth() int {
	return len(p.jobQueue)
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()

	for job := range p.jobQueue {
		p.run(id, job)
	}
}

func (p *Pool) run(id int, job Job) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Errorw("Job panicked", "worker", id, "panic", r)
		}
	}()
	job(p.ctx)
}

func (p *Pool) reportQueueDepth() {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			queueDepth.Set(float64(len(p.jobQueue)))
		case <-p.ctx.Done():
			return
		}
	}
}

type outcome[R any] struct {
	val R
	err error
}

// Map applies fn to every item on the pool and returns results in input
// order. Items that error, exceed the pool's item timeout, are shed, or are
// still pending when ctx ends get fallback(item, err) instead. Map never
// fails as a whole.
//
// A nil pool runs every item on its own goroutine.
func Map[T, R any](ctx context.Context, p *Pool, items []T, fn func(context.Context, T) (R, error), fallback func(T, error) R) []R {
	results := make([]R, len(items))
	if len(items) == 0 {
		return results
	}

	var timeout time.Duration
	var logger *zap.SugaredLogger
	if p != nil {
		timeout = p.config.ItemTimeout
		logger = p.logger
	} else {
		logger = zap.NewNop().Sugar()
	}

	var wg sync.WaitGroup
	for i, item := range items {
		i, item := i, item
		wg.Add(1)

		job := func(context.Context) {
			defer wg.Done()
			results[i] = runItem(ctx, timeout, item, fn, fallback, logger)
		}

		if p == nil {
			go job(ctx)
			continue
		}
		if err := p.Enqueue(job); err != nil {
			itemsProcessed.WithLabelValues("shed").Inc()
			results[i] = fallback(item, err)
			wg.Done()
		}
	}
	wg.Wait()
	return results
}

func runItem[T, R any](ctx context.Context, timeout time.Duration, item T, fn func(context.Context, T) (R, error), fallback func(T, error) R, logger *zap.SugaredLogger) R {
	start := time.Now()
	defer func() { itemDuration.Observe(time.Since(start).Seconds()) }()

	if err := ctx.Err(); err != nil {
		itemsProcessed.WithLabelValues("fallback").Inc()
		return fallback(item, err)
	}

	ictx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		ictx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	// fn may ignore its context; the select keeps the deadline binding.
	done := make(chan outcome[R], 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Errorw("Enrichment item panicked", "panic", r)
				done <- outcome[R]{err: errors.New("worker: item panicked")}
			}
		}()
		v, err := fn(ictx, item)
		done <- outcome[R]{val: v, err: err}
	}()

	select {
	case out := <-done:
		if out.err != nil {
			logger.Debugw("Enrichment item failed", "error", out.err)
			itemsProcessed.WithLabelValues("fallback").Inc()
			return fallback(item, out.err)
		}
		itemsProcessed.WithLabelValues("ok").Inc()
		return out.val
	case <-ictx.Done():
		logger.Debugw("Enrichment item timed out", "error", ictx.Err())
		itemsProcessed.WithLabelValues("fallback").Inc()
		return fallback(item, ictx.Err())
	}
}
