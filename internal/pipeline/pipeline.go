package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/winds-aloft-etl/internal/domain"
	"github.com/couchcryptid/winds-aloft-etl/internal/observability"
	"github.com/jonboulle/clockwork"
	"github.com/robfig/cron/v3"
)

// BlockExtractor fetches the current forecast table.
type BlockExtractor interface {
	FetchBlock(ctx context.Context) (domain.TableBlock, error)
}

// Transformer converts a fetched table into output events, one per station.
type Transformer interface {
	Transform(ctx context.Context, block domain.TableBlock) ([]domain.OutputEvent, error)
}

// BatchLoader writes multiple output events to the destination.
type BatchLoader interface {
	LoadBatch(ctx context.Context, events []domain.OutputEvent) error
}

// ErrScheduleExhausted is returned by Run when the schedule has no future
// activation time.
var ErrScheduleExhausted = errors.New("refresh schedule has no next activation")

// Pipeline refreshes the forecast table on a cron schedule and publishes
// every decoded station.
type Pipeline struct {
	extractor   BlockExtractor
	transformer Transformer
	loader      BatchLoader
	logger      *slog.Logger
	metrics     *observability.Metrics
	schedule    cron.Schedule
	clock       clockwork.Clock
	ready       atomic.Bool
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithClock replaces the real clock, mainly for tests.
func WithClock(c clockwork.Clock) Option {
	return func(p *Pipeline) {
		p.clock = c
	}
}

// New creates a Pipeline with the given stages and observability.
func New(e BlockExtractor, t Transformer, l BatchLoader, logger *slog.Logger, metrics *observability.Metrics, schedule cron.Schedule, opts ...Option) *Pipeline {
	p := &Pipeline{
		extractor:   e,
		transformer: t,
		loader:      l,
		logger:      logger,
		metrics:     metrics,
		schedule:    schedule,
		clock:       clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// CheckReadiness returns nil once a refresh has completed successfully.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("no forecast table has been published yet")
	}
	return nil
}

// Run refreshes immediately, then once per schedule tick, until the context
// is cancelled. A failed refresh is logged and the next tick tries again. Run
// returns ErrScheduleExhausted if the schedule stops producing activations.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("pipeline started")
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	for {
		if ctx.Err() != nil {
			p.logger.Info("pipeline stopping", "reason", ctx.Err())
			return nil
		}

		if err := p.RunOnce(ctx); err != nil {
			if ctx.Err() != nil {
				p.logger.Info("pipeline stopping", "reason", ctx.Err())
				return nil
			}
			p.logger.Error("refresh failed", "error", err)
		}

		next := p.schedule.Next(p.clock.Now())
		if next.IsZero() {
			return ErrScheduleExhausted
		}
		p.logger.Debug("next refresh scheduled", "at", next)
		if !sleepWithContext(ctx, p.clock, next.Sub(p.clock.Now())) {
			p.logger.Info("pipeline stopping", "reason", ctx.Err())
			return nil
		}
	}
}

// RunOnce performs a single fetch-decode-publish cycle.
func (p *Pipeline) RunOnce(ctx context.Context) error {
	start := p.clock.Now()

	count, err := p.refresh(ctx)
	if err != nil {
		p.metrics.Refreshes.WithLabelValues("error").Inc()
		return err
	}

	p.metrics.Refreshes.WithLabelValues("success").Inc()
	p.metrics.MessagesProduced.Add(float64(count))
	p.metrics.RefreshDuration.Observe(p.clock.Since(start).Seconds())
	p.metrics.LastRefresh.Set(float64(p.clock.Now().Unix()))
	p.ready.Store(true)

	p.logger.Info("forecast table published", "stations", count, "duration", p.clock.Since(start))
	return nil
}

func (p *Pipeline) refresh(ctx context.Context) (int, error) {
	block, err := p.extractor.FetchBlock(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch table: %w", err)
	}

	events, err := p.transformer.Transform(ctx, block)
	if err != nil {
		return 0, fmt.Errorf("transform table: %w", err)
	}

	if err := p.loader.LoadBatch(ctx, events); err != nil {
		return 0, fmt.Errorf("load forecasts: %w", err)
	}
	return len(events), nil
}

func sleepWithContext(ctx context.Context, clock clockwork.Clock, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}

	timer := clock.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.Chan():
		return true
	}
}
