package usecase

import (
	"context"
	"fmt"
	"time"

	"RevCycle/internal/domain/models"
	drepo "RevCycle/internal/domain/repository"
)

// CycleProcessor routes completed cycle results to the configured backend.
type CycleProcessor struct {
	pub     drepo.CyclePublisher
	store   drepo.CycleStore
	metrics drepo.Metrics
	backend string
}

// NewCycleProcessor creates a new CycleProcessor instance.
func NewCycleProcessor(pub drepo.CyclePublisher, store drepo.CycleStore, metrics drepo.Metrics, backend string) *CycleProcessor {
	return &CycleProcessor{
		pub:     pub,
		store:   store,
		metrics: metrics,
		backend: backend,
	}
}

// Process routes a single cycle result to the configured backend.
func (p *CycleProcessor) Process(ctx context.Context, r *models.CycleResult) error {
	if r == nil {
		return fmt.Errorf("cycle result is nil")
	}

	start := time.Now()
	var err error

	switch p.backend {
	case "kafka":
		err = p.pub.Publish(ctx, r)
	case "clickhouse":
		err = p.store.Store(ctx, r)
	default:
		err = fmt.Errorf("unknown backend: %s", p.backend)
	}

	if err != nil {
		p.metrics.RecordError("process")
		return fmt.Errorf("process cycle: %w", err)
	}

	p.metrics.RecordCycleCompleted(p.backend, r.Market)
	p.metrics.RecordStageLatency("process", time.Since(start).Seconds())

	return nil
}

// Close closes underlying resources if available.
func (p *CycleProcessor) Close() {
	if p.pub != nil {
		_ = p.pub.Close()
	}
	if p.store != nil {
		_ = p.store.Close()
	}
}
