package usecase

import (
	"context"
	"time"

	drepo "RevCycle/internal/domain/repository"
	"RevCycle/pkg/logger"
)

// CycleScheduler runs periodic revenue cycles for a fixed set of markets.
// A failed cycle is logged and counted; the next tick starts fresh (no
// retry within a cycle).
type CycleScheduler struct {
	engine    *RevenueEngine
	proc      *CycleProcessor
	metrics   drepo.Metrics
	l         *logger.Logger
	markets   []string
	timeframe string
	interval  time.Duration

	cancel context.CancelFunc
	done   chan struct{}
}

// NewCycleScheduler creates a scheduler.
func NewCycleScheduler(engine *RevenueEngine, proc *CycleProcessor, metrics drepo.Metrics, l *logger.Logger, markets []string, timeframe string, interval time.Duration) *CycleScheduler {
	return &CycleScheduler{
		engine:    engine,
		proc:      proc,
		metrics:   metrics,
		l:         l,
		markets:   markets,
		timeframe: timeframe,
		interval:  interval,
	}
}

// Start launches the tick loop.
func (s *CycleScheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})
	go s.run(ctx)
	s.l.Info("scheduler started",
		logger.Strings("markets", s.markets),
		logger.Duration("interval", s.interval),
	)
}

func (s *CycleScheduler) run(ctx context.Context) {
	defer close(s.done)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *CycleScheduler) tick(ctx context.Context) {
	for _, m := range s.markets {
		res, err := s.engine.RunRevenueCycle(ctx, m, s.timeframe)
		if err != nil {
			s.metrics.RecordError("scheduled_cycle")
			s.l.Error("scheduled cycle failed", logger.String("market", m), logger.Error(err))
			continue
		}
		if err := s.proc.Process(ctx, res); err != nil {
			s.l.Error("cycle result processing failed", logger.String("market", m), logger.Error(err))
		}
	}
}

// Stop cancels the loop and waits for it to drain.
func (s *CycleScheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
		<-s.done
	}
}
