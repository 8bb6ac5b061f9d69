package usecase

import (
	"context"
	"sync"
	"time"

	"RevCycle/internal/domain/models"
	drepo "RevCycle/internal/domain/repository"
	"RevCycle/internal/services/market"
	"RevCycle/internal/services/pricing"
	"RevCycle/pkg/logger"
)

// RevenueEngine orchestrates one revenue cycle: fetch, sentiment, predict,
// price. The four stages run strictly in sequence; the first failure aborts
// the cycle and its error reaches the caller unchanged. The engine owns the
// pricing strategist and serializes all access to it.
type RevenueEngine struct {
	analyzer   *market.Analyzer
	strategist *pricing.Strategist
	metrics    drepo.Metrics
	l          *logger.Logger

	mu sync.Mutex // guards strategist
}

// NewRevenueEngine creates the orchestrator.
func NewRevenueEngine(analyzer *market.Analyzer, strategist *pricing.Strategist, metrics drepo.Metrics, l *logger.Logger) *RevenueEngine {
	return &RevenueEngine{
		analyzer:   analyzer,
		strategist: strategist,
		metrics:    metrics,
		l:          l,
	}
}

// RunRevenueCycle executes the four-stage cycle for one market/timeframe.
// No partial result is ever returned.
func (e *RevenueEngine) RunRevenueCycle(ctx context.Context, marketID, timeframe string) (*models.CycleResult, error) {
	e.l.Info("fetching market data", logger.String("market", marketID), logger.String("timeframe", timeframe))
	start := time.Now()
	data, err := e.analyzer.FetchMarketData(ctx, marketID, timeframe)
	if err != nil {
		e.metrics.RecordError("fetch")
		return nil, err
	}
	e.metrics.RecordStageLatency("fetch", time.Since(start).Seconds())

	e.l.Info("analyzing sentiment", logger.String("market", marketID))
	start = time.Now()
	sentimentScore, err := e.analyzer.AnalyzeSentiment(ctx, data.NewsFeed())
	if err != nil {
		e.metrics.RecordError("sentiment")
		e.l.Error("sentiment analysis failed", logger.String("market", marketID), logger.Error(err))
		return nil, err
	}
	e.metrics.RecordStageLatency("sentiment", time.Since(start).Seconds())

	e.l.Info("predicting market trend", logger.String("market", marketID))
	start = time.Now()
	forecast, err := e.analyzer.PredictMarketTrend(ctx, data)
	if err != nil {
		e.metrics.RecordError("predict")
		return nil, err
	}
	e.metrics.RecordStageLatency("predict", time.Since(start).Seconds())

	e.l.Info("calculating optimal price", logger.String("market", marketID))
	e.mu.Lock()
	optimalPrice := e.strategist.CalculateOptimalPrice(models.PricingInput{
		SentimentScore: sentimentScore,
		Forecast:       forecast.Forecast,
	})
	e.mu.Unlock()

	e.metrics.RecordLastPrice(marketID, optimalPrice)

	return &models.CycleResult{
		Market:         marketID,
		Timeframe:      timeframe,
		OptimalPrice:   optimalPrice,
		MarketForecast: forecast.Forecast,
		Confidence:     forecast.Confidence,
		SentimentScore: sentimentScore,
		Timestamp:      time.Now(),
	}, nil
}

// UpdateConstraints applies a partial bounds update and returns the
// resulting constraints.
func (e *RevenueEngine) UpdateConstraints(newMin, newMax *float64) models.PriceConstraints {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.strategist.UpdateConstraints(newMin, newMax)
	return e.strategist.Constraints()
}

// Constraints returns the current price bounds.
func (e *RevenueEngine) Constraints() models.PriceConstraints {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.strategist.Constraints()
}
