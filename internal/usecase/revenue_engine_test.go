package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"RevCycle/internal/domain/models"
	"RevCycle/internal/services/market"
	"RevCycle/internal/services/pricing"
	"RevCycle/pkg/logger"
)

type fakeMetrics struct {
	mu     sync.Mutex
	errors []string
	cycles []string
}

func (m *fakeMetrics) RecordCycleCompleted(backend, market string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cycles = append(m.cycles, backend+"/"+market)
}

func (m *fakeMetrics) RecordError(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors = append(m.errors, kind)
}

func (m *fakeMetrics) RecordLastPrice(market string, price float64) {}

func (m *fakeMetrics) RecordStageLatency(stage string, seconds float64) {}

func (m *fakeMetrics) RecordNewsItem(market string) {}

type fakeSource struct {
	data  *models.MarketData
	err   error
	calls int
}

func (f *fakeSource) GetHistoricalData(ctx context.Context, market, timeframe string) (*models.MarketData, error) {
	f.calls++
	return f.data, f.err
}

type fakeScorer struct {
	score float64
	err   error
	calls int
}

func (f *fakeScorer) Analyze(ctx context.Context, text string) (float64, error) {
	f.calls++
	return f.score, f.err
}

type fakePredictor struct {
	series []float64
	err    error
	calls  int
}

func (f *fakePredictor) Predict(ctx context.Context, data *models.MarketData) ([]float64, error) {
	f.calls++
	return f.series, f.err
}

func marketData() *models.MarketData {
	return &models.MarketData{
		Market:    "BTC/USDT",
		Timeframe: "1D",
		Rows: []models.MarketRow{
			{Timestamp: time.Now(), Close: 100, News: "bullish report"},
		},
	}
}

func newEngine(src *fakeSource, sc *fakeScorer, pr *fakePredictor) *RevenueEngine {
	l := logger.Nop()
	analyzer := market.NewAnalyzer(src, sc, pr, l)
	strategist := pricing.NewStrategist(0.9, 1.1, l)
	return NewRevenueEngine(analyzer, strategist, &fakeMetrics{}, l)
}

func TestRunRevenueCycle(t *testing.T) {
	src := &fakeSource{data: marketData()}
	sc := &fakeScorer{score: 1.0}
	pr := &fakePredictor{series: []float64{10, 20, 30}}
	e := newEngine(src, sc, pr)

	res, err := e.RunRevenueCycle(context.Background(), "BTC/USDT", "1D")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 1.0 + 0.1 + 0.05 clamps to 1.1
	if res.OptimalPrice != 1.1 {
		t.Fatalf("expected price 1.1, got %v", res.OptimalPrice)
	}
	if res.MarketForecast != 20 {
		t.Fatalf("expected forecast 20, got %v", res.MarketForecast)
	}
	if res.SentimentScore != 1.0 {
		t.Fatalf("expected sentiment 1.0, got %v", res.SentimentScore)
	}
	if res.Timestamp.IsZero() {
		t.Fatalf("timestamp not set")
	}
}

func TestRunRevenueCycleFetchFailureAbortsEverything(t *testing.T) {
	boom := errors.New("api down")
	src := &fakeSource{err: boom}
	sc := &fakeScorer{}
	pr := &fakePredictor{}
	e := newEngine(src, sc, pr)

	res, err := e.RunRevenueCycle(context.Background(), "BTC/USDT", "1D")
	if !errors.Is(err, boom) {
		t.Fatalf("expected original error, got %v", err)
	}
	if res != nil {
		t.Fatalf("expected no partial result, got %+v", res)
	}
	if sc.calls != 0 || pr.calls != 0 {
		t.Fatalf("downstream stages ran: sentiment=%d predict=%d", sc.calls, pr.calls)
	}
}

func TestRunRevenueCycleShapeErrorSkipsDownstream(t *testing.T) {
	src := &fakeSource{data: &models.MarketData{Market: "BTC/USDT"}}
	sc := &fakeScorer{}
	pr := &fakePredictor{}
	e := newEngine(src, sc, pr)

	_, err := e.RunRevenueCycle(context.Background(), "BTC/USDT", "1D")
	if !errors.Is(err, market.ErrInvalidDataFormat) {
		t.Fatalf("expected shape validation error, got %v", err)
	}
	if sc.calls != 0 || pr.calls != 0 {
		t.Fatalf("downstream stages ran after shape error")
	}
}

func TestRunRevenueCycleSentimentFailureSkipsPrediction(t *testing.T) {
	boom := errors.New("scorer down")
	src := &fakeSource{data: marketData()}
	sc := &fakeScorer{err: boom}
	pr := &fakePredictor{}
	e := newEngine(src, sc, pr)

	res, err := e.RunRevenueCycle(context.Background(), "BTC/USDT", "1D")
	if !errors.Is(err, boom) {
		t.Fatalf("expected original error, got %v", err)
	}
	if res != nil {
		t.Fatalf("expected nil result")
	}
	if pr.calls != 0 {
		t.Fatalf("prediction ran after sentiment failure")
	}
}

func TestRunRevenueCyclePredictionFailure(t *testing.T) {
	boom := errors.New("model unavailable")
	src := &fakeSource{data: marketData()}
	sc := &fakeScorer{score: 0.5}
	pr := &fakePredictor{err: boom}
	e := newEngine(src, sc, pr)

	res, err := e.RunRevenueCycle(context.Background(), "BTC/USDT", "1D")
	if !errors.Is(err, boom) {
		t.Fatalf("expected original error, got %v", err)
	}
	if res != nil {
		t.Fatalf("expected nil result")
	}
}

func TestUpdateConstraintsThroughEngine(t *testing.T) {
	e := newEngine(&fakeSource{data: marketData()}, &fakeScorer{}, &fakePredictor{series: []float64{1}})

	newMin := -5.0
	c := e.UpdateConstraints(&newMin, nil)
	if c.MinPrice != 0.0 {
		t.Fatalf("expected min clamped to 0, got %v", c.MinPrice)
	}
	if c.MaxPrice != 1.1 {
		t.Fatalf("expected max unchanged, got %v", c.MaxPrice)
	}
}
