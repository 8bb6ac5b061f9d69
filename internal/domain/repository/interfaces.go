package repository

import (
	"context"

	"RevCycle/internal/domain/models"
)

// DataSource supplies historical market data. External collaborator.
type DataSource interface {
	GetHistoricalData(ctx context.Context, market, timeframe string) (*models.MarketData, error)
}

// SentimentScorer scores free text, convention [-1, 1]. External collaborator.
type SentimentScorer interface {
	Analyze(ctx context.Context, text string) (float64, error)
}

// TrendPredictor turns historical data into a predicted numeric series.
// External collaborator.
type TrendPredictor interface {
	Predict(ctx context.Context, data *models.MarketData) ([]float64, error)
}

// CycleStore persists completed cycle results.
type CycleStore interface {
	Store(ctx context.Context, r *models.CycleResult) error
	Query(ctx context.Context, market string, limit int) ([]*models.CycleResult, error)
	Health(ctx context.Context) error
	Close() error
}

// CyclePublisher publishes completed cycle results to a message bus.
type CyclePublisher interface {
	Publish(ctx context.Context, r *models.CycleResult) error
	Close() error
}

// NewsStream is a live headline feed.
type NewsStream interface {
	Connect(ctx context.Context) error
	Subscribe(ctx context.Context) error
	Read(ctx context.Context) (<-chan *models.NewsItem, <-chan error)
	Reconnect(ctx context.Context) error
	Close() error
	IsConnected() bool
}

// Metrics records operational metrics.
type Metrics interface {
	RecordCycleCompleted(backend, market string)
	RecordError(kind string)
	RecordLastPrice(market string, price float64)
	RecordStageLatency(stage string, seconds float64)
	RecordNewsItem(market string)
}

// NewsCache keeps the most recent headlines per market.
type NewsCache interface {
	Append(market string, item *models.NewsItem)
	Latest(market string) []*models.NewsItem
}
