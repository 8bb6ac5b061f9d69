package repository

import (
	"context"
	"database/sql"
	"fmt"

	"RevCycle/internal/domain/models"
	drepo "RevCycle/internal/domain/repository"
	pkgkafka "RevCycle/pkg/kafka"
)

// ClickHouseCycleStore implements CycleStore for ClickHouse.
type ClickHouseCycleStore struct {
	db    *sql.DB
	table string
}

// NewClickHouseCycleStore creates ClickHouse cycle storage.
func NewClickHouseCycleStore(db *sql.DB, table string) drepo.CycleStore {
	return &ClickHouseCycleStore{db: db, table: table}
}

func (s *ClickHouseCycleStore) Store(ctx context.Context, r *models.CycleResult) error {
	q := fmt.Sprintf(
		"INSERT INTO %s (ts, market, timeframe, sentiment, forecast, confidence, price) VALUES (?, ?, ?, ?, ?, ?, ?)",
		s.table,
	)
	_, err := s.db.ExecContext(ctx, q,
		r.Timestamp,
		r.Market,
		r.Timeframe,
		r.SentimentScore,
		r.MarketForecast,
		r.Confidence,
		r.OptimalPrice,
	)
	return err
}

func (s *ClickHouseCycleStore) Query(ctx context.Context, market string, limit int) ([]*models.CycleResult, error) {
	q := fmt.Sprintf(
		"SELECT ts, market, timeframe, sentiment, forecast, confidence, price FROM %s WHERE market = ? ORDER BY ts DESC LIMIT ?",
		s.table,
	)
	rows, err := s.db.QueryContext(ctx, q, market, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*models.CycleResult
	for rows.Next() {
		var r models.CycleResult
		if err := rows.Scan(&r.Timestamp, &r.Market, &r.Timeframe, &r.SentimentScore, &r.MarketForecast, &r.Confidence, &r.OptimalPrice); err != nil {
			return nil, err
		}
		results = append(results, &r)
	}
	return results, rows.Err()
}

func (s *ClickHouseCycleStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *ClickHouseCycleStore) Close() error {
	return nil // pool managed by pkg client
}

// KafkaCyclePublisher implements CyclePublisher for Kafka.
type KafkaCyclePublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaCyclePublisher creates a Kafka cycle publisher.
func NewKafkaCyclePublisher(producer *pkgkafka.Producer, topic string) drepo.CyclePublisher {
	return &KafkaCyclePublisher{producer: producer, topic: topic}
}

func (p *KafkaCyclePublisher) Publish(ctx context.Context, r *models.CycleResult) error {
	return p.producer.Publish(ctx, p.topic, []byte(r.Market), r)
}

func (p *KafkaCyclePublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
