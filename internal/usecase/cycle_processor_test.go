package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"RevCycle/internal/domain/models"
)

type fakePublisher struct {
	published []*models.CycleResult
	err       error
	closed    bool
}

func (f *fakePublisher) Publish(ctx context.Context, r *models.CycleResult) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, r)
	return nil
}

func (f *fakePublisher) Close() error {
	f.closed = true
	return nil
}

type fakeStore struct {
	stored []*models.CycleResult
	err    error
}

func (f *fakeStore) Store(ctx context.Context, r *models.CycleResult) error {
	if f.err != nil {
		return f.err
	}
	f.stored = append(f.stored, r)
	return nil
}

func (f *fakeStore) Query(ctx context.Context, market string, limit int) ([]*models.CycleResult, error) {
	return f.stored, nil
}

func (f *fakeStore) Health(ctx context.Context) error { return nil }
func (f *fakeStore) Close() error                     { return nil }

func result() *models.CycleResult {
	return &models.CycleResult{
		Market:       "BTC/USDT",
		Timeframe:    "1D",
		OptimalPrice: 1.05,
		Timestamp:    time.Now(),
	}
}

func TestProcessRoutesToKafka(t *testing.T) {
	pub := &fakePublisher{}
	store := &fakeStore{}
	m := &fakeMetrics{}
	p := NewCycleProcessor(pub, store, m, "kafka")

	if err := p.Process(context.Background(), result()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pub.published) != 1 {
		t.Fatalf("expected 1 published, got %d", len(pub.published))
	}
	if len(store.stored) != 0 {
		t.Fatalf("store should not be used for kafka backend")
	}
	if len(m.cycles) != 1 || m.cycles[0] != "kafka/BTC/USDT" {
		t.Fatalf("unexpected cycle metric %v", m.cycles)
	}
}

func TestProcessRoutesToClickHouse(t *testing.T) {
	pub := &fakePublisher{}
	store := &fakeStore{}
	p := NewCycleProcessor(pub, store, &fakeMetrics{}, "clickhouse")

	if err := p.Process(context.Background(), result()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.stored) != 1 {
		t.Fatalf("expected 1 stored, got %d", len(store.stored))
	}
	if len(pub.published) != 0 {
		t.Fatalf("publisher should not be used for clickhouse backend")
	}
}

func TestProcessUnknownBackend(t *testing.T) {
	p := NewCycleProcessor(&fakePublisher{}, &fakeStore{}, &fakeMetrics{}, "postgres")
	if err := p.Process(context.Background(), result()); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}

func TestProcessNilResult(t *testing.T) {
	p := NewCycleProcessor(&fakePublisher{}, &fakeStore{}, &fakeMetrics{}, "kafka")
	if err := p.Process(context.Background(), nil); err == nil {
		t.Fatalf("expected error for nil result")
	}
}

func TestProcessRecordsErrorOnBackendFailure(t *testing.T) {
	boom := errors.New("broker down")
	m := &fakeMetrics{}
	p := NewCycleProcessor(&fakePublisher{err: boom}, &fakeStore{}, m, "kafka")

	err := p.Process(context.Background(), result())
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped broker error, got %v", err)
	}
	if len(m.errors) != 1 || m.errors[0] != "process" {
		t.Fatalf("unexpected error metrics %v", m.errors)
	}
}

func TestCloseClosesResources(t *testing.T) {
	pub := &fakePublisher{}
	p := NewCycleProcessor(pub, &fakeStore{}, &fakeMetrics{}, "kafka")
	p.Close()
	if !pub.closed {
		t.Fatalf("publisher not closed")
	}
}
