package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"RevCycle/internal/domain/models"
	icache "RevCycle/internal/service/cache"
)

// fakeNewsStream fails its first connection after one error and serves
// headlines normally after a reconnect.
type fakeNewsStream struct {
	mu             sync.Mutex
	readCalls      int
	reconnectCalls int
	connected      bool
}

func (f *fakeNewsStream) Connect(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.connected = true
	return nil
}

func (f *fakeNewsStream) Subscribe(ctx context.Context) error { return nil }

func (f *fakeNewsStream) Read(ctx context.Context) (<-chan *models.NewsItem, <-chan error) {
	f.mu.Lock()
	f.readCalls++
	n := f.readCalls
	f.mu.Unlock()

	items := make(chan *models.NewsItem, 4)
	errs := make(chan error, 1)
	if n == 1 {
		// first connection dies: one error, then both channels close
		errs <- errors.New("connection reset")
		close(items)
		close(errs)
	} else {
		items <- &models.NewsItem{Market: "BTC/USDT", Headline: "after reconnect", Timestamp: time.Now()}
	}
	return items, errs
}

func (f *fakeNewsStream) Reconnect(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reconnectCalls++
	f.connected = true
	return nil
}

func (f *fakeNewsStream) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.connected = false
	return nil
}

func (f *fakeNewsStream) IsConnected() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.connected
}

func (f *fakeNewsStream) reads() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.readCalls
}

func (f *fakeNewsStream) reconnects() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reconnectCalls
}

func TestNewsCollectorReconnectsAndResumesReading(t *testing.T) {
	stream := &fakeNewsStream{}
	cache := icache.NewNewsCache(10)
	c := NewNewsCollector(stream, cache, &fakeMetrics{})

	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer c.Stop()

	deadline := time.Now().Add(2 * time.Second)
	for len(cache.Latest("BTC/USDT")) == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("no headline cached after stream failure: reads=%d reconnects=%d",
				stream.reads(), stream.reconnects())
		}
		time.Sleep(5 * time.Millisecond)
	}

	if got := stream.reconnects(); got != 1 {
		t.Fatalf("expected 1 reconnect, got %d", got)
	}
	if got := stream.reads(); got < 2 {
		t.Fatalf("expected a fresh read after reconnect, got %d read call(s)", got)
	}
	items := cache.Latest("BTC/USDT")
	if items[len(items)-1].Headline != "after reconnect" {
		t.Fatalf("unexpected headline %q", items[len(items)-1].Headline)
	}
}

func TestNewsCollectorStopTerminatesLoop(t *testing.T) {
	stream := &fakeNewsStream{}
	c := NewNewsCollector(stream, icache.NewNewsCache(10), &fakeMetrics{})

	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- c.Stop() }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("stop: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("stop did not return; consume loop still running")
	}
	if stream.IsConnected() {
		t.Fatalf("stream still connected after stop")
	}
}
