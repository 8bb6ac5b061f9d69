package newsfeed

import (
	"context"
	"sync"
	"testing"
	"time"
)

func newTestClient() *Client {
	c := New("key", "ws://127.0.0.1:1", []string{"BTC/USDT"}, time.Millisecond, time.Second)
	return c.(*Client)
}

// Close, IsConnected and the ping loop touch the connection from different
// goroutines; this hammers them together so the race detector can see any
// unguarded access.
func TestClientConcurrentStateAccess(t *testing.T) {
	c := newTestClient()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	itemCh, errCh := c.Read(ctx)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				_ = c.IsConnected()
				_ = c.Close()
			}
		}()
	}
	wg.Wait()

	// Read on a nil connection reports an error and closes its channels.
	select {
	case err := <-errCh:
		if err == nil {
			t.Fatalf("expected a connection error")
		}
	case <-time.After(time.Second):
		t.Fatalf("read loop did not report the dead connection")
	}
	if _, ok := <-itemCh; ok {
		t.Fatalf("expected item channel to be closed")
	}
}

func TestClientSubscribeRequiresConnection(t *testing.T) {
	c := newTestClient()
	if err := c.Subscribe(context.Background()); err == nil {
		t.Fatalf("expected error when not connected")
	}
}

func TestClientReconnectHonorsContextCancel(t *testing.T) {
	c := New("key", "ws://127.0.0.1:1", []string{"BTC/USDT"}, time.Hour, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	if err := c.Reconnect(ctx); err == nil {
		t.Fatalf("expected context error")
	}
	if time.Since(start) > time.Second {
		t.Fatalf("reconnect waited through the delay despite cancelled context")
	}
}
