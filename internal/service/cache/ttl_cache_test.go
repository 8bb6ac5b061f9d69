package cache

import (
	"context"
	"testing"
	"time"
)

func TestTTLCacheSetGet(t *testing.T) {
	c := NewTTLCache()
	ctx := context.Background()
	if err := c.SetBytes(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	b, ok, err := c.GetBytes(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("expected hit, ok=%v err=%v", ok, err)
	}
	if string(b) != "v" {
		t.Fatalf("unexpected value %q", b)
	}
}

func TestTTLCacheMiss(t *testing.T) {
	c := NewTTLCache()
	_, ok, err := c.GetBytes(context.Background(), "missing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("expected miss")
	}
}

func TestTTLCacheExpiry(t *testing.T) {
	c := NewTTLCache()
	ctx := context.Background()
	_ = c.SetBytes(ctx, "k", []byte("v"), time.Nanosecond)
	time.Sleep(5 * time.Millisecond)
	_, ok, _ := c.GetBytes(ctx, "k")
	if ok {
		t.Fatalf("expected expired entry")
	}
}

func TestNewsCacheBounded(t *testing.T) {
	c := NewNewsCache(2)
	for i := 0; i < 5; i++ {
		c.Append("BTC/USDT", newsItem("h", i))
	}
	got := c.Latest("BTC/USDT")
	if len(got) != 2 {
		t.Fatalf("expected 2 items, got %d", len(got))
	}
}

func TestNewsCachePerMarket(t *testing.T) {
	c := NewNewsCache(10)
	c.Append("BTC/USDT", newsItem("btc", 0))
	c.Append("ETH/USDT", newsItem("eth", 0))
	if len(c.Latest("BTC/USDT")) != 1 || len(c.Latest("ETH/USDT")) != 1 {
		t.Fatalf("cross-market leakage")
	}
}
